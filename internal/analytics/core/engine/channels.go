package engine

import (
	"sort"
	"time"

	"community-metrics-service/internal/analytics/core/domain"
	msgdomain "community-metrics-service/internal/messages/core/domain"
)

// ChannelActivity ranks every channel of the table by messages sent after
// max(timestamp) - days. A nil days covers the whole table. Channels silent
// in the window are kept with a zero total.
//
// The top author is the one with most messages in the channel; ties go to
// the lexicographically smallest name. Results are ordered by total
// descending, then channel name.
func ChannelActivity(t *msgdomain.Table, days *int) []domain.ChannelStat {
	if t.Empty() {
		return []domain.ChannelStat{}
	}

	type channelAgg struct {
		total   int
		authors map[string]int
	}

	aggs := make(map[string]*channelAgg)
	avatars := make(map[string]string)

	inWindow := windowFilter(t, days)
	for _, m := range t.Messages {
		agg, ok := aggs[m.ChannelName]
		if !ok {
			agg = &channelAgg{authors: make(map[string]int)}
			aggs[m.ChannelName] = agg
		}
		if !inWindow(m.Timestamp) {
			continue
		}
		agg.total++
		agg.authors[m.AuthorName]++
		if m.AuthorAvatar != "" {
			avatars[m.AuthorName] = m.AuthorAvatar
		}
	}

	out := make([]domain.ChannelStat, 0, len(aggs))
	for name, agg := range aggs {
		stat := domain.ChannelStat{ChannelName: name, TotalCount: agg.total}

		best := 0
		for author, n := range agg.authors {
			if n > best || (n == best && author < stat.TopAuthor) {
				best = n
				stat.TopAuthor = author
			}
		}
		if stat.TopAuthor != "" {
			stat.TopAuthorAvatar = avatars[stat.TopAuthor]
		}
		out = append(out, stat)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalCount != out[j].TotalCount {
			return out[i].TotalCount > out[j].TotalCount
		}
		return out[i].ChannelName < out[j].ChannelName
	})
	return out
}

// ChannelTimeline counts messages per (UTC date, channel) for dates after
// max_date - days, and the gap-free daily total over the same dates with its
// 30-day trailing mean. A nil days covers the whole table.
func ChannelTimeline(t *msgdomain.Table, days *int) ([]domain.ChannelDayCount, []domain.ActivityPoint) {
	if t.Empty() {
		return []domain.ChannelDayCount{}, []domain.ActivityPoint{}
	}

	last := dayOf(t.Last())
	first := dayOf(t.First())
	if days != nil {
		if from := last.AddDate(0, 0, -*days+1); from.After(first) {
			first = from
		}
	}

	type key struct {
		date    time.Time
		channel string
	}

	counts := make(map[key]int)
	totals := make([]domain.DailyCount, daysBetween(first, last)+1)
	for i := range totals {
		totals[i].Date = first.AddDate(0, 0, i)
	}

	for _, m := range t.Messages {
		d := dayOf(m.Timestamp)
		if d.Before(first) {
			continue
		}
		counts[key{date: d, channel: m.ChannelName}]++
		totals[daysBetween(first, d)].Count++
	}

	timeline := make([]domain.ChannelDayCount, 0, len(counts))
	for k, n := range counts {
		timeline = append(timeline, domain.ChannelDayCount{Date: k.date, ChannelName: k.channel, Count: n})
	}
	sort.Slice(timeline, func(i, j int) bool {
		if !timeline[i].Date.Equal(timeline[j].Date) {
			return timeline[i].Date.Before(timeline[j].Date)
		}
		return timeline[i].ChannelName < timeline[j].ChannelName
	})

	return timeline, TrailingMean(totals, MonthWindowDays)
}

// windowFilter reports whether a timestamp falls in the trailing window
// (max - days, max]; everything passes when days is nil.
func windowFilter(t *msgdomain.Table, days *int) func(time.Time) bool {
	if days == nil {
		return func(time.Time) bool { return true }
	}
	cutoff := t.Last().Add(-time.Duration(*days) * day)
	return func(ts time.Time) bool { return ts.After(cutoff) }
}
