package engine

import (
	"sort"
	"time"

	"community-metrics-service/internal/analytics/core/domain"
	msgdomain "community-metrics-service/internal/messages/core/domain"
)

type RetentionQuery struct {
	// Days is the retention period; must be positive.
	Days int
	// Authors restricts the evaluation to these names; nil means every
	// eligible author.
	Authors []string
	// Channels restricts the table before anything else; nil means all.
	Channels []string
}

// Retention decides, per author, whether they posted again in the second
// retention period after joining: (joined + Days, joined + 2*Days].
//
// joined is the author's first message within the selected channels. Authors
// who joined less than 2*Days before the table's latest message are censored:
// they never appear, whether or not they were requested. Records are ordered
// by joined, then author name.
func Retention(t *msgdomain.Table, q RetentionQuery) ([]domain.RetentionRecord, error) {
	if q.Days <= 0 {
		return nil, domain.ErrInvalidRetentionDays
	}

	msgs := restrictChannels(t.Messages, q.Channels)
	if len(msgs) == 0 {
		return []domain.RetentionRecord{}, nil
	}

	period := time.Duration(q.Days) * day
	latest := msgs[len(msgs)-1].Timestamp

	// msgs is sorted, so each author's slice is sorted and starts at joined
	history := make(map[string][]time.Time)
	for _, m := range msgs {
		history[m.AuthorName] = append(history[m.AuthorName], m.Timestamp)
	}

	candidates := q.Authors
	if candidates == nil {
		candidates = make([]string, 0, len(history))
		for a := range history {
			candidates = append(candidates, a)
		}
	}

	out := make([]domain.RetentionRecord, 0, len(candidates))
	done := make(map[string]struct{}, len(candidates))
	for _, author := range candidates {
		if _, dup := done[author]; dup {
			continue
		}
		done[author] = struct{}{}

		ts, ok := history[author]
		if !ok {
			continue
		}
		joined := ts[0]
		if latest.Sub(joined) < 2*period {
			continue
		}

		out = append(out, domain.RetentionRecord{
			AuthorName: author,
			JoinedAt:   joined,
			Retained:   activeBetween(ts, joined.Add(period), joined.Add(2*period)),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].AuthorName < out[j].AuthorName
	})
	return out, nil
}

// SummarizeRetention computes the retained share. Rate is nil when no author
// was evaluated.
func SummarizeRetention(records []domain.RetentionRecord) domain.RetentionSummary {
	s := domain.RetentionSummary{Evaluated: len(records)}
	for _, r := range records {
		if r.Retained {
			s.Retained++
		}
	}
	if s.Evaluated > 0 {
		rate := float64(s.Retained) / float64(s.Evaluated)
		s.Rate = &rate
	}
	return s
}

// activeBetween reports whether sorted ts has a value in (from, to].
func activeBetween(ts []time.Time, from, to time.Time) bool {
	i := sort.Search(len(ts), func(i int) bool { return ts[i].After(from) })
	return i < len(ts) && !ts[i].After(to)
}

func restrictChannels(msgs []msgdomain.Message, channels []string) []msgdomain.Message {
	if channels == nil {
		return msgs
	}

	keep := make(map[string]struct{}, len(channels))
	for _, c := range channels {
		keep[c] = struct{}{}
	}

	out := make([]msgdomain.Message, 0, len(msgs))
	for _, m := range msgs {
		if _, ok := keep[m.ChannelName]; ok {
			out = append(out, m)
		}
	}
	return out
}
