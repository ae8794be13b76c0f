package engine

import (
	"community-metrics-service/internal/analytics/core/domain"
	msgdomain "community-metrics-service/internal/messages/core/domain"
)

const (
	// MonthWindowDays is the trailing window of the monthly active users
	// series and of the trailing means.
	MonthWindowDays = 30
)

// DailyActiveUsers counts distinct authors per UTC day, including days
// without activity, from the first to the last day of the table.
func DailyActiveUsers(t *msgdomain.Table) []domain.DailyCount {
	if t.Empty() {
		return []domain.DailyCount{}
	}

	start, buckets := authorsByDay(t)
	out := make([]domain.DailyCount, len(buckets))
	for i, authors := range buckets {
		out[i] = domain.DailyCount{Date: start.AddDate(0, 0, i), Count: len(authors)}
	}
	return out
}

// MonthlyActiveUsers counts, for every day d of the DAU range, the distinct
// authors active on a day in (d-30, d]. The window slides one day at a time:
// day i enters and day i-30 leaves.
func MonthlyActiveUsers(t *msgdomain.Table) []domain.DailyCount {
	if t.Empty() {
		return []domain.DailyCount{}
	}

	start, buckets := authorsByDay(t)
	out := make([]domain.DailyCount, len(buckets))
	active := make(map[string]int) // author -> active days inside the window

	for i := range buckets {
		for _, a := range buckets[i] {
			active[a]++
		}
		if j := i - MonthWindowDays; j >= 0 {
			for _, a := range buckets[j] {
				if active[a]--; active[a] == 0 {
					delete(active, a)
				}
			}
		}
		out[i] = domain.DailyCount{Date: start.AddDate(0, 0, i), Count: len(active)}
	}
	return out
}

// TrailingMean is the mean of each point and up to window-1 points before it.
func TrailingMean(series []domain.DailyCount, window int) []domain.ActivityPoint {
	out := make([]domain.ActivityPoint, len(series))
	sum := 0
	for i, p := range series {
		sum += p.Count
		n := i + 1
		if i >= window {
			sum -= series[i-window].Count
			n = window
		}
		out[i] = domain.ActivityPoint{
			Date:         p.Date,
			Count:        p.Count,
			TrailingMean: float64(sum) / float64(n),
		}
	}
	return out
}

// SummarizeMAU reports the latest value and its change since the day before.
func SummarizeMAU(series []domain.DailyCount) domain.ActivitySummary {
	n := len(series)
	if n == 0 {
		return domain.ActivitySummary{}
	}

	s := domain.ActivitySummary{Current: float64(series[n-1].Count)}
	if n >= 2 {
		d := float64(series[n-1].Count - series[n-2].Count)
		s.Delta = &d
	}
	return s
}

// SummarizeDAU reports the mean over the last 30 days and its change against
// the 30-day window ending one day earlier.
func SummarizeDAU(series []domain.DailyCount) domain.ActivitySummary {
	n := len(series)
	if n == 0 {
		return domain.ActivitySummary{}
	}

	current := meanCount(series[max(0, n-MonthWindowDays):])
	s := domain.ActivitySummary{Current: current}
	if n >= 2 {
		d := current - meanCount(series[max(0, n-1-MonthWindowDays):n-1])
		s.Delta = &d
	}
	return s
}

func meanCount(series []domain.DailyCount) float64 {
	sum := 0
	for _, p := range series {
		sum += p.Count
	}
	return float64(sum) / float64(len(series))
}
