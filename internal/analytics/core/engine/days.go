// Package engine holds the pure aggregations behind every analytics report.
// Functions take a normalized table and return freshly allocated results;
// they never modify the table and produce identical output for identical
// input.
package engine

import (
	"time"

	msgdomain "community-metrics-service/internal/messages/core/domain"
)

const day = 24 * time.Hour

// dayOf truncates t to midnight UTC.
func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole days from a to b, both midnight UTC.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / day)
}

// authorsByDay buckets the distinct authors active on each calendar day from
// the first to the last day of the table. Bucket i is start+i days; authors
// keep first-appearance order inside a bucket.
func authorsByDay(t *msgdomain.Table) (time.Time, [][]string) {
	start := dayOf(t.First())
	n := daysBetween(start, dayOf(t.Last())) + 1

	buckets := make([][]string, n)
	seen := make(map[string]int, 256) // author -> last bucket index + 1
	for _, m := range t.Messages {
		i := daysBetween(start, dayOf(m.Timestamp))
		if seen[m.AuthorName] == i+1 {
			continue
		}
		seen[m.AuthorName] = i + 1
		buckets[i] = append(buckets[i], m.AuthorName)
	}
	return start, buckets
}
