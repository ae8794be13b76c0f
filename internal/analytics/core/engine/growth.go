package engine

import (
	"sort"

	"community-metrics-service/internal/analytics/core/domain"
	msgdomain "community-metrics-service/internal/messages/core/domain"
)

// UserGrowth is the cumulative number of distinct authors, one point per
// author at their first message.
func UserGrowth(t *msgdomain.Table) []domain.GrowthPoint {
	out := []domain.GrowthPoint{}
	seen := make(map[string]struct{})
	for _, m := range t.Messages {
		if _, ok := seen[m.AuthorName]; ok {
			continue
		}
		seen[m.AuthorName] = struct{}{}
		out = append(out, domain.GrowthPoint{
			Timestamp:  m.Timestamp,
			AuthorName: m.AuthorName,
			Total:      len(out) + 1,
		})
	}
	return out
}

// JoinerSplit counts distinct authors per account age class.
func JoinerSplit(t *msgdomain.Table) domain.JoinerSplit {
	return domain.JoinerSplit{
		NewAccounts:      len(AuthorsByAccountAge(t, true)),
		ExistingAccounts: len(AuthorsByAccountAge(t, false)),
	}
}

// AuthorsByAccountAge lists, sorted, the authors whose NewUser flag matches.
func AuthorsByAccountAge(t *msgdomain.Table, newUser bool) []string {
	seen := make(map[string]struct{})
	for _, m := range t.Messages {
		if m.NewUser == newUser {
			seen[m.AuthorName] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for a := range seen {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
