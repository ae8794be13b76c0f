package usecase

import (
	"fmt"
	"sort"
	"time"

	"community-metrics-service/internal/messages/core/domain"
)

type authorKey struct {
	name    string
	created int64
}

// Normalize turns raw snapshot rows into a Table: rows without content are
// dropped, the rest are stably sorted by timestamp and tagged with NewUser.
//
// The input slice is not modified. When no rows survive filtering the
// returned Table is empty and the error is domain.ErrEmptyInput.
func Normalize(revision string, rows []domain.Message) (*domain.Table, error) {
	kept := make([]domain.Message, 0, len(rows))
	for i, m := range rows {
		if m.Content == nil {
			continue
		}
		if err := validateRow(i+1, m); err != nil {
			return nil, err
		}
		kept = append(kept, m)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Timestamp.Before(kept[j].Timestamp)
	})

	// rows are sorted, so the first sighting of an author is its first message
	firstSeen := make(map[authorKey]time.Time)
	for _, m := range kept {
		k := authorKey{name: m.AuthorName, created: m.AuthorCreated.UnixNano()}
		if _, ok := firstSeen[k]; !ok {
			firstSeen[k] = m.Timestamp
		}
	}

	for i := range kept {
		m := &kept[i]
		first := firstSeen[authorKey{name: m.AuthorName, created: m.AuthorCreated.UnixNano()}]
		m.NewUser = first.Sub(m.AuthorCreated) <= domain.NewUserWindow
	}

	t := &domain.Table{Revision: revision, Messages: kept}
	if t.Empty() {
		return t, domain.ErrEmptyInput
	}
	return t, nil
}

// validateRow reports problems by row position; sources that know the file
// line reject these rows themselves.
func validateRow(row int, m domain.Message) error {
	var column, reason string
	switch {
	case m.Timestamp.IsZero():
		column, reason = "timestamp", "missing timestamp"
	case m.AuthorCreated.IsZero():
		column, reason = "author_created", "missing timestamp"
	case m.AuthorName == "":
		column, reason = "author_name", "empty author name"
	case m.ChannelName == "":
		column, reason = "channel_name", "empty channel name"
	default:
		return nil
	}
	return &domain.DataFormatError{Column: column, Reason: fmt.Sprintf("row %d: %s", row, reason)}
}
