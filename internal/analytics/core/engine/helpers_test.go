package engine

import (
	"sort"
	"time"

	msgdomain "community-metrics-service/internal/messages/core/domain"
)

type row struct {
	channel string
	author  string
	sent    string
	avatar  string
	newUser bool
}

func at(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	panic("bad time " + s)
}

func date(s string) time.Time { return at(s) }

// table builds a normalized table: sorted by timestamp, content set.
func table(rows ...row) *msgdomain.Table {
	content := "x"
	msgs := make([]msgdomain.Message, 0, len(rows))
	for i, r := range rows {
		ch := r.channel
		if ch == "" {
			ch = "general"
		}
		msgs = append(msgs, msgdomain.Message{
			ChannelName:   ch,
			MessageID:     string(rune('a' + i)),
			AuthorName:    r.author,
			AuthorCreated: at("2020-01-01"),
			AuthorAvatar:  r.avatar,
			Timestamp:     at(r.sent),
			Content:       &content,
			NewUser:       r.newUser,
		})
	}
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Timestamp.Before(msgs[j].Timestamp) })
	return &msgdomain.Table{Revision: "test", Messages: msgs}
}

func intp(v int) *int { return &v }
