package domain

import "time"

// NewUserWindow is the maximum delay between account creation and first
// message for an author to count as a new account.
const NewUserWindow = 48 * time.Hour

// Message is one chat message as captured in a snapshot.
type Message struct {
	ChannelID     string
	ChannelName   string
	MessageID     string
	AuthorID      string
	AuthorName    string
	AuthorCreated time.Time
	AuthorAvatar  string // "" when the author has no avatar
	Timestamp     time.Time
	Content       *string // nil when the source had no content

	// NewUser is derived by the loader; sources leave it false.
	NewUser bool
}

// Snapshot is an immutable point-in-time capture of the message log.
type Snapshot struct {
	Revision string
	Messages []Message
}

// Table is the normalized message log every aggregator consumes.
// Messages are sorted by Timestamp ascending and never have nil Content.
type Table struct {
	Revision string
	Messages []Message
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Messages)
}

func (t *Table) Empty() bool {
	return t.Len() == 0
}

// First returns the earliest timestamp. Callers must check Empty first.
func (t *Table) First() time.Time {
	return t.Messages[0].Timestamp
}

// Last returns the latest timestamp. Callers must check Empty first.
func (t *Table) Last() time.Time {
	return t.Messages[len(t.Messages)-1].Timestamp
}
