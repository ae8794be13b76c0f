package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"community-metrics-service/internal/messages/core/domain"
	"community-metrics-service/internal/messages/core/ports"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

// MessageRepository is both a snapshot source and the import target.
// A revision is the row count plus the latest ingestion time, so any import
// that adds rows produces a new revision.
type MessageRepository struct {
	db DB
}

func NewMessageRepository(db DB) *MessageRepository {
	return &MessageRepository{db: db}
}

var (
	_ ports.MessageWriterPort  = (*MessageRepository)(nil)
	_ ports.SnapshotSourcePort = (*MessageRepository)(nil)
)

const insertMessageSQL = `
INSERT INTO messages (
    message_id,
    channel_id,
    channel_name,
    author_id,
    author_name,
    author_created,
    author_avatar,
    sent_at,
    content
) VALUES (
    $1, $2, $3, $4, $5,
    $6, $7, $8, $9
)
ON CONFLICT (message_id) DO NOTHING;
`

const revisionSQL = `
SELECT
    COUNT(*) AS row_count,
    COALESCE(MAX(ingested_at), 'epoch'::timestamptz) AS last_ingested
FROM messages`

// window aggregates keep rows and revision in one consistent statement
const snapshotSQL = `
SELECT
    channel_id,
    channel_name,
    message_id,
    author_id,
    author_name,
    author_created,
    author_avatar,
    sent_at,
    content,
    COUNT(*) OVER () AS row_count,
    MAX(ingested_at) OVER () AS last_ingested
FROM messages
ORDER BY sent_at, message_id`

func (r *MessageRepository) InsertMessage(ctx context.Context, m *domain.Message) (bool, error) {
	var avatar any
	if m.AuthorAvatar != "" {
		avatar = m.AuthorAvatar
	}

	var content any
	if m.Content != nil {
		content = *m.Content
	}

	res, err := r.db.ExecContext(ctx, insertMessageSQL,
		m.MessageID,
		m.ChannelID,
		m.ChannelName,
		m.AuthorID,
		m.AuthorName,
		m.AuthorCreated,
		avatar,
		m.Timestamp,
		content,
	)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == 0 -> duplicate (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}

func (r *MessageRepository) Revision(ctx context.Context) (string, error) {
	rows, err := r.db.QueryContext(ctx, revisionSQL)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var count int64
	var last time.Time
	if rows.Next() {
		if err := rows.Scan(&count, &last); err != nil {
			return "", err
		}
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	return formatRevision(count, last), nil
}

func (r *MessageRepository) ReadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, snapshotSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		msgs  []domain.Message
		count int64
		last  time.Time
	)

	for rows.Next() {
		var (
			m       domain.Message
			avatar  sql.NullString
			content sql.NullString
		)

		if err := rows.Scan(
			&m.ChannelID,
			&m.ChannelName,
			&m.MessageID,
			&m.AuthorID,
			&m.AuthorName,
			&m.AuthorCreated,
			&avatar,
			&m.Timestamp,
			&content,
			&count,
			&last,
		); err != nil {
			return nil, err
		}

		m.AuthorCreated = m.AuthorCreated.UTC()
		m.Timestamp = m.Timestamp.UTC()
		if avatar.Valid {
			m.AuthorAvatar = avatar.String
		}
		if content.Valid && content.String != "" {
			c := content.String
			m.Content = &c
		}
		msgs = append(msgs, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(msgs) == 0 {
		last = time.Unix(0, 0)
	}

	return &domain.Snapshot{
		Revision: formatRevision(count, last),
		Messages: msgs,
	}, nil
}

func formatRevision(count int64, last time.Time) string {
	return fmt.Sprintf("%d@%s", count, last.UTC().Format(time.RFC3339Nano))
}
