// Package csvfile reads message snapshots from the flat CSV file produced by
// the ingestion job. The job replaces the file atomically, so an opened file
// is an immutable snapshot and its modification time is the revision.
package csvfile

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"community-metrics-service/internal/messages/core/domain"
	"community-metrics-service/internal/messages/core/ports"
)

// Columns is the header the ingestion job writes.
var Columns = []string{
	"channel_id",
	"channel_name",
	"message_id",
	"author_id",
	"author_name",
	"author_created",
	"author_avatar",
	"timestamp",
	"content",
}

// ISO-8601 variants seen in snapshots; zone-less values are UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

type Source struct {
	path string
}

var _ ports.SnapshotSourcePort = (*Source)(nil)

func NewSource(path string) *Source {
	return &Source{path: path}
}

func (s *Source) Revision(ctx context.Context) (string, error) {
	fi, err := os.Stat(s.path)
	if err != nil {
		return "", err
	}
	return revisionOf(fi), nil
}

func (s *Source) ReadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	msgs, err := Parse(ctx, f)
	if err != nil {
		return nil, err
	}

	return &domain.Snapshot{Revision: revisionOf(fi), Messages: msgs}, nil
}

func revisionOf(fi os.FileInfo) string {
	return fi.ModTime().UTC().Format(time.RFC3339Nano)
}

// Parse decodes a snapshot. Any structural problem is a *domain.DataFormatError.
func Parse(ctx context.Context, r io.Reader) ([]domain.Message, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.DataFormatError{Reason: "missing header"}
	}
	if err != nil {
		return nil, csvError(err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var msgs []domain.Message
	for n := 0; ; n++ {
		if n%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}

		m, err := decodeRecord(cr, rec, idx)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}

	return msgs, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		idx[h] = i
	}

	var missing []string
	for _, c := range Columns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.DataFormatError{
			Line:   1,
			Reason: "missing columns: " + strings.Join(missing, ", "),
		}
	}
	return idx, nil
}

func decodeRecord(cr *csv.Reader, rec []string, idx map[string]int) (domain.Message, error) {
	field := func(name string) string { return rec[idx[name]] }
	bad := func(name, reason string) error {
		line, _ := cr.FieldPos(idx[name])
		return &domain.DataFormatError{Line: line, Column: name, Reason: reason}
	}

	ts, err := parseTime(field("timestamp"))
	if err != nil {
		return domain.Message{}, bad("timestamp", err.Error())
	}
	created, err := parseTime(field("author_created"))
	if err != nil {
		return domain.Message{}, bad("author_created", err.Error())
	}

	m := domain.Message{
		ChannelID:     field("channel_id"),
		ChannelName:   field("channel_name"),
		MessageID:     field("message_id"),
		AuthorID:      field("author_id"),
		AuthorName:    field("author_name"),
		AuthorCreated: created,
		AuthorAvatar:  field("author_avatar"),
		Timestamp:     ts,
	}
	// an empty cell is how the ingestion job writes a null
	if c := field("content"); c != "" {
		m.Content = &c
	}

	// rows without content are dropped later, so they are not checked
	if m.Content != nil {
		switch {
		case m.AuthorName == "":
			return domain.Message{}, bad("author_name", "empty author name")
		case m.ChannelName == "":
			return domain.Message{}, bad("channel_name", "empty channel name")
		}
	}
	return m, nil
}

func parseTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", v)
}

func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &domain.DataFormatError{Line: pe.Line, Reason: pe.Err.Error()}
	}
	return err
}
