package ports

import (
	"context"

	"community-metrics-service/internal/messages/core/domain"
)

type SnapshotSourcePort interface {
	// Revision returns the marker of the snapshot currently published by the
	// source. It must be cheap; it is called on every analytics request.
	Revision(ctx context.Context) (string, error)

	// ReadSnapshot reads the whole snapshot. The returned Revision belongs to
	// the data actually read, which may be newer than a previous Revision call.
	ReadSnapshot(ctx context.Context) (*domain.Snapshot, error)
}
