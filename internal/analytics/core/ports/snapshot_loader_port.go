package ports

import (
	"context"

	msgdomain "community-metrics-service/internal/messages/core/domain"
)

// SnapshotLoaderPort yields the normalized table of the current revision.
// An empty table is returned together with msgdomain.ErrEmptyInput.
type SnapshotLoaderPort interface {
	Execute(ctx context.Context) (*msgdomain.Table, error)
}
