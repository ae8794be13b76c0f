package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"community-metrics-service/internal/messages/core/domain"
	"community-metrics-service/internal/messages/core/ports"
)

// LoadSnapshotUseCase serves the normalized Table of the source's current
// revision. A revision is read and normalized at most once at a time; the
// last loaded Table is kept until the source publishes a new revision.
type LoadSnapshotUseCase struct {
	source ports.SnapshotSourcePort
	log    *zap.Logger

	group singleflight.Group

	mu      sync.RWMutex
	current *domain.Table
}

func NewLoadSnapshotUseCase(source ports.SnapshotSourcePort, log *zap.Logger) *LoadSnapshotUseCase {
	return &LoadSnapshotUseCase{source: source, log: log}
}

// Execute returns the Table for the current revision. An empty Table comes
// with domain.ErrEmptyInput; callers may still use it.
func (uc *LoadSnapshotUseCase) Execute(ctx context.Context) (*domain.Table, error) {
	rev, err := uc.source.Revision(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot revision: %w", err)
	}

	if t := uc.cached(rev); t != nil {
		return t, emptyErr(t)
	}

	// the reload is shared, so one caller giving up must not fail the rest
	v, err, _ := uc.group.Do(rev, func() (any, error) {
		if t := uc.cached(rev); t != nil {
			return t, nil
		}
		return uc.reload(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}

	t := v.(*domain.Table)
	return t, emptyErr(t)
}

func (uc *LoadSnapshotUseCase) cached(rev string) *domain.Table {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	if uc.current != nil && uc.current.Revision == rev {
		return uc.current
	}
	return nil
}

func (uc *LoadSnapshotUseCase) reload(ctx context.Context) (*domain.Table, error) {
	start := time.Now()

	snap, err := uc.source.ReadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	t, err := Normalize(snap.Revision, snap.Messages)
	if err != nil && !errors.Is(err, domain.ErrEmptyInput) {
		uc.log.Error("Snapshot rejected",
			zap.String("revision", snap.Revision),
			zap.Error(err))
		return nil, err
	}

	if t.Empty() {
		uc.log.Warn("Snapshot has no messages after filtering",
			zap.String("revision", snap.Revision),
			zap.Int("raw_rows", len(snap.Messages)))
	}

	uc.mu.Lock()
	uc.current = t
	uc.mu.Unlock()

	uc.log.Info("Snapshot loaded",
		zap.String("revision", t.Revision),
		zap.Int("raw_rows", len(snap.Messages)),
		zap.Int("rows", t.Len()),
		zap.Duration("duration", time.Since(start)))

	return t, nil
}

func emptyErr(t *domain.Table) error {
	if t.Empty() {
		return domain.ErrEmptyInput
	}
	return nil
}
