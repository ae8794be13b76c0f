package usecase

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"community-metrics-service/internal/analytics/core/domain"
	"community-metrics-service/internal/analytics/core/engine"
	"community-metrics-service/internal/analytics/core/ports"
)

type GetChannelActivityInput struct {
	Days *int // nil = all time
}

type GetChannelActivityUseCase struct {
	snapshots ports.SnapshotLoaderPort
	cache     ports.ResultCachePort
	log       *zap.Logger
}

func NewGetChannelActivityUseCase(snapshots ports.SnapshotLoaderPort, cache ports.ResultCachePort, log *zap.Logger) *GetChannelActivityUseCase {
	return &GetChannelActivityUseCase{snapshots: snapshots, cache: cache, log: log}
}

// Execute ranks channels over the trailing window and adds the per-day
// message timeline of the same window.
func (uc *GetChannelActivityUseCase) Execute(ctx context.Context, in GetChannelActivityInput) (*domain.ChannelActivityReport, error) {
	window := "all"
	if in.Days != nil {
		if *in.Days <= 0 {
			uc.log.Warn("Invalid channel activity window", zap.Int("days", *in.Days))
			return nil, domain.ErrInvalidDays
		}
		window = strconv.Itoa(*in.Days)
	}

	t, empty, err := loadTable(ctx, uc.snapshots)
	if err != nil {
		return nil, err
	}

	key := cacheKey("channel_activity", t.Revision, window)
	return cached(uc.cache, key, func() (*domain.ChannelActivityReport, error) {
		timeline, totals := engine.ChannelTimeline(t, in.Days)

		var days *int
		if in.Days != nil {
			d := *in.Days
			days = &d
		}

		return &domain.ChannelActivityReport{
			Revision: t.Revision,
			Days:     days,
			Channels: engine.ChannelActivity(t, in.Days),
			Timeline: timeline,
			Totals:   totals,
			Empty:    empty,
		}, nil
	})
}
