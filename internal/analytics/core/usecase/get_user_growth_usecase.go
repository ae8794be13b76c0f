package usecase

import (
	"context"

	"community-metrics-service/internal/analytics/core/domain"
	"community-metrics-service/internal/analytics/core/engine"
	"community-metrics-service/internal/analytics/core/ports"
)

type GetUserGrowthUseCase struct {
	snapshots ports.SnapshotLoaderPort
	cache     ports.ResultCachePort
}

func NewGetUserGrowthUseCase(snapshots ports.SnapshotLoaderPort, cache ports.ResultCachePort) *GetUserGrowthUseCase {
	return &GetUserGrowthUseCase{snapshots: snapshots, cache: cache}
}

func (uc *GetUserGrowthUseCase) Execute(ctx context.Context) (*domain.UserGrowthReport, error) {
	t, empty, err := loadTable(ctx, uc.snapshots)
	if err != nil {
		return nil, err
	}

	return cached(uc.cache, cacheKey("user_growth", t.Revision), func() (*domain.UserGrowthReport, error) {
		return &domain.UserGrowthReport{
			Revision: t.Revision,
			Points:   engine.UserGrowth(t),
			Joiners:  engine.JoinerSplit(t),
			Empty:    empty,
		}, nil
	})
}
