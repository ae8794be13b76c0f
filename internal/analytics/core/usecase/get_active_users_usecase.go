package usecase

import (
	"context"

	"go.uber.org/zap"

	"community-metrics-service/internal/analytics/core/domain"
	"community-metrics-service/internal/analytics/core/engine"
	"community-metrics-service/internal/analytics/core/ports"
)

type GetActiveUsersInput struct {
	Metric string // "dau" / "mau"
}

type GetActiveUsersUseCase struct {
	snapshots ports.SnapshotLoaderPort
	cache     ports.ResultCachePort
	log       *zap.Logger
}

func NewGetActiveUsersUseCase(snapshots ports.SnapshotLoaderPort, cache ports.ResultCachePort, log *zap.Logger) *GetActiveUsersUseCase {
	return &GetActiveUsersUseCase{snapshots: snapshots, cache: cache, log: log}
}

// Execute builds the gap-free DAU or MAU series of the current snapshot with
// its 30-day trailing mean and headline figure.
func (uc *GetActiveUsersUseCase) Execute(ctx context.Context, in GetActiveUsersInput) (*domain.ActiveUsersReport, error) {
	if in.Metric != domain.MetricDAU && in.Metric != domain.MetricMAU {
		uc.log.Warn("Invalid active users metric", zap.String("metric", in.Metric))
		return nil, domain.ErrInvalidMetric
	}

	t, empty, err := loadTable(ctx, uc.snapshots)
	if err != nil {
		return nil, err
	}

	key := cacheKey("active_users", t.Revision, in.Metric)
	return cached(uc.cache, key, func() (*domain.ActiveUsersReport, error) {
		var series []domain.DailyCount
		var summary domain.ActivitySummary

		switch in.Metric {
		case domain.MetricDAU:
			series = engine.DailyActiveUsers(t)
			summary = engine.SummarizeDAU(series)
		case domain.MetricMAU:
			series = engine.MonthlyActiveUsers(t)
			summary = engine.SummarizeMAU(series)
		}

		return &domain.ActiveUsersReport{
			Revision: t.Revision,
			Metric:   in.Metric,
			Points:   engine.TrailingMean(series, engine.MonthWindowDays),
			Summary:  summary,
			Empty:    empty,
		}, nil
	})
}
