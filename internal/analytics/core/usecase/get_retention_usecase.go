package usecase

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"community-metrics-service/internal/analytics/core/domain"
	"community-metrics-service/internal/analytics/core/engine"
	"community-metrics-service/internal/analytics/core/ports"
	msgdomain "community-metrics-service/internal/messages/core/domain"
)

type GetRetentionInput struct {
	RetentionDays int
	Cohort        string   // "", "all", "new", "existing"
	Authors       []string // optional explicit subset, intersected with the cohort
	Channels      []string // optional channel restriction
}

type GetRetentionUseCase struct {
	snapshots ports.SnapshotLoaderPort
	cache     ports.ResultCachePort
	log       *zap.Logger
}

func NewGetRetentionUseCase(snapshots ports.SnapshotLoaderPort, cache ports.ResultCachePort, log *zap.Logger) *GetRetentionUseCase {
	return &GetRetentionUseCase{snapshots: snapshots, cache: cache, log: log}
}

// Execute evaluates retention for the selected cohort. Censored authors are
// absent from the records and from the summary.
func (uc *GetRetentionUseCase) Execute(ctx context.Context, in GetRetentionInput) (*domain.RetentionReport, error) {
	if in.RetentionDays <= 0 {
		uc.log.Warn("Invalid retention period", zap.Int("retention_days", in.RetentionDays))
		return nil, domain.ErrInvalidRetentionDays
	}

	cohort := in.Cohort
	if cohort == "" {
		cohort = domain.CohortAll
	}
	switch cohort {
	case domain.CohortAll, domain.CohortNew, domain.CohortExisting:
	default:
		uc.log.Warn("Invalid retention cohort", zap.String("cohort", in.Cohort))
		return nil, domain.ErrInvalidCohort
	}

	t, empty, err := loadTable(ctx, uc.snapshots)
	if err != nil {
		return nil, err
	}

	key := cacheKey("retention", t.Revision, strconv.Itoa(in.RetentionDays), cohort,
		normalizedList(in.Authors), normalizedList(in.Channels))

	return cached(uc.cache, key, func() (*domain.RetentionReport, error) {
		records, err := engine.Retention(t, engine.RetentionQuery{
			Days:     in.RetentionDays,
			Authors:  selectAuthors(t, cohort, in.Authors),
			Channels: in.Channels,
		})
		if err != nil {
			return nil, err
		}

		return &domain.RetentionReport{
			Revision:      t.Revision,
			RetentionDays: in.RetentionDays,
			Cohort:        cohort,
			Records:       records,
			Summary:       engine.SummarizeRetention(records),
			Empty:         empty,
		}, nil
	})
}

// selectAuthors resolves the cohort to an author list; nil means everyone.
func selectAuthors(t *msgdomain.Table, cohort string, explicit []string) []string {
	if cohort == domain.CohortAll {
		return explicit
	}

	members := engine.AuthorsByAccountAge(t, cohort == domain.CohortNew)
	if explicit == nil {
		return members
	}

	in := make(map[string]struct{}, len(members))
	for _, a := range members {
		in[a] = struct{}{}
	}
	out := make([]string, 0, len(explicit))
	for _, a := range explicit {
		if _, ok := in[a]; ok {
			out = append(out, a)
		}
	}
	return out
}
