package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"community-metrics-service/internal/analytics/core/domain"
	"community-metrics-service/internal/analytics/core/usecase"
	msgdomain "community-metrics-service/internal/messages/core/domain"
)

// Fake loader implementing SnapshotLoaderPort
type fakeLoader struct {
	ExecuteFn func(ctx context.Context) (*msgdomain.Table, error)
	called    int
}

func (f *fakeLoader) Execute(ctx context.Context) (*msgdomain.Table, error) {
	f.called++
	return f.ExecuteFn(ctx)
}

// Fake cache implementing ResultCachePort; it never stores anything but
// records the keys it was asked for.
type fakeCache struct {
	keys []string
}

func (f *fakeCache) Do(key string, compute func() (any, error)) (any, error) {
	f.keys = append(f.keys, key)
	return compute()
}

func loaderOf(t *msgdomain.Table, err error) *fakeLoader {
	return &fakeLoader{ExecuteFn: func(ctx context.Context) (*msgdomain.Table, error) { return t, err }}
}

func message(channel, author string, sent time.Time, newUser bool) msgdomain.Message {
	content := "x"
	return msgdomain.Message{
		ChannelName:   channel,
		AuthorName:    author,
		AuthorCreated: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Timestamp:     sent,
		Content:       &content,
		NewUser:       newUser,
	}
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC)
}

func sampleTable() *msgdomain.Table {
	return &msgdomain.Table{
		Revision: "rev-1",
		Messages: []msgdomain.Message{
			message("general", "alice", day(1), true),
			message("general", "bob", day(1), false),
			message("general", "bob", day(3), false),
			message("random", "alice", day(10), true),
			message("general", "carol", day(20), false),
		},
	}
}

// ------------------------------------------------------------
// ACTIVE USERS
// ------------------------------------------------------------
func TestGetActiveUsers_DAU(t *testing.T) {
	cache := &fakeCache{}
	uc := usecase.NewGetActiveUsersUseCase(loaderOf(sampleTable(), nil), cache, zap.NewNop())

	res, err := uc.Execute(context.Background(), usecase.GetActiveUsersInput{Metric: domain.MetricDAU})
	require.NoError(t, err)

	assert.Equal(t, "rev-1", res.Revision)
	assert.Equal(t, domain.MetricDAU, res.Metric)
	assert.False(t, res.Empty)
	require.Len(t, res.Points, 20)
	assert.Equal(t, 2, res.Points[0].Count)
	assert.Equal(t, 0, res.Points[1].Count)
	assert.Len(t, cache.keys, 1)
}

func TestGetActiveUsers_InvalidMetric(t *testing.T) {
	loader := loaderOf(sampleTable(), nil)
	uc := usecase.NewGetActiveUsersUseCase(loader, &fakeCache{}, zap.NewNop())

	_, err := uc.Execute(context.Background(), usecase.GetActiveUsersInput{Metric: "wau"})

	assert.ErrorIs(t, err, domain.ErrInvalidMetric)
	assert.Equal(t, 0, loader.called, "validation happens before loading")
}

func TestGetActiveUsers_EmptySnapshot(t *testing.T) {
	empty := &msgdomain.Table{Revision: "rev-0"}
	uc := usecase.NewGetActiveUsersUseCase(loaderOf(empty, msgdomain.ErrEmptyInput), &fakeCache{}, zap.NewNop())

	res, err := uc.Execute(context.Background(), usecase.GetActiveUsersInput{Metric: domain.MetricMAU})
	require.NoError(t, err)

	assert.True(t, res.Empty)
	assert.NotNil(t, res.Points)
	assert.Empty(t, res.Points)
	assert.Nil(t, res.Summary.Delta)
}

func TestGetActiveUsers_LoaderError(t *testing.T) {
	loadErr := &msgdomain.DataFormatError{Line: 3, Reason: "bad"}
	uc := usecase.NewGetActiveUsersUseCase(loaderOf(nil, loadErr), &fakeCache{}, zap.NewNop())

	_, err := uc.Execute(context.Background(), usecase.GetActiveUsersInput{Metric: domain.MetricDAU})

	assert.ErrorIs(t, err, msgdomain.ErrDataFormat)
}

// ------------------------------------------------------------
// CHANNEL ACTIVITY
// ------------------------------------------------------------
func TestGetChannelActivity_AllTime(t *testing.T) {
	uc := usecase.NewGetChannelActivityUseCase(loaderOf(sampleTable(), nil), &fakeCache{}, zap.NewNop())

	res, err := uc.Execute(context.Background(), usecase.GetChannelActivityInput{})
	require.NoError(t, err)

	assert.Nil(t, res.Days)
	require.Len(t, res.Channels, 2)
	assert.Equal(t, "general", res.Channels[0].ChannelName)
	assert.Equal(t, 4, res.Channels[0].TotalCount)
	assert.Equal(t, "bob", res.Channels[0].TopAuthor)
	assert.Len(t, res.Totals, 20)
}

func TestGetChannelActivity_InvalidDays(t *testing.T) {
	zero := 0
	uc := usecase.NewGetChannelActivityUseCase(loaderOf(sampleTable(), nil), &fakeCache{}, zap.NewNop())

	_, err := uc.Execute(context.Background(), usecase.GetChannelActivityInput{Days: &zero})

	assert.ErrorIs(t, err, domain.ErrInvalidDays)
}

func TestGetChannelActivity_CacheKeyDependsOnWindow(t *testing.T) {
	cache := &fakeCache{}
	uc := usecase.NewGetChannelActivityUseCase(loaderOf(sampleTable(), nil), cache, zap.NewNop())

	seven, thirty := 7, 30
	for _, d := range []*int{&seven, &thirty, &seven, nil} {
		_, err := uc.Execute(context.Background(), usecase.GetChannelActivityInput{Days: d})
		require.NoError(t, err)
	}

	require.Len(t, cache.keys, 4)
	assert.Equal(t, cache.keys[0], cache.keys[2])
	assert.NotEqual(t, cache.keys[0], cache.keys[1])
	assert.NotEqual(t, cache.keys[0], cache.keys[3])
}

// ------------------------------------------------------------
// RETENTION
// ------------------------------------------------------------
func TestGetRetention_DefaultCohort(t *testing.T) {
	uc := usecase.NewGetRetentionUseCase(loaderOf(sampleTable(), nil), &fakeCache{}, zap.NewNop())

	res, err := uc.Execute(context.Background(), usecase.GetRetentionInput{RetentionDays: 7})
	require.NoError(t, err)

	assert.Equal(t, domain.CohortAll, res.Cohort)
	// alice and bob joined on day 1; carol is censored
	require.Len(t, res.Records, 2)
	assert.Equal(t, "alice", res.Records[0].AuthorName)
	assert.True(t, res.Records[0].Retained)
	assert.Equal(t, "bob", res.Records[1].AuthorName)
	assert.False(t, res.Records[1].Retained)
	require.NotNil(t, res.Summary.Rate)
	assert.InDelta(t, 0.5, *res.Summary.Rate, 1e-9)
}

func TestGetRetention_NewCohort(t *testing.T) {
	uc := usecase.NewGetRetentionUseCase(loaderOf(sampleTable(), nil), &fakeCache{}, zap.NewNop())

	res, err := uc.Execute(context.Background(), usecase.GetRetentionInput{
		RetentionDays: 7,
		Cohort:        domain.CohortNew,
	})
	require.NoError(t, err)

	require.Len(t, res.Records, 1)
	assert.Equal(t, "alice", res.Records[0].AuthorName)
}

func TestGetRetention_ExistingCohortIntersectsAuthors(t *testing.T) {
	uc := usecase.NewGetRetentionUseCase(loaderOf(sampleTable(), nil), &fakeCache{}, zap.NewNop())

	res, err := uc.Execute(context.Background(), usecase.GetRetentionInput{
		RetentionDays: 7,
		Cohort:        domain.CohortExisting,
		Authors:       []string{"alice"},
	})
	require.NoError(t, err)

	assert.Empty(t, res.Records)
	assert.Equal(t, 0, res.Summary.Evaluated)
	assert.Nil(t, res.Summary.Rate)
}

func TestGetRetention_Validation(t *testing.T) {
	loader := loaderOf(sampleTable(), nil)
	uc := usecase.NewGetRetentionUseCase(loader, &fakeCache{}, zap.NewNop())

	_, err := uc.Execute(context.Background(), usecase.GetRetentionInput{RetentionDays: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidRetentionDays)

	_, err = uc.Execute(context.Background(), usecase.GetRetentionInput{RetentionDays: 7, Cohort: "vip"})
	assert.ErrorIs(t, err, domain.ErrInvalidCohort)

	assert.Equal(t, 0, loader.called)
}

func TestGetRetention_CacheKeyIgnoresAuthorOrder(t *testing.T) {
	cache := &fakeCache{}
	uc := usecase.NewGetRetentionUseCase(loaderOf(sampleTable(), nil), cache, zap.NewNop())

	for _, authors := range [][]string{{"bob", "alice"}, {"alice", "bob", "alice"}, nil} {
		_, err := uc.Execute(context.Background(), usecase.GetRetentionInput{RetentionDays: 7, Authors: authors})
		require.NoError(t, err)
	}

	require.Len(t, cache.keys, 3)
	assert.Equal(t, cache.keys[0], cache.keys[1])
	assert.NotEqual(t, cache.keys[0], cache.keys[2])
}

// ------------------------------------------------------------
// USER GROWTH
// ------------------------------------------------------------
func TestGetUserGrowth(t *testing.T) {
	uc := usecase.NewGetUserGrowthUseCase(loaderOf(sampleTable(), nil), &fakeCache{})

	res, err := uc.Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Points, 3)
	assert.Equal(t, 3, res.Points[2].Total)
	assert.Equal(t, 1, res.Joiners.NewAccounts)
	assert.Equal(t, 2, res.Joiners.ExistingAccounts)
}

func TestGetUserGrowth_LoaderError(t *testing.T) {
	boom := errors.New("boom")
	uc := usecase.NewGetUserGrowthUseCase(loaderOf(nil, boom), &fakeCache{})

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, boom)
}
