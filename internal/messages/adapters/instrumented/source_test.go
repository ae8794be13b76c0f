package instrumented

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"community-metrics-service/internal/messages/core/domain"
)

type fakeSource struct {
	snap *domain.Snapshot
	err  error
}

func (f *fakeSource) Revision(ctx context.Context) (string, error) { return "r1", nil }

func (f *fakeSource) ReadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	return f.snap, f.err
}

func TestSource_RecordsReadsAndRows(t *testing.T) {
	inner := &fakeSource{snap: &domain.Snapshot{Revision: "r1", Messages: make([]domain.Message, 3)}}

	src, err := NewSource(inner, prometheus.NewRegistry())
	require.NoError(t, err)

	rev, err := src.Revision(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "r1", rev)

	_, err = src.ReadSnapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(src.reads.WithLabelValues("ok")))
	assert.Equal(t, 3.0, testutil.ToFloat64(src.rows))

	inner.err = errors.New("boom")
	_, err = src.ReadSnapshot(context.Background())
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(src.reads.WithLabelValues("error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(src.rows), "gauge keeps the last good read")
}

func TestNewSource_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := NewSource(&fakeSource{}, reg)
	require.NoError(t, err)

	_, err = NewSource(&fakeSource{}, reg)
	assert.Error(t, err)
}
