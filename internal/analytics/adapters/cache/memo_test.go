package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemo_HitAfterMiss(t *testing.T) {
	m, err := New(8, time.Minute, prometheus.NewRegistry())
	require.NoError(t, err)

	var calls int
	compute := func() (any, error) {
		calls++
		return "report", nil
	}

	v, err := m.Do("k", compute)
	require.NoError(t, err)
	assert.Equal(t, "report", v)

	v, err = m.Do("k", compute)
	require.NoError(t, err)
	assert.Equal(t, "report", v)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, m.lru.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookups.WithLabelValues("hit")))
}

func TestMemo_ErrorsAreNotCached(t *testing.T) {
	m, err := New(8, time.Minute, nil)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = m.Do("k", func() (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, m.lru.Len())

	v, err := m.Do("k", func() (any, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestMemo_ConcurrentCallersComputeOnce(t *testing.T) {
	m, err := New(8, time.Minute, prometheus.NewRegistry())
	require.NoError(t, err)

	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]any, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := m.Do("k", func() (any, error) {
				calls.Add(1)
				<-release
				return "report", nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, "report", v)
	}

	// callers that arrive after the leader stored the value count as hits
	miss := testutil.ToFloat64(m.lookups.WithLabelValues("miss"))
	shared := testutil.ToFloat64(m.lookups.WithLabelValues("shared"))
	hit := testutil.ToFloat64(m.lookups.WithLabelValues("hit"))
	assert.Equal(t, 1.0, miss)
	assert.Equal(t, float64(len(results)-1), shared+hit)
}

func TestMemo_JoinedCallerCountsAsShared(t *testing.T) {
	m, err := New(8, time.Minute, prometheus.NewRegistry())
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := m.Do("k", func() (any, error) {
			close(started)
			<-release
			return "report", nil
		})
		assert.NoError(t, err)
	}()
	<-started

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := m.Do("k", func() (any, error) {
			t.Error("second caller must not compute")
			return nil, nil
		})
		assert.NoError(t, err)
		assert.Equal(t, "report", v)
	}()

	// let the second caller join the in-flight call
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookups.WithLabelValues("shared")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.lookups.WithLabelValues("hit")))
}

func TestMemo_EntriesExpire(t *testing.T) {
	m, err := New(8, 10*time.Millisecond, nil)
	require.NoError(t, err)

	var calls int
	compute := func() (any, error) {
		calls++
		return calls, nil
	}

	_, err = m.Do("k", compute)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	v, err := m.Do("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}
