// Package cache memoizes analytics reports by key with a TTL, a size bound
// and per-key single-flight computation.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"

	"community-metrics-service/internal/analytics/core/ports"
)

type Memo struct {
	lru   *expirable.LRU[string, any]
	group singleflight.Group

	lookups *prometheus.CounterVec
}

var _ ports.ResultCachePort = (*Memo)(nil)

// New creates a memo holding up to size entries for ttl each. Counters are
// registered on reg when it is non-nil.
func New(size int, ttl time.Duration, reg prometheus.Registerer) (*Memo, error) {
	m := &Memo{
		lru: expirable.NewLRU[string, any](size, nil, ttl),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "community_metrics",
			Subsystem: "report_cache",
			Name:      "lookups_total",
			Help:      "Report cache lookups by result.",
		}, []string{"result"}),
	}

	if reg != nil {
		if err := reg.Register(m.lookups); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Do returns the cached value for key or computes it. Callers that arrive
// while a computation for key is running share its result.
func (m *Memo) Do(key string, compute func() (any, error)) (any, error) {
	if v, ok := m.lru.Get(key); ok {
		m.lookups.WithLabelValues("hit").Inc()
		return v, nil
	}

	// only the caller that runs the closure sets these
	var hit, computed bool
	v, err, _ := m.group.Do(key, func() (any, error) {
		if v, ok := m.lru.Get(key); ok {
			hit = true
			return v, nil
		}
		computed = true
		v, err := compute()
		if err != nil {
			return nil, err
		}
		m.lru.Add(key, v)
		return v, nil
	})

	switch {
	case hit:
		m.lookups.WithLabelValues("hit").Inc()
	case computed:
		m.lookups.WithLabelValues("miss").Inc()
	default:
		m.lookups.WithLabelValues("shared").Inc()
	}
	return v, err
}
