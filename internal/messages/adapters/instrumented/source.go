// Package instrumented decorates a snapshot source with prometheus
// collectors.
package instrumented

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"community-metrics-service/internal/messages/core/domain"
	"community-metrics-service/internal/messages/core/ports"
)

type Source struct {
	next ports.SnapshotSourcePort

	reads *prometheus.CounterVec
	rows  prometheus.Gauge
}

// NewSource wraps next and registers its collectors on reg.
func NewSource(next ports.SnapshotSourcePort, reg prometheus.Registerer) (*Source, error) {
	s := &Source{
		next: next,
		reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "community_metrics",
			Subsystem: "snapshot",
			Name:      "reads_total",
			Help:      "Full snapshot reads by result.",
		}, []string{"result"}),
		rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "community_metrics",
			Subsystem: "snapshot",
			Name:      "rows",
			Help:      "Raw rows in the last snapshot read.",
		}),
	}

	for _, c := range []prometheus.Collector{s.reads, s.rows} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Source) Revision(ctx context.Context) (string, error) {
	return s.next.Revision(ctx)
}

func (s *Source) ReadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap, err := s.next.ReadSnapshot(ctx)
	if err != nil {
		s.reads.WithLabelValues("error").Inc()
		return nil, err
	}

	s.reads.WithLabelValues("ok").Inc()
	s.rows.Set(float64(len(snap.Messages)))
	return snap, nil
}
