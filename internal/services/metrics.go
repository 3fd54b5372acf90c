package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/andreprog02/saas-sst/internal/compliance"
)

// Metrics exposes compliance state to Prometheus
type Metrics struct {
	obligations        *prometheus.GaugeVec
	pendingInspections *prometheus.GaugeVec
	dashboardBuilds    prometheus.Counter
	cacheHits          prometheus.Counter
	recordsCreated     *prometheus.CounterVec
}

// NewMetrics registers the compliance metrics with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		obligations: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sst_obligations",
			Help: "Obligations per tenant, kind and state as of the last dashboard build",
		}, []string{"tenant_id", "kind", "state"}),
		pendingInspections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sst_pending_inspections",
			Help: "Active assets awaiting inspection per tenant",
		}, []string{"tenant_id"}),
		dashboardBuilds: factory.NewCounter(prometheus.CounterOpts{
			Name: "sst_dashboard_builds_total",
			Help: "Total number of dashboards computed from the database",
		}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "sst_dashboard_cache_hits_total",
			Help: "Total number of dashboards served from cache",
		}),
		recordsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sst_records_created_total",
			Help: "Total number of records created per record type",
		}, []string{"record"}),
	}
}

// ObserveDashboard publishes the counts of a freshly built dashboard
func (m *Metrics) ObserveDashboard(d *compliance.Dashboard) {
	m.dashboardBuilds.Inc()
	for kind, counts := range d.Obligations {
		k := string(kind)
		m.obligations.WithLabelValues(d.TenantID, k, string(compliance.StateOK)).Set(float64(counts.OK))
		m.obligations.WithLabelValues(d.TenantID, k, string(compliance.StateDueSoon)).Set(float64(counts.DueSoon))
		m.obligations.WithLabelValues(d.TenantID, k, string(compliance.StateOverdue)).Set(float64(counts.Overdue))
		m.obligations.WithLabelValues(d.TenantID, k, string(compliance.StateUnknown)).Set(float64(counts.Unknown))
	}
	m.pendingInspections.WithLabelValues(d.TenantID).Set(float64(len(d.PendingInspections)))
}

// CacheHit counts a dashboard served from cache
func (m *Metrics) CacheHit() {
	m.cacheHits.Inc()
}

// RecordCreated counts one created record of the given type
func (m *Metrics) RecordCreated(record string) {
	m.recordsCreated.WithLabelValues(record).Inc()
}
