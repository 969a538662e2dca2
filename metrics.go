package licitadoc

import "sync/atomic"

// MetricID identifies one counter in the in-process metrics system.
type MetricID uint8

const (
	// MetricSignInSuccess counts resolved sign-ins.
	MetricSignInSuccess MetricID = iota
	// MetricSignInFailure counts rejected or failed sign-ins.
	MetricSignInFailure
	// MetricSignOut counts explicit sign-outs.
	MetricSignOut
	// MetricOrganizationsLoaded counts committed organization loads.
	MetricOrganizationsLoaded
	// MetricOrganizationLoadFailed counts organization fetches that failed.
	MetricOrganizationLoadFailed
	// MetricOrganizationLoadDiscarded counts organization loads whose result
	// arrived after a sign-out and was thrown away. These loads did not
	// fail; their identity was gone by the time they resolved.
	MetricOrganizationLoadDiscarded
	// MetricOrganizationSwitched counts active-organization switches.
	MetricOrganizationSwitched
	// MetricUnauthorized counts adapter-classified 401 responses.
	MetricUnauthorized
	// MetricForbidden counts adapter-classified 403 responses.
	MetricForbidden
	// MetricServerError counts adapter-classified 5xx responses.
	MetricServerError
	// MetricConnectivityFailure counts calls that received no response.
	MetricConnectivityFailure

	metricIDCount
)

// Metrics holds atomic counters. A disabled instance (and a nil one) is a
// no-op, so call sites never branch.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]atomic.Uint64
}

// NewMetrics creates a Metrics instance from [MetricsConfig].
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc increments one counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	m.counters[id].Add(1)
}

// Snapshot returns a point-in-time copy of all counters.
func (m *Metrics) Snapshot() map[MetricID]uint64 {
	out := make(map[MetricID]uint64, metricIDCount)
	if m == nil {
		return out
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		out[id] = m.counters[id].Load()
	}
	return out
}
