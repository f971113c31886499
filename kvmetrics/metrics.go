// Package kvmetrics instruments the load balancer with operational counters
// and gauges, grounded in internal/observability's CounterVector/Scope
// registration pattern: metrics are registered once, guarded by sync.Once,
// and every increment is a no-op if the scope was never wired in.
package kvmetrics

import (
	"sync"

	"go.uber.org/net/metrics"
)

// Metrics is the set of counters and gauges the load balancer reports. A nil
// *Metrics is valid and every method on it is a no-op, so components can
// take a *Metrics unconditionally and skip a nil check at every call site.
type Metrics struct {
	keysRemapped *metrics.CounterVector
	ringTags     *metrics.Gauge
	storeKeys    *metrics.GaugeVector
}

var registerOnce sync.Once

// New registers the load balancer's metrics against scope and returns the
// handle used to report them. Passing a nil scope is valid and yields a
// *Metrics whose methods are all no-ops. Registration happens only on the
// first call with a non-nil scope in a process; every later call returns a
// *Metrics whose methods are also no-ops.
func New(scope *metrics.Scope) *Metrics {
	if scope == nil {
		return nil
	}

	m := &Metrics{}
	registerOnce.Do(func() {
		m.keysRemapped, _ = scope.CounterVector(metrics.Spec{
			Name:      "keys_remapped",
			Help:      "Total number of keys migrated between servers by the remap protocol.",
			ConstTags: map[string]string{"component": "loadbalancer"},
			VarTags:   []string{"reason"},
		})
		m.ringTags, _ = scope.Gauge(metrics.Spec{
			Name:      "ring_tags",
			Help:      "Current number of replica tags on the ring.",
			ConstTags: map[string]string{"component": "loadbalancer"},
		})
		m.storeKeys, _ = scope.GaugeVector(metrics.Spec{
			Name:      "store_keys",
			Help:      "Current number of keys held by a single server's store.",
			ConstTags: map[string]string{"component": "loadbalancer"},
			VarTags:   []string{"server_id"},
		})
	})
	return m
}

// IncKeysRemapped records n keys migrated during a remap-on-insert or
// remap-on-remove pass, tagged with why the migration happened.
func (m *Metrics) IncKeysRemapped(reason string, n int) {
	if m == nil || m.keysRemapped == nil || n == 0 {
		return
	}
	if c, err := m.keysRemapped.Get("reason", reason); err == nil {
		c.Add(int64(n))
	}
}

// SetRingTags reports the ring's current tag count.
func (m *Metrics) SetRingTags(n int) {
	if m == nil || m.ringTags == nil {
		return
	}
	m.ringTags.Store(int64(n))
}

// SetStoreKeys reports serverID's store's current key count.
func (m *Metrics) SetStoreKeys(serverID string, n int) {
	if m == nil || m.storeKeys == nil {
		return
	}
	if g, err := m.storeKeys.Get("server_id", serverID); err == nil {
		g.Store(int64(n))
	}
}
