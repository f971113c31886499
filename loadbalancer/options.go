package loadbalancer

import (
	"go.uber.org/zap"

	"github.com/calincoman/Load-Balancer/kvmetrics"
)

// config holds the tunables an Option can set on a LoadBalancer before it is
// constructed. Unexported, the same way peer/hashring32's listConfig is: the
// zero value plus defaultConfig gives sane behavior with no options at all.
type config struct {
	initialRingCapacity int
	logger              *zap.Logger
	metrics             *kvmetrics.Metrics
}

var defaultConfig = config{
	initialRingCapacity: 0, // 0 tells ring.New to use its own default
	logger:              zap.NewNop(),
	metrics:             nil,
}

// Option customizes a LoadBalancer at construction time.
type Option func(*config)

// InitialRingCapacity sets the Ring's initial backing-slice capacity. It has
// no effect on correctness, only on how many allocations AddServer triggers
// while the ring grows toward its steady-state size.
func InitialRingCapacity(n int) Option {
	return func(c *config) { c.initialRingCapacity = n }
}

// Logger sets the *zap.Logger the LoadBalancer reports membership-change and
// remap activity to. A nil logger is replaced with zap.NewNop(), matching
// the defensive nil-safety peer/hashring32/config.go applies to its own
// Logger option.
func Logger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	}
}

// Metrics sets the *kvmetrics.Metrics the LoadBalancer reports ring and
// store occupancy to. A nil value disables metrics reporting entirely.
func Metrics(m *kvmetrics.Metrics) Option {
	return func(c *config) { c.metrics = m }
}
