// Package config loads a declarative server topology for the load balancer
// from YAML, grounded in yarpcconfig's Config-struct-plus-tag convention
// (see peer/hashring32/config.go's Config type) but using gopkg.in/yaml.v2
// directly rather than yarpcconfig's dynamic dispatch, since this system has
// exactly one thing to configure: which server ids start out registered.
package config

import (
	"gopkg.in/yaml.v2"

	"github.com/calincoman/Load-Balancer/loadbalancer"
	"github.com/calincoman/Load-Balancer/ring"
)

// Topology is a declarative list of server ids to seed a LoadBalancer with,
// in the order they should be added. It is the YAML analogue of calling
// AddServer once per id.
type Topology struct {
	Servers []ring.ServerID `yaml:"servers"`
}

// Parse decodes a Topology from YAML document data.
func Parse(data []byte) (Topology, error) {
	var t Topology
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Topology{}, err
	}
	return t, nil
}

// Apply adds every server in the topology to lb, in order, aggregating any
// failures via LoadBalancer.AddServers rather than stopping at the first
// one.
func (t Topology) Apply(lb *loadbalancer.LoadBalancer) error {
	return lb.AddServers(t.Servers)
}
