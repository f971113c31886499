package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calincoman/Load-Balancer/loadbalancer"
	"github.com/calincoman/Load-Balancer/ring"
)

func TestParseDecodesServerList(t *testing.T) {
	doc := []byte(`
servers:
  - 1
  - 2
  - 3
`)
	got, err := Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, []ring.ServerID{1, 2, 3}, got.Servers)
}

func TestParseEmptyDocumentYieldsNoServers(t *testing.T) {
	got, err := Parse([]byte(``))
	require.NoError(t, err)
	assert.Empty(t, got.Servers)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("servers: [1, 2"))
	require.Error(t, err)
}

func TestApplySeedsEveryServer(t *testing.T) {
	top := Topology{Servers: []ring.ServerID{1, 2, 3}}
	lb := loadbalancer.New()

	require.NoError(t, top.Apply(lb))

	for _, id := range top.Servers {
		assert.Error(t, lb.AddServer(id), "server %d should already be registered", id)
	}
}

func TestApplyAggregatesDuplicateIDErrors(t *testing.T) {
	top := Topology{Servers: []ring.ServerID{1, 1, 2}}
	lb := loadbalancer.New()

	err := top.Apply(lb)
	require.Error(t, err)

	assert.Error(t, lb.AddServer(2))
	assert.Error(t, lb.AddServer(1))
}
