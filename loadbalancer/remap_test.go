package loadbalancer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calincoman/Load-Balancer/ring"
)

func TestRingHasExactlyThreeTagsPerLiveServer(t *testing.T) {
	lb := New()
	ids := []ring.ServerID{1, 2, 3, 4}
	for _, id := range ids {
		require.NoError(t, lb.AddServer(id))
	}

	counts := map[ring.ServerID]int{}
	for i := 0; i < lb.ring.Len(); i++ {
		counts[lb.ring.At(i).ID]++
	}
	for _, id := range ids {
		assert.Equal(t, ring.NumReplicas, counts[id])
	}
	assert.Equal(t, len(ids)*ring.NumReplicas, lb.ring.Len())
}

func TestRemoveServerDrainsAndDestroysStore(t *testing.T) {
	lb := New()
	require.NoError(t, lb.AddServer(1))
	require.NoError(t, lb.AddServer(2))

	for i := 0; i < 30; i++ {
		_, err := lb.Store(fmt.Sprintf("k%d", i), fmt.Sprintf("v%d", i))
		require.NoError(t, err)
	}

	require.NoError(t, lb.RemoveServer(1))

	_, stillExists := lb.servers[1]
	assert.False(t, stillExists, "removed server's store must be discarded")

	// every tag belonging to server 1 must be gone from the ring
	for i := 0; i < lb.ring.Len(); i++ {
		assert.NotEqual(t, ring.ServerID(1), lb.ring.At(i).ID)
	}
}

func TestRemapOnInsertLeavesRingSortedAndTripletIntact(t *testing.T) {
	lb := New()
	require.NoError(t, lb.AddServer(1))
	for i := 0; i < 200; i++ {
		_, err := lb.Store(fmt.Sprintf("k%d", i), fmt.Sprintf("v%d", i))
		require.NoError(t, err)
	}

	require.NoError(t, lb.AddServer(2))
	require.NoError(t, lb.AddServer(3))

	last := uint32(0)
	counts := map[ring.ServerID]int{}
	for i := 0; i < lb.ring.Len(); i++ {
		tag := lb.ring.At(i)
		assert.GreaterOrEqual(t, tag.Hash, last)
		last = tag.Hash
		counts[tag.ID]++
	}
	for _, id := range []ring.ServerID{1, 2, 3} {
		assert.Equal(t, ring.NumReplicas, counts[id])
	}
}

func BenchmarkAddServer(b *testing.B) {
	lb := New(InitialRingCapacity(b.N * ring.NumReplicas))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = lb.AddServer(ring.ServerID(i))
	}
	b.ReportAllocs()
}

func BenchmarkStoreAndRetrieve(b *testing.B) {
	lb := New()
	for i := 0; i < 10; i++ {
		_ = lb.AddServer(ring.ServerID(i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := fmt.Sprintf("key-%d", i)
		_, _ = lb.Store(key, "value")
		_, _, _, _ = lb.Retrieve(key)
	}
	b.ReportAllocs()
}
