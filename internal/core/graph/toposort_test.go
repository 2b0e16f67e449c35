package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// StartupOrder Tests
// =============================================================================

func TestStartupOrder_Empty(t *testing.T) {
	assert.Empty(t, StartupOrder(Build(nil, nil)))
}

func TestStartupOrder_LinearChain(t *testing.T) {
	// A depends on B depends on C: startup must be C, B, A.
	g := Build([]Fact{
		{Source: "A", Target: "B", Kind: KindComposeDependsOn},
		{Source: "B", Target: "C", Kind: KindComposeDependsOn},
	}, nil)

	assert.Equal(t, []string{"C", "B", "A"}, StartupOrder(g))
}

func TestStartupOrder_DependenciesFirst(t *testing.T) {
	g := Build([]Fact{
		{Source: "web", Target: "api", Kind: KindComposeDependsOn},
		{Source: "web", Target: "cache", Kind: KindComposeDependsOn},
		{Source: "api", Target: "db", Kind: KindComposeDependsOn},
		{Source: "cache", Target: "db", Kind: KindComposeDependsOn},
	}, nil)

	order := StartupOrder(g)
	assert.Len(t, order, g.NodeCount())

	index := make(map[string]int)
	for i, node := range order {
		index[node] = i
	}
	for _, edge := range g.Edges() {
		assert.Less(t, index[edge.To], index[edge.From],
			"dependency %s must start before %s", edge.To, edge.From)
	}
}

func TestStartupOrder_IndependentNodesSorted(t *testing.T) {
	g := Build([]Fact{
		{Source: "zeta", Target: "shared", Kind: KindNetworkShared},
		{Source: "alpha", Target: "shared", Kind: KindNetworkShared},
	}, nil)

	// Seed order is lexicographic, so "shared" first, then released
	// dependents in name order.
	assert.Equal(t, []string{"shared", "alpha", "zeta"}, StartupOrder(g))
}

func TestStartupOrder_CycleOmitted(t *testing.T) {
	g := Build([]Fact{
		{Source: "X", Target: "Y", Kind: KindNetworkShared},
		{Source: "Y", Target: "X", Kind: KindNetworkShared},
	}, nil)

	assert.Empty(t, StartupOrder(g))
}

func TestStartupOrder_PartialWithCycle(t *testing.T) {
	// db is orderable; a/b cycle and their dependent web are not.
	g := Build([]Fact{
		{Source: "a", Target: "b", Kind: KindComposeDependsOn},
		{Source: "b", Target: "a", Kind: KindComposeDependsOn},
		{Source: "web", Target: "a", Kind: KindComposeDependsOn},
		{Source: "web", Target: "db", Kind: KindComposeDependsOn},
	}, nil)

	order := StartupOrder(g)
	assert.Equal(t, []string{"db"}, order)
	assert.Less(t, len(order), g.NodeCount())
}

func TestStartupOrder_AcyclicCoversAllNodes(t *testing.T) {
	g := Build([]Fact{
		{Source: "d", Target: "c", Kind: KindVolumeShared},
		{Source: "c", Target: "b", Kind: KindVolumeShared},
		{Source: "b", Target: "a", Kind: KindVolumeShared},
		{Source: "d", Target: "a", Kind: KindVolumeShared},
	}, nil)

	assert.Len(t, StartupOrder(g), g.NodeCount())
}
