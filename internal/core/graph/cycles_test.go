package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// DetectCycles Tests
// =============================================================================

func TestDetectCycles_EmptyGraph(t *testing.T) {
	g := Build(nil, nil)
	assert.Empty(t, DetectCycles(g))
}

func TestDetectCycles_AcyclicChain(t *testing.T) {
	g := Build([]Fact{
		{Source: "web", Target: "api", Kind: KindComposeDependsOn},
		{Source: "api", Target: "db", Kind: KindComposeDependsOn},
	}, nil)
	assert.Empty(t, DetectCycles(g))
}

func TestDetectCycles_TwoNodeCycle(t *testing.T) {
	g := Build([]Fact{
		{Source: "x", Target: "y", Kind: KindNetworkShared},
		{Source: "y", Target: "x", Kind: KindNetworkShared},
	}, nil)

	cycles := DetectCycles(g)
	assert.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"x", "y"}, cycles[0])
}

func TestDetectCycles_ThreeNodeCycle(t *testing.T) {
	g := Build([]Fact{
		{Source: "a", Target: "b", Kind: KindContainerLink},
		{Source: "b", Target: "c", Kind: KindContainerLink},
		{Source: "c", Target: "a", Kind: KindContainerLink},
	}, nil)

	cycles := DetectCycles(g)
	assert.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, cycles[0])
}

func TestDetectCycles_CycleWithTail(t *testing.T) {
	// tail depends into the cycle but is not part of it.
	g := Build([]Fact{
		{Source: "tail", Target: "a", Kind: KindComposeDependsOn},
		{Source: "a", Target: "b", Kind: KindComposeDependsOn},
		{Source: "b", Target: "a", Kind: KindComposeDependsOn},
	}, nil)

	cycles := DetectCycles(g)
	assert.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"a", "b"}, cycles[0])
	assert.NotContains(t, cycles[0], "tail")
}

func TestDetectCycles_SelfLoop(t *testing.T) {
	g := Build([]Fact{
		{Source: "solo", Target: "solo", Kind: KindEnvReference},
	}, nil)

	cycles := DetectCycles(g)
	assert.Equal(t, [][]string{{"solo"}}, cycles)
}

func TestDetectCycles_MultipleDisjointCycles(t *testing.T) {
	g := Build([]Fact{
		{Source: "a", Target: "b", Kind: KindNetworkShared},
		{Source: "b", Target: "a", Kind: KindNetworkShared},
		{Source: "p", Target: "q", Kind: KindVolumeShared},
		{Source: "q", Target: "p", Kind: KindVolumeShared},
	}, nil)

	cycles := DetectCycles(g)
	assert.Len(t, cycles, 2)

	var all []string
	for _, c := range cycles {
		all = append(all, c...)
	}
	assert.ElementsMatch(t, []string{"a", "b", "p", "q"}, all)
}

func TestDetectCycles_Deterministic(t *testing.T) {
	facts := []Fact{
		{Source: "m", Target: "n", Kind: KindNetworkShared},
		{Source: "n", Target: "m", Kind: KindNetworkShared},
	}

	first := DetectCycles(Build(facts, nil))
	second := DetectCycles(Build(facts, nil))
	assert.Equal(t, first, second)
}

// =============================================================================
// CycleNodes Tests
// =============================================================================

func TestCycleNodes_Union(t *testing.T) {
	cycles := [][]string{
		{"b", "a"},
		{"a", "c"},
	}
	assert.Equal(t, []string{"a", "b", "c"}, CycleNodes(cycles))
}

func TestCycleNodes_Empty(t *testing.T) {
	assert.Empty(t, CycleNodes(nil))
}
