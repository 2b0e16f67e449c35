package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/podshift/podshift/internal/core/graph"
	"github.com/podshift/podshift/internal/core/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

func buildTestReport(t *testing.T, facts []graph.Fact, inventory []ContainerSummary) Report {
	t.Helper()

	names := make([]string, 0, len(inventory))
	for _, c := range inventory {
		names = append(names, c.Name)
	}

	g := graph.Build(facts, names)
	cycles := graph.DetectCycles(g)
	order := graph.StartupOrder(g)
	seq := plan.BuildSequence(order, g, cycles, names, plan.DefaultOptions())

	return BuildReport("20240101_120000", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		"24.0.7", inventory, nil, g, cycles, order, seq)
}

// =============================================================================
// BuildReport Tests
// =============================================================================

func TestBuildReport_Metadata(t *testing.T) {
	report := buildTestReport(t, nil, nil)

	assert.Equal(t, "20240101_120000", report.Metadata.Timestamp)
	assert.Equal(t, "2024-01-01T12:00:00Z", report.Metadata.GeneratedAt)
	assert.Equal(t, ToolVersion, report.Metadata.ToolVersion)
	assert.Equal(t, "24.0.7", report.Metadata.DockerVersion)
}

func TestBuildReport_ContainerSections(t *testing.T) {
	inventory := []ContainerSummary{
		{Name: "web", ID: "abc123", Status: "running", Image: "nginx:latest"},
		{Name: "db", ID: "def456", Status: "running", Image: "postgres:16"},
	}
	facts := []graph.Fact{
		{Source: "web", Target: "db", Kind: graph.KindNetworkShared},
		{Source: "web", Target: "db", Kind: graph.KindEnvReference},
	}

	report := buildTestReport(t, facts, inventory)

	web, ok := report.Containers["web"]
	require.True(t, ok)
	assert.Equal(t, "abc123", web.ID)
	assert.Equal(t, []string{"db"}, web.DependsOn)
	assert.Empty(t, web.DependedBy)
	require.Len(t, web.NetworkDependencies, 1)
	assert.Equal(t, "db", web.NetworkDependencies[0].Container)
	assert.Equal(t, graph.KindNetworkShared, web.NetworkDependencies[0].Type)
	require.Len(t, web.EnvironmentDependencies, 1)
	assert.Equal(t, "normal", web.MigrationPriority)

	db := report.Containers["db"]
	assert.Empty(t, db.DependsOn)
	assert.Equal(t, []string{"web"}, db.DependedBy)
	// db starts first, web second.
	assert.Equal(t, 1, db.StartupOrder)
	assert.Equal(t, 2, web.StartupOrder)
}

func TestBuildReport_GraphSection(t *testing.T) {
	inventory := []ContainerSummary{{Name: "a"}, {Name: "b"}}
	facts := []graph.Fact{
		{Source: "a", Target: "b", Kind: graph.KindContainerLink},
	}

	report := buildTestReport(t, facts, inventory)

	assert.Equal(t, []string{"a", "b"}, report.DependencyGraph.Nodes)
	require.Len(t, report.DependencyGraph.Edges, 1)
	assert.Equal(t, "a", report.DependencyGraph.Edges[0].From)
	assert.Empty(t, report.DependencyGraph.Cycles)
	assert.Equal(t, []string{"b", "a"}, report.DependencyGraph.StartupOrder)
}

func TestBuildReport_CyclicContainersHaveNoStartupPosition(t *testing.T) {
	inventory := []ContainerSummary{{Name: "x"}, {Name: "y"}}
	facts := []graph.Fact{
		{Source: "x", Target: "y", Kind: graph.KindNetworkShared},
		{Source: "y", Target: "x", Kind: graph.KindNetworkShared},
	}

	report := buildTestReport(t, facts, inventory)

	assert.Len(t, report.DependencyGraph.Cycles, 1)
	assert.Zero(t, report.Containers["x"].StartupOrder)
	assert.Zero(t, report.Containers["y"].StartupOrder)
}

func TestBuildReport_JSONContract(t *testing.T) {
	inventory := []ContainerSummary{{Name: "web"}, {Name: "db"}}
	facts := []graph.Fact{
		{Source: "web", Target: "db", Kind: graph.KindComposeDependsOn},
	}

	report := buildTestReport(t, facts, inventory)
	raw, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	depGraph, ok := decoded["dependency_graph"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"nodes", "edges", "cycles", "startup_order"} {
		assert.Contains(t, depGraph, key)
	}

	migration, ok := decoded["migration_sequence"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"phases", "parallel_groups", "sequential_order", "total_phases", "estimated_duration"} {
		assert.Contains(t, migration, key)
	}

	duration, ok := migration["estimated_duration"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{
		"total_containers",
		"estimated_sequential_minutes",
		"estimated_parallel_minutes",
		"estimated_sequential_hours",
		"estimated_parallel_hours",
		"time_savings_percent",
	} {
		assert.Contains(t, duration, key)
	}
}

func TestBuildReport_EmptyCollectionsNotNull(t *testing.T) {
	report := buildTestReport(t, nil, nil)
	raw, err := json.Marshal(report)
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"cycles":[]`)
	assert.Contains(t, string(raw), `"startup_order":[]`)
	assert.Contains(t, string(raw), `"compose_services":{}`)
}
