// Package domain contains the core domain types for dependency analysis.
// This is part of the Functional Core - types and pure assembly functions
// with no I/O.
package domain

import (
	"sort"
	"time"

	"github.com/podshift/podshift/internal/core/graph"
	"github.com/podshift/podshift/internal/core/plan"
)

// ToolVersion identifies the analyzer release stamped into every artifact.
const ToolVersion = "1.0.0"

// =============================================================================
// Report Types
// =============================================================================

// Metadata describes one analysis run.
type Metadata struct {
	Timestamp     string `json:"timestamp"`
	GeneratedAt   string `json:"generated_at"`
	ToolVersion   string `json:"tool_version"`
	DockerVersion string `json:"docker_version,omitempty"`
}

// ContainerSummary is the inventory view of one observed container.
type ContainerSummary struct {
	Name   string
	ID     string
	Status string
	Image  string
}

// DependencyDetail records one discovered dependency with its provenance.
type DependencyDetail struct {
	Container string     `json:"container"`
	Type      graph.Kind `json:"type"`
}

// ContainerReport is the per-container section of the artifact.
type ContainerReport struct {
	ID                      string             `json:"id"`
	Status                  string             `json:"status"`
	Image                   string             `json:"image,omitempty"`
	DependsOn               []string           `json:"depends_on"`
	DependedBy              []string           `json:"depended_by"`
	NetworkDependencies     []DependencyDetail `json:"network_dependencies"`
	VolumeDependencies      []DependencyDetail `json:"volume_dependencies"`
	LinkDependencies        []DependencyDetail `json:"link_dependencies"`
	EnvironmentDependencies []DependencyDetail `json:"environment_dependencies"`
	StartupOrder            int                `json:"startup_order"`
	MigrationPriority       string             `json:"migration_priority"`
}

// ComposeService is the per-service section for one declarative service.
type ComposeService struct {
	DependsOn   []string `json:"depends_on"`
	Links       []string `json:"links"`
	VolumesFrom []string `json:"volumes_from"`
	Networks    []string `json:"networks,omitempty"`
}

// ComposeProject groups the services declared in one compose file.
type ComposeProject struct {
	FilePath string                    `json:"file_path"`
	Services map[string]ComposeService `json:"services"`
}

// DependencyGraph is the graph section of the artifact. Field names are
// the contract existing report tooling depends on.
type DependencyGraph struct {
	Nodes        []string     `json:"nodes"`
	Edges        []graph.Edge `json:"edges"`
	Cycles       [][]string   `json:"cycles"`
	StartupOrder []string     `json:"startup_order"`
}

// Report is the complete JSON-serializable analysis artifact.
type Report struct {
	Metadata          Metadata                   `json:"metadata"`
	Containers        map[string]ContainerReport `json:"containers"`
	ComposeProjects   map[string]ComposeProject  `json:"compose_services"`
	DependencyGraph   DependencyGraph            `json:"dependency_graph"`
	MigrationSequence plan.Sequence              `json:"migration_sequence"`
}

// =============================================================================
// Report Assembly
// =============================================================================

// BuildReport assembles the analysis artifact from the pipeline outputs.
// Pure function: the result is fully determined by its inputs.
func BuildReport(
	timestamp string,
	generatedAt time.Time,
	dockerVersion string,
	inventory []ContainerSummary,
	composeProjects map[string]ComposeProject,
	g *graph.Graph,
	cycles [][]string,
	order []string,
	seq plan.Sequence,
) Report {
	report := Report{
		Metadata: Metadata{
			Timestamp:     timestamp,
			GeneratedAt:   generatedAt.Format(time.RFC3339),
			ToolVersion:   ToolVersion,
			DockerVersion: dockerVersion,
		},
		Containers:      buildContainerReports(inventory, g, order),
		ComposeProjects: composeProjects,
		DependencyGraph: DependencyGraph{
			Nodes:        g.Nodes(),
			Edges:        g.Edges(),
			Cycles:       cycles,
			StartupOrder: order,
		},
		MigrationSequence: seq,
	}

	if report.ComposeProjects == nil {
		report.ComposeProjects = map[string]ComposeProject{}
	}
	if report.DependencyGraph.Cycles == nil {
		report.DependencyGraph.Cycles = [][]string{}
	}
	if report.DependencyGraph.StartupOrder == nil {
		report.DependencyGraph.StartupOrder = []string{}
	}

	return report
}

func buildContainerReports(inventory []ContainerSummary, g *graph.Graph, order []string) map[string]ContainerReport {
	position := make(map[string]int, len(order))
	for i, node := range order {
		position[node] = i + 1
	}

	dependedBy := make(map[string][]string)
	detailsByKind := make(map[string]map[graph.Kind][]DependencyDetail)
	for _, edge := range g.Edges() {
		dependedBy[edge.To] = append(dependedBy[edge.To], edge.From)
		for _, kind := range edge.Kinds {
			if detailsByKind[edge.From] == nil {
				detailsByKind[edge.From] = make(map[graph.Kind][]DependencyDetail)
			}
			detailsByKind[edge.From][kind] = append(detailsByKind[edge.From][kind], DependencyDetail{
				Container: edge.To,
				Type:      kind,
			})
		}
	}

	reports := make(map[string]ContainerReport, len(inventory))
	for _, c := range inventory {
		deps := g.Dependencies(c.Name)
		if deps == nil {
			deps = []string{}
		}

		dependents := dependedBy[c.Name]
		if dependents == nil {
			dependents = []string{}
		} else {
			sort.Strings(dependents)
		}

		kinds := detailsByKind[c.Name]
		reports[c.Name] = ContainerReport{
			ID:         c.ID,
			Status:     c.Status,
			Image:      c.Image,
			DependsOn:  deps,
			DependedBy: dependents,
			NetworkDependencies: collectDetails(kinds,
				graph.KindNetworkShared, graph.KindComposeNetworkShared),
			VolumeDependencies: collectDetails(kinds,
				graph.KindVolumeShared, graph.KindBindShared, graph.KindComposeVolumesFrom),
			LinkDependencies: collectDetails(kinds,
				graph.KindContainerLink, graph.KindComposeLinks),
			EnvironmentDependencies: collectDetails(kinds,
				graph.KindEnvReference),
			StartupOrder:      position[c.Name],
			MigrationPriority: "normal",
		}
	}

	return reports
}

func collectDetails(byKind map[graph.Kind][]DependencyDetail, kinds ...graph.Kind) []DependencyDetail {
	out := []DependencyDetail{}
	for _, kind := range kinds {
		out = append(out, byKind[kind]...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Container != out[j].Container {
			return out[i].Container < out[j].Container
		}
		return out[i].Type < out[j].Type
	})
	return out
}
