package docker

import (
	"encoding/json"
	"strings"

	"github.com/podshift/podshift/internal/core/graph"
)

// =============================================================================
// Relationship Extraction
// =============================================================================

// dependencyLabels are the label keys checked for declared dependencies.
var dependencyLabels = []string{
	"com.docker.compose.depends_on",
	"com.docker.stack.depends_on",
	"depends_on",
	"requires",
}

// ExtractFacts derives every runtime relationship fact from a snapshot.
// Pure function: it inspects the snapshot only, never the daemon.
func ExtractFacts(snap *Snapshot) []graph.Fact {
	if snap == nil {
		return nil
	}

	var facts []graph.Fact
	facts = append(facts, networkFacts(snap)...)
	facts = append(facts, mountFacts(snap.Containers)...)
	facts = append(facts, envFacts(snap.Containers)...)
	facts = append(facts, linkFacts(snap.Containers)...)
	facts = append(facts, labelFacts(snap.Containers)...)
	return facts
}

// networkFacts links every pair of containers attached to the same
// custom network. The default bridge network is skipped: membership there
// says nothing about intent.
func networkFacts(snap *Snapshot) []graph.Fact {
	var facts []graph.Fact

	for _, net := range snap.Networks {
		if net.Name == "bridge" {
			continue
		}
		for _, a := range net.Containers {
			for _, b := range net.Containers {
				if a == b {
					continue
				}
				facts = append(facts, graph.Fact{
					Source: a,
					Target: b,
					Kind:   graph.KindNetworkShared,
				})
			}
		}
	}

	return facts
}

// mountFacts links containers sharing a named volume or a bind source.
func mountFacts(containers []ContainerDetails) []graph.Fact {
	var facts []graph.Fact

	for _, c := range containers {
		for _, m := range c.Mounts {
			for _, other := range containers {
				if other.Name == c.Name {
					continue
				}
				for _, om := range other.Mounts {
					switch {
					case m.Type == MountTypeVolume && om.Type == MountTypeVolume &&
						m.Name != "" && m.Name == om.Name:
						facts = append(facts, graph.Fact{
							Source: c.Name,
							Target: other.Name,
							Kind:   graph.KindVolumeShared,
						})
					case m.Type == MountTypeBind && om.Type == MountTypeBind &&
						m.Source != "" && m.Source == om.Source:
						facts = append(facts, graph.Fact{
							Source: c.Name,
							Target: other.Name,
							Kind:   graph.KindBindShared,
						})
					}
				}
			}
		}
	}

	return facts
}

// envFacts finds references to other containers inside environment
// variables. A variable references container "other" when its value
// contains the container name (dash or underscore form), or its key
// contains the upper-snake form of the name.
func envFacts(containers []ContainerDetails) []graph.Fact {
	var facts []graph.Fact

	for _, c := range containers {
		for _, envVar := range c.Env {
			key, value, ok := strings.Cut(envVar, "=")
			if !ok {
				continue
			}

			for _, other := range containers {
				if other.Name == c.Name {
					continue
				}
				if EnvReferences(key, value, other.Name) {
					facts = append(facts, graph.Fact{
						Source: c.Name,
						Target: other.Name,
						Kind:   graph.KindEnvReference,
					})
				}
			}
		}
	}

	return facts
}

// EnvReferences reports whether an environment variable references the
// named container.
func EnvReferences(key, value, name string) bool {
	if name == "" {
		return false
	}
	if strings.Contains(value, name) {
		return true
	}
	upperSnake := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	if strings.Contains(key, upperSnake) {
		return true
	}
	return strings.Contains(value, strings.ReplaceAll(name, "_", "-"))
}

// linkFacts parses legacy container links. The engine reports links as
// "/source:/target/alias".
func linkFacts(containers []ContainerDetails) []graph.Fact {
	var facts []graph.Fact

	for _, c := range containers {
		for _, link := range c.Links {
			source := ParseLink(link)
			if source == "" {
				continue
			}
			facts = append(facts, graph.Fact{
				Source: c.Name,
				Target: source,
				Kind:   graph.KindContainerLink,
			})
		}
	}

	return facts
}

// ParseLink extracts the linked container name from a legacy link
// reference of the form "/source:/target/alias". Returns "" for
// unparseable input.
func ParseLink(link string) string {
	if !strings.Contains(link, ":") {
		return ""
	}
	source, _, _ := strings.Cut(link, ":")
	return strings.TrimPrefix(source, "/")
}

// labelFacts reads declared dependencies from well-known labels.
func labelFacts(containers []ContainerDetails) []graph.Fact {
	var facts []graph.Fact

	for _, c := range containers {
		for _, labelKey := range dependencyLabels {
			raw, ok := c.Labels[labelKey]
			if !ok {
				continue
			}
			for _, dep := range ParseDependencyLabel(raw) {
				if dep == "" || dep == c.Name {
					continue
				}
				facts = append(facts, graph.Fact{
					Source: c.Name,
					Target: dep,
					Kind:   graph.KindLabelDependency,
				})
			}
		}
	}

	return facts
}

// ParseDependencyLabel parses a dependency label value. JSON arrays and
// JSON strings are tried first, then comma-separated plain text.
func ParseDependencyLabel(raw string) []string {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return trimAll(list)
	}

	var single string
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		return trimAll([]string{single})
	}

	return trimAll(strings.Split(raw, ","))
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
