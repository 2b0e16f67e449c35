package compose

import "github.com/podshift/podshift/internal/core/graph"

// =============================================================================
// Fact Extraction
// =============================================================================

// ServiceFacts converts a parsed compose spec into relationship facts for
// the graph builder.
//
// depends_on, links and volumes_from each yield a directed fact from the
// declaring service. Two services attached to the same network yield a
// symmetric pair of compose_network_shared facts, one from each side.
func ServiceFacts(spec *ParsedSpec) []graph.Fact {
	if spec == nil {
		return nil
	}

	var facts []graph.Fact

	for _, svc := range spec.Services {
		for _, dep := range svc.DependsOn {
			facts = append(facts, graph.Fact{
				Source: svc.Name,
				Target: dep,
				Kind:   graph.KindComposeDependsOn,
			})
		}
		for _, linked := range svc.Links {
			facts = append(facts, graph.Fact{
				Source: svc.Name,
				Target: linked,
				Kind:   graph.KindComposeLinks,
			})
		}
		for _, from := range svc.VolumesFrom {
			facts = append(facts, graph.Fact{
				Source: svc.Name,
				Target: from,
				Kind:   graph.KindComposeVolumesFrom,
			})
		}
	}

	facts = append(facts, sharedNetworkFacts(spec.Services)...)
	return facts
}

func sharedNetworkFacts(services []Service) []graph.Fact {
	var facts []graph.Fact

	for _, svc := range services {
		attached := make(map[string]struct{}, len(svc.Networks))
		for _, net := range svc.Networks {
			attached[net] = struct{}{}
		}
		if len(attached) == 0 {
			continue
		}

		for _, other := range services {
			if other.Name == svc.Name {
				continue
			}
			for _, net := range other.Networks {
				if _, shared := attached[net]; shared {
					facts = append(facts, graph.Fact{
						Source: svc.Name,
						Target: other.Name,
						Kind:   graph.KindComposeNetworkShared,
					})
					break
				}
			}
		}
	}

	return facts
}
