package compose

import (
	"context"
	"sort"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Parser Functions
// =============================================================================

// ParseComposeSpec parses Docker Compose YAML into a ParsedSpec.
// This is a pure function - no I/O, no side effects.
//
// Unlike a deployer, the analyzer must accept specs a deployer would
// reject: circular depends_on chains are findings for the cycle detector,
// not parse errors, so consistency validation is skipped.
func ParseComposeSpec(yamlContent string) (*ParsedSpec, error) {
	if strings.TrimSpace(yamlContent) == "" {
		return nil, ErrEmptyInput
	}

	project, err := loadComposeSpec(yamlContent)
	if err != nil {
		return nil, err
	}

	if len(project.Services) == 0 {
		return nil, ErrNoServices
	}

	spec := &ParsedSpec{
		Services: make([]Service, 0, len(project.Services)),
		Networks: make([]Network, 0, len(project.Networks)),
		Volumes:  make([]Volume, 0, len(project.Volumes)),
	}

	for _, svc := range project.Services {
		spec.Services = append(spec.Services, convertService(svc))
	}
	sort.Slice(spec.Services, func(i, j int) bool {
		return spec.Services[i].Name < spec.Services[j].Name
	})

	for name, net := range project.Networks {
		spec.Networks = append(spec.Networks, Network{
			Name:     name,
			Driver:   net.Driver,
			External: bool(net.External),
		})
	}
	sort.Slice(spec.Networks, func(i, j int) bool {
		return spec.Networks[i].Name < spec.Networks[j].Name
	})

	for name, vol := range project.Volumes {
		spec.Volumes = append(spec.Volumes, Volume{
			Name:     name,
			Driver:   vol.Driver,
			External: bool(vol.External),
		})
	}
	sort.Slice(spec.Volumes, func(i, j int) bool {
		return spec.Volumes[i].Name < spec.Volumes[j].Name
	})

	return spec, nil
}

// loadComposeSpec loads a compose spec using compose-go.
func loadComposeSpec(yamlContent string) (*types.Project, error) {
	// Parse YAML into a map first
	var dict map[string]interface{}
	if err := yaml.Unmarshal([]byte(yamlContent), &dict); err != nil {
		return nil, NewParseError("", "invalid YAML syntax", ErrInvalidYAML)
	}
	if dict == nil {
		return nil, NewParseError("", "invalid YAML syntax", ErrInvalidYAML)
	}

	project, err := loader.LoadWithContext(context.Background(), types.ConfigDetails{
		ConfigFiles: []types.ConfigFile{
			{
				Content: []byte(yamlContent),
				Config:  dict,
			},
		},
	}, func(opts *loader.Options) {
		opts.SetProjectName("podshift-analysis", false)
		// Cyclic depends_on must survive parsing; the graph stage reports it.
		opts.SkipValidation = true
		opts.SkipConsistencyCheck = true
		opts.SkipInterpolation = false
		// In-memory content: nothing to resolve on disk.
		opts.SkipNormalization = true
		opts.SkipExtends = true
	})
	if err != nil {
		return nil, NewParseError("", err.Error(), ErrInvalidYAML)
	}

	return project, nil
}

// convertService extracts the relationship-bearing fields of a service.
func convertService(svc types.ServiceConfig) Service {
	service := Service{
		Name:        svc.Name,
		Image:       svc.Image,
		DependsOn:   make([]string, 0, len(svc.DependsOn)),
		Links:       make([]string, 0, len(svc.Links)),
		VolumesFrom: make([]string, 0, len(svc.VolumesFrom)),
		Networks:    make([]string, 0, len(svc.Networks)),
		Labels:      map[string]string{},
	}

	for dep := range svc.DependsOn {
		service.DependsOn = append(service.DependsOn, dep)
	}
	sort.Strings(service.DependsOn)

	for _, link := range svc.Links {
		service.Links = append(service.Links, linkedService(link))
	}

	for _, from := range svc.VolumesFrom {
		service.VolumesFrom = append(service.VolumesFrom, volumesFromService(from))
	}

	for net := range svc.Networks {
		service.Networks = append(service.Networks, net)
	}
	sort.Strings(service.Networks)

	for k, v := range svc.Labels {
		service.Labels[k] = v
	}

	return service
}

// linkedService strips the alias from a link reference ("service:alias").
func linkedService(link string) string {
	if idx := strings.Index(link, ":"); idx >= 0 {
		return link[:idx]
	}
	return link
}

// volumesFromService normalizes a volumes_from reference. Accepted forms
// are "service", "service:ro" and "container:name[:rw]".
func volumesFromService(ref string) string {
	ref = strings.TrimPrefix(ref, "container:")
	if idx := strings.Index(ref, ":"); idx >= 0 {
		return ref[:idx]
	}
	return ref
}
