package compose

// =============================================================================
// Compose Types
// =============================================================================

// Service is one declarative service with the relationship-bearing parts
// of its configuration.
type Service struct {
	Name        string
	Image       string
	DependsOn   []string
	Links       []string
	VolumesFrom []string
	Networks    []string
	Labels      map[string]string
}

// Network is a top-level network declaration.
type Network struct {
	Name     string
	Driver   string
	External bool
}

// Volume is a top-level volume declaration.
type Volume struct {
	Name     string
	Driver   string
	External bool
}

// ParsedSpec is the normalized view of one compose file.
type ParsedSpec struct {
	Services []Service
	Networks []Network
	Volumes  []Volume
}

// Service returns the named service, or nil when absent.
func (s *ParsedSpec) Service(name string) *Service {
	for i := range s.Services {
		if s.Services[i].Name == name {
			return &s.Services[i]
		}
	}
	return nil
}
