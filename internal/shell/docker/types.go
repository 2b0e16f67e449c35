package docker

// =============================================================================
// Inventory Types
// =============================================================================

// MountType identifies how a mount is backed.
type MountType string

const (
	MountTypeVolume MountType = "volume"
	MountTypeBind   MountType = "bind"
	MountTypeTmpfs  MountType = "tmpfs"
)

// Mount is one mount point of a container.
type Mount struct {
	Type        MountType
	Name        string // volume name, empty for binds
	Source      string // host path for binds
	Destination string
	ReadOnly    bool
}

// PortBinding is one published port of a container.
type PortBinding struct {
	ContainerPort int
	HostPort      int
	Protocol      string
	HostIP        string
}

// ContainerDetails is the relationship-bearing view of one container.
type ContainerDetails struct {
	ID       string // short id
	Name     string
	Image    string
	Status   string
	Env      []string // KEY=value pairs as reported by the engine
	Labels   map[string]string
	Links    []string // raw HostConfig links: /source:/target/alias
	Mounts   []Mount
	Networks []string // attached network names
	Ports    []PortBinding
}

// NetworkDetails is one network and the names of its attached containers.
type NetworkDetails struct {
	Name       string
	ID         string
	Driver     string
	Containers []string
}

// VolumeDetails is one named volume.
type VolumeDetails struct {
	Name   string
	Driver string
}

// Snapshot is a fully materialized view of the engine taken at one point
// in time. Fact extraction runs over a snapshot only, never against the
// live daemon, so a run can never observe a half-collected state.
type Snapshot struct {
	ServerVersion string
	Containers    []ContainerDetails
	Networks      []NetworkDetails
	Volumes       []VolumeDetails
}

// ContainerNames returns the container names in snapshot order.
func (s *Snapshot) ContainerNames() []string {
	names := make([]string, 0, len(s.Containers))
	for _, c := range s.Containers {
		names = append(names, c.Name)
	}
	return names
}
