package docker

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
)

// =============================================================================
// Docker Client Implementation
// =============================================================================

// Client is the read-only engine interface the mapper consumes.
type Client interface {
	Ping(ctx context.Context) error
	TakeSnapshot(ctx context.Context) (*Snapshot, error)
	Close() error
}

// DockerClient implements Client using the Docker SDK.
type DockerClient struct {
	cli *client.Client
}

// NewDockerClient creates a new Docker client.
// If host is empty, it uses the default Docker host from environment.
// On macOS with Docker Desktop, it automatically detects the correct socket.
func NewDockerClient(host string) (*DockerClient, error) {
	var opts []client.Opt
	opts = append(opts, client.FromEnv)
	opts = append(opts, client.WithAPIVersionNegotiation())

	if host != "" {
		opts = append(opts, client.WithHost(host))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, NewDockerError("NewDockerClient", "", "", "failed to create client", ErrConnectionFailed)
	}

	// Try to ping with default settings
	ctx := context.Background()
	if _, pingErr := cli.Ping(ctx); pingErr != nil {
		// If default socket fails, try Docker Desktop socket on macOS
		homeDir, _ := os.UserHomeDir()
		dockerDesktopSocket := "unix://" + homeDir + "/.docker/run/docker.sock"

		cli2, err2 := client.NewClientWithOpts(
			client.WithHost(dockerDesktopSocket),
			client.WithAPIVersionNegotiation(),
		)
		if err2 == nil {
			if _, pingErr2 := cli2.Ping(ctx); pingErr2 == nil {
				cli.Close()
				return &DockerClient{cli: cli2}, nil
			}
			cli2.Close()
		}
	}

	return &DockerClient{cli: cli}, nil
}

// Ping checks if the Docker daemon is reachable.
func (d *DockerClient) Ping(ctx context.Context) error {
	if _, err := d.cli.Ping(ctx); err != nil {
		return NewDockerError("Ping", "", "", fmt.Sprintf("failed to ping docker: %v", err), ErrConnectionFailed)
	}
	return nil
}

// Close closes the Docker client connection.
func (d *DockerClient) Close() error {
	return d.cli.Close()
}

// =============================================================================
// Snapshot Collection
// =============================================================================

// TakeSnapshot materializes the full inventory in one pass: every
// container (running or not) with its inspect-level detail, every network
// with its attached container names, and every named volume.
func (d *DockerClient) TakeSnapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}

	if version, err := d.cli.ServerVersion(ctx); err == nil {
		snap.ServerVersion = version.Version
	}

	containers, err := d.listContainers(ctx)
	if err != nil {
		return nil, err
	}
	snap.Containers = containers

	networks, err := d.listNetworks(ctx)
	if err != nil {
		return nil, err
	}
	snap.Networks = networks

	volumes, err := d.listVolumes(ctx)
	if err != nil {
		return nil, err
	}
	snap.Volumes = volumes

	return snap, nil
}

// listContainers inventories every container via inspect, so env, labels,
// links and mounts are available for fact extraction.
func (d *DockerClient) listContainers(ctx context.Context) ([]ContainerDetails, error) {
	summaries, err := d.cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, NewDockerError("ListContainers", "container", "", err.Error(), err)
	}

	var result []ContainerDetails
	for _, summary := range summaries {
		resp, err := d.cli.ContainerInspect(ctx, summary.ID)
		if err != nil {
			if client.IsErrNotFound(err) {
				// Removed between list and inspect; skip it.
				continue
			}
			return nil, NewDockerError("InspectContainer", "container", summary.ID, err.Error(), err)
		}

		details := ContainerDetails{
			ID:     shortID(resp.ID),
			Name:   strings.TrimPrefix(resp.Name, "/"),
			Status: resp.State.Status,
		}

		if resp.Config != nil {
			details.Image = resp.Config.Image
			details.Env = resp.Config.Env
			details.Labels = resp.Config.Labels
		}
		if resp.HostConfig != nil {
			details.Links = resp.HostConfig.Links
		}

		for _, m := range resp.Mounts {
			details.Mounts = append(details.Mounts, Mount{
				Type:        MountType(m.Type),
				Name:        m.Name,
				Source:      m.Source,
				Destination: m.Destination,
				ReadOnly:    !m.RW,
			})
		}

		if resp.NetworkSettings != nil {
			for name := range resp.NetworkSettings.Networks {
				details.Networks = append(details.Networks, name)
			}
			sort.Strings(details.Networks)

			for containerPort, bindings := range resp.NetworkSettings.Ports {
				port, proto := nat.Port(containerPort).Port(), nat.Port(containerPort).Proto()
				var containerPortInt int
				fmt.Sscanf(port, "%d", &containerPortInt)
				for _, binding := range bindings {
					var hostPort int
					if binding.HostPort != "" {
						fmt.Sscanf(binding.HostPort, "%d", &hostPort)
					}
					details.Ports = append(details.Ports, PortBinding{
						ContainerPort: containerPortInt,
						HostPort:      hostPort,
						Protocol:      proto,
						HostIP:        binding.HostIP,
					})
				}
			}
		}

		result = append(result, details)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// listNetworks inventories every network with its attached container names.
func (d *DockerClient) listNetworks(ctx context.Context) ([]NetworkDetails, error) {
	summaries, err := d.cli.NetworkList(ctx, network.ListOptions{})
	if err != nil {
		return nil, NewDockerError("ListNetworks", "network", "", err.Error(), err)
	}

	var result []NetworkDetails
	for _, summary := range summaries {
		// The list endpoint omits attached containers; inspect each.
		resp, err := d.cli.NetworkInspect(ctx, summary.ID, network.InspectOptions{})
		if err != nil {
			if client.IsErrNotFound(err) {
				continue
			}
			return nil, NewDockerError("InspectNetwork", "network", summary.Name, err.Error(), err)
		}

		details := NetworkDetails{
			Name:   resp.Name,
			ID:     shortID(resp.ID),
			Driver: resp.Driver,
		}
		for _, endpoint := range resp.Containers {
			if endpoint.Name != "" {
				details.Containers = append(details.Containers, endpoint.Name)
			}
		}
		sort.Strings(details.Containers)

		result = append(result, details)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// listVolumes inventories every named volume.
func (d *DockerClient) listVolumes(ctx context.Context) ([]VolumeDetails, error) {
	resp, err := d.cli.VolumeList(ctx, volume.ListOptions{})
	if err != nil {
		return nil, NewDockerError("ListVolumes", "volume", "", err.Error(), err)
	}

	var result []VolumeDetails
	for _, vol := range resp.Volumes {
		if vol == nil {
			continue
		}
		result = append(result, VolumeDetails{
			Name:   vol.Name,
			Driver: vol.Driver,
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
