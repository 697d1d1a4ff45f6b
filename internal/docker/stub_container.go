package docker

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	specmaticImage = "znsio/specmatic"
	stubPort       = nat.Port("9000/tcp")
)

// ProductStub is a specmatic stub of the product API generated from api/products.yaml.
type ProductStub struct {
	Container testcontainers.Container
	URL       string
}

// StartProductStub starts the stub with specmatic.yaml and api/ mounted from dir.
func StartProductStub(ctx context.Context, dir string) (*ProductStub, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving stub directory: %w", err)
	}

	req := testcontainers.ContainerRequest{
		Image:        specmaticImage,
		ExposedPorts: []string{string(stubPort)},
		Cmd:          []string{"stub"},
		Mounts: testcontainers.Mounts(
			testcontainers.BindMount(filepath.Join(dir, "specmatic.yaml"), "/usr/src/app/specmatic.yaml"),
			testcontainers.BindMount(filepath.Join(dir, "api"), "/usr/src/app/api"),
		),
		WaitingFor: wait.ForLog("Stub server is running").WithStartupTimeout(2 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("starting specmatic stub: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("getting stub host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, stubPort)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("getting stub port: %w", err)
	}

	return &ProductStub{
		Container: container,
		URL:       fmt.Sprintf("http://%s:%s", host, mappedPort.Port()),
	}, nil
}

func (s *ProductStub) Terminate(ctx context.Context) error {
	return s.Container.Terminate(ctx)
}
