//go:build integration

package containers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// GenericPostgres is a plain postgres image started without the module helper.
// It shows how to run an image testcontainers has no module for: exposed ports,
// env, a wait strategy and log streaming into the test log.
type GenericPostgres struct {
	Container testcontainers.Container
	DSN       string
}

type testLogConsumer struct {
	t *testing.T
}

func (c testLogConsumer) Accept(l testcontainers.Log) {
	c.t.Logf("[postgres %s] %s", l.LogType, l.Content)
}

// NewGenericPostgres starts a dedicated container for t and terminates it on cleanup.
func NewGenericPostgres(t *testing.T) *GenericPostgres {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": "studytest",
			"POSTGRES_DB":       "studytest",
		},
		WaitingFor: wait.ForAll(
			wait.ForLogOccurrence("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithDeadline(60 * time.Second),
		LogConsumerCfg: &testcontainers.LogConsumerConfig{
			Consumers: []testcontainers.LogConsumer{testLogConsumer{t: t}},
		},
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start generic postgres: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}

	return &GenericPostgres{
		Container: container,
		DSN:       fmt.Sprintf("postgres://postgres:studytest@%s:%s/studytest?sslmode=disable", host, port.Port()),
	}
}
