// Package testutil starts throwaway Postgres and RabbitMQ containers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const startupBudget = 2 * time.Minute

// StartPostgres returns the DSN of a fresh Postgres database.
func StartPostgres(t *testing.T) string {
	t.Helper()
	host, port := start(t, testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "postgres", "POSTGRES_USER": "postgres", "POSTGRES_DB": "booking"},
		ExposedPorts: []string{"5432/tcp"},
		// postgres restarts once after init; the second line is the real one
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(90 * time.Second),
	}, "5432/tcp")

	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/booking?sslmode=disable", host, port)
}

// StartRabbitMQ returns an open connection to a fresh broker. The connection is closed on cleanup.
func StartRabbitMQ(t *testing.T) *amqp.Connection {
	t.Helper()
	host, port := start(t, testcontainers.ContainerRequest{
		Image:        "rabbitmq:3.13-alpine",
		ExposedPorts: []string{"5672/tcp"},
		WaitingFor:   wait.ForListeningPort("5672/tcp").WithStartupTimeout(90 * time.Second),
	}, "5672/tcp")

	conn, err := amqp.DialConfig("amqp://guest:guest@"+host+":"+port+"/", amqp.Config{
		Dial: amqp.DefaultDial(10 * time.Second),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func start(t *testing.T, req testcontainers.ContainerRequest, port string) (string, string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startupBudget)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		stopCtx, stop := context.WithTimeout(context.Background(), 30*time.Second)
		defer stop()
		_ = c.Terminate(stopCtx)
	})

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)
	return host, mapped.Port()
}
