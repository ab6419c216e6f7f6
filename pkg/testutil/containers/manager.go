//go:build integration

package containers

import (
	"sync"
	"testing"
)

// Manager lazily starts one container per backing service and shares it across
// all suites in the test binary. Ryuk reaps the containers when the binary exits.
type Manager struct {
	pgOnce sync.Once
	pg     *PostgresContainer
	pgErr  string

	redisOnce sync.Once
	redis     *RedisContainer
	redisErr  string

	kafkaOnce sync.Once
	kafka     *RedpandaContainer
	kafkaErr  string
}

var (
	managerOnce sync.Once
	manager     *Manager
)

// GetManager returns the process-wide container manager.
func GetManager() *Manager {
	managerOnce.Do(func() {
		manager = &Manager{}
	})
	return manager
}

// GetPostgres returns the shared, migrated Postgres container.
func (m *Manager) GetPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	m.pgOnce.Do(func() {
		m.pg, m.pgErr = startPostgres()
	})
	if m.pg == nil {
		t.Fatalf("postgres container unavailable: %s", m.pgErr)
	}
	return m.pg
}

// GetRedis returns the shared Redis container.
func (m *Manager) GetRedis(t *testing.T) *RedisContainer {
	t.Helper()
	m.redisOnce.Do(func() {
		m.redis, m.redisErr = startRedis()
	})
	if m.redis == nil {
		t.Fatalf("redis container unavailable: %s", m.redisErr)
	}
	return m.redis
}

// GetRedpanda returns the shared Kafka-compatible broker.
func (m *Manager) GetRedpanda(t *testing.T) *RedpandaContainer {
	t.Helper()
	m.kafkaOnce.Do(func() {
		m.kafka, m.kafkaErr = startRedpanda()
	})
	if m.kafka == nil {
		t.Fatalf("redpanda container unavailable: %s", m.kafkaErr)
	}
	return m.kafka
}
