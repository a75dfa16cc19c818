package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "jersey_store", cfg.Database.DBName)
	assert.Equal(t, "8000", cfg.App.Port)
	assert.Empty(t, cfg.Redis.Addr, "redis is opt-in")
	assert.Empty(t, cfg.Kafka.Broker, "kafka is opt-in")
	assert.Equal(t, "order-events", cfg.Kafka.Topic)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "store_test")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "store_test", cfg.Database.DBName)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Contains(t, cfg.Database.GetDSN(), "host=db.internal")
	assert.Contains(t, cfg.Database.GetDSN(), "dbname=store_test")
}
