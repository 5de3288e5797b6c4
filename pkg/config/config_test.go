package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ops-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.App.Store)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 256, cfg.Notify.QueueSize)
	assert.Equal(t, 300*time.Second, cfg.Redis.FeaturedTTL)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestLoad_SinJWTSecret_RetornaError(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_StoreInvalido_RetornaError(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("APP_STORE", "mongo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("APP_STORE", "MEMORY")
	t.Setenv("NOTIFY_WORKERS", "5")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.App.Store)
	assert.Equal(t, 5, cfg.Notify.Workers)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestDBConfig_DSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss/word", DBName: "x", SSLMode: "disable"}
	assert.Contains(t, c.DSN(), "p%40ss%2Fword")
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
