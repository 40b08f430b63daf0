package cmd_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"restaurantops/cmd"
	"restaurantops/internal/adapters/out/mockdata"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config, err := cmd.LoadConfig(viper.New(), "")

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", config.BackendURL)
		assert.Equal(t, 10*time.Second, config.Timeout)
		assert.Equal(t, "sqlite", config.DBDriver)
		assert.Equal(t, int64(42), config.Seed)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("RESTAURANT_BACKEND_URL", "http://backend:9000")
		t.Setenv("RESTAURANT_TIMEOUT", "3s")

		config, err := cmd.LoadConfig(viper.New(), "")

		require.NoError(t, err)
		assert.Equal(t, "http://backend:9000", config.BackendURL)
		assert.Equal(t, 3*time.Second, config.Timeout)
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("http_port: \"9999\"\ntax_rate: 0.2\n"), 0o600))

		config, err := cmd.LoadConfig(viper.New(), path)

		require.NoError(t, err)
		assert.Equal(t, "9999", config.HTTPPort)
		assert.InDelta(t, 0.2, config.TaxRate, 1e-9)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := cmd.LoadConfig(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))

		assert.Error(t, err)
	})
}

func TestConfig_NewLogger(t *testing.T) {
	_, err := cmd.Config{LogLevel: "debug"}.NewLogger(&bytes.Buffer{})
	require.NoError(t, err)

	_, err = cmd.Config{LogLevel: "loud"}.NewLogger(&bytes.Buffer{})
	assert.Error(t, err)
}

func TestSeedCommand(t *testing.T) {
	var out bytes.Buffer
	root := cmd.NewRootCommand(&out)
	root.SetArgs([]string{"seed", "--size", "2", "--seed", "7"})

	require.NoError(t, root.Execute())

	var ds mockdata.Dataset
	require.NoError(t, json.Unmarshal(out.Bytes(), &ds))
	assert.Len(t, ds.Persons, 3+2)
	assert.Len(t, ds.Reservations, 3+2)
}

func TestProbeCommand_Unreachable(t *testing.T) {
	var out bytes.Buffer
	root := cmd.NewRootCommand(&out)
	root.SetArgs([]string{"probe", "--backend-url", "http://127.0.0.1:1"})

	require.NoError(t, root.Execute())

	assert.Equal(t, "mock\n", out.String())
}
