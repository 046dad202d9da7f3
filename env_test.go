// File: env_test.go
package config_test

import (
	"os"
	"testing"

	config "github.com/MadBull1995/RusticConfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentVariables(t *testing.T) {
	t.Run("Basic Environment Loading", func(t *testing.T) {
		env := config.MapEnv{
			"TEST_SERVER_HOST": "env-host",
			"TEST_SERVER_PORT": "9999",
			"TEST_DEBUG":       "true",
			"OTHER_VALUE":      "ignored",
		}

		cfg, err := config.NewBuilder().
			WithEnvProvider(env).
			WithEnvPrefix("TEST_").
			Build()
		require.NoError(t, err)

		host, ok, err := cfg.String("server.host")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "env-host", host)

		port, _, err := cfg.Int64("server.port")
		require.NoError(t, err)
		assert.Equal(t, int64(9999), port)

		debug, _, err := cfg.Bool("debug")
		require.NoError(t, err)
		assert.True(t, debug)

		assert.False(t, cfg.Has("other.value"))
		assert.Equal(t, 3, cfg.Len())
	})

	t.Run("Values Are Strings", func(t *testing.T) {
		cfg, err := config.NewBuilder().
			WithEnvProvider(config.MapEnv{"APP_PORT": "80"}).
			WithEnvPrefix("APP_").
			Build()
		require.NoError(t, err)

		val, ok := cfg.Get("port")
		require.True(t, ok)
		assert.Equal(t, config.KindString, val.Kind())
	})

	t.Run("Empty Prefix Matches Everything", func(t *testing.T) {
		cfg, err := config.NewBuilder().
			WithEnvProvider(config.MapEnv{"HOME": "/root", "LOG_LEVEL": "info"}).
			WithEnvPrefix("").
			Build()
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"home", "log.level"}, cfg.Keys())
	})

	t.Run("Double Underscore Collapses", func(t *testing.T) {
		cfg, err := config.NewBuilder().
			WithEnvProvider(config.MapEnv{"APP_A__B": "1"}).
			WithEnvPrefix("APP_").
			Build()
		require.NoError(t, err)

		assert.True(t, cfg.Has("a.b"))
	})

	t.Run("Process Environment", func(t *testing.T) {
		t.Setenv("RUSTICCFG_TEST_DATABASE_URL", "postgres://from-env")

		cfg, err := config.NewBuilder().
			WithEnvPrefix("RUSTICCFG_TEST_").
			Build()
		require.NoError(t, err)

		url, ok, err := cfg.String("database.url")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "postgres://from-env", url)
	})

	t.Run("Env Source Never Fails", func(t *testing.T) {
		_, err := config.NewBuilder().
			WithEnvProvider(config.MapEnv{"APP_": "x", "APP___": "y", "APP_WEIRD=": "z"}).
			WithEnvPrefix("APP_").
			Build()
		assert.NoError(t, err)
	})
}

func TestNormalizeEnvKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
		ok     bool
	}{
		{"APP_DATABASE_URL", "APP_", "database.url", true},
		{"APP_A__B", "APP_", "a.b", true},
		{"APP__LEADING", "APP_", "leading", true},
		{"DATABASE_URL", "", "database.url", true},
		{"app_database_url", "APP_", "", false},
		{"APP_", "APP_", "", false},
		{"APP___", "APP_", "", false},
		{"OTHER_KEY", "APP_", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := config.NormalizeEnvKey(tt.name, tt.prefix)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapEnvCopies(t *testing.T) {
	env := config.MapEnv{"A": "1"}
	snapshot := env.Environ()
	snapshot["A"] = "2"
	assert.Equal(t, "1", env["A"])
}

func TestOSEnv(t *testing.T) {
	t.Setenv("RUSTICCFG_OSENV_PROBE", "a=b")
	vars := config.OSEnv{}.Environ()
	assert.Equal(t, "a=b", vars["RUSTICCFG_OSENV_PROBE"])
	assert.Equal(t, os.Getenv("PATH"), vars["PATH"])
}
