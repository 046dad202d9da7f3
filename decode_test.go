// FILE: decode_test.go
package config

import (
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScanWithComplexTypes tests scanning with various complex types
func TestScanWithComplexTypes(t *testing.T) {
	type NetworkConfig struct {
		IP      net.IP        `config:"ip"`
		IPNet   *net.IPNet    `config:"subnet"`
		URL     *url.URL      `config:"endpoint"`
		Timeout time.Duration `config:"timeout"`
		Retry   struct {
			Count    int           `config:"count"`
			Interval time.Duration `config:"interval"`
		} `config:"retry"`
	}

	type AppConfig struct {
		Network NetworkConfig     `config:"network"`
		Tags    []string          `config:"tags"`
		Ports   []int             `config:"ports"`
		Labels  map[string]string `config:"labels"`
		Started time.Time         `config:"started"`
	}

	path := writeFile(t, "config.yaml", `
network:
  timeout: 2m30s
  retry:
    count: 5
    interval: 10s
ports: [80, 443, 8080]
labels:
  env: prod
started: "2024-01-02T03:04:05Z"
`)

	m, err := NewBuilder().
		WithEnvProvider(MapEnv{
			"APP_NETWORK_IP":       "192.168.1.100",
			"APP_NETWORK_SUBNET":   "192.168.1.0/24",
			"APP_NETWORK_ENDPOINT": "https://api.example.com:8443/v1",
		}).
		WithFile(path).
		WithEnvPrefix("APP_").
		WithArgs([]string{"--tags", "prod,staging,test"}).
		Build()
	require.NoError(t, err)

	var cfg AppConfig
	require.NoError(t, m.Unmarshal(&cfg))

	assert.Equal(t, "192.168.1.100", cfg.Network.IP.String())
	require.NotNil(t, cfg.Network.IPNet)
	assert.Equal(t, "192.168.1.0/24", cfg.Network.IPNet.String())
	require.NotNil(t, cfg.Network.URL)
	assert.Equal(t, "api.example.com:8443", cfg.Network.URL.Host)
	assert.Equal(t, 150*time.Second, cfg.Network.Timeout)
	assert.Equal(t, 5, cfg.Network.Retry.Count)
	assert.Equal(t, 10*time.Second, cfg.Network.Retry.Interval)
	assert.Equal(t, []string{"prod", "staging", "test"}, cfg.Tags)
	assert.Equal(t, []int{80, 443, 8080}, cfg.Ports)
	assert.Equal(t, map[string]string{"env": "prod"}, cfg.Labels)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), cfg.Started.UTC())
}

func TestScanTypedList(t *testing.T) {
	path := writeFile(t, "config.yaml", `
tags: [a, b]
ports: [80, "443"]
timeouts: [1s, 2m]
servers:
  - host: one
    port: 1
  - host: two
    port: 2
`)
	m, err := NewBuilder().WithFile(path).Build()
	require.NoError(t, err)

	var tags []string
	require.NoError(t, m.Scan("tags", &tags))
	assert.Equal(t, []string{"a", "b"}, tags)

	var ports []int
	require.NoError(t, m.Scan("ports", &ports))
	assert.Equal(t, []int{80, 443}, ports)

	var timeouts []time.Duration
	require.NoError(t, m.Scan("timeouts", &timeouts))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Minute}, timeouts)

	type server struct {
		Host string `config:"host"`
		Port int    `config:"port"`
	}
	var servers []server
	require.NoError(t, m.Scan("servers", &servers))
	assert.Equal(t, []server{{"one", 1}, {"two", 2}}, servers)

	var bad []int
	assert.Error(t, m.Scan("tags", &bad))
}

func TestScanSection(t *testing.T) {
	m := testManager(Flat{
		"server.host": String("localhost"),
		"server.port": String("8080"),
		"debug":       Bool(true),
	})

	t.Run("Subsection", func(t *testing.T) {
		var server struct {
			Host string `config:"host"`
			Port int    `config:"port"`
		}
		require.NoError(t, m.Scan("server", &server))
		assert.Equal(t, "localhost", server.Host)
		assert.Equal(t, 8080, server.Port)
	})

	t.Run("MissingSectionLeavesZero", func(t *testing.T) {
		var section struct {
			Name string `config:"name"`
		}
		require.NoError(t, m.Scan("absent", &section))
		assert.Empty(t, section.Name)
	})

	t.Run("IntoMap", func(t *testing.T) {
		out := map[string]any{}
		require.NoError(t, m.Scan("server", &out))
		assert.Equal(t, "localhost", out["host"])
	})

	t.Run("ScalarPath", func(t *testing.T) {
		var debug bool
		require.NoError(t, m.Scan("debug", &debug))
		assert.True(t, debug)

		var v struct {
			Name string `config:"name"`
		}
		assert.Error(t, m.Scan("debug", &v))
	})

	t.Run("InvalidTarget", func(t *testing.T) {
		var v struct{}
		assert.Error(t, m.Scan("", v))
		assert.Error(t, m.Scan("", (*struct{})(nil)))
	})

	t.Run("DecodeFailure", func(t *testing.T) {
		bad := testManager(Flat{"net.ip": String("999.1.1.1")})
		var v struct {
			Net struct {
				IP net.IP `config:"ip"`
			} `config:"net"`
		}
		err := bad.Unmarshal(&v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid IP address")
	})
}
