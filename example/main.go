// FILE: example/main.go
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	config "github.com/MadBull1995/RusticConfig"
)

// AppConfig is the typed view decoded from the resolved configuration
type AppConfig struct {
	Server struct {
		Host     string        `config:"host"`
		Port     int           `config:"port"`
		LogLevel string        `config:"log_level"`
		Timeout  time.Duration `config:"timeout"`
	} `config:"server"`
	Database struct {
		URL string `config:"url"`
	} `config:"database"`
	FeatureFlags []string `config:"feature_flags"`
}

const baseYAML = `
server:
  host: localhost
  port: 8080
  log_level: info
  timeout: 15s
database:
  url: postgres://localhost/app
feature_flags: [metrics]
`

const localJSON = `{"server": {"log_level": "debug", "host": null}}`

func main() {
	dir, err := os.MkdirTemp("", "layered-example")
	if err != nil {
		log.Fatalf("❌ Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	basePath := filepath.Join(dir, "base.yaml")
	localPath := filepath.Join(dir, "local.json")
	if err := os.WriteFile(basePath, []byte(baseYAML), 0644); err != nil {
		log.Fatalf("❌ Failed to write %s: %v", basePath, err)
	}
	if err := os.WriteFile(localPath, []byte(localJSON), 0644); err != nil {
		log.Fatalf("❌ Failed to write %s: %v", localPath, err)
	}

	// =========================================================================
	// PART 1: LAYERING
	// Two files, the environment and command-line overrides. The null host in
	// local.json does not erase the host from base.yaml.
	// =========================================================================
	log.Println("➡️  PART 1: Building from file, env and CLI sources...")

	env := config.MapEnv{
		"APP_DATABASE_URL": "postgres://db.internal/app",
		"APP_SERVER_PORT":  "8888",
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel)

	m, err := config.NewBuilder().
		WithLogger(logger).
		WithEnvProvider(env).
		AddSource(config.FromArgs([]string{"--server-port", "9090", "--verbose"})).
		AddSource(config.FromEnv("APP_")).
		AddSource(config.FromFile(basePath)).
		AddSource(config.FromFile(localPath)).
		WithValidator(func(m *config.Manager) error {
			port, _, err := m.Int64("server.port")
			if err != nil {
				return err
			}
			if port < 1024 || port > 65535 {
				return fmt.Errorf("port %d is outside the recommended range (1024-65535)", port)
			}
			return nil
		}).
		Build()
	if err != nil {
		log.Fatalf("❌ Builder failed: %v", err)
	}
	fmt.Print(m.Debug())

	// =========================================================================
	// PART 2: TYPED ACCESS
	// =========================================================================
	log.Println("➡️  PART 2: Typed getters and struct decoding...")

	port, _, _ := m.Int64("server.port")
	verbose, _, _ := m.Bool("verbose")
	fmt.Printf("     server.port = %d (CLI wins over env and file)\n", port)
	fmt.Printf("     verbose     = %t (bare flag)\n", verbose)

	if _, _, err := m.Int64("database.url"); err != nil {
		var mismatch *config.TypeMismatchError
		if errors.As(err, &mismatch) {
			fmt.Printf("     database.url as int: %v\n", mismatch)
		}
	}
	if _, ok, _ := m.Int64("missing.key"); !ok {
		fmt.Println("     missing.key is absent, not an error")
	}

	var app AppConfig
	if err := m.Unmarshal(&app); err != nil {
		log.Fatalf("❌ Unmarshal failed: %v", err)
	}
	fmt.Printf("     decoded: %+v\n", app)

	// =========================================================================
	// PART 3: FAIL-FAST
	// =========================================================================
	log.Println("➡️  PART 3: A malformed override aborts the whole build...")

	_, err = config.NewBuilder().
		WithEnvProvider(env).
		AddSource(config.FromFile(basePath)).
		AddSource(config.FromEnv("APP_")).
		AddSource(config.FromArgs([]string{"--server-port"}).RequireValue("server-port")).
		Build()

	var failed *config.SourceFailedError
	if errors.As(err, &failed) && errors.Is(err, config.ErrMalformedArgument) {
		log.Printf("✅ Build refused: %v", failed)
		return
	}
	log.Fatalf("❌ Expected a malformed argument error, got %v", err)
}
