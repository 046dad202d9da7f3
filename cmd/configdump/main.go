// FILE: cmd/configdump/main.go

// Command configdump resolves configuration from files, the environment and
// command-line overrides and prints the result with the origin of each value.
//
//	configdump -f base.yaml -f local.json --env-prefix APP_ -- --server-port 9090
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	config "github.com/MadBull1995/RusticConfig"
)

func main() {
	app := &cli.Command{
		Name:      "configdump",
		Usage:     "resolve layered configuration and print it",
		ArgsUsage: "[-- --key value ...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "configuration file (json, yaml or toml), repeatable; later files win",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "force the format of every file: json, yaml, toml or auto",
			},
			&cli.BoolFlag{
				Name:  "optional",
				Usage: "treat missing files as empty",
			},
			&cli.StringFlag{
				Name:  "env-prefix",
				Usage: "read environment variables with this prefix",
			},
			&cli.BoolFlag{
				Name:  "no-env",
				Usage: "ignore the environment",
			},
			&cli.StringSliceFlag{
				Name:  "require",
				Usage: "override keys that must carry a value",
			},
			&cli.StringFlag{
				Name:  "get",
				Usage: "print only this key",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "text",
				Usage:   "output format: text, json or toml",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log source loading to stderr",
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	level := zerolog.WarnLevel
	if cmd.Bool("verbose") {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()

	b := config.NewBuilder().WithLogger(logger)

	for _, path := range cmd.StringSlice("file") {
		src := config.FromFile(path)
		if f := cmd.String("format"); f != "" {
			src = src.WithFormat(config.Format(f))
		}
		if cmd.Bool("optional") {
			src = src.AsOptional()
		}
		b.AddSource(src)
	}

	if !cmd.Bool("no-env") {
		b.AddSource(config.FromEnv(cmd.String("env-prefix")))
	}

	b.AddSource(config.FromArgs(cmd.Args().Slice()).RequireValue(cmd.StringSlice("require")...))

	m, err := b.Build()
	if err != nil {
		return err
	}

	if key := cmd.String("get"); key != "" {
		return printKey(m, key)
	}

	switch cmd.String("output") {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(m.AllSettings())
	case "toml":
		return m.Dump(os.Stdout)
	case "text":
		for _, key := range m.Keys() {
			val, _ := m.Get(key)
			src, _ := m.Origin(key)
			fmt.Printf("%s = %s\t# %s\n", key, val.Text(), src)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", cmd.String("output"))
	}
}

func printKey(m *config.Manager, key string) error {
	if val, ok := m.Get(key); ok {
		fmt.Println(val.Text())
		return nil
	}
	table, ok, err := m.Map(key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("key %q is not set", key)
	}
	return json.NewEncoder(os.Stdout).Encode(config.Map(table).Interface())
}
