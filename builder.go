// File: builder.go
package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ValidatorFunc defines the signature for a function that can validate a built Manager.
// It should return an error if validation fails.
type ValidatorFunc func(m *Manager) error

type builderState int

const (
	stateEmpty builderState = iota
	stateAccumulating
	stateBuilt
	stateFailed
)

func (s builderState) String() string {
	switch s {
	case stateEmpty:
		return "empty"
	case stateAccumulating:
		return "accumulating"
	case stateBuilt:
		return "built"
	default:
		return "failed"
	}
}

// Builder accumulates sources and resolves them into a Manager.
// A Builder is single-use: once Build has returned, success or failure, the
// builder is spent and further Build calls report ErrBuilderConsumed.
type Builder struct {
	state      builderState
	sources    []Source
	env        EnvProvider
	logger     zerolog.Logger
	tagName    string
	validators []ValidatorFunc
	err        error
}

// NewBuilder creates an empty builder reading the process environment and logging nowhere
func NewBuilder() *Builder {
	return &Builder{
		env:        OSEnv{},
		logger:     zerolog.Nop(),
		tagName:    DefaultTagName,
		validators: make([]ValidatorFunc, 0),
	}
}

// AddSource appends a source. Duplicates are kept and each takes part in the merge.
func (b *Builder) AddSource(src Source) *Builder {
	if b.state == stateBuilt || b.state == stateFailed {
		return b
	}
	b.sources = append(b.sources, src)
	b.state = stateAccumulating
	return b
}

// WithFile adds a file source with the format inferred from its extension
func (b *Builder) WithFile(path string) *Builder {
	return b.AddSource(FromFile(path))
}

// WithEnvPrefix adds an environment source filtered by prefix
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	return b.AddSource(FromEnv(prefix))
}

// WithArgs adds a command-line source for args
func (b *Builder) WithArgs(args []string) *Builder {
	return b.AddSource(FromArgs(args))
}

// WithEnvProvider replaces the process environment for every env source
func (b *Builder) WithEnvProvider(p EnvProvider) *Builder {
	if p != nil {
		b.env = p
	}
	return b
}

// WithLogger sets the logger used to trace source loading
func (b *Builder) WithLogger(l zerolog.Logger) *Builder {
	b.logger = l
	return b
}

// WithTagName sets the struct tag Scan and BuildAndScan read field names from
func (b *Builder) WithTagName(tagName string) *Builder {
	if !supportedTagNames[tagName] {
		b.err = errors.Join(b.err, fmt.Errorf("unsupported tag name %q, must be one of config, toml, json or yaml", tagName))
		return b
	}
	b.tagName = tagName
	return b
}

// WithValidator adds a validation function that runs at the end of the build process.
// Multiple validators can be added and are executed in the order they are added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build runs every source adapter in registration order, flattens and merges
// their output and returns the resulting Manager. The first failing source
// aborts the build with a *SourceFailedError and no Manager.
func (b *Builder) Build() (*Manager, error) {
	if b.state == stateBuilt || b.state == stateFailed {
		return nil, fmt.Errorf("%w (state %s)", ErrBuilderConsumed, b.state)
	}
	if b.err != nil {
		b.state = stateFailed
		return nil, b.err
	}

	layers := make([]Layer, 0, len(b.sources))
	for i, src := range b.sources {
		flat, missing, err := src.load(b.env)
		if err != nil {
			b.state = stateFailed
			return nil, b.sourceFailed(i, src, err)
		}

		if missing {
			b.logger.Warn().
				Int("index", i).
				Str("path", src.Path).
				Msg("optional config file not found, skipping")
		} else {
			b.logger.Debug().
				Int("index", i).
				Str("kind", string(src.Kind)).
				Str("origin", src.String()).
				Int("precedence", int(src.Precedence)).
				Int("keys", len(flat)).
				Msg("source loaded")
		}

		layers = append(layers, Layer{Source: src, Index: i, Values: flat})
	}

	m := newManager(Merge(layers), b.sources, b.tagName)

	for _, validator := range b.validators {
		if err := validator(m); err != nil {
			b.state = stateFailed
			b.logger.Error().Err(err).Msg("configuration validation failed")
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	b.state = stateBuilt
	b.logger.Info().
		Int("sources", len(b.sources)).
		Int("keys", m.Len()).
		Msg("configuration built")

	return m, nil
}

func (b *Builder) sourceFailed(index int, src Source, err error) error {
	var pe *ParseError
	if !errors.As(err, &pe) {
		pe = &ParseError{Kind: ParseUnreadable, Err: err}
	}
	if pe.Origin == "" {
		pe.Origin = src.origin()
	}

	b.logger.Error().
		Err(pe).
		Int("index", index).
		Str("origin", src.String()).
		Msg("config source failed")

	return &SourceFailedError{Source: src, Index: index, Cause: pe}
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Manager {
	m, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return m
}

// BuildAndScan builds the configuration and decodes all of it into target
func (b *Builder) BuildAndScan(target any) (*Manager, error) {
	m, err := b.Build()
	if err != nil {
		return nil, err
	}

	if err := m.Unmarshal(target); err != nil {
		return nil, fmt.Errorf("failed to scan final config into target: %w", err)
	}
	return m, nil
}
