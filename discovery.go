// FILE: discovery.go
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// FileDiscoveryOptions configures automatic config file discovery
type FileDiscoveryOptions struct {
	// Base name of config file (without extension)
	Name string

	// Extensions to try (in order)
	Extensions []string

	// Custom search paths (in addition to defaults)
	Paths []string

	// Environment variable to check for explicit path
	EnvVar string

	// CLI flag to check (e.g., "--config")
	CLIFlag string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns sensible defaults
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".yaml", ".yml", ".json", ".toml"},
		EnvVar:        strings.ToUpper(appName) + "_CONFIG",
		CLIFlag:       "--config",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// WithFileDiscovery looks for a config file and, if one is found, adds it as an
// optional file source. An explicit path from a registered CLI source's flag wins,
// then the environment variable, then the first existing file in the search paths.
// Finding nothing is not an error.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	var args []string
	for _, src := range b.sources {
		if src.Kind == SourceCLI {
			args = append(args, src.Args...)
		}
	}

	if path, ok := DiscoverFile(opts, args, b.env); ok {
		b.logger.Debug().Str("path", path).Msg("config file discovered")
		return b.AddSource(FromFile(path).AsOptional())
	}
	return b
}

// DiscoverFile resolves the config file path described by opts.
// args are searched for opts.CLIFlag; env supplies opts.EnvVar and the XDG variables.
func DiscoverFile(opts FileDiscoveryOptions, args []string, env EnvProvider) (string, bool) {
	if env == nil {
		env = OSEnv{}
	}
	vars := env.Environ()

	// Check CLI args first (highest priority)
	if opts.CLIFlag != "" {
		for i, arg := range args {
			if arg == opts.CLIFlag && i+1 < len(args) {
				return args[i+1], true
			}
			if strings.HasPrefix(arg, opts.CLIFlag+"=") {
				return strings.TrimPrefix(arg, opts.CLIFlag+"="), true
			}
		}
	}

	// Check environment variable
	if opts.EnvVar != "" {
		if path := vars[opts.EnvVar]; path != "" {
			return path, true
		}
	}

	// Build search paths
	var searchPaths []string
	searchPaths = append(searchPaths, opts.Paths...)

	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}

	if opts.UseXDG {
		searchPaths = append(searchPaths, getXDGConfigPaths(opts.Name, vars)...)
	}

	for _, dir := range searchPaths {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
	}

	return "", false
}

// getXDGConfigPaths returns XDG-compliant config search paths
func getXDGConfigPaths(appName string, vars map[string]string) []string {
	var paths []string

	if xdgHome := vars["XDG_CONFIG_HOME"]; xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := vars["HOME"]; home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := vars["XDG_CONFIG_DIRS"]; xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}
