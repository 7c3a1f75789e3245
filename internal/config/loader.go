package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load discovers a config file relative to the working directory, merges it
// with defaults, applies environment overrides and validates the result.
func Load() (*Config, error) {
	return validated(Resolve())
}

// LoadFrom is Load with an explicit directory for file discovery.
func LoadFrom(dir string) (*Config, error) {
	return validated(ResolveFrom(dir))
}

// LoadFile skips discovery and reads the given file, which must exist.
func LoadFile(path string) (*Config, error) {
	return validated(ResolveFile(path))
}

// Resolve is Load without validation, for callers that apply further
// overrides and validate afterwards.
func Resolve() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return ResolveFrom(cwd)
}

func ResolveFrom(dir string) (*Config, error) {
	path, err := discoverConfigPath(dir)
	if err != nil {
		return nil, fmt.Errorf("config discovery: %w", err)
	}
	return build(path)
}

// ResolveFile is LoadFile without validation.
func ResolveFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	return build(path)
}

func validated(cfg *Config, err error) (*Config, error) {
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// build merges defaults, the file at path (if any) and the environment.
func build(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// discoverConfigPath returns the first existing file of the discovery chain,
// or "" when only defaults apply.
func discoverConfigPath(dir string) (string, error) {
	candidates := []string{
		filepath.Join(dir, "ddltop.yaml"),
		filepath.Join(dir, "ddltop.toml"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		userDir := filepath.Join(home, ".config", "ddltop")
		candidates = append(candidates,
			filepath.Join(userDir, "config.yaml"),
			filepath.Join(userDir, "config.toml"),
		)
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
		for _, key := range md.Undecoded() {
			log.Printf("warning: %s: unknown key %q", path, key.String())
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	}

	return &cfg, nil
}

// merge overlays override onto base. Scalars override when non-zero, slices
// replace entirely when non-nil, pointers override when non-nil.
func merge(base *Config, override *Config) {
	if override.Server.BaseURL != "" {
		base.Server.BaseURL = override.Server.BaseURL
	}

	if override.Cache.ScanPaths != nil {
		base.Cache.ScanPaths = override.Cache.ScanPaths
	}

	if override.UI.LogScrollSpeed != 0 {
		base.UI.LogScrollSpeed = override.UI.LogScrollSpeed
	}
	if override.UI.ShowTimestamps != nil {
		base.UI.ShowTimestamps = override.UI.ShowTimestamps
	}
}

// applyEnvOverrides applies DDLTOP_* environment variables on top of the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DDLTOP_SERVER"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("DDLTOP_SCAN_PATHS"); v != "" {
		cfg.Cache.ScanPaths = SplitPathList(v)
	}
}

// SplitPathList splits an OS path list (colon separated on unix) and
// drops empty elements.
func SplitPathList(v string) []string {
	var out []string
	for _, p := range filepath.SplitList(v) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
