package config

type Config struct {
	Server ServerConfig `yaml:"server" toml:"server"`
	Cache  CacheConfig  `yaml:"cache" toml:"cache"`
	UI     UIConfig     `yaml:"ui" toml:"ui"`
}

type ServerConfig struct {
	BaseURL string `yaml:"base_url" toml:"base_url"`
}

type CacheConfig struct {
	ScanPaths []string `yaml:"scan_paths" toml:"scan_paths"`
}

type UIConfig struct {
	LogScrollSpeed int   `yaml:"log_scroll_speed" toml:"log_scroll_speed"`
	ShowTimestamps *bool `yaml:"show_timestamps" toml:"show_timestamps"`
}

// Timestamps reports whether log lines are prefixed with their clock time.
func (u UIConfig) Timestamps() bool {
	return u.ShowTimestamps == nil || *u.ShowTimestamps
}
