package config

func boolPtr(b bool) *bool { return &b }

const DefaultBaseURL = "http://127.0.0.1:8000"

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL: DefaultBaseURL,
		},
		Cache: CacheConfig{
			ScanPaths: []string{"/tmp"},
		},
		UI: UIConfig{
			LogScrollSpeed: 3,
			ShowTimestamps: boolPtr(true),
		},
	}
}
