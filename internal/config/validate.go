package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate runs every check and returns a *ValidationError listing all
// failures, or nil.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.BaseURL == "" {
		errs = append(errs, "server.base_url must be set")
	} else if u, err := url.Parse(c.Server.BaseURL); err != nil {
		errs = append(errs, fmt.Sprintf("server.base_url %q is not a valid URL: %v", c.Server.BaseURL, err))
	} else {
		switch u.Scheme {
		case "http", "https":
		default:
			errs = append(errs, fmt.Sprintf("server.base_url %q must use http or https", c.Server.BaseURL))
		}
		if u.Host == "" {
			errs = append(errs, fmt.Sprintf("server.base_url %q has no host", c.Server.BaseURL))
		}
	}

	if len(c.Cache.ScanPaths) == 0 {
		errs = append(errs, "cache.scan_paths must list at least one path")
	}
	for i, p := range c.Cache.ScanPaths {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Sprintf("cache.scan_paths[%d] is empty", i))
		}
	}

	if c.UI.LogScrollSpeed <= 0 {
		errs = append(errs, "ui.log_scroll_speed must be positive")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
