package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// HTTP
	HTTPTimeout time.Duration
	UserAgent   string
	Proxy       string

	// Scrape targets
	DirectoryURL string
	TeachersPath string

	// Retry / concurrency
	MaxAttempts int
	Concurrency int

	// Output locations
	ImageDir       string
	SubdomainsFile string
	TeachersFile   string

	// Console
	NoProgress bool
}

// Load builds a Config by combining defaults, environment variables, and
// CLI flags. Caller should pass the root *cobra.Command so flags can be
// read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:       DefaultLogLevel,
		JSONLog:        DefaultJSONLog,
		HTTPTimeout:    DefaultHTTPTimeout,
		UserAgent:      DefaultUserAgent,
		DirectoryURL:   DefaultDirectoryURL,
		TeachersPath:   DefaultTeachersPath,
		MaxAttempts:    DefaultMaxAttempts,
		Concurrency:    DefaultConcurrency,
		ImageDir:       DefaultImageDir,
		SubdomainsFile: DefaultSubdomainsFile,
		TeachersFile:   DefaultTeachersFile,
	}

	// Override from environment variables
	if v := os.Getenv("TEACHERSCRAPE_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("TEACHERSCRAPE_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("TEACHERSCRAPE_DIRECTORY_URL"); v != "" {
		cfg.DirectoryURL = v
	}
	if v := os.Getenv("TEACHERSCRAPE_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Concurrency = n
		}
	}

	// Read CLI flags if provided
	if cmd != nil {
		readFlags(cmd, cfg)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func readFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()

	if f := flags.Lookup("user-agent"); f != nil && f.Changed {
		cfg.UserAgent = f.Value.String()
	}
	if f := flags.Lookup("proxy"); f != nil && f.Changed {
		cfg.Proxy = f.Value.String()
	}
	if f := flags.Lookup("timeout"); f != nil && f.Changed {
		if d, err := time.ParseDuration(f.Value.String()); err == nil {
			cfg.HTTPTimeout = d
		}
	}
	if f := flags.Lookup("directory-url"); f != nil && f.Changed {
		cfg.DirectoryURL = f.Value.String()
	}
	if f := flags.Lookup("teachers-path"); f != nil && f.Changed {
		cfg.TeachersPath = f.Value.String()
	}
	if f := flags.Lookup("attempts"); f != nil && f.Changed {
		if n, err := strconv.Atoi(f.Value.String()); err == nil {
			cfg.MaxAttempts = n
		}
	}
	if f := flags.Lookup("concurrency"); f != nil && f.Changed {
		if n, err := strconv.Atoi(f.Value.String()); err == nil {
			cfg.Concurrency = n
		}
	}
	if f := flags.Lookup("image-dir"); f != nil && f.Changed {
		cfg.ImageDir = f.Value.String()
	}
	if f := flags.Lookup("subdomains-file"); f != nil && f.Changed {
		cfg.SubdomainsFile = f.Value.String()
	}
	if f := flags.Lookup("teachers-file"); f != nil && f.Changed {
		cfg.TeachersFile = f.Value.String()
	}
	if f := flags.Lookup("json"); f != nil && f.Value.String() == "true" {
		cfg.JSONLog = true
	}
	if f := flags.Lookup("verbose"); f != nil && f.Value.String() == "true" {
		cfg.LogLevel = "debug"
	}
	if f := flags.Lookup("quiet"); f != nil && f.Value.String() == "true" {
		cfg.LogLevel = "error"
	}
	if f := flags.Lookup("no-progress"); f != nil && f.Value.String() == "true" {
		cfg.NoProgress = true
	}
}
