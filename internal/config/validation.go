package config

import "fmt"

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("attempts must be >= 1")
	}
	if c.Concurrency < 1 || c.Concurrency > MaxConcurrency {
		return fmt.Errorf("concurrency must be between 1 and %d", MaxConcurrency)
	}
	if c.DirectoryURL == "" {
		return fmt.Errorf("directory URL must not be empty")
	}
	if c.ImageDir == "" || c.SubdomainsFile == "" || c.TeachersFile == "" {
		return fmt.Errorf("output paths must not be empty")
	}
	return nil
}
