package scrape

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/schoolsby-tools/teacherscrape/internal/config"
)

// testPipeline builds a Pipeline whose outputs land in a per-test temp
// directory and whose console decoration is off.
func testPipeline(t *testing.T, directoryURL string) (*Pipeline, *config.Config) {
	t.Helper()

	tmp := t.TempDir()
	cfg := &config.Config{
		LogLevel:       "error",
		HTTPTimeout:    5 * time.Second,
		UserAgent:      "Test/1.0",
		DirectoryURL:   directoryURL,
		TeachersPath:   "/teachers",
		MaxAttempts:    3,
		Concurrency:    4,
		ImageDir:       filepath.Join(tmp, "img"),
		SubdomainsFile: filepath.Join(tmp, "subdomains.txt"),
		TeachersFile:   filepath.Join(tmp, "teachers.json"),
		NoProgress:     true,
	}

	client := &http.Client{Timeout: cfg.HTTPTimeout}
	return New(cfg, client), cfg
}
