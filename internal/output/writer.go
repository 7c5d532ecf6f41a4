// Package output persists scrape results to the filesystem.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/schoolsby-tools/teacherscrape/pkg/models"
)

// WriteSubdomains writes one subdomain URL per line in discovery order,
// every line newline terminated. The file is replaced on each run.
func WriteSubdomains(path string, subdomains []string) error {
	var b strings.Builder
	for _, s := range subdomains {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write subdomain list: %w", err)
	}
	return nil
}

// WriteTeachers serializes the aggregated records as a single JSON array.
// HTML escaping is disabled so names and URLs survive byte for byte;
// non-ASCII text is written literally, not escaped.
func WriteTeachers(path string, teachers []models.Teacher) error {
	if teachers == nil {
		teachers = []models.Teacher{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(teachers); err != nil {
		return fmt.Errorf("failed to encode teachers: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write teachers file: %w", err)
	}
	return nil
}
