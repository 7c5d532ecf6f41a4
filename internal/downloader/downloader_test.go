package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/schoolsby-tools/teacherscrape/internal/retry"
)

func newTestDownloader() *Downloader {
	client := &http.Client{Timeout: 5 * time.Second}
	return NewDownloader(client, "Test/1.0", retry.DefaultConfig())
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already valid", "Jane Doe", "Jane Doe"},
		{"surrounding whitespace", "  Jane Doe \t\n", "Jane Doe"},
		{"forbidden characters", `a/b<c>d:e"f\g|h?i*j`, "a_b_c_d_e_f_g_h_i_j"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
		{"cyrillic untouched", "Иванова Мария", "Иванова Мария"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if strings.ContainsAny(got, `/<>:"\|?*`) {
				t.Errorf("Result still contains forbidden characters: %q", got)
			}
			if got != strings.TrimSpace(got) {
				t.Errorf("Result has edge whitespace: %q", got)
			}
		})
	}
}

func TestDownload_Success(t *testing.T) {
	content := "jpeg bytes"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(content))
	}))
	defer server.Close()

	tempDir := t.TempDir()
	dl := newTestDownloader()

	result := dl.Download(context.Background(), Job{Filename: "Jane Doe", URL: server.URL + "/x.jpg"}, DownloadOptions{
		OutputDir: tempDir,
	})

	if !result.Success {
		t.Fatalf("Download failed: %v", result.Error)
	}
	if want := filepath.Join(tempDir, "Jane Doe.jpg"); result.FilePath != want {
		t.Errorf("FilePath = %q, want %q", result.FilePath, want)
	}

	data, err := os.ReadFile(result.FilePath)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != content {
		t.Errorf("Content mismatch: got %q, want %q", string(data), content)
	}
}

func TestDownload_RetriesThenSucceeds(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("data"))
	}))
	defer server.Close()

	dl := newTestDownloader()
	result := dl.Download(context.Background(), Job{Filename: "flaky", URL: server.URL}, DownloadOptions{
		OutputDir: t.TempDir(),
	})

	if !result.Success {
		t.Fatalf("Download failed after transient errors: %v", result.Error)
	}
	if got := atomic.LoadInt64(&calls); got != 3 {
		t.Errorf("Request count = %d, want 3", got)
	}
}

func TestDownload_FailureLeavesNoFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	tempDir := t.TempDir()
	dl := newTestDownloader()

	result := dl.Download(context.Background(), Job{Filename: "gone", URL: server.URL}, DownloadOptions{
		OutputDir: tempDir,
	})

	if result.Success {
		t.Fatal("Download should have failed")
	}
	if result.Error == nil {
		t.Fatal("Failed result should carry an error")
	}
	if _, err := os.Stat(filepath.Join(tempDir, "gone.jpg")); !os.IsNotExist(err) {
		t.Error("No file should be written on failure")
	}
}

func TestDownload_SanitizesFilename(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer server.Close()

	tempDir := t.TempDir()
	dl := newTestDownloader()

	result := dl.Download(context.Background(), Job{Filename: ` a/b:c `, URL: server.URL}, DownloadOptions{
		OutputDir: tempDir,
	})

	if !result.Success {
		t.Fatalf("Download failed: %v", result.Error)
	}
	if want := filepath.Join(tempDir, "a_b_c.jpg"); result.FilePath != want {
		t.Errorf("FilePath = %q, want %q", result.FilePath, want)
	}
}

func TestDownloadBatch_OrderAndCompleteness(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Millisecond)
		w.Write([]byte("data"))
	}))
	defer server.Close()

	tempDir := t.TempDir()
	jobs := []Job{
		{Filename: "one", URL: server.URL + "/1.jpg"},
		{Filename: "two", URL: server.URL + "/2.jpg"},
		{Filename: "three", URL: server.URL + "/3.jpg"},
		{Filename: "four", URL: server.URL + "/4.jpg"},
	}

	var progress int64
	pool := NewWorkerPool(newTestDownloader(), 2)
	results := pool.DownloadBatch(context.Background(), jobs, DownloadOptions{
		OutputDir: tempDir,
		OnResult:  func(*DownloadResult) { atomic.AddInt64(&progress, 1) },
	})

	if len(results) != len(jobs) {
		t.Fatalf("Result count mismatch: got %d, want %d", len(results), len(jobs))
	}
	for i, r := range results {
		if r.Job.Filename != jobs[i].Filename {
			t.Errorf("results[%d] is for %q, want %q", i, r.Job.Filename, jobs[i].Filename)
		}
		if !r.Success {
			t.Errorf("Job %q failed: %v", r.Job.Filename, r.Error)
		}
	}
	if got := atomic.LoadInt64(&progress); got != int64(len(jobs)) {
		t.Errorf("Progress callback invoked %d times, want %d", got, len(jobs))
	}
}

func TestDownloadBatch_Empty(t *testing.T) {
	pool := NewWorkerPool(newTestDownloader(), 2)
	results := pool.DownloadBatch(context.Background(), nil, DownloadOptions{OutputDir: t.TempDir()})
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestDownloadBatch_MixedOutcomes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "bad") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("data"))
	}))
	defer server.Close()

	tempDir := t.TempDir()
	jobs := []Job{
		{Filename: "good", URL: server.URL + "/good.jpg"},
		{Filename: "bad", URL: server.URL + "/bad.jpg"},
	}

	pool := NewWorkerPool(newTestDownloader(), 2)
	results := pool.DownloadBatch(context.Background(), jobs, DownloadOptions{OutputDir: tempDir})

	if !results[0].Success {
		t.Errorf("Good job failed: %v", results[0].Error)
	}
	if results[1].Success {
		t.Error("Bad job should have failed")
	}
	if _, err := os.Stat(filepath.Join(tempDir, "good.jpg")); err != nil {
		t.Errorf("Good file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tempDir, "bad.jpg")); !os.IsNotExist(err) {
		t.Error("Bad file should not exist")
	}
}
