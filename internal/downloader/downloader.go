// internal/downloader/downloader.go
package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/schoolsby-tools/teacherscrape/internal/retry"
)

// imageExt is appended to every saved photo, matching the source site
// which serves teacher portraits as JPEG.
const imageExt = ".jpg"

// forbiddenReplacer maps characters that are invalid in file names on
// common filesystems to underscores.
var forbiddenReplacer = strings.NewReplacer(
	"/", "_",
	"<", "_",
	">", "_",
	":", "_",
	`"`, "_",
	`\`, "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// SanitizeName returns name trimmed of surrounding whitespace with
// filesystem-reserved characters replaced by underscores, suitable as a
// file name stem. Safe on empty and already-valid input.
func SanitizeName(name string) string {
	return forbiddenReplacer.Replace(strings.TrimSpace(name))
}

// Job names one photo to download: the file name stem and the source URL.
type Job struct {
	Filename string
	URL      string
}

// DownloadResult represents the outcome of a single download. Failure is
// recorded here rather than raised, so one bad image never aborts its
// siblings; callers that care can inspect Error.
type DownloadResult struct {
	Job      Job
	FilePath string
	Size     int64
	Success  bool
	Error    error
	Duration time.Duration
}

// DownloadOptions configures the download behavior
type DownloadOptions struct {
	OutputDir string
	Headers   map[string]string

	// OnResult, when set, is invoked once per completed download as
	// results are collected. Used to drive the progress bar.
	OnResult func(*DownloadResult)
}

// Downloader retrieves binary resources with bounded retry and streams
// them to disk.
type Downloader struct {
	client    *http.Client
	userAgent string
	retryCfg  retry.Config
}

// NewDownloader creates a Downloader that shares the run's HTTP client.
func NewDownloader(client *http.Client, userAgent string, retryCfg retry.Config) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Downloader{
		client:    client,
		userAgent: userAgent,
		retryCfg:  retryCfg,
	}
}

// Download fetches job.URL and writes it to <OutputDir>/<Filename>.jpg.
// Transient failures consume retry attempts; on exhaustion the result
// carries the last error and no file is written.
func (d *Downloader) Download(ctx context.Context, job Job, opts DownloadOptions) *DownloadResult {
	start := time.Now()
	result := &DownloadResult{Job: job}

	log.Debug().Str("url", job.URL).Msg("Downloading image")

	if _, err := url.Parse(job.URL); err != nil {
		result.Error = fmt.Errorf("invalid URL: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		result.Error = fmt.Errorf("failed to create output directory: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	filePath := filepath.Join(opts.OutputDir, SanitizeName(job.Filename)+imageExt)
	result.FilePath = filePath

	var raw []byte
	err := retry.WithRetry(ctx, d.retryCfg, func() error {
		b, err := d.get(ctx, job.URL, opts.Headers)
		if err != nil {
			return err
		}
		raw = b
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("url", job.URL).Msg("Image download failed")
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		result.Error = fmt.Errorf("failed to write file: %w", err)
		result.Duration = time.Since(start)
		os.Remove(filePath)
		return result
	}

	result.Size = int64(len(raw))
	result.Success = true
	result.Duration = time.Since(start)

	log.Debug().
		Str("url", job.URL).
		Str("file", filePath).
		Int64("bytes", result.Size).
		Dur("duration", result.Duration).
		Msg("Image saved")

	return result
}

func (d *Downloader) get(ctx context.Context, fileURL string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("User-Agent", d.userAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, retry.NewHTTPError(resp.StatusCode, resp.Status, fileURL)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return raw, nil
}
