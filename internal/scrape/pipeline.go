// Package scrape implements the three-stage pipeline: subdomain
// discovery, teacher collection, image collection.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/schoolsby-tools/teacherscrape/internal/batch"
	"github.com/schoolsby-tools/teacherscrape/internal/config"
	"github.com/schoolsby-tools/teacherscrape/internal/downloader"
	"github.com/schoolsby-tools/teacherscrape/internal/fetch"
	"github.com/schoolsby-tools/teacherscrape/internal/output"
	"github.com/schoolsby-tools/teacherscrape/internal/retry"
	"github.com/schoolsby-tools/teacherscrape/internal/ui"
	"github.com/schoolsby-tools/teacherscrape/pkg/models"
)

// Pipeline runs the scrape stages in order. All fetches share one HTTP
// client for the lifetime of the run.
type Pipeline struct {
	cfg     *config.Config
	fetcher *fetch.Fetcher
	pool    *downloader.WorkerPool
}

// New wires a Pipeline from the run configuration and the shared client.
func New(cfg *config.Config, client *http.Client) *Pipeline {
	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = cfg.MaxAttempts

	dl := downloader.NewDownloader(client, cfg.UserAgent, retryCfg)

	return &Pipeline{
		cfg:     cfg,
		fetcher: fetch.New(client, cfg.UserAgent, retryCfg),
		pool:    downloader.NewWorkerPool(dl, cfg.Concurrency),
	}
}

// Summary reports what a full run accomplished.
type Summary struct {
	Subdomains   int
	Teachers     int
	ImagesSaved  int
	ImagesFailed int
	Elapsed      time.Duration
}

// Run executes discovery, collection, and download in order. Only a
// directory-page failure or an output write failure aborts the run;
// per-subdomain and per-image failures degrade to missing items.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()

	if err := os.MkdirAll(p.cfg.ImageDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}

	// Stage 1: directory discovery.
	subdomains, err := p.Directory(ctx)
	if err != nil {
		return nil, err
	}
	if err := output.WriteSubdomains(p.cfg.SubdomainsFile, subdomains); err != nil {
		return nil, err
	}
	log.Info().Int("count", len(subdomains)).Msg("Subdomains found")

	// Stage 2: parse every subdomain's teacher page, preserving launch
	// order in the aggregate.
	stopSpinner := p.startSpinner()
	pages := batch.Run(ctx, len(subdomains), p.cfg.Concurrency, func(ctx context.Context, i int) models.PageResult {
		return p.TeachersPage(ctx, subdomains[i]+p.cfg.TeachersPath)
	})
	stopSpinner()

	var teachers []models.Teacher
	pagesFailed := 0
	for _, page := range pages {
		if page.Err != nil {
			pagesFailed++
		}
		teachers = append(teachers, page.Teachers...)
	}
	if err := output.WriteTeachers(p.cfg.TeachersFile, teachers); err != nil {
		return nil, err
	}
	log.Info().
		Int("teachers", len(teachers)).
		Int("pages_failed", pagesFailed).
		Msg("Teacher collection finished")

	// Stage 3: download one photo per record that has both fields.
	var jobs []downloader.Job
	for _, t := range teachers {
		if !t.HasImage() {
			continue
		}
		jobs = append(jobs, downloader.Job{Filename: t.Name, URL: t.ImgURL})
	}

	opts := downloader.DownloadOptions{OutputDir: p.cfg.ImageDir}
	if bar := p.newProgressBar(len(jobs)); bar != nil {
		opts.OnResult = func(*downloader.DownloadResult) { bar.Add(1) }
		defer bar.Finish()
	}

	saved, failed := 0, 0
	for _, res := range p.pool.DownloadBatch(ctx, jobs, opts) {
		if res.Success {
			saved++
		} else {
			failed++
		}
	}

	if dir, err := filepath.Abs(p.cfg.ImageDir); err == nil {
		log.Info().Str("dir", dir).Int("saved", saved).Int("failed", failed).Msg("All downloads finished")
	}

	return &Summary{
		Subdomains:   len(subdomains),
		Teachers:     len(teachers),
		ImagesSaved:  saved,
		ImagesFailed: failed,
		Elapsed:      time.Since(start),
	}, nil
}

// startSpinner animates stderr while stage 2 waits on the network. The
// returned function stops the animation and waits for it to clear.
func (p *Pipeline) startSpinner() func() {
	if p.cfg.NoProgress || p.cfg.JSONLog {
		return func() {}
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		ui.Spin(os.Stderr, 100*time.Millisecond, stop)
		close(done)
	}()
	return func() {
		close(stop)
		<-done
	}
}

func (p *Pipeline) newProgressBar(total int) *progressbar.ProgressBar {
	if p.cfg.NoProgress || p.cfg.JSONLog || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("downloading images"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
