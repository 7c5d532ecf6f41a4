// Package cli provides the command-line interface for teacherscrape.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/schoolsby-tools/teacherscrape/internal/app"
	"github.com/schoolsby-tools/teacherscrape/internal/config"
	"github.com/schoolsby-tools/teacherscrape/internal/scrape"
	"github.com/schoolsby-tools/teacherscrape/internal/ui"
)

// rootCmd runs the whole pipeline; there are no subcommands.
var rootCmd = &cobra.Command{
	Use:   "teacherscrape",
	Short: "Scrape teacher listings and photos from the schools.by directory",
	Long: `teacherscrape crawls the schools.by subdomain directory, collects every
school's teacher listing, and downloads teacher photos.

It writes three outputs to the working directory: subdomains.txt (one
school URL per line), teachers.json (all collected records), and img/
(one photo per teacher that listed both a name and a picture).`,
	Example: `  # Full scrape with defaults
  teacherscrape

  # Verbose run with more parallel downloads
  teacherscrape -v --concurrency=32

  # Point everything somewhere else
  teacherscrape --directory-url=https://mirror.example.com/subdomains --image-dir=photos`,
	Version:       "0.1.0",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	pipeline := scrape.New(cfg, application.HTTPClient)
	summary, err := pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}

func printSummary(s *scrape.Summary) {
	fmt.Printf("%s %d subdomains, %d teachers, %d images saved",
		ui.Success("Done:"), s.Subdomains, s.Teachers, s.ImagesSaved)
	if s.ImagesFailed > 0 {
		fmt.Printf(", %s", ui.Error(fmt.Sprintf("%d failed", s.ImagesFailed)))
	}
	fmt.Printf("\n%s\n", ui.Info(fmt.Sprintf("Work time: %s", s.Elapsed.Round(time.Millisecond))))
}
