package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Write logs as JSON")
	cmd.PersistentFlags().String("proxy", "", "Set HTTP/SOCKS5 proxy (e.g., http://localhost:8080)")
	cmd.PersistentFlags().String("timeout", "30s", "Hard timeout for individual requests")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().String("directory-url", DefaultDirectoryURL, "Subdomain directory page to crawl")
	cmd.PersistentFlags().String("teachers-path", DefaultTeachersPath, "Path appended to each subdomain for the teacher listing")
	cmd.PersistentFlags().Int("attempts", DefaultMaxAttempts, "Attempts per page or image fetch")
	cmd.PersistentFlags().IntP("concurrency", "c", DefaultConcurrency, "Concurrent page parses and downloads (1-50)")
	cmd.PersistentFlags().String("image-dir", DefaultImageDir, "Directory for downloaded photos")
	cmd.PersistentFlags().String("subdomains-file", DefaultSubdomainsFile, "File for the discovered subdomain list")
	cmd.PersistentFlags().String("teachers-file", DefaultTeachersFile, "File for the aggregated teacher records")
	cmd.PersistentFlags().Bool("no-progress", false, "Disable the spinner and progress bar")
}
