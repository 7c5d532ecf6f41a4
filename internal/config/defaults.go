package config

import "time"

// Default constants for application configuration. Running with no flags
// reproduces the stock schools.by scrape.
const (
	DefaultLogLevel    = "info"
	DefaultJSONLog     = false
	DefaultUserAgent   = "teacherscrape/1.0 (https://github.com/schoolsby-tools/teacherscrape)"
	DefaultHTTPTimeout = 30 * time.Second

	DefaultDirectoryURL = "https://schools.by/subdomains"
	DefaultTeachersPath = "/teachers"

	DefaultMaxAttempts = 3
	DefaultConcurrency = 16
	MaxConcurrency     = 50

	DefaultImageDir       = "img"
	DefaultSubdomainsFile = "subdomains.txt"
	DefaultTeachersFile   = "teachers.json"
)
