package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration and run-mode flags.
//
// Flags:
//
//	-c/-config json file path with configs
//	-base-url API host
//	-wap-url H5 host for the SMS side channel
//	-request-timeout per-call timeout (e.g., "10s")
//	-retry session-expiry re-login limit
//	-cache-dir session cache directory
//	-d sqlite DSN for the session cache
//	-debug enable debug logging
//	-interval pause between accounts (e.g., "30s")
//	-check print effective config and exit
//	-a run all accounts
//	-i run a single account by zero-based index
func ParseFlags() *StructuredConfig {
	var jsonConfigPath string
	var baseURL, wapURL string
	var requestTimeout time.Duration
	var retryLimit int
	var cacheDir string
	var databaseDSN string
	var debug bool
	var accountInterval time.Duration
	var check, all bool
	var accountIndex int

	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&baseURL, "base-url", "", "API base URL")
	flag.StringVar(&wapURL, "wap-url", "", "WAP base URL for the SMS side channel")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s)")
	flag.IntVar(&retryLimit, "retry", 0, "Session-expiry re-login limit")
	flag.StringVar(&cacheDir, "cache-dir", "", "Session cache directory")
	flag.StringVar(&databaseDSN, "d", "", "SQLite DSN for the session cache")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.DurationVar(&accountInterval, "interval", 0, "Pause between accounts (e.g., 30s)")
	flag.BoolVar(&check, "check", false, "Print effective config and exit")
	flag.BoolVar(&all, "a", false, "Run all accounts")
	flag.IntVar(&accountIndex, "i", -1, "Run a single account by zero-based index")

	flag.Parse()

	return &StructuredConfig{
		Base: Base{
			Debug:           debug,
			AccountInterval: accountInterval,
		},
		API: API{
			BaseURL:        baseURL,
			WapURL:         wapURL,
			RequestTimeout: requestTimeout,
			RetryLimit:     retryLimit,
		},
		Storage: Storage{
			CacheDir: cacheDir,
			DSN:      databaseDSN,
		},
		Run: RunMode{
			Check:        check,
			All:          all,
			AccountIndex: accountIndex,
		},
		JSONFilePath: jsonConfigPath,
	}
}
