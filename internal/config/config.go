// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"
	"time"
)

// DefaultSuffix is appended to a bare student id to form the login name.
const DefaultSuffix = "@lzu.edu.cn"

// StructuredConfig is the top-level configuration container for the joyrun
// client. It is populated by merging values from environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Base holds application-level settings.
	Base Base `envPrefix:"BASE_"`

	// API holds remote endpoint addresses and request policy.
	API API `envPrefix:"API_"`

	// Storage holds the local session cache settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Accounts lists the configured accounts. Populated from the JSON file
	// only; environment variables cannot express a list of accounts.
	Accounts []Account

	// Run holds the run-mode selection parsed from flags. Never merged from
	// other sources.
	Run RunMode

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Base holds application-level settings.
type Base struct {
	// Debug switches the loggers to debug level.
	// Env: BASE_DEBUG
	Debug bool `env:"DEBUG"`

	// AccountInterval is the pause inserted between two accounts when
	// running all of them (e.g. "30s").
	// Env: BASE_ACCOUNT_INTERVAL
	AccountInterval time.Duration `env:"ACCOUNT_INTERVAL"`
}

// API holds remote endpoint addresses and request policy.
type API struct {
	// BaseURL is the main API host.
	// Env: API_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// WapURL is the H5 host used by the SMS dispatch side channel.
	// Env: API_WAP_URL
	WapURL string `env:"WAP_URL"`

	// RequestTimeout is the per-call network timeout (e.g. "10s").
	// Env: API_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RetryLimit bounds the automatic re-login retries after a session
	// expiry response.
	// Env: API_RETRY_LIMIT
	RetryLimit int `env:"RETRY_LIMIT"`
}

// Storage holds the local session cache settings.
type Storage struct {
	// CacheDir is the directory holding the JSON session cache file.
	// Env: STORAGE_CACHE_DIR
	CacheDir string `env:"CACHE_DIR"`

	// DSN is an optional SQLite DSN; when set, sessions are cached in a
	// SQLite table instead of the JSON file.
	// Env: STORAGE_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Account holds the immutable settings of one configured account.
type Account struct {
	// Name is the display label used in logs and the account table.
	Name string

	// StudentID plus Suffix forms the login name. Suffix defaults to
	// DefaultSuffix when empty.
	StudentID string
	Suffix    string

	// Password is the plaintext account password.
	Password string

	// Phone is the optional phone number for the SMS-code login fallback.
	Phone string

	// DistanceKm, PaceMinPerKm and StrideFrequency parameterize the
	// generated record.
	DistanceKm      float64
	PaceMinPerKm    float64
	StrideFrequency int

	// RecordType selects the venue preset: "xicao", "dongcao" or "random".
	RecordType string

	// RecordNumber selects a fixed track variant within the venue preset;
	// 0 picks one at random.
	RecordNumber int
}

// UserName returns the full login name of the account.
func (a Account) UserName() string {
	suffix := a.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return strings.TrimSpace(a.StudentID) + suffix
}

// RunMode is the run selection parsed from command-line flags.
type RunMode struct {
	// Check only prints the effective configuration.
	Check bool

	// All runs every configured account in order.
	All bool

	// AccountIndex runs a single account by zero-based index; -1 means not
	// specified.
	AccountIndex int
}

// GetConfig loads, merges, and validates the client configuration from all
// available sources in the following priority order (last source wins for
// unset fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

func defaults() *StructuredConfig {
	return &StructuredConfig{
		API: API{
			BaseURL:        "https://api.thejoyrun.com",
			WapURL:         "https://wap.thejoyrun.com",
			RequestTimeout: 10 * time.Second,
			RetryLimit:     1,
		},
		Storage: Storage{
			CacheDir: "cache",
		},
	}
}
