// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.API.BaseURL == "" || cfg.API.WapURL == "" || cfg.API.RequestTimeout <= 0 {
		return ErrInvalidAPIConfigs
	}
	if cfg.API.RetryLimit < 0 {
		return fmt.Errorf("%w: negative retry limit", ErrInvalidAPIConfigs)
	}

	for i, a := range cfg.Accounts {
		if a.StudentID == "" || a.Password == "" {
			return fmt.Errorf("%w: account %d (%s)", ErrInvalidAccountConfigs, i, a.Name)
		}
		if a.DistanceKm < 0 || a.PaceMinPerKm < 0 || a.StrideFrequency < 0 {
			return fmt.Errorf("%w: account %d (%s): negative run parameter", ErrInvalidAccountConfigs, i, a.Name)
		}
	}

	return nil
}

// SelectAccount resolves the run-mode account selection against the
// configured accounts list. Returns ErrNoAccounts when the list is empty and
// ErrAccountIndexOutOfRange when index does not address a configured entry.
func (cfg *StructuredConfig) SelectAccount(index int) (Account, error) {
	if len(cfg.Accounts) == 0 {
		return Account{}, ErrNoAccounts
	}
	if index < 0 || index >= len(cfg.Accounts) {
		return Account{}, fmt.Errorf("%w: %d (valid range 0-%d)", ErrAccountIndexOutOfRange, index, len(cfg.Accounts)-1)
	}
	return cfg.Accounts[index], nil
}
