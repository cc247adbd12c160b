// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists the last known session identity so a process
// restart can skip interactive login.
//
// Two backends implement [SessionStore]: a JSON cache file (default,
// single keyed record) and a SQLite table keyed by user name. Both treat a
// fresh install and a corrupted record identically: [ErrSessionNotFound].
// Concurrent external mutation of the store is out of scope; the client is
// single-process.
package store

import (
	"context"

	"github.com/lzuhelper/joyrun/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_store_mock.go -package=mock

// SessionStore persists and restores the (userName, sid, uid) triple.
type SessionStore interface {
	// Load returns the cached identity, or ErrSessionNotFound when no prior
	// session exists or the record cannot be decoded.
	Load(ctx context.Context) (models.Identity, error)

	// Save replaces the cached identity. Called after every successful
	// login.
	Save(ctx context.Context, identity models.Identity) error
}
