// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package gateway wraps every outbound Joyrun API call: it signs the
// request with the current session identity, enforces the transport-status
// and application-status contract, and classifies remote failures into
// typed errors ([TransportError], [ErrSessionExpired], [RetStateError]).
//
// The bounded session-expiry retry policy is expressed once, generically,
// by [WithRelogin] instead of being duplicated per call site.
package gateway

import (
	"context"

	"github.com/lzuhelper/joyrun/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/gateway_mock.go -package=mock

// Doer executes signed calls against the Joyrun API on behalf of one
// account.
type Doer interface {
	// Execute performs a strict call: any non-2xx status fails with
	// *TransportError, ret "401" with ErrSessionExpired, any other nonzero
	// ret with *RetStateError. The returned envelope always has Ret == "0".
	Execute(ctx context.Context, method, path string, payload map[string]string) (*models.Envelope, error)

	// Probe performs a permissive call used by the pre-login flow: the
	// transport contract is still enforced, but the envelope is returned
	// whatever its ret code so the caller can branch on challenge codes.
	Probe(ctx context.Context, method, path string, payload map[string]string) (*models.Envelope, error)

	// SetIdentity replaces the session identity used for request signing
	// and the derived cookie/header state. Called by the session manager
	// after every successful (re-)login.
	SetIdentity(identity models.Identity)
}
