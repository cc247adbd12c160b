// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package upload turns a generated run record into the po.aspx submission,
// including the double-encoded wire fields and the session-expiry retry.
package upload

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lzuhelper/joyrun/internal/gateway"
	"github.com/lzuhelper/joyrun/internal/logger"
	"github.com/lzuhelper/joyrun/internal/record"
	"github.com/lzuhelper/joyrun/internal/session"
	"github.com/lzuhelper/joyrun/internal/validators"
	"github.com/lzuhelper/joyrun/models"
)

// Pipeline submits run records for one account.
type Pipeline struct {
	gw         gateway.Doer
	sessions   *session.Manager
	validator  validators.Validator
	observer   Observer
	retryLimit int
	logger     *logger.Logger
}

// NewPipeline wires an upload pipeline. observer may be nil.
func NewPipeline(gw gateway.Doer, sessions *session.Manager, observer Observer, retryLimit int, log *logger.Logger) *Pipeline {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Pipeline{
		gw:         gw,
		sessions:   sessions,
		validator:  validators.NewRunRecordValidator(),
		observer:   observer,
		retryLimit: retryLimit,
		logger:     log,
	}
}

// Upload validates rec, builds the po.aspx payload and submits it. An
// expired session triggers one re-login cycle per the configured retry
// limit; every other failure propagates unchanged.
func (p *Pipeline) Upload(ctx context.Context, rec *models.RunRecord, venue record.Venue) error {
	if err := p.validator.Validate(ctx, rec); err != nil {
		return fmt.Errorf("validate record: %w", err)
	}

	p.observer.Progress("building payload", 10)

	payload, err := BuildPayload(rec, venue)
	if err != nil {
		return fmt.Errorf("build upload payload: %w", err)
	}

	p.observer.Progress("uploading", 40)

	err = gateway.WithReloginNoResult(func() error {
		_, execErr := p.gw.Execute(ctx, http.MethodPost, "/po.aspx", payload)
		return execErr
	}, func() error {
		return p.sessions.Login(ctx)
	}, p.retryLimit)
	if err != nil {
		return fmt.Errorf("upload record %s: %w", rec.RunID, err)
	}

	p.sessions.MarkConfirmed()
	p.observer.Progress("done", 100)

	p.logger.Info().
		Str("runid", rec.RunID).
		Int("meter", rec.TotalMeters).
		Int("second", rec.DurationSeconds).
		Msg("record uploaded")
	return nil
}
