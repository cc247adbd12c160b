// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lzuhelper/joyrun/internal/api"
	"github.com/lzuhelper/joyrun/internal/config"
	"github.com/lzuhelper/joyrun/internal/gateway"
	"github.com/lzuhelper/joyrun/internal/logger"
	"github.com/lzuhelper/joyrun/internal/record"
	"github.com/lzuhelper/joyrun/internal/session"
	"github.com/lzuhelper/joyrun/internal/store"
	"github.com/lzuhelper/joyrun/internal/tui"
	"github.com/lzuhelper/joyrun/internal/upload"
	"github.com/lzuhelper/joyrun/models"
)

// App drives the configured accounts through the generate-login-upload flow.
type App struct {
	cfg    *config.StructuredConfig
	logger *logger.Logger
	output io.Writer
}

// NewApp wires the application around a validated configuration.
func NewApp(cfg *config.StructuredConfig, log *logger.Logger) *App {
	return &App{cfg: cfg, logger: log, output: os.Stdout}
}

// Run executes the selected run mode: configuration check, a single account,
// or every configured account in order with the configured pause between
// them. A failing account never aborts the loop; failures surface in the
// final report and in the returned error.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Run.Check {
		a.printConfig()
		return nil
	}

	accounts, err := a.selectAccounts()
	if err != nil {
		return err
	}

	results := make([]tui.AccountResult, 0, len(accounts))
	failed := 0
	for i, account := range accounts {
		if i > 0 && a.cfg.Base.AccountInterval > 0 {
			a.logger.Info().Dur("interval", a.cfg.Base.AccountInterval).Msg("waiting before next account")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(a.cfg.Base.AccountInterval):
			}
		}

		runID, runErr := a.runAccount(ctx, account)
		if runErr != nil {
			failed++
			a.logger.Error().Err(runErr).Str("account", account.Name).Msg("account run failed")
		}
		results = append(results, tui.AccountResult{
			Name:     account.Name,
			UserName: account.UserName(),
			RunID:    runID,
			Err:      runErr,
		})
	}

	tui.RenderSummary(a.output, results)

	if failed > 0 {
		return fmt.Errorf("%d of %d account runs failed", failed, len(accounts))
	}
	return nil
}

// selectAccounts resolves the run-mode account selection. Without -a or -i a
// sole configured account is implied; with several accounts the choice must
// be explicit.
func (a *App) selectAccounts() ([]config.Account, error) {
	if a.cfg.Run.All {
		if len(a.cfg.Accounts) == 0 {
			return nil, config.ErrNoAccounts
		}
		return a.cfg.Accounts, nil
	}

	index := a.cfg.Run.AccountIndex
	if index < 0 {
		if len(a.cfg.Accounts) == 1 {
			index = 0
		} else {
			return nil, fmt.Errorf("%w: several accounts configured, pass -a or -i", config.ErrAccountIndexOutOfRange)
		}
	}

	account, err := a.cfg.SelectAccount(index)
	if err != nil {
		return nil, err
	}
	return []config.Account{account}, nil
}

// runAccount builds the full per-account stack (gateway, session store,
// session manager, record generator, upload pipeline), performs the upload
// under the progress view, and reports the uploaded run id.
func (a *App) runAccount(ctx context.Context, account config.Account) (string, error) {
	userName := account.UserName()
	log := a.logger.GetChildLogger()

	gw, err := gateway.New(a.cfg.API, log)
	if err != nil {
		return "", fmt.Errorf("create gateway: %w", err)
	}

	stores, err := store.NewStores(ctx, a.cfg.Storage, userName, log)
	if err != nil {
		return "", fmt.Errorf("create session store: %w", err)
	}
	defer func() {
		if closeErr := stores.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("close session store")
		}
	}()

	creds := models.Credentials{
		UserName: userName,
		Password: account.Password,
		Phone:    account.Phone,
	}
	manager := session.NewManager(creds, gw, stores.Sessions,
		session.NewWapSMSDispatcher(a.cfg.API, log),
		tui.NewTerminalPrompter(), log)

	if err = manager.Restore(ctx); err != nil {
		return "", err
	}
	if err = manager.EnsureSession(ctx); err != nil {
		return "", err
	}

	rec, venue, err := record.NewGenerator().Generate(record.Options{
		Venue:           account.RecordType,
		Variant:         account.RecordNumber,
		DistanceKm:      account.DistanceKm,
		PaceMinPerKm:    account.PaceMinPerKm,
		StrideFrequency: account.StrideFrequency,
	})
	if err != nil {
		return "", fmt.Errorf("generate record: %w", err)
	}

	label := fmt.Sprintf("uploading %s (%.1f km)", account.Name, float64(rec.TotalMeters)/1000)
	err = tui.RunWithProgress(ctx, a.output, label, func(ctx context.Context, progress func(stage string, percent int)) error {
		pipeline := upload.NewPipeline(gw, manager, upload.ObserverFunc(progress), a.cfg.API.RetryLimit, log)
		return pipeline.Upload(ctx, rec, venue)
	})
	if err != nil {
		return "", err
	}

	// Read back the profile so the log shows the new running total.
	svc := api.NewService(gw, manager, a.cfg.API.RetryLimit, log)
	if info, infoErr := svc.GetMyInfo(ctx); infoErr != nil {
		log.Warn().Err(infoErr).Msg("fetch profile after upload")
	} else {
		log.Info().Int64("allmeter", int64(info.AllMeter)).Str("nick", info.Nick).Msg("profile after upload")
	}

	return rec.RunID, nil
}

func (a *App) printConfig() {
	fmt.Fprintf(a.output, "api base url:     %s\n", a.cfg.API.BaseURL)
	fmt.Fprintf(a.output, "wap url:          %s\n", a.cfg.API.WapURL)
	fmt.Fprintf(a.output, "request timeout:  %s\n", a.cfg.API.RequestTimeout)
	fmt.Fprintf(a.output, "retry limit:      %d\n", a.cfg.API.RetryLimit)
	fmt.Fprintf(a.output, "cache dir:        %s\n", a.cfg.Storage.CacheDir)
	fmt.Fprintf(a.output, "sqlite dsn:       %s\n", a.cfg.Storage.DSN)
	fmt.Fprintf(a.output, "account interval: %s\n", a.cfg.Base.AccountInterval)
	fmt.Fprintf(a.output, "accounts:         %d\n", len(a.cfg.Accounts))
	for i, acc := range a.cfg.Accounts {
		fmt.Fprintf(a.output, "  [%d] %s (%s) venue=%s distance=%.1fkm pace=%.2f\n",
			i, acc.Name, acc.UserName(), acc.RecordType, acc.DistanceKm, acc.PaceMinPerKm)
	}
}
