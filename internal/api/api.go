// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package api exposes the authenticated read endpoints of the Joyrun API:
// record listings, record details, profile, bindings and message feeds.
// Every call runs under the session-expiry retry policy and confirms a
// restored session on its first success.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lzuhelper/joyrun/internal/gateway"
	"github.com/lzuhelper/joyrun/internal/logger"
	"github.com/lzuhelper/joyrun/internal/session"
	"github.com/lzuhelper/joyrun/models"
)

// Service is the authenticated API client for one account.
type Service struct {
	gw         gateway.Doer
	sessions   *session.Manager
	retryLimit int
	logger     *logger.Logger
}

// NewService wires an API service on top of an authenticated gateway.
func NewService(gw gateway.Doer, sessions *session.Manager, retryLimit int, log *logger.Logger) *Service {
	return &Service{
		gw:         gw,
		sessions:   sessions,
		retryLimit: retryLimit,
		logger:     log,
	}
}

// call runs one authenticated request under the re-login retry policy and
// upgrades an assumed-valid session once the server has accepted it.
func (s *Service) call(ctx context.Context, method, path string, payload map[string]string) (*models.Envelope, error) {
	envelope, err := gateway.WithRelogin(func() (*models.Envelope, error) {
		return s.gw.Execute(ctx, method, path, payload)
	}, func() error {
		return s.sessions.Login(ctx)
	}, s.retryLimit)
	if err != nil {
		return nil, err
	}

	s.sessions.MarkConfirmed()
	return envelope, nil
}

// GetRecords lists the account's run records. year 0 requests all years.
func (s *Service) GetRecords(ctx context.Context, year int) ([]RunSummary, error) {
	envelope, err := s.call(ctx, http.MethodPost, "/userRunList.aspx", map[string]string{
		"year": strconv.Itoa(year),
	})
	if err != nil {
		return nil, fmt.Errorf("get records: %w", err)
	}

	var data struct {
		RunList []RunSummary `json:"datas"`
	}
	if err = envelope.DecodeData(&data); err != nil {
		return nil, fmt.Errorf("decode record list: %w", err)
	}
	return data.RunList, nil
}

// GetRecord fetches one record by fid and unpacks its double-encoded track
// fields back into structures.
func (s *Service) GetRecord(ctx context.Context, fid int64) (*RunDetail, error) {
	envelope, err := s.call(ctx, http.MethodPost, "/Run/GetInfo.aspx", map[string]string{
		"fid": strconv.FormatInt(fid, 10),
		"wgs": "1",
	})
	if err != nil {
		return nil, fmt.Errorf("get record %d: %w", fid, err)
	}

	var wire runDetailWire
	if err = envelope.DecodeData(&wire); err != nil {
		return nil, fmt.Errorf("decode record %d: %w", fid, err)
	}
	return wire.detail()
}

// GetMyInfo fetches the profile of the logged-in user.
func (s *Service) GetMyInfo(ctx context.Context) (*UserInfo, error) {
	uid := s.sessions.Identity().UID
	envelope, err := s.call(ctx, http.MethodPost, "/user.aspx", map[string]string{
		"touid":  strconv.FormatInt(uid, 10),
		"option": "info",
	})
	if err != nil {
		return nil, fmt.Errorf("get my info: %w", err)
	}

	var info UserInfo
	if err = envelope.DecodeData(&info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	return &info, nil
}

// GetBindings lists the third-party account bindings.
func (s *Service) GetBindings(ctx context.Context) ([]Binding, error) {
	envelope, err := s.call(ctx, http.MethodGet, "//user/getbindings", nil)
	if err != nil {
		return nil, fmt.Errorf("get bindings: %w", err)
	}

	var data struct {
		Bindings []Binding `json:"bindings"`
	}
	if err = envelope.DecodeData(&data); err != nil {
		return nil, fmt.Errorf("decode bindings: %w", err)
	}
	return data.Bindings, nil
}

// GetFeedMessages fetches the feed message list starting from the newest.
func (s *Service) GetFeedMessages(ctx context.Context) ([]FeedMessage, error) {
	envelope, err := s.call(ctx, http.MethodPost, "/feedMessageList.aspx", map[string]string{
		"lasttime": "0",
	})
	if err != nil {
		return nil, fmt.Errorf("get feed messages: %w", err)
	}

	var data struct {
		Messages []FeedMessage `json:"datas"`
	}
	if err = envelope.DecodeData(&data); err != nil {
		return nil, fmt.Errorf("decode feed messages: %w", err)
	}
	return data.Messages, nil
}

// GetDataMessages fetches the data message list starting from the newest.
func (s *Service) GetDataMessages(ctx context.Context) ([]FeedMessage, error) {
	envelope, err := s.call(ctx, http.MethodGet, "/dataMessages", map[string]string{
		"lasttime": "0",
	})
	if err != nil {
		return nil, fmt.Errorf("get data messages: %w", err)
	}

	var data struct {
		Messages []FeedMessage `json:"datas"`
	}
	if err = envelope.DecodeData(&data); err != nil {
		return nil, fmt.Errorf("decode data messages: %w", err)
	}
	return data.Messages, nil
}

// GetBestRecord fetches the account's personal bests.
func (s *Service) GetBestRecord(ctx context.Context) (*BestRecord, error) {
	uid := s.sessions.Identity().UID
	envelope, err := s.call(ctx, http.MethodPost, "/run/best", map[string]string{
		"touid":  strconv.FormatInt(uid, 10),
		"option": "record",
	})
	if err != nil {
		return nil, fmt.Errorf("get best record: %w", err)
	}

	var best BestRecord
	if err = envelope.DecodeData(&best); err != nil {
		return nil, fmt.Errorf("decode best record: %w", err)
	}
	return &best, nil
}

// GetTimestamp fetches the server time. The endpoint ignores authentication,
// which makes it a cheap reachability probe.
func (s *Service) GetTimestamp(ctx context.Context) (int64, error) {
	envelope, err := s.gw.Execute(ctx, http.MethodGet, "/GetTimestamp.aspx", nil)
	if err != nil {
		return 0, fmt.Errorf("get timestamp: %w", err)
	}

	var data struct {
		Timestamp models.FlexInt64 `json:"timestamp"`
	}
	if err = envelope.DecodeData(&data); err != nil {
		return 0, fmt.Errorf("decode timestamp: %w", err)
	}
	return int64(data.Timestamp), nil
}

// Logout invalidates the session server-side. The local cache keeps the now
// dead sid; the next run falls through restore into a fresh login.
func (s *Service) Logout(ctx context.Context) error {
	if _, err := s.gw.Execute(ctx, http.MethodPost, "/logout.aspx", nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.Info().Msg("logged out")
	return nil
}
