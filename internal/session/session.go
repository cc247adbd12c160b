// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session owns the authenticated Joyrun identity of one account.
//
// The Manager is the only component that mutates identity state. It walks
// the lifecycle Uninitialized → LoggedOut → AssumedValid | LoggedIn →
// LoginFailed, where AssumedValid means a cached session is trusted without
// having been confirmed by the server yet; the first authenticated call
// either confirms it or triggers the re-login path.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/lzuhelper/joyrun/internal/config"
	"github.com/lzuhelper/joyrun/internal/gateway"
	"github.com/lzuhelper/joyrun/internal/logger"
	"github.com/lzuhelper/joyrun/internal/sign"
	"github.com/lzuhelper/joyrun/internal/store"
	"github.com/lzuhelper/joyrun/models"
)

// State is the session lifecycle position.
type State int

const (
	// StateUninitialized precedes the first Restore call.
	StateUninitialized State = iota
	// StateLoggedOut means no usable identity exists.
	StateLoggedOut
	// StateAssumedValid means a cached identity is trusted but has not been
	// confirmed by the server in this process yet.
	StateAssumedValid
	// StateLoggedIn means the server confirmed the identity (fresh login or
	// a successful authenticated call).
	StateLoggedIn
	// StateLoginFailed is terminal: credentials were rejected.
	StateLoginFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoggedOut:
		return "logged-out"
	case StateAssumedValid:
		return "assumed-valid"
	case StateLoggedIn:
		return "logged-in"
	case StateLoginFailed:
		return "login-failed"
	default:
		return "unknown"
	}
}

// Prompter supplies interactive input for the SMS-code login fallback.
// A nil Prompter makes the fallback fail fast when configuration does not
// already carry the needed values.
type Prompter interface {
	// ReadPhone asks for the phone number to receive the SMS code.
	ReadPhone() (string, error)
	// ReadCode asks for the received SMS code.
	ReadCode() (string, error)
}

// Manager performs credential login, the SMS-code fallback, cached-session
// restore, and keeps the session store and gateway identity in sync.
type Manager struct {
	creds    models.Credentials
	gw       gateway.Doer
	sessions store.SessionStore
	sms      SMSDispatcher
	prompt   Prompter
	logger   *logger.Logger

	// mu serialises login/restore against in-flight 401 handling so
	// parallel session expiries trigger exactly one re-login.
	mu       sync.Mutex
	state    State
	identity models.Identity
}

// NewManager wires a Manager for one account. sms may be nil when the
// SMS side channel is not configured; prompt may be nil in non-interactive
// runs.
func NewManager(creds models.Credentials, gw gateway.Doer, sessions store.SessionStore, sms SMSDispatcher, prompt Prompter, log *logger.Logger) *Manager {
	return &Manager{
		creds:    creds,
		gw:       gw,
		sessions: sessions,
		sms:      sms,
		prompt:   prompt,
		logger:   log,
		state:    StateUninitialized,
	}
}

// State returns the current lifecycle position.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Identity returns the current identity value.
func (m *Manager) Identity() models.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

// Restore loads the cached identity. A cache issued for a different
// username invalidates entirely: uid and sid reset to zero values. With a
// usable cache the manager becomes AssumedValid and defers validation to
// the first real API call; otherwise it is LoggedOut.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cached, err := m.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			m.setIdentity(models.Identity{})
			m.state = StateLoggedOut
			return nil
		}
		return fmt.Errorf("restore session: %w", err)
	}

	if cached.UserName != m.creds.UserName || !cached.Valid() {
		m.logger.Debug().Str("cached", cached.UserName).Msg("cached session unusable, ignoring")
		m.setIdentity(models.Identity{})
		m.state = StateLoggedOut
		return nil
	}

	m.setIdentity(cached)
	m.state = StateAssumedValid
	m.logger.Info().Int64("uid", cached.UID).Msg("session restored from cache")
	return nil
}

// EnsureSession makes sure a session exists: a restored or confirmed
// identity is kept as is, anything else goes through Login.
func (m *Manager) EnsureSession(ctx context.Context) error {
	switch m.State() {
	case StateAssumedValid, StateLoggedIn:
		return nil
	default:
		return m.Login(ctx)
	}
}

// Login exchanges the account credentials for a session. Ret "0" adopts the
// new identity; ret "41998" (new-device challenge) branches into the
// SMS-code sub-flow; any other code is terminal.
func (m *Manager) Login(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.login(ctx)
}

func (m *Manager) login(ctx context.Context) error {
	payload := map[string]string{
		"username": m.creds.UserName,
		"pwd":      sign.MD5Upper(m.creds.Password),
	}

	// The permissive variant is required: the challenge code must reach us
	// as data, not as an error.
	envelope, err := m.gw.Probe(ctx, "GET", "//user/login/normal", payload)
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}

	switch envelope.Ret {
	case models.RetOK:
		return m.adopt(ctx, envelope)
	case models.RetNewDevice:
		m.logger.Warn().Msg("new device detected, phone code verification required")
		return m.loginByPhoneCode(ctx, "")
	default:
		m.state = StateLoginFailed
		m.logger.Error().Str("ret", envelope.Ret).Str("msg", envelope.Msg).Msg("login rejected")
		return &gateway.RetStateError{Ret: envelope.Ret, Msg: envelope.Msg}
	}
}

// LoginByPhoneCode runs the SMS-code login flow. code may be empty; it is
// then read via the Prompter. The SMS dispatch itself is best-effort: a
// failed dispatch is logged as a warning and the flow continues, since the
// code may arrive through another channel.
func (m *Manager) LoginByPhoneCode(ctx context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loginByPhoneCode(ctx, code)
}

func (m *Manager) loginByPhoneCode(ctx context.Context, code string) error {
	phone := strings.TrimSpace(m.creds.Phone)
	if phone == "" && m.prompt != nil {
		p, err := m.prompt.ReadPhone()
		if err != nil {
			return fmt.Errorf("read phone number: %w", err)
		}
		phone = strings.TrimSpace(p)
	}
	if phone == "" {
		m.state = StateLoginFailed
		return config.ErrPhoneNumberMissing
	}

	if m.sms != nil {
		if err := m.sms.Dispatch(ctx, phone); err != nil {
			m.logger.Warn().Err(err).Msg("sms dispatch failed, a code from another channel may still work")
		} else {
			m.logger.Info().Str("phone", phone).Msg("sms code dispatched")
		}
	}

	code = strings.TrimSpace(code)
	if code == "" && m.prompt != nil {
		c, err := m.prompt.ReadCode()
		if err != nil {
			return fmt.Errorf("read sms code: %w", err)
		}
		code = strings.TrimSpace(c)
	}
	if code == "" {
		m.state = StateLoginFailed
		return ErrNoSMSCode
	}

	payload := map[string]string{
		"phoneNumber":     phone,
		"identifyingCode": code,
	}

	envelope, err := m.gw.Probe(ctx, "GET", "/user/login/phonecode", payload)
	if err != nil {
		return fmt.Errorf("phone code login request: %w", err)
	}

	if envelope.Ret != models.RetOK {
		m.state = StateLoginFailed
		m.logger.Error().Str("ret", envelope.Ret).Str("msg", envelope.Msg).Msg("phone code login rejected")
		return &gateway.RetStateError{Ret: envelope.Ret, Msg: envelope.Msg}
	}

	return m.adopt(ctx, envelope)
}

// adopt extracts the issued session pair, propagates it to the gateway,
// persists it, and confirms the login.
func (m *Manager) adopt(ctx context.Context, envelope *models.Envelope) error {
	var data models.LoginData
	if err := envelope.DecodeData(&data); err != nil {
		return fmt.Errorf("decode login data: %w", err)
	}

	identity := models.Identity{
		UID:      data.UserID(),
		SID:      data.SessionSID(),
		UserName: m.creds.UserName,
	}
	if !identity.Valid() {
		return fmt.Errorf("login data missing sid or uid")
	}

	m.setIdentity(identity)
	m.state = StateLoggedIn

	if err := m.sessions.Save(ctx, identity); err != nil {
		// The session itself is usable; only the next restart loses the
		// shortcut.
		m.logger.Warn().Err(err).Msg("persist session cache failed")
	}

	m.logger.Info().Int64("uid", identity.UID).Msg("logged in")
	return nil
}

// MarkConfirmed upgrades AssumedValid to LoggedIn once an authenticated
// call has succeeded against the restored session.
func (m *Manager) MarkConfirmed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateAssumedValid {
		m.state = StateLoggedIn
	}
}

func (m *Manager) setIdentity(identity models.Identity) {
	m.identity = identity
	m.gw.SetIdentity(identity)
}
