package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/lzuhelper/joyrun/internal/config"
	"github.com/lzuhelper/joyrun/internal/logger"
	"github.com/lzuhelper/joyrun/internal/sign"
	"github.com/lzuhelper/joyrun/models"
)

const bodySnippetLimit = 512

// fallbackUID pads the device-info header before the first login, the way
// the mobile client reports a placeholder profile.
const fallbackUID = 87808183

// Gateway is the resty-backed [Doer] implementation. It holds the derived
// transport state (cookie, device headers) for exactly one account; accounts
// never share a Gateway.
type Gateway struct {
	client *resty.Client
	logger *logger.Logger

	mu       sync.RWMutex
	identity models.Identity
}

// New constructs a Gateway for the API host in cfg. The base header set
// mimics the mobile client; device headers are refreshed whenever the
// identity changes.
func New(cfg config.API, log *logger.Logger) (*Gateway, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeaders(baseHeaders())

	g := &Gateway{client: client, logger: log}
	g.applyIdentity(models.Identity{})
	return g, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func baseHeaders() map[string]string {
	return map[string]string{
		"Accept-Language": "en_US",
		"User-Agent":      "okhttp/3.10.0",
		"Connection":      "Keep-Alive",
	}
}

func deviceHeaders(uid int64) map[string]string {
	if uid == 0 {
		uid = fallbackUID
	}
	return map[string]string{
		"MODELTYPE":    "Xiaomi MI 5",
		"SYSVERSION":   "8.0.0",
		"APPVERSION":   "4.2.0",
		"MODELIMEI":    "861945034544449",
		"APP_DEV_INFO": fmt.Sprintf("Android#4.2.0#Xiaomi MI 5#8.0.0#861945034544449#%d#xiaomi", uid),
	}
}

// SetIdentity implements [Doer].
func (g *Gateway) SetIdentity(identity models.Identity) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.identity = identity
	g.applyIdentity(identity)
}

// applyIdentity refreshes the session cookie and device headers. The API
// expects the login cookie both as the ypcookie header (raw) and as a cookie
// value (URL-escaped, lowercased).
func (g *Gateway) applyIdentity(identity models.Identity) {
	loginCookie := "sid=" + identity.SID + "&uid=" + strconv.FormatInt(identity.UID, 10)

	g.client.SetHeader("ypcookie", loginCookie)
	g.client.SetCookies([]*http.Cookie{{
		Name:  "ypcookie",
		Value: strings.ToLower(url.QueryEscape(loginCookie)),
	}})
	g.client.SetHeaders(deviceHeaders(identity.UID))
}

// Execute implements [Doer].
func (g *Gateway) Execute(ctx context.Context, method, path string, payload map[string]string) (*models.Envelope, error) {
	envelope, err := g.request(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	switch envelope.Ret {
	case models.RetOK:
		return envelope, nil
	case models.RetSessionExpired:
		return nil, fmt.Errorf("%w: %s %s", ErrSessionExpired, method, path)
	default:
		g.logger.Error().
			Str("path", path).
			Str("ret", envelope.Ret).
			Str("msg", envelope.Msg).
			Msg("response ret state error")
		return nil, &RetStateError{Ret: envelope.Ret, Msg: envelope.Msg}
	}
}

// Probe implements [Doer].
func (g *Gateway) Probe(ctx context.Context, method, path string, payload map[string]string) (*models.Envelope, error) {
	return g.request(ctx, method, path, payload)
}

func (g *Gateway) request(ctx context.Context, method, path string, payload map[string]string) (*models.Envelope, error) {
	g.mu.RLock()
	identity := g.identity
	g.mu.RUnlock()

	req := g.client.R().
		SetContext(ctx).
		SetHeader("AUTHTOKEN", sign.Token(identity.UID, identity.SID, payload))

	switch method {
	case http.MethodGet:
		req.SetQueryParams(payload)
	default:
		req.SetFormData(payload)
	}

	// The login route starts with "//"; resty must not collapse it, so the
	// path is appended to the base URL by hand.
	resp, err := req.Execute(method, g.client.BaseURL+path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.IsError() {
		g.logger.Error().
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Str("body", truncate(string(resp.Body()))).
			Msg("request transport error")
		return nil, &TransportError{
			Method:     method,
			URL:        resp.Request.URL,
			StatusCode: resp.StatusCode(),
			Body:       truncate(string(resp.Body())),
		}
	}

	var envelope models.Envelope
	if err = json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("decode response envelope for %s: %w", path, err)
	}

	g.logger.Debug().
		Str("url", resp.Request.URL).
		Str("ret", envelope.Ret).
		Msg("request completed")

	return &envelope, nil
}

func truncate(s string) string {
	if len(s) > bodySnippetLimit {
		return s[:bodySnippetLimit] + "..."
	}
	return s
}
