package session

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/lzuhelper/joyrun/internal/config"
	"github.com/lzuhelper/joyrun/internal/logger"
)

//go:generate mockgen -source=sms.go -destination=../mock/sms_mock.go -package=mock

// SMSDispatcher triggers the SMS-code delivery side channel. The channel is
// inherently unreliable: a nil error means the dispatch endpoint accepted
// the request, not that a message was delivered.
type SMSDispatcher interface {
	Dispatch(ctx context.Context, phone string) error
}

// wapSMSDispatcher posts the dispatch request to the H5 (WAP) host, which
// sits apart from the API host and expects browser-like headers. Its
// response is loosely structured text and is logged, not contract-checked.
type wapSMSDispatcher struct {
	client *resty.Client
	logger *logger.Logger
}

// NewWapSMSDispatcher builds the SMS side-channel client for the WAP host
// in cfg.
func NewWapSMSDispatcher(cfg config.API, log *logger.Logger) SMSDispatcher {
	client := resty.New().
		SetBaseURL(cfg.WapURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeaders(map[string]string{
			"Accept":           "application/json, text/javascript, */*; q=0.01",
			"Accept-Language":  "zh-CN,zh;q=0.9,en;q=0.8",
			"Origin":           cfg.WapURL,
			"Referer":          cfg.WapURL + "/outLogin/phoneLogin",
			"X-Requested-With": "XMLHttpRequest",
			"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
				"AppleWebKit/537.36 (KHTML, like Gecko) " +
				"Chrome/141.0.0.0 Safari/537.36",
		})

	return &wapSMSDispatcher{client: client, logger: log}
}

// Dispatch implements [SMSDispatcher].
func (d *wapSMSDispatcher) Dispatch(ctx context.Context, phone string) error {
	resp, err := d.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"phone":    phone,
			"areacode": "+86",
			"lang":     "zh",
		}).
		Post("/outLogin/sendSms")
	if err != nil {
		return fmt.Errorf("send sms request: %w", err)
	}

	body := resp.String()
	if len(body) > 200 {
		body = body[:200]
	}

	if resp.IsError() {
		d.logger.Error().Int("status", resp.StatusCode()).Str("body", body).Msg("sendSms rejected")
		return fmt.Errorf("send sms: http %d", resp.StatusCode())
	}

	d.logger.Info().Int("status", resp.StatusCode()).Str("body", body).Msg("sendSms accepted")
	return nil
}
