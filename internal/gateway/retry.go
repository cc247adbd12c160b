package gateway

import (
	"errors"
	"fmt"
)

// WithRelogin runs op, re-logging in and retrying when it fails with
// ErrSessionExpired. At most limit retries are attempted; exhaustion fails
// with ErrSessionExpired carrying the retry reason. Any other error, and any
// re-login failure, propagates immediately.
func WithRelogin[T any](op func() (T, error), relogin func() error, limit int) (T, error) {
	var zero T

	count := 0
	for {
		v, err := op()
		if err == nil || !errors.Is(err, ErrSessionExpired) {
			return v, err
		}

		count++
		if count > limit {
			return zero, fmt.Errorf("%w: reach retry limit %d", ErrSessionExpired, limit)
		}

		if err = relogin(); err != nil {
			return zero, fmt.Errorf("re-login after session expiry: %w", err)
		}
	}
}

// WithReloginNoResult adapts [WithRelogin] for operations that only return
// an error.
func WithReloginNoResult(op func() error, relogin func() error, limit int) error {
	_, err := WithRelogin(func() (struct{}, error) {
		return struct{}{}, op()
	}, relogin, limit)
	return err
}
