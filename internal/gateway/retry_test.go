package gateway

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failNTimes returns an operation failing with ErrSessionExpired exactly n
// times before succeeding.
func failNTimes(n int) func() (string, error) {
	calls := 0
	return func() (string, error) {
		calls++
		if calls <= n {
			return "", fmt.Errorf("op: %w", ErrSessionExpired)
		}
		return "ok", nil
	}
}

func TestWithRelogin_NoFailure(t *testing.T) {
	relogins := 0

	v, err := WithRelogin(failNTimes(0), func() error { relogins++; return nil }, 1)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Zero(t, relogins)
}

func TestWithRelogin_RecoversWithinLimit(t *testing.T) {
	relogins := 0

	v, err := WithRelogin(failNTimes(1), func() error { relogins++; return nil }, 1)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 1, relogins)
}

func TestWithRelogin_ExhaustsLimit(t *testing.T) {
	relogins := 0

	_, err := WithRelogin(failNTimes(2), func() error { relogins++; return nil }, 1)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 1, relogins)
}

func TestWithRelogin_SucceedsIffWithinLimit(t *testing.T) {
	const limit = 3
	for k := 0; k <= limit+1; k++ {
		_, err := WithRelogin(failNTimes(k), func() error { return nil }, limit)
		if k <= limit {
			assert.NoError(t, err, "k=%d", k)
		} else {
			assert.ErrorIs(t, err, ErrSessionExpired, "k=%d", k)
		}
	}
}

func TestWithRelogin_OtherErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	relogins := 0

	_, err := WithRelogin(func() (int, error) {
		return 0, boom
	}, func() error { relogins++; return nil }, 5)

	assert.ErrorIs(t, err, boom)
	assert.Zero(t, relogins)
}

func TestWithRelogin_ReloginFailurePropagates(t *testing.T) {
	loginErr := errors.New("bad credentials")

	_, err := WithRelogin(failNTimes(1), func() error { return loginErr }, 3)
	assert.ErrorIs(t, err, loginErr)
}

func TestWithReloginNoResult(t *testing.T) {
	calls := 0
	err := WithReloginNoResult(func() error {
		calls++
		if calls == 1 {
			return fmt.Errorf("op: %w", ErrSessionExpired)
		}
		return nil
	}, func() error { return nil }, 1)

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
