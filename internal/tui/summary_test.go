package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSummary_Empty(t *testing.T) {
	var b strings.Builder
	RenderSummary(&b, nil)
	assert.Empty(t, b.String())
}

func TestRenderSummary_Rows(t *testing.T) {
	var b strings.Builder
	RenderSummary(&b, []AccountResult{
		{Name: "primary", UserName: "1@lzu.edu.cn", RunID: "run-a"},
		{Name: "second", UserName: "2@lzu.edu.cn", Err: errors.New("login rejected")},
	})

	out := b.String()
	assert.Contains(t, out, "primary")
	assert.Contains(t, out, "run-a")
	assert.Contains(t, out, "second")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "login rejected")
}
