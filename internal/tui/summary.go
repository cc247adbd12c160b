package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
)

// AccountResult is one row of the final per-account report.
type AccountResult struct {
	Name     string
	UserName string
	RunID    string
	Err      error
}

// RenderSummary writes the per-account result table. The run id of the last
// successful upload is also placed on the system clipboard; clipboard
// failures (headless environments) are ignored.
func RenderSummary(w io.Writer, results []AccountResult) {
	if len(results) == 0 {
		return
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("ACCOUNT"))
	b.WriteString(headerStyle.Render("USER"))
	b.WriteString(headerStyle.Render("RESULT"))
	b.WriteString("\n")

	lastRunID := ""
	for _, r := range results {
		b.WriteString(tableStyle.Render(r.Name))
		b.WriteString(tableStyle.Render(r.UserName))
		if r.Err != nil {
			b.WriteString(tableStyle.Render(failStyle.Render("FAILED: " + r.Err.Error())))
		} else {
			b.WriteString(tableStyle.Render(okStyle.Render("uploaded " + r.RunID)))
			lastRunID = r.RunID
		}
		b.WriteString("\n")
	}

	if lastRunID != "" {
		if err := clipboard.WriteAll(lastRunID); err == nil {
			b.WriteString(helpStyle.Render("run id copied to clipboard"))
			b.WriteString("\n")
		}
	}

	fmt.Fprint(w, b.String())
}
