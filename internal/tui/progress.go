// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui renders the interactive parts of the joyrun client: the upload
// progress view, the SMS-code prompts, and the per-account result table.
package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type progressMsg struct {
	stage   string
	percent int
}

type uploadDoneMsg struct {
	err error
}

type uploadModel struct {
	spinner spinner.Model
	bar     progress.Model
	label   string
	stage   string
	percent int
	work    tea.Cmd
	err     error
	done    bool
}

func newUploadModel(label string, work tea.Cmd) uploadModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return uploadModel{
		spinner: s,
		bar:     progress.New(progress.WithDefaultGradient()),
		label:   label,
		work:    work,
	}
}

func (m uploadModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.work)
}

func (m uploadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progressMsg:
		m.stage = msg.stage
		m.percent = msg.percent
		return m, nil
	case uploadDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m uploadModel) View() string {
	if m.done {
		return ""
	}

	stage := m.stage
	if stage == "" {
		stage = "starting"
	}

	return fmt.Sprintf("%s %s\n%s %s\n",
		m.spinner.View(), titleStyle.Render(m.label),
		m.bar.ViewAs(float64(m.percent)/100), helpStyle.Render(stage))
}

// progressSender forwards pipeline progress events into a running bubbletea
// program. Implements upload.Observer.
type progressSender struct {
	program *tea.Program
}

// Progress implements the observer contract of the upload pipeline.
func (s *progressSender) Progress(stage string, percent int) {
	s.program.Send(progressMsg{stage: stage, percent: percent})
}

// RunWithProgress drives work under a spinner-and-bar progress view. The
// observer handed to work is safe to call from the work goroutine.
func RunWithProgress(ctx context.Context, output io.Writer, label string, work func(ctx context.Context, progress func(stage string, percent int)) error) error {
	var p *tea.Program

	workCmd := func() tea.Msg {
		sender := &progressSender{program: p}
		return uploadDoneMsg{err: work(ctx, sender.Progress)}
	}

	p = tea.NewProgram(
		newUploadModel(label, workCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(uploadModel)
	if !ok {
		return fmt.Errorf("unexpected final progress model type %T", finalModel)
	}

	return result.err
}
