package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TerminalPrompter implements the session prompter over an interactive
// terminal. Each question runs its own small bubbletea program.
type TerminalPrompter struct {
}

// NewTerminalPrompter returns a terminal-backed prompter.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{}
}

// ReadPhone asks for the phone number receiving the SMS code.
func (p *TerminalPrompter) ReadPhone() (string, error) {
	return ask("Phone number for SMS verification", 11)
}

// ReadCode asks for the received SMS code.
func (p *TerminalPrompter) ReadCode() (string, error) {
	return ask("SMS code", 6)
}

type promptModel struct {
	input    textinput.Model
	question string
	aborted  bool
	done     bool
}

func newPromptModel(question string, limit int) promptModel {
	in := textinput.New()
	in.CharLimit = limit
	in.Focus()

	return promptModel{input: in, question: question}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n%s\n",
		titleStyle.Render(m.question),
		m.input.View(),
		helpStyle.Render("enter to confirm, esc to cancel"))
}

func ask(question string, limit int) (string, error) {
	finalModel, err := tea.NewProgram(newPromptModel(question, limit)).Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(promptModel)
	if !ok {
		return "", fmt.Errorf("unexpected final prompt model type %T", finalModel)
	}
	if m.aborted {
		return "", fmt.Errorf("prompt aborted")
	}
	return m.input.Value(), nil
}
