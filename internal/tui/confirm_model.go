package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	confirmYes = key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes"))
	confirmNo  = key.NewBinding(key.WithKeys("n", "N", "enter", "esc", "q", "ctrl+c"), key.WithHelp("n", "no"))
)

// ConfirmModel asks a yes/no question. Anything but y declines.
type ConfirmModel struct {
	prompt    string
	confirmed bool
	answered  bool
}

// NewConfirmModel creates a prompt
func NewConfirmModel(prompt string) ConfirmModel {
	return ConfirmModel{prompt: prompt}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, confirmYes):
			m.confirmed = true
			m.answered = true
			return m, tea.Quit
		case key.Matches(msg, confirmNo):
			m.answered = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.answered {
		return ""
	}
	prompt := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Bold(true).Render(m.prompt)
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Render(" [y/N] ")
	return prompt + hint
}

// Confirmed reports whether the user answered yes.
func (m ConfirmModel) Confirmed() bool {
	return m.confirmed
}

// Confirm shows prompt and waits for an answer.
func Confirm(prompt string) (bool, error) {
	finalModel, err := tea.NewProgram(NewConfirmModel(prompt)).Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ConfirmModel)
	return ok && m.Confirmed(), nil
}
