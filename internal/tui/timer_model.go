package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/ttrackr/internal/db"
	"github.com/balkashynov/ttrackr/internal/models"
)

// SessionStore is the part of the store the live views need.
type SessionStore interface {
	RunningTasks(filter string) ([]db.RunningTask, error)
	StopWorklog(name string) (*models.Worklog, error)
}

type timerKeyMap struct {
	Stop  key.Binding
	Leave key.Binding
}

func (k timerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Stop, k.Leave}
}

func (k timerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var timerKeys = timerKeyMap{
	Stop: key.NewBinding(
		key.WithKeys("s", "S"),
		key.WithHelp("s", "stop & save"),
	),
	Leave: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q/esc", "exit (keep running)"),
	),
}

// TimerModel shows a live clock for one running task
type TimerModel struct {
	width  int
	height int

	task      db.RunningTask
	allocated int64 // seconds, 0 when no target is set

	// Timer state
	now     func() time.Time
	elapsed int64 // seconds in the current session

	keys timerKeyMap
	help help.Model

	// UI state
	stopping bool // user pressed s
	exiting  bool // user left without stopping
}

// timerTickMsg is sent every second to update the timer
type timerTickMsg time.Time

// NewTimerModel creates a timer for a running task
func NewTimerModel(task db.RunningTask, allocated int64, now func() time.Time) TimerModel {
	if now == nil {
		now = time.Now
	}
	return TimerModel{
		task:      task,
		allocated: allocated,
		now:       now,
		elapsed:   task.CurrentSpent,
		keys:      timerKeys,
		help:      help.New(),
	}
}

// Init starts the ticker
func (m TimerModel) Init() tea.Cmd {
	return timerTick()
}

func timerTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		m.elapsed = m.sessionSeconds()
		if m.stopping || m.exiting {
			return m, nil
		}
		return m, timerTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Stop):
			m.stopping = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Leave):
			m.exiting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// sessionSeconds is the current session length in whole seconds.
func (m TimerModel) sessionSeconds() int64 {
	started := m.task.LastStarted.Truncate(time.Second).Unix()
	elapsed := m.now().Unix() - started
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// totalSeconds is everything spent on the task, this session included.
func (m TimerModel) totalSeconds() int64 {
	return m.task.TotalSpent - m.task.CurrentSpent + m.elapsed
}

// Stopping reports whether the user asked to stop the session.
func (m TimerModel) Stopping() bool {
	return m.stopping
}

// View renders the timer
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Align(lipgloss.Center).
		Width(m.width).
		Render(m.help.View(m.keys))

	panel := m.renderTimerPanel(m.width, m.height-2)

	return lipgloss.JoinVertical(lipgloss.Left, panel, helpBar)
}

func (m TimerModel) renderTimerPanel(width, height int) string {
	center := lipgloss.NewStyle().Align(lipgloss.Center).Width(width)
	var components []string

	header := center.
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Render("TRACKING TIME")
	components = append(components, header)

	name := center.
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Render(truncate(m.task.Name, width-4))
	components = append(components, name)

	var clock []string
	for _, line := range strings.Split(renderBigClock(FormatClock(m.elapsed)), "\n") {
		clock = append(clock, center.Render(line))
	}
	components = append(components, strings.Join(clock, "\n"))

	secondary := center.
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true)
	components = append(components, secondary.Render(
		fmt.Sprintf("Started at %s", m.task.LastStarted.Local().Format("15:04:05"))))
	components = append(components, m.renderAllocation(center))

	content := strings.Join(components, "\n\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// renderAllocation compares the total against the allocated target.
func (m TimerModel) renderAllocation(style lipgloss.Style) string {
	total := m.totalSeconds()
	if m.allocated <= 0 {
		return style.Foreground(lipgloss.Color(ColorSecondaryText)).
			Render(fmt.Sprintf("Total %s", FormatDuration(total, true, "0 seconds")))
	}

	color := ColorSuccess
	switch {
	case total >= m.allocated:
		color = ColorError
	case total*10 >= m.allocated*9:
		color = ColorWarning
	}
	return style.Foreground(lipgloss.Color(color)).Render(fmt.Sprintf("Total %s of %s allocated",
		FormatDuration(total, true, "0 seconds"),
		FormatDuration(m.allocated, true, "0 seconds")))
}

// bigDigits is 5-row block art for the clock
var bigDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// renderBigClock renders a clock string as block art
func renderBigClock(clock string) string {
	var lines [5]strings.Builder
	for _, char := range clock {
		art, ok := bigDigits[char]
		if !ok {
			continue
		}
		for i := range lines {
			lines[i].WriteString(art[i])
			lines[i].WriteString(" ")
		}
	}

	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)

	rendered := make([]string, len(lines))
	for i := range lines {
		rendered[i] = clockStyle.Render(lines[i].String())
	}
	return strings.Join(rendered, "\n")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// RunTimer opens the live timer for a running task and stops the session
// if the user asks to.
func RunTimer(store SessionStore, name string, allocated int64, out io.Writer) error {
	task, err := findRunning(store, name)
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewTimerModel(task, allocated, time.Now), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if timer, ok := finalModel.(TimerModel); ok && timer.Stopping() {
		worklog, err := store.StopWorklog(name)
		if err != nil {
			return fmt.Errorf("failed to stop session: %w", err)
		}
		fmt.Fprintf(out, "%s stopped at %s.\n", Bold(name), worklog.Stopped.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Session duration: %s\n", FormatDuration(worklog.Duration, false, "0 seconds"))
		return nil
	}

	fmt.Fprintf(out, "%s is still running. Use 'ttrackr stop %s' to stop it.\n", Bold(name), name)
	return nil
}

func findRunning(store SessionStore, name string) (db.RunningTask, error) {
	running, err := store.RunningTasks(name)
	if err != nil {
		return db.RunningTask{}, err
	}
	for _, task := range running {
		if task.Name == name {
			return task, nil
		}
	}
	return db.RunningTask{}, &db.TaskError{Kind: db.ErrNotRunning, TaskName: name}
}

// Bold renders s in bold, as task names are shown in messages.
func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
