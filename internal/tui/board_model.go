package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/balkashynov/ttrackr/internal/db"
)

type boardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Stop key.Binding
	Quit key.Binding
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Stop, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var boardKeys = boardKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Stop: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stop selected"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q/esc", "quit"),
	),
}

// BoardModel lists the running tasks and refreshes them every second
type BoardModel struct {
	width  int
	height int

	store  SessionStore
	filter string

	tasks    []db.RunningTask
	selected int
	message  string
	err      error

	keys boardKeyMap
	help help.Model
}

type boardTickMsg struct{}

type runningTasksMsg struct {
	tasks []db.RunningTask
	err   error
	// scheduled marks a refresh from the tick loop; only those schedule
	// the next tick, so extra refreshes never start a second loop.
	scheduled bool
}

type stoppedMsg struct {
	name     string
	duration int64
	err      error
}

// NewBoardModel creates a board over the running tasks matching filter
func NewBoardModel(store SessionStore, filter string) BoardModel {
	return BoardModel{
		store:  store,
		filter: filter,
		keys:   boardKeys,
		help:   help.New(),
	}
}

// Init loads the first snapshot
func (m BoardModel) Init() tea.Cmd {
	return m.refresh(true)
}

func (m BoardModel) refresh(scheduled bool) tea.Cmd {
	store, filter := m.store, m.filter
	return func() tea.Msg {
		tasks, err := store.RunningTasks(filter)
		return runningTasksMsg{tasks: tasks, err: err, scheduled: scheduled}
	}
}

func (m BoardModel) stop(name string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		worklog, err := store.StopWorklog(name)
		if err != nil {
			return stoppedMsg{name: name, err: err}
		}
		return stoppedMsg{name: name, duration: worklog.Duration}
	}
}

func boardTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return boardTickMsg{}
	})
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardTickMsg:
		return m, m.refresh(true)

	case runningTasksMsg:
		m.err = msg.err
		if msg.err == nil {
			m.tasks = msg.tasks
		}
		if m.selected >= len(m.tasks) {
			m.selected = max(len(m.tasks)-1, 0)
		}
		if !msg.scheduled {
			return m, nil
		}
		return m, boardTick()

	case stoppedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.message = fmt.Sprintf("Stopped %s after %s", msg.name, FormatDuration(msg.duration, false, "0 seconds"))
		}
		return m, m.refresh(false)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
		case key.Matches(msg, m.keys.Stop):
			if len(m.tasks) > 0 {
				return m, m.stop(m.tasks[m.selected].Name)
			}
		}
	}

	return m, nil
}

// Selected returns the highlighted task, if any.
func (m BoardModel) Selected() (db.RunningTask, bool) {
	if len(m.tasks) == 0 {
		return db.RunningTask{}, false
	}
	return m.tasks[m.selected], true
}

// View renders the board
func (m BoardModel) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Render("Running tasks")
	if m.filter != "" {
		title += lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Render("  under " + m.filter)
	}

	var body string
	if len(m.tasks) == 0 {
		body = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Render("No running tasks")
	} else {
		body = RunningTable(m.tasks, m.selected)
	}

	status := ""
	switch {
	case m.err != nil:
		status = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("Error: " + m.err.Error())
	case m.message != "":
		status = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render(m.message)
	}

	helpBar := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Render(m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, "", title, "", body, status, helpBar)
}

// RunningTable renders running tasks as a table. selected highlights a
// row; pass -1 for none.
func RunningTable(tasks []db.RunningTask, selected int) string {
	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, []string{
			task.Name,
			FormatClock(task.CurrentSpent),
			FormatDuration(task.TotalSpent, true, "0 seconds"),
			task.LastStarted.Local().Format("2006-01-02 15:04:05"),
		})
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright)).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	selectedStyle := cellStyle.Foreground(lipgloss.Color(ColorPrimaryText)).Background(lipgloss.Color(ColorAccentMain))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder))).
		Headers("TASK", "SESSION", "TOTAL", "STARTED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == selected:
				return selectedStyle
			default:
				return cellStyle
			}
		})

	return t.String()
}

// RunBoard opens the live board of running tasks.
func RunBoard(store SessionStore, filter string) error {
	p := tea.NewProgram(NewBoardModel(store, filter), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
