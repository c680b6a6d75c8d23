package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/ttrackr/internal/db"
	"github.com/balkashynov/ttrackr/internal/hierarchy"
	"github.com/balkashynov/ttrackr/internal/models"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// fakeSessionStore records stops and serves a fixed set of running tasks.
type fakeSessionStore struct {
	running []db.RunningTask
	stopped []string
	err     error
}

func (f *fakeSessionStore) RunningTasks(filter string) ([]db.RunningTask, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []db.RunningTask
	for _, task := range f.running {
		if hierarchy.Matches(task.Name, filter) {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) StopWorklog(name string) (*models.Worklog, error) {
	for i, task := range f.running {
		if task.Name == name {
			f.running = append(f.running[:i], f.running[i+1:]...)
			f.stopped = append(f.stopped, name)
			stopped := models.NewTimestamp(task.LastStarted.Add(time.Duration(task.CurrentSpent) * time.Second))
			return &models.Worklog{Duration: task.CurrentSpent, Stopped: &stopped}, nil
		}
	}
	return nil, &db.TaskError{Kind: db.ErrNotRunning, TaskName: name}
}

func TestTimerModel_Tick(t *testing.T) {
	started := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	now := started.Add(42 * time.Second)
	task := db.RunningTask{Name: "t1", TotalSpent: 100, CurrentSpent: 40, LastStarted: started}

	m := NewTimerModel(task, 1800, func() time.Time { return now })
	updated, cmd := m.Update(timerTickMsg(now))
	m = updated.(TimerModel)

	if m.elapsed != 42 {
		t.Errorf("expected 42 elapsed seconds, got %d", m.elapsed)
	}
	if m.totalSeconds() != 102 {
		t.Errorf("expected total 102, got %d", m.totalSeconds())
	}
	if cmd == nil {
		t.Error("expected the timer to keep ticking")
	}
}

func TestTimerModel_Keys(t *testing.T) {
	task := db.RunningTask{Name: "t1", LastStarted: time.Now()}

	updated, cmd := NewTimerModel(task, 0, nil).Update(keyMsg("s"))
	if !updated.(TimerModel).Stopping() {
		t.Error("s should stop the session")
	}
	if cmd == nil {
		t.Error("s should quit the program")
	}

	updated, cmd = NewTimerModel(task, 0, nil).Update(keyMsg("esc"))
	if updated.(TimerModel).Stopping() {
		t.Error("esc should leave the session running")
	}
	if cmd == nil {
		t.Error("esc should quit the program")
	}
}

func TestTimerModel_View(t *testing.T) {
	started := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	task := db.RunningTask{Name: "work::report", TotalSpent: 2000, CurrentSpent: 65, LastStarted: started}

	m := NewTimerModel(task, 1800, func() time.Time { return started.Add(65 * time.Second) })
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := updated.(TimerModel).View()

	for _, want := range []string{"work::report", "TRACKING TIME", "of 30 minutes allocated"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestRenderBigClock(t *testing.T) {
	lines := strings.Split(renderBigClock("01:05"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
}

func TestBoardModel_StopSelected(t *testing.T) {
	started := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	store := &fakeSessionStore{running: []db.RunningTask{
		{Name: "a", CurrentSpent: 10, TotalSpent: 10, LastStarted: started},
		{Name: "b", CurrentSpent: 20, TotalSpent: 30, LastStarted: started},
	}}

	var m tea.Model = NewBoardModel(store, "")
	m, _ = m.Update(m.Init()())

	m, _ = m.Update(keyMsg("down"))
	if selected, ok := m.(BoardModel).Selected(); !ok || selected.Name != "b" {
		t.Fatalf("expected b to be selected, got %+v", selected)
	}

	m, cmd := m.Update(keyMsg("s"))
	if cmd == nil {
		t.Fatal("expected a stop command")
	}
	m, cmd = m.Update(cmd())
	if len(store.stopped) != 1 || store.stopped[0] != "b" {
		t.Fatalf("expected b to be stopped, got %v", store.stopped)
	}
	if !strings.Contains(m.(BoardModel).message, "Stopped b") {
		t.Errorf("unexpected message %q", m.(BoardModel).message)
	}

	// the refresh after a stop drops the stopped task and clamps the selection
	m, cmd = m.Update(cmd())
	if selected, ok := m.(BoardModel).Selected(); !ok || selected.Name != "a" {
		t.Errorf("expected selection to move to a, got %+v", selected)
	}
	if cmd != nil {
		t.Error("a refresh after a stop should not start another tick loop")
	}
}

func TestBoardModel_OneTickLoop(t *testing.T) {
	store := &fakeSessionStore{running: []db.RunningTask{{Name: "a"}}}

	var m tea.Model = NewBoardModel(store, "")
	m, cmd := m.Update(m.Init()())
	if cmd == nil {
		t.Fatal("the first snapshot should schedule a tick")
	}

	m, cmd = m.Update(boardTickMsg{})
	if cmd == nil {
		t.Fatal("a tick should refresh")
	}
	m, cmd = m.Update(cmd())
	if cmd == nil {
		t.Error("a scheduled refresh should schedule the next tick")
	}

	_, cmd = m.Update(runningTasksMsg{tasks: store.running})
	if cmd != nil {
		t.Error("an unscheduled refresh should not schedule a tick")
	}
}

func TestBoardModel_Filter(t *testing.T) {
	store := &fakeSessionStore{running: []db.RunningTask{{Name: "a::b"}, {Name: "ab"}}}

	var m tea.Model = NewBoardModel(store, "a")
	m, _ = m.Update(m.Init()())

	board := m.(BoardModel)
	if len(board.tasks) != 1 || board.tasks[0].Name != "a::b" {
		t.Errorf("expected only a::b, got %+v", board.tasks)
	}
}

func TestBoardModel_Error(t *testing.T) {
	store := &fakeSessionStore{err: errors.New("database is locked")}

	var m tea.Model = NewBoardModel(store, "")
	m, _ = m.Update(m.Init()())

	if view := m.View(); !strings.Contains(view, "database is locked") {
		t.Errorf("expected error in view, got:\n%s", view)
	}
}

func TestRunningTable(t *testing.T) {
	started := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	out := RunningTable([]db.RunningTask{{Name: "t1", CurrentSpent: 61, TotalSpent: 3700, LastStarted: started}}, -1)

	for _, want := range []string{"TASK", "t1", "01:01", "1 hour 1 minute"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected table to contain %q:\n%s", want, out)
		}
	}
}

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"y", true},
		{"Y", true},
		{"n", false},
		{"enter", false},
		{"esc", false},
	}

	for _, tt := range tests {
		updated, cmd := NewConfirmModel("Delete?").Update(keyMsg(tt.key))
		if got := updated.(ConfirmModel).Confirmed(); got != tt.want {
			t.Errorf("key %q: confirmed = %v, want %v", tt.key, got, tt.want)
		}
		if cmd == nil {
			t.Errorf("key %q should end the prompt", tt.key)
		}
	}

	updated, cmd := NewConfirmModel("Delete?").Update(keyMsg("x"))
	if updated.(ConfirmModel).Confirmed() || cmd != nil {
		t.Error("unrelated keys should be ignored")
	}
}
