package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/balkashynov/ttrackr/internal/models"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// openTestStore opens a store in a temp dir with a fake clock.
func openTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()

	clock := &fakeClock{t: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
	store, err := Open(Options{
		Path: filepath.Join(t.TempDir(), "ttrackr.db"),
		Now:  clock.Now,
	})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store, clock
}

func mustCreateTask(t *testing.T, s *Store, name string) *models.Task {
	t.Helper()

	task, err := s.CreateTask(CreateTaskRequest{Name: name})
	if err != nil {
		t.Fatalf("failed to create task %q: %v", name, err)
	}
	return task
}

// insertOpenWorklog writes a running worklog directly, bypassing the
// AlreadyRunning check, the way a racing process would.
func insertOpenWorklog(t *testing.T, s *Store, taskID uint, started time.Time) models.Worklog {
	t.Helper()

	w := models.Worklog{TaskID: taskID, Started: models.NewTimestamp(started)}
	if err := s.db.Create(&w).Error; err != nil {
		t.Fatalf("failed to insert worklog: %v", err)
	}
	return w
}

func worklogsOf(t *testing.T, s *Store, taskID uint) []models.Worklog {
	t.Helper()

	var worklogs []models.Worklog
	if err := s.db.Where("task_id = ?", taskID).Order("id ASC").Find(&worklogs).Error; err != nil {
		t.Fatalf("failed to load worklogs: %v", err)
	}
	return worklogs
}

func openCount(t *testing.T, s *Store, taskID uint) int {
	t.Helper()

	n := 0
	for _, w := range worklogsOf(t, s, taskID) {
		if w.Running() {
			n++
		}
	}
	return n
}
