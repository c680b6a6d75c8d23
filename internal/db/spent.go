package db

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/balkashynov/ttrackr/internal/models"
)

// RunningTask summarizes a task with an open session.
type RunningTask struct {
	Name         string
	TotalSpent   int64 // seconds, closed sessions plus the current one
	CurrentSpent int64 // seconds, current session only
	LastStarted  time.Time
}

// TotalSpent returns the seconds recorded against a task, counting the
// running session up to now. A task that never ran has spent 0.
func (s *Store) TotalSpent(name string) (int64, error) {
	var total int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		task, err := findTask(tx, name)
		if err != nil {
			return err
		}
		total, _, err = s.spent(tx, task.ID)
		return err
	})
	if err != nil {
		return 0, wrapErr(name, err)
	}

	return total, nil
}

// RunningTasks returns every running task that matches filter, ordered
// by task id. An empty filter matches all tasks.
func (s *Store) RunningTasks(filter string) ([]RunningTask, error) {
	var running []RunningTask

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var tasks []models.Task
		err := tx.Scopes(matchingName(filter)).
			Where("EXISTS (SELECT 1 FROM worklog WHERE worklog.task_id = task.id AND worklog.stopped IS NULL AND worklog.ignored = ?)", false).
			Order("id ASC").
			Find(&tasks).Error
		if err != nil {
			return err
		}

		for _, task := range tasks {
			total, current, err := s.spent(tx, task.ID)
			if err != nil {
				return wrapErr(task.Taskname, err)
			}
			if current == nil {
				continue
			}
			running = append(running, RunningTask{
				Name:         task.Taskname,
				TotalSpent:   total,
				CurrentSpent: current.Duration,
				LastStarted:  current.Started.Time,
			})
		}
		return nil
	})
	if err != nil {
		// filter is not a task name, so storage errors carry none
		return nil, wrapErr("", err)
	}

	return running, nil
}

// spent sums the closed sessions of a task and adds the open one. The
// returned worklog is the open session with Duration set to its elapsed
// time so far, or nil when the task is not running. Nothing is written
// except reconciliation of duplicate open sessions.
func (s *Store) spent(tx *gorm.DB, taskID uint) (int64, *models.Worklog, error) {
	current, err := ignoreInvalidWorklogs(tx, taskID)
	if err != nil {
		return 0, nil, err
	}

	var closed int64
	err = tx.Model(&models.Worklog{}).
		Where("task_id = ? AND stopped IS NOT NULL AND ignored = ?", taskID, false).
		Select("COALESCE(SUM(duration), 0)").
		Scan(&closed).Error
	if err != nil {
		return 0, nil, err
	}

	if current == nil {
		return closed, nil, nil
	}

	elapsed, err := elapsedSeconds(current.Started, s.timestamp())
	if err != nil {
		return 0, nil, err
	}
	total, err := addSeconds(closed, elapsed)
	if err != nil {
		return 0, nil, err
	}

	current.Duration = elapsed
	return total, current, nil
}

// elapsedSeconds returns whole seconds between two stored timestamps.
// The difference is taken in Unix seconds, not time.Duration.
func elapsedSeconds(started, stopped models.Timestamp) (int64, error) {
	if started.IsZero() {
		return 0, &TaskError{Kind: ErrClockOrFormat, Err: fmt.Errorf("worklog has no start time")}
	}
	if stopped.Before(started.Time) {
		return 0, &TaskError{
			Kind: ErrClockOrFormat,
			Err:  fmt.Errorf("clock is behind session start: started %s, now %s", started, stopped),
		}
	}
	return stopped.Unix() - started.Unix(), nil
}

func addSeconds(a, b int64) (int64, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, &TaskError{Kind: ErrClockOrFormat, Err: fmt.Errorf("total spent overflows int64 seconds")}
	}
	return a + b, nil
}
