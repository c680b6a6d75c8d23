package db

import (
	"gorm.io/gorm"

	"github.com/balkashynov/ttrackr/internal/models"
)

// StartWorklog opens a new session for the named task. The returned
// worklog's Started field is the recorded start time.
func (s *Store) StartWorklog(name string) (*models.Worklog, error) {
	var (
		worklog models.Worklog
		running *models.Worklog
		task    *models.Task
	)

	// A refused start returns nil from the transaction so that the
	// reconciliation of duplicate open worklogs still commits.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		task, err = findTask(tx, name)
		if err != nil {
			return err
		}

		running, err = ignoreInvalidWorklogs(tx, task.ID)
		if err != nil {
			return err
		}
		if running != nil {
			return nil
		}

		worklog = models.Worklog{
			TaskID:  task.ID,
			Started: s.timestamp(),
		}
		return tx.Create(&worklog).Error
	})
	if err != nil {
		return nil, wrapErr(name, err)
	}
	if running != nil {
		return nil, newTaskError(ErrAlreadyRunning, task.Taskname)
	}

	return &worklog, nil
}

// StopWorklog closes the running session of the named task and records
// its duration.
func (s *Store) StopWorklog(name string) (*models.Worklog, error) {
	var (
		worklog *models.Worklog
		refusal error
	)

	// Refusals are returned after the transaction commits, so that the
	// reconciliation done on the way still lands.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		task, err := findTask(tx, name)
		if err != nil {
			return err
		}

		worklog, err = ignoreInvalidWorklogs(tx, task.ID)
		if err != nil {
			return err
		}
		if worklog == nil {
			refusal = newTaskError(ErrNotRunning, task.Taskname)
			return nil
		}

		stopped := s.timestamp()
		elapsed, err := elapsedSeconds(worklog.Started, stopped)
		if err != nil {
			refusal = err
			return nil
		}

		// stopped IS NULL guards against a concurrent stop of the same row
		res := tx.Model(&models.Worklog{}).
			Where("id = ? AND stopped IS NULL", worklog.ID).
			Updates(map[string]any{"stopped": stopped, "duration": elapsed})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			refusal = newTaskError(ErrNotRunning, task.Taskname)
			return nil
		}

		worklog.Stopped = &stopped
		worklog.Duration = elapsed
		return nil
	})
	if err == nil {
		err = refusal
	}
	if err != nil {
		return nil, wrapErr(name, err)
	}

	return worklog, nil
}

// StopWorklogs stops each named task in order and stops at the first
// failure. Tasks stopped before the failure stay stopped and are returned
// together with the error.
func (s *Store) StopWorklogs(names []string) ([]models.Worklog, error) {
	stopped := make([]models.Worklog, 0, len(names))
	for _, name := range names {
		worklog, err := s.StopWorklog(name)
		if err != nil {
			return stopped, err
		}
		stopped = append(stopped, *worklog)
	}
	return stopped, nil
}

// ignoreInvalidWorklogs keeps the most recently started open worklog of a
// task and marks every other open worklog as ignored. Two open worklogs
// only appear when separate processes race to start the same task.
// It returns the surviving open worklog, or nil if the task is not running.
func ignoreInvalidWorklogs(tx *gorm.DB, taskID uint) (*models.Worklog, error) {
	var worklogs []models.Worklog
	err := tx.Scopes(openWorklogs(taskID)).
		Order("started DESC").
		Order("id DESC").
		Find(&worklogs).Error
	if err != nil {
		return nil, err
	}
	if len(worklogs) == 0 {
		return nil, nil
	}

	if len(worklogs) > 1 {
		stale := make([]uint, 0, len(worklogs)-1)
		for _, w := range worklogs[1:] {
			stale = append(stale, w.ID)
		}
		err := tx.Model(&models.Worklog{}).
			Where("id IN ?", stale).
			Update("ignored", true).Error
		if err != nil {
			return nil, err
		}
	}

	return &worklogs[0], nil
}

// openWorklogs selects the non-ignored, unstopped worklogs of a task.
func openWorklogs(taskID uint) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("task_id = ? AND stopped IS NULL AND ignored = ?", taskID, false)
	}
}
