package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/balkashynov/ttrackr/internal/hierarchy"
	"github.com/balkashynov/ttrackr/internal/models"
)

// Status restricts a task listing by completion.
type Status int

const (
	StatusAll Status = iota
	StatusDone
	StatusIncomplete
)

func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusIncomplete:
		return "incomplete"
	default:
		return "all"
	}
}

// ParseStatus converts "all", "done" or "incomplete" to a Status.
// The empty string means all.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return StatusAll, nil
	case "done":
		return StatusDone, nil
	case "incomplete":
		return StatusIncomplete, nil
	default:
		return StatusAll, fmt.Errorf("invalid status %q: use all, done or incomplete", s)
	}
}

// CreateTaskRequest holds the data needed to create a new task
type CreateTaskRequest struct {
	Name      string
	Notes     *string
	Allocated int64   // seconds
	Duedate   *string // YYYY-MM-DD
}

// UpdateTaskRequest lists the fields to change. Nil fields are left alone.
type UpdateTaskRequest struct {
	Notes     *string
	Allocated *int64
	Duedate   *string
	Done      *bool
}

// ListOptions filters ListTasks.
type ListOptions struct {
	Filter string
	Status Status
}

// CreateTask creates a new task
func (s *Store) CreateTask(req CreateTaskRequest) (*models.Task, error) {
	task := models.Task{
		Created:   s.timestamp(),
		Taskname:  req.Name,
		Notes:     req.Notes,
		Allocated: req.Allocated,
		Duedate:   req.Duedate,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := taskExists(tx, req.Name)
		if err != nil {
			return err
		}
		if exists {
			return newTaskError(ErrDuplicateName, req.Name)
		}
		return tx.Create(&task).Error
	})
	if err != nil {
		return nil, wrapErr(req.Name, err)
	}

	return &task, nil
}

// FindTaskByName retrieves a task by its full name
func (s *Store) FindTaskByName(name string) (*models.Task, error) {
	task, err := findTask(s.db, name)
	if err != nil {
		return nil, wrapErr(name, err)
	}
	return task, nil
}

// TaskExists reports whether a task with this exact name exists.
func (s *Store) TaskExists(name string) (bool, error) {
	exists, err := taskExists(s.db, name)
	if err != nil {
		return false, wrapErr(name, err)
	}
	return exists, nil
}

// ListTasks retrieves tasks in creation order.
func (s *Store) ListTasks(opts ListOptions) ([]models.Task, error) {
	var tasks []models.Task

	query := s.db.Scopes(matchingName(opts.Filter))
	switch opts.Status {
	case StatusDone:
		query = query.Where("done = ?", true)
	case StatusIncomplete:
		query = query.Where("done = ?", false)
	}

	if err := query.Order("created ASC").Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, wrapErr("", err)
	}

	return tasks, nil
}

// UpdateTask changes the fields set in req.
func (s *Store) UpdateTask(name string, req UpdateTaskRequest) (*models.Task, error) {
	updates := map[string]any{}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Allocated != nil {
		updates["allocated"] = *req.Allocated
	}
	if req.Duedate != nil {
		updates["duedate"] = *req.Duedate
	}
	if req.Done != nil {
		updates["done"] = *req.Done
	}

	var task *models.Task
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		task, err = findTask(tx, name)
		if err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(task).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(task, task.ID).Error
	})
	if err != nil {
		return nil, wrapErr(name, err)
	}

	return task, nil
}

// DeleteTask removes a task together with its worklogs.
func (s *Store) DeleteTask(name string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		task, err := findTask(tx, name)
		if err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.Worklog{}).Error; err != nil {
			return err
		}
		return tx.Delete(task).Error
	})
	return wrapErr(name, err)
}

func findTask(tx *gorm.DB, name string) (*models.Task, error) {
	var task models.Task
	err := tx.Where("taskname = ?", name).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newTaskError(ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func taskExists(tx *gorm.DB, name string) (bool, error) {
	var count int64
	if err := tx.Model(&models.Task{}).Where("taskname = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// matchingName restricts a task query to filter and its descendants.
// substr keeps the comparison exact: LIKE would fold case and treat
// '%' and '_' in task names as wildcards.
func matchingName(filter string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if filter == "" {
			return tx
		}
		prefix := hierarchy.ChildPrefix(filter)
		return tx.Where("taskname = ? OR substr(taskname, 1, length(?)) = ?", filter, prefix, prefix)
	}
}
