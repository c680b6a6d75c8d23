package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/balkashynov/ttrackr/internal/models"
)

// Error kinds. Every error returned by a Store method matches exactly one
// of these with errors.Is.
var (
	ErrNotFound       = errors.New("task not found")
	ErrDuplicateName  = errors.New("task already exists")
	ErrAlreadyRunning = errors.New("task is already running")
	ErrNotRunning     = errors.New("task is not running")
	ErrStorage        = errors.New("storage error")
	ErrClockOrFormat  = errors.New("clock or timestamp format error")
)

// TaskError carries the kind of failure and the task it happened to.
type TaskError struct {
	Kind     error
	TaskName string
	Err      error
}

func (e *TaskError) Error() string {
	var msg string
	switch e.Kind {
	case ErrNotFound:
		msg = fmt.Sprintf("task %q not found", e.TaskName)
	case ErrDuplicateName:
		msg = fmt.Sprintf("task %q already exists", e.TaskName)
	case ErrAlreadyRunning:
		msg = fmt.Sprintf("%s is already running", e.TaskName)
	case ErrNotRunning:
		msg = fmt.Sprintf("%s is not running", e.TaskName)
	default:
		msg = e.Kind.Error()
		if e.TaskName != "" {
			msg = fmt.Sprintf("%s (task %q)", msg, e.TaskName)
		}
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the error kind.
func (e *TaskError) Is(target error) bool {
	return target == e.Kind
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

func newTaskError(kind error, name string) error {
	return &TaskError{Kind: kind, TaskName: name}
}

// wrapErr classifies an error coming back from gorm. A TaskError passes
// through, picking up the task name if it has none yet.
func wrapErr(name string, err error) error {
	if err == nil {
		return nil
	}
	var taskErr *TaskError
	if errors.As(err, &taskErr) {
		if taskErr.TaskName == "" {
			taskErr.TaskName = name
		}
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &TaskError{Kind: ErrNotFound, TaskName: name}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &TaskError{Kind: ErrDuplicateName, TaskName: name, Err: err}
	case errors.Is(err, models.ErrInvalidTimestamp):
		return &TaskError{Kind: ErrClockOrFormat, TaskName: name, Err: err}
	default:
		return &TaskError{Kind: ErrStorage, TaskName: name, Err: err}
	}
}
