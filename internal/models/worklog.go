package models

// Worklog is one timed session of a task. A worklog with a nil Stopped
// is running; an ignored worklog is a discarded duplicate kept for audit.
type Worklog struct {
	ID       uint       `gorm:"primarykey" json:"id"`
	TaskID   uint       `gorm:"not null;index" json:"task_id"`
	Started  Timestamp  `gorm:"not null;index" json:"started"`
	Stopped  *Timestamp `json:"stopped"`
	Duration int64      `gorm:"not null;default:0" json:"duration"` // seconds, set on stop
	Ignored  bool       `gorm:"not null;default:false" json:"ignored"`
}

// TableName keeps the singular table name.
func (Worklog) TableName() string {
	return "worklog"
}

// Running reports whether the worklog still counts as an open session.
func (w Worklog) Running() bool {
	return w.Stopped == nil && !w.Ignored
}
