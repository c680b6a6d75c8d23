package models

// Task is a named unit of work that worklogs are recorded against.
// Names are hierarchical, with "::" separating levels.
type Task struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Created   Timestamp `gorm:"not null" json:"created"`
	Taskname  string    `gorm:"uniqueIndex;not null" json:"taskname"`
	Notes     *string   `json:"notes"`
	Allocated int64     `gorm:"not null;default:0" json:"allocated"` // seconds
	Duedate   *string   `json:"duedate"`                             // YYYY-MM-DD
	Done      bool      `gorm:"not null;default:false" json:"done"`

	// Relationships
	Worklogs []Worklog `gorm:"foreignKey:TaskID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// TableName keeps the singular table name.
func (Task) TableName() string {
	return "task"
}
