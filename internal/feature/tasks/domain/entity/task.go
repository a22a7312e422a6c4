// Package entity defines the domain entities for the tasks feature.
package entity

import (
	"time"

	authentity "tasktrack/internal/feature/auth/domain/entity"
)

// DateLayout is the calendar-date form accepted at the protocol boundary.
const DateLayout = "2006-01-02"

// Task represents a task record owned by exactly one user.
// The store permits null values for title, date, description and status; the
// create path always supplies them.
type Task struct {
	// ID is the unique identifier for the task.
	ID uint `gorm:"primaryKey"`

	// UserID references the owning user. Every task has exactly one owner.
	UserID uint `gorm:"index;not null"`

	// Owner backs the foreign key; the user row cannot be removed while
	// tasks still reference it (restrict, not cascade).
	Owner authentity.User `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`

	Title       string     `gorm:"size:1000"`
	Date        *time.Time `gorm:"type:date"`
	Description string     `gorm:"size:10000"`
	Status      string     `gorm:"size:1000"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateString returns the task's date in YYYY-MM-DD form, or "" when unset.
func (t *Task) DateString() string {
	if t.Date == nil {
		return ""
	}
	return t.Date.Format(DateLayout)
}
