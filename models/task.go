package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is a catalog entry describing a promotional task and what it
// currently pays. Editing Reward never changes past payouts.
type Task struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Reward    float64   `gorm:"type:decimal(32,8);not null" json:"reward"`
	Link      string    `json:"link"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskSubmission is a user's proof of task completion. Reward stays
// zero until approval, when the value live on the Task row is frozen
// onto the submission and paid.
type TaskSubmission struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uint64    `gorm:"not null;index" json:"user_id"`
	TaskID         uuid.UUID `gorm:"type:uuid;not null;index" json:"task_id"`
	SubmissionText string    `json:"submission_text"`
	ScreenshotURL  string    `json:"screenshot_url"`
	Status         string    `gorm:"not null;default:pending;index" json:"status"`
	Reward         float64   `gorm:"type:decimal(32,8);not null;default:0" json:"reward"`
	CreatedAt      time.Time `json:"created_at"`
}
