package courses

import (
	"time"

	"courseware-app/internal/domain/accounts"
)

type Course struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"type:varchar(100);not null" json:"title"`
	Description string  `gorm:"type:varchar(250);not null" json:"description"`
	Cover       *string `json:"cover,omitempty"`
	Slug        string  `gorm:"not null;uniqueIndex:idx_courses_slug" json:"slug"`

	OwnerID *uint             `gorm:"index" json:"-"`
	Owner   *accounts.Account `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;" json:"-"`

	Processes []Process `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"processes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Process struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	CourseID    uint    `gorm:"not null;index" json:"course_id"`
	Title       string  `gorm:"type:varchar(100);not null" json:"title"`
	Description string  `gorm:"type:varchar(250);not null" json:"description"`
	Cover       *string `json:"cover,omitempty"`
	Slug        string  `gorm:"not null;uniqueIndex:idx_processes_slug" json:"slug"`

	Actions []Action `gorm:"foreignKey:ProcessID;constraint:OnDelete:CASCADE;" json:"actions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Action struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ProcessID uint    `gorm:"not null;index" json:"process_id"`
	Title     string  `gorm:"type:varchar(100);not null" json:"title"`
	MainText  string  `gorm:"type:varchar(5000);not null" json:"main_text"`
	Cover     *string `json:"cover,omitempty"`
	Slug      string  `gorm:"not null;uniqueIndex:idx_actions_slug" json:"slug"`

	Steps  []Step        `gorm:"foreignKey:ActionID;constraint:OnDelete:CASCADE;" json:"steps,omitempty"`
	Photos []ActionPhoto `gorm:"foreignKey:ActionID;constraint:OnDelete:CASCADE;" json:"photos,omitempty"`
	Videos []ActionVideo `gorm:"foreignKey:ActionID;constraint:OnDelete:CASCADE;" json:"videos,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Step struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	ActionID        uint   `gorm:"not null;index" json:"action_id"`
	StepTitle       string `gorm:"type:varchar(100);not null" json:"step_title"`
	KeyMoment       string `gorm:"type:varchar(250);not null" json:"key_moment"`
	KeyMomentReason string `gorm:"type:varchar(5000);not null" json:"key_moment_reason"`
	Slug            string `gorm:"not null;uniqueIndex:idx_steps_slug" json:"slug"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ActionPhoto struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ActionID uint   `gorm:"not null;index" json:"action_id"`
	Photo    string `gorm:"not null" json:"photo"`

	CreatedAt time.Time `json:"created_at"`
}

type ActionVideo struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ActionID uint   `gorm:"not null;index" json:"action_id"`
	Video    string `gorm:"not null" json:"video"`

	CreatedAt time.Time `json:"created_at"`
}
