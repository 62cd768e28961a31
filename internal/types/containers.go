package types

import "time"

// TrainingProgram groups learning paths and directly assigned materials.
// Provisioning of programs belongs to the surrounding tenant layer; the core
// only needs the row for membership queries and existence checks.
type TrainingProgram struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (TrainingProgram) TableName() string { return "training_programs" }

// LearningPath groups materials, optionally nested inside a program.
type LearningPath struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	ProgramID   *uint     `gorm:"column:program_id;index" json:"program_id,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (LearningPath) TableName() string { return "learning_paths" }
