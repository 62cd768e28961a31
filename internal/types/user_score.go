package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserMaterialScore is the per-user score and completion record for one
// material. One row per (user, material); re-submission replaces it. Rows are
// only ever deleted by cascading material deletion.
type UserMaterialScore struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_material" json:"user_id"`
	MaterialID uint      `gorm:"column:material_id;not null;index;uniqueIndex:idx_user_material" json:"material_id"`

	// Data holds the serialized EvaluationRecord of the latest submission.
	// Null for completion marks without a graded submission.
	Data datatypes.JSON `gorm:"column:data;type:jsonb" json:"data,omitempty"`

	Score    float64 `gorm:"column:score;not null;default:0" json:"score"`
	Progress int     `gorm:"column:progress;not null;default:0" json:"progress"`

	ProgramID      *uint `gorm:"column:program_id" json:"program_id,omitempty"`
	LearningPathID *uint `gorm:"column:learning_path_id" json:"learning_path_id,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (UserMaterialScore) TableName() string { return "user_material_scores" }
