package types

// ComponentType identifies which subcomponent table a component row lives in.
// Used as the discriminator half of a component-relationship edge key.
type ComponentType string

const (
	ComponentTypeChecklistEntry     ComponentType = "checklist_entry"
	ComponentTypeWorkflowStep       ComponentType = "workflow_step"
	ComponentTypeQuestionnaireEntry ComponentType = "questionnaire_entry"
	ComponentTypeVideoTimestamp     ComponentType = "video_timestamp"
	ComponentTypeQuizQuestion       ComponentType = "quiz_question"
	ComponentTypeImageAnnotation    ComponentType = "image_annotation"
)

func (t ComponentType) Valid() bool {
	switch t {
	case ComponentTypeChecklistEntry, ComponentTypeWorkflowStep,
		ComponentTypeQuestionnaireEntry, ComponentTypeVideoTimestamp,
		ComponentTypeQuizQuestion, ComponentTypeImageAnnotation:
		return true
	}
	return false
}

// ChecklistEntry is an ordered item of a checklist material.
type ChecklistEntry struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	MaterialID   uint   `gorm:"column:material_id;not null;index" json:"material_id"`
	Text         string `gorm:"column:text;type:text;not null" json:"text"`
	DisplayOrder int    `gorm:"column:display_order;not null;default:0" json:"display_order"`
}

func (ChecklistEntry) TableName() string { return "checklist_entries" }

// WorkflowStep is an ordered step of a workflow material.
type WorkflowStep struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	MaterialID   uint   `gorm:"column:material_id;not null;index" json:"material_id"`
	Title        string `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Content      string `gorm:"column:content;type:text" json:"content,omitempty"`
	DisplayOrder int    `gorm:"column:display_order;not null;default:0" json:"display_order"`
}

func (WorkflowStep) TableName() string { return "workflow_steps" }

// QuestionnaireEntry is an ordered entry of a questionnaire material.
type QuestionnaireEntry struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	MaterialID   uint   `gorm:"column:material_id;not null;index" json:"material_id"`
	Text         string `gorm:"column:text;type:text;not null" json:"text"`
	EntryType    string `gorm:"column:entry_type;type:varchar(32)" json:"entry_type,omitempty"`
	DisplayOrder int    `gorm:"column:display_order;not null;default:0" json:"display_order"`
}

func (QuestionnaireEntry) TableName() string { return "questionnaire_entries" }

// VideoTimestamp marks a point of interest inside a video material.
type VideoTimestamp struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	MaterialID   uint   `gorm:"column:material_id;not null;index" json:"material_id"`
	Title        string `gorm:"column:title;type:varchar(255)" json:"title,omitempty"`
	TimeSeconds  int    `gorm:"column:time_seconds;not null" json:"time_seconds"`
	DisplayOrder int    `gorm:"column:display_order;not null;default:0" json:"display_order"`
}

func (VideoTimestamp) TableName() string { return "video_timestamps" }

// ImageAnnotation is a positioned note on an image material.
type ImageAnnotation struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	MaterialID   uint    `gorm:"column:material_id;not null;index" json:"material_id"`
	Text         string  `gorm:"column:text;type:text" json:"text,omitempty"`
	PosX         float64 `gorm:"column:pos_x;not null;default:0" json:"pos_x"`
	PosY         float64 `gorm:"column:pos_y;not null;default:0" json:"pos_y"`
	DisplayOrder int     `gorm:"column:display_order;not null;default:0" json:"display_order"`
}

func (ImageAnnotation) TableName() string { return "image_annotations" }
