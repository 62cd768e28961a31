package types

import (
	"time"
)

// MaterialType is the closed variant tag of a material. It is assigned on
// create and can never change on update.
type MaterialType string

const (
	MaterialTypeChecklist     MaterialType = "checklist"
	MaterialTypeWorkflow      MaterialType = "workflow"
	MaterialTypeQuiz          MaterialType = "quiz"
	MaterialTypeQuestionnaire MaterialType = "questionnaire"
	MaterialTypeVideo         MaterialType = "video"
	MaterialTypeImage         MaterialType = "image"
	MaterialTypePDF           MaterialType = "pdf"
	MaterialTypeUnity         MaterialType = "unity"
	MaterialTypeChatbot       MaterialType = "chatbot"
	MaterialTypeMQTTTemplate  MaterialType = "mqtt_template"
	MaterialTypeVoice         MaterialType = "voice"
	MaterialTypeDefault       MaterialType = "default"
)

func (t MaterialType) Valid() bool {
	switch t {
	case MaterialTypeChecklist, MaterialTypeWorkflow, MaterialTypeQuiz,
		MaterialTypeQuestionnaire, MaterialTypeVideo, MaterialTypeImage,
		MaterialTypePDF, MaterialTypeUnity, MaterialTypeChatbot,
		MaterialTypeMQTTTemplate, MaterialTypeVoice, MaterialTypeDefault:
		return true
	}
	return false
}

// AssetCapable reports whether the variant may hold a file-asset reference.
func (t MaterialType) AssetCapable() bool {
	switch t {
	case MaterialTypeVideo, MaterialTypeImage, MaterialTypePDF,
		MaterialTypeUnity, MaterialTypeDefault:
		return true
	}
	return false
}

// Material is the polymorphic training-material row. Variant-specific scalar
// fields live as sparse nullable columns; variant subcomponent collections
// live in their own tables and are attached by the service layer.
type Material struct {
	ID          uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string       `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string       `gorm:"column:description;type:text" json:"description,omitempty"`
	Type        MaterialType `gorm:"column:type;type:varchar(16);not null;index" json:"type"`

	// UniqueID is an optional external identifier, immutable once set.
	UniqueID *string `gorm:"column:unique_id;type:varchar(128)" json:"unique_id,omitempty"`

	// AssetID references a file asset managed outside this core. Only
	// asset-capable variants carry one.
	AssetID *uint `gorm:"column:asset_id" json:"asset_id,omitempty"`

	// Sparse variant-specific columns.
	VideoPath     *string `gorm:"column:video_path;type:varchar(512)" json:"video_path,omitempty"`
	ChatbotConfig *string `gorm:"column:chatbot_config;type:text" json:"chatbot_config,omitempty"`
	MQTTTopic     *string `gorm:"column:mqtt_topic;type:varchar(255)" json:"mqtt_topic,omitempty"`
	MessageText   *string `gorm:"column:message_text;type:text" json:"message_text,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`

	// Variant subcomponent collections. Loaded and persisted explicitly by
	// the material service, never by gorm association magic.
	Entries              []ChecklistEntry     `gorm:"-" json:"entries,omitempty"`
	Steps                []WorkflowStep       `gorm:"-" json:"steps,omitempty"`
	QuestionnaireEntries []QuestionnaireEntry `gorm:"-" json:"questionnaire_entries,omitempty"`
	Questions            []QuizQuestion       `gorm:"-" json:"questions,omitempty"`
	Timestamps           []VideoTimestamp     `gorm:"-" json:"timestamps,omitempty"`
	Annotations          []ImageAnnotation    `gorm:"-" json:"annotations,omitempty"`

	// Related is populated on read with the material's child references
	// (never the parent direction).
	Related []RelatedRef `gorm:"-" json:"related,omitempty"`
}

func (Material) TableName() string { return "materials" }

// RelatedRef is a containment reference in a boundary payload. Only the id is
// semantically read from incoming entries; the rest is echoed on output.
type RelatedRef struct {
	ID               uint   `json:"id"`
	Name             string `json:"name,omitempty"`
	Type             string `json:"type,omitempty"`
	RelationshipType string `json:"relationship_type,omitempty"`
	DisplayOrder     *int   `json:"display_order,omitempty"`
}
