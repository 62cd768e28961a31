package types

import "time"

// RelatedEntityType identifies what a material relationship points at.
type RelatedEntityType string

const (
	RelatedEntityMaterial        RelatedEntityType = "material"
	RelatedEntityLearningPath    RelatedEntityType = "learning_path"
	RelatedEntityTrainingProgram RelatedEntityType = "training_program"
)

// Common relationship type tags. The set is deliberately open: callers may
// tag edges with their own strings, these are just the ones the core acts on.
const (
	RelationshipContains     = "contains"
	RelationshipAssigned     = "assigned"
	RelationshipPrerequisite = "prerequisite"
)

// MaterialRelationship is a directed edge from a material to another
// material or to a container. The subset typed "contains" between materials
// must stay acyclic; the relationship service enforces that before insert.
type MaterialRelationship struct {
	ID                uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	MaterialID        uint              `gorm:"column:material_id;not null;index" json:"material_id"`
	RelatedEntityID   uint              `gorm:"column:related_entity_id;not null;index" json:"related_entity_id"`
	RelatedEntityType RelatedEntityType `gorm:"column:related_entity_type;type:varchar(24);not null" json:"related_entity_type"`
	RelationshipType  string            `gorm:"column:relationship_type;type:varchar(32);not null" json:"relationship_type"`
	DisplayOrder      *int              `gorm:"column:display_order" json:"display_order,omitempty"`
	CreatedAt         time.Time         `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
}

func (MaterialRelationship) TableName() string { return "material_relationships" }

// ComponentRelationship is a directed edge from a subcomponent to a
// material. Unique on (component_id, component_type, related_material_id).
type ComponentRelationship struct {
	ID                uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	ComponentID       uint          `gorm:"column:component_id;not null;uniqueIndex:idx_component_material" json:"component_id"`
	ComponentType     ComponentType `gorm:"column:component_type;type:varchar(24);not null;uniqueIndex:idx_component_material" json:"component_type"`
	RelatedMaterialID uint          `gorm:"column:related_material_id;not null;index;uniqueIndex:idx_component_material" json:"related_material_id"`
	RelationshipType  string        `gorm:"column:relationship_type;type:varchar(32);not null" json:"relationship_type"`
	DisplayOrder      *int          `gorm:"column:display_order" json:"display_order,omitempty"`
	CreatedAt         time.Time     `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
}

func (ComponentRelationship) TableName() string { return "component_relationships" }

// HierarchyNode is one node of a bounded containment traversal.
type HierarchyNode struct {
	MaterialID uint             `json:"material_id"`
	Name       string           `json:"name"`
	Type       MaterialType     `json:"type"`
	Children   []*HierarchyNode `json:"children,omitempty"`
}
