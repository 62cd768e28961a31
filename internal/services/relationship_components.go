package services

import (
	"context"

	"github.com/xr50/training-asset-repository/internal/types"
)

// ComponentRelationships holds the per-subcomponent-type convenience
// wrappers around the generic component-edge operations.
type ComponentRelationships interface {
	AssignToChecklistEntry(ctx context.Context, entryID, materialID uint, relationshipType string, displayOrder *int) (*types.ComponentRelationship, error)
	RemoveFromChecklistEntry(ctx context.Context, entryID, materialID uint) error
	GetChecklistEntryMaterials(ctx context.Context, entryID uint) ([]types.RelatedRef, error)

	AssignToWorkflowStep(ctx context.Context, stepID, materialID uint, relationshipType string, displayOrder *int) (*types.ComponentRelationship, error)
	RemoveFromWorkflowStep(ctx context.Context, stepID, materialID uint) error
	GetWorkflowStepMaterials(ctx context.Context, stepID uint) ([]types.RelatedRef, error)

	AssignToQuestionnaireEntry(ctx context.Context, entryID, materialID uint, relationshipType string, displayOrder *int) (*types.ComponentRelationship, error)
	RemoveFromQuestionnaireEntry(ctx context.Context, entryID, materialID uint) error
	GetQuestionnaireEntryMaterials(ctx context.Context, entryID uint) ([]types.RelatedRef, error)

	AssignToVideoTimestamp(ctx context.Context, timestampID, materialID uint, relationshipType string, displayOrder *int) (*types.ComponentRelationship, error)
	RemoveFromVideoTimestamp(ctx context.Context, timestampID, materialID uint) error
	GetVideoTimestampMaterials(ctx context.Context, timestampID uint) ([]types.RelatedRef, error)

	AssignToQuizQuestion(ctx context.Context, questionID, materialID uint, relationshipType string, displayOrder *int) (*types.ComponentRelationship, error)
	RemoveFromQuizQuestion(ctx context.Context, questionID, materialID uint) error
	GetQuizQuestionMaterials(ctx context.Context, questionID uint) ([]types.RelatedRef, error)

	AssignToImageAnnotation(ctx context.Context, annotationID, materialID uint, relationshipType string, displayOrder *int) (*types.ComponentRelationship, error)
	RemoveFromImageAnnotation(ctx context.Context, annotationID, materialID uint) error
	GetImageAnnotationMaterials(ctx context.Context, annotationID uint) ([]types.RelatedRef, error)
}

func (s *relationshipService) AssignToChecklistEntry(ctx context.Context, entryID, materialID uint, relationshipType string, displayOrder *int) (*types.ComponentRelationship, error) {
	return s.AssignToComponent(ctx, entryID, types.ComponentTypeChecklistEntry, materialID, relationshipType, displayOrder)
}

func (s *relationshipService) RemoveFromChecklistEntry(ctx context.Context, entryID, materialID uint) error {
	return s.RemoveFromComponent(ctx, entryID, types.ComponentTypeChecklistEntry, materialID)
}

func (s *relationshipService) GetChecklistEntryMaterials(ctx context.Context, entryID uint) ([]types.RelatedRef, error) {
	return s.GetComponentMaterials(ctx, entryID, types.ComponentTypeChecklistEntry)
}

func (s *relationshipService) AssignToWorkflowStep(ctx context.Context, stepID, materialID uint, relationshipType string, displayOrder *int) (*types.ComponentRelationship, error) {
	return s.AssignToComponent(ctx, stepID, types.ComponentTypeWorkflowStep, materialID, relationshipType, displayOrder)
}

func (s *relationshipService) RemoveFromWorkflowStep(ctx context.Context, stepID, materialID uint) error {
	return s.RemoveFromComponent(ctx, stepID, types.ComponentTypeWorkflowStep, materialID)
}

func (s *relationshipService) GetWorkflowStepMaterials(ctx context.Context, stepID uint) ([]types.RelatedRef, error) {
	return s.GetComponentMaterials(ctx, stepID, types.ComponentTypeWorkflowStep)
}

func (s *relationshipService) AssignToQuestionnaireEntry(ctx context.Context, entryID, materialID uint, relationshipType string, displayOrder *int) (*types.ComponentRelationship, error) {
	return s.AssignToComponent(ctx, entryID, types.ComponentTypeQuestionnaireEntry, materialID, relationshipType, displayOrder)
}

func (s *relationshipService) RemoveFromQuestionnaireEntry(ctx context.Context, entryID, materialID uint) error {
	return s.RemoveFromComponent(ctx, entryID, types.ComponentTypeQuestionnaireEntry, materialID)
}

func (s *relationshipService) GetQuestionnaireEntryMaterials(ctx context.Context, entryID uint) ([]types.RelatedRef, error) {
	return s.GetComponentMaterials(ctx, entryID, types.ComponentTypeQuestionnaireEntry)
}

func (s *relationshipService) AssignToVideoTimestamp(ctx context.Context, timestampID, materialID uint, relationshipType string, displayOrder *int) (*types.ComponentRelationship, error) {
	return s.AssignToComponent(ctx, timestampID, types.ComponentTypeVideoTimestamp, materialID, relationshipType, displayOrder)
}

func (s *relationshipService) RemoveFromVideoTimestamp(ctx context.Context, timestampID, materialID uint) error {
	return s.RemoveFromComponent(ctx, timestampID, types.ComponentTypeVideoTimestamp, materialID)
}

func (s *relationshipService) GetVideoTimestampMaterials(ctx context.Context, timestampID uint) ([]types.RelatedRef, error) {
	return s.GetComponentMaterials(ctx, timestampID, types.ComponentTypeVideoTimestamp)
}

func (s *relationshipService) AssignToQuizQuestion(ctx context.Context, questionID, materialID uint, relationshipType string, displayOrder *int) (*types.ComponentRelationship, error) {
	return s.AssignToComponent(ctx, questionID, types.ComponentTypeQuizQuestion, materialID, relationshipType, displayOrder)
}

func (s *relationshipService) RemoveFromQuizQuestion(ctx context.Context, questionID, materialID uint) error {
	return s.RemoveFromComponent(ctx, questionID, types.ComponentTypeQuizQuestion, materialID)
}

func (s *relationshipService) GetQuizQuestionMaterials(ctx context.Context, questionID uint) ([]types.RelatedRef, error) {
	return s.GetComponentMaterials(ctx, questionID, types.ComponentTypeQuizQuestion)
}

func (s *relationshipService) AssignToImageAnnotation(ctx context.Context, annotationID, materialID uint, relationshipType string, displayOrder *int) (*types.ComponentRelationship, error) {
	return s.AssignToComponent(ctx, annotationID, types.ComponentTypeImageAnnotation, materialID, relationshipType, displayOrder)
}

func (s *relationshipService) RemoveFromImageAnnotation(ctx context.Context, annotationID, materialID uint) error {
	return s.RemoveFromComponent(ctx, annotationID, types.ComponentTypeImageAnnotation, materialID)
}

func (s *relationshipService) GetImageAnnotationMaterials(ctx context.Context, annotationID uint) ([]types.RelatedRef, error) {
	return s.GetComponentMaterials(ctx, annotationID, types.ComponentTypeImageAnnotation)
}
