package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/xr50/training-asset-repository/internal/repos"
	"github.com/xr50/training-asset-repository/internal/types"
)

// componentSet bundles the per-variant subcomponent repos and dispatches on
// the material's variant tag. All load/insert/delete operations honor the
// passed transaction so callers can keep material + subcomponents atomic.
type componentSet struct {
	checklistEntries     repos.ChecklistEntryRepo
	workflowSteps        repos.WorkflowStepRepo
	questionnaireEntries repos.QuestionnaireEntryRepo
	videoTimestamps      repos.VideoTimestampRepo
	quizQuestions        repos.QuizQuestionRepo
	imageAnnotations     repos.ImageAnnotationRepo
}

// loadInto attaches the material's subcomponent collection, dispatching on
// its variant tag. Variants without subcomponents are a no-op.
func (c *componentSet) loadInto(ctx context.Context, tx *gorm.DB, m *types.Material) error {
	switch m.Type {
	case types.MaterialTypeChecklist:
		entries, err := c.checklistEntries.GetByMaterialID(ctx, tx, m.ID)
		if err != nil {
			return err
		}
		m.Entries = entries
	case types.MaterialTypeWorkflow:
		steps, err := c.workflowSteps.GetByMaterialID(ctx, tx, m.ID)
		if err != nil {
			return err
		}
		m.Steps = steps
	case types.MaterialTypeQuestionnaire:
		entries, err := c.questionnaireEntries.GetByMaterialID(ctx, tx, m.ID)
		if err != nil {
			return err
		}
		m.QuestionnaireEntries = entries
	case types.MaterialTypeVideo:
		timestamps, err := c.videoTimestamps.GetByMaterialID(ctx, tx, m.ID)
		if err != nil {
			return err
		}
		m.Timestamps = timestamps
	case types.MaterialTypeQuiz:
		questions, err := c.quizQuestions.GetByMaterialID(ctx, tx, m.ID)
		if err != nil {
			return err
		}
		m.Questions = questions
	case types.MaterialTypeImage:
		annotations, err := c.imageAnnotations.GetByMaterialID(ctx, tx, m.ID)
		if err != nil {
			return err
		}
		m.Annotations = annotations
	}
	return nil
}

// insertFor persists the material's subcomponent collection under its id.
// Row ids are reset so a replace never tries to resurrect old primary keys.
func (c *componentSet) insertFor(ctx context.Context, tx *gorm.DB, m *types.Material) error {
	switch m.Type {
	case types.MaterialTypeChecklist:
		for i := range m.Entries {
			m.Entries[i].ID = 0
			m.Entries[i].MaterialID = m.ID
		}
		entries, err := c.checklistEntries.Create(ctx, tx, m.Entries)
		if err != nil {
			return err
		}
		m.Entries = entries
	case types.MaterialTypeWorkflow:
		for i := range m.Steps {
			m.Steps[i].ID = 0
			m.Steps[i].MaterialID = m.ID
		}
		steps, err := c.workflowSteps.Create(ctx, tx, m.Steps)
		if err != nil {
			return err
		}
		m.Steps = steps
	case types.MaterialTypeQuestionnaire:
		for i := range m.QuestionnaireEntries {
			m.QuestionnaireEntries[i].ID = 0
			m.QuestionnaireEntries[i].MaterialID = m.ID
		}
		entries, err := c.questionnaireEntries.Create(ctx, tx, m.QuestionnaireEntries)
		if err != nil {
			return err
		}
		m.QuestionnaireEntries = entries
	case types.MaterialTypeVideo:
		for i := range m.Timestamps {
			m.Timestamps[i].ID = 0
			m.Timestamps[i].MaterialID = m.ID
		}
		timestamps, err := c.videoTimestamps.Create(ctx, tx, m.Timestamps)
		if err != nil {
			return err
		}
		m.Timestamps = timestamps
	case types.MaterialTypeQuiz:
		for i := range m.Questions {
			m.Questions[i].ID = 0
			m.Questions[i].MaterialID = m.ID
		}
		questions, err := c.quizQuestions.CreateWithAnswers(ctx, tx, m.Questions)
		if err != nil {
			return err
		}
		m.Questions = questions
	case types.MaterialTypeImage:
		for i := range m.Annotations {
			m.Annotations[i].ID = 0
			m.Annotations[i].MaterialID = m.ID
		}
		annotations, err := c.imageAnnotations.Create(ctx, tx, m.Annotations)
		if err != nil {
			return err
		}
		m.Annotations = annotations
	}
	return nil
}

// deleteFor removes every subcomponent row owned by the material, for the
// given variant. Quiz answers go with their questions.
func (c *componentSet) deleteFor(ctx context.Context, tx *gorm.DB, materialID uint, materialType types.MaterialType) error {
	switch materialType {
	case types.MaterialTypeChecklist:
		return c.checklistEntries.DeleteByMaterialID(ctx, tx, materialID)
	case types.MaterialTypeWorkflow:
		return c.workflowSteps.DeleteByMaterialID(ctx, tx, materialID)
	case types.MaterialTypeQuestionnaire:
		return c.questionnaireEntries.DeleteByMaterialID(ctx, tx, materialID)
	case types.MaterialTypeVideo:
		return c.videoTimestamps.DeleteByMaterialID(ctx, tx, materialID)
	case types.MaterialTypeQuiz:
		return c.quizQuestions.DeleteByMaterialID(ctx, tx, materialID)
	case types.MaterialTypeImage:
		return c.imageAnnotations.DeleteByMaterialID(ctx, tx, materialID)
	}
	return nil
}

// componentIDsFor returns the component-table ids owned by the material,
// keyed by component type. Feeds the component-edge cleanup on delete.
func (c *componentSet) componentIDsFor(ctx context.Context, tx *gorm.DB, materialID uint, materialType types.MaterialType) (map[types.ComponentType][]uint, error) {
	out := make(map[types.ComponentType][]uint)
	var (
		ids []uint
		err error
	)
	switch materialType {
	case types.MaterialTypeChecklist:
		ids, err = c.checklistEntries.GetIDsByMaterialID(ctx, tx, materialID)
		out[types.ComponentTypeChecklistEntry] = ids
	case types.MaterialTypeWorkflow:
		ids, err = c.workflowSteps.GetIDsByMaterialID(ctx, tx, materialID)
		out[types.ComponentTypeWorkflowStep] = ids
	case types.MaterialTypeQuestionnaire:
		ids, err = c.questionnaireEntries.GetIDsByMaterialID(ctx, tx, materialID)
		out[types.ComponentTypeQuestionnaireEntry] = ids
	case types.MaterialTypeVideo:
		ids, err = c.videoTimestamps.GetIDsByMaterialID(ctx, tx, materialID)
		out[types.ComponentTypeVideoTimestamp] = ids
	case types.MaterialTypeQuiz:
		ids, err = c.quizQuestions.GetIDsByMaterialID(ctx, tx, materialID)
		out[types.ComponentTypeQuizQuestion] = ids
	case types.MaterialTypeImage:
		ids, err = c.imageAnnotations.GetIDsByMaterialID(ctx, tx, materialID)
		out[types.ComponentTypeImageAnnotation] = ids
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
