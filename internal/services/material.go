package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xr50/training-asset-repository/internal/apierr"
	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/repos"
	"github.com/xr50/training-asset-repository/internal/types"
)

// MaterialService is the material store: polymorphic persistence, the
// replace-update coordinator, and the delete cascade. Every mutating
// operation keeps the material row, its subcomponents and its edges
// consistent inside a single transaction.
type MaterialService interface {
	Create(ctx context.Context, m *types.Material) (*types.Material, error)
	CreateComplete(ctx context.Context, m *types.Material) (*types.Material, error)
	GetByID(ctx context.Context, id uint) (*types.Material, error)
	GetOfType(ctx context.Context, id uint, materialType types.MaterialType) (*types.Material, error)
	ListAll(ctx context.Context) ([]*types.Material, error)
	ListOfType(ctx context.Context, materialType types.MaterialType) ([]*types.Material, error)
	Update(ctx context.Context, m *types.Material) (*types.Material, error)
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)

	AssignAsset(ctx context.Context, id, assetID uint) (bool, error)
	RemoveAsset(ctx context.Context, id uint) (bool, error)
	GetAssetID(ctx context.Context, id uint) (*uint, error)
}

type materialService struct {
	db            *gorm.DB
	log           *logger.Logger
	materials     repos.MaterialRepo
	components    *componentSet
	materialRels  repos.MaterialRelationshipRepo
	componentRels repos.ComponentRelationshipRepo
	userScores    repos.UserScoreRepo
	relationships RelationshipService
}

func NewMaterialService(
	db *gorm.DB,
	baseLog *logger.Logger,
	materials repos.MaterialRepo,
	checklistEntries repos.ChecklistEntryRepo,
	workflowSteps repos.WorkflowStepRepo,
	questionnaireEntries repos.QuestionnaireEntryRepo,
	videoTimestamps repos.VideoTimestampRepo,
	quizQuestions repos.QuizQuestionRepo,
	imageAnnotations repos.ImageAnnotationRepo,
	materialRels repos.MaterialRelationshipRepo,
	componentRels repos.ComponentRelationshipRepo,
	userScores repos.UserScoreRepo,
	relationships RelationshipService,
) MaterialService {
	return &materialService{
		db:        db,
		log:       baseLog.With("service", "MaterialService"),
		materials: materials,
		components: &componentSet{
			checklistEntries:     checklistEntries,
			workflowSteps:        workflowSteps,
			questionnaireEntries: questionnaireEntries,
			videoTimestamps:      videoTimestamps,
			quizQuestions:        quizQuestions,
			imageAnnotations:     imageAnnotations,
		},
		materialRels:  materialRels,
		componentRels: componentRels,
		userScores:    userScores,
		relationships: relationships,
	}
}

func (s *materialService) validateNew(m *types.Material) error {
	if m == nil {
		return apierr.Validation("material payload is required")
	}
	if m.Name == "" {
		return apierr.Validation("material name is required")
	}
	if !m.Type.Valid() {
		return apierr.Validation("unknown material type %q", m.Type)
	}
	if m.Type == types.MaterialTypeQuiz {
		if err := validateQuizQuestions(m.Questions); err != nil {
			return err
		}
	}
	return nil
}

func (s *materialService) Create(ctx context.Context, m *types.Material) (*types.Material, error) {
	if err := s.validateNew(m); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	created, err := s.materials.Create(ctx, nil, m)
	if err != nil {
		return nil, apierr.Store(err)
	}
	s.log.Info("Created material", "material_id", created.ID, "type", created.Type)
	return created, nil
}

// CreateComplete persists the material row and its nested subcomponents in
// one transaction, then synchronizes the containment edges implied by the
// payload's related references.
func (s *materialService) CreateComplete(ctx context.Context, m *types.Material) (*types.Material, error) {
	if err := s.validateNew(m); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.materials.Create(ctx, tx, m); err != nil {
			return err
		}
		return s.components.insertFor(ctx, tx, m)
	})
	if err != nil {
		return nil, apierr.Store(err)
	}

	if err := s.syncRelated(ctx, m); err != nil {
		return nil, err
	}
	if err := s.attachRelated(ctx, m); err != nil {
		return nil, err
	}
	s.log.Info("Created material with subcomponents", "material_id", m.ID, "type", m.Type)
	return m, nil
}

func (s *materialService) GetByID(ctx context.Context, id uint) (*types.Material, error) {
	m, err := s.materials.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Store(err)
	}
	if m == nil {
		return nil, apierr.NotFound("material %d not found", id)
	}
	if err := s.components.loadInto(ctx, nil, m); err != nil {
		return nil, apierr.Store(err)
	}
	if err := s.attachRelated(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GetOfType loads the material and verifies it has the expected variant.
func (s *materialService) GetOfType(ctx context.Context, id uint, materialType types.MaterialType) (*types.Material, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Type != materialType {
		return nil, apierr.TypeMismatch("material %d is %q, not %q", id, m.Type, materialType)
	}
	return m, nil
}

func (s *materialService) ListAll(ctx context.Context) ([]*types.Material, error) {
	results, err := s.materials.ListAll(ctx, nil)
	if err != nil {
		return nil, apierr.Store(err)
	}
	return results, nil
}

func (s *materialService) ListOfType(ctx context.Context, materialType types.MaterialType) ([]*types.Material, error) {
	if !materialType.Valid() {
		return nil, apierr.Validation("unknown material type %q", materialType)
	}
	results, err := s.materials.ListByType(ctx, nil, materialType)
	if err != nil {
		return nil, apierr.Store(err)
	}
	return results, nil
}

// Update is a full-state replacement, not a patch. The existing material and
// its subcomponents are deleted and recreated under the same id, carrying
// forward the creation timestamp, external unique id, and (when the payload
// omits one) the file-asset reference. Relationship edges keyed to the
// replaced subcomponents are dropped with them. Any failure rolls the whole
// sequence back, leaving the original material untouched.
func (s *materialService) Update(ctx context.Context, m *types.Material) (*types.Material, error) {
	if m == nil || m.ID == 0 {
		return nil, apierr.Validation("material id is required on update")
	}

	existing, err := s.materials.GetByID(ctx, nil, m.ID)
	if err != nil {
		return nil, apierr.Store(err)
	}
	if existing == nil {
		return nil, apierr.NotFound("material %d not found", m.ID)
	}
	if m.Type != "" && m.Type != existing.Type {
		return nil, apierr.TypeMismatch("material %d is %q; variant changes are not permitted (got %q)",
			m.ID, existing.Type, m.Type)
	}
	m.Type = existing.Type
	if m.Type == types.MaterialTypeQuiz {
		if err := validateQuizQuestions(m.Questions); err != nil {
			return nil, err
		}
	}

	// Carry forward immutable state.
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = time.Now().UTC()
	if existing.UniqueID != nil {
		m.UniqueID = existing.UniqueID
	}
	if m.AssetID == nil {
		m.AssetID = existing.AssetID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		componentIDs, err := s.components.componentIDsFor(ctx, tx, existing.ID, existing.Type)
		if err != nil {
			return err
		}
		for componentType, ids := range componentIDs {
			if err := s.componentRels.DeleteByComponents(ctx, tx, componentType, ids); err != nil {
				return err
			}
		}
		if err := s.components.deleteFor(ctx, tx, existing.ID, existing.Type); err != nil {
			return err
		}
		if err := s.materials.DeleteByID(ctx, tx, existing.ID); err != nil {
			return err
		}
		if _, err := s.materials.Create(ctx, tx, m); err != nil {
			return err
		}
		return s.components.insertFor(ctx, tx, m)
	})
	if err != nil {
		return nil, apierr.Store(err)
	}

	if err := s.syncRelated(ctx, m); err != nil {
		return nil, err
	}
	if err := s.attachRelated(ctx, m); err != nil {
		return nil, err
	}
	s.log.Info("Replaced material", "material_id", m.ID, "type", m.Type)
	return m, nil
}

// Delete cascades: subcomponents, both relationship-edge tables, user score
// records, then the material row, all inside one transaction.
func (s *materialService) Delete(ctx context.Context, id uint) error {
	existing, err := s.materials.GetByID(ctx, nil, id)
	if err != nil {
		return apierr.Store(err)
	}
	if existing == nil {
		return apierr.NotFound("material %d not found", id)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		componentIDs, err := s.components.componentIDsFor(ctx, tx, id, existing.Type)
		if err != nil {
			return err
		}
		for componentType, ids := range componentIDs {
			if err := s.componentRels.DeleteByComponents(ctx, tx, componentType, ids); err != nil {
				return err
			}
		}
		if err := s.componentRels.DeleteByMaterialID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.materialRels.DeleteAllForMaterial(ctx, tx, id); err != nil {
			return err
		}
		if err := s.components.deleteFor(ctx, tx, id, existing.Type); err != nil {
			return err
		}
		if err := s.userScores.DeleteByMaterialID(ctx, tx, id); err != nil {
			return err
		}
		return s.materials.DeleteByID(ctx, tx, id)
	})
	if err != nil {
		return apierr.Store(err)
	}
	s.log.Info("Deleted material", "material_id", id, "type", existing.Type)
	return nil
}

func (s *materialService) Exists(ctx context.Context, id uint) (bool, error) {
	exists, err := s.materials.Exists(ctx, nil, id)
	if err != nil {
		return false, apierr.Store(err)
	}
	return exists, nil
}

// AssignAsset links a file asset to the material. Variants that cannot hold
// an asset make this a no-op returning false, not an error.
func (s *materialService) AssignAsset(ctx context.Context, id, assetID uint) (bool, error) {
	m, err := s.materials.GetByID(ctx, nil, id)
	if err != nil {
		return false, apierr.Store(err)
	}
	if m == nil {
		return false, apierr.NotFound("material %d not found", id)
	}
	if !m.Type.AssetCapable() {
		return false, nil
	}
	if err := s.materials.UpdateAssetID(ctx, nil, id, &assetID); err != nil {
		return false, apierr.Store(err)
	}
	return true, nil
}

func (s *materialService) RemoveAsset(ctx context.Context, id uint) (bool, error) {
	m, err := s.materials.GetByID(ctx, nil, id)
	if err != nil {
		return false, apierr.Store(err)
	}
	if m == nil {
		return false, apierr.NotFound("material %d not found", id)
	}
	if !m.Type.AssetCapable() {
		return false, nil
	}
	if err := s.materials.UpdateAssetID(ctx, nil, id, nil); err != nil {
		return false, apierr.Store(err)
	}
	return true, nil
}

func (s *materialService) GetAssetID(ctx context.Context, id uint) (*uint, error) {
	m, err := s.materials.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Store(err)
	}
	if m == nil {
		return nil, apierr.NotFound("material %d not found", id)
	}
	return m.AssetID, nil
}

// syncRelated creates the containment edges implied by the payload's related
// references. Only the id of each entry is read. Existing edges absent from
// the payload are left alone; edge removal goes through the dedicated
// relationship operations.
func (s *materialService) syncRelated(ctx context.Context, m *types.Material) error {
	for _, ref := range m.Related {
		if ref.ID == 0 {
			continue
		}
		relType := ref.RelationshipType
		if relType == "" {
			relType = types.RelationshipContains
		}
		if _, err := s.relationships.Assign(ctx, m.ID, ref.ID, relType, ref.DisplayOrder); err != nil {
			if apierr.IsConflict(err) {
				continue
			}
			return err
		}
	}
	return nil
}

// attachRelated populates the emitted related array from the current graph
// state: child references only, never the parent direction.
func (s *materialService) attachRelated(ctx context.Context, m *types.Material) error {
	related, err := s.relationships.GetChildren(ctx, m.ID, "")
	if err != nil {
		return err
	}
	m.Related = related
	return nil
}
