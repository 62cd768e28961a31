package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/types"
)

type MaterialRelationshipRepo interface {
	Create(ctx context.Context, tx *gorm.DB, edge *types.MaterialRelationship) (*types.MaterialRelationship, error)
	GetChildren(ctx context.Context, tx *gorm.DB, materialID uint, relationshipType string) ([]*types.MaterialRelationship, error)
	GetParents(ctx context.Context, tx *gorm.DB, relatedEntityID uint, entityType types.RelatedEntityType, relationshipType string) ([]*types.MaterialRelationship, error)
	GetContainsChildIDs(ctx context.Context, tx *gorm.DB, materialID uint) ([]uint, error)
	GetAssignedMaterialIDs(ctx context.Context, tx *gorm.DB, containerID uint, containerType types.RelatedEntityType) ([]uint, error)
	Exists(ctx context.Context, tx *gorm.DB, materialID, relatedEntityID uint, entityType types.RelatedEntityType, relationshipType string) (bool, error)
	UpdateDisplayOrder(ctx context.Context, tx *gorm.DB, materialID, relatedEntityID uint, order int) error
	Delete(ctx context.Context, tx *gorm.DB, materialID, relatedEntityID uint, entityType types.RelatedEntityType) error
	DeleteAllForMaterial(ctx context.Context, tx *gorm.DB, materialID uint) error
}

type materialRelationshipRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMaterialRelationshipRepo(db *gorm.DB, baseLog *logger.Logger) MaterialRelationshipRepo {
	return &materialRelationshipRepo{db: db, log: baseLog.With("repo", "MaterialRelationshipRepo")}
}

func (r *materialRelationshipRepo) Create(ctx context.Context, tx *gorm.DB, edge *types.MaterialRelationship) (*types.MaterialRelationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(edge).Error; err != nil {
		return nil, err
	}
	return edge, nil
}

func (r *materialRelationshipRepo) GetChildren(ctx context.Context, tx *gorm.DB, materialID uint, relationshipType string) ([]*types.MaterialRelationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).
		Where("material_id = ?", materialID)
	if relationshipType != "" {
		query = query.Where("relationship_type = ?", relationshipType)
	}

	var results []*types.MaterialRelationship
	if err := query.
		Order("display_order ASC NULLS LAST, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *materialRelationshipRepo) GetParents(ctx context.Context, tx *gorm.DB, relatedEntityID uint, entityType types.RelatedEntityType, relationshipType string) ([]*types.MaterialRelationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).
		Where("related_entity_id = ? AND related_entity_type = ?", relatedEntityID, entityType)
	if relationshipType != "" {
		query = query.Where("relationship_type = ?", relationshipType)
	}

	var results []*types.MaterialRelationship
	if err := query.
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *materialRelationshipRepo) GetContainsChildIDs(ctx context.Context, tx *gorm.DB, materialID uint) ([]uint, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uint
	if err := transaction.WithContext(ctx).
		Model(&types.MaterialRelationship{}).
		Where("material_id = ? AND related_entity_type = ? AND relationship_type = ?",
			materialID, types.RelatedEntityMaterial, types.RelationshipContains).
		Pluck("related_entity_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *materialRelationshipRepo) GetAssignedMaterialIDs(ctx context.Context, tx *gorm.DB, containerID uint, containerType types.RelatedEntityType) ([]uint, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uint
	if err := transaction.WithContext(ctx).
		Model(&types.MaterialRelationship{}).
		Distinct("material_id").
		Where("related_entity_id = ? AND related_entity_type = ?", containerID, containerType).
		Pluck("material_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *materialRelationshipRepo) Exists(ctx context.Context, tx *gorm.DB, materialID, relatedEntityID uint, entityType types.RelatedEntityType, relationshipType string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).
		Model(&types.MaterialRelationship{}).
		Where("material_id = ? AND related_entity_id = ? AND related_entity_type = ?",
			materialID, relatedEntityID, entityType)
	if relationshipType != "" {
		query = query.Where("relationship_type = ?", relationshipType)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *materialRelationshipRepo) UpdateDisplayOrder(ctx context.Context, tx *gorm.DB, materialID, relatedEntityID uint, order int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.MaterialRelationship{}).
		Where("material_id = ? AND related_entity_id = ?", materialID, relatedEntityID).
		Update("display_order", order).Error
}

func (r *materialRelationshipRepo) Delete(ctx context.Context, tx *gorm.DB, materialID, relatedEntityID uint, entityType types.RelatedEntityType) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("material_id = ? AND related_entity_id = ? AND related_entity_type = ?",
			materialID, relatedEntityID, entityType).
		Delete(&types.MaterialRelationship{}).Error
}

// DeleteAllForMaterial removes every edge where the material is the owner or
// the referenced material-typed entity. Part of the material delete cascade.
func (r *materialRelationshipRepo) DeleteAllForMaterial(ctx context.Context, tx *gorm.DB, materialID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("material_id = ? OR (related_entity_id = ? AND related_entity_type = ?)",
			materialID, materialID, types.RelatedEntityMaterial).
		Delete(&types.MaterialRelationship{}).Error
}
