package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/types"
)

type ComponentRelationshipRepo interface {
	Create(ctx context.Context, tx *gorm.DB, edge *types.ComponentRelationship) (*types.ComponentRelationship, error)
	GetByComponent(ctx context.Context, tx *gorm.DB, componentID uint, componentType types.ComponentType) ([]*types.ComponentRelationship, error)
	GetByMaterial(ctx context.Context, tx *gorm.DB, materialID uint) ([]*types.ComponentRelationship, error)
	Exists(ctx context.Context, tx *gorm.DB, componentID uint, componentType types.ComponentType, materialID uint) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, componentID uint, componentType types.ComponentType, materialID uint) error
	DeleteByComponents(ctx context.Context, tx *gorm.DB, componentType types.ComponentType, componentIDs []uint) error
	DeleteByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) error
}

type componentRelationshipRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewComponentRelationshipRepo(db *gorm.DB, baseLog *logger.Logger) ComponentRelationshipRepo {
	return &componentRelationshipRepo{db: db, log: baseLog.With("repo", "ComponentRelationshipRepo")}
}

func (r *componentRelationshipRepo) Create(ctx context.Context, tx *gorm.DB, edge *types.ComponentRelationship) (*types.ComponentRelationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(edge).Error; err != nil {
		return nil, err
	}
	return edge, nil
}

func (r *componentRelationshipRepo) GetByComponent(ctx context.Context, tx *gorm.DB, componentID uint, componentType types.ComponentType) ([]*types.ComponentRelationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ComponentRelationship
	if err := transaction.WithContext(ctx).
		Where("component_id = ? AND component_type = ?", componentID, componentType).
		Order("display_order ASC NULLS LAST, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *componentRelationshipRepo) GetByMaterial(ctx context.Context, tx *gorm.DB, materialID uint) ([]*types.ComponentRelationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ComponentRelationship
	if err := transaction.WithContext(ctx).
		Where("related_material_id = ?", materialID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *componentRelationshipRepo) Exists(ctx context.Context, tx *gorm.DB, componentID uint, componentType types.ComponentType, materialID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ComponentRelationship{}).
		Where("component_id = ? AND component_type = ? AND related_material_id = ?",
			componentID, componentType, materialID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *componentRelationshipRepo) Delete(ctx context.Context, tx *gorm.DB, componentID uint, componentType types.ComponentType, materialID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("component_id = ? AND component_type = ? AND related_material_id = ?",
			componentID, componentType, materialID).
		Delete(&types.ComponentRelationship{}).Error
}

func (r *componentRelationshipRepo) DeleteByComponents(ctx context.Context, tx *gorm.DB, componentType types.ComponentType, componentIDs []uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(componentIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("component_type = ? AND component_id IN ?", componentType, componentIDs).
		Delete(&types.ComponentRelationship{}).Error
}

func (r *componentRelationshipRepo) DeleteByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("related_material_id = ?", materialID).
		Delete(&types.ComponentRelationship{}).Error
}
