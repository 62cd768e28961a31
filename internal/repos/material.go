package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/types"
)

type MaterialRepo interface {
	Create(ctx context.Context, tx *gorm.DB, material *types.Material) (*types.Material, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Material, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Material, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Material, error)
	ListByType(ctx context.Context, tx *gorm.DB, materialType types.MaterialType) ([]*types.Material, error)
	Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	UpdateAssetID(ctx context.Context, tx *gorm.DB, id uint, assetID *uint) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uint) error
}

type materialRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMaterialRepo(db *gorm.DB, baseLog *logger.Logger) MaterialRepo {
	return &materialRepo{db: db, log: baseLog.With("repo", "MaterialRepo")}
}

func (r *materialRepo) Create(ctx context.Context, tx *gorm.DB, material *types.Material) (*types.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(material).Error; err != nil {
		return nil, err
	}
	return material, nil
}

func (r *materialRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Material
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *materialRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Material
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *materialRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Material
	if err := transaction.WithContext(ctx).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *materialRepo) ListByType(ctx context.Context, tx *gorm.DB, materialType types.MaterialType) ([]*types.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Material
	if err := transaction.WithContext(ctx).
		Where("type = ?", materialType).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *materialRepo) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Material{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *materialRepo) UpdateAssetID(ctx context.Context, tx *gorm.DB, id uint, assetID *uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Material{}).
		Where("id = ?", id).
		Update("asset_id", assetID).Error
}

func (r *materialRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Material{}).Error
}
