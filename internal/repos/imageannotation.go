package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/types"
)

type ImageAnnotationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, annotations []types.ImageAnnotation) ([]types.ImageAnnotation, error)
	GetByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]types.ImageAnnotation, error)
	GetIDsByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]uint, error)
	DeleteByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) error
}

type imageAnnotationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewImageAnnotationRepo(db *gorm.DB, baseLog *logger.Logger) ImageAnnotationRepo {
	return &imageAnnotationRepo{db: db, log: baseLog.With("repo", "ImageAnnotationRepo")}
}

func (r *imageAnnotationRepo) Create(ctx context.Context, tx *gorm.DB, annotations []types.ImageAnnotation) ([]types.ImageAnnotation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(annotations) == 0 {
		return annotations, nil
	}

	if err := transaction.WithContext(ctx).Create(&annotations).Error; err != nil {
		return nil, err
	}
	return annotations, nil
}

func (r *imageAnnotationRepo) GetByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]types.ImageAnnotation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []types.ImageAnnotation
	if err := transaction.WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("display_order ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *imageAnnotationRepo) GetIDsByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]uint, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uint
	if err := transaction.WithContext(ctx).
		Model(&types.ImageAnnotation{}).
		Where("material_id = ?", materialID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *imageAnnotationRepo) DeleteByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("material_id = ?", materialID).
		Delete(&types.ImageAnnotation{}).Error
}
