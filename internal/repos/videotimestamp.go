package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/types"
)

type VideoTimestampRepo interface {
	Create(ctx context.Context, tx *gorm.DB, timestamps []types.VideoTimestamp) ([]types.VideoTimestamp, error)
	GetByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]types.VideoTimestamp, error)
	GetIDsByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]uint, error)
	DeleteByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) error
}

type videoTimestampRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoTimestampRepo(db *gorm.DB, baseLog *logger.Logger) VideoTimestampRepo {
	return &videoTimestampRepo{db: db, log: baseLog.With("repo", "VideoTimestampRepo")}
}

func (r *videoTimestampRepo) Create(ctx context.Context, tx *gorm.DB, timestamps []types.VideoTimestamp) ([]types.VideoTimestamp, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(timestamps) == 0 {
		return timestamps, nil
	}

	if err := transaction.WithContext(ctx).Create(&timestamps).Error; err != nil {
		return nil, err
	}
	return timestamps, nil
}

func (r *videoTimestampRepo) GetByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]types.VideoTimestamp, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []types.VideoTimestamp
	if err := transaction.WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("time_seconds ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *videoTimestampRepo) GetIDsByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]uint, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uint
	if err := transaction.WithContext(ctx).
		Model(&types.VideoTimestamp{}).
		Where("material_id = ?", materialID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *videoTimestampRepo) DeleteByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("material_id = ?", materialID).
		Delete(&types.VideoTimestamp{}).Error
}
