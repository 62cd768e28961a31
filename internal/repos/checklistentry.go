package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/types"
)

type ChecklistEntryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entries []types.ChecklistEntry) ([]types.ChecklistEntry, error)
	GetByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]types.ChecklistEntry, error)
	GetIDsByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]uint, error)
	DeleteByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) error
}

type checklistEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChecklistEntryRepo(db *gorm.DB, baseLog *logger.Logger) ChecklistEntryRepo {
	return &checklistEntryRepo{db: db, log: baseLog.With("repo", "ChecklistEntryRepo")}
}

func (r *checklistEntryRepo) Create(ctx context.Context, tx *gorm.DB, entries []types.ChecklistEntry) ([]types.ChecklistEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(entries) == 0 {
		return entries, nil
	}

	if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *checklistEntryRepo) GetByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]types.ChecklistEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []types.ChecklistEntry
	if err := transaction.WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("display_order ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *checklistEntryRepo) GetIDsByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]uint, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uint
	if err := transaction.WithContext(ctx).
		Model(&types.ChecklistEntry{}).
		Where("material_id = ?", materialID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *checklistEntryRepo) DeleteByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("material_id = ?", materialID).
		Delete(&types.ChecklistEntry{}).Error
}
