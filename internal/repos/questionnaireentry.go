package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/types"
)

type QuestionnaireEntryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entries []types.QuestionnaireEntry) ([]types.QuestionnaireEntry, error)
	GetByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]types.QuestionnaireEntry, error)
	GetIDsByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]uint, error)
	DeleteByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) error
}

type questionnaireEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionnaireEntryRepo(db *gorm.DB, baseLog *logger.Logger) QuestionnaireEntryRepo {
	return &questionnaireEntryRepo{db: db, log: baseLog.With("repo", "QuestionnaireEntryRepo")}
}

func (r *questionnaireEntryRepo) Create(ctx context.Context, tx *gorm.DB, entries []types.QuestionnaireEntry) ([]types.QuestionnaireEntry, error) {
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

func (r *questionnaireEntryRepo) GetByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]types.QuestionnaireEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []types.QuestionnaireEntry
	if err := transaction.WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("display_order ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *questionnaireEntryRepo) GetIDsByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]uint, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uint
	if err := transaction.WithContext(ctx).
		Model(&types.QuestionnaireEntry{}).
		Where("material_id = ?", materialID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *questionnaireEntryRepo) DeleteByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("material_id = ?", materialID).
		Delete(&types.QuestionnaireEntry{}).Error
}
