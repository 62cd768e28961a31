package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/types"
)

type UserScoreRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, row *types.UserMaterialScore) (*types.UserMaterialScore, error)
	GetByUserAndMaterial(ctx context.Context, tx *gorm.DB, userID uuid.UUID, materialID uint) (*types.UserMaterialScore, error)
	GetScoredMaterialIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, materialIDs []uint) ([]uint, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserMaterialScore, error)
	DeleteByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) error
}

type userScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserScoreRepo(db *gorm.DB, baseLog *logger.Logger) UserScoreRepo {
	return &userScoreRepo{db: db, log: baseLog.With("repo", "UserScoreRepo")}
}

// Upsert replaces the (user, material) record wholesale: the latest
// submission wins, per the last-writer-wins contract.
func (r *userScoreRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.UserMaterialScore) (*types.UserMaterialScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "material_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"data", "score", "progress", "program_id", "learning_path_id", "updated_at",
			}),
		}).
		Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *userScoreRepo) GetByUserAndMaterial(ctx context.Context, tx *gorm.DB, userID uuid.UUID, materialID uint) (*types.UserMaterialScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.UserMaterialScore
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND material_id = ?", userID, materialID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// GetScoredMaterialIDs returns the subset of materialIDs the user has any
// score record for. Feeds the progress calculation.
func (r *userScoreRepo) GetScoredMaterialIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, materialIDs []uint) ([]uint, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uint
	if len(materialIDs) == 0 {
		return ids, nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.UserMaterialScore{}).
		Where("user_id = ? AND material_id IN ?", userID, materialIDs).
		Pluck("material_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *userScoreRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserMaterialScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserMaterialScore
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("material_id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userScoreRepo) DeleteByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("material_id = ?", materialID).
		Delete(&types.UserMaterialScore{}).Error
}
