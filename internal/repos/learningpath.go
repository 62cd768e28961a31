package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/types"
)

type LearningPathRepo interface {
	Create(ctx context.Context, tx *gorm.DB, path *types.LearningPath) (*types.LearningPath, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.LearningPath, error)
	GetByProgramID(ctx context.Context, tx *gorm.DB, programID uint) ([]*types.LearningPath, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.LearningPath, error)
	Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type learningPathRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningPathRepo(db *gorm.DB, baseLog *logger.Logger) LearningPathRepo {
	return &learningPathRepo{db: db, log: baseLog.With("repo", "LearningPathRepo")}
}

func (r *learningPathRepo) Create(ctx context.Context, tx *gorm.DB, path *types.LearningPath) (*types.LearningPath, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(path).Error; err != nil {
		return nil, err
	}
	return path, nil
}

func (r *learningPathRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.LearningPath, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.LearningPath
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

func (r *learningPathRepo) GetByProgramID(ctx context.Context, tx *gorm.DB, programID uint) ([]*types.LearningPath, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LearningPath
	if err := transaction.WithContext(ctx).
		Where("program_id = ?", programID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *learningPathRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.LearningPath, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LearningPath
	if err := transaction.WithContext(ctx).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *learningPathRepo) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.LearningPath{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
