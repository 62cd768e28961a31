package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/types"
)

type TrainingProgramRepo interface {
	Create(ctx context.Context, tx *gorm.DB, program *types.TrainingProgram) (*types.TrainingProgram, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.TrainingProgram, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.TrainingProgram, error)
	Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type trainingProgramRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrainingProgramRepo(db *gorm.DB, baseLog *logger.Logger) TrainingProgramRepo {
	return &trainingProgramRepo{db: db, log: baseLog.With("repo", "TrainingProgramRepo")}
}

func (r *trainingProgramRepo) Create(ctx context.Context, tx *gorm.DB, program *types.TrainingProgram) (*types.TrainingProgram, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(program).Error; err != nil {
		return nil, err
	}
	return program, nil
}

func (r *trainingProgramRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.TrainingProgram, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.TrainingProgram
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

func (r *trainingProgramRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.TrainingProgram, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.TrainingProgram
	if err := transaction.WithContext(ctx).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *trainingProgramRepo) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.TrainingProgram{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
