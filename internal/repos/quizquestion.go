package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/types"
)

// QuizQuestionRepo persists quiz questions together with their owned answer
// rows. Answers never outlive their question.
type QuizQuestionRepo interface {
	CreateWithAnswers(ctx context.Context, tx *gorm.DB, questions []types.QuizQuestion) ([]types.QuizQuestion, error)
	GetByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]types.QuizQuestion, error)
	GetIDsByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]uint, error)
	DeleteByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) error
}

type quizQuestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuizQuestionRepo {
	return &quizQuestionRepo{db: db, log: baseLog.With("repo", "QuizQuestionRepo")}
}

func (r *quizQuestionRepo) CreateWithAnswers(ctx context.Context, tx *gorm.DB, questions []types.QuizQuestion) ([]types.QuizQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	for i := range questions {
		answers := questions[i].Answers
		questions[i].Answers = nil
		if err := transaction.WithContext(ctx).Create(&questions[i]).Error; err != nil {
			return nil, err
		}
		for j := range answers {
			answers[j].ID = 0
			answers[j].QuestionID = questions[i].ID
		}
		if len(answers) > 0 {
			if err := transaction.WithContext(ctx).Create(&answers).Error; err != nil {
				return nil, err
			}
		}
		questions[i].Answers = answers
	}
	return questions, nil
}

func (r *quizQuestionRepo) GetByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]types.QuizQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var questions []types.QuizQuestion
	if err := transaction.WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("display_order ASC, id ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return questions, nil
	}

	questionIDs := make([]uint, 0, len(questions))
	for _, q := range questions {
		questionIDs = append(questionIDs, q.ID)
	}

	var answers []types.QuizAnswer
	if err := transaction.WithContext(ctx).
		Where("question_id IN ?", questionIDs).
		Order("display_order ASC, id ASC").
		Find(&answers).Error; err != nil {
		return nil, err
	}

	byQuestion := make(map[uint][]types.QuizAnswer, len(questions))
	for _, a := range answers {
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a)
	}
	for i := range questions {
		questions[i].Answers = byQuestion[questions[i].ID]
	}
	return questions, nil
}

func (r *quizQuestionRepo) GetIDsByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) ([]uint, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uint
	if err := transaction.WithContext(ctx).
		Model(&types.QuizQuestion{}).
		Where("material_id = ?", materialID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *quizQuestionRepo) DeleteByMaterialID(ctx context.Context, tx *gorm.DB, materialID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	questionIDs, err := r.GetIDsByMaterialID(ctx, transaction, materialID)
	if err != nil {
		return err
	}
	if len(questionIDs) > 0 {
		if err := transaction.WithContext(ctx).
			Where("question_id IN ?", questionIDs).
			Delete(&types.QuizAnswer{}).Error; err != nil {
			return err
		}
	}
	return transaction.WithContext(ctx).
		Where("material_id = ?", materialID).
		Delete(&types.QuizQuestion{}).Error
}
