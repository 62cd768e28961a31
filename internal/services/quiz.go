package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/xr50/training-asset-repository/internal/apierr"
	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/repos"
	"github.com/xr50/training-asset-repository/internal/types"
)

// QuizService grades submitted answers against a quiz definition and
// persists the per-user result. Grading is deterministic: the same quiz and
// submission always produce the same record.
type QuizService interface {
	EvaluateQuiz(ctx context.Context, quiz *types.Material, submission *types.QuizSubmission) (*types.EvaluationRecord, error)
	Submit(ctx context.Context, userID uuid.UUID, materialID uint, submission *types.QuizSubmission) (*types.QuizSubmissionResponse, error)
}

type quizService struct {
	db            *gorm.DB
	log           *logger.Logger
	materials     repos.MaterialRepo
	quizQuestions repos.QuizQuestionRepo
	userScores    repos.UserScoreRepo
	learningPaths repos.LearningPathRepo
	programs      repos.TrainingProgramRepo
	materialRels  repos.MaterialRelationshipRepo
	progress      ProgressService
}

func NewQuizService(
	db *gorm.DB,
	baseLog *logger.Logger,
	materials repos.MaterialRepo,
	quizQuestions repos.QuizQuestionRepo,
	userScores repos.UserScoreRepo,
	learningPaths repos.LearningPathRepo,
	programs repos.TrainingProgramRepo,
	materialRels repos.MaterialRelationshipRepo,
	progress ProgressService,
) QuizService {
	return &quizService{
		db:            db,
		log:           baseLog.With("service", "QuizService"),
		materials:     materials,
		quizQuestions: quizQuestions,
		userScores:    userScores,
		learningPaths: learningPaths,
		programs:      programs,
		materialRels:  materialRels,
		progress:      progress,
	}
}

// validateQuizQuestions mirrors the structural rules the store enforces on
// quiz materials: boolean questions carry exactly two answers, choice and
// checkboxes at least two, scale questions a scale configuration.
func validateQuizQuestions(questions []types.QuizQuestion) error {
	for i := range questions {
		q := &questions[i]
		switch q.QuestionType {
		case types.QuestionTypeBoolean:
			if len(q.Answers) != 2 {
				return apierr.Validation("boolean question %q must have exactly two answers, got %d", q.Text, len(q.Answers))
			}
			if countCorrect(q.Answers) == 0 {
				return apierr.Validation("boolean question %q has no correct answer", q.Text)
			}
		case types.QuestionTypeChoice, types.QuestionTypeCheckboxes:
			if len(q.Answers) < 2 {
				return apierr.Validation("%s question %q must have at least two answers, got %d", q.QuestionType, q.Text, len(q.Answers))
			}
			if countCorrect(q.Answers) == 0 {
				return apierr.Validation("%s question %q has no correct answer", q.QuestionType, q.Text)
			}
		case types.QuestionTypeScale:
			if q.ScaleMin == nil || q.ScaleMax == nil {
				return apierr.Validation("scale question %q is missing its scale configuration", q.Text)
			}
		case types.QuestionTypeText:
		default:
			return apierr.Validation("unknown question type %q", q.QuestionType)
		}
	}
	return nil
}

func countCorrect(answers []types.QuizAnswer) int {
	n := 0
	for _, a := range answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

// evaluateQuestion grades one submitted answer. Boolean, choice and
// checkboxes award full points on exact set equality of answer ids and zero
// otherwise — no partial credit. Scale and text record the submission
// verbatim with zero points and count as correct. An unrecognized type is a
// logged anomaly worth zero, marked incorrect.
func evaluateQuestion(log *logger.Logger, question *types.QuizQuestion, submitted types.SubmittedAnswer) (float64, bool) {
	switch question.QuestionType {
	case types.QuestionTypeBoolean, types.QuestionTypeChoice, types.QuestionTypeCheckboxes:
		correct := make(map[uint]bool)
		for _, a := range question.Answers {
			if a.IsCorrect {
				correct[a.ID] = true
			}
		}
		submittedSet := make(map[uint]bool, len(submitted.AnswerIDs))
		for _, id := range submitted.AnswerIDs {
			submittedSet[id] = true
		}
		if len(submittedSet) != len(correct) {
			return 0, false
		}
		for id := range correct {
			if !submittedSet[id] {
				return 0, false
			}
		}
		return question.Score, true
	case types.QuestionTypeScale, types.QuestionTypeText:
		// Not auto-graded; the submission is recorded as-is.
		return 0, true
	default:
		log.Warn("Question has unrecognized type, awarding zero",
			"question_id", question.ID, "question_type", question.QuestionType)
		return 0, false
	}
}

// EvaluateQuiz grades every submitted question-answer against the quiz.
// Answers referencing a question outside the quiz are skipped with a
// warning; they never abort the submission.
func (s *quizService) EvaluateQuiz(ctx context.Context, quiz *types.Material, submission *types.QuizSubmission) (*types.EvaluationRecord, error) {
	if quiz == nil || quiz.Type != types.MaterialTypeQuiz {
		return nil, apierr.TypeMismatch("material is not a quiz")
	}
	if submission == nil {
		return nil, apierr.Validation("submission payload is required")
	}

	questions := quiz.Questions
	if len(questions) == 0 {
		loaded, err := s.quizQuestions.GetByMaterialID(ctx, nil, quiz.ID)
		if err != nil {
			return nil, apierr.Store(err)
		}
		questions = loaded
	}
	byID := make(map[uint]*types.QuizQuestion, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	record := &types.EvaluationRecord{MaterialID: quiz.ID}
	for _, sq := range submission.Questions {
		question, ok := byID[sq.QuestionID]
		if !ok {
			s.log.Warn("Submission references a question outside the quiz, skipping",
				"material_id", quiz.ID, "question_id", sq.QuestionID)
			continue
		}
		awarded, correct := evaluateQuestion(s.log, question, sq.Answer)
		record.Results = append(record.Results, types.QuestionResult{
			QuestionID:   sq.QuestionID,
			ScoreAwarded: awarded,
			Correct:      correct,
			AnswerIDs:    sq.Answer.AnswerIDs,
			Value:        sq.Answer.Value,
			Text:         sq.Answer.Text,
		})
		record.TotalScore += awarded
	}
	return record, nil
}

// Submit grades a quiz submission, persists the user's score record, and
// recomputes the affected container progress numbers.
func (s *quizService) Submit(ctx context.Context, userID uuid.UUID, materialID uint, submission *types.QuizSubmission) (*types.QuizSubmissionResponse, error) {
	if userID == uuid.Nil {
		return nil, apierr.Validation("caller identity is required")
	}

	quiz, err := s.materials.GetByID(ctx, nil, materialID)
	if err != nil {
		return nil, apierr.Store(err)
	}
	if quiz == nil {
		return nil, apierr.NotFound("material %d not found", materialID)
	}
	if quiz.Type != types.MaterialTypeQuiz {
		return nil, apierr.TypeMismatch("material %d is %q, not a quiz", materialID, quiz.Type)
	}

	record, err := s.EvaluateQuiz(ctx, quiz, submission)
	if err != nil {
		return nil, err
	}

	programID := submission.ProgramID
	pathID, err := s.resolveLearningPath(ctx, materialID, programID)
	if err != nil {
		return nil, err
	}

	progressValue, pathProgress, err := s.progress.ForSubmission(ctx, userID, materialID, programID, pathID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, apierr.Store(err)
	}
	storedProgress := 100
	if progressValue != nil {
		storedProgress = *progressValue
	} else {
		progressValue = &storedProgress
	}
	row := &types.UserMaterialScore{
		UserID:         userID,
		MaterialID:     materialID,
		Data:           datatypes.JSON(data),
		Score:          record.TotalScore,
		Progress:       storedProgress,
		ProgramID:      programID,
		LearningPathID: pathID,
	}
	if _, err := s.userScores.Upsert(ctx, nil, row); err != nil {
		return nil, apierr.Store(err)
	}

	s.log.Info("Recorded quiz submission",
		"user_id", userID, "material_id", materialID, "score", record.TotalScore)
	return &types.QuizSubmissionResponse{
		Success:              true,
		MaterialID:           materialID,
		ProgramID:            programID,
		LearningPathID:       pathID,
		Score:                record.TotalScore,
		Progress:             progressValue,
		LearningPathProgress: pathProgress,
	}, nil
}

// resolveLearningPath attributes the submission to the first learning path
// of the program that lists the material. No program, no attribution.
func (s *quizService) resolveLearningPath(ctx context.Context, materialID uint, programID *uint) (*uint, error) {
	if programID == nil {
		return nil, nil
	}
	exists, err := s.programs.Exists(ctx, nil, *programID)
	if err != nil {
		return nil, apierr.Store(err)
	}
	if !exists {
		return nil, apierr.NotFound("training program %d not found", *programID)
	}

	paths, err := s.learningPaths.GetByProgramID(ctx, nil, *programID)
	if err != nil {
		return nil, apierr.Store(err)
	}
	for _, path := range paths {
		ids, err := s.materialRels.GetAssignedMaterialIDs(ctx, nil, path.ID, types.RelatedEntityLearningPath)
		if err != nil {
			return nil, apierr.Store(err)
		}
		for _, id := range ids {
			if id == materialID {
				pathID := path.ID
				return &pathID, nil
			}
		}
	}
	return nil, nil
}
