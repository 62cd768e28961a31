package app

import (
	"gorm.io/gorm"

	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/repos"
)

type Repos struct {
	Material              repos.MaterialRepo
	ChecklistEntry        repos.ChecklistEntryRepo
	WorkflowStep          repos.WorkflowStepRepo
	QuestionnaireEntry    repos.QuestionnaireEntryRepo
	VideoTimestamp        repos.VideoTimestampRepo
	QuizQuestion          repos.QuizQuestionRepo
	ImageAnnotation       repos.ImageAnnotationRepo
	MaterialRelationship  repos.MaterialRelationshipRepo
	ComponentRelationship repos.ComponentRelationshipRepo
	UserScore             repos.UserScoreRepo
	LearningPath          repos.LearningPathRepo
	TrainingProgram       repos.TrainingProgramRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Material:              repos.NewMaterialRepo(db, log),
		ChecklistEntry:        repos.NewChecklistEntryRepo(db, log),
		WorkflowStep:          repos.NewWorkflowStepRepo(db, log),
		QuestionnaireEntry:    repos.NewQuestionnaireEntryRepo(db, log),
		VideoTimestamp:        repos.NewVideoTimestampRepo(db, log),
		QuizQuestion:          repos.NewQuizQuestionRepo(db, log),
		ImageAnnotation:       repos.NewImageAnnotationRepo(db, log),
		MaterialRelationship:  repos.NewMaterialRelationshipRepo(db, log),
		ComponentRelationship: repos.NewComponentRelationshipRepo(db, log),
		UserScore:             repos.NewUserScoreRepo(db, log),
		LearningPath:          repos.NewLearningPathRepo(db, log),
		TrainingProgram:       repos.NewTrainingProgramRepo(db, log),
	}
}
