package app

import (
	"gorm.io/gorm"

	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/services"
)

type Services struct {
	Material     services.MaterialService
	Relationship services.RelationshipService
	Quiz         services.QuizService
	Progress     services.ProgressService
}

func wireServices(db *gorm.DB, log *logger.Logger, r Repos) Services {
	log.Info("Wiring services...")
	relationshipService := services.NewRelationshipService(db, log,
		r.Material, r.MaterialRelationship, r.ComponentRelationship,
		r.LearningPath, r.TrainingProgram)
	materialService := services.NewMaterialService(db, log,
		r.Material, r.ChecklistEntry, r.WorkflowStep, r.QuestionnaireEntry,
		r.VideoTimestamp, r.QuizQuestion, r.ImageAnnotation,
		r.MaterialRelationship, r.ComponentRelationship, r.UserScore,
		relationshipService)
	progressService := services.NewProgressService(db, log,
		r.UserScore, r.LearningPath, r.TrainingProgram, r.MaterialRelationship)
	quizService := services.NewQuizService(db, log,
		r.Material, r.QuizQuestion, r.UserScore, r.LearningPath,
		r.TrainingProgram, r.MaterialRelationship, progressService)

	return Services{
		Material:     materialService,
		Relationship: relationshipService,
		Quiz:         quizService,
		Progress:     progressService,
	}
}
