package app

import (
	"github.com/xr50/training-asset-repository/internal/handlers"
	"github.com/xr50/training-asset-repository/internal/logger"
)

type Handlers struct {
	Material     *handlers.MaterialHandler
	Relationship *handlers.RelationshipHandler
	Quiz         *handlers.QuizHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Material:     handlers.NewMaterialHandler(log, services.Material),
		Relationship: handlers.NewRelationshipHandler(log, services.Relationship, cfg.HierarchyDepth),
		Quiz:         handlers.NewQuizHandler(log, services.Quiz, services.Progress),
	}
}
