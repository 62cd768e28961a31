package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/xr50/training-asset-repository/internal/handlers"
	"github.com/xr50/training-asset-repository/internal/middleware"
)

type RouterConfig struct {
	AllowedOrigins      []string
	IdentityMiddleware  *middleware.IdentityMiddleware
	MaterialHandler     *handlers.MaterialHandler
	RelationshipHandler *handlers.RelationshipHandler
	QuizHandler         *handlers.QuizHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.IdentityMiddleware.RequireIdentity())

	// Materials
	api.POST("/materials", cfg.MaterialHandler.Create)
	api.GET("/materials", cfg.MaterialHandler.List)
	api.GET("/materials/:id", cfg.MaterialHandler.Get)
	api.PUT("/materials/:id", cfg.MaterialHandler.Update)
	api.DELETE("/materials/:id", cfg.MaterialHandler.Delete)
	api.PUT("/materials/:id/asset", cfg.MaterialHandler.AssignAsset)
	api.GET("/materials/:id/asset", cfg.MaterialHandler.GetAsset)
	api.DELETE("/materials/:id/asset", cfg.MaterialHandler.RemoveAsset)

	// Material graph
	api.POST("/materials/:id/relationships", cfg.RelationshipHandler.Assign)
	api.DELETE("/materials/:id/relationships/:relatedId", cfg.RelationshipHandler.Remove)
	api.GET("/materials/:id/children", cfg.RelationshipHandler.GetChildren)
	api.GET("/materials/:id/parents", cfg.RelationshipHandler.GetParents)
	api.PUT("/materials/:id/children/order", cfg.RelationshipHandler.Reorder)
	api.GET("/materials/:id/hierarchy", cfg.RelationshipHandler.GetHierarchy)
	api.POST("/materials/:id/dependencies/:prerequisiteId", cfg.RelationshipHandler.CreateDependency)
	api.DELETE("/materials/:id/dependencies/:prerequisiteId", cfg.RelationshipHandler.RemoveDependency)
	api.GET("/materials/:id/dependencies", cfg.RelationshipHandler.GetDependencies)

	// Containers
	api.POST("/learning-paths/:id/materials/:materialId", cfg.RelationshipHandler.AssignToLearningPath)
	api.DELETE("/learning-paths/:id/materials/:materialId", cfg.RelationshipHandler.RemoveFromLearningPath)
	api.GET("/learning-paths/:id/materials", cfg.RelationshipHandler.GetLearningPathMaterials)
	api.POST("/training-programs/:id/materials/:materialId", cfg.RelationshipHandler.AssignToTrainingProgram)
	api.DELETE("/training-programs/:id/materials/:materialId", cfg.RelationshipHandler.RemoveFromTrainingProgram)
	api.GET("/training-programs/:id/materials", cfg.RelationshipHandler.GetTrainingProgramMaterials)

	// Subcomponent links
	api.POST("/components/:componentType/:id/materials/:materialId", cfg.RelationshipHandler.AssignToComponent)
	api.DELETE("/components/:componentType/:id/materials/:materialId", cfg.RelationshipHandler.RemoveFromComponent)
	api.GET("/components/:componentType/:id/materials", cfg.RelationshipHandler.GetComponentMaterials)

	// Quizzes and progress
	api.POST("/materials/:id/submit", cfg.QuizHandler.Submit)
	api.POST("/materials/:id/complete", cfg.QuizHandler.MarkComplete)
	api.GET("/training-programs/:id/progress", cfg.QuizHandler.ProgramProgress)
	api.GET("/learning-paths/:id/progress", cfg.QuizHandler.LearningPathProgress)

	return router
}
