package app

import (
	"github.com/gin-gonic/gin"

	"github.com/xr50/training-asset-repository/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AllowedOrigins:      cfg.AllowedOrigins,
		IdentityMiddleware:  middleware.Identity,
		MaterialHandler:     handlers.Material,
		RelationshipHandler: handlers.Relationship,
		QuizHandler:         handlers.Quiz,
	})
}
