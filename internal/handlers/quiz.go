package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xr50/training-asset-repository/internal/apierr"
	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/requestdata"
	"github.com/xr50/training-asset-repository/internal/services"
	"github.com/xr50/training-asset-repository/internal/types"
)

type QuizHandler struct {
	log             *logger.Logger
	quizService     services.QuizService
	progressService services.ProgressService
}

func NewQuizHandler(log *logger.Logger, qsvc services.QuizService, psvc services.ProgressService) *QuizHandler {
	return &QuizHandler{
		log:             log.With("handler", "QuizHandler"),
		quizService:     qsvc,
		progressService: psvc,
	}
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, apierr.CodeValidation, apierr.Validation("caller identity is required"))
		return uuid.Nil, false
	}
	return userID, true
}

// POST /api/materials/:id/submit
// Grade a quiz attempt and record the result for the caller.
func (h *QuizHandler) Submit(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var submission types.QuizSubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	resp, err := h.quizService.Submit(c.Request.Context(), userID, id, &submission)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, resp)
}

// POST /api/materials/:id/complete
// Mark a non-quiz material completed for the caller.
func (h *QuizHandler) MarkComplete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req struct {
		ProgramID      *uint `json:"program_id"`
		LearningPathID *uint `json:"learning_path_id"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
			return
		}
	}
	row, err := h.progressService.MarkComplete(c.Request.Context(), userID, id, req.ProgramID, req.LearningPathID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, row)
}

// GET /api/training-programs/:id/progress
func (h *QuizHandler) ProgramProgress(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	p, err := h.progressService.CalculateProgramProgress(c.Request.Context(), userID, id, nil)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"progress": p})
}

// GET /api/learning-paths/:id/progress
func (h *QuizHandler) LearningPathProgress(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	p, err := h.progressService.CalculateLearningPathProgress(c.Request.Context(), userID, id, nil)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"progress": p})
}
