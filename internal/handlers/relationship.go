package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xr50/training-asset-repository/internal/apierr"
	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/services"
	"github.com/xr50/training-asset-repository/internal/types"
)

type RelationshipHandler struct {
	log                 *logger.Logger
	relationshipService services.RelationshipService
	defaultDepth        int
}

func NewRelationshipHandler(log *logger.Logger, rsvc services.RelationshipService, defaultDepth int) *RelationshipHandler {
	return &RelationshipHandler{
		log:                 log.With("handler", "RelationshipHandler"),
		relationshipService: rsvc,
		defaultDepth:        defaultDepth,
	}
}

type assignRequest struct {
	RelatedID        uint   `json:"related_id"`
	RelationshipType string `json:"relationship_type"`
	DisplayOrder     *int   `json:"display_order"`
}

// POST /api/materials/:id/relationships
func (h *RelationshipHandler) Assign(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RelatedID == 0 {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, apierr.Validation("related_id is required"))
		return
	}
	edge, err := h.relationshipService.Assign(c.Request.Context(), id, req.RelatedID, req.RelationshipType, req.DisplayOrder)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondCreated(c, edge)
}

// DELETE /api/materials/:id/relationships/:relatedId
func (h *RelationshipHandler) Remove(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	relatedID, ok := idParam(c, "relatedId")
	if !ok {
		return
	}
	if err := h.relationshipService.Remove(c.Request.Context(), id, relatedID); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// GET /api/materials/:id/children
func (h *RelationshipHandler) GetChildren(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	refs, err := h.relationshipService.GetChildren(c.Request.Context(), id, c.Query("relationship_type"))
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, refs)
}

// GET /api/materials/:id/parents
func (h *RelationshipHandler) GetParents(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	refs, err := h.relationshipService.GetParents(c.Request.Context(), id, c.Query("relationship_type"))
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, refs)
}

// PUT /api/materials/:id/children/order
func (h *RelationshipHandler) Reorder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Order map[uint]int `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	if err := h.relationshipService.Reorder(c.Request.Context(), id, req.Order); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// GET /api/materials/:id/hierarchy
func (h *RelationshipHandler) GetHierarchy(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	depth := h.defaultDepth
	if raw := c.Query("depth"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			RespondError(c, http.StatusBadRequest, apierr.CodeValidation, apierr.Validation("invalid depth %q", raw))
			return
		}
		depth = parsed
	}
	tree, err := h.relationshipService.GetHierarchy(c.Request.Context(), id, depth)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, tree)
}

// POST /api/materials/:id/dependencies/:prerequisiteId
func (h *RelationshipHandler) CreateDependency(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	prereqID, ok := idParam(c, "prerequisiteId")
	if !ok {
		return
	}
	if err := h.relationshipService.CreateDependency(c.Request.Context(), id, prereqID); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondCreated(c, gin.H{"success": true})
}

// DELETE /api/materials/:id/dependencies/:prerequisiteId
func (h *RelationshipHandler) RemoveDependency(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	prereqID, ok := idParam(c, "prerequisiteId")
	if !ok {
		return
	}
	if err := h.relationshipService.RemoveDependency(c.Request.Context(), id, prereqID); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// GET /api/materials/:id/dependencies
func (h *RelationshipHandler) GetDependencies(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	refs, err := h.relationshipService.GetDependencies(c.Request.Context(), id)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, refs)
}

// POST /api/learning-paths/:id/materials/:materialId
func (h *RelationshipHandler) AssignToLearningPath(c *gin.Context) {
	pathID, ok := idParam(c, "id")
	if !ok {
		return
	}
	materialID, ok := idParam(c, "materialId")
	if !ok {
		return
	}
	if err := h.relationshipService.AssignToLearningPath(c.Request.Context(), materialID, pathID, "", nil); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondCreated(c, gin.H{"success": true})
}

// DELETE /api/learning-paths/:id/materials/:materialId
func (h *RelationshipHandler) RemoveFromLearningPath(c *gin.Context) {
	pathID, ok := idParam(c, "id")
	if !ok {
		return
	}
	materialID, ok := idParam(c, "materialId")
	if !ok {
		return
	}
	if err := h.relationshipService.RemoveFromLearningPath(c.Request.Context(), materialID, pathID); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// GET /api/learning-paths/:id/materials
func (h *RelationshipHandler) GetLearningPathMaterials(c *gin.Context) {
	pathID, ok := idParam(c, "id")
	if !ok {
		return
	}
	ids, err := h.relationshipService.GetLearningPathMaterialIDs(c.Request.Context(), pathID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"material_ids": ids})
}

// POST /api/training-programs/:id/materials/:materialId
func (h *RelationshipHandler) AssignToTrainingProgram(c *gin.Context) {
	programID, ok := idParam(c, "id")
	if !ok {
		return
	}
	materialID, ok := idParam(c, "materialId")
	if !ok {
		return
	}
	if err := h.relationshipService.AssignToTrainingProgram(c.Request.Context(), materialID, programID, "", nil); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondCreated(c, gin.H{"success": true})
}

// DELETE /api/training-programs/:id/materials/:materialId
func (h *RelationshipHandler) RemoveFromTrainingProgram(c *gin.Context) {
	programID, ok := idParam(c, "id")
	if !ok {
		return
	}
	materialID, ok := idParam(c, "materialId")
	if !ok {
		return
	}
	if err := h.relationshipService.RemoveFromTrainingProgram(c.Request.Context(), materialID, programID); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// GET /api/training-programs/:id/materials
func (h *RelationshipHandler) GetTrainingProgramMaterials(c *gin.Context) {
	programID, ok := idParam(c, "id")
	if !ok {
		return
	}
	ids, err := h.relationshipService.GetTrainingProgramMaterialIDs(c.Request.Context(), programID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"material_ids": ids})
}

// POST /api/components/:componentType/:id/materials/:materialId
func (h *RelationshipHandler) AssignToComponent(c *gin.Context) {
	componentID, ok := idParam(c, "id")
	if !ok {
		return
	}
	materialID, ok := idParam(c, "materialId")
	if !ok {
		return
	}
	componentType := types.ComponentType(c.Param("componentType"))
	edge, err := h.relationshipService.AssignToComponent(c.Request.Context(), componentID, componentType, materialID, "", nil)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondCreated(c, edge)
}

// DELETE /api/components/:componentType/:id/materials/:materialId
func (h *RelationshipHandler) RemoveFromComponent(c *gin.Context) {
	componentID, ok := idParam(c, "id")
	if !ok {
		return
	}
	materialID, ok := idParam(c, "materialId")
	if !ok {
		return
	}
	componentType := types.ComponentType(c.Param("componentType"))
	if err := h.relationshipService.RemoveFromComponent(c.Request.Context(), componentID, componentType, materialID); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// GET /api/components/:componentType/:id/materials
func (h *RelationshipHandler) GetComponentMaterials(c *gin.Context) {
	componentID, ok := idParam(c, "id")
	if !ok {
		return
	}
	componentType := types.ComponentType(c.Param("componentType"))
	refs, err := h.relationshipService.GetComponentMaterials(c.Request.Context(), componentID, componentType)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, refs)
}
