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

type MaterialHandler struct {
	log             *logger.Logger
	materialService services.MaterialService
}

func NewMaterialHandler(log *logger.Logger, msvc services.MaterialService) *MaterialHandler {
	return &MaterialHandler{
		log:             log.With("handler", "MaterialHandler"),
		materialService: msvc,
	}
}

func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, apierr.Validation("invalid %s %q", name, raw))
		return 0, false
	}
	return uint(id), true
}

// POST /api/materials
// Create a material together with its nested subcomponents.
func (h *MaterialHandler) Create(c *gin.Context) {
	var m types.Material
	if err := c.ShouldBindJSON(&m); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	created, err := h.materialService.CreateComplete(c.Request.Context(), &m)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondCreated(c, created)
}

// GET /api/materials
// Optionally filtered by ?type=.
func (h *MaterialHandler) List(c *gin.Context) {
	if t := c.Query("type"); t != "" {
		results, err := h.materialService.ListOfType(c.Request.Context(), types.MaterialType(t))
		if err != nil {
			RespondAPIError(c, err)
			return
		}
		RespondOK(c, results)
		return
	}
	results, err := h.materialService.ListAll(c.Request.Context())
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, results)
}

// GET /api/materials/:id
func (h *MaterialHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	m, err := h.materialService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, m)
}

// PUT /api/materials/:id
// Full-state replacement under the same id.
func (h *MaterialHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var m types.Material
	if err := c.ShouldBindJSON(&m); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	if m.ID != 0 && m.ID != id {
		RespondAPIError(c, apierr.Validation("payload id %d does not match route id %d", m.ID, id))
		return
	}
	m.ID = id
	updated, err := h.materialService.Update(c.Request.Context(), &m)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, updated)
}

// DELETE /api/materials/:id
func (h *MaterialHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.materialService.Delete(c.Request.Context(), id); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// PUT /api/materials/:id/asset
func (h *MaterialHandler) AssignAsset(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		AssetID uint `json:"asset_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.AssetID == 0 {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, apierr.Validation("asset_id is required"))
		return
	}
	assigned, err := h.materialService.AssignAsset(c.Request.Context(), id, req.AssetID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"assigned": assigned})
}

// DELETE /api/materials/:id/asset
func (h *MaterialHandler) RemoveAsset(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	removed, err := h.materialService.RemoveAsset(c.Request.Context(), id)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"removed": removed})
}

// GET /api/materials/:id/asset
func (h *MaterialHandler) GetAsset(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	assetID, err := h.materialService.GetAssetID(c.Request.Context(), id)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"asset_id": assetID})
}
