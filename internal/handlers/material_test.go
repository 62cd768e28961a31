package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/services"
	"github.com/xr50/training-asset-repository/internal/types"
)

// updateRecorder satisfies MaterialService through embedding; only Update is
// implemented, so any other call panics and fails the test loudly.
type updateRecorder struct {
	services.MaterialService
	called bool
}

func (r *updateRecorder) Update(ctx context.Context, m *types.Material) (*types.Material, error) {
	r.called = true
	return m, nil
}

func TestUpdateRejectsMismatchedPayloadID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &updateRecorder{}
	h := NewMaterialHandler(logger.NewNop(), svc)

	router := gin.New()
	router.PUT("/api/materials/:id", h.Update)

	body := `{"id": 9, "name": "Mismatch", "type": "default"}`
	req := httptest.NewRequest(http.MethodPut, "/api/materials/4", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
	if svc.called {
		t.Fatalf("mismatched id reached the service")
	}
}

func TestUpdateAdoptsRouteID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &updateRecorder{}
	h := NewMaterialHandler(logger.NewNop(), svc)

	router := gin.New()
	router.PUT("/api/materials/:id", h.Update)

	body := `{"name": "No payload id", "type": "default"}`
	req := httptest.NewRequest(http.MethodPut, "/api/materials/4", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !svc.called {
		t.Fatalf("update never reached the service")
	}
}
