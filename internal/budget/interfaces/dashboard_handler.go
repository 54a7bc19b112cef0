package interfaces

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/mwisnie/TravelBudget/internal/budget/application"
)

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context, userID string, now time.Time) (*application.Dashboard, error)
}

type DashboardHandler struct {
	service      DashboardServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewDashboardHandler(
	service DashboardServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *DashboardHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &DashboardHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	dashboard, err := h.service.GetDashboard(r.Context(), userID, time.Now())
	if err != nil {
		log.Printf("Error assembling dashboard: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to assemble dashboard")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Dashboard retrieved successfully.",
		"data":    dashboard,
	})
}
