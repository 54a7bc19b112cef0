package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mwisnie/TravelBudget/internal/budget/application"
	"github.com/mwisnie/TravelBudget/internal/budget/domain"
	budgetErrors "github.com/mwisnie/TravelBudget/internal/budget/errors"
)

type GoalServiceInterface interface {
	CreateGoal(ctx context.Context, goal *domain.SavingsGoal) error
	GetUserGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error)
	UpdateGoal(ctx context.Context, userID string, goal *domain.SavingsGoal) error
	DeleteGoal(ctx context.Context, userID string, goalID uuid.UUID) error
	Contribute(ctx context.Context, userID string, goalID uuid.UUID, amount decimal.Decimal) (*domain.SavingsGoal, error)
}

type GoalHandler struct {
	service      GoalServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewGoalHandler(
	service GoalServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *GoalHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &GoalHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type goalRequest struct {
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    string          `json:"target_date"`
}

func (h *GoalHandler) parseGoal(req goalRequest) (*domain.SavingsGoal, error) {
	targetDate, err := time.Parse("2006-01-02", req.TargetDate)
	if err != nil {
		return nil, budgetErrors.NewValidationError("Target date must be in YYYY-MM-DD format")
	}
	return &domain.SavingsGoal{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		TargetDate:    targetDate,
	}, nil
}

func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.parseGoal(req)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	goal.UserID = userID

	if err := h.service.CreateGoal(r.Context(), goal); err != nil {
		if budgetErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error during goal creation: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create savings goal")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Savings goal successfully created.",
		"data":    h.goalView(*goal, time.Now()),
	})
}

// GetUserGoals lists goals ordered by target date, each with its projection
// computed against the current clock.
func (h *GoalHandler) GetUserGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	goals, err := h.service.GetUserGoals(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve savings goals")
		return
	}

	now := time.Now()
	views := make([]application.GoalView, 0, len(goals))
	for _, goal := range goals {
		views = append(views, h.goalView(goal, now))
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Savings goals retrieved successfully.",
		"data":    views,
	})
}

func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	goalID, err := uuid.Parse(r.PathValue("goalID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid goal ID")
		return
	}
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.parseGoal(req)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	goal.ID = goalID

	if err := h.service.UpdateGoal(r.Context(), userID, goal); err != nil {
		h.respondServiceError(w, err, "Failed to update savings goal")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Savings goal successfully updated.",
		"data":    h.goalView(*goal, time.Now()),
	})
}

func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	goalID, err := uuid.Parse(r.PathValue("goalID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid goal ID")
		return
	}

	if err := h.service.DeleteGoal(r.Context(), userID, goalID); err != nil {
		h.respondServiceError(w, err, "Failed to delete savings goal")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Savings goal successfully deleted.",
	})
}

// Contribute applies one top-up event. Two identical requests add twice.
func (h *GoalHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	goalID, err := uuid.Parse(r.PathValue("goalID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid goal ID")
		return
	}
	var req struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.service.Contribute(r.Context(), userID, goalID, req.Amount)
	if err != nil {
		h.respondServiceError(w, err, "Failed to add contribution")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Contribution successfully added.",
		"data":    h.goalView(*goal, time.Now()),
	})
}

func (h *GoalHandler) goalView(goal domain.SavingsGoal, now time.Time) application.GoalView {
	return application.GoalView{
		SavingsGoal: goal,
		Projection:  application.ProjectGoal(goal, now),
	}
}

func (h *GoalHandler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case budgetErrors.IsValidationError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, budgetErrors.ErrRecordNotFound):
		h.respondError(w, http.StatusNotFound, "Savings goal not found")
	case errors.Is(err, budgetErrors.ErrUnauthorizedAccess):
		h.respondError(w, http.StatusForbidden, "You do not own this goal")
	default:
		log.Printf("Goal handler error: %v", err)
		h.respondError(w, http.StatusInternalServerError, fallback)
	}
}
