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
	"github.com/mwisnie/TravelBudget/internal/budget/domain"
	budgetErrors "github.com/mwisnie/TravelBudget/internal/budget/errors"
)

type ExpenseServiceInterface interface {
	CreateExpense(ctx context.Context, record *domain.ExpenseRecord) error
	GetUserExpenses(ctx context.Context, userID string) ([]domain.ExpenseRecord, error)
	UpdateExpense(ctx context.Context, userID string, record *domain.ExpenseRecord) error
	DeleteExpense(ctx context.Context, userID string, recordID uuid.UUID) error
}

type ExpenseHandler struct {
	service      ExpenseServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewExpenseHandler(
	service ExpenseServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *ExpenseHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &ExpenseHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type expenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
}

func (h *ExpenseHandler) parseExpense(req expenseRequest) (*domain.ExpenseRecord, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, budgetErrors.NewValidationError("Date must be in YYYY-MM-DD format")
	}
	return &domain.ExpenseRecord{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    domain.ExpenseCategory(req.Category),
		Date:        date,
	}, nil
}

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.parseExpense(req)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	record.UserID = userID

	if err := h.service.CreateExpense(r.Context(), record); err != nil {
		if budgetErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error during expense creation: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Expense successfully created.",
		"data":    record,
	})
}

func (h *ExpenseHandler) GetUserExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	records, err := h.service.GetUserExpenses(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expenses retrieved successfully.",
		"data":    records,
	})
}

// GetCategories returns the closed category set so clients never hard-code it.
func (h *ExpenseHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   domain.ExpenseCategories(),
	})
}

func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	recordID, err := uuid.Parse(r.PathValue("expenseID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.parseExpense(req)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	record.ID = recordID

	if err := h.service.UpdateExpense(r.Context(), userID, record); err != nil {
		h.respondServiceError(w, err, "Failed to update expense")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expense successfully updated.",
		"data":    record,
	})
}

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	recordID, err := uuid.Parse(r.PathValue("expenseID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	if err := h.service.DeleteExpense(r.Context(), userID, recordID); err != nil {
		h.respondServiceError(w, err, "Failed to delete expense")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expense successfully deleted.",
	})
}

func (h *ExpenseHandler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case budgetErrors.IsValidationError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, budgetErrors.ErrRecordNotFound):
		h.respondError(w, http.StatusNotFound, "Expense not found")
	case errors.Is(err, budgetErrors.ErrUnauthorizedAccess):
		h.respondError(w, http.StatusForbidden, "You do not own this record")
	default:
		log.Printf("Expense handler error: %v", err)
		h.respondError(w, http.StatusInternalServerError, fallback)
	}
}
