package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mwisnie/TravelBudget/internal/budget/domain"
	budgetErrors "github.com/mwisnie/TravelBudget/internal/budget/errors"
)

type IncomeServiceInterface interface {
	CreateIncome(ctx context.Context, record *domain.IncomeRecord) error
	GetUserIncomes(ctx context.Context, userID string) ([]domain.IncomeRecord, error)
	UpdateIncome(ctx context.Context, userID string, record *domain.IncomeRecord) error
	DeleteIncome(ctx context.Context, userID string, recordID uuid.UUID) error
}

type IncomeHandler struct {
	service      IncomeServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewIncomeHandler(
	service IncomeServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *IncomeHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &IncomeHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type incomeRequest struct {
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency string          `json:"frequency"`
}

func (h *IncomeHandler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req incomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record := &domain.IncomeRecord{
		UserID:    userID,
		Name:      req.Name,
		Amount:    req.Amount,
		Frequency: domain.IncomeFrequency(req.Frequency),
	}
	if err := h.service.CreateIncome(r.Context(), record); err != nil {
		if budgetErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error during income creation: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create income record")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Income record successfully created.",
		"data":    record,
	})
}

func (h *IncomeHandler) GetUserIncomes(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	records, err := h.service.GetUserIncomes(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve income records")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Income records retrieved successfully.",
		"data":    records,
	})
}

func (h *IncomeHandler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	recordID, err := uuid.Parse(r.PathValue("incomeID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid income ID")
		return
	}
	var req incomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record := &domain.IncomeRecord{
		ID:        recordID,
		Name:      req.Name,
		Amount:    req.Amount,
		Frequency: domain.IncomeFrequency(req.Frequency),
	}
	if err := h.service.UpdateIncome(r.Context(), userID, record); err != nil {
		h.respondServiceError(w, err, "Failed to update income record")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Income record successfully updated.",
		"data":    record,
	})
}

func (h *IncomeHandler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	recordID, err := uuid.Parse(r.PathValue("incomeID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid income ID")
		return
	}

	if err := h.service.DeleteIncome(r.Context(), userID, recordID); err != nil {
		h.respondServiceError(w, err, "Failed to delete income record")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Income record successfully deleted.",
	})
}

func (h *IncomeHandler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case budgetErrors.IsValidationError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, budgetErrors.ErrRecordNotFound):
		h.respondError(w, http.StatusNotFound, "Income record not found")
	case errors.Is(err, budgetErrors.ErrUnauthorizedAccess):
		h.respondError(w, http.StatusForbidden, "You do not own this record")
	default:
		log.Printf("Income handler error: %v", err)
		h.respondError(w, http.StatusInternalServerError, fallback)
	}
}
