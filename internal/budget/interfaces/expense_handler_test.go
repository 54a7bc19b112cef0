package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateExpense_Success(t *testing.T) {
	service := &MockExpenseService{}
	handler := NewExpenseHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]string{
		"description": "Ramen in Kyoto",
		"amount":      "12.50",
		"category":    "food",
		"date":        "2025-08-10",
	})
	req := authenticatedRequest(http.MethodPost, "/api/protected/expenses", body, "user-1")
	w := httptest.NewRecorder()

	handler.CreateExpense(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Len(t, service.Records, 1)
	assert.Equal(t, "user-1", service.Records[0].UserID)
}

func TestCreateExpense_UnknownCategory(t *testing.T) {
	service := &MockExpenseService{}
	handler := NewExpenseHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]string{
		"description": "Mystery",
		"amount":      "12.50",
		"category":    "groceries",
		"date":        "2025-08-10",
	})
	req := authenticatedRequest(http.MethodPost, "/api/protected/expenses", body, "user-1")
	w := httptest.NewRecorder()

	handler.CreateExpense(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Empty(t, service.Records, "an unrecognized category is invalid input, not silently grouped")
}

func TestCreateExpense_BadDateFormat(t *testing.T) {
	service := &MockExpenseService{}
	handler := NewExpenseHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]string{
		"description": "Taxi",
		"amount":      "20",
		"category":    "transport",
		"date":        "10/08/2025",
	})
	req := authenticatedRequest(http.MethodPost, "/api/protected/expenses", body, "user-1")
	w := httptest.NewRecorder()

	handler.CreateExpense(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetCategories_ReturnsClosedSet(t *testing.T) {
	handler := NewExpenseHandler(&MockExpenseService{}, respondJSON, respondError)

	req := authenticatedRequest(http.MethodGet, "/api/protected/expenses/categories", nil, "user-1")
	w := httptest.NewRecorder()

	handler.GetCategories(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data []string `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Len(t, response.Data, 7)
	assert.Equal(t, "food", response.Data[0])
	assert.Equal(t, "other", response.Data[6])
}
