package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/mwisnie/TravelBudget/internal/budget/domain"
)

func authenticatedRequest(method, target string, body []byte, userID string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(context.WithValue(req.Context(), "userID", userID))
}

func TestCreateGoal_Success(t *testing.T) {
	service := &MockGoalService{}
	handler := NewGoalHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{
		"name":          "Japan trip",
		"target_amount": "2000",
		"target_date":   "2027-06-01",
	})
	req := authenticatedRequest(http.MethodPost, "/api/protected/goals", body, "user-1")
	w := httptest.NewRecorder()

	handler.CreateGoal(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Len(t, service.Goals, 1)
	assert.Equal(t, "user-1", service.Goals[0].UserID)
}

func TestCreateGoal_ZeroTargetRejected(t *testing.T) {
	service := &MockGoalService{}
	handler := NewGoalHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{
		"name":          "Broken",
		"target_amount": "0",
		"target_date":   "2027-06-01",
	})
	req := authenticatedRequest(http.MethodPost, "/api/protected/goals", body, "user-1")
	w := httptest.NewRecorder()

	handler.CreateGoal(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Empty(t, service.Goals)
}

func TestCreateGoal_MissingUserID(t *testing.T) {
	service := &MockGoalService{}
	handler := NewGoalHandler(service, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/api/protected/goals", bytes.NewBufferString("{}"))
	w := httptest.NewRecorder()

	handler.CreateGoal(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestContribute_AddsToCurrentAmount(t *testing.T) {
	goalID := uuid.New()
	service := &MockGoalService{Goals: []domain.SavingsGoal{{
		ID:            goalID,
		UserID:        "user-1",
		Name:          "Road trip",
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(50),
		TargetDate:    time.Now().AddDate(0, 3, 0),
	}}}
	handler := NewGoalHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]string{"amount": "100"})
	req := authenticatedRequest(http.MethodPost, "/api/protected/goals/"+goalID.String()+"/contributions", body, "user-1")
	req.SetPathValue("goalID", goalID.String())
	w := httptest.NewRecorder()

	handler.Contribute(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, service.Goals[0].CurrentAmount.Equal(decimal.NewFromInt(150)))
}

func TestContribute_ForeignGoalForbidden(t *testing.T) {
	goalID := uuid.New()
	service := &MockGoalService{Goals: []domain.SavingsGoal{{
		ID:           goalID,
		UserID:       "user-1",
		TargetAmount: decimal.NewFromInt(1000),
		TargetDate:   time.Now().AddDate(0, 3, 0),
	}}}
	handler := NewGoalHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]string{"amount": "100"})
	req := authenticatedRequest(http.MethodPost, "/api/protected/goals/"+goalID.String()+"/contributions", body, "user-2")
	req.SetPathValue("goalID", goalID.String())
	w := httptest.NewRecorder()

	handler.Contribute(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.True(t, service.Goals[0].CurrentAmount.IsZero())
}

func TestContribute_NonPositiveAmountRejected(t *testing.T) {
	goalID := uuid.New()
	service := &MockGoalService{Goals: []domain.SavingsGoal{{
		ID:           goalID,
		UserID:       "user-1",
		TargetAmount: decimal.NewFromInt(1000),
		TargetDate:   time.Now().AddDate(0, 3, 0),
	}}}
	handler := NewGoalHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]string{"amount": "-5"})
	req := authenticatedRequest(http.MethodPost, "/api/protected/goals/"+goalID.String()+"/contributions", body, "user-1")
	req.SetPathValue("goalID", goalID.String())
	w := httptest.NewRecorder()

	handler.Contribute(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestContribute_InvalidGoalID(t *testing.T) {
	handler := NewGoalHandler(&MockGoalService{}, respondJSON, respondError)

	body, _ := json.Marshal(map[string]string{"amount": "100"})
	req := authenticatedRequest(http.MethodPost, "/api/protected/goals/not-a-uuid/contributions", body, "user-1")
	req.SetPathValue("goalID", "not-a-uuid")
	w := httptest.NewRecorder()

	handler.Contribute(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetUserGoals_IncludesProjection(t *testing.T) {
	goalID := uuid.New()
	service := &MockGoalService{Goals: []domain.SavingsGoal{{
		ID:            goalID,
		UserID:        "user-1",
		Name:          "Japan trip",
		TargetAmount:  decimal.NewFromInt(2000),
		CurrentAmount: decimal.NewFromInt(500),
		TargetDate:    time.Now().Add(90 * 24 * time.Hour),
	}}}
	handler := NewGoalHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodGet, "/api/protected/goals", nil, "user-1")
	w := httptest.NewRecorder()

	handler.GetUserGoals(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data []struct {
			Name       string `json:"name"`
			Projection struct {
				ProgressPercent     string  `json:"progress_percent"`
				MonthlyAmountNeeded *string `json:"monthly_amount_needed"`
			} `json:"projection"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Len(t, response.Data, 1)
	assert.Equal(t, "25", response.Data[0].Projection.ProgressPercent)
	assert.NotNil(t, response.Data[0].Projection.MonthlyAmountNeeded)
}

func TestGetUserGoals_PastDueOmitsPacing(t *testing.T) {
	service := &MockGoalService{Goals: []domain.SavingsGoal{{
		ID:            uuid.New(),
		UserID:        "user-1",
		TargetAmount:  decimal.NewFromInt(2000),
		CurrentAmount: decimal.NewFromInt(500),
		TargetDate:    time.Now().Add(-90 * 24 * time.Hour),
	}}}
	handler := NewGoalHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodGet, "/api/protected/goals", nil, "user-1")
	w := httptest.NewRecorder()

	handler.GetUserGoals(w, req)

	res := w.Result()
	defer res.Body.Close()

	var response struct {
		Data []struct {
			Projection map[string]interface{} `json:"projection"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Len(t, response.Data, 1)
	_, present := response.Data[0].Projection["monthly_amount_needed"]
	assert.False(t, present, "past-due goal must omit the pacing figure entirely")
}
