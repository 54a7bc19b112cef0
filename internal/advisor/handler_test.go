package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func respondJSONForTest(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondErrorForTest(w http.ResponseWriter, status int, message string, errors ...[]string) {
	respondJSONForTest(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type mockAdviceService struct {
	recommendation string
	err            error
	lastQuestion   string
}

func (m *mockAdviceService) GetAdvice(_ context.Context, userID, question string) (string, error) {
	m.lastQuestion = question
	if m.err != nil {
		return "", m.err
	}
	return m.recommendation, nil
}

func adviceRequest(body []byte, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/protected/advice", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	if userID == "" {
		return req
	}
	return req.WithContext(context.WithValue(req.Context(), "userID", userID))
}

func TestHandleGetAdvice_Success(t *testing.T) {
	service := &mockAdviceService{recommendation: "Book trains early."}
	handler := NewHandler(service, respondJSONForTest, respondErrorForTest)

	body, _ := json.Marshal(map[string]string{"question": "How to save on transport?"})
	w := httptest.NewRecorder()
	handler.HandleGetAdvice(w, adviceRequest(body, "user-1"))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data struct {
			Recommendation string `json:"recommendation"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "Book trains early.", response.Data.Recommendation)
	assert.Equal(t, "How to save on transport?", service.lastQuestion)
}

func TestHandleGetAdvice_Unauthenticated(t *testing.T) {
	handler := NewHandler(&mockAdviceService{}, respondJSONForTest, respondErrorForTest)

	w := httptest.NewRecorder()
	handler.HandleGetAdvice(w, adviceRequest([]byte(`{}`), ""))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestHandleGetAdvice_CategorizedUpstreamFailures(t *testing.T) {
	cases := []struct {
		category       ErrorCategory
		expectedStatus int
	}{
		{CategoryRateLimited, http.StatusTooManyRequests},
		{CategoryPaymentRequired, http.StatusPaymentRequired},
		{CategoryUnauthorized, http.StatusBadGateway},
		{CategoryGeneric, http.StatusBadGateway},
	}

	for _, tc := range cases {
		service := &mockAdviceService{err: &UpstreamError{Category: tc.category, Message: "upstream said no"}}
		handler := NewHandler(service, respondJSONForTest, respondErrorForTest)

		w := httptest.NewRecorder()
		handler.HandleGetAdvice(w, adviceRequest([]byte(`{}`), "user-1"))

		res := w.Result()
		assert.Equal(t, tc.expectedStatus, res.StatusCode, "category %s", tc.category)

		var response struct {
			Category string `json:"category"`
			Message  string `json:"message"`
		}
		assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
		res.Body.Close()
		assert.Equal(t, string(tc.category), response.Category)
		assert.Equal(t, "upstream said no", response.Message, "upstream message shown verbatim")
	}
}
