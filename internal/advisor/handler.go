package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

type AdviceServiceInterface interface {
	GetAdvice(ctx context.Context, userID, question string) (string, error)
}

type Handler struct {
	service      AdviceServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewHandler(
	service AdviceServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *Handler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &Handler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// HandleGetAdvice proxies one advice request. Upstream failure categories map
// to distinct status codes and are shown verbatim, never retried.
func (h *Handler) HandleGetAdvice(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	recommendation, err := h.service.GetAdvice(r.Context(), userID, req.Question)
	if err != nil {
		var upstreamErr *UpstreamError
		if errors.As(err, &upstreamErr) {
			h.respondJSON(w, statusForCategory(upstreamErr.Category), map[string]interface{}{
				"status":   "error",
				"message":  upstreamErr.Message,
				"category": upstreamErr.Category,
			})
			return
		}
		log.Printf("Error during advice request: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to get advice")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]string{
			"recommendation": recommendation,
		},
	})
}

func statusForCategory(category ErrorCategory) int {
	switch category {
	case CategoryRateLimited:
		return http.StatusTooManyRequests
	case CategoryPaymentRequired:
		return http.StatusPaymentRequired
	default:
		// An upstream auth failure is our misconfiguration, not the caller's.
		return http.StatusBadGateway
	}
}
