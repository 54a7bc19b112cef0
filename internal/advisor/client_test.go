package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubUpstream(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestGenerate_ReturnsResponseTextVerbatim(t *testing.T) {
	server := stubUpstream(t, http.StatusOK,
		`{"choices":[{"message":{"role":"assistant","content":"Cut your food spending by 10%."}}]}`)
	defer server.Close()

	client := NewChatCompletionClientWithBaseURL("test-key", server.URL)
	text, err := client.Generate(context.Background(), systemInstruction, "How do I save more?")
	assert.NoError(t, err)
	assert.Equal(t, "Cut your food spending by 10%.", text)
}

func TestGenerate_SendsSystemAndUserMessages(t *testing.T) {
	var captured chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	client := NewChatCompletionClientWithBaseURL("test-key", server.URL)
	_, err := client.Generate(context.Background(), "be helpful", "my question")
	assert.NoError(t, err)

	assert.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "be helpful", captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, "my question", captured.Messages[1].Content)
}

func TestGenerate_RateLimited(t *testing.T) {
	server := stubUpstream(t, http.StatusTooManyRequests, `{"error":{"message":"Rate limit reached"}}`)
	defer server.Close()

	client := NewChatCompletionClientWithBaseURL("test-key", server.URL)
	_, err := client.Generate(context.Background(), systemInstruction, "q")

	var upstreamErr *UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, CategoryRateLimited, upstreamErr.Category)
	assert.Equal(t, "Rate limit reached", upstreamErr.Message)
}

func TestGenerate_PaymentRequired(t *testing.T) {
	server := stubUpstream(t, http.StatusPaymentRequired, `{"error":{"message":"Insufficient credits"}}`)
	defer server.Close()

	client := NewChatCompletionClientWithBaseURL("test-key", server.URL)
	_, err := client.Generate(context.Background(), systemInstruction, "q")

	var upstreamErr *UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, CategoryPaymentRequired, upstreamErr.Category)
}

func TestGenerate_Unauthorized(t *testing.T) {
	server := stubUpstream(t, http.StatusUnauthorized, `{"error":{"message":"Invalid API key"}}`)
	defer server.Close()

	client := NewChatCompletionClientWithBaseURL("test-key", server.URL)
	_, err := client.Generate(context.Background(), systemInstruction, "q")

	var upstreamErr *UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, CategoryUnauthorized, upstreamErr.Category)
}

func TestGenerate_GenericFailure(t *testing.T) {
	server := stubUpstream(t, http.StatusInternalServerError, `{}`)
	defer server.Close()

	client := NewChatCompletionClientWithBaseURL("test-key", server.URL)
	_, err := client.Generate(context.Background(), systemInstruction, "q")

	var upstreamErr *UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, CategoryGeneric, upstreamErr.Category)
	assert.Equal(t, "advice service request failed", upstreamErr.Message)
}

func TestGenerate_EmptyChoices(t *testing.T) {
	server := stubUpstream(t, http.StatusOK, `{"choices":[]}`)
	defer server.Close()

	client := NewChatCompletionClientWithBaseURL("test-key", server.URL)
	_, err := client.Generate(context.Background(), systemInstruction, "q")

	var upstreamErr *UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, CategoryGeneric, upstreamErr.Category)
}
