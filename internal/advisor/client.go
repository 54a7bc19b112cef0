package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type ErrorCategory string

const (
	CategoryRateLimited     ErrorCategory = "rate-limited"
	CategoryPaymentRequired ErrorCategory = "payment-required"
	CategoryUnauthorized    ErrorCategory = "unauthorized"
	CategoryGeneric         ErrorCategory = "generic"
)

// UpstreamError carries the advice service failure category so callers can
// surface each one distinctly instead of collapsing them into a single
// message. Failures are never retried here.
type UpstreamError struct {
	Category ErrorCategory
	Message  string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("advice service error (%s): %s", e.Category, e.Message)
}

const defaultBaseURL = "https://api.openai.com/v1"
const defaultModel = "gpt-4o-mini"

type ChatCompletionClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewChatCompletionClient(apiKey string) *ChatCompletionClient {
	return &ChatCompletionClient{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewChatCompletionClientWithBaseURL is used by tests to point the client at
// a local stub server.
func NewChatCompletionClientWithBaseURL(apiKey, baseURL string) *ChatCompletionClient {
	client := NewChatCompletionClient(apiKey)
	client.baseURL = baseURL
	return client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate sends one prompt to the chat-completion endpoint and returns the
// response text unmodified.
func (c *ChatCompletionClient) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	payload, err := json.Marshal(chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UpstreamError{Category: CategoryGeneric, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", categorizeStatus(resp.StatusCode, resp.Body)
	}

	var result chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &UpstreamError{Category: CategoryGeneric, Message: "invalid response from advice service"}
	}
	if len(result.Choices) == 0 {
		return "", &UpstreamError{Category: CategoryGeneric, Message: "advice service returned no choices"}
	}
	return result.Choices[0].Message.Content, nil
}

func categorizeStatus(status int, body io.Reader) *UpstreamError {
	message := upstreamMessage(body)
	switch status {
	case http.StatusTooManyRequests:
		return &UpstreamError{Category: CategoryRateLimited, Message: message}
	case http.StatusPaymentRequired:
		return &UpstreamError{Category: CategoryPaymentRequired, Message: message}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &UpstreamError{Category: CategoryUnauthorized, Message: message}
	default:
		return &UpstreamError{Category: CategoryGeneric, Message: message}
	}
}

func upstreamMessage(body io.Reader) string {
	var result chatCompletionResponse
	if err := json.NewDecoder(body).Decode(&result); err == nil && result.Error != nil && result.Error.Message != "" {
		return result.Error.Message
	}
	return "advice service request failed"
}
