package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"knowledgebase-be/pkg/llm"
)

type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

// Ensure OllamaProvider implements Provider
var _ llm.Provider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string) *OllamaProvider {
	return &OllamaProvider{
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model      string        `json:"model"`
	Message    ollamaMessage `json:"message"`
	Done       bool          `json:"done"`
	DoneReason string        `json:"done_reason"`
}

// --- Interface Implementation ---

func (o *OllamaProvider) Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (*llm.Completion, error) {
	messages := []ollamaMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}

	reqPayload := ollamaChatRequest{
		Model:    o.ModelName,
		Messages: messages,
		Stream:   false,
		Options: &ollamaOptions{
			Temperature: temperature,
		},
	}
	if maxTokens > 0 {
		reqPayload.Options.NumPredict = maxTokens
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := o.BaseURL + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		// No HTTP status: connection refused, timeout. Retryable.
		return nil, &llm.ProviderError{Provider: "ollama", Body: err.Error(), Transient: true}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &llm.ProviderError{
			Provider:   "ollama",
			StatusCode: resp.StatusCode,
			Body:       string(bodyBytes),
			Transient:  llm.TransientStatus(resp.StatusCode),
		}
	}

	var ollamaResp ollamaChatResponse
	if err := json.Unmarshal(bodyBytes, &ollamaResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	finishReason := llm.FinishReasonStop
	if ollamaResp.DoneReason == "length" {
		finishReason = llm.FinishReasonLength
	}

	return &llm.Completion{
		Text:         ollamaResp.Message.Content,
		FinishReason: finishReason,
	}, nil
}
