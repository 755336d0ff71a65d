package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const geminiEmbeddingModel = "text-embedding-004"

// GeminiProvider implements Provider against the Gemini embedContent API.
// text-embedding-004 produces 768-dimension vectors.
type GeminiProvider struct {
	ApiKey string
	client *http.Client
}

func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{
		ApiKey: apiKey,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type geminiContentPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiContentPart `json:"parts"`
}

type geminiEmbedRequest struct {
	Model    string        `json:"model"`
	Content  geminiContent `json:"content"`
	TaskType string        `json:"taskType,omitempty"`
}

type geminiBatchEmbedRequest struct {
	Requests []geminiEmbedRequest `json:"requests"`
}

type geminiEmbedding struct {
	Values []float32 `json:"values"`
}

type geminiBatchEmbedResponse struct {
	Embeddings []geminiEmbedding `json:"embeddings"`
}

// Embed sends all texts in one batchEmbedContents request.
func (p *GeminiProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	batchReq := geminiBatchEmbedRequest{
		Requests: make([]geminiEmbedRequest, len(texts)),
	}
	for i, text := range texts {
		batchReq.Requests[i] = geminiEmbedRequest{
			Model: "models/" + geminiEmbeddingModel,
			Content: geminiContent{
				Parts: []geminiContentPart{{Text: text}},
			},
			TaskType: "RETRIEVAL_DOCUMENT",
		}
	}

	reqJson, err := json.Marshal(batchReq)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:batchEmbedContents",
		geminiEmbeddingModel,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(reqJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from gemini response, code %d, body %s", res.StatusCode, string(resByte))
	}

	var batchRes geminiBatchEmbedResponse
	if err := json.Unmarshal(resByte, &batchRes); err != nil {
		return nil, err
	}

	if len(batchRes.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini returned %d embeddings for %d texts", len(batchRes.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(batchRes.Embeddings))
	for i, e := range batchRes.Embeddings {
		vectors[i] = e.Values
	}
	return vectors, nil
}

func (p *GeminiProvider) Dimension() int {
	return 768
}
