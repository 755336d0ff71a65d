package service

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"knowledgebase-be/pkg/llm"
	"knowledgebase-be/pkg/rag/answer"
	"knowledgebase-be/pkg/rag/completeness"
	"knowledgebase-be/pkg/rag/contextbuilder"
	"knowledgebase-be/pkg/retry"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// fakeEmbedder maps equal texts to equal vectors so search ordering is
// deterministic without a model.
type fakeEmbedder struct{}

func (fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, t := range texts {
		vec := make([]float32, 8)
		for j := range vec {
			h := fnv.New32a()
			h.Write([]byte{byte(j)})
			h.Write([]byte(t))
			vec[j] = float32(h.Sum32()%1000) / 1000
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func (fakeEmbedder) Dimension() int { return 8 }

type fakeCompleter struct {
	text  string
	errs  []error
	calls int
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (*llm.Completion, error) {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	return &llm.Completion{Text: f.text, FinishReason: llm.FinishReasonStop}, nil
}

type runeCounter struct{}

func (runeCounter) Count(text string) int { return len([]rune(text)) / 4 }

func fastPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Retryable:    llm.IsTransient,
	}
}

func newTestSynthesizer(provider llm.Provider) *answer.Synthesizer {
	return answer.NewSynthesizer(provider, contextbuilder.New(runeCounter{}), fastPolicy(), 1000, 0.7, 3000)
}

func newTestAssessor(provider llm.Provider) *completeness.Assessor {
	return completeness.NewAssessor(provider, contextbuilder.New(runeCounter{}), fastPolicy(), 1000, 3000)
}

// fileHeader builds a real multipart.FileHeader the way fiber would hand it
// to the service.
func fileHeader(t *testing.T, filename, contentType, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["file"][0]
}

type capturedPublisher struct {
	payloads [][]byte
	err      error
}

func (p *capturedPublisher) Publish(ctx context.Context, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}
