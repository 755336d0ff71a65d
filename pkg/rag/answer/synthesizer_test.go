package answer

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"knowledgebase-be/pkg/llm"
	"knowledgebase-be/pkg/rag/contextbuilder"
	"knowledgebase-be/pkg/retry"
	"knowledgebase-be/pkg/vectorindex"
)

type wordCounter struct{}

func (wordCounter) Count(text string) int { return len(strings.Fields(text)) }

type fakeCompleter struct {
	completion *llm.Completion
	errs       []error
	calls      int
	lastSystem string
	lastUser   string
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (*llm.Completion, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	return f.completion, nil
}

func fastPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts:  5,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Retryable:    llm.IsTransient,
	}
}

func newSynth(provider llm.Provider) *Synthesizer {
	builder := contextbuilder.New(wordCounter{})
	return NewSynthesizer(provider, builder, fastPolicy(), 1000, 0.7, 3000)
}

func someResults(n int) []vectorindex.SearchResult {
	results := make([]vectorindex.SearchResult, n)
	for i := range results {
		results[i] = vectorindex.SearchResult{
			Content:  "Cats are mammals.",
			Metadata: map[string]interface{}{"filename": "cats.txt"},
		}
	}
	return results
}

func TestSynthesizeNoResultsReturnsErrNoContext(t *testing.T) {
	provider := &fakeCompleter{}
	s := newSynth(provider)

	_, err := s.Synthesize(context.Background(), "Are cats mammals?", nil)
	if err != ErrNoContext {
		t.Fatalf("err = %v, want ErrNoContext", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times, want 0", provider.calls)
	}
}

func TestSynthesizePromptEmbedsContextAndQuestion(t *testing.T) {
	provider := &fakeCompleter{completion: &llm.Completion{Text: "Yes.", FinishReason: llm.FinishReasonStop}}
	s := newSynth(provider)

	if _, err := s.Synthesize(context.Background(), "Are cats mammals?", someResults(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.lastSystem != systemInstruction {
		t.Errorf("system = %q", provider.lastSystem)
	}
	if !strings.Contains(provider.lastUser, "[Source 1: cats.txt]") {
		t.Errorf("prompt missing context block: %q", provider.lastUser)
	}
	if !strings.Contains(provider.lastUser, "Question: Are cats mammals?") {
		t.Errorf("prompt missing question: %q", provider.lastUser)
	}
}

func TestSynthesizeConfidenceHeuristic(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		finishReason string
		resultCount  int
		want         float64
	}{
		{"confident full answer", "Cats are mammals.", llm.FinishReasonStop, 2, 0.90},
		{"chunk bonus capped", "Cats are mammals.", llm.FinishReasonStop, 5, 0.95},
		{"truncated answer", "Cats are", llm.FinishReasonLength, 3, 0.85},
		{"hedged answer", "I don't know based on this context.", llm.FinishReasonStop, 1, 0.55},
		{"single uncertainty penalty", "Not sure, it is unclear.", llm.FinishReasonStop, 1, 0.55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeCompleter{completion: &llm.Completion{Text: tt.text, FinishReason: tt.finishReason}}
			s := newSynth(provider)

			ans, err := s.Synthesize(context.Background(), "Are cats mammals?", someResults(tt.resultCount))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(ans.Confidence-tt.want) > 1e-9 {
				t.Errorf("confidence = %v, want %v", ans.Confidence, tt.want)
			}
		})
	}
}

func TestSynthesizeRetriesTransientErrors(t *testing.T) {
	provider := &fakeCompleter{
		completion: &llm.Completion{Text: "Yes.", FinishReason: llm.FinishReasonStop},
		errs: []error{
			&llm.ProviderError{Provider: "openai", StatusCode: 429, Transient: true},
			&llm.ProviderError{Provider: "openai", StatusCode: 503, Transient: true},
		},
	}
	s := newSynth(provider)

	ans, err := s.Synthesize(context.Background(), "Are cats mammals?", someResults(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ans.Text != "Yes." {
		t.Errorf("text = %q", ans.Text)
	}
	if provider.calls != 3 {
		t.Errorf("provider called %d times, want 3", provider.calls)
	}
}

func TestSynthesizePermanentErrorNotRetried(t *testing.T) {
	provider := &fakeCompleter{
		errs: []error{&llm.ProviderError{Provider: "openai", StatusCode: 401}},
	}
	s := newSynth(provider)

	_, err := s.Synthesize(context.Background(), "Are cats mammals?", someResults(1))
	if err == nil {
		t.Fatal("expected error")
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
}
