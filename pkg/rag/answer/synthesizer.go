package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"knowledgebase-be/pkg/llm"
	"knowledgebase-be/pkg/rag/contextbuilder"
	"knowledgebase-be/pkg/retry"
	"knowledgebase-be/pkg/vectorindex"
)

// ErrNoContext is returned when synthesis is asked to answer without any
// retrieved units. No completion call is made in that case.
var ErrNoContext = errors.New("no context available for answer synthesis")

const systemInstruction = "You are a knowledgeable assistant that answers questions based on provided context. Be concise and cite information when possible."

const promptTemplate = `You are a helpful AI assistant. Answer the question based on the provided context.
If the context doesn't contain enough information to answer the question, say so clearly.

Context:
%s

Question: %s

Answer:`

var uncertaintyPhrases = []string{
	"i don't know",
	"not sure",
	"unclear",
	"insufficient information",
	"cannot determine",
	"not enough context",
	"doesn't contain",
}

type Answer struct {
	Text       string
	Confidence float64
}

// Synthesizer produces a grounded answer from retrieved units: one completion
// call through the retry policy, plus a confidence heuristic over the result.
type Synthesizer struct {
	provider    llm.Provider
	builder     *contextbuilder.Builder
	policy      retry.Policy
	maxTokens   int
	temperature float64
	tokenBudget int
}

func NewSynthesizer(provider llm.Provider, builder *contextbuilder.Builder, policy retry.Policy, maxTokens int, temperature float64, tokenBudget int) *Synthesizer {
	if maxTokens <= 0 {
		maxTokens = 1000
	}
	if tokenBudget <= 0 {
		tokenBudget = contextbuilder.DefaultTokenBudget
	}
	return &Synthesizer{
		provider:    provider,
		builder:     builder,
		policy:      policy,
		maxTokens:   maxTokens,
		temperature: temperature,
		tokenBudget: tokenBudget,
	}
}

func (s *Synthesizer) Synthesize(ctx context.Context, question string, results []vectorindex.SearchResult) (*Answer, error) {
	if len(results) == 0 {
		return nil, ErrNoContext
	}

	contextText := s.builder.Build(results, s.tokenBudget)
	prompt := fmt.Sprintf(promptTemplate, contextText, question)

	completion, err := retry.Do(ctx, s.policy, func() (*llm.Completion, error) {
		return s.provider.Complete(ctx, systemInstruction, prompt, s.maxTokens, s.temperature)
	})
	if err != nil {
		return nil, fmt.Errorf("answer completion: %w", err)
	}

	text := strings.TrimSpace(completion.Text)
	return &Answer{
		Text:       text,
		Confidence: estimateConfidence(completion.FinishReason, text, len(results)),
	}, nil
}

// estimateConfidence is a heuristic over finish reason, context breadth and
// uncertainty wording. Always in [0, 1].
func estimateConfidence(finishReason, text string, resultCount int) float64 {
	confidence := 0.7

	if finishReason == llm.FinishReasonStop {
		confidence += 0.1
	}

	chunkBonus := float64(resultCount) * 0.05
	if chunkBonus > 0.15 {
		chunkBonus = 0.15
	}
	confidence += chunkBonus

	lower := strings.ToLower(text)
	for _, phrase := range uncertaintyPhrases {
		if strings.Contains(lower, phrase) {
			confidence -= 0.3
			break
		}
	}

	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}
