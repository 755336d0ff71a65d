package completeness

import (
	"context"
	"fmt"
	"strings"

	"knowledgebase-be/pkg/llm"
	"knowledgebase-be/pkg/rag/contextbuilder"
	"knowledgebase-be/pkg/retry"
	"knowledgebase-be/pkg/vectorindex"
)

const systemInstruction = "You are an analytical assistant that assesses information completeness. Be thorough and specific."

// Analysis wants consistency over creativity.
const analysisTemperature = 0.3

const promptTemplate = `Analyze the following context to determine if it provides complete information about: %s

Context:
%s
%s
Provide your assessment in the following format:
1. Overall completeness score (0-100)
2. List of covered aspects (bullet points)
3. List of missing or unclear aspects (bullet points)
4. Recommendations for additional information needed (bullet points)

Assessment:`

// Assessor judges how completely the indexed material covers a topic: one
// low-temperature completion call, parsed leniently by Parse.
type Assessor struct {
	provider    llm.Provider
	builder     *contextbuilder.Builder
	policy      retry.Policy
	maxTokens   int
	tokenBudget int
}

func NewAssessor(provider llm.Provider, builder *contextbuilder.Builder, policy retry.Policy, maxTokens, tokenBudget int) *Assessor {
	if maxTokens <= 0 {
		maxTokens = 1000
	}
	if tokenBudget <= 0 {
		tokenBudget = contextbuilder.DefaultTokenBudget
	}
	return &Assessor{
		provider:    provider,
		builder:     builder,
		policy:      policy,
		maxTokens:   maxTokens,
		tokenBudget: tokenBudget,
	}
}

func (a *Assessor) Assess(ctx context.Context, topic string, results []vectorindex.SearchResult, requiredAspects []string) (*Assessment, error) {
	contextText := a.builder.Build(results, a.tokenBudget)

	aspectsPrompt := ""
	if len(requiredAspects) > 0 {
		var b strings.Builder
		b.WriteString("\n\nSpecifically check for these aspects:\n")
		for _, aspect := range requiredAspects {
			fmt.Fprintf(&b, "- %s\n", aspect)
		}
		aspectsPrompt = strings.TrimRight(b.String(), "\n") + "\n"
	}

	prompt := fmt.Sprintf(promptTemplate, topic, contextText, aspectsPrompt)

	completion, err := retry.Do(ctx, a.policy, func() (*llm.Completion, error) {
		return a.provider.Complete(ctx, systemInstruction, prompt, a.maxTokens, analysisTemperature)
	})
	if err != nil {
		return nil, fmt.Errorf("completeness completion: %w", err)
	}

	return Parse(strings.TrimSpace(completion.Text)), nil
}
