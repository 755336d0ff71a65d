package contextbuilder

import (
	"fmt"
	"strings"

	"knowledgebase-be/pkg/tokenizer"
	"knowledgebase-be/pkg/vectorindex"
)

const DefaultTokenBudget = 3000

// Builder formats retrieved units into a prompt context, keeping the
// result under a token budget. Blocks are included whole or not at all.
type Builder struct {
	counter tokenizer.Counter
}

func New(counter tokenizer.Counter) *Builder {
	return &Builder{counter: counter}
}

// Build joins source blocks with a separator line, stopping at the first
// block that would exceed tokenBudget. Returns "" for no results.
func (b *Builder) Build(results []vectorindex.SearchResult, tokenBudget int) string {
	if tokenBudget <= 0 {
		tokenBudget = DefaultTokenBudget
	}

	parts := make([]string, 0, len(results))
	totalTokens := 0

	for i, result := range results {
		source := "Unknown"
		if fn, ok := result.Metadata["filename"].(string); ok && fn != "" {
			source = fn
		}

		block := fmt.Sprintf("[Source %d: %s]\n%s\n", i+1, source, result.Content)
		blockTokens := b.counter.Count(block)

		if totalTokens+blockTokens > tokenBudget {
			break
		}

		parts = append(parts, block)
		totalTokens += blockTokens
	}

	return strings.Join(parts, "\n---\n")
}
