package tokenizer

import (
	"log"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// Counter reports the number of tokens a completion model would see for a
// piece of text. Counts only need to be monotonic enough for budget
// enforcement, not exact.
type Counter interface {
	Count(text string) int
}

type tiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewCounter returns a tiktoken-backed counter for the given model, falling
// back to cl100k_base for unknown models and to a rune heuristic when no
// encoding can be loaded at all (e.g. offline first run).
func NewCounter(model string) Counter {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
	}
	if err != nil {
		log.Printf("[WARN] tiktoken encoding unavailable, using heuristic counter: %v", err)
		return HeuristicCounter{}
	}
	return &tiktokenCounter{enc: enc}
}

func (c *tiktokenCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

// HeuristicCounter approximates one token per four characters. Used as a
// fallback and in tests where determinism matters more than accuracy.
type HeuristicCounter struct{}

func (HeuristicCounter) Count(text string) int {
	return (utf8.RuneCountInString(text) + 3) / 4
}
