package contextbuilder

import (
	"strings"
	"testing"

	"knowledgebase-be/pkg/vectorindex"
)

// wordCounter counts whitespace-separated words so test budgets stay small.
type wordCounter struct{}

func (wordCounter) Count(text string) int { return len(strings.Fields(text)) }

func result(content, filename string) vectorindex.SearchResult {
	meta := map[string]interface{}{}
	if filename != "" {
		meta["filename"] = filename
	}
	return vectorindex.SearchResult{Content: content, Metadata: meta}
}

func TestBuildEmptyResults(t *testing.T) {
	b := New(wordCounter{})
	if got := b.Build(nil, 100); got != "" {
		t.Errorf("Build(nil) = %q, want empty", got)
	}
}

func TestBuildFormatsNumberedSourceBlocks(t *testing.T) {
	b := New(wordCounter{})
	got := b.Build([]vectorindex.SearchResult{
		result("Cats purr.", "cats.txt"),
		result("Dogs bark.", "dogs.txt"),
	}, 100)

	want := "[Source 1: cats.txt]\nCats purr.\n\n---\n[Source 2: dogs.txt]\nDogs bark.\n"
	if got != want {
		t.Errorf("Build = %q, want %q", got, want)
	}
}

func TestBuildUnknownFilenameFallback(t *testing.T) {
	b := New(wordCounter{})
	got := b.Build([]vectorindex.SearchResult{result("Orphan chunk.", "")}, 100)

	if !strings.HasPrefix(got, "[Source 1: Unknown]") {
		t.Errorf("Build = %q, want Unknown source header", got)
	}
}

func TestBuildStopsAtFirstOverflowingBlock(t *testing.T) {
	b := New(wordCounter{})
	results := []vectorindex.SearchResult{
		result("one two three", "a.txt"),
		result("four five six seven eight nine ten eleven twelve", "b.txt"),
		result("tiny", "c.txt"),
	}

	// First block fits, second overflows; third must not be considered.
	got := b.Build(results, 10)

	if strings.Contains(got, "b.txt") {
		t.Errorf("overflowing block included: %q", got)
	}
	if strings.Contains(got, "c.txt") {
		t.Errorf("block after overflow included: %q", got)
	}
	if !strings.Contains(got, "a.txt") {
		t.Errorf("fitting block missing: %q", got)
	}
}
