package chunker

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkEmptyInput(t *testing.T) {
	c := New(500, 50)

	for _, input := range []string{"", "   ", "\n\t  \n"} {
		chunks := c.Chunk(input, nil)
		if len(chunks) != 0 {
			t.Errorf("Chunk(%q) = %d chunks, want 0", input, len(chunks))
		}
	}
}

func TestChunkSingleSentence(t *testing.T) {
	c := New(500, 50)

	chunks := c.Chunk("Machine learning is a subset of AI.", map[string]interface{}{"filename": "ml.txt"})
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Content != "Machine learning is a subset of AI." {
		t.Errorf("unexpected content: %q", chunks[0].Content)
	}
	if chunks[0].SequenceIndex != 0 {
		t.Errorf("SequenceIndex = %d, want 0", chunks[0].SequenceIndex)
	}
	if chunks[0].Metadata["filename"] != "ml.txt" {
		t.Errorf("base metadata lost: %v", chunks[0].Metadata)
	}
}

func TestChunkOversizedSentenceEmittedWhole(t *testing.T) {
	c := New(20, 5)

	long := "This single sentence is far longer than the configured chunk size."
	chunks := c.Chunk(long, nil)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Content != long {
		t.Errorf("oversized sentence was split: %q", chunks[0].Content)
	}
}

func TestChunkMammalsScenario(t *testing.T) {
	// Three sentences of 17, 21 and 21 chars. The first two fit in 40, the
	// third forces a new chunk. The closed chunk's last sentence (21 chars)
	// exceeds the 15-char overlap budget, so no overlap is carried.
	c := New(40, 15)

	chunks := c.Chunk("Cats are mammals. Dogs are mammals too. Fish are not mammals.", nil)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0].Content != "Cats are mammals. Dogs are mammals too." {
		t.Errorf("chunk 0 = %q", chunks[0].Content)
	}
	if chunks[1].Content != "Fish are not mammals." {
		t.Errorf("chunk 1 = %q", chunks[1].Content)
	}
}

func TestChunkOverlapCarriesWholeSentences(t *testing.T) {
	// With a 25-char budget the closed chunk's final sentence (21 chars)
	// fits, so it seeds the next chunk.
	c := New(40, 25)

	chunks := c.Chunk("Cats are mammals. Dogs are mammals too. Fish are not mammals.", nil)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if !strings.HasPrefix(chunks[1].Content, "Dogs are mammals too.") {
		t.Errorf("chunk 1 does not begin with overlap: %q", chunks[1].Content)
	}
	if !strings.HasSuffix(chunks[0].Content, "Dogs are mammals too.") {
		t.Errorf("overlap is not a suffix of chunk 0: %q", chunks[0].Content)
	}
}

func TestChunkSequenceIndexesDense(t *testing.T) {
	c := New(60, 20)

	var sb strings.Builder
	for i := 0; i < 30; i++ {
		sb.WriteString("The quick brown fox jumps over the lazy dog. ")
	}

	chunks := c.Chunk(sb.String(), nil)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, ch := range chunks {
		if ch.SequenceIndex != i {
			t.Errorf("chunk %d has SequenceIndex %d", i, ch.SequenceIndex)
		}
		if ch.Metadata[MetaSequenceIndex] != i {
			t.Errorf("chunk %d metadata sequence_index = %v", i, ch.Metadata[MetaSequenceIndex])
		}
	}
}

func TestChunkCharCountMatchesContent(t *testing.T) {
	c := New(80, 20)

	text := "Go is a statically typed language. It compiles quickly. " +
		"Concurrency is built in. Channels communicate between goroutines. " +
		"The standard library is extensive."

	for _, ch := range c.Chunk(text, nil) {
		if ch.CharCount != utf8.RuneCountInString(ch.Content) {
			t.Errorf("CharCount = %d, content length = %d (%q)",
				ch.CharCount, utf8.RuneCountInString(ch.Content), ch.Content)
		}
		if ch.Metadata[MetaCharCount] != ch.CharCount {
			t.Errorf("metadata char_count = %v, want %d", ch.Metadata[MetaCharCount], ch.CharCount)
		}
	}
}

func TestChunkDeterministic(t *testing.T) {
	c := New(60, 20)
	text := "First sentence here. Second sentence follows. Third one too! Does a fourth appear? Yes it does."

	a := c.Chunk(text, map[string]interface{}{"document_id": "d1"})
	b := c.Chunk(text, map[string]interface{}{"document_id": "d1"})
	if !reflect.DeepEqual(a, b) {
		t.Error("chunking the same input twice produced different results")
	}
}

func TestChunkNormalization(t *testing.T) {
	c := New(500, 50)

	chunks := c.Chunk("Hello,,,   world###! This\tis\n\nnormalized.", nil)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	want := "Hello,,, world! This is normalized."
	if chunks[0].Content != want {
		t.Errorf("normalized content = %q, want %q", chunks[0].Content, want)
	}
}

func TestChunkPreservesUnicodeText(t *testing.T) {
	c := New(500, 50)

	tests := []struct {
		name string
		text string
	}{
		{"accented latin", "Les cafés sont délicieux. Déjà vu encore."},
		{"cjk", "机器学习是人工智能的一个分支. 它改变了世界."},
		{"cyrillic", "Кошки это млекопитающие. Собаки тоже."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := c.Chunk(tt.text, nil)
			if len(chunks) != 1 {
				t.Fatalf("got %d chunks, want 1", len(chunks))
			}
			if chunks[0].Content != tt.text {
				t.Errorf("normalization altered text: %q, want %q", chunks[0].Content, tt.text)
			}
		})
	}
}

func TestChunkDoesNotMutateBaseMetadata(t *testing.T) {
	c := New(500, 50)
	base := map[string]interface{}{"filename": "a.txt"}

	c.Chunk("One sentence only.", base)
	if len(base) != 1 {
		t.Errorf("base metadata mutated: %v", base)
	}
}
