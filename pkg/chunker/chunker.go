package chunker

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Reserved metadata keys written by the chunker. Caller-supplied metadata
// must not rely on these keys surviving.
const (
	MetaSequenceIndex = "sequence_index"
	MetaCharCount     = "char_count"
)

// Chunk is one retrieval-sized unit of a document's text. Immutable once
// produced.
type Chunk struct {
	Content       string
	SequenceIndex int
	CharCount     int
	Metadata      map[string]interface{}
}

// Chunker splits normalized text into overlapping, sentence-aligned chunks.
// ChunkSize is a soft bound: a single sentence longer than ChunkSize is
// emitted whole rather than split.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

func New(chunkSize, chunkOverlap int) *Chunker {
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Keep letters and digits in any script, whitespace and a fixed
	// punctuation set. Anything else is stripped during normalization.
	// \p{L}\p{N} rather than \w: RE2's \w is ASCII-only.
	disallowedRe = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?;:\(\)\[\]\{\}"'-]+`)
)

// Chunk splits text into ordered chunks. Each chunk's metadata is
// baseMetadata merged with sequence_index and char_count. Empty or
// whitespace-only input yields no chunks. The result is deterministic for
// identical input and parameters.
func (c *Chunker) Chunk(text string, baseMetadata map[string]interface{}) []Chunk {
	cleaned := cleanText(text)
	sentences := splitSentences(cleaned)

	var chunks []Chunk
	var current []string
	currentLen := 0

	for _, sentence := range sentences {
		sentenceLen := utf8.RuneCountInString(sentence)

		if currentLen+sentenceLen > c.chunkSize && len(current) > 0 {
			chunks = append(chunks, c.emit(current, len(chunks), baseMetadata))

			// Seed the next chunk with whole trailing sentences of the one
			// just closed, as long as their cumulative length fits the
			// overlap budget. If even the last sentence is too long, no
			// overlap is carried.
			overlap, overlapLen := c.overlapTail(current)
			current = overlap
			currentLen = overlapLen
		}

		current = append(current, sentence)
		currentLen += sentenceLen
	}

	if len(current) > 0 {
		chunks = append(chunks, c.emit(current, len(chunks), baseMetadata))
	}

	return chunks
}

func (c *Chunker) overlapTail(sentences []string) ([]string, int) {
	var tail []string
	length := 0
	for i := len(sentences) - 1; i >= 0; i-- {
		l := utf8.RuneCountInString(sentences[i])
		if length+l > c.chunkOverlap {
			break
		}
		tail = append([]string{sentences[i]}, tail...)
		length += l
	}
	return tail, length
}

func (c *Chunker) emit(sentences []string, index int, baseMetadata map[string]interface{}) Chunk {
	content := strings.Join(sentences, " ")
	charCount := utf8.RuneCountInString(content)

	metadata := make(map[string]interface{}, len(baseMetadata)+2)
	for k, v := range baseMetadata {
		metadata[k] = v
	}
	metadata[MetaSequenceIndex] = index
	metadata[MetaCharCount] = charCount

	return Chunk{
		Content:       content,
		SequenceIndex: index,
		CharCount:     charCount,
		Metadata:      metadata,
	}
}

// cleanText collapses whitespace runs to single spaces and strips characters
// outside the permitted set. Lossy but deterministic: identical input always
// normalizes to identical output, so chunk boundaries are stable.
func cleanText(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = disallowedRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// splitSentences applies a simple boundary heuristic: a sentence ends at
// '.', '!' or '?' followed by whitespace. Abbreviations may over-split;
// accepted behavior.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			if s := strings.TrimSpace(b.String()); s != "" {
				sentences = append(sentences, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
