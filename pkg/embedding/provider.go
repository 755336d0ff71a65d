package embedding

import "context"

// Provider generates embedding vectors for batches of text. Implementations
// must preserve input order and return exactly one vector per input text.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension is the fixed length of vectors this provider produces.
	Dimension() int
}
