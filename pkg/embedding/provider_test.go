package embedding

import "testing"

// The postgres document_units schema pins the embedding column at
// vector(768); providers used with that store must report 768.
func TestProviderDefaultDimensionsMatchSchema(t *testing.T) {
	if d := NewGeminiProvider("key").Dimension(); d != 768 {
		t.Errorf("gemini dimension = %d, want 768", d)
	}
	if d := NewOllamaProvider("", "", 0).Dimension(); d != 768 {
		t.Errorf("ollama default dimension = %d, want 768", d)
	}
}

func TestOllamaProviderDimensionConfigurable(t *testing.T) {
	if d := NewOllamaProvider("", "", 1024).Dimension(); d != 1024 {
		t.Errorf("ollama dimension = %d, want 1024", d)
	}
}
