package extractor

import (
	"fmt"
	"os"
	"strings"
)

// UnsupportedFormatError marks files whose binary format has no extractor.
// The ingest consumer records it on the document instead of retrying.
type UnsupportedFormatError struct {
	ContentType string
	Path        string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("no text extractor for %s (%s)", e.ContentType, e.Path)
}

// Extractor turns an uploaded file into plain text for chunking.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// ExtractText reads the file and returns its text content. Plain-text formats
// are read directly; PDF and DOCX need binary parsers this service does not
// ship, so they fail with UnsupportedFormatError.
func (e *Extractor) ExtractText(path, contentType string) (string, error) {
	switch {
	case contentType == "application/pdf" || strings.HasSuffix(path, ".pdf"):
		return "", &UnsupportedFormatError{ContentType: "application/pdf", Path: path}
	case contentType == "application/vnd.openxmlformats-officedocument.wordprocessingml.document" ||
		contentType == "application/msword" ||
		strings.HasSuffix(path, ".docx"):
		return "", &UnsupportedFormatError{ContentType: contentType, Path: path}
	default:
		return e.extractPlainText(path)
	}
}

func (e *Extractor) extractPlainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from file: %w", err)
	}
	return string(data), nil
}
