package apperrors

import "errors"

// Sentinel errors shared between services and the HTTP error middleware.
var (
	ErrDocumentNotFound    = errors.New("document not found")
	ErrNoRelevantContext   = errors.New("no relevant documents found")
	ErrUnsupportedFileType = errors.New("unsupported file type. Allowed: PDF, TXT, DOCX")
	ErrServiceUnavailable  = errors.New("language model service unavailable")
)
