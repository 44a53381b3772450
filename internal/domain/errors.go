package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches DomainErrors by code and message so wrapped errors compare
// against the sentinel vars with errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeEmbedding     = "EMBEDDING_SERVICE_ERROR"
	ErrCodeIndex         = "INDEX_SERVICE_ERROR"
	ErrCodeLLM           = "LLM_SERVICE_ERROR"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// External provider errors. Nothing is retried; these surface at the request
// boundary as a 500 carrying the underlying message.
func NewEmbeddingError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeEmbedding, "embedding service failed", err)
}

func NewIndexError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeIndex, "vector index operation failed", err)
}

func NewLLMError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeLLM, "llm completion failed", err)
}

// Validation errors
var (
	ErrMissingAddress       = NewDomainError(ErrCodeValidation, "address is required")
	ErrMissingMessage       = NewDomainError(ErrCodeValidation, "message is required")
	ErrMissingQuestion      = NewDomainError(ErrCodeValidation, "question is required")
	ErrMissingRequiredField = NewDomainError(ErrCodeValidation, "missing required field")
	ErrEmptyEmbedInput      = NewDomainError(ErrCodeValidation, "cannot embed empty text")
)

// Not found errors
var (
	ErrProfileNotFound = NewDomainError(ErrCodeNotFound, "user profile not found")
	ErrTokenNotFound   = NewDomainError(ErrCodeNotFound, "token not found")
)
