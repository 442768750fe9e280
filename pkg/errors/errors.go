// Package errors provides structured error types for Insight Press.
// Errors include context, causes, and actionable suggestions.
package errors

import (
	"fmt"
	"strings"
)

// Category classifies errors for consistent handling and display.
type Category string

const (
	CategoryConfig     Category = "config"     // Configuration loading/parsing errors
	CategoryDocument   Category = "document"   // Paper content/structure errors
	CategoryLayout     Category = "layout"     // Measurement and pagination errors
	CategoryRender     Category = "render"     // PDF assembly errors
	CategoryValidation Category = "validation" // Input validation errors
	CategoryAPI        Category = "api"        // HTTP/WebSocket surface errors
	CategoryIO         Category = "io"         // File/IO errors
	CategoryInternal   Category = "internal"   // Internal/unexpected errors
)

// PressError is a structured error with context and suggestions.
// It implements the error interface and supports error wrapping.
type PressError struct {
	// Code is a unique identifier for this error type (e.g., "DOCUMENT_NO_TITLE")
	Code string

	// Category classifies this error for consistent handling
	Category Category

	// Message is the primary error message describing what went wrong
	Message string

	// Context provides additional key-value details about the error
	Context map[string]string

	// Cause is the underlying error that triggered this error (for wrapping)
	Cause error

	// Suggestions are actionable remediation steps for the user
	Suggestions []string
}

// Error implements the error interface.
func (e *PressError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain inspection.
// This enables errors.Is() and errors.As() to work with PressError.
func (e *PressError) Unwrap() error {
	return e.Cause
}

// Is reports whether e matches target for errors.Is() checks.
// Two PressErrors match if they have the same Code.
func (e *PressError) Is(target error) bool {
	if t, ok := target.(*PressError); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new PressError with the given code, category, and message.
func New(code string, category Category, message string) *PressError {
	return &PressError{
		Code:     code,
		Category: category,
		Message:  message,
		Context:  make(map[string]string),
	}
}

// WithContext adds a context key-value pair and returns the error for chaining.
func (e *PressError) WithContext(key, value string) *PressError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithContextMap adds multiple context key-value pairs.
func (e *PressError) WithContextMap(ctx map[string]string) *PressError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	for k, v := range ctx {
		e.Context[k] = v
	}
	return e
}

// WithCause wraps an underlying error and returns the error for chaining.
func (e *PressError) WithCause(cause error) *PressError {
	e.Cause = cause
	return e
}

// WithSuggestion adds a remediation suggestion and returns the error for chaining.
func (e *PressError) WithSuggestion(suggestion string) *PressError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple remediation suggestions.
func (e *PressError) WithSuggestions(suggestions ...string) *PressError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// HasContext returns true if the error has context information.
func (e *PressError) HasContext() bool {
	return len(e.Context) > 0
}

// HasSuggestions returns true if the error has suggestions.
func (e *PressError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// ContextString returns a formatted string of all context entries.
func (e *PressError) ContextString() string {
	if len(e.Context) == 0 {
		return ""
	}
	var parts []string
	for k, v := range e.Context {
		parts = append(parts, fmt.Sprintf("%s=%q", k, v))
	}
	return strings.Join(parts, ", ")
}

// Wrap wraps an existing error with a PressError.
func Wrap(err error, code string, category Category, message string) *PressError {
	return New(code, category, message).WithCause(err)
}

// AsPressError attempts to convert an error to a PressError.
// Returns the PressError and true if successful, nil and false otherwise.
func AsPressError(err error) (*PressError, bool) {
	if err == nil {
		return nil, false
	}
	if pe, ok := err.(*PressError); ok {
		return pe, true
	}
	return nil, false
}

// IsCategory checks if an error is a PressError with the given category.
func IsCategory(err error, category Category) bool {
	if pe, ok := AsPressError(err); ok {
		return pe.Category == category
	}
	return false
}

// IsCode checks if an error is a PressError with the given code.
func IsCode(err error, code string) bool {
	if pe, ok := AsPressError(err); ok {
		return pe.Code == code
	}
	return false
}

// -----------------------------------------------------------------------------
// Smart Constructors with Auto-Attached Suggestions
// -----------------------------------------------------------------------------

// Config creates a configuration error with auto-attached suggestions.
// The error code should be one of the ErrConfig* constants.
func Config(code, message string) *PressError {
	return AttachSuggestions(New(code, CategoryConfig, message))
}

// Configf creates a configuration error with a formatted message.
func Configf(code, format string, args ...interface{}) *PressError {
	return Config(code, fmt.Sprintf(format, args...))
}

// ConfigWrap wraps an error as a configuration error with suggestions.
func ConfigWrap(cause error, code, message string) *PressError {
	return AttachSuggestions(Wrap(cause, code, CategoryConfig, message))
}

// Document creates a paper content/structure error with suggestions.
// The error code should be one of the ErrDocument* constants.
func Document(code, message string) *PressError {
	return AttachSuggestions(New(code, CategoryDocument, message))
}

// Documentf creates a document error with a formatted message.
func Documentf(code, format string, args ...interface{}) *PressError {
	return Document(code, fmt.Sprintf(format, args...))
}

// Layout creates a measurement/pagination error with suggestions.
// The error code should be one of the ErrLayout* constants.
func Layout(code, message string) *PressError {
	return AttachSuggestions(New(code, CategoryLayout, message))
}

// Layoutf creates a layout error with a formatted message.
func Layoutf(code, format string, args ...interface{}) *PressError {
	return Layout(code, fmt.Sprintf(format, args...))
}

// Render creates a PDF assembly error with suggestions.
func Render(code, message string) *PressError {
	return AttachSuggestions(New(code, CategoryRender, message))
}

// RenderWrap wraps an error as a render error with suggestions.
func RenderWrap(cause error, code, message string) *PressError {
	return AttachSuggestions(Wrap(cause, code, CategoryRender, message))
}

// Validation creates a validation error with suggestions.
func Validation(code, message string) *PressError {
	return AttachSuggestions(New(code, CategoryValidation, message))
}

// Validationf creates a validation error with a formatted message.
func Validationf(code, format string, args ...interface{}) *PressError {
	return Validation(code, fmt.Sprintf(format, args...))
}

// API creates an HTTP/WebSocket surface error with suggestions.
func API(code, message string) *PressError {
	return AttachSuggestions(New(code, CategoryAPI, message))
}

// APIf creates an API error with a formatted message.
func APIf(code, format string, args ...interface{}) *PressError {
	return API(code, fmt.Sprintf(format, args...))
}

// IO creates a file/IO error with suggestions.
func IO(code, message string) *PressError {
	return AttachSuggestions(New(code, CategoryIO, message))
}

// IOWrap wraps an error as an IO error with suggestions.
func IOWrap(cause error, code, message string) *PressError {
	return AttachSuggestions(Wrap(cause, code, CategoryIO, message))
}

// Internal creates an internal/unexpected error with suggestions.
func Internal(code, message string) *PressError {
	return AttachSuggestions(New(code, CategoryInternal, message))
}

// Internalf creates an internal error with a formatted message.
func Internalf(code, format string, args ...interface{}) *PressError {
	return Internal(code, fmt.Sprintf(format, args...))
}

// -----------------------------------------------------------------------------
// Quick Constructors for Common Error Codes
// -----------------------------------------------------------------------------

// ConfigNotFound creates a CONFIG_NOT_FOUND error.
func ConfigNotFound(path string) *PressError {
	return Config(ErrConfigNotFound, "configuration file not found").
		WithContext("path", path)
}

// ConfigParseError creates a CONFIG_PARSE_FAILED error.
func ConfigParseError(path string, cause error) *PressError {
	return ConfigWrap(cause, ErrConfigParseFailed, "failed to parse configuration file").
		WithContext("path", path)
}

// DocumentNoTitle creates a DOCUMENT_NO_TITLE error.
func DocumentNoTitle() *PressError {
	return Document(ErrDocumentNoTitle, "document title is required")
}

// DocumentEmpty creates a DOCUMENT_EMPTY error.
func DocumentEmpty() *PressError {
	return Document(ErrDocumentEmpty, "no document provided")
}

// LayoutNoPageArea creates a LAYOUT_NO_PAGE_AREA error.
func LayoutNoPageArea(width, height, margin float64) *PressError {
	return Layout(ErrLayoutNoPageArea, "margins leave no usable page area").
		WithContext("page_width", fmt.Sprintf("%.1f", width)).
		WithContext("page_height", fmt.Sprintf("%.1f", height)).
		WithContext("margin", fmt.Sprintf("%.1f", margin))
}

// LayoutPanic creates a LAYOUT_PANIC error for recovered panics.
func LayoutPanic(recovered interface{}) *PressError {
	return Layoutf(ErrLayoutPanic, "layout failed: %v", recovered)
}

// ValidationRequired creates a VALIDATION_REQUIRED error.
func ValidationRequired(field string) *PressError {
	return Validationf(ErrValidationRequired, "required field is missing: %s", field).
		WithContext("field", field)
}

// ValidationInvalid creates a VALIDATION_INVALID_VALUE error.
func ValidationInvalid(field, value, reason string) *PressError {
	return Validationf(ErrValidationInvalidValue, "invalid value for %s: %s", field, reason).
		WithContext("field", field).
		WithContext("value", value)
}

// IOFileNotFound creates an IO_FILE_NOT_FOUND error.
func IOFileNotFound(path string) *PressError {
	return IO(ErrIOFileNotFound, "file not found: "+path).
		WithContext("path", path)
}

// IOWriteError creates an IO_WRITE_FAILED error.
func IOWriteError(path string, cause error) *PressError {
	return IOWrap(cause, ErrIOWriteFailed, "failed to write file").
		WithContext("path", path)
}

// InternalPanic creates an INTERNAL_PANIC error for recovered panics.
func InternalPanic(recovered interface{}) *PressError {
	return Internalf(ErrInternalPanic, "panic recovered: %v", recovered)
}
