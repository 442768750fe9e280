// Package errors provides error code constants for Insight Press.
// Error codes are organized by category for consistent handling and lookup.
package errors

// -----------------------------------------------------------------------------
// Configuration Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = "CONFIG_NOT_FOUND"

	// ErrConfigParseFailed indicates the configuration file could not be parsed.
	// Usually a YAML syntax error or invalid structure.
	ErrConfigParseFailed = "CONFIG_PARSE_FAILED"

	// ErrConfigInvalid indicates configuration values are invalid.
	ErrConfigInvalid = "CONFIG_INVALID"

	// ErrConfigInitFailed indicates config initialization failed.
	ErrConfigInitFailed = "CONFIG_INIT_FAILED"

	// ErrConfigWriteFailed indicates the config file could not be written.
	ErrConfigWriteFailed = "CONFIG_WRITE_FAILED"
)

// -----------------------------------------------------------------------------
// Document Error Codes
// -----------------------------------------------------------------------------
// Use these codes for errors in the paper content itself.

const (
	// ErrDocumentEmpty indicates no document was provided.
	ErrDocumentEmpty = "DOCUMENT_EMPTY"

	// ErrDocumentNoTitle indicates the title is missing or empty after
	// normalization.
	ErrDocumentNoTitle = "DOCUMENT_NO_TITLE"

	// ErrDocumentParseFailed indicates the document input could not be parsed.
	ErrDocumentParseFailed = "DOCUMENT_PARSE_FAILED"
)

// -----------------------------------------------------------------------------
// Layout Error Codes
// -----------------------------------------------------------------------------
// Use these codes for measurement and pagination errors.

const (
	// ErrLayoutNoPageArea indicates margins consume the whole page.
	ErrLayoutNoPageArea = "LAYOUT_NO_PAGE_AREA"

	// ErrLayoutPanic indicates a panic was recovered during a layout pass.
	ErrLayoutPanic = "LAYOUT_PANIC"
)

// -----------------------------------------------------------------------------
// Render Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrRenderFailed indicates PDF assembly failed.
	ErrRenderFailed = "RENDER_FAILED"

	// ErrRenderCompressFailed indicates stream compression failed.
	ErrRenderCompressFailed = "RENDER_COMPRESS_FAILED"
)

// -----------------------------------------------------------------------------
// Validation Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrValidationRequired indicates a required field is missing.
	ErrValidationRequired = "VALIDATION_REQUIRED"

	// ErrValidationInvalidValue indicates a value is invalid.
	ErrValidationInvalidValue = "VALIDATION_INVALID_VALUE"

	// ErrValidationOutOfRange indicates a value is outside allowed range.
	ErrValidationOutOfRange = "VALIDATION_OUT_OF_RANGE"
)

// -----------------------------------------------------------------------------
// API Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrAPIBadRequest indicates the request body could not be decoded.
	ErrAPIBadRequest = "API_BAD_REQUEST"

	// ErrAPIGenerationFailed indicates a generation request failed.
	ErrAPIGenerationFailed = "API_GENERATION_FAILED"

	// ErrAPIUnavailable indicates the server is shutting down or overloaded.
	ErrAPIUnavailable = "API_UNAVAILABLE"
)

// -----------------------------------------------------------------------------
// I/O Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrIOReadFailed indicates a file read operation failed.
	ErrIOReadFailed = "IO_READ_FAILED"

	// ErrIOWriteFailed indicates a file write operation failed.
	ErrIOWriteFailed = "IO_WRITE_FAILED"

	// ErrIOPermissionDenied indicates a permission error.
	ErrIOPermissionDenied = "IO_PERMISSION_DENIED"

	// ErrIOFileNotFound indicates a file was not found.
	ErrIOFileNotFound = "IO_FILE_NOT_FOUND"

	// ErrIODirCreateFailed indicates directory creation failed.
	ErrIODirCreateFailed = "IO_DIR_CREATE_FAILED"
)

// -----------------------------------------------------------------------------
// Internal Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrInternalError indicates an unexpected internal error.
	ErrInternalError = "INTERNAL_ERROR"

	// ErrInternalPanic indicates a panic was recovered.
	ErrInternalPanic = "INTERNAL_PANIC"
)

// CodeCategory returns the category for a given error code.
// Returns CategoryInternal if the code is not recognized.
func CodeCategory(code string) Category {
	switch code {
	case ErrConfigNotFound, ErrConfigParseFailed, ErrConfigInvalid,
		ErrConfigInitFailed, ErrConfigWriteFailed:
		return CategoryConfig

	case ErrDocumentEmpty, ErrDocumentNoTitle, ErrDocumentParseFailed:
		return CategoryDocument

	case ErrLayoutNoPageArea, ErrLayoutPanic:
		return CategoryLayout

	case ErrRenderFailed, ErrRenderCompressFailed:
		return CategoryRender

	case ErrValidationRequired, ErrValidationInvalidValue, ErrValidationOutOfRange:
		return CategoryValidation

	case ErrAPIBadRequest, ErrAPIGenerationFailed, ErrAPIUnavailable:
		return CategoryAPI

	case ErrIOReadFailed, ErrIOWriteFailed, ErrIOPermissionDenied,
		ErrIOFileNotFound, ErrIODirCreateFailed:
		return CategoryIO

	case ErrInternalError, ErrInternalPanic:
		return CategoryInternal

	default:
		return CategoryInternal
	}
}

// IsDocumentCode returns true if the code is a document error code.
func IsDocumentCode(code string) bool {
	return CodeCategory(code) == CategoryDocument
}

// IsLayoutCode returns true if the code is a layout error code.
func IsLayoutCode(code string) bool {
	return CodeCategory(code) == CategoryLayout
}

// IsConfigCode returns true if the code is a configuration error code.
func IsConfigCode(code string) bool {
	return CodeCategory(code) == CategoryConfig
}

// IsIOCode returns true if the code is an I/O error code.
func IsIOCode(code string) bool {
	return CodeCategory(code) == CategoryIO
}
