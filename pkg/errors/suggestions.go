// Package errors provides a suggestions registry for error remediation.
// Maps error codes to context-aware suggestions that help users fix issues.
package errors

import (
	"runtime"
	"sort"
)

// Context keys used to select appropriate suggestions.
const (
	// ContextOS is the operating system (e.g., "linux", "darwin", "windows")
	ContextOS = "os"

	// ContextField is the document field an error refers to.
	ContextField = "field"
)

// Suggestion represents a remediation suggestion with optional conditions.
// Conditions allow context-aware suggestions (e.g., OS-specific fixes).
type Suggestion struct {
	// Text is the suggestion message displayed to the user.
	Text string

	// Conditions are optional key-value pairs that must match the error
	// context. If empty, the suggestion applies to all contexts. If
	// multiple conditions are specified, ALL must match.
	Conditions map[string]string

	// Priority determines order when multiple suggestions apply.
	// Higher priority suggestions are shown first.
	Priority int
}

// Matches returns true if this suggestion's conditions match the given
// context. Empty conditions match any context.
func (s *Suggestion) Matches(ctx map[string]string) bool {
	if len(s.Conditions) == 0 {
		return true
	}
	for key, value := range s.Conditions {
		if ctx[key] != value {
			return false
		}
	}
	return true
}

// Registry maps error codes to their remediation suggestions.
type Registry struct {
	suggestions map[string][]Suggestion
}

// NewRegistry creates a new suggestion registry.
func NewRegistry() *Registry {
	return &Registry{
		suggestions: make(map[string][]Suggestion),
	}
}

// Register adds a suggestion for an error code.
func (r *Registry) Register(code, text string) *Registry {
	r.suggestions[code] = append(r.suggestions[code], Suggestion{
		Text: text,
	})
	return r
}

// RegisterWithCondition adds a conditional suggestion for an error code.
func (r *Registry) RegisterWithCondition(code, text string, conditions map[string]string) *Registry {
	r.suggestions[code] = append(r.suggestions[code], Suggestion{
		Text:       text,
		Conditions: conditions,
	})
	return r
}

// RegisterWithPriority adds a suggestion with explicit priority.
func (r *Registry) RegisterWithPriority(code, text string, priority int) *Registry {
	r.suggestions[code] = append(r.suggestions[code], Suggestion{
		Text:     text,
		Priority: priority,
	})
	return r
}

// Lookup returns the suggestion texts for a code whose conditions match
// the given context, ordered by descending priority.
func (r *Registry) Lookup(code string, ctx map[string]string) []string {
	candidates := r.suggestions[code]
	if len(candidates) == 0 {
		return nil
	}

	matched := make([]Suggestion, 0, len(candidates))
	for _, s := range candidates {
		if s.Matches(ctx) {
			matched = append(matched, s)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Priority > matched[j].Priority
	})

	texts := make([]string, len(matched))
	for i, s := range matched {
		texts[i] = s.Text
	}
	return texts
}

// defaultRegistry holds the built-in suggestions for known error codes.
var defaultRegistry = buildDefaultRegistry()

// buildDefaultRegistry registers the standard remediation guidance.
func buildDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(ErrConfigNotFound, "Run with -init to create a default configuration file")
	r.Register(ErrConfigNotFound, "Specify an explicit path with the -config flag")
	r.Register(ErrConfigParseFailed, "Check the file for YAML syntax errors")
	r.Register(ErrConfigInvalid, "Compare against the defaults produced by -init")

	r.Register(ErrDocumentEmpty, "Provide a document with at least a title")
	r.Register(ErrDocumentNoTitle, "Set the title field; markup-only titles normalize to empty")
	r.Register(ErrDocumentParseFailed, "Check the input file for JSON syntax errors")

	r.Register(ErrLayoutNoPageArea, "Reduce the margin or increase the page size")
	r.Register(ErrLayoutPanic, "Report this with the input document attached")

	r.Register(ErrIOFileNotFound, "Check the path for typos")
	r.Register(ErrIOWriteFailed, "Verify write permissions for the output directory")
	r.Register(ErrIOPermissionDenied, "Try writing to a different location")
	r.RegisterWithCondition(ErrIOPermissionDenied,
		"Check directory ownership with ls -la",
		map[string]string{ContextOS: "linux"})

	r.Register(ErrAPIBadRequest, "Send a JSON body matching the documented request shape")

	return r
}

// platformContext returns the ambient context merged with the error's own.
func platformContext(e *PressError) map[string]string {
	ctx := map[string]string{ContextOS: runtime.GOOS}
	for k, v := range e.Context {
		ctx[k] = v
	}
	return ctx
}

// AttachSuggestions looks up registry suggestions for the error's code and
// appends any that match its context. Returns the error for chaining.
func AttachSuggestions(e *PressError) *PressError {
	for _, text := range defaultRegistry.Lookup(e.Code, platformContext(e)) {
		e.Suggestions = append(e.Suggestions, text)
	}
	return e
}
