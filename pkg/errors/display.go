// Package errors provides error formatting and display functions.
// Renders PressErrors with color coding for TTY output.
package errors

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m" // Error type/code
	colorYellow = "\033[33m" // Context information
	colorCyan   = "\033[36m" // Suggestions
	colorDim    = "\033[90m" // Secondary/cause info
	colorBold   = "\033[1m"  // Emphasis
)

// Formatter handles error display with optional color support.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	// When false, output is plain text suitable for logs.
	UseColor bool

	// Writer is the output destination. Defaults to os.Stderr.
	Writer io.Writer

	// Indent is the prefix for context and suggestion lines.
	Indent string
}

// DefaultFormatter returns a Formatter configured for standard error output.
// Color is enabled if stderr is a TTY.
func DefaultFormatter() *Formatter {
	return &Formatter{
		UseColor: IsTTY(os.Stderr),
		Writer:   os.Stderr,
		Indent:   "  ",
	}
}

// IsTTY returns true if the given file is a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// Format renders an error with default formatter settings.
func Format(err error) string {
	return DefaultFormatter().Format(err)
}

// Format renders an error with color coding based on formatter settings.
// For PressError, displays code, message, context, cause, and suggestions.
// For standard errors, displays a simple error message.
func (f *Formatter) Format(err error) string {
	if err == nil {
		return ""
	}

	pe, ok := AsPressError(err)
	if !ok {
		return f.formatStandardError(err)
	}
	return f.formatPressError(pe)
}

func (f *Formatter) formatStandardError(err error) string {
	var sb strings.Builder
	if f.UseColor {
		sb.WriteString(colorRed)
		sb.WriteString("Error: ")
		sb.WriteString(colorReset)
	} else {
		sb.WriteString("Error: ")
	}
	sb.WriteString(err.Error())
	return sb.String()
}

func (f *Formatter) formatPressError(pe *PressError) string {
	var sb strings.Builder

	f.writeErrorHeader(&sb, pe)
	if pe.HasContext() {
		f.writeContext(&sb, pe)
	}
	if pe.Cause != nil {
		f.writeCause(&sb, pe)
	}
	if pe.HasSuggestions() {
		f.writeSuggestions(&sb, pe)
	}

	return sb.String()
}

// writeErrorHeader writes the error type and message.
func (f *Formatter) writeErrorHeader(sb *strings.Builder, pe *PressError) {
	if f.UseColor {
		sb.WriteString(colorRed)
		sb.WriteString(colorBold)
		sb.WriteString("ERROR")
		sb.WriteString(colorReset)
		sb.WriteString(colorRed)
		sb.WriteString(" [")
		sb.WriteString(pe.Code)
		sb.WriteString("]: ")
		sb.WriteString(colorReset)
	} else {
		sb.WriteString("ERROR [")
		sb.WriteString(pe.Code)
		sb.WriteString("]: ")
	}
	sb.WriteString(pe.Message)
	sb.WriteString("\n")
}

// writeContext writes the context key-value pairs, sorted for stable output.
func (f *Formatter) writeContext(sb *strings.Builder, pe *PressError) {
	keys := make([]string, 0, len(pe.Context))
	for k := range pe.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := pe.Context[key]
		sb.WriteString(f.Indent)
		if f.UseColor {
			sb.WriteString(colorYellow)
			sb.WriteString(key)
			sb.WriteString(": ")
			sb.WriteString(colorReset)
		} else {
			sb.WriteString(key)
			sb.WriteString(": ")
		}
		sb.WriteString(value)
		sb.WriteString("\n")
	}
}

// writeCause writes the underlying cause of the error.
func (f *Formatter) writeCause(sb *strings.Builder, pe *PressError) {
	sb.WriteString(f.Indent)
	if f.UseColor {
		sb.WriteString(colorDim)
		sb.WriteString("cause: ")
		sb.WriteString(pe.Cause.Error())
		sb.WriteString(colorReset)
	} else {
		sb.WriteString("cause: ")
		sb.WriteString(pe.Cause.Error())
	}
	sb.WriteString("\n")
}

// writeSuggestions writes actionable remediation suggestions.
func (f *Formatter) writeSuggestions(sb *strings.Builder, pe *PressError) {
	if pe.HasContext() || pe.Cause != nil {
		sb.WriteString("\n")
	}

	for i, suggestion := range pe.Suggestions {
		sb.WriteString(f.Indent)
		if f.UseColor {
			sb.WriteString(colorCyan)
			sb.WriteString("→ ")
			sb.WriteString(suggestion)
			sb.WriteString(colorReset)
		} else {
			sb.WriteString("→ ")
			sb.WriteString(suggestion)
		}
		if i < len(pe.Suggestions)-1 {
			sb.WriteString("\n")
		}
	}
}

// Display writes a formatted error to the formatter's writer.
func (f *Formatter) Display(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(f.Writer, f.Format(err))
}

// Display writes a formatted error to stderr with default settings.
// This is the primary function for displaying errors to users.
func Display(err error) {
	DefaultFormatter().Display(err)
}

// Sprint returns a formatted error string without colors.
// Useful for logging or non-TTY environments.
func Sprint(err error) string {
	f := &Formatter{
		UseColor: false,
		Writer:   io.Discard,
		Indent:   "  ",
	}
	return f.Format(err)
}

// CategoryLabel returns a human-readable label for an error category.
func CategoryLabel(cat Category) string {
	switch cat {
	case CategoryConfig:
		return "Configuration Error"
	case CategoryDocument:
		return "Document Error"
	case CategoryLayout:
		return "Layout Error"
	case CategoryRender:
		return "Render Error"
	case CategoryValidation:
		return "Validation Error"
	case CategoryAPI:
		return "API Error"
	case CategoryIO:
		return "I/O Error"
	case CategoryInternal:
		return "Internal Error"
	default:
		return "Error"
	}
}
