package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of an error message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Consequence  string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized error message with suggestions and help commands
//
// Example output:
//
//	❌ NOT FOUND: Engine.Actr
//	   No class, struct or enum is named 'Engine.Actr'.
//
//	   Did you mean: Engine.Actor?
//
//	   → Search by name: classview query Actr
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	var headerColor, bodyColor *color.Color
	var symbol string

	switch opts.Level {
	case ErrorLevelWarning:
		headerColor = newColor(opts.NoColor, color.FgYellow, color.Bold)
		bodyColor = newColor(opts.NoColor, color.FgYellow)
		symbol = "⚠️"
	case ErrorLevelInfo:
		headerColor = newColor(opts.NoColor, color.FgCyan, color.Bold)
		bodyColor = newColor(opts.NoColor, color.FgCyan)
		symbol = "ℹ️"
	default:
		headerColor = newColor(opts.NoColor, color.FgRed, color.Bold)
		bodyColor = newColor(opts.NoColor, color.FgRed)
		symbol = "❌"
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s\n", symbol, strings.ToUpper(opts.Context))
		bodyColor.Fprintf(&b, "   %s\n", opts.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if opts.Consequence != "" {
		b.WriteString("\n")
		bodyColor.Fprintf(&b, "   %s\n", opts.Consequence)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		newColor(opts.NoColor, color.FgYellow).Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := newColor(opts.NoColor, color.FgCyan)
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	return newColor(noColor, color.FgGreen, color.Bold).Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// NotFoundError reports a FullName that resolves to no entity.
func NotFoundError(fullName string, suggestions []string, noColor bool) string {
	short := fullName
	if i := strings.LastIndexByte(fullName, '.'); i >= 0 {
		short = fullName[i+1:]
	}
	return FormatError(ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "not found: " + fullName,
		Problem:     fmt.Sprintf("No class, struct or enum is named '%s'.", fullName),
		Suggestions: suggestions,
		HelpCommands: []string{
			fmt.Sprintf("Search by name: classview query %s", short),
		},
		NoColor: noColor,
	})
}

// QueryError reports a rejected filter query.
func QueryError(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: "invalid query",
		Problem: message,
		HelpCommands: []string{
			"Filter keys: name, extends, deepextends, namespace, has, hasprop",
			"Modifiers: ! negates, \" matches exactly, . matches case",
		},
		NoColor: noColor,
	})
}

// ConfigError creates a standardized configuration error
func ConfigError(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: "configuration error",
		Problem: message,
		HelpCommands: []string{
			"View config: cat classview.yaml",
			"Override with environment: CLASSVIEW_<SECTION>_<KEY>",
		},
		NoColor: noColor,
	})
}

// Warning creates a standardized warning message
func Warning(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelWarning,
		Problem: message,
		NoColor: noColor,
	})
}
