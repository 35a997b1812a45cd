package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategorySelector Category = "selector"
	CategoryBinding  Category = "binding"
	CategoryScenario Category = "scenario"
	CategoryConfig   Category = "config"
	CategoryProtocol Category = "protocol"
)

// Location represents a position in a source file.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// LiveError is a structured error with a code, an optional source location
// and a fix suggestion.
type LiveError struct {
	// Code is a unique error identifier (e.g., "L001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the source position the error refers to.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *LiveError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *LiveError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a source location and reads the lines around it.
func (e *LiveError) WithLocation(file string, line, column int) *LiveError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *LiveError) WithSuggestion(s string) *LiveError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the detailed explanation.
func (e *LiveError) WithDetail(d string) *LiveError {
	e.Detail = d
	return e
}

// WithDetailf replaces the detailed explanation with a formatted one.
func (e *LiveError) WithDetailf(format string, args ...any) *LiveError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *LiveError) Wrap(err error) *LiveError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a LiveError from a registered error code.
func New(code string) *LiveError {
	template, ok := registry[code]
	if !ok {
		return &LiveError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &LiveError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a LiveError with a formatted message and no code.
func Newf(category Category, format string, args ...any) *LiveError {
	return &LiveError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps err in a LiveError with code. An err that already is a
// LiveError is returned as is.
func FromError(err error, code string) *LiveError {
	if err == nil {
		return nil
	}
	var le *LiveError
	if stderrors.As(err, &le) {
		return le
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first LiveError in err's chain, or "".
func Code(err error) string {
	var le *LiveError
	if stderrors.As(err, &le) {
		return le.Code
	}
	return ""
}
