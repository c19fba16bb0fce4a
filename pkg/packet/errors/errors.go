// Package errors provides structured error types for packet tooling.
//
// This package defines PacketError, a single error type used by the lexer,
// the parser and the solver. Errors are created from a catalog of codes so that
// callers can match on the code (directly or with errors.Is) while users see a
// rendered, human-readable message.
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// ErrorClass categorizes errors for filtering and display.
type ErrorClass string

const (
	ClassLex   ErrorClass = "lex"   // Unrecognized input bytes, bad literals
	ClassParse ErrorClass = "parse" // Grammar violations
	ClassInput ErrorClass = "input" // Unusable packet collections, unreadable files
)

// Error codes in the catalog.
const (
	CodeUnexpectedInput   = "LEX-0001"
	CodeIntegerOutOfRange = "LEX-0002"
	CodeExpectedToken     = "PARSE-0001"
	CodeUnexpectedToken   = "PARSE-0002"
	CodeNestingTooDeep    = "PARSE-0003"
	CodeOddPacketCount    = "INPUT-0001"
	CodeUnreadableInput   = "INPUT-0002"
)

// Sentinels for use with errors.Is. Only the Code is compared.
var (
	ErrUnexpectedInput   = &PacketError{Code: CodeUnexpectedInput}
	ErrIntegerOutOfRange = &PacketError{Code: CodeIntegerOutOfRange}
	ErrExpectedToken     = &PacketError{Code: CodeExpectedToken}
	ErrUnexpectedToken   = &PacketError{Code: CodeUnexpectedToken}
	ErrNestingTooDeep    = &PacketError{Code: CodeNestingTooDeep}
	ErrOddPacketCount    = &PacketError{Code: CodeOddPacketCount}
	ErrUnreadableInput   = &PacketError{Code: CodeUnreadableInput}
)

// PacketError represents any error from lexing, parsing or solving.
type PacketError struct {
	Class   ErrorClass     `json:"class"`           // Error category
	Code    string         `json:"code"`            // Error code (e.g., "LEX-0001")
	Message string         `json:"message"`         // Human-readable message
	Hints   []string       `json:"hints,omitempty"` // Suggestions for fixing
	Line    int            `json:"line"`            // 1-based line (0 if unknown)
	Column  int            `json:"column"`          // 1-based column (0 if unknown)
	File    string         `json:"file,omitempty"`  // File path (if known)
	Data    map[string]any `json:"data,omitempty"`  // Template variables
}

// Error implements the error interface.
func (e *PacketError) Error() string {
	return e.String()
}

// Is reports whether target is a PacketError with the same code.
func (e *PacketError) Is(target error) bool {
	t, ok := target.(*PacketError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// String returns a formatted string representation of the error.
func (e *PacketError) String() string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(e.File)
		sb.WriteString(": ")
	}
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("line %d, column %d: ", e.Line, e.Column))
	}

	sb.WriteString(e.Message)

	for _, hint := range e.Hints {
		sb.WriteString("\n  ")
		sb.WriteString(hint)
	}

	return sb.String()
}

// PrettyString returns a multi-line formatted string for display.
func (e *PacketError) PrettyString() string {
	var sb strings.Builder

	switch e.Class {
	case ClassLex:
		sb.WriteString("Lexer error")
	case ClassParse:
		sb.WriteString("Parser error")
	default:
		sb.WriteString("Input error")
	}

	if e.File != "" {
		sb.WriteString(":\n  in: ")
		sb.WriteString(e.File)
		if e.Line > 0 {
			sb.WriteString(fmt.Sprintf("\n  at: line %d, column %d", e.Line, e.Column))
		}
		sb.WriteString("\n  ")
	} else if e.Line > 0 {
		sb.WriteString(fmt.Sprintf(": line %d, column %d\n  ", e.Line, e.Column))
	} else {
		sb.WriteString(":\n  ")
	}

	sb.WriteString(e.Message)

	for i, hint := range e.Hints {
		sb.WriteString("\n  ")
		if i == 0 {
			sb.WriteString("hint: ")
		} else {
			sb.WriteString("  or: ")
		}
		sb.WriteString(hint)
	}

	return sb.String()
}

// ToJSON returns the error as JSON bytes.
func (e *PacketError) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// WithFile returns a copy of the error with the file path set.
func (e *PacketError) WithFile(file string) *PacketError {
	copy := *e
	copy.File = file
	return &copy
}

// ErrorDef defines an error in the catalog.
type ErrorDef struct {
	Class    ErrorClass // Error category
	Template string     // Message template with {{.placeholders}}
	Hints    []string   // Hint templates (may use {{.placeholders}})
}

// ErrorCatalog maps error codes to their definitions.
var ErrorCatalog = map[string]ErrorDef{
	CodeUnexpectedInput: {
		Class:    ClassLex,
		Template: "unexpected input {{.Char}}",
		Hints:    []string{"packets may only contain digits, '[', ']', ',' and newlines"},
	},
	CodeIntegerOutOfRange: {
		Class:    ClassLex,
		Template: "integer out of range: {{.Literal}}",
		Hints:    []string{"integers must fit in an unsigned 64-bit value"},
	},
	CodeExpectedToken: {
		Class:    ClassParse,
		Template: "expected '{{.Expected}}', got '{{.Got}}'",
	},
	CodeUnexpectedToken: {
		Class:    ClassParse,
		Template: "unexpected token '{{.Token}}'",
	},
	CodeNestingTooDeep: {
		Class:    ClassParse,
		Template: "maximum nesting depth ({{.Max}}) exceeded",
	},
	CodeOddPacketCount: {
		Class:    ClassInput,
		Template: "packets must come in pairs, got {{.Count}}",
	},
	CodeUnreadableInput: {
		Class:    ClassInput,
		Template: "cannot read {{.Path}}: {{.Reason}}",
	},
}

// New creates a PacketError from the catalog.
// If the code is not found, creates a generic input error with the message.
func New(code string, data map[string]any) *PacketError {
	def, ok := ErrorCatalog[code]
	if !ok {
		msg := code
		if data != nil {
			if m, ok := data["message"].(string); ok {
				msg = m
			}
		}
		return &PacketError{
			Class:   ClassInput,
			Code:    code,
			Message: msg,
			Data:    data,
		}
	}

	msg := renderTemplate(def.Template, data)

	var hints []string
	for _, hintTmpl := range def.Hints {
		rendered := renderTemplate(hintTmpl, data)
		if rendered != "" {
			hints = append(hints, rendered)
		}
	}

	return &PacketError{
		Class:   def.Class,
		Code:    code,
		Message: msg,
		Hints:   hints,
		Data:    data,
	}
}

// NewWithPosition creates a PacketError with position information.
func NewWithPosition(code string, line, column int, data map[string]any) *PacketError {
	err := New(code, data)
	err.Line = line
	err.Column = column
	return err
}

// renderTemplate renders a Go template with the given data.
func renderTemplate(tmplStr string, data map[string]any) string {
	if data == nil {
		return tmplStr
	}

	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return tmplStr
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return tmplStr
	}

	return buf.String()
}
