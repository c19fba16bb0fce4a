package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestPacketError_String(t *testing.T) {
	tests := []struct {
		name     string
		err      *PacketError
		expected string
	}{
		{
			name:     "message only",
			err:      &PacketError{Message: "something went wrong"},
			expected: "something went wrong",
		},
		{
			name:     "with line and column",
			err:      &PacketError{Message: "unexpected token ']'", Line: 5, Column: 10},
			expected: "line 5, column 10: unexpected token ']'",
		},
		{
			name:     "with file",
			err:      &PacketError{Message: "parse error", File: "input.txt", Line: 3, Column: 1},
			expected: "input.txt: line 3, column 1: parse error",
		},
		{
			name:     "with hints",
			err:      &PacketError{Message: "unexpected input ' '", Line: 1, Column: 3, Hints: []string{"remove spaces"}},
			expected: "line 1, column 3: unexpected input ' '\n  remove spaces",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPacketError_PrettyString(t *testing.T) {
	tests := []struct {
		name     string
		err      *PacketError
		contains []string
	}{
		{
			name:     "lexer error",
			err:      &PacketError{Class: ClassLex, Message: "unexpected input 'a'", Line: 2, Column: 4},
			contains: []string{"Lexer error", "line 2, column 4", "unexpected input 'a'"},
		},
		{
			name:     "parser error with file",
			err:      &PacketError{Class: ClassParse, Message: "expected ']'", File: "in.txt", Line: 1, Column: 5, Hints: []string{"close the list"}},
			contains: []string{"Parser error", "in: in.txt", "at: line 1, column 5", "hint: close the list"},
		},
		{
			name:     "input error",
			err:      &PacketError{Class: ClassInput, Message: "packets must come in pairs, got 3"},
			contains: []string{"Input error", "got 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.PrettyString()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("PrettyString() = %q, should contain %q", got, want)
				}
			}
		})
	}
}

func TestNew_WithCatalog(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		data      map[string]any
		wantClass ErrorClass
		wantMsg   string
	}{
		{"unexpected input", CodeUnexpectedInput, map[string]any{"Char": "'a'"}, ClassLex, "unexpected input 'a'"},
		{"integer out of range", CodeIntegerOutOfRange, map[string]any{"Literal": "99999999999999999999"}, ClassLex, "integer out of range: 99999999999999999999"},
		{"expected token", CodeExpectedToken, map[string]any{"Expected": "]", "Got": "END_OF_INPUT"}, ClassParse, "expected ']', got 'END_OF_INPUT'"},
		{"unexpected token", CodeUnexpectedToken, map[string]any{"Token": ","}, ClassParse, "unexpected token ','"},
		{"odd count", CodeOddPacketCount, map[string]any{"Count": 3}, ClassInput, "packets must come in pairs, got 3"},
		{"unknown code", "UNKNOWN-9999", map[string]any{"message": "custom"}, ClassInput, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.data)
			if err.Class != tt.wantClass {
				t.Errorf("Class = %v, want %v", err.Class, tt.wantClass)
			}
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := NewWithPosition(CodeExpectedToken, 1, 2, map[string]any{"Expected": "]", "Got": ","})
	wrapped := fmt.Errorf("reading input: %w", err)

	if !stderrors.Is(wrapped, ErrExpectedToken) {
		t.Error("wrapped error should match ErrExpectedToken")
	}
	if stderrors.Is(wrapped, ErrUnexpectedToken) {
		t.Error("wrapped error should not match ErrUnexpectedToken")
	}
	if stderrors.Is(&PacketError{}, &PacketError{}) {
		t.Error("errors without a code must not match")
	}
}

func TestToJSON(t *testing.T) {
	err := NewWithPosition(CodeUnexpectedToken, 5, 10, map[string]any{"Token": "]"})
	data, jsonErr := err.ToJSON()
	if jsonErr != nil {
		t.Fatalf("ToJSON() error = %v", jsonErr)
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if parsed["class"] != "parse" || parsed["code"] != CodeUnexpectedToken {
		t.Errorf("class/code = %v/%v", parsed["class"], parsed["code"])
	}
	if parsed["line"].(float64) != 5 {
		t.Errorf("line = %v, want 5", parsed["line"])
	}
}

func TestWithFile(t *testing.T) {
	orig := New(CodeOddPacketCount, map[string]any{"Count": 1})
	withFile := orig.WithFile("input.txt")
	if orig.File != "" {
		t.Error("WithFile must not modify the original")
	}
	if withFile.File != "input.txt" {
		t.Errorf("File = %q", withFile.File)
	}
}
