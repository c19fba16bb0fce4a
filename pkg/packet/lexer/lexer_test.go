package lexer

import (
	"errors"
	"testing"

	perrors "github.com/sambeau/distress/pkg/packet/errors"
)

type kv struct {
	Type  TokenType
	Value uint64
}

func kinds(tokens []Token) []kv {
	out := make([]kv, len(tokens))
	for i, tok := range tokens {
		out[i] = kv{tok.Type, tok.Value}
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []kv
	}{
		{
			name:     "empty input",
			input:    "",
			expected: []kv{{EOF, 0}},
		},
		{
			name:  "nested list",
			input: "[1,[2,3],4]",
			expected: []kv{
				{LBRACKET, 0}, {INT, 1}, {COMMA, 0}, {LBRACKET, 0}, {INT, 2}, {COMMA, 0},
				{INT, 3}, {RBRACKET, 0}, {COMMA, 0}, {INT, 4}, {RBRACKET, 0}, {EOF, 0},
			},
		},
		{
			name:     "maximal munch",
			input:    "12]",
			expected: []kv{{INT, 12}, {RBRACKET, 0}, {EOF, 0}},
		},
		{
			name:     "digits at end of input",
			input:    "9",
			expected: []kv{{INT, 9}, {EOF, 0}},
		},
		{
			name:     "newlines are skipped",
			input:    "[]\n\n[10]\n",
			expected: []kv{{LBRACKET, 0}, {RBRACKET, 0}, {LBRACKET, 0}, {INT, 10}, {RBRACKET, 0}, {EOF, 0}},
		},
		{
			name:     "max uint64",
			input:    "[18446744073709551615]",
			expected: []kv{{LBRACKET, 0}, {INT, 18446744073709551615}, {RBRACKET, 0}, {EOF, 0}},
		},
		{
			name:     "leading zeros",
			input:    "007",
			expected: []kv{{INT, 7}, {EOF, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) unexpected error: %v", tt.input, err)
			}
			got := kinds(tokens)
			if len(got) != len(tt.expected) {
				t.Fatalf("Tokenize(%q) returned %d tokens, want %d: %v", tt.input, len(got), len(tt.expected), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestTokenizeSingleEOF(t *testing.T) {
	for _, input := range []string{"", "\n", "[[]]", "[1]\n[2]\n"} {
		tokens, err := Tokenize(input)
		if err != nil {
			t.Fatalf("Tokenize(%q) unexpected error: %v", input, err)
		}
		eofs := 0
		for _, tok := range tokens {
			if tok.Type == EOF {
				eofs++
			}
		}
		if eofs != 1 || tokens[len(tokens)-1].Type != EOF {
			t.Errorf("Tokenize(%q): expected exactly one trailing EOF, got %v", input, tokens)
		}
	}
}

func TestTokenizeUnexpectedInput(t *testing.T) {
	tests := []struct {
		input  string
		char   byte
		line   int
		column int
	}{
		{"[1,a]", 'a', 1, 4},
		{"a", 'a', 1, 1},
		{"[1]\n[2, 3]", ' ', 2, 4},
		{"[1]\r\n", '\r', 1, 4},
		{"[-1]", '-', 1, 2},
	}

	for _, tt := range tests {
		tokens, err := Tokenize(tt.input)
		if err == nil {
			t.Errorf("Tokenize(%q): expected error, got %v", tt.input, tokens)
			continue
		}
		if tokens != nil {
			t.Errorf("Tokenize(%q): expected no partial result, got %v", tt.input, tokens)
		}
		if !errors.Is(err, perrors.ErrUnexpectedInput) {
			t.Errorf("Tokenize(%q): expected UnexpectedInput, got %v", tt.input, err)
			continue
		}
		var pe *perrors.PacketError
		if !errors.As(err, &pe) {
			t.Fatalf("Tokenize(%q): expected *PacketError, got %T", tt.input, err)
		}
		if b, _ := pe.Data["Byte"].(byte); b != tt.char {
			t.Errorf("Tokenize(%q): byte = %q, want %q", tt.input, b, tt.char)
		}
		if pe.Line != tt.line || pe.Column != tt.column {
			t.Errorf("Tokenize(%q): position = %d:%d, want %d:%d", tt.input, pe.Line, pe.Column, tt.line, tt.column)
		}
	}
}

func TestTokenizeIntegerOutOfRange(t *testing.T) {
	_, err := Tokenize("[18446744073709551616]")
	if !errors.Is(err, perrors.ErrIntegerOutOfRange) {
		t.Fatalf("expected IntegerOutOfRange, got %v", err)
	}
	var pe *perrors.PacketError
	errors.As(err, &pe)
	if pe.Data["Literal"] != "18446744073709551616" {
		t.Errorf("literal = %v", pe.Data["Literal"])
	}
}

func TestTokenPositions(t *testing.T) {
	tokens, err := Tokenize("[1]\n[22,3]")
	if err != nil {
		t.Fatal(err)
	}
	want := []struct{ line, col int }{
		{1, 1}, {1, 2}, {1, 3}, {2, 1}, {2, 2}, {2, 4}, {2, 5}, {2, 6},
	}
	for i, w := range want {
		if tokens[i].Line != w.line || tokens[i].Column != w.col {
			t.Errorf("token %d (%s): position %d:%d, want %d:%d",
				i, tokens[i], tokens[i].Line, tokens[i].Column, w.line, w.col)
		}
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Type: LBRACKET}, "["},
		{Token{Type: RBRACKET}, "]"},
		{Token{Type: COMMA}, ","},
		{Token{Type: INT, Value: 42}, "42"},
		{Token{Type: EOF}, "END_OF_INPUT"},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.tok.Type, got, tt.want)
		}
	}
	if got := TokenType(99).String(); got != "TokenType(99)" {
		t.Errorf("unknown type String() = %q", got)
	}
}
