package ebnflex

import (
	"strings"
	"testing"
)

const testGrammar = `
Number = digit { digit } .
Ident = letter { letter | digit } .
Arrow = "->" .
Minus = "-" .
Quote = "\"" { "a" … "z" | "é" } "\"" .
Space = " " { " " } .
digit = "0" … "9" .
letter = "a" … "z" .
`

func tokenize(t *testing.T, input string) []Token {
	t.Helper()
	g, err := ParseGrammar("test.ebnf", strings.NewReader(testGrammar))
	if err != nil {
		t.Fatalf("ParseGrammar: %v", err)
	}
	toks, err := NewLexer(g, []byte(input), "in").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	return toks
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"abc 12", []string{"Ident:abc", "Space: ", "Number:12", "EOF:"}},
		{"a1->b", []string{"Ident:a1", "Arrow:->", "Ident:b", "EOF:"}},
		{"-x", []string{"Minus:-", "Ident:x", "EOF:"}},
		{`"hé"`, []string{`Quote:"hé"`, "EOF:"}},
		{`""`, []string{`Quote:""`, "EOF:"}},
		{"a?", []string{"Ident:a", "ERROR:?", "EOF:"}},
		{"", []string{"EOF:"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := tokenize(t, tt.input)
			var got []string
			for _, tok := range toks {
				got = append(got, tok.Kind+":"+tok.Literal)
			}
			if strings.Join(got, " | ") != strings.Join(tt.want, " | ") {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPositions(t *testing.T) {
	toks := tokenize(t, "ab\n  c")
	if len(toks) != 5 {
		t.Fatalf("expected 5 tokens, got %d: %v", len(toks), toks)
	}
	// newline is not a token in the test grammar
	if toks[1].Kind != KindError || toks[1].Literal != "\n" {
		t.Fatalf("expected newline error token, got %v", toks[1])
	}
	c := toks[3]
	if c.Position.Line != 2 || c.Position.Column != 3 || c.Position.Offset != 5 {
		t.Errorf("unexpected position for c: %v (offset %d)", c.Position, c.Position.Offset)
	}
	if got := c.Position.String(); got != "in:2:3" {
		t.Errorf("Position.String() = %q", got)
	}
}

func TestUndefinedProduction(t *testing.T) {
	_, err := ParseGrammar("bad.ebnf", strings.NewReader(`A = b .`))
	if err == nil {
		t.Fatal("expected error for undefined production")
	}
}
