// Package ebnflex provides lexical scanning based on EBNF grammars.
//
// Every production whose name starts with an uppercase letter is a token.
// At each position the lexer takes the longest token match; ties go to the
// token name that sorts first.
package ebnflex

import (
	"fmt"
	"io"
	"os"
	"sort"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// KindError is the kind of a single unmatched character.
const KindError = "ERROR"

// KindEOF is the kind of the token that ends every token stream.
const KindEOF = "EOF"

// Position represents a location in source code.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token with its position.
type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

type memoKey struct {
	name   string
	offset int
}

// noMatch is distinct from a successful empty match.
const noMatch = -1

// Lexer tokenizes input based on an EBNF grammar.
type Lexer struct {
	grammar  ebnf.Grammar
	tokens   []string
	input    []byte
	filename string
	pos      int
	line     int
	column   int
	memo     map[memoKey]int
	visiting map[memoKey]bool
}

// NewLexer creates a lexer for the given grammar and input.
func NewLexer(grammar ebnf.Grammar, input []byte, filename string) *Lexer {
	return &Lexer{
		grammar:  grammar,
		tokens:   TokenNames(grammar),
		input:    input,
		filename: filename,
		line:     1,
		column:   1,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
}

// TokenNames returns the sorted names of the token productions of grammar.
func TokenNames(grammar ebnf.Grammar) []string {
	var names []string
	for name, prod := range grammar {
		if prod.Expr == nil || name == "" || name[0] < 'A' || name[0] > 'Z' {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()
	return ParseGrammar(filename, f)
}

// ParseGrammar parses an EBNF grammar and checks that every production it
// references is defined.
func ParseGrammar(filename string, r io.Reader) (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	for name, prod := range grammar {
		if err := checkNames(grammar, prod.Expr); err != nil {
			return nil, fmt.Errorf("production %s: %w", name, err)
		}
	}
	return grammar, nil
}

func checkNames(grammar ebnf.Grammar, expr ebnf.Expression) error {
	switch e := expr.(type) {
	case ebnf.Sequence:
		for _, item := range e {
			if err := checkNames(grammar, item); err != nil {
				return err
			}
		}
	case ebnf.Alternative:
		for _, alt := range e {
			if err := checkNames(grammar, alt); err != nil {
				return err
			}
		}
	case *ebnf.Repetition:
		return checkNames(grammar, e.Body)
	case *ebnf.Option:
		return checkNames(grammar, e.Body)
	case *ebnf.Group:
		return checkNames(grammar, e.Body)
	case *ebnf.Name:
		if _, ok := grammar[e.String]; !ok {
			return fmt.Errorf("undefined: %s", e.String)
		}
	}
	return nil
}

// Position returns the current position in the input.
func (l *Lexer) Position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) advance(n int) {
	for _, ch := range l.input[l.pos : l.pos+n] {
		if ch == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	l.pos += n
}

// NextToken returns the next token from the input, or an EOF token and
// io.EOF at the end.
func (l *Lexer) NextToken() (Token, error) {
	start := l.Position()
	if l.pos >= len(l.input) {
		return Token{Kind: KindEOF, Position: start}, io.EOF
	}

	var bestKind string
	bestLen := 0
	for _, name := range l.tokens {
		n := l.matchName(name, l.pos)
		if n > bestLen {
			bestLen = n
			bestKind = name
		}
	}

	if bestLen == 0 {
		_, size := utf8.DecodeRune(l.input[l.pos:])
		lit := string(l.input[l.pos : l.pos+size])
		l.advance(size)
		return Token{Kind: KindError, Literal: lit, Position: start}, nil
	}

	lit := string(l.input[l.pos : l.pos+bestLen])
	l.advance(bestLen)
	return Token{Kind: bestKind, Literal: lit, Position: start}, nil
}

// match returns the length matched by expr at offset, or noMatch.
func (l *Lexer) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case nil:
		return 0

	case *ebnf.Token:
		return l.matchToken(e.String, offset)

	case *ebnf.Range:
		return l.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := l.match(item, offset+total)
			if n == noMatch {
				return noMatch
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := noMatch
		for _, alt := range e {
			if n := l.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := l.match(e.Body, offset+total)
			if n <= 0 {
				break
			}
			total += n
		}
		return total

	case *ebnf.Option:
		if n := l.match(e.Body, offset); n > 0 {
			return n
		}
		return 0

	case *ebnf.Group:
		return l.match(e.Body, offset)

	case *ebnf.Name:
		return l.matchName(e.String, offset)

	default:
		return noMatch
	}
}

// matchName matches a named production with memoization and cycle detection.
// Results depend only on the offset, so the memo lives as long as the lexer.
func (l *Lexer) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := l.memo[key]; ok {
		return n
	}
	if l.visiting[key] {
		return noMatch
	}
	prod, ok := l.grammar[name]
	if !ok {
		l.memo[key] = noMatch
		return noMatch
	}

	l.visiting[key] = true
	n := l.match(prod.Expr, offset)
	delete(l.visiting, key)

	l.memo[key] = n
	return n
}

func (l *Lexer) matchToken(lit string, offset int) int {
	if offset+len(lit) > len(l.input) {
		return noMatch
	}
	if string(l.input[offset:offset+len(lit)]) != lit {
		return noMatch
	}
	return len(lit)
}

// matchRange matches one rune between begin and end inclusive.
func (l *Lexer) matchRange(begin, end string, offset int) int {
	if offset >= len(l.input) {
		return noMatch
	}
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	r, size := utf8.DecodeRune(l.input[offset:])
	if r == utf8.RuneError && size <= 1 {
		return noMatch
	}
	if r < lo || r > hi {
		return noMatch
	}
	return size
}

// Tokenize reads all tokens from input. The last token is always EOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			tokens = append(tokens, tok)
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}
