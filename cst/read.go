package cst

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/tsc/ebnflex"
)

//go:embed sexp.ebnf
var sexpGrammar []byte

var loadGrammar = sync.OnceValues(func() (ebnf.Grammar, error) {
	return ebnflex.ParseGrammar("sexp.ebnf", bytes.NewReader(sexpGrammar))
})

// ErrSyntax is wrapped by every error Read returns for malformed input.
var ErrSyntax = errors.New("syntax error")

const (
	tokLParen = "LParen"
	tokRParen = "RParen"
	tokField  = "Field"
	tokSymbol = "Symbol"
	tokString = "String"
)

// Read builds a tree from its s-expression notation:
//
//	(kind child field: (kind "leaf text") "anonymous")
//
// (ERROR ...) marks an error node and (MISSING kind) or (MISSING "tok") a
// zero-width missing node. The tree's source text is the leaves joined by a
// single space. If lang is nil a fresh language named "sexp" is used; field
// names are added to the language as they are met.
func Read(src string, lang *Language) (*Tree, error) {
	if lang == nil {
		lang = NewLanguage("sexp", nil, nil)
	}
	g, err := loadGrammar()
	if err != nil {
		return nil, err
	}
	toks, err := ebnflex.NewLexer(g, []byte(src), "").Tokenize()
	if err != nil {
		return nil, err
	}

	r := &reader{lang: lang}
	for _, tok := range toks {
		switch tok.Kind {
		case "WhiteSpace", "Comment":
			continue
		case ebnflex.KindError:
			return nil, fmt.Errorf("%w: %s: unexpected character %q", ErrSyntax, tok.Position, tok.Literal)
		}
		r.toks = append(r.toks, tok)
	}
	if r.peek().Kind == ebnflex.KindEOF {
		return nil, fmt.Errorf("%w: empty input", ErrSyntax)
	}

	root, err := r.node()
	if err != nil {
		return nil, err
	}
	if tok := r.next(); tok.Kind != ebnflex.KindEOF {
		return nil, r.unexpected(tok)
	}

	var l layout
	l.pos = ebnflex.Position{Line: 1, Column: 1}
	l.place(root)
	return NewTree(root, lang, l.sb.String()), nil
}

type reader struct {
	toks []ebnflex.Token
	pos  int
	lang *Language
}

func (r *reader) peek() ebnflex.Token {
	return r.toks[r.pos]
}

func (r *reader) next() ebnflex.Token {
	tok := r.toks[r.pos]
	if tok.Kind != ebnflex.KindEOF {
		r.pos++
	}
	return tok
}

func (r *reader) unexpected(tok ebnflex.Token) error {
	if tok.Kind == ebnflex.KindEOF {
		return fmt.Errorf("%w: %s: unexpected end of input", ErrSyntax, tok.Position)
	}
	return fmt.Errorf("%w: %s: unexpected %q", ErrSyntax, tok.Position, tok.Literal)
}

func (r *reader) node() (*Node, error) {
	tok := r.next()
	switch tok.Kind {
	case tokString:
		text, err := unquote(tok)
		if err != nil {
			return nil, err
		}
		n := NewTerminal(text, text, false)
		n.Extra = r.lang.IsExtra(text)
		return n, nil
	case tokLParen:
	default:
		return nil, r.unexpected(tok)
	}

	head := r.next()
	if head.Kind != tokSymbol {
		return nil, r.unexpected(head)
	}
	if head.Literal == "MISSING" {
		return r.missing()
	}

	var n *Node
	if head.Literal == "ERROR" {
		n = NewError("unexpected input")
	} else {
		n = NewNonTerminal(head.Literal)
	}
	n.Extra = r.lang.IsExtra(n.Kind)

	leafText := false
	for r.peek().Kind != tokRParen {
		var field string
		if r.peek().Kind == tokField {
			lit := r.next().Literal
			field = lit[:len(lit)-1]
		}
		isString := r.peek().Kind == tokString
		child, err := r.node()
		if err != nil {
			return nil, err
		}
		if field != "" {
			child.Field = r.lang.Intern(field)
		}
		n.Children = append(n.Children, child)
		leafText = len(n.Children) == 1 && isString && field == "" && child.Text != ""
	}
	r.next()

	if leafText {
		n.Text = n.Children[0].Text
		n.Children = nil
	}
	return n, nil
}

func (r *reader) missing() (*Node, error) {
	tok := r.next()
	var n *Node
	switch tok.Kind {
	case tokSymbol:
		n = NewMissing(tok.Literal, true)
	case tokString:
		text, err := unquote(tok)
		if err != nil {
			return nil, err
		}
		n = NewMissing(text, false)
	default:
		return nil, r.unexpected(tok)
	}
	if tok := r.next(); tok.Kind != tokRParen {
		return nil, r.unexpected(tok)
	}
	return n, nil
}

func unquote(tok ebnflex.Token) (string, error) {
	s, err := strconv.Unquote(tok.Literal)
	if err != nil {
		return "", fmt.Errorf("%w: %s: bad string %s", ErrSyntax, tok.Position, tok.Literal)
	}
	return s, nil
}

// layout assigns spans by writing leaf text into the synthesized source.
type layout struct {
	sb     strings.Builder
	pos    ebnflex.Position
	leaves int
}

func (l *layout) write(s string) {
	l.sb.WriteString(s)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			l.pos.Line++
			l.pos.Column = 1
		} else {
			l.pos.Column++
		}
	}
	l.pos.Offset += len(s)
}

func (l *layout) place(n *Node) {
	if len(n.Children) == 0 {
		if n.Text != "" && !n.Missing {
			if l.leaves > 0 {
				l.write(" ")
			}
			l.leaves++
		}
		start := l.pos
		if !n.Missing {
			l.write(n.Text)
		}
		n.Span = Span{Start: start, End: l.pos}
		return
	}

	children := n.Children
	n.Children = nil
	for _, c := range children {
		l.place(c)
		n.AddChild(c)
	}
}
