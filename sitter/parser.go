package sitter

import (
	"context"
	"fmt"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/dhamidi/tsc/shared"
)

// Parser parses source text of one language into shared trees.
type Parser struct {
	p    *ts.Parser
	lang *Language
}

func NewParser(lang *Language) (*Parser, error) {
	p := ts.NewParser()
	if err := p.SetLanguage(lang.ts); err != nil {
		p.Close()
		return nil, fmt.Errorf("set language %s: %w", lang.name, err)
	}
	return &Parser{p: p, lang: lang}, nil
}

// Parse parses src. The returned handle is the tree's first share. The
// parse is abandoned when ctx is cancelled.
func (p *Parser) Parse(ctx context.Context, src []byte) (*shared.Handle, error) {
	n := len(src)
	read := func(i int, _ ts.Point) []byte {
		if i < n {
			return src[i:]
		}
		return []byte{}
	}
	opts := &ts.ParseOptions{
		ProgressCallback: func(ts.ParseState) bool { return ctx.Err() != nil },
	}
	t := p.p.ParseWithOptions(read, nil, opts)
	if t == nil {
		p.p.Reset()
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p.lang.name, err)
		}
		return nil, fmt.Errorf("parse %s: no tree produced", p.lang.name)
	}
	return shared.New(&tree{t: t, lang: p.lang}), nil
}

func (p *Parser) Close() {
	p.p.Close()
}

// Parse parses src with a throwaway parser.
func Parse(ctx context.Context, lang *Language, src []byte) (*shared.Handle, error) {
	p, err := NewParser(lang)
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.Parse(ctx, src)
}
