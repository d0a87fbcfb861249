package workspace

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dhamidi/tsc/cst"
	"github.com/dhamidi/tsc/shared"
	"github.com/dhamidi/tsc/sitter"
)

// LanguageSexp names the s-expression tree notation read by package cst.
const LanguageSexp = "sexp"

var ErrUnknownLanguage = errors.New("unknown language")

// All .sexp files share one language so field ids stay stable across files.
var sexpLanguage = cst.NewLanguage(LanguageSexp, nil, nil)

// LanguageFor resolves the language of path. overrides maps file extensions
// (".h") to language names and takes precedence over the built-in table.
func LanguageFor(path string, overrides map[string]string) (string, error) {
	ext := filepath.Ext(path)
	if name, ok := overrides[ext]; ok {
		return name, nil
	}
	if ext == ".sexp" {
		return LanguageSexp, nil
	}
	if l, ok := sitter.ForPath(path); ok {
		return l.Name(), nil
	}
	return "", fmt.Errorf("%w for %s", ErrUnknownLanguage, path)
}

// Parse parses content as the language of path. The returned file owns the
// tree's first share.
func Parse(ctx context.Context, path string, content []byte, overrides map[string]string) (*File, error) {
	name, err := LanguageFor(path, overrides)
	if err != nil {
		return nil, err
	}
	f := &File{Path: path, Content: content, Language: name}

	if name == LanguageSexp {
		tree, err := cst.Read(string(content), sexpLanguage)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		f.Tree = shared.New(tree)
		f.Source = []byte(tree.Source())
		return f, nil
	}

	lang, ok := sitter.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, name)
	}
	h, err := sitter.Parse(ctx, lang, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	f.Tree = h
	f.Source = content
	return f, nil
}
