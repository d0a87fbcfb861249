// Package sitter adapts tree-sitter parsers to the syntax interfaces.
package sitter

import (
	"path/filepath"
	"sort"

	ts "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"github.com/dhamidi/tsc/syntax"
)

// Language is a tree-sitter grammar registered under a name.
type Language struct {
	name       string
	extensions []string
	ts         *ts.Language
}

var languages = map[string]*Language{}

func init() {
	register("go", ts.NewLanguage(tree_sitter_go.Language()), ".go")
}

func register(name string, l *ts.Language, extensions ...string) {
	languages[name] = &Language{name: name, extensions: extensions, ts: l}
}

// Lookup finds a built-in language by name.
func Lookup(name string) (*Language, bool) {
	l, ok := languages[name]
	return l, ok
}

// ForPath finds the built-in language for a file extension.
func ForPath(path string) (*Language, bool) {
	ext := filepath.Ext(path)
	for _, l := range languages {
		for _, e := range l.extensions {
			if e == ext {
				return l, true
			}
		}
	}
	return nil, false
}

// Languages returns the built-in languages sorted by name.
func Languages() []*Language {
	var all []*Language
	for _, l := range languages {
		all = append(all, l)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].name < all[j].name })
	return all
}

func (l *Language) Name() string { return l.name }

func (l *Language) Extensions() []string { return l.extensions }

func (l *Language) FieldCount() int { return int(l.ts.FieldCount()) }

func (l *Language) FieldNameForID(id syntax.FieldID) string {
	return l.ts.FieldNameForId(uint16(id))
}
