package cst

import (
	"sync"

	"github.com/dhamidi/tsc/syntax"
)

// Language holds the field names and extra kinds of trees read with it.
// Field ids are assigned in order of first use, starting at 1.
type Language struct {
	name string

	mu     sync.RWMutex
	fields []string
	index  map[string]syntax.FieldID
	extras map[string]bool
}

func NewLanguage(name string, fields []string, extras []string) *Language {
	l := &Language{
		name:   name,
		index:  make(map[string]syntax.FieldID),
		extras: make(map[string]bool),
	}
	for _, f := range fields {
		l.Intern(f)
	}
	for _, kind := range extras {
		l.extras[kind] = true
	}
	return l
}

func (l *Language) Name() string { return l.name }

func (l *Language) FieldCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.fields)
}

func (l *Language) FieldNameForID(id syntax.FieldID) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if id == 0 || int(id) > len(l.fields) {
		return ""
	}
	return l.fields[id-1]
}

// FieldID looks up a field by name.
func (l *Language) FieldID(name string) (syntax.FieldID, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	id, ok := l.index[name]
	return id, ok
}

// Intern returns the id of the named field, adding it if needed.
func (l *Language) Intern(name string) syntax.FieldID {
	if id, ok := l.FieldID(name); ok {
		return id
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if id, ok := l.index[name]; ok {
		return id
	}
	l.fields = append(l.fields, name)
	id := syntax.FieldID(len(l.fields))
	l.index[name] = id
	return id
}

func (l *Language) IsExtra(kind string) bool {
	return l.extras[kind]
}
