package syntax

import "sync"

// Registry caches the field-name table of each language it sees.
type Registry struct {
	mu     sync.RWMutex
	fields map[Language][]string
}

// DefaultRegistry is shared by every cursor in the process.
var DefaultRegistry = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{fields: make(map[Language][]string)}
}

// FieldName resolves id against lang. It reports false for the zero id and
// for ids the language does not define.
func (r *Registry) FieldName(lang Language, id FieldID) (string, bool) {
	if id == 0 || lang == nil {
		return "", false
	}
	r.mu.RLock()
	names, ok := r.fields[lang]
	r.mu.RUnlock()
	if !ok || int(id) > len(names) {
		// Languages may grow their field table after the first lookup.
		names = r.load(lang)
	}
	if int(id) > len(names) {
		return "", false
	}
	name := names[id-1]
	return name, name != ""
}

func (r *Registry) load(lang Language) []string {
	n := lang.FieldCount()
	names := make([]string, n)
	for i := range names {
		names[i] = lang.FieldNameForID(FieldID(i + 1))
	}
	r.mu.Lock()
	r.fields[lang] = names
	r.mu.Unlock()
	return names
}
