package syntax

import "testing"

type growingLanguage struct {
	names []string
}

func (l *growingLanguage) FieldCount() int { return len(l.names) }

func (l *growingLanguage) FieldNameForID(id FieldID) string {
	return l.names[id-1]
}

func TestRegistryFieldName(t *testing.T) {
	lang := &growingLanguage{names: []string{"name", ""}}
	r := NewRegistry()

	tests := []struct {
		id   FieldID
		want string
		ok   bool
	}{
		{0, "", false},
		{1, "name", true},
		{2, "", false},
		{3, "", false},
	}
	for _, tt := range tests {
		got, ok := r.FieldName(lang, tt.id)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FieldName(%d) = %q, %v; want %q, %v", tt.id, got, ok, tt.want, tt.ok)
		}
	}

	lang.names = append(lang.names, "body")
	if got, ok := r.FieldName(lang, 3); got != "body" || !ok {
		t.Errorf("FieldName(3) after growth = %q, %v; want \"body\", true", got, ok)
	}
	if got, _ := r.FieldName(lang, 1); got != "name" {
		t.Errorf("FieldName(1) = %q", got)
	}
	if _, ok := r.FieldName(nil, 1); ok {
		t.Error("FieldName(nil, 1) reported a name")
	}
}
