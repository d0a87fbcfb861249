package cst

import "strings"

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)

// Quote renders s as a string token of the tree notation.
func Quote(s string) string {
	return `"` + quoter.Replace(s) + `"`
}

// String renders the tree in the notation Read accepts.
func (t *Tree) String() string {
	var sb strings.Builder
	t.write(&sb, t.root)
	return sb.String()
}

func (t *Tree) write(sb *strings.Builder, n *Node) {
	switch {
	case n.Missing:
		sb.WriteString("(MISSING ")
		if n.Named {
			sb.WriteString(n.Kind)
		} else {
			sb.WriteString(Quote(n.Kind))
		}
		sb.WriteString(")")
		return
	case !n.Named:
		sb.WriteString(Quote(n.Kind))
		return
	}

	sb.WriteString("(")
	sb.WriteString(n.Kind)
	if len(n.Children) == 0 && n.Text != "" {
		sb.WriteString(" ")
		sb.WriteString(Quote(n.Text))
	}
	for _, c := range n.Children {
		sb.WriteString(" ")
		if c.Field != 0 {
			sb.WriteString(t.lang.FieldNameForID(c.Field))
			sb.WriteString(": ")
		}
		t.write(sb, c)
	}
	sb.WriteString(")")
}
