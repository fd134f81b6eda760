package deps

import "strings"

// ToMermaid renders the graph as a Mermaid flowchart, one node per file
// and a dashed arrow per import.
func (g *Graph) ToMermaid() string {
	var b strings.Builder
	b.WriteString("graph TD\n")
	for _, node := range g.Nodes() {
		b.WriteString("    " + sanitizeMermaidID(node) + "[\"" + escapeMermaidLabel(node) + "\"]\n")
	}
	for _, e := range g.Edges() {
		b.WriteString("    " + sanitizeMermaidID(e.From) + " -.->|" + string(e.Kind) + "| " + sanitizeMermaidID(e.To) + "\n")
	}
	return b.String()
}

// sanitizeMermaidID maps a file identifier to an ID Mermaid accepts.
func sanitizeMermaidID(id string) string {
	if id == "" {
		return "empty"
	}
	out := make([]byte, 0, len(id))
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			out = append(out, c)
		} else {
			out = append(out, '_')
		}
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = append([]byte{'n'}, out...)
	}
	return string(out)
}

// escapeMermaidLabel escapes the characters Mermaid treats specially.
func escapeMermaidLabel(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		`"`, "&quot;",
		"<", "&lt;",
		">", "&gt;",
		"|", "&#124;",
		"[", "&#91;",
		"]", "&#93;",
	)
	return replacer.Replace(s)
}
