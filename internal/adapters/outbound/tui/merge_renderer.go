package tui

import (
	"fmt"
	"strings"

	"github.com/archgen/archgen/internal/domain"
)

// RenderFileMerge renders a single merged configuration file.
func RenderFileMerge(m domain.FileMerge) string {
	var b strings.Builder
	renderFileMerge(&b, m)
	return b.String()
}

func renderFileMerge(b *strings.Builder, m domain.FileMerge) {
	state := "merged"
	if m.Created {
		state = "created"
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s %s\n",
		sectionHeaderStyle.Render("Config"),
		titleStyle.Render(m.Path),
		dimStyle.Render("("+state+")"),
	))

	for _, k := range m.AddedKeys {
		b.WriteString(fmt.Sprintf("    %s %s\n", passStyle.Render("+"), k))
	}
	for _, c := range m.Conflicts {
		b.WriteString(fmt.Sprintf("    %s %s\n", warnStyle.Render("≠"), c.String()))
	}
	if len(m.AddedKeys) == 0 && len(m.Conflicts) == 0 {
		b.WriteString("    " + dimStyle.Render("no changes") + "\n")
	}
	if len(m.Conflicts) > 0 {
		b.WriteString("    " + hintStyle.Render("existing values were kept; edit the file to adopt generated values") + "\n")
	}
}
