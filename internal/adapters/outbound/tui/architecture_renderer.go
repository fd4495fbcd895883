package tui

import (
	"fmt"
	"strings"

	"github.com/archgen/archgen/internal/domain"
)

// RenderArchitectures lists each architecture with its path templates.
func RenderArchitectures(records []domain.StructureMetadata) string {
	var b strings.Builder

	b.WriteString(boxStyle.Render(headerStyle.Render("archgen") + "\n" + dimStyle.Render("Supported architectures")))
	b.WriteString("\n")

	for _, md := range records {
		b.WriteString("\n")
		line := "  " + titleStyle.Render(string(md.Architecture))
		if md.IsMultiModule() {
			line += "  " + dimStyle.Render(fmt.Sprintf("%d modules", len(md.Modules)))
		}
		b.WriteString(line + "\n")
		for _, dir := range md.Directions() {
			b.WriteString(fmt.Sprintf("    %-8s %s\n", dir, dimStyle.Render(md.PathTemplates[dir])))
		}
	}
	return b.String()
}

// RenderTemplateValidation renders the result of validating a template directory.
func RenderTemplateValidation(v *domain.TemplateValidation) string {
	var b strings.Builder

	status := passStyle.Render("valid")
	if !v.Valid() {
		status = failStyle.Render(fmt.Sprintf("%d errors", len(v.Errors)))
	}
	b.WriteString(boxStyle.Render(titleStyle.Render(v.Dir) + "\n" + status))
	b.WriteString("\n")

	renderSection(&b, "Architectures", len(v.Loaded))
	for _, a := range v.Loaded {
		b.WriteString(fmt.Sprintf("    %s %s\n", passStyle.Render("✓"), a))
	}
	for _, a := range v.Missing {
		b.WriteString(fmt.Sprintf("    %s %s %s\n", dimStyle.Render("-"), a, dimStyle.Render("(built-in)")))
	}

	renderSection(&b, "Templates", len(v.Templates))
	for _, t := range v.Templates {
		b.WriteString("    " + dimStyle.Render(t) + "\n")
	}

	if len(v.Errors) > 0 {
		renderSection(&b, "Errors", len(v.Errors))
		for _, e := range v.Errors {
			b.WriteString(fmt.Sprintf("    %s %s\n", failStyle.Render("✗"), e))
		}
	}

	b.WriteString("\n  " + separatorLine + "\n")
	if v.Commit != "" {
		b.WriteString("  " + hintStyle.Render("commit "+shortHash(v.Commit)) + "\n")
	}
	return b.String()
}
