package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/archgen/archgen/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle           = lipgloss.NewStyle().Foreground(dim)
	faintStyle         = lipgloss.NewStyle().Foreground(faint)
	passStyle          = lipgloss.NewStyle().Foreground(success)
	failStyle          = lipgloss.NewStyle().Foreground(danger)
	warnStyle          = lipgloss.NewStyle().Foreground(warning)
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(fg)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine      = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderGenerationReport renders the outcome of a generate or init run.
func RenderGenerationReport(r *domain.GenerationReport) string {
	var b strings.Builder

	title := headerStyle.Render("archgen")
	subtitle := dimStyle.Render(fmt.Sprintf("%s · %s", r.Component, r.Architecture))
	summary := passStyle.Render(fmt.Sprintf("%d files", len(r.Files)))
	if len(r.Skipped) > 0 {
		summary += "  " + warnStyle.Render(fmt.Sprintf("%d skipped", len(r.Skipped)))
	}
	if r.DryRun {
		summary += "  " + dimStyle.Render("dry run")
	}
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + summary))
	b.WriteString("\n")

	if len(r.Files) > 0 {
		renderSection(&b, "Files", len(r.Files))
		for _, f := range r.Files {
			marker := passStyle.Render("+")
			if r.DryRun {
				marker = dimStyle.Render("~")
			}
			b.WriteString(fmt.Sprintf("    %s %s %s\n", marker, f.Path, dimStyle.Render(string(f.Kind))))
		}
	}

	if len(r.Skipped) > 0 {
		renderSection(&b, "Skipped (already exist, use --force)", len(r.Skipped))
		for _, p := range r.Skipped {
			b.WriteString(fmt.Sprintf("    %s %s\n", warnStyle.Render("="), p))
		}
	}

	for _, m := range r.Merges {
		renderFileMerge(&b, m)
	}

	if len(r.Dependencies) > 0 {
		renderSection(&b, "Dependencies", len(r.Dependencies))
		for _, d := range r.Dependencies {
			b.WriteString(fmt.Sprintf("    %s %s\n", dimStyle.Render("•"), d.String()))
		}
	}

	renderWarnings(&b, r.Warnings)

	if r.TemplateCommit != "" {
		b.WriteString("\n  " + hintStyle.Render("templates @ "+shortHash(r.TemplateCommit)) + "\n")
	}
	return b.String()
}

func renderSection(b *strings.Builder, title string, count int) {
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n",
		sectionHeaderStyle.Render(title),
		dimStyle.Render(fmt.Sprintf("(%d)", count)),
	))
}

func renderWarnings(b *strings.Builder, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	renderSection(b, "Warnings", len(warnings))
	for _, w := range warnings {
		b.WriteString(fmt.Sprintf("    %s %s\n", warnStyle.Render("!"), w))
	}
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}
