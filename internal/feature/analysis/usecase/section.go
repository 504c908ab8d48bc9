// Package usecase implements the report-generation tools of the
// analysis feature.
package usecase

import (
	"log/slog"
	"strings"
)

// Section is one titled block of a report.
type Section struct {
	Title string
	Lines []string
}

// reportBuilder assembles sections in order. Section functions that
// fail degrade to their fallback note (or are dropped entirely when no
// fallback is given); a failure never aborts the remaining sections.
// This replaces the implicit was-this-variable-assigned state the
// sections would otherwise share: availability is always explicit.
type reportBuilder struct {
	sections []Section
}

// Add computes one section. On error the fallback note is emitted in
// its place; an empty fallback omits the section outright.
func (b *reportBuilder) Add(title, fallback string, fn func() ([]string, error)) {
	lines, err := fn()
	if err != nil {
		slog.Warn("report section skipped", "section", title, "error", err)
		if fallback == "" {
			return
		}
		b.sections = append(b.sections, Section{Title: title, Lines: []string{fallback}})
		return
	}
	if len(lines) == 0 {
		return
	}
	b.sections = append(b.sections, Section{Title: title, Lines: lines})
}

// AddLines appends a static section.
func (b *reportBuilder) AddLines(title string, lines ...string) {
	b.Add(title, "", func() ([]string, error) { return lines, nil })
}

// Render flattens the sections into report text.
func (b *reportBuilder) Render() string {
	var sb strings.Builder
	for i, s := range b.sections {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if s.Title != "" {
			sb.WriteString(s.Title)
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Join(s.Lines, "\n"))
	}
	return sb.String()
}
