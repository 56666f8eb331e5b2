// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jonathan/portfolio-builder/internal/rendering"
	"github.com/jonathan/portfolio-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode. Boxes from concurrent
// callers never interleave.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for _, line := range lines {
		// Truncate long lines
		if utf8.RuneCountInString(line) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSnapshot outputs the form fields, one per line, with multi-line
// values reduced to their first line.
func (p *Printer) PrintSnapshot(snapshot types.FormSnapshot) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:      %s\n", snapshot.Name))
	sb.WriteString(fmt.Sprintf("Template:  %s\n", snapshot.Template))
	sb.WriteString(fmt.Sprintf("Bio:       %s\n", firstLine(snapshot.Bio)))
	sb.WriteString(fmt.Sprintf("Image:     %s\n", snapshot.ProfileImage))
	sb.WriteString("\n")

	skills := rendering.SplitSkills(snapshot.Skills)
	if snapshot.Skills != "" && len(skills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", skills[i]))
		}
		if len(skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Education: %s\n", firstLine(snapshot.Education)))
	sb.WriteString(fmt.Sprintf("Projects:  %s\n", firstLine(snapshot.Projects)))
	sb.WriteString(fmt.Sprintf("Contact:   %s\n", firstLine(snapshot.SocialLinks)))

	p.printBox("FORM", sb.String())
}

// PrintSections outputs the section order with indexes, marking kinds the
// renderer does not recognize.
func (p *Printer) PrintSections(order []types.SectionID) {
	if len(order) == 0 {
		p.printBox("SECTIONS", "No sections")
		return
	}

	var sb strings.Builder
	for i, id := range order {
		sb.WriteString(fmt.Sprintf("%2d. %s", i, id))
		if !rendering.Recognized(id) {
			sb.WriteString(" (not rendered)")
		}
		sb.WriteString("\n")
	}

	p.printBox(fmt.Sprintf("SECTIONS (%d)", len(order)), sb.String())
}

// PrintCustomizations outputs the styling parameters and theme
func (p *Printer) PrintCustomizations(customizations types.Customizations, theme types.Theme) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Primary color: %s\n", customizations.PrimaryColor))
	sb.WriteString(fmt.Sprintf("Font family:   %s\n", customizations.FontFamily))
	sb.WriteString(fmt.Sprintf("Theme:         %s\n", theme))

	p.printBox("CUSTOMIZATIONS", sb.String())
}

// PrintExport outputs a summary of a written export file
func (p *Printer) PrintExport(format, path string, size int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Format: %s\n", strings.ToUpper(format)))
	sb.WriteString(fmt.Sprintf("Path:   %s\n", path))
	sb.WriteString(fmt.Sprintf("Size:   %d bytes\n", size))

	p.printBox("EXPORT WRITTEN", sb.String())
}

func firstLine(s string) string {
	line, rest, found := strings.Cut(s, "\n")
	if found && strings.TrimSpace(rest) != "" {
		return line + " ..."
	}
	return line
}
