// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
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
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(clip(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to width runes
func clip(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintTree outputs a text outline of a render tree: header, summary, then
// each column's blocks in display order.
func (p *Printer) PrintTree(tree rendering.Tree) {
	var sb strings.Builder

	name := tree.Header.Name
	if name == "" {
		name = "(no name)"
	}
	sb.WriteString(name + "\n")
	if tree.Header.Title != "" {
		sb.WriteString(tree.Header.Title + "\n")
	}
	for _, c := range tree.Header.Contacts {
		sb.WriteString(fmt.Sprintf("  %-9s %s\n", c.Kind, c.Text))
	}

	if tree.Summary != nil {
		sb.WriteString(fmt.Sprintf("\n%s:\n", tree.Summary.Label))
		for _, para := range tree.Summary.Paragraphs {
			sb.WriteString("  " + para + "\n")
		}
	}

	for _, col := range tree.Columns {
		if len(tree.Columns) > 1 {
			sb.WriteString(fmt.Sprintf("\n[%s]\n", col.Role))
		}
		for _, block := range col.Blocks {
			sb.WriteString("\n")
			writeBlock(&sb, block)
		}
	}

	p.printBox(fmt.Sprintf("PREVIEW (%s)", strings.ToUpper(string(tree.Template))), strings.TrimSuffix(sb.String(), "\n"))
}

func writeBlock(sb *strings.Builder, block rendering.Block) {
	sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(block.Title)))

	switch block.Kind {
	case rendering.BlockTags, rendering.BlockGrid:
		if len(block.Tags) == 0 {
			sb.WriteString("  (empty)\n")
			return
		}
		sb.WriteString("  " + strings.Join(block.Tags, " · ") + "\n")
	default:
		if len(block.Entries) == 0 {
			sb.WriteString("  (empty)\n")
			return
		}
		for _, e := range block.Entries {
			line := "  • " + e.Title
			if e.Date != "" {
				line += " (" + e.Date + ")"
			}
			sb.WriteString(line + "\n")
			if e.Subtitle != "" {
				sb.WriteString("    " + e.Subtitle + "\n")
			}
		}
	}
}

// PrintDocument outputs the section and item ids of a document, for use with
// the editing commands
func (p *Printer) PrintDocument(doc types.Document, revision uint64) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Revision: %d\n", revision))
	sb.WriteString(fmt.Sprintf("Template: %s   Theme: %s\n", doc.Template, doc.ThemeColor))

	for i, s := range doc.Sections {
		sb.WriteString(fmt.Sprintf("\n%d. %s [%s] id=%s\n", i, s.Title, s.Type, s.ID))
		count := min(len(s.Items), maxItemsToShow)
		for j := 0; j < count; j++ {
			sb.WriteString(fmt.Sprintf("   %d. %s id=%s\n", j, s.Items[j].Title, s.Items[j].ID))
		}
		if len(s.Items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("   ... and %d more\n", len(s.Items)-maxItemsToShow))
		}
	}

	p.printBox("DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMessage outputs one chat message
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMessage(msg types.ChatMessage) {
	speaker := "You"
	if msg.Role == types.RoleAssistant {
		speaker = "Assistant"
	}
	fmt.Fprintf(p.out, "%s: %s\n", speaker, msg.Text)
}

// PrintInvocation outputs the tool call behind an assistant reply and whether it changed the document
func (p *Printer) PrintInvocation(inv *types.ToolInvocation, applied bool) {
	if inv == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Action:   %s\n", inv.Args.Action))
	if inv.Args.SectionType != "" {
		sb.WriteString(fmt.Sprintf("Section:  %s\n", inv.Args.SectionType))
	}

	fields := dataFields(inv.Args.Data)
	if len(fields) > 0 {
		sb.WriteString("Data:\n")
		for _, f := range fields {
			sb.WriteString("  " + f + "\n")
		}
	}

	status := "✅ applied"
	if !applied {
		status = "⚠ no change"
	}
	sb.WriteString(status)

	p.printBox(strings.ToUpper(inv.Name), sb.String())
}

func dataFields(d types.ToolData) []string {
	pairs := []struct {
		key string
		val *string
	}{
		{"title", d.Title}, {"subtitle", d.Subtitle}, {"date", d.Date},
		{"description", d.Description}, {"location", d.Location},
		{"fullName", d.FullName}, {"email", d.Email}, {"summary", d.Summary},
		{"linkedin", d.LinkedIn}, {"phone", d.Phone}, {"website", d.Website},
	}
	var out []string
	for _, kv := range pairs {
		if kv.val != nil {
			out = append(out, fmt.Sprintf("%s = %q", kv.key, *kv.val))
		}
	}
	return out
}
