package rendering

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Render projects a document into the render tree of the given template.
// Render is pure: equal inputs always produce equal trees. Templates without a
// layout of their own, including the reserved minimal template, render as modern.
func Render(doc types.Document, template types.Template) Tree {
	switch template {
	case types.TemplateClassic:
		return renderClassic(doc)
	default:
		return renderModern(doc)
	}
}

// RenderDocument renders a document with its own selected template
func RenderDocument(doc types.Document) Tree {
	return Render(doc, doc.Template)
}

func renderModern(doc types.Document) Tree {
	info := doc.PersonalInfo

	header := Header{Name: info.FullName, Title: info.Title}
	header.Contacts = appendContact(header.Contacts, ContactLocation, info.Location)
	header.Contacts = appendContact(header.Contacts, ContactEmail, info.Email)
	header.Contacts = appendContact(header.Contacts, ContactPhone, info.Phone)
	header.Contacts = appendContact(header.Contacts, ContactLinkedIn, strings.Replace(info.LinkedIn, "https://", "", 1))
	header.Contacts = appendContact(header.Contacts, ContactWebsite, info.Website)

	sidebar := Column{Role: ColumnSidebar, Blocks: []Block{}}
	main := Column{Role: ColumnMain, Blocks: []Block{}}
	for _, section := range doc.Sections {
		if section.Type.Compact() {
			sidebar.Blocks = append(sidebar.Blocks, tagsBlock(section))
		} else {
			main.Blocks = append(main.Blocks, entriesBlock(section))
		}
	}

	return Tree{
		Template:   types.TemplateModern,
		ThemeColor: doc.ThemeColor,
		Header:     header,
		Summary:    summaryBlock(ModernSummaryLabel, info.Summary),
		Columns:    []Column{sidebar, main},
	}
}

func renderClassic(doc types.Document) Tree {
	info := doc.PersonalInfo

	header := Header{Name: info.FullName, Title: info.Title, Centered: true}
	header.Contacts = appendContact(header.Contacts, ContactEmail, info.Email)
	header.Contacts = appendContact(header.Contacts, ContactPhone, info.Phone)
	header.Contacts = appendContact(header.Contacts, ContactLocation, info.Location)
	if info.LinkedIn != "" {
		header.Contacts = append(header.Contacts, Contact{Kind: ContactLinkedIn, Text: ClassicLinkedInText})
	}

	single := Column{Role: ColumnSingle, Blocks: make([]Block, 0, len(doc.Sections))}
	for _, section := range doc.Sections {
		switch section.Type {
		case types.SectionSkills:
			block := tagsBlock(section)
			block.Kind = BlockGrid
			block.GridColumns = ClassicGridColumns
			single.Blocks = append(single.Blocks, block)
		case types.SectionLanguages:
			single.Blocks = append(single.Blocks, tagsBlock(section))
		default:
			single.Blocks = append(single.Blocks, entriesBlock(section))
		}
	}

	return Tree{
		Template:   types.TemplateClassic,
		ThemeColor: doc.ThemeColor,
		Header:     header,
		Summary:    summaryBlock(ClassicSummaryLabel, info.Summary),
		Columns:    []Column{single},
	}
}

func appendContact(contacts []Contact, kind ContactKind, text string) []Contact {
	if contacts == nil {
		contacts = []Contact{}
	}
	if text == "" {
		return contacts
	}
	return append(contacts, Contact{Kind: kind, Text: text})
}

func summaryBlock(label, summary string) *SummaryBlock {
	paragraphs := Paragraphs(summary)
	if len(paragraphs) == 0 {
		return nil
	}
	return &SummaryBlock{Label: label, Paragraphs: paragraphs}
}

// tagsBlock uses item titles only; other item fields never reach compact sections
func tagsBlock(section types.Section) Block {
	tags := make([]string, 0, len(section.Items))
	for _, item := range section.Items {
		tags = append(tags, item.Title)
	}
	return Block{
		SectionID:   section.ID,
		SectionType: section.Type,
		Title:       section.Title,
		Kind:        BlockTags,
		Tags:        tags,
	}
}

func entriesBlock(section types.Section) Block {
	entries := make([]Entry, 0, len(section.Items))
	for _, item := range section.Items {
		entries = append(entries, Entry{
			ItemID:     item.ID,
			Title:      item.Title,
			Subtitle:   item.Subtitle,
			Date:       item.Date,
			Paragraphs: Paragraphs(item.Description),
		})
	}
	return Block{
		SectionID:   section.ID,
		SectionType: section.Type,
		Title:       section.Title,
		Kind:        BlockEntries,
		Entries:     entries,
	}
}

// Paragraphs splits free text on line breaks and drops blank lines
func Paragraphs(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
