package rendering

import "github.com/jonathan/resume-builder/internal/types"

// ColumnRole places a column on the page
type ColumnRole string

// Column roles
const (
	ColumnSidebar ColumnRole = "sidebar"
	ColumnMain    ColumnRole = "main"
	ColumnSingle  ColumnRole = "single"
)

// BlockKind selects how a section block presents its items
type BlockKind string

// Block kinds
const (
	// BlockEntries lists items with title, subtitle, date and paragraphs
	BlockEntries BlockKind = "entries"
	// BlockTags lists item titles as compact tags
	BlockTags BlockKind = "tags"
	// BlockGrid lists item titles as a bulleted grid
	BlockGrid BlockKind = "grid"
)

// Fixed labels. The layout uses a single English locale.
const (
	ModernSummaryLabel  = "About Me"
	ClassicSummaryLabel = "Summary"
	ClassicLinkedInText = "LinkedIn"
	ClassicGridColumns  = 3
)

// Tree is the template-specific projection of a document. It is what the
// preview and the print path consume.
type Tree struct {
	Template   types.Template `json:"template"`
	ThemeColor string         `json:"themeColor"`
	Header     Header         `json:"header"`
	Summary    *SummaryBlock  `json:"summary,omitempty"`
	Columns    []Column       `json:"columns"`
}

// Column returns the column with the given role
func (t Tree) Column(role ColumnRole) (Column, bool) {
	for _, c := range t.Columns {
		if c.Role == role {
			return c, true
		}
	}
	return Column{}, false
}

// Header is the name, title and contact lines
type Header struct {
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Contacts []Contact `json:"contacts"`
	Centered bool      `json:"centered"`
}

// ContactKind identifies a contact line
type ContactKind string

// Contact kinds
const (
	ContactLocation ContactKind = "location"
	ContactEmail    ContactKind = "email"
	ContactPhone    ContactKind = "phone"
	ContactLinkedIn ContactKind = "linkedin"
	ContactWebsite  ContactKind = "website"
)

// Contact is one displayed contact line
type Contact struct {
	Kind ContactKind `json:"kind"`
	Text string      `json:"text"`
}

// SummaryBlock is the labeled free-text summary
type SummaryBlock struct {
	Label      string   `json:"label"`
	Paragraphs []string `json:"paragraphs"`
}

// Column is an ordered list of section blocks
type Column struct {
	Role   ColumnRole `json:"role"`
	Blocks []Block    `json:"blocks"`
}

// Block is the rendered form of one section
type Block struct {
	SectionID   string            `json:"sectionId"`
	SectionType types.SectionType `json:"sectionType"`
	Title       string            `json:"title"`
	Kind        BlockKind         `json:"kind"`
	Entries     []Entry           `json:"entries,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	GridColumns int               `json:"gridColumns,omitempty"`
}

// Entry is the rendered form of one item
type Entry struct {
	ItemID     string   `json:"itemId"`
	Title      string   `json:"title"`
	Subtitle   string   `json:"subtitle,omitempty"`
	Date       string   `json:"date,omitempty"`
	Paragraphs []string `json:"paragraphs,omitempty"`
}
