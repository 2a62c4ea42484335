// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SectionType classifies a section. The set is closed.
type SectionType string

// Section types
const (
	SectionExperience SectionType = "EXPERIENCE"
	SectionEducation  SectionType = "EDUCATION"
	SectionSkills     SectionType = "SKILLS"
	SectionProjects   SectionType = "PROJECTS"
	SectionLanguages  SectionType = "LANGUAGES"
	SectionCustom     SectionType = "CUSTOM"
)

// SectionTypes lists every section type in declaration order
var SectionTypes = []SectionType{
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionLanguages,
	SectionCustom,
}

// Valid reports whether t is one of the declared section types
func (t SectionType) Valid() bool {
	for _, known := range SectionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Compact reports whether items of this type render as title-only tags
func (t SectionType) Compact() bool {
	return t == SectionSkills || t == SectionLanguages
}

// Template selects the visual layout used by the renderer
type Template string

// Templates
const (
	TemplateModern  Template = "modern"
	TemplateClassic Template = "classic"
	// TemplateMinimal is reserved and never produced by the editor.
	TemplateMinimal Template = "minimal"
)

// Selectable reports whether t may be chosen through the editor
func (t Template) Selectable() bool {
	return t == TemplateModern || t == TemplateClassic
}

// PersonalInfo holds the resume header fields. Empty strings are allowed everywhere.
type PersonalInfo struct {
	FullName string `json:"fullName" yaml:"fullName"`
	Title    string `json:"title" yaml:"title"`
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	Location string `json:"location" yaml:"location"`
	Summary  string `json:"summary" yaml:"summary"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Website  string `json:"website,omitempty" yaml:"website,omitempty"`
}

// Item is a single entry within a section (a job, a degree, a skill)
type Item struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Subtitle    string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Date        string `json:"date,omitempty" yaml:"date,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
}

// Section is a titled, typed, ordered group of items
type Section struct {
	ID    string      `json:"id" yaml:"id"`
	Type  SectionType `json:"type" yaml:"type"`
	Title string      `json:"title" yaml:"title"`
	Items []Item      `json:"items" yaml:"items"`
}

// Document is the complete in-memory resume state
type Document struct {
	PersonalInfo PersonalInfo `json:"personalInfo" yaml:"personalInfo"`
	Sections     []Section    `json:"sections" yaml:"sections"`
	ThemeColor   string       `json:"themeColor" yaml:"themeColor"`
	Template     Template     `json:"template" yaml:"template"`
}

// SectionIndex returns the position of the section with the given id, or -1
func (d Document) SectionIndex(id string) int {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

// Section returns the section with the given id
func (d Document) Section(id string) (Section, bool) {
	if i := d.SectionIndex(id); i >= 0 {
		return d.Sections[i], true
	}
	return Section{}, false
}

// SectionByType returns the first section of the given type in document order
func (d Document) SectionByType(t SectionType) (Section, bool) {
	for _, s := range d.Sections {
		if s.Type == t {
			return s, true
		}
	}
	return Section{}, false
}

// ItemIndex returns the position of the item with the given id, or -1
func (s Section) ItemIndex(id string) int {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// ItemIDs returns the item ids in display order
func (s Section) ItemIDs() []string {
	ids := make([]string, len(s.Items))
	for i, item := range s.Items {
		ids[i] = item.ID
	}
	return ids
}

// Clone returns a deep copy of the document. Nil item slices stay nil.
func (d Document) Clone() Document {
	out := d
	if d.Sections != nil {
		out.Sections = make([]Section, len(d.Sections))
		for i, s := range d.Sections {
			out.Sections[i] = s
			if s.Items != nil {
				items := make([]Item, len(s.Items))
				copy(items, s.Items)
				out.Sections[i].Items = items
			}
		}
	}
	return out
}

// Normalize makes empty collections explicit: a nil section list or item list
// becomes empty. Sections that already hold items are shared with d.
func (d Document) Normalize() Document {
	if d.Sections == nil {
		d.Sections = []Section{}
		return d
	}
	var sections []Section
	for i, s := range d.Sections {
		if s.Items != nil {
			continue
		}
		if sections == nil {
			sections = make([]Section, len(d.Sections))
			copy(sections, d.Sections)
		}
		sections[i].Items = []Item{}
	}
	if sections != nil {
		d.Sections = sections
	}
	return d
}
