// Package editor implements the mutation engine over resume documents.
//
// Every operation takes the current document and returns a new one, normalized so
// empty sections hold an empty item list. The argument is never modified; sections
// and items that an operation does not touch are shared with the input. Operations
// are total: unknown ids, unknown fields and invalid positions leave the document
// unchanged instead of failing.
package editor

import (
	"github.com/jonathan/resume-builder/internal/ordered"
	"github.com/jonathan/resume-builder/internal/types"
)

// Editor applies mutations to documents
type Editor struct {
	ids IDSource
}

// New creates an editor that draws new item ids from ids. A nil source uses UUIDs.
func New(ids IDSource) *Editor {
	if ids == nil {
		ids = UUIDSource{}
	}
	return &Editor{ids: ids}
}

// SetPersonalField replaces one named field of the personal info
func (e *Editor) SetPersonalField(doc types.Document, field types.PersonalField, value string) types.Document {
	doc = doc.Normalize()
	if _, ok := doc.PersonalInfo.Get(field); !ok {
		return doc
	}
	doc.PersonalInfo = doc.PersonalInfo.With(field, value)
	return doc
}

// UpdatePersonalInfo merges a partial personal info record field by field
func (e *Editor) UpdatePersonalInfo(doc types.Document, patch types.PersonalInfoPatch) types.Document {
	doc = doc.Normalize()
	doc.PersonalInfo = patch.Apply(doc.PersonalInfo)
	return doc
}

// SetTemplate selects the layout. Only selectable templates are accepted.
func (e *Editor) SetTemplate(doc types.Document, template types.Template) types.Document {
	doc = doc.Normalize()
	if !template.Selectable() {
		return doc
	}
	doc.Template = template
	return doc
}

// SetThemeColor replaces the theme color
func (e *Editor) SetThemeColor(doc types.Document, color string) types.Document {
	doc = doc.Normalize()
	doc.ThemeColor = color
	return doc
}

// ReorderSections moves the section at from to position to.
// Positions outside the current section list leave the document unchanged.
func (e *Editor) ReorderSections(doc types.Document, from, to int) types.Document {
	doc = doc.Normalize()
	sections, err := ordered.Move(doc.Sections, from, to)
	if err != nil {
		return doc
	}
	doc.Sections = sections
	return doc
}

// SetSectionTitle replaces the display label of a section; its type is unaffected
func (e *Editor) SetSectionTitle(doc types.Document, sectionID, title string) types.Document {
	doc = doc.Normalize()
	return updateSection(doc, sectionID, func(s types.Section) (types.Section, bool) {
		s.Title = title
		return s, true
	})
}

// ReorderItems moves an item within one section
func (e *Editor) ReorderItems(doc types.Document, sectionID string, from, to int) types.Document {
	doc = doc.Normalize()
	return updateSection(doc, sectionID, func(s types.Section) (types.Section, bool) {
		items, err := ordered.Move(s.Items, from, to)
		if err != nil {
			return s, false
		}
		s.Items = items
		return s, true
	})
}

// AddItem appends a new item with a fresh id to the section and returns that id.
// Unset fields default to empty strings. An unknown section returns the document
// unchanged and an empty id.
func (e *Editor) AddItem(doc types.Document, sectionID string, patch *types.ItemPatch) (types.Document, string) {
	doc = doc.Normalize()
	if doc.SectionIndex(sectionID) < 0 {
		return doc, ""
	}
	item := patch.Build(e.ids.NewID())
	updated := updateSection(doc, sectionID, func(s types.Section) (types.Section, bool) {
		s.Items = ordered.Append(s.Items, item)
		return s, true
	})
	return updated, item.ID
}

// UpdateItem replaces one field of one item
func (e *Editor) UpdateItem(doc types.Document, sectionID, itemID string, field types.ItemField, value string) types.Document {
	doc = doc.Normalize()
	if _, ok := types.ParseItemField(string(field)); !ok {
		return doc
	}
	return updateSection(doc, sectionID, func(s types.Section) (types.Section, bool) {
		i := s.ItemIndex(itemID)
		if i < 0 {
			return s, false
		}
		items, err := ordered.Replace(s.Items, i, s.Items[i].With(field, value))
		if err != nil {
			return s, false
		}
		s.Items = items
		return s, true
	})
}

// DeleteItem removes the item from the section. Confirmation is the caller's concern.
func (e *Editor) DeleteItem(doc types.Document, sectionID, itemID string) types.Document {
	doc = doc.Normalize()
	return updateSection(doc, sectionID, func(s types.Section) (types.Section, bool) {
		i := s.ItemIndex(itemID)
		if i < 0 {
			return s, false
		}
		items, err := ordered.Remove(s.Items, i)
		if err != nil {
			return s, false
		}
		s.Items = items
		return s, true
	})
}

// updateSection rebuilds the section list with fn applied to the matching section.
// When the section is missing or fn reports no change, doc is returned as is.
func updateSection(doc types.Document, sectionID string, fn func(types.Section) (types.Section, bool)) types.Document {
	i := doc.SectionIndex(sectionID)
	if i < 0 {
		return doc
	}
	section, changed := fn(doc.Sections[i])
	if !changed {
		return doc
	}
	sections, err := ordered.Replace(doc.Sections, i, section)
	if err != nil {
		return doc
	}
	doc.Sections = sections
	return doc
}
