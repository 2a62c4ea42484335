package session

import "github.com/jonathan/resume-builder/internal/types"

// SetPersonalField sets one header field
func (s *Session) SetPersonalField(field types.PersonalField, value string) Snapshot {
	return s.Update(func(doc types.Document) types.Document {
		return s.editor.SetPersonalField(doc, field, value)
	})
}

// UpdatePersonalInfo merges a partial header into the document
func (s *Session) UpdatePersonalInfo(patch types.PersonalInfoPatch) Snapshot {
	return s.Update(func(doc types.Document) types.Document {
		return s.editor.UpdatePersonalInfo(doc, patch)
	})
}

// SetTemplate switches the visual layout
func (s *Session) SetTemplate(template types.Template) Snapshot {
	return s.Update(func(doc types.Document) types.Document {
		return s.editor.SetTemplate(doc, template)
	})
}

// SetThemeColor sets the accent color
func (s *Session) SetThemeColor(color string) Snapshot {
	return s.Update(func(doc types.Document) types.Document {
		return s.editor.SetThemeColor(doc, color)
	})
}

// ReorderSections moves a section from one position to another
func (s *Session) ReorderSections(from, to int) Snapshot {
	return s.Update(func(doc types.Document) types.Document {
		return s.editor.ReorderSections(doc, from, to)
	})
}

// SetSectionTitle renames a section
func (s *Session) SetSectionTitle(sectionID, title string) Snapshot {
	return s.Update(func(doc types.Document) types.Document {
		return s.editor.SetSectionTitle(doc, sectionID, title)
	})
}

// ReorderItems moves an item within its section
func (s *Session) ReorderItems(sectionID string, from, to int) Snapshot {
	return s.Update(func(doc types.Document) types.Document {
		return s.editor.ReorderItems(doc, sectionID, from, to)
	})
}

// AddItem appends an item to a section. The id is empty when the section does not exist.
func (s *Session) AddItem(sectionID string, patch *types.ItemPatch) (Snapshot, string) {
	var id string
	snap := s.Update(func(doc types.Document) types.Document {
		var next types.Document
		next, id = s.editor.AddItem(doc, sectionID, patch)
		return next
	})
	return snap, id
}

// UpdateItem sets one field of an item
func (s *Session) UpdateItem(sectionID, itemID string, field types.ItemField, value string) Snapshot {
	return s.Update(func(doc types.Document) types.Document {
		return s.editor.UpdateItem(doc, sectionID, itemID, field, value)
	})
}

// DeleteItem removes an item
func (s *Session) DeleteItem(sectionID, itemID string) Snapshot {
	return s.Update(func(doc types.Document) types.Document {
		return s.editor.DeleteItem(doc, sectionID, itemID)
	})
}
