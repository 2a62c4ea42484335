package types

// PersonalField names one field of PersonalInfo
type PersonalField string

// Personal info fields
const (
	FieldFullName PersonalField = "fullName"
	FieldTitle    PersonalField = "title"
	FieldEmail    PersonalField = "email"
	FieldPhone    PersonalField = "phone"
	FieldLocation PersonalField = "location"
	FieldSummary  PersonalField = "summary"
	FieldLinkedIn PersonalField = "linkedin"
	FieldWebsite  PersonalField = "website"
)

// PersonalFields lists the enumerated PersonalInfo fields
var PersonalFields = []PersonalField{
	FieldFullName, FieldTitle, FieldEmail, FieldPhone,
	FieldLocation, FieldSummary, FieldLinkedIn, FieldWebsite,
}

// ParsePersonalField resolves a field name. The second result is false for unknown names.
func ParsePersonalField(name string) (PersonalField, bool) {
	for _, f := range PersonalFields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// Get returns the value of field f
func (p PersonalInfo) Get(f PersonalField) (string, bool) {
	ptr := p.fieldPtr(f)
	if ptr == nil {
		return "", false
	}
	return *ptr, true
}

// With returns a copy of p with field f set to value; unknown fields return p unchanged
func (p PersonalInfo) With(f PersonalField, value string) PersonalInfo {
	if ptr := p.fieldPtr(f); ptr != nil {
		*ptr = value
	}
	return p
}

func (p *PersonalInfo) fieldPtr(f PersonalField) *string {
	switch f {
	case FieldFullName:
		return &p.FullName
	case FieldTitle:
		return &p.Title
	case FieldEmail:
		return &p.Email
	case FieldPhone:
		return &p.Phone
	case FieldLocation:
		return &p.Location
	case FieldSummary:
		return &p.Summary
	case FieldLinkedIn:
		return &p.LinkedIn
	case FieldWebsite:
		return &p.Website
	}
	return nil
}

// PersonalInfoPatch is a partial PersonalInfo. Nil fields are left untouched on merge.
type PersonalInfoPatch struct {
	FullName *string `json:"fullName,omitempty" mapstructure:"fullName"`
	Title    *string `json:"title,omitempty" mapstructure:"title"`
	Email    *string `json:"email,omitempty" mapstructure:"email"`
	Phone    *string `json:"phone,omitempty" mapstructure:"phone"`
	Location *string `json:"location,omitempty" mapstructure:"location"`
	Summary  *string `json:"summary,omitempty" mapstructure:"summary"`
	LinkedIn *string `json:"linkedin,omitempty" mapstructure:"linkedin"`
	Website  *string `json:"website,omitempty" mapstructure:"website"`
}

// Empty reports whether the patch sets no field
func (p PersonalInfoPatch) Empty() bool {
	return p.FullName == nil && p.Title == nil && p.Email == nil && p.Phone == nil &&
		p.Location == nil && p.Summary == nil && p.LinkedIn == nil && p.Website == nil
}

// Apply merges the patch into info field by field
func (p PersonalInfoPatch) Apply(info PersonalInfo) PersonalInfo {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&info.FullName, p.FullName)
	set(&info.Title, p.Title)
	set(&info.Email, p.Email)
	set(&info.Phone, p.Phone)
	set(&info.Location, p.Location)
	set(&info.Summary, p.Summary)
	set(&info.LinkedIn, p.LinkedIn)
	set(&info.Website, p.Website)
	return info
}

// ItemField names one editable field of an Item
type ItemField string

// Item fields
const (
	ItemTitle       ItemField = "title"
	ItemSubtitle    ItemField = "subtitle"
	ItemDate        ItemField = "date"
	ItemDescription ItemField = "description"
	ItemLocation    ItemField = "location"
)

// ItemFields lists the editable item fields; the id is deliberately absent
var ItemFields = []ItemField{ItemTitle, ItemSubtitle, ItemDate, ItemDescription, ItemLocation}

// ParseItemField resolves an item field name
func ParseItemField(name string) (ItemField, bool) {
	for _, f := range ItemFields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// With returns a copy of the item with field f set to value; unknown fields return it unchanged
func (it Item) With(f ItemField, value string) Item {
	switch f {
	case ItemTitle:
		it.Title = value
	case ItemSubtitle:
		it.Subtitle = value
	case ItemDate:
		it.Date = value
	case ItemDescription:
		it.Description = value
	case ItemLocation:
		it.Location = value
	}
	return it
}

// ItemPatch is a partial Item used when creating entries
type ItemPatch struct {
	Title       *string `json:"title,omitempty" mapstructure:"title"`
	Subtitle    *string `json:"subtitle,omitempty" mapstructure:"subtitle"`
	Date        *string `json:"date,omitempty" mapstructure:"date"`
	Description *string `json:"description,omitempty" mapstructure:"description"`
	Location    *string `json:"location,omitempty" mapstructure:"location"`
}

// Build creates an item with the given id; unset fields default to empty string
func (p *ItemPatch) Build(id string) Item {
	item := Item{ID: id}
	if p == nil {
		return item
	}
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	item.Title = deref(p.Title)
	item.Subtitle = deref(p.Subtitle)
	item.Date = deref(p.Date)
	item.Description = deref(p.Description)
	item.Location = deref(p.Location)
	return item
}

// String returns a pointer to s, for building patches
func String(s string) *string {
	return &s
}
