package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ChatRole identifies the author of a chat message
type ChatRole string

// Chat roles
const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of the assistant conversation
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateCVAction is the closed set of update_cv actions
type UpdateCVAction string

// update_cv actions. ActionAddSection is declared in the schema but has no executor.
const (
	ActionAddItem        UpdateCVAction = "add_item"
	ActionUpdatePersonal UpdateCVAction = "update_personal"
	ActionAddSection     UpdateCVAction = "add_section"
)

// ToolData is the closed record of recognized update_cv data keys.
// It is the union of Item and PersonalInfo field names; anything else is discarded.
type ToolData struct {
	Title       *string `json:"title,omitempty" mapstructure:"title"`
	Subtitle    *string `json:"subtitle,omitempty" mapstructure:"subtitle"`
	Date        *string `json:"date,omitempty" mapstructure:"date"`
	Description *string `json:"description,omitempty" mapstructure:"description"`
	Location    *string `json:"location,omitempty" mapstructure:"location"`
	FullName    *string `json:"fullName,omitempty" mapstructure:"fullName"`
	Email       *string `json:"email,omitempty" mapstructure:"email"`
	Summary     *string `json:"summary,omitempty" mapstructure:"summary"`
	LinkedIn    *string `json:"linkedin,omitempty" mapstructure:"linkedin"`
	Phone       *string `json:"phone,omitempty" mapstructure:"phone"`
	Website     *string `json:"website,omitempty" mapstructure:"website"`
}

// ItemPatch projects the item-related keys of the data record
func (d ToolData) ItemPatch() *ItemPatch {
	return &ItemPatch{
		Title:       d.Title,
		Subtitle:    d.Subtitle,
		Date:        d.Date,
		Description: d.Description,
		Location:    d.Location,
	}
}

// PersonalPatch projects the PersonalInfo keys of the data record.
// "title" and "location" are shared names; they map onto the personal fields too.
func (d ToolData) PersonalPatch() PersonalInfoPatch {
	return PersonalInfoPatch{
		FullName: d.FullName,
		Title:    d.Title,
		Email:    d.Email,
		Phone:    d.Phone,
		Location: d.Location,
		Summary:  d.Summary,
		LinkedIn: d.LinkedIn,
		Website:  d.Website,
	}
}

// UpdateCVArgs is the decoded argument record of an update_cv invocation
type UpdateCVArgs struct {
	Action      UpdateCVAction `json:"action" mapstructure:"action" validate:"required,oneof=add_item update_personal add_section"`
	SectionType SectionType    `json:"sectionType,omitempty" mapstructure:"sectionType" validate:"omitempty,oneof=EXPERIENCE EDUCATION SKILLS PROJECTS LANGUAGES"`
	Data        ToolData       `json:"data" mapstructure:"data"`
}

// Validate checks the closed-set constraints of the argument record
func (a *UpdateCVArgs) Validate() error {
	validate := validator.New()
	return validate.Struct(a)
}

// ToolInvocation is one structured mutation request produced by the assistant
type ToolInvocation struct {
	Name string       `json:"name"`
	Args UpdateCVArgs `json:"args"`
}
