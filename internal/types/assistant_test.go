//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateCVArgs_Validate(t *testing.T) {
	tests := []struct {
		name    string
		args    UpdateCVArgs
		wantErr bool
	}{
		{
			name: "add item with section type",
			args: UpdateCVArgs{Action: ActionAddItem, SectionType: SectionSkills},
		},
		{
			name: "update personal without section type",
			args: UpdateCVArgs{Action: ActionUpdatePersonal},
		},
		{
			name: "add section is a declared action",
			args: UpdateCVArgs{Action: ActionAddSection},
		},
		{
			name:    "missing action",
			args:    UpdateCVArgs{},
			wantErr: true,
		},
		{
			name:    "unknown action",
			args:    UpdateCVArgs{Action: "delete_everything"},
			wantErr: true,
		},
		{
			name:    "custom sections are not addressable",
			args:    UpdateCVArgs{Action: ActionAddItem, SectionType: SectionCustom},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.args.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestToolData_Projections(t *testing.T) {
	data := ToolData{
		Title:    String("Go"),
		Subtitle: String("Advanced"),
		Email:    String("a@b.com"),
		Location: String("Berlin"),
	}

	item := data.ItemPatch().Build("id-1")
	assert.Equal(t, "Go", item.Title)
	assert.Equal(t, "Advanced", item.Subtitle)
	assert.Equal(t, "Berlin", item.Location)

	personal := data.PersonalPatch()
	assert.Equal(t, "a@b.com", *personal.Email)
	assert.Nil(t, personal.FullName)
	assert.Nil(t, personal.Summary)
}
