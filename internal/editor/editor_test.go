package editor

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor() *Editor {
	return New(&SequenceSource{Prefix: "item_"})
}

func testDocument() types.Document {
	return types.Document{
		PersonalInfo: types.PersonalInfo{
			FullName: "Grace Hopper",
			Title:    "Rear Admiral",
			Email:    "grace@example.com",
			Phone:    "555-0100",
			Location: "Arlington",
			Summary:  "Compiler pioneer",
			LinkedIn: "https://linkedin.com/in/grace",
		},
		Sections: []types.Section{
			{ID: "sec_exp", Type: types.SectionExperience, Title: "Experience", Items: []types.Item{
				{ID: "e1", Title: "Navy", Subtitle: "Officer", Date: "1943 - 1986"},
				{ID: "e2", Title: "Remington Rand", Subtitle: "Engineer"},
				{ID: "e3", Title: "Harvard", Subtitle: "Researcher"},
			}},
			{ID: "sec_edu", Type: types.SectionEducation, Title: "Education", Items: []types.Item{
				{ID: "d1", Title: "Yale", Subtitle: "PhD Mathematics"},
			}},
			{ID: "sec_skills", Type: types.SectionSkills, Title: "Skills", Items: []types.Item{
				{ID: "s1", Title: "COBOL"},
			}},
		},
		ThemeColor: "#2563eb",
		Template:   types.TemplateModern,
	}
}

func TestSetPersonalField(t *testing.T) {
	ed := newTestEditor()

	for _, field := range types.PersonalFields {
		t.Run(string(field), func(t *testing.T) {
			doc := testDocument()
			updated := ed.SetPersonalField(doc, field, "new value")

			got, ok := updated.PersonalInfo.Get(field)
			require.True(t, ok)
			assert.Equal(t, "new value", got)

			for _, other := range types.PersonalFields {
				if other == field {
					continue
				}
				before, _ := doc.PersonalInfo.Get(other)
				after, _ := updated.PersonalInfo.Get(other)
				assert.Equal(t, before, after, "field %s must be unchanged", other)
			}
			assert.Equal(t, doc.Sections, updated.Sections)
			assert.Equal(t, testDocument(), doc, "input must not be modified")
		})
	}
}

func TestSetPersonalField_AcceptsEmptyAndRejectsUnknown(t *testing.T) {
	ed := newTestEditor()
	doc := testDocument()

	cleared := ed.SetPersonalField(doc, types.FieldEmail, "")
	assert.Equal(t, "", cleared.PersonalInfo.Email)

	unchanged := ed.SetPersonalField(doc, types.PersonalField("age"), "42")
	assert.Equal(t, doc, unchanged)
}

func TestUpdatePersonalInfo_MergesFields(t *testing.T) {
	ed := newTestEditor()
	doc := testDocument()

	updated := ed.UpdatePersonalInfo(doc, types.PersonalInfoPatch{
		Email:   types.String("a@b.com"),
		Website: types.String("https://grace.dev"),
	})

	assert.Equal(t, "a@b.com", updated.PersonalInfo.Email)
	assert.Equal(t, "https://grace.dev", updated.PersonalInfo.Website)
	assert.Equal(t, doc.PersonalInfo.FullName, updated.PersonalInfo.FullName)
	assert.Equal(t, doc.PersonalInfo.Summary, updated.PersonalInfo.Summary)
	assert.Equal(t, doc.PersonalInfo.LinkedIn, updated.PersonalInfo.LinkedIn)
	assert.Equal(t, "grace@example.com", doc.PersonalInfo.Email)

	same := ed.UpdatePersonalInfo(doc, types.PersonalInfoPatch{})
	assert.Equal(t, doc, same, "an empty patch never resets fields")
}

func TestSetTemplateAndThemeColor(t *testing.T) {
	ed := newTestEditor()
	doc := testDocument()

	classic := ed.SetTemplate(doc, types.TemplateClassic)
	assert.Equal(t, types.TemplateClassic, classic.Template)
	assert.Equal(t, types.TemplateModern, doc.Template)

	assert.Equal(t, doc, ed.SetTemplate(doc, types.TemplateMinimal), "reserved template is never produced")
	assert.Equal(t, doc, ed.SetTemplate(doc, types.Template("fancy")))

	colored := ed.SetThemeColor(doc, "#059669")
	assert.Equal(t, "#059669", colored.ThemeColor)
	assert.Equal(t, "#2563eb", doc.ThemeColor)
}

func TestReorderSections(t *testing.T) {
	ed := newTestEditor()
	doc := testDocument()

	updated := ed.ReorderSections(doc, 2, 0)
	assert.Equal(t, []string{"sec_skills", "sec_exp", "sec_edu"}, sectionIDs(updated))
	assert.Equal(t, []string{"sec_exp", "sec_edu", "sec_skills"}, sectionIDs(doc))

	restored := ed.ReorderSections(updated, 0, 2)
	assert.Equal(t, doc, restored)
}

func TestReorderSections_OutOfRangeIsNoOp(t *testing.T) {
	ed := newTestEditor()
	doc := testDocument()

	for _, pair := range [][2]int{{-1, 0}, {0, 3}, {5, 1}, {0, -2}} {
		assert.Equal(t, doc, ed.ReorderSections(doc, pair[0], pair[1]), "from=%d to=%d", pair[0], pair[1])
	}
}

func TestReorderItems_IsPermutation(t *testing.T) {
	ed := newTestEditor()
	doc := testDocument()
	original, _ := doc.Section("sec_exp")

	for from := range original.Items {
		for to := range original.Items {
			moved := ed.ReorderItems(doc, "sec_exp", from, to)
			sec, ok := moved.Section("sec_exp")
			require.True(t, ok)
			assert.ElementsMatch(t, original.ItemIDs(), sec.ItemIDs())

			restored := ed.ReorderItems(moved, "sec_exp", to, from)
			assert.Equal(t, doc, restored, "from=%d to=%d", from, to)
		}
	}

	moved := ed.ReorderItems(doc, "sec_exp", 0, 2)
	sec, _ := moved.Section("sec_exp")
	assert.Equal(t, []string{"e2", "e3", "e1"}, sec.ItemIDs())
	assert.Equal(t, doc.Sections[1], moved.Sections[1], "other sections untouched")
}

func TestReorderItems_NoOps(t *testing.T) {
	ed := newTestEditor()
	doc := testDocument()

	assert.Equal(t, doc, ed.ReorderItems(doc, "missing", 0, 1))
	assert.Equal(t, doc, ed.ReorderItems(doc, "sec_exp", 0, 3))
	assert.Equal(t, doc, ed.ReorderItems(doc, "sec_exp", -1, 0))
}

func TestAddItem(t *testing.T) {
	ed := newTestEditor()
	doc := testDocument()

	updated, id := ed.AddItem(doc, "sec_skills", &types.ItemPatch{Title: types.String("Go")})
	require.Equal(t, "item_1", id)

	sec, _ := updated.Section("sec_skills")
	require.Len(t, sec.Items, 2)
	assert.Equal(t, types.Item{ID: "item_1", Title: "Go"}, sec.Items[1])

	original, _ := doc.Section("sec_skills")
	assert.Len(t, original.Items, 1, "input must not be modified")

	_, second := ed.AddItem(updated, "sec_skills", nil)
	assert.Equal(t, "item_2", second, "ids are never reused")
}

func TestAddItem_DefaultsAndUnknownSection(t *testing.T) {
	ed := newTestEditor()
	doc := testDocument()

	updated, id := ed.AddItem(doc, "sec_edu", nil)
	sec, _ := updated.Section("sec_edu")
	assert.Equal(t, types.Item{ID: id}, sec.Items[len(sec.Items)-1])

	unchanged, noID := ed.AddItem(doc, "missing", &types.ItemPatch{Title: types.String("x")})
	assert.Equal(t, doc, unchanged)
	assert.Empty(t, noID)
}

func TestAddItemThenDeleteItem_RestoresDocument(t *testing.T) {
	ed := newTestEditor()
	doc := testDocument()

	for _, sec := range doc.Sections {
		added, id := ed.AddItem(doc, sec.ID, &types.ItemPatch{Title: types.String("temp"), Description: types.String("a\nb")})
		require.NotEmpty(t, id)
		restored := ed.DeleteItem(added, sec.ID, id)
		assert.Equal(t, doc, restored)
	}
}

func TestAddItemThenDeleteItem_EmptySection(t *testing.T) {
	ed := newTestEditor()
	doc := types.Document{Sections: []types.Section{
		{ID: "sec_exp", Type: types.SectionExperience, Title: "Experience"},
	}}

	added, id := ed.AddItem(doc, "sec_exp", nil)
	require.NotEmpty(t, id)
	restored := ed.DeleteItem(added, "sec_exp", id)

	assert.Equal(t, doc.Normalize(), restored)
	sec, _ := restored.Section("sec_exp")
	assert.NotNil(t, sec.Items, "an emptied section keeps an empty item list")
	assert.Nil(t, doc.Sections[0].Items, "input must not be modified")

	again, _ := ed.AddItem(restored, "sec_exp", nil)
	assert.Equal(t, restored, ed.DeleteItem(again, "sec_exp", "item_2"))
}

func TestOperations_NormalizeEmptySections(t *testing.T) {
	ed := newTestEditor()
	doc := types.Document{Sections: []types.Section{{ID: "sec_skills", Type: types.SectionSkills}}}

	for name, out := range map[string]types.Document{
		"unknown field":   ed.SetPersonalField(doc, types.PersonalField("nickname"), "x"),
		"unknown section": ed.SetSectionTitle(doc, "missing", "x"),
		"unknown item":    ed.DeleteItem(doc, "sec_skills", "missing"),
		"reorder":         ed.ReorderSections(doc, 0, 3),
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, []types.Item{}, out.Sections[0].Items)
		})
	}
}

func TestUpdateItem(t *testing.T) {
	ed := newTestEditor()
	doc := testDocument()

	once := ed.UpdateItem(doc, "sec_exp", "e2", types.ItemTitle, "UNIVAC")
	twice := ed.UpdateItem(once, "sec_exp", "e2", types.ItemTitle, "UNIVAC")
	assert.Equal(t, once, twice, "updateItem is idempotent")

	sec, _ := once.Section("sec_exp")
	assert.Equal(t, "UNIVAC", sec.Items[1].Title)
	assert.Equal(t, "Engineer", sec.Items[1].Subtitle)
	assert.Equal(t, doc.Sections[0].Items[0], sec.Items[0])
	assert.Equal(t, doc.Sections[1], once.Sections[1])
	assert.Equal(t, "Remington Rand", doc.Sections[0].Items[1].Title)
}

func TestUpdateItem_AllFields(t *testing.T) {
	ed := newTestEditor()
	doc := testDocument()

	for _, field := range types.ItemFields {
		updated := ed.UpdateItem(doc, "sec_edu", "d1", field, "v")
		sec, _ := updated.Section("sec_edu")
		assert.Equal(t, "d1", sec.Items[0].ID, "id is stable")
		assert.NotEqual(t, doc, updated, "field %s", field)
	}
}

func TestUpdateItem_NoOps(t *testing.T) {
	ed := newTestEditor()
	doc := testDocument()

	assert.Equal(t, doc, ed.UpdateItem(doc, "missing", "e1", types.ItemTitle, "x"))
	assert.Equal(t, doc, ed.UpdateItem(doc, "sec_exp", "missing", types.ItemTitle, "x"))
	assert.Equal(t, doc, ed.UpdateItem(doc, "sec_exp", "e1", types.ItemField("id"), "x"))
	assert.Equal(t, doc, ed.UpdateItem(doc, "sec_edu", "e1", types.ItemTitle, "x"), "item ids are scoped to their section")
}

func TestDeleteItem(t *testing.T) {
	ed := newTestEditor()
	doc := testDocument()

	updated := ed.DeleteItem(doc, "sec_exp", "e2")
	sec, _ := updated.Section("sec_exp")
	assert.Equal(t, []string{"e1", "e3"}, sec.ItemIDs())

	orig, _ := doc.Section("sec_exp")
	assert.Equal(t, []string{"e1", "e2", "e3"}, orig.ItemIDs())

	assert.Equal(t, doc, ed.DeleteItem(doc, "sec_exp", "missing"))
	assert.Equal(t, doc, ed.DeleteItem(doc, "missing", "e1"))
}

func TestSetSectionTitle(t *testing.T) {
	ed := newTestEditor()
	doc := testDocument()

	updated := ed.SetSectionTitle(doc, "sec_skills", "Toolbox")
	sec, _ := updated.Section("sec_skills")
	assert.Equal(t, "Toolbox", sec.Title)
	assert.Equal(t, types.SectionSkills, sec.Type)
	assert.Equal(t, doc, ed.SetSectionTitle(doc, "missing", "x"))
}

func TestUUIDSource(t *testing.T) {
	src := UUIDSource{}
	a, b := src.NewID(), src.NewID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)

	ed := New(nil)
	_, id := ed.AddItem(testDocument(), "sec_exp", nil)
	assert.Len(t, id, 36)
}

func sectionIDs(doc types.Document) []string {
	ids := make([]string, len(doc.Sections))
	for i, s := range doc.Sections {
		ids[i] = s.ID
	}
	return ids
}
