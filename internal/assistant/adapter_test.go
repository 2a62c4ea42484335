package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubModel returns a canned response and records the last request
type stubModel struct {
	mu       sync.Mutex
	resp     *llm.TurnResponse
	err      error
	block    bool
	lastReq  llm.TurnRequest
	requests int
}

func (s *stubModel) SendTurn(ctx context.Context, req llm.TurnRequest) (*llm.TurnResponse, error) {
	s.mu.Lock()
	s.lastReq = req
	s.requests++
	s.mu.Unlock()

	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.resp, s.err
}

func (s *stubModel) Provider() llm.Provider { return "stub" }
func (s *stubModel) Model() string          { return "stub-model" }
func (s *stubModel) Close() error           { return nil }

func call(args map[string]any) llm.FunctionCall {
	return llm.FunctionCall{Name: ToolName, Args: args}
}

func testDocument() types.Document {
	return types.Document{
		PersonalInfo: types.PersonalInfo{FullName: "Ada Lovelace", Email: "old@example.com", Phone: "555"},
		Sections: []types.Section{
			{ID: "sec_exp", Type: types.SectionExperience, Title: "Experience", Items: []types.Item{{ID: "1", Title: "Engine"}}},
			{ID: "sec_skills", Type: types.SectionSkills, Title: "Skills", Items: []types.Item{}},
			{ID: "sec_skills_2", Type: types.SectionSkills, Title: "More Skills", Items: []types.Item{}},
		},
		ThemeColor: "#2563eb",
		Template:   types.TemplateModern,
	}
}

func newAdapter(model llm.ChatModel) *Adapter {
	return New(model, editor.New(&editor.SequenceSource{Prefix: "new_"}))
}

func TestTurn_UpdatePersonalEmail(t *testing.T) {
	model := &stubModel{resp: &llm.TurnResponse{
		Text:  "Done!",
		Calls: []llm.FunctionCall{call(map[string]any{"action": "update_personal", "data": map[string]any{"email": "a@b.com"}})},
	}}
	doc := testDocument()

	result := newAdapter(model).Turn(context.Background(), TurnRequest{Message: "my email is a@b.com", Document: doc})

	assert.Equal(t, "Done!", result.Reply)
	assert.True(t, result.Applied)
	require.NotNil(t, result.Invocation)
	assert.Equal(t, types.ActionUpdatePersonal, result.Invocation.Args.Action)

	assert.Equal(t, "a@b.com", result.Document.PersonalInfo.Email)
	expected := doc.PersonalInfo
	expected.Email = "a@b.com"
	assert.Equal(t, expected, result.Document.PersonalInfo, "other fields unchanged")
	assert.Equal(t, doc.Sections, result.Document.Sections)
	assert.Equal(t, "old@example.com", doc.PersonalInfo.Email)
}

func TestTurn_AddSkillWithoutSkillsSection(t *testing.T) {
	model := &stubModel{resp: &llm.TurnResponse{
		Text:  "Added Go to your skills.",
		Calls: []llm.FunctionCall{call(map[string]any{"action": "add_item", "sectionType": "SKILLS", "data": map[string]any{"title": "Go"}})},
	}}
	doc := testDocument()
	doc.Sections = doc.Sections[:1]

	result := newAdapter(model).Turn(context.Background(), TurnRequest{Message: "add a skill called Go", Document: doc})

	assert.Equal(t, "Added Go to your skills.", result.Reply)
	assert.False(t, result.Applied)
	assert.Equal(t, doc, result.Document)
}

func TestTurn_AddItemTargetsFirstMatchingSection(t *testing.T) {
	model := &stubModel{resp: &llm.TurnResponse{
		Calls: []llm.FunctionCall{call(map[string]any{"action": "add_item", "sectionType": "SKILLS", "data": map[string]any{"title": "Go", "date": "2024"}})},
	}}

	result := newAdapter(model).Turn(context.Background(), TurnRequest{Message: "add Go", Document: testDocument()})

	assert.Equal(t, ConfirmationReply, result.Reply, "empty reply with an invocation gets the confirmation")
	assert.True(t, result.Applied)

	skills, _ := result.Document.Section("sec_skills")
	require.Len(t, skills.Items, 1)
	assert.Equal(t, types.Item{ID: "new_1", Title: "Go", Date: "2024"}, skills.Items[0])

	more, _ := result.Document.Section("sec_skills_2")
	assert.Empty(t, more.Items)
}

func TestTurn_AddItemWithoutTitleUsesPlaceholder(t *testing.T) {
	model := &stubModel{resp: &llm.TurnResponse{
		Text:  "ok",
		Calls: []llm.FunctionCall{call(map[string]any{"action": "add_item", "sectionType": "EXPERIENCE", "data": map[string]any{"subtitle": "Acme"}})},
	}}

	result := newAdapter(model).Turn(context.Background(), TurnRequest{Document: testDocument()})

	exp, _ := result.Document.Section("sec_exp")
	require.Len(t, exp.Items, 2)
	assert.Equal(t, DefaultItemTitle, exp.Items[1].Title)
	assert.Equal(t, "Acme", exp.Items[1].Subtitle)
	assert.Empty(t, exp.Items[1].Description)
}

func TestTurn_ExternalFailure(t *testing.T) {
	model := &stubModel{err: errors.New("connection refused")}
	doc := testDocument()

	result := newAdapter(model).Turn(context.Background(), TurnRequest{Message: "hi", Document: doc})

	assert.Equal(t, ApologyReply, result.Reply)
	assert.Nil(t, result.Invocation)
	assert.False(t, result.Applied)
	assert.Equal(t, doc, result.Document)
}

func TestTurn_NoModel(t *testing.T) {
	result := New(nil, nil).Turn(context.Background(), TurnRequest{Message: "hi", Document: testDocument()})
	assert.Equal(t, ApologyReply, result.Reply)
	assert.Nil(t, result.Invocation)
}

func TestTurn_EmptyResponseIsFailure(t *testing.T) {
	result := newAdapter(&stubModel{resp: &llm.TurnResponse{}}).Turn(context.Background(), TurnRequest{Document: testDocument()})
	assert.Equal(t, ApologyReply, result.Reply)

	result = newAdapter(&stubModel{}).Turn(context.Background(), TurnRequest{Document: testDocument()})
	assert.Equal(t, ApologyReply, result.Reply)
}

func TestTurn_Timeout(t *testing.T) {
	model := &stubModel{block: true}
	adapter := New(model, nil, WithTimeout(20*time.Millisecond))

	start := time.Now()
	result := adapter.Turn(context.Background(), TurnRequest{Message: "hi", Document: testDocument()})

	assert.Equal(t, ApologyReply, result.Reply)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestTurn_UpdatePersonalIgnoresSectionType(t *testing.T) {
	for _, sectionType := range []string{"", "PERSONAL", "SKILLS"} {
		t.Run("sectionType="+sectionType, func(t *testing.T) {
			model := &stubModel{resp: &llm.TurnResponse{
				Text: "Updated.",
				Calls: []llm.FunctionCall{call(map[string]any{
					"action":      "update_personal",
					"sectionType": sectionType,
					"data":        map[string]any{"email": "a@b.com"},
				})},
			}}

			result := newAdapter(model).Turn(context.Background(), TurnRequest{Document: testDocument()})

			assert.True(t, result.Applied)
			assert.Equal(t, "a@b.com", result.Document.PersonalInfo.Email)
		})
	}
}

func TestTurn_SchemaMismatchDropsInvocation(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{"unknown action", map[string]any{"action": "delete_everything", "data": map[string]any{}}},
		{"custom section type", map[string]any{"action": "add_item", "sectionType": "CUSTOM", "data": map[string]any{"title": "x"}}},
		{"unknown section type on add_item", map[string]any{"action": "add_item", "sectionType": "PERSONAL", "data": map[string]any{"title": "x"}}},
		{"missing data", map[string]any{"action": "update_personal"}},
		{"non-string value", map[string]any{"action": "update_personal", "data": map[string]any{"email": 42}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &stubModel{resp: &llm.TurnResponse{Text: "Sure.", Calls: []llm.FunctionCall{call(tt.args)}}}
			doc := testDocument()

			result := newAdapter(model).Turn(context.Background(), TurnRequest{Document: doc})

			assert.Equal(t, "Sure.", result.Reply)
			assert.Nil(t, result.Invocation)
			assert.Equal(t, doc, result.Document)
		})
	}
}

func TestTurn_FirstInvocationWins(t *testing.T) {
	model := &stubModel{resp: &llm.TurnResponse{
		Text: "Two updates.",
		Calls: []llm.FunctionCall{
			call(map[string]any{"action": "update_personal", "data": map[string]any{"phone": "111"}}),
			call(map[string]any{"action": "update_personal", "data": map[string]any{"phone": "222"}}),
		},
	}}

	result := newAdapter(model).Turn(context.Background(), TurnRequest{Document: testDocument()})
	assert.Equal(t, "111", result.Document.PersonalInfo.Phone)
}

func TestTurn_AddSectionIsNoOp(t *testing.T) {
	model := &stubModel{resp: &llm.TurnResponse{
		Calls: []llm.FunctionCall{call(map[string]any{"action": "add_section", "sectionType": "PROJECTS", "data": map[string]any{"title": "Projects"}})},
	}}
	doc := testDocument()

	result := newAdapter(model).Turn(context.Background(), TurnRequest{Document: doc})

	require.NotNil(t, result.Invocation)
	assert.False(t, result.Applied)
	assert.Equal(t, doc, result.Document)
	assert.Equal(t, ConfirmationReply, result.Reply)
}

func TestAsk_BuildsRequest(t *testing.T) {
	model := &stubModel{resp: &llm.TurnResponse{Text: "Hi"}}
	history := []types.ChatMessage{
		{ID: "g", Role: types.RoleAssistant, Text: Greeting()},
		{ID: "u1", Role: types.RoleUser, Text: "hello"},
	}

	reply := newAdapter(model).Ask(context.Background(), TurnRequest{History: history, Message: "add Go", Document: testDocument()})
	assert.Equal(t, "Hi", reply.Text)
	assert.Nil(t, reply.Invocation)

	req := model.lastReq
	assert.Equal(t, "add Go", req.Message)
	assert.Contains(t, req.SystemContext, `"fullName":"Ada Lovelace"`)
	assert.NotContains(t, req.SystemContext, "{{.CVContext}}")
	require.Len(t, req.Tools, 1)
	assert.Equal(t, ToolName, req.Tools[0].Name)
	assert.Equal(t, []llm.Message{
		{Role: llm.RoleAssistant, Text: Greeting()},
		{Role: llm.RoleUser, Text: "hello"},
	}, req.History)
}

func TestApply_NilAndUnknown(t *testing.T) {
	a := newAdapter(nil)
	doc := testDocument()

	out, applied := a.Apply(doc, nil)
	assert.False(t, applied)
	assert.Equal(t, doc, out)

	out, applied = a.Apply(doc, &types.ToolInvocation{Name: "other"})
	assert.False(t, applied)
	assert.Equal(t, doc, out)

	out, applied = a.Apply(doc, &types.ToolInvocation{Name: ToolName, Args: types.UpdateCVArgs{Action: types.ActionAddItem}})
	assert.False(t, applied, "add_item without sectionType")
	assert.Equal(t, doc, out)

	out, applied = a.Apply(doc, &types.ToolInvocation{Name: ToolName, Args: types.UpdateCVArgs{Action: types.ActionUpdatePersonal}})
	assert.False(t, applied, "update_personal with no recognized keys")
	assert.Equal(t, doc, out)
}
