package assistant

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// Fixed replies
const (
	ConfirmationReply = "Updating your CV..."
	ApologyReply      = "Sorry, I can't respond right now. Please check your API key."
	DefaultItemTitle  = "New entry"
)

// DefaultTimeout bounds a single model call
const DefaultTimeout = 60 * time.Second

// Adapter runs assistant turns against a chat model and applies the resulting
// invocations through the editor
type Adapter struct {
	model   llm.ChatModel
	editor  *editor.Editor
	logger  *zap.Logger
	timeout time.Duration
}

// Option configures an Adapter
type Option func(*Adapter)

// WithTimeout bounds each model call
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithLogger sets the adapter logger
func WithLogger(l *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger.OrNop(l)
	}
}

// New creates an adapter. A nil model makes every turn answer with ApologyReply.
func New(model llm.ChatModel, ed *editor.Editor, opts ...Option) *Adapter {
	if ed == nil {
		ed = editor.New(nil)
	}
	a := &Adapter{
		model:   model,
		editor:  ed,
		logger:  zap.NewNop(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// TurnRequest is one user message with the conversation so far and the document it refers to
type TurnRequest struct {
	History  []types.ChatMessage
	Message  string
	Document types.Document
}

// Reply is the model's answer, reduced to at most one validated invocation
type Reply struct {
	Text       string
	Invocation *types.ToolInvocation
}

// TurnResult is a reply together with the document after applying its invocation
type TurnResult struct {
	Reply      string
	Invocation *types.ToolInvocation
	Document   types.Document
	Applied    bool
}

// Ask sends the turn to the model. It never fails: external errors degrade to
// ApologyReply with no invocation, and invalid invocations are dropped.
func (a *Adapter) Ask(ctx context.Context, req TurnRequest) Reply {
	if a.model == nil {
		a.logger.Warn("no chat model configured")
		return Reply{Text: ApologyReply}
	}

	systemContext, err := a.systemContext(req.Document)
	if err != nil {
		a.logger.Error("failed to build system context", zap.Error(err))
		return Reply{Text: ApologyReply}
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	started := time.Now()
	resp, err := a.model.SendTurn(ctx, llm.TurnRequest{
		SystemContext: systemContext,
		History:       toLLMHistory(req.History),
		Message:       req.Message,
		Tools:         []llm.Tool{Tool()},
	})
	if err != nil {
		a.logger.Error("model call failed", zap.Error(err), zap.Duration("elapsed", time.Since(started)))
		return Reply{Text: ApologyReply}
	}
	if resp == nil || (resp.Text == "" && len(resp.Calls) == 0) {
		a.logger.Error("model returned an empty response")
		return Reply{Text: ApologyReply}
	}

	a.logger.Debug("model replied",
		zap.String("text", logger.Truncate(resp.Text, 120)),
		zap.Int("calls", len(resp.Calls)),
		zap.Duration("elapsed", time.Since(started)))

	reply := Reply{Text: strings.TrimSpace(resp.Text)}
	if len(resp.Calls) == 0 {
		return reply
	}
	if len(resp.Calls) > 1 {
		a.logger.Debug("ignoring extra function calls", zap.Int("dropped", len(resp.Calls)-1))
	}
	if reply.Text == "" {
		reply.Text = ConfirmationReply
	}

	inv, unused, err := ParseInvocation(resp.Calls[0])
	if err != nil {
		a.logger.Warn("dropping invocation", zap.String("tool", resp.Calls[0].Name), zap.Error(err))
		return reply
	}
	if len(unused) > 0 {
		a.logger.Debug("discarded unrecognized tool arguments", zap.Strings("keys", unused))
	}
	reply.Invocation = inv
	return reply
}

// Apply executes an invocation against doc. The second result reports whether
// the document changed. Unresolvable targets and add_section are no-ops.
func (a *Adapter) Apply(doc types.Document, inv *types.ToolInvocation) (types.Document, bool) {
	if inv == nil || inv.Name != ToolName {
		return doc, false
	}
	args := inv.Args

	switch args.Action {
	case types.ActionAddItem:
		if args.SectionType == "" {
			a.logger.Debug("add_item without sectionType")
			return doc, false
		}
		section, ok := doc.SectionByType(args.SectionType)
		if !ok {
			a.logger.Debug("no section for add_item", zap.String("section_type", string(args.SectionType)))
			return doc, false
		}
		patch := args.Data.ItemPatch()
		if patch.Title == nil || *patch.Title == "" {
			patch.Title = types.String(DefaultItemTitle)
		}
		updated, id := a.editor.AddItem(doc, section.ID, patch)
		a.logger.Debug("added item", zap.String("section_id", section.ID), zap.String("item_id", id))
		return updated, id != ""

	case types.ActionUpdatePersonal:
		patch := args.Data.PersonalPatch()
		if patch.Empty() {
			return doc, false
		}
		return a.editor.UpdatePersonalInfo(doc, patch), true

	case types.ActionAddSection:
		a.logger.Debug("add_section has no executor")
		return doc, false

	default:
		return doc, false
	}
}

// Turn asks the model and applies the reply's invocation to the request document
func (a *Adapter) Turn(ctx context.Context, req TurnRequest) TurnResult {
	reply := a.Ask(ctx, req)
	doc, applied := a.Apply(req.Document, reply.Invocation)
	return TurnResult{
		Reply:      reply.Text,
		Invocation: reply.Invocation,
		Document:   doc,
		Applied:    applied,
	}
}

// Model returns the chat model, or nil when none is configured
func (a *Adapter) Model() llm.ChatModel {
	return a.model
}

func (a *Adapter) systemContext(doc types.Document) (string, error) {
	cvContext, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	catalog, err := prompts.LoadAssistant()
	if err != nil {
		return "", err
	}
	return catalog.System(prompts.SystemData{CVContext: string(cvContext)})
}

func toLLMHistory(history []types.ChatMessage) []llm.Message {
	out := make([]llm.Message, 0, len(history))
	for _, msg := range history {
		role := llm.RoleUser
		if msg.Role == types.RoleAssistant {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Text: msg.Text})
	}
	return out
}
