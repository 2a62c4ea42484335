package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Snapshot is an immutable view of the document at one revision
type Snapshot struct {
	Document types.Document `json:"document"`
	Revision uint64         `json:"revision"`
}

// ChatResult is the outcome of one assistant turn
type ChatResult struct {
	Reply      types.ChatMessage     `json:"reply"`
	Invocation *types.ToolInvocation `json:"invocation,omitempty"`
	Applied    bool                  `json:"applied"`
	Revision   uint64                `json:"revision"`
}

// Session is the single owner of the document state. All mutations go through
// the editor and replace the snapshot atomically; readers never see a partial update.
type Session struct {
	mu       sync.RWMutex
	doc      types.Document
	revision uint64
	history  []types.ChatMessage
	pending  bool
	trees    map[types.Template]rendering.Tree
	treesRev uint64
	watchers map[*watcher]struct{}
	closed   bool
	done     chan struct{}

	turn      *semaphore.Weighted
	editor    *editor.Editor
	assistant *assistant.Adapter
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures a Session
type Option func(*Session)

// WithEditor sets the mutation engine
func WithEditor(ed *editor.Editor) Option {
	return func(s *Session) {
		if ed != nil {
			s.editor = ed
		}
	}
}

// WithAssistant sets the assistant adapter used by Chat
func WithAssistant(a *assistant.Adapter) Option {
	return func(s *Session) {
		s.assistant = a
	}
}

// WithLogger sets the session logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		s.logger = logger.OrNop(l)
	}
}

// WithClock overrides the timestamp source for chat messages
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a session holding doc at revision 1. The conversation starts
// with the assistant greeting.
func New(doc types.Document, opts ...Option) *Session {
	s := &Session{
		doc:      doc.Clone().Normalize(),
		revision: 1,
		watchers: make(map[*watcher]struct{}),
		done:     make(chan struct{}),
		turn:     semaphore.NewWeighted(1),
		editor:   editor.New(nil),
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.assistant == nil {
		s.assistant = assistant.New(nil, s.editor, assistant.WithLogger(s.logger))
	}
	s.history = []types.ChatMessage{s.message(types.RoleAssistant, assistant.Greeting())}
	return s
}

// Snapshot returns the current document and revision
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Document: s.doc.Clone(), Revision: s.revision}
}

// Document returns a copy of the current document
func (s *Session) Document() types.Document {
	return s.Snapshot().Document
}

// Revision returns the current revision. It increases on every accepted change.
func (s *Session) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Pending reports whether an assistant turn is in flight
func (s *Session) Pending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending
}

// History returns a copy of the conversation so far
func (s *Session) History() []types.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// Replace swaps in a whole new document, as when loading a file or seed
func (s *Session) Replace(doc types.Document) Snapshot {
	return s.Update(func(types.Document) types.Document { return doc.Clone().Normalize() })
}

// Update applies fn to the current document under the session lock. The
// revision only advances when fn returns a document that differs from the current one.
func (s *Session) Update(fn func(types.Document) types.Document) Snapshot {
	s.mu.Lock()
	next := fn(s.doc.Clone()).Normalize()
	snap, changed := s.commitLocked(next)
	s.mu.Unlock()

	if changed {
		s.notify(snap)
	}
	return snap
}

// Tree returns the render tree of the current document for template. An empty
// template uses the document's selected template. Trees are cached per revision.
func (s *Session) Tree(template types.Template) (rendering.Tree, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if template == "" {
		template = s.doc.Template
	}
	if s.treesRev != s.revision || s.trees == nil {
		s.trees = make(map[types.Template]rendering.Tree)
		s.treesRev = s.revision
	}
	if tree, ok := s.trees[template]; ok {
		return tree, s.revision
	}
	tree := rendering.Render(s.doc, template)
	s.trees[template] = tree
	return tree, s.revision
}

// Chat runs one assistant turn. The user message joins the history immediately
// and the pending flag is raised while the model is called without holding the
// lock. The returned invocation is applied to the document current at completion
// time, so edits made during the turn are preserved where they do not conflict.
func (s *Session) Chat(ctx context.Context, message string) (*ChatResult, error) {
	if !s.turn.TryAcquire(1) {
		return nil, ErrTurnInFlight
	}
	defer s.turn.Release(1)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	history := make([]types.ChatMessage, len(s.history))
	copy(history, s.history)
	s.history = append(s.history, s.message(types.RoleUser, message))
	s.pending = true
	doc := s.doc.Clone()
	s.mu.Unlock()

	s.logger.Debug("assistant turn started", zap.String("message", logger.Truncate(message, 80)))

	reply := s.assistant.Ask(ctx, assistant.TurnRequest{
		History:  history,
		Message:  message,
		Document: doc,
	})

	s.mu.Lock()
	applied := false
	var snap Snapshot
	var changed bool
	if reply.Invocation != nil {
		next, ok := s.assistant.Apply(s.doc.Clone(), reply.Invocation)
		if ok {
			snap, changed = s.commitLocked(next)
			applied = changed
		}
	}
	replyMsg := s.message(types.RoleAssistant, reply.Text)
	s.history = append(s.history, replyMsg)
	s.pending = false
	revision := s.revision
	s.mu.Unlock()

	if changed {
		s.notify(snap)
	}

	s.logger.Debug("assistant turn finished",
		zap.Bool("applied", applied),
		zap.Uint64(logger.FieldRevision, revision))

	return &ChatResult{
		Reply:      replyMsg,
		Invocation: reply.Invocation,
		Applied:    applied,
		Revision:   revision,
	}, nil
}

// Close stops all watchers and rejects later chat turns
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
	for w := range s.watchers {
		close(w.ch)
		delete(s.watchers, w)
	}
}

func (s *Session) commitLocked(next types.Document) (Snapshot, bool) {
	if documentsEqual(s.doc, next) {
		return Snapshot{Document: s.doc.Clone(), Revision: s.revision}, false
	}
	s.doc = next
	s.revision++
	return Snapshot{Document: next.Clone(), Revision: s.revision}, true
}

func (s *Session) message(role types.ChatRole, text string) types.ChatMessage {
	return types.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: s.now().UTC(),
	}
}
