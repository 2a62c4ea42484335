package session

import (
	"context"
	"reflect"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

type watcher struct {
	mu   sync.Mutex
	ch   chan Snapshot
	last uint64
}

// offer delivers snap without blocking. A slow reader only ever sees the newest snapshot.
func (w *watcher) offer(snap Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if snap.Revision <= w.last {
		return
	}
	w.last = snap.Revision
	select {
	case w.ch <- snap:
		return
	default:
	}
	select {
	case <-w.ch:
	default:
	}
	select {
	case w.ch <- snap:
	default:
	}
}

// Watch returns a channel that receives the current snapshot immediately and
// then every later one. The channel is closed when ctx is done or the session closes.
func (s *Session) Watch(ctx context.Context) (<-chan Snapshot, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	w := &watcher{ch: make(chan Snapshot, 1)}
	s.watchers[w] = struct{}{}
	w.offer(Snapshot{Document: s.doc.Clone(), Revision: s.revision})
	s.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-s.done:
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.watchers[w]; ok {
			delete(s.watchers, w)
			close(w.ch)
		}
	}()
	return w.ch, nil
}

// Watchers returns the number of active watchers
func (s *Session) Watchers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.watchers)
}

func (s *Session) notify(snap Snapshot) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for w := range s.watchers {
		w.offer(snap)
	}
}

func documentsEqual(a, b types.Document) bool {
	return reflect.DeepEqual(a, b)
}
