package mutation

import (
	"context"
	"sync"
	"time"
)

// Undoable is the registry's view of a mutation that may be compensated.
type Undoable interface {
	Undo(ctx context.Context) error
	UndoExpiresAt() (time.Time, bool)
}

// Registry remembers recent destructive mutations by key so the transport
// layer can reach their undo inside the window.
type Registry struct {
	mu      sync.Mutex
	entries map[string]Undoable
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Undoable)}
}

// Put remembers a mutation under key, replacing any previous entry, and
// prunes expired entries as a side effect.
func (r *Registry) Put(key string, m Undoable) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for k, entry := range r.entries {
		if deadline, armed := entry.UndoExpiresAt(); !armed || now.After(deadline) {
			delete(r.entries, k)
		}
	}
	r.entries[key] = m
}

// Undo invokes the undo for key. Unknown or expired keys report
// ErrUndoUnavailable / ErrUndoExpired; a successful or consumed undo drops
// the entry.
func (r *Registry) Undo(ctx context.Context, key string) error {
	r.mu.Lock()
	entry, ok := r.entries[key]
	r.mu.Unlock()

	if !ok {
		return ErrUndoUnavailable
	}

	err := entry.Undo(ctx)
	if err == nil || err == ErrUndoConsumed || err == ErrUndoExpired {
		r.mu.Lock()
		delete(r.entries, key)
		r.mu.Unlock()
	}
	return err
}
