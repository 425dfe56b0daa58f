// Package mutation wraps remote create/update/delete calls in an optimistic
// protocol: the caller gets a deferred result before the call resolves,
// notifications track the pending/succeeded/failed lifecycle, and destructive
// operations expose a bounded-time undo that compensates with an inverse
// mutation of its own.
package mutation

import (
	"context"
	"errors"
	"sync"
	"time"
)

// UndoWindow is how long the undo action stays armed after a destructive
// mutation succeeds.
const UndoWindow = 5 * time.Second

var (
	// ErrUndoUnavailable is returned when a mutation has no undo, has not
	// succeeded, or is unknown to a registry.
	ErrUndoUnavailable = errors.New("mutation: undo unavailable")

	// ErrUndoExpired is returned when the undo window has elapsed.
	ErrUndoExpired = errors.New("mutation: undo window expired")

	// ErrUndoConsumed is returned when undo was already invoked once.
	ErrUndoConsumed = errors.New("mutation: undo already consumed")
)

// State is a mutation's position in its lifecycle.
type State int32

const (
	StateIdle State = iota
	StatePending
	StateSucceeded
	StateFailed
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// UndoFunc triggers the compensating mutation for a succeeded destructive
// operation.
type UndoFunc func(ctx context.Context) error

// Notifier receives the user-facing lifecycle events of a mutation. The host
// renders them; this package never renders anything itself.
type Notifier interface {
	// Started signals the mutation is in flight.
	Started(message string)

	// Succeeded signals completion. When undo is non-nil it stays invocable
	// for the given window.
	Succeeded(message string, undo UndoFunc, window time.Duration)

	// Failed signals the mutation was rejected.
	Failed(message string)
}

// Messages are the three notification strings of one mutation.
type Messages struct {
	Pending   string
	Succeeded string
	Failed    string
}

// UndoSpec describes the compensating action for a destructive mutation.
type UndoSpec[T any] struct {
	// Messages for the undo's own lifecycle. Zero values get defaults.
	Messages Messages

	// Compensate re-creates what the mutation destroyed, given the value the
	// original Do resolved with.
	Compensate func(ctx context.Context, value T) error

	// Window overrides UndoWindow when positive.
	Window time.Duration
}

// Spec describes a single mutation run.
type Spec[T any] struct {
	Messages Messages

	// Do performs the remote call.
	Do func(ctx context.Context) (T, error)

	// OnSuccess runs after Do succeeds and before the success notification;
	// cache invalidation hangs off this hook.
	OnSuccess func(value T)

	// Undo, when set, arms a bounded-time compensating action after success.
	Undo *UndoSpec[T]
}

// Mutation is one in-flight or resolved mutation instance. Independent
// instances run concurrently without coordination; each owns its own
// deferred result.
type Mutation[T any] struct {
	notifier Notifier
	spec     Spec[T]

	done  chan struct{}
	value T
	err   error

	mu           sync.Mutex
	state        State
	undoArmed    bool
	undoConsumed bool
	undoDeadline time.Time
}

// Run starts the mutation and returns immediately with its deferred handle.
// The pending notification fires before the remote call is issued.
func Run[T any](ctx context.Context, notifier Notifier, spec Spec[T]) *Mutation[T] {
	m := &Mutation[T]{
		notifier: notifier,
		spec:     spec,
		done:     make(chan struct{}),
		state:    StatePending,
	}

	notifier.Started(spec.Messages.Pending)

	go func() {
		value, err := spec.Do(ctx)

		m.mu.Lock()
		m.value = value
		m.err = err
		if err != nil {
			m.state = StateFailed
		} else {
			m.state = StateSucceeded
			if spec.Undo != nil {
				window := spec.Undo.Window
				if window <= 0 {
					window = UndoWindow
				}
				m.undoArmed = true
				m.undoDeadline = time.Now().Add(window)
			}
		}
		m.mu.Unlock()
		close(m.done)

		if err != nil {
			notifier.Failed(spec.Messages.Failed)
			return
		}

		if spec.OnSuccess != nil {
			spec.OnSuccess(value)
		}

		if spec.Undo != nil {
			window := spec.Undo.Window
			if window <= 0 {
				window = UndoWindow
			}
			notifier.Succeeded(spec.Messages.Succeeded, m.Undo, window)
		} else {
			notifier.Succeeded(spec.Messages.Succeeded, nil, 0)
		}
	}()

	return m
}

// Wait blocks until the mutation resolves and returns its result.
func (m *Mutation[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-m.done:
		return m.value, m.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// State returns the mutation's current lifecycle state.
func (m *Mutation[T]) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// UndoExpiresAt returns the undo deadline, and whether undo is still armed.
func (m *Mutation[T]) UndoExpiresAt() (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.undoDeadline, m.undoArmed && !m.undoConsumed
}

// Undo invokes the compensating mutation. It waits for the original call to
// resolve first, so it always operates on the resolved value and never races
// the delete it reverses. Undo is single-shot: a failed undo notifies the
// caller but does not re-arm.
func (m *Mutation[T]) Undo(ctx context.Context) error {
	select {
	case <-m.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	m.mu.Lock()
	switch {
	case m.state != StateSucceeded || !m.undoArmed:
		m.mu.Unlock()
		return ErrUndoUnavailable
	case m.undoConsumed:
		m.mu.Unlock()
		return ErrUndoConsumed
	case time.Now().After(m.undoDeadline):
		m.mu.Unlock()
		return ErrUndoExpired
	}
	m.undoConsumed = true
	value := m.value
	m.mu.Unlock()

	messages := m.spec.Undo.Messages
	if messages.Pending == "" {
		messages.Pending = "Undoing action..."
	}
	if messages.Succeeded == "" {
		messages.Succeeded = "Action undone!"
	}
	if messages.Failed == "" {
		messages.Failed = "Failed to undo action."
	}

	// The compensation is a brand-new mutation with its own lifecycle.
	compensation := Run(ctx, m.notifier, Spec[struct{}]{
		Messages: messages,
		Do: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, m.spec.Undo.Compensate(ctx, value)
		},
	})

	_, err := compensation.Wait(ctx)
	return err
}
