package mutation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNotifier captures lifecycle notifications for assertions.
type recordingNotifier struct {
	mu        sync.Mutex
	started   []string
	succeeded []string
	failed    []string
	undo      UndoFunc
	window    time.Duration
}

func (n *recordingNotifier) Started(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.started = append(n.started, message)
}

func (n *recordingNotifier) Succeeded(message string, undo UndoFunc, window time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.succeeded = append(n.succeeded, message)
	if undo != nil {
		n.undo = undo
		n.window = window
	}
}

func (n *recordingNotifier) Failed(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failed = append(n.failed, message)
}

func (n *recordingNotifier) snapshot() (started, succeeded, failed []string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.started...),
		append([]string(nil), n.succeeded...),
		append([]string(nil), n.failed...)
}

func messages(op string) Messages {
	return Messages{
		Pending:   op + " pending",
		Succeeded: op + " done",
		Failed:    op + " failed",
	}
}

func TestRunResolvesDeferredValue(t *testing.T) {
	notifier := &recordingNotifier{}
	var onSuccess string

	m := Run(context.Background(), notifier, Spec[string]{
		Messages: messages("create"),
		Do: func(ctx context.Context) (string, error) {
			return "created", nil
		},
		OnSuccess: func(value string) { onSuccess = value },
	})

	value, err := m.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "created", value)
	assert.Equal(t, StateSucceeded, m.State())

	assert.Eventually(t, func() bool {
		started, succeeded, _ := notifier.snapshot()
		return len(started) == 1 && len(succeeded) == 1
	}, time.Second, 5*time.Millisecond)

	started, succeeded, failed := notifier.snapshot()
	assert.Equal(t, []string{"create pending"}, started)
	assert.Equal(t, []string{"create done"}, succeeded)
	assert.Empty(t, failed)
	assert.Equal(t, "created", onSuccess)
}

func TestRunFailure(t *testing.T) {
	notifier := &recordingNotifier{}
	boom := errors.New("boom")

	m := Run(context.Background(), notifier, Spec[string]{
		Messages: messages("create"),
		Do: func(ctx context.Context) (string, error) {
			return "", boom
		},
		OnSuccess: func(string) { t.Fatal("OnSuccess must not run on failure") },
	})

	_, err := m.Wait(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateFailed, m.State())

	assert.Eventually(t, func() bool {
		_, _, failed := notifier.snapshot()
		return len(failed) == 1
	}, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, m.Undo(context.Background()), ErrUndoUnavailable)
}

func TestWaitHonorsContext(t *testing.T) {
	notifier := &recordingNotifier{}
	release := make(chan struct{})

	m := Run(context.Background(), notifier, Spec[int]{
		Messages: messages("slow"),
		Do: func(ctx context.Context) (int, error) {
			<-release
			return 1, nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	value, err := m.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, value)
}

func TestUndoCompensatesOnce(t *testing.T) {
	notifier := &recordingNotifier{}
	var compensated []string

	m := Run(context.Background(), notifier, Spec[string]{
		Messages: messages("delete"),
		Do: func(ctx context.Context) (string, error) {
			return "row-42", nil
		},
		Undo: &UndoSpec[string]{
			Compensate: func(ctx context.Context, value string) error {
				compensated = append(compensated, value)
				return nil
			},
		},
	})

	_, err := m.Wait(context.Background())
	require.NoError(t, err)

	_, armed := m.UndoExpiresAt()
	assert.True(t, armed)

	require.NoError(t, m.Undo(context.Background()))
	assert.Equal(t, []string{"row-42"}, compensated)

	// Single-shot: the second call reports consumption and does not
	// compensate again.
	assert.ErrorIs(t, m.Undo(context.Background()), ErrUndoConsumed)
	assert.Len(t, compensated, 1)

	_, armed = m.UndoExpiresAt()
	assert.False(t, armed)

	// The compensation ran as its own mutation with default messages.
	assert.Eventually(t, func() bool {
		started, succeeded, _ := notifier.snapshot()
		return len(started) == 2 && len(succeeded) == 2
	}, time.Second, 5*time.Millisecond)
	started, succeeded, _ := notifier.snapshot()
	assert.Equal(t, "Undoing action...", started[1])
	assert.Equal(t, "Action undone!", succeeded[1])
}

func TestUndoExpires(t *testing.T) {
	notifier := &recordingNotifier{}

	m := Run(context.Background(), notifier, Spec[string]{
		Messages: messages("delete"),
		Do: func(ctx context.Context) (string, error) {
			return "row-42", nil
		},
		Undo: &UndoSpec[string]{
			Window: 10 * time.Millisecond,
			Compensate: func(ctx context.Context, value string) error {
				t.Fatal("compensation must not run after expiry")
				return nil
			},
		},
	})

	_, err := m.Wait(context.Background())
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)
	assert.ErrorIs(t, m.Undo(context.Background()), ErrUndoExpired)
}

func TestUndoWaitsForResolution(t *testing.T) {
	notifier := &recordingNotifier{}
	release := make(chan struct{})
	var compensated string

	m := Run(context.Background(), notifier, Spec[string]{
		Messages: messages("delete"),
		Do: func(ctx context.Context) (string, error) {
			<-release
			return "late", nil
		},
		Undo: &UndoSpec[string]{
			Compensate: func(ctx context.Context, value string) error {
				compensated = value
				return nil
			},
		},
	})

	undone := make(chan error, 1)
	go func() { undone <- m.Undo(context.Background()) }()

	time.Sleep(10 * time.Millisecond)
	close(release)

	require.NoError(t, <-undone)
	assert.Equal(t, "late", compensated)
}

func TestFailedUndoDoesNotRearm(t *testing.T) {
	notifier := &recordingNotifier{}

	m := Run(context.Background(), notifier, Spec[string]{
		Messages: messages("delete"),
		Do: func(ctx context.Context) (string, error) {
			return "row-42", nil
		},
		Undo: &UndoSpec[string]{
			Compensate: func(ctx context.Context, value string) error {
				return errors.New("restore failed")
			},
		},
	})

	_, err := m.Wait(context.Background())
	require.NoError(t, err)

	assert.EqualError(t, m.Undo(context.Background()), "restore failed")
	assert.ErrorIs(t, m.Undo(context.Background()), ErrUndoConsumed)
}

func TestUndoUnavailableWithoutSpec(t *testing.T) {
	notifier := &recordingNotifier{}

	m := Run(context.Background(), notifier, Spec[string]{
		Messages: messages("update"),
		Do: func(ctx context.Context) (string, error) {
			return "ok", nil
		},
	})

	_, err := m.Wait(context.Background())
	require.NoError(t, err)

	_, armed := m.UndoExpiresAt()
	assert.False(t, armed)
	assert.ErrorIs(t, m.Undo(context.Background()), ErrUndoUnavailable)
}

func TestRegistryUndo(t *testing.T) {
	notifier := &recordingNotifier{}
	registry := NewRegistry()
	var compensated int

	m := Run(context.Background(), notifier, Spec[int]{
		Messages: messages("delete"),
		Do: func(ctx context.Context) (int, error) {
			return 7, nil
		},
		Undo: &UndoSpec[int]{
			Compensate: func(ctx context.Context, value int) error {
				compensated = value
				return nil
			},
		},
	})
	_, err := m.Wait(context.Background())
	require.NoError(t, err)

	registry.Put("booking:42", m)

	require.NoError(t, registry.Undo(context.Background(), "booking:42"))
	assert.Equal(t, 7, compensated)

	// The entry is dropped after a successful undo.
	assert.ErrorIs(t, registry.Undo(context.Background(), "booking:42"), ErrUndoUnavailable)
}

func TestRegistryUnknownKey(t *testing.T) {
	registry := NewRegistry()
	assert.ErrorIs(t, registry.Undo(context.Background(), "missing"), ErrUndoUnavailable)
}

func TestRegistryPrunesExpired(t *testing.T) {
	notifier := &recordingNotifier{}
	registry := NewRegistry()

	expired := Run(context.Background(), notifier, Spec[int]{
		Messages: messages("delete"),
		Do:       func(ctx context.Context) (int, error) { return 1, nil },
		Undo: &UndoSpec[int]{
			Window:     time.Millisecond,
			Compensate: func(ctx context.Context, value int) error { return nil },
		},
	})
	_, err := expired.Wait(context.Background())
	require.NoError(t, err)
	registry.Put("old", expired)

	time.Sleep(10 * time.Millisecond)
	assert.ErrorIs(t, registry.Undo(context.Background(), "old"), ErrUndoExpired)

	fresh := Run(context.Background(), notifier, Spec[int]{
		Messages: messages("delete"),
		Do:       func(ctx context.Context) (int, error) { return 2, nil },
		Undo: &UndoSpec[int]{
			Compensate: func(ctx context.Context, value int) error { return nil },
		},
	})
	_, err = fresh.Wait(context.Background())
	require.NoError(t, err)

	// Put prunes the expired entry as a side effect.
	registry.Put("new", fresh)
	assert.ErrorIs(t, registry.Undo(context.Background(), "old"), ErrUndoUnavailable)
	assert.NoError(t, registry.Undo(context.Background(), "new"))
}
