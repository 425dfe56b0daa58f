package mutation

import (
	"time"

	"go.uber.org/zap"
)

// LogNotifier renders mutation lifecycle events into the service log. The
// console frontend consumes the same events as toasts; server-side they are
// structured log lines.
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Started logs the pending notification.
func (n *LogNotifier) Started(message string) {
	n.log.Info("mutation started", zap.String("message", message))
}

// Succeeded logs the success notification and the undo window when one is offered.
func (n *LogNotifier) Succeeded(message string, undo UndoFunc, window time.Duration) {
	fields := []zap.Field{zap.String("message", message)}
	if undo != nil {
		fields = append(fields, zap.Duration("undo_window", window))
	}
	n.log.Info("mutation succeeded", fields...)
}

// Failed logs the failure notification.
func (n *LogNotifier) Failed(message string) {
	n.log.Warn("mutation failed", zap.String("message", message))
}
