package notifier

import (
	"context"
	"log/slog"
)

// Notifier delivers a verification code to a freshly registered user.
// Delivery is fire-and-forget from the caller's perspective: a failed
// send never rolls back the account it belongs to.
type Notifier interface {
	Send(ctx context.Context, toEmail, username, code string) error
}

// LogNotifier writes the dispatch to the structured log instead of an
// outbound mail channel. It stands in for the real notification sink,
// which is an external collaborator of this system.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(ctx context.Context, toEmail, username, code string) error {
	n.logger.Info("verification code dispatched",
		slog.String("to", toEmail),
		slog.String("username", username),
		slog.String("code", code),
	)
	return nil
}
