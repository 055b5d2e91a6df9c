package notifications

import (
	"context"
	"log/slog"
)

// LogMailer writes messages to the log instead of sending them. It is the
// default outside prod.
type LogMailer struct {
	log *slog.Logger
}

func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.log.InfoContext(ctx, "mail.logged",
		"kind", msg.Kind,
		"to", msg.To,
		"subject", msg.Subject,
		"bytes", len(msg.HTML),
	)
	return nil
}
