package notifications

import (
	"context"
	"log/slog"
	"time"

	"github.com/geocoder89/hallulies/internal/domain/delivery"
)

// DeliveryLog persists the outcome of each mail attempt.
type DeliveryLog interface {
	Record(ctx context.Context, d delivery.Delivery) error
}

// MailObserver receives send timings, usually observability.Prom.
type MailObserver interface {
	ObserveMail(kind string, d time.Duration, err error)
}

// RecordingMailer wraps a mailer and writes an audit row for every attempt.
// A failure to record is logged and never turns a sent mail into an error.
type RecordingMailer struct {
	inner    Mailer
	log      DeliveryLog
	observer MailObserver
	logger   *slog.Logger
}

func NewRecordingMailer(inner Mailer, log DeliveryLog, observer MailObserver, logger *slog.Logger) *RecordingMailer {
	return &RecordingMailer{inner: inner, log: log, observer: observer, logger: logger}
}

func (m *RecordingMailer) Send(ctx context.Context, msg Message) error {
	start := time.Now()
	err := m.inner.Send(ctx, msg)

	if m.observer != nil {
		m.observer.ObserveMail(msg.Kind, time.Since(start), err)
	}

	d := delivery.Delivery{
		Kind:      msg.Kind,
		Recipient: msg.To,
		Subject:   msg.Subject,
		Status:    delivery.StatusSent,
	}
	if err != nil {
		errMsg := err.Error()
		d.Status = delivery.StatusFailed
		d.LastError = &errMsg
	}

	// the request may already be cancelled; the audit row should still land
	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	if recErr := m.log.Record(recCtx, d); recErr != nil {
		m.logger.WarnContext(ctx, "mail.record_failed", "kind", msg.Kind, "err", recErr)
	}

	return err
}
