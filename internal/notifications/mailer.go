package notifications

import "context"

// Message is a rendered HTML email ready for a relay.
type Message struct {
	Kind    string
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
