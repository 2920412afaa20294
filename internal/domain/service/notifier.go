package service

import "context"

// EmailMessage is one outbound email.
type EmailMessage struct {
	To      string
	Subject string
	Body    string // HTML body.
}

// EmailSender defines the interface for the outbound email transport.
type EmailSender interface {
	// Send delivers the message. Callers treat delivery as best-effort;
	// failures are logged, never surfaced to the original requester.
	Send(ctx context.Context, msg EmailMessage) error
}

// SMSMessage is one outbound text message.
type SMSMessage struct {
	To   string // Destination number in E.164 format.
	Body string
}

// SMSSender defines the interface for the outbound SMS transport.
type SMSSender interface {
	// Send delivers the message. Same best-effort contract as EmailSender.
	Send(ctx context.Context, msg SMSMessage) error
}
