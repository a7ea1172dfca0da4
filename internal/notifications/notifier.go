package notifications

import "context"

// ContactMessage is a contact-form submission on its way to the operator
// mailbox. It is never persisted; if the lead notification cannot be sent
// the submission is lost by design.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

type Notifier interface {
	// SendContactNotification delivers the lead to the operator. An error
	// here fails the whole contact request.
	SendContactNotification(ctx context.Context, msg ContactMessage) error

	// SendContactAcknowledgement sends the "we got your message" reply to
	// the submitter. Best effort: callers log and swallow errors.
	SendContactAcknowledgement(ctx context.Context, email, name string) error
}
