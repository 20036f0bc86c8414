// Package delivery sends rendered report artifacts to board recipients.
// The Sender port keeps the transport swappable so report generation is
// testable without a network.
package delivery

import (
	"context"

	"github.com/go-playground/validator/v10"
)

// Message is one outbound report email.
type Message struct {
	From           string `validate:"required,email"`
	To             string `validate:"required,email"`
	Subject        string `validate:"required"`
	Body           string
	Attachment     string // path to the artifact on disk
	AttachmentName string // filename shown to the recipient
}

// Sender delivers one message. Implementations must treat the context
// deadline as the transport budget and fail closed when it expires.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

var validate = validator.New()

// ValidateMessage rejects messages the transport would bounce anyway,
// before anything touches the network.
func ValidateMessage(msg Message) error {
	if err := validate.Struct(msg); err != nil {
		return &DeliveryError{Op: "validate", Err: err}
	}
	return nil
}

// BoardMessage composes the standard board email for a client.
func BoardMessage(client, from, to, pdfPath string) Message {
	return Message{
		From:           from,
		To:             to,
		Subject:        "Board Report for " + client,
		Body:           "Attached is the latest board summary from FundSight.",
		Attachment:     pdfPath,
		AttachmentName: "fundsight_report.pdf",
	}
}
