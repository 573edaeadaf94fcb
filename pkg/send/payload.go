// Package send assembles and validates outbound send API payloads.
//
// A payload is built in stages:
//
//	payload, err := send.NewPayloadBuilder(recipient).
//		AddMessage().
//		Text("hello").
//		Done().
//		Build()
//
// Every setter validates its input when called. The first failed check is
// recorded and surfaces from Build as a *validation.ValidationError (bad input
// value) or a *validation.StateError (builder used out of sequence).
package send

import (
	"encoding/json"
	"fmt"

	"messenger-sdk/pkg/validation"
)

// NotificationType controls how the recipient is notified.
type NotificationType string

const (
	NotificationRegular    NotificationType = "REGULAR"
	NotificationSilentPush NotificationType = "SILENT_PUSH"
	NotificationNoPush     NotificationType = "NO_PUSH"
)


// Recipient addresses a user by page-scoped id or by phone number.
type Recipient struct {
	id          string
	phoneNumber string
}

func NewRecipientByID(id string) (*Recipient, error) {
	if err := validation.NotBlank(id, "recipient.id"); err != nil {
		return nil, err
	}
	return &Recipient{id: id}, nil
}

func NewRecipientByPhoneNumber(phoneNumber string) (*Recipient, error) {
	if err := validation.NotBlank(phoneNumber, "recipient.phoneNumber"); err != nil {
		return nil, err
	}
	return &Recipient{phoneNumber: phoneNumber}, nil
}

func (r *Recipient) ID() string { return r.id }
func (r *Recipient) PhoneNumber() string { return r.phoneNumber }

// MessagingPayload is the complete body of a send request.
type MessagingPayload struct {
	recipient        *Recipient
	message          *Message
	notificationType NotificationType
}

func (p *MessagingPayload) Recipient() *Recipient { return p.recipient }
func (p *MessagingPayload) Message() *Message { return p.message }
func (p *MessagingPayload) NotificationType() NotificationType { return p.notificationType }

// PayloadBuilder assembles a MessagingPayload.
type PayloadBuilder struct {
	recipient        *Recipient
	message          *Message
	notificationType NotificationType
	built            bool
	err              error
}

func NewPayloadBuilder(recipient *Recipient) *PayloadBuilder {
	b := &PayloadBuilder{}
	if b.check(validation.NotNil(recipient, "recipient")) {
		b.recipient = recipient
	}
	return b
}

func (b *PayloadBuilder) NotificationType(t NotificationType) *PayloadBuilder {
	if b.check(validation.OneOf(t, "notificationType", NotificationRegular, NotificationSilentPush, NotificationNoPush)) {
		b.notificationType = t
	}
	return b
}

// AddMessage starts the message of this payload.
func (b *PayloadBuilder) AddMessage() *MessageBuilder {
	return &MessageBuilder{payload: b}
}

// Message sets a finished message and returns the builder. MessageBuilder.Done
// calls it.
func (b *PayloadBuilder) Message(m *Message) *PayloadBuilder {
	if b.check(validation.NotNil(m, "message")) {
		b.message = m
	}
	return b
}

// Err returns the first error recorded on this builder.
func (b *PayloadBuilder) Err() error {
	return b.err
}

// Build finalizes the payload. It may be called once.
func (b *PayloadBuilder) Build() (*MessagingPayload, error) {
	if b.built {
		return nil, validation.State("payload", "already built")
	}
	b.built = true
	if b.err != nil {
		return nil, b.err
	}
	if err := validation.NotNil(b.message, "message"); err != nil {
		return nil, err
	}
	return &MessagingPayload{
		recipient:        b.recipient,
		message:          b.message,
		notificationType: b.notificationType,
	}, nil
}

func (b *PayloadBuilder) check(errs ...error) bool {
	if b.err != nil {
		return false
	}
	b.err = validation.First(errs...)
	return b.err == nil
}

func (b *PayloadBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

type payloadWire struct {
	Recipient        recipientWire    `json:"recipient"`
	Message          *messageWire     `json:"message" validate:"required"`
	NotificationType NotificationType `json:"notification_type,omitempty" validate:"omitempty,oneof=REGULAR SILENT_PUSH NO_PUSH"`
}

type recipientWire struct {
	ID          string `json:"id,omitempty" validate:"required_without=PhoneNumber,excluded_with=PhoneNumber"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"required_without=ID"`
}

func (p *MessagingPayload) MarshalJSON() ([]byte, error) {
	m, err := encodeMessage(p.message)
	if err != nil {
		return nil, err
	}
	return json.Marshal(payloadWire{
		Recipient:        recipientWire{ID: p.recipient.id, PhoneNumber: p.recipient.phoneNumber},
		Message:          m,
		NotificationType: p.notificationType,
	})
}

// Parse decodes a send API payload and validates it with the same rules the
// builders enforce. The result equals the payload that produced data.
func Parse(data []byte) (*MessagingPayload, error) {
	var w payloadWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if err := validation.Struct(&w); err != nil {
		return nil, err
	}

	var (
		recipient *Recipient
		err       error
	)
	if w.Recipient.ID != "" {
		recipient, err = NewRecipientByID(w.Recipient.ID)
	} else {
		recipient, err = NewRecipientByPhoneNumber(w.Recipient.PhoneNumber)
	}
	if err != nil {
		return nil, err
	}

	b := NewPayloadBuilder(recipient)
	if w.NotificationType != "" {
		b.NotificationType(w.NotificationType)
	}
	b, err = w.Message.replay(b.AddMessage())
	if err != nil {
		return nil, err
	}
	return b.Build()
}
