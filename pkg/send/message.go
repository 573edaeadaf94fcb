package send

import (
	"slices"

	"messenger-sdk/pkg/send/templates"
	"messenger-sdk/pkg/validation"
)

const (
	textCharacterLimit     = 320
	quickRepliesLimit      = 10
	metadataCharacterLimit = 1000
)

// Message is the `message` object of a send request: a text or an attachment,
// optionally with quick replies and metadata.
type Message struct {
	text         string
	attachment   Attachment
	quickReplies []*QuickReply
	metadata     string
}

func (m *Message) Text() string { return m.text }
func (m *Message) Attachment() Attachment { return m.attachment }
func (m *Message) QuickReplies() []*QuickReply { return slices.Clone(m.quickReplies) }
func (m *Message) Metadata() string { return m.metadata }

// MessageBuilder drafts a Message for the payload builder that created it.
// Setters validate their input immediately; the first failure is kept and
// every later call is ignored. Done hands the message, or the failure, to the
// payload builder.
type MessageBuilder struct {
	payload      *PayloadBuilder
	text         string
	attachment   Attachment
	quickReplies []*QuickReply
	metadata     string
	done         bool
	err          error
}

// Text sets a plain text body of at most 320 characters. Characters are
// counted as Unicode code points, so an emoji outside the Basic Multilingual
// Plane counts once even though it takes two UTF-16 units.
func (b *MessageBuilder) Text(text string) *MessageBuilder {
	if b.check(
		validation.NotBlank(text, "text"),
		validation.LengthNotGreaterThan(text, textCharacterLimit, "text"),
	) {
		b.text = text
	}
	return b
}

// BinaryAttachment sets a media attachment.
func (b *MessageBuilder) BinaryAttachment(a *BinaryAttachment) *MessageBuilder {
	if b.check(validation.NotNil(a, "binaryAttachment")) {
		b.attachment = a
	}
	return b
}

// Template sets a template attachment.
func (b *MessageBuilder) Template(t templates.Template) *MessageBuilder {
	if b.check(validation.NotNil(t, "template")) {
		b.attachment = &TemplateAttachment{template: t}
	}
	return b
}

// QuickReplies sets one to ten quick replies.
func (b *MessageBuilder) QuickReplies(qrs ...*QuickReply) *MessageBuilder {
	if b.check(
		validation.NotEmpty(qrs, "quickReplies"),
		validation.SizeNotGreaterThan(qrs, quickRepliesLimit, "quickReplies"),
		notNilQuickReplies(qrs),
	) {
		b.quickReplies = slices.Clone(qrs)
	}
	return b
}

// Metadata sets a developer string of at most 1000 characters that is echoed
// back through the webhook.
func (b *MessageBuilder) Metadata(metadata string) *MessageBuilder {
	if b.check(
		validation.NotBlank(metadata, "metadata"),
		validation.LengthNotGreaterThan(metadata, metadataCharacterLimit, "metadata"),
	) {
		b.metadata = metadata
	}
	return b
}

// Err returns the first error recorded on this builder.
func (b *MessageBuilder) Err() error {
	return b.err
}

// Done finalizes the message and passes it to the payload builder, which is
// returned for further chaining. Exactly one of text and attachment must be
// set, otherwise a StateError is recorded on the payload builder.
func (b *MessageBuilder) Done() *PayloadBuilder {
	if b.done {
		b.payload.fail(validation.State("message", "message builder already done"))
		return b.payload
	}
	b.done = true
	if b.err != nil {
		b.payload.fail(b.err)
		return b.payload
	}

	switch {
	case b.text != "" && b.attachment != nil:
		b.payload.fail(validation.State("message", "text and attachment are mutually exclusive"))
		return b.payload
	case b.text == "" && b.attachment == nil:
		b.payload.fail(validation.State("message", "either text or attachment must be set"))
		return b.payload
	}

	return b.payload.Message(&Message{
		text:         b.text,
		attachment:   b.attachment,
		quickReplies: b.quickReplies,
		metadata:     b.metadata,
	})
}

func (b *MessageBuilder) check(errs ...error) bool {
	if b.err != nil {
		return false
	}
	b.err = validation.First(errs...)
	return b.err == nil
}

func notNilQuickReplies(qrs []*QuickReply) error {
	for _, q := range qrs {
		if q == nil {
			return validation.Invalid("quickReplies", "must not contain nil entries")
		}
	}
	return nil
}

type messageWire struct {
	Text         string           `json:"text,omitempty" validate:"max=320"`
	Attachment   *attachmentWire  `json:"attachment,omitempty"`
	QuickReplies []quickReplyWire `json:"quick_replies,omitempty" validate:"omitempty,max=10,dive"`
	Metadata     string           `json:"metadata,omitempty" validate:"max=1000"`
}

func encodeMessage(m *Message) (*messageWire, error) {
	w := &messageWire{Text: m.text, Metadata: m.metadata}
	if m.attachment != nil {
		a, err := encodeAttachment(m.attachment)
		if err != nil {
			return nil, err
		}
		w.Attachment = a
	}
	if m.quickReplies != nil {
		w.QuickReplies = make([]quickReplyWire, len(m.quickReplies))
		for i, q := range m.quickReplies {
			w.QuickReplies[i] = q.wire()
		}
	}
	return w, nil
}

// replay feeds a decoded message through a fresh MessageBuilder.
func (w *messageWire) replay(b *MessageBuilder) (*PayloadBuilder, error) {
	if w.Text != "" {
		b.Text(w.Text)
	}
	if w.Attachment != nil {
		a, err := w.Attachment.decode()
		if err != nil {
			return nil, err
		}
		switch v := a.(type) {
		case *BinaryAttachment:
			b.BinaryAttachment(v)
		case *TemplateAttachment:
			b.Template(v.template)
		}
	}
	if w.QuickReplies != nil {
		qrs := make([]*QuickReply, len(w.QuickReplies))
		for i, qw := range w.QuickReplies {
			q, err := qw.decode()
			if err != nil {
				return nil, err
			}
			qrs[i] = q
		}
		b.QuickReplies(qrs...)
	}
	if w.Metadata != "" {
		b.Metadata(w.Metadata)
	}
	return b.Done(), nil
}
