package send

import (
	"fmt"

	"messenger-sdk/pkg/validation"
)

const (
	quickReplyTitleCharacterLimit   = 20
	quickReplyPayloadCharacterLimit = 1000
)

// QuickReplyContentType is the `content_type` discriminator of a quick reply.
type QuickReplyContentType string

const (
	QuickReplyText     QuickReplyContentType = "text"
	QuickReplyLocation QuickReplyContentType = "location"
)

// QuickReply is a suggestion chip shown above the composer.
type QuickReply struct {
	contentType QuickReplyContentType
	title       string
	payload     string
	imageURL    string
}

// NewTextQuickReply validates and returns a text quick reply.
func NewTextQuickReply(title, payload string) (*QuickReply, error) {
	if err := validation.First(
		validation.NotBlank(title, "title"),
		validation.LengthNotGreaterThan(title, quickReplyTitleCharacterLimit, "title"),
		validation.NotBlank(payload, "payload"),
		validation.LengthNotGreaterThan(payload, quickReplyPayloadCharacterLimit, "payload"),
	); err != nil {
		return nil, err
	}
	return &QuickReply{contentType: QuickReplyText, title: title, payload: payload}, nil
}

// NewLocationQuickReply returns a quick reply asking for the user's location.
func NewLocationQuickReply() *QuickReply {
	return &QuickReply{contentType: QuickReplyLocation}
}

// WithImageURL returns a copy of a text quick reply showing an icon.
func (q *QuickReply) WithImageURL(url string) (*QuickReply, error) {
	if q.contentType != QuickReplyText {
		return nil, validation.Invalid("imageUrl", "only text quick replies carry an image")
	}
	if err := validation.NotBlank(url, "imageUrl"); err != nil {
		return nil, err
	}
	c := *q
	c.imageURL = url
	return &c, nil
}

func (q *QuickReply) ContentType() QuickReplyContentType { return q.contentType }
func (q *QuickReply) Title() string { return q.title }
func (q *QuickReply) Payload() string { return q.payload }
func (q *QuickReply) ImageURL() string { return q.imageURL }

type quickReplyWire struct {
	ContentType QuickReplyContentType `json:"content_type" validate:"required,oneof=text location"`
	Title       string                `json:"title,omitempty" validate:"max=20"`
	Payload     string                `json:"payload,omitempty" validate:"max=1000"`
	ImageURL    string                `json:"image_url,omitempty"`
}

func (q *QuickReply) wire() quickReplyWire {
	return quickReplyWire{
		ContentType: q.contentType,
		Title:       q.title,
		Payload:     q.payload,
		ImageURL:    q.imageURL,
	}
}

func (w quickReplyWire) decode() (*QuickReply, error) {
	switch w.ContentType {
	case QuickReplyText:
		q, err := NewTextQuickReply(w.Title, w.Payload)
		if err != nil || w.ImageURL == "" {
			return q, err
		}
		return q.WithImageURL(w.ImageURL)
	case QuickReplyLocation:
		return NewLocationQuickReply(), nil
	default:
		return nil, validation.Invalid("content_type", fmt.Sprintf("unknown quick reply type %q", w.ContentType))
	}
}
