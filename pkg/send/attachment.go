package send

import (
	"encoding/json"
	"fmt"

	"messenger-sdk/pkg/send/templates"
	"messenger-sdk/pkg/validation"
)

// AttachmentType is the `type` discriminator of an attachment.
type AttachmentType string

const (
	AttachmentImage    AttachmentType = "image"
	AttachmentAudio    AttachmentType = "audio"
	AttachmentVideo    AttachmentType = "video"
	AttachmentFile     AttachmentType = "file"
	AttachmentTemplate AttachmentType = "template"
)

func (t AttachmentType) binary() bool {
	switch t {
	case AttachmentImage, AttachmentAudio, AttachmentVideo, AttachmentFile:
		return true
	}
	return false
}

// Attachment is either a *BinaryAttachment or a *TemplateAttachment.
type Attachment interface {
	AttachmentType() AttachmentType
	isAttachment()
}

// BinaryAttachment sends a media file, either by URL or by the id of an
// asset uploaded earlier.
type BinaryAttachment struct {
	kind         AttachmentType
	url          string
	reusable     bool
	attachmentID string
}

// NewURLAttachment validates and returns a media attachment fetched from url.
func NewURLAttachment(kind AttachmentType, url string) (*BinaryAttachment, error) {
	if err := validation.First(
		validateBinaryKind(kind),
		validation.NotBlank(url, "url"),
	); err != nil {
		return nil, err
	}
	return &BinaryAttachment{kind: kind, url: url}, nil
}

// NewReusedAttachment validates and returns a media attachment pointing at an
// uploaded asset.
func NewReusedAttachment(kind AttachmentType, attachmentID string) (*BinaryAttachment, error) {
	if err := validation.First(
		validateBinaryKind(kind),
		validation.NotBlank(attachmentID, "attachmentId"),
	); err != nil {
		return nil, err
	}
	return &BinaryAttachment{kind: kind, attachmentID: attachmentID}, nil
}

// Reusable returns a copy of a URL attachment that asks the platform to keep
// the asset for later reuse.
func (a *BinaryAttachment) Reusable() (*BinaryAttachment, error) {
	if a.url == "" {
		return nil, validation.Invalid("isReusable", "only URL attachments can be marked reusable")
	}
	c := *a
	c.reusable = true
	return &c, nil
}

func (a *BinaryAttachment) AttachmentType() AttachmentType { return a.kind }
func (a *BinaryAttachment) URL() string { return a.url }
func (a *BinaryAttachment) IsReusable() bool { return a.reusable }
func (a *BinaryAttachment) AttachmentID() string { return a.attachmentID }
func (*BinaryAttachment) isAttachment() {}

// TemplateAttachment wraps exactly one template.
type TemplateAttachment struct {
	template templates.Template
}

func (*TemplateAttachment) AttachmentType() AttachmentType { return AttachmentTemplate }
func (a *TemplateAttachment) Template() templates.Template { return a.template }
func (*TemplateAttachment) isAttachment() {}

func validateBinaryKind(kind AttachmentType) error {
	if !kind.binary() {
		return validation.Invalid("type", fmt.Sprintf("unknown media type %q", kind))
	}
	return nil
}

type attachmentWire struct {
	Type    AttachmentType  `json:"type" validate:"required,oneof=image audio video file template"`
	Payload json.RawMessage `json:"payload" validate:"required"`
}

type binaryPayloadWire struct {
	URL          string `json:"url,omitempty"`
	IsReusable   bool   `json:"is_reusable,omitempty"`
	AttachmentID string `json:"attachment_id,omitempty"`
}

func encodeAttachment(a Attachment) (*attachmentWire, error) {
	var (
		payload []byte
		err     error
	)
	switch v := a.(type) {
	case *BinaryAttachment:
		payload, err = json.Marshal(binaryPayloadWire{
			URL:          v.url,
			IsReusable:   v.reusable,
			AttachmentID: v.attachmentID,
		})
	case *TemplateAttachment:
		payload, err = v.template.MarshalJSON()
	default:
		return nil, fmt.Errorf("send: unhandled attachment %T", a)
	}
	if err != nil {
		return nil, err
	}
	return &attachmentWire{Type: a.AttachmentType(), Payload: payload}, nil
}

func (w *attachmentWire) decode() (Attachment, error) {
	if w.Type == AttachmentTemplate {
		t, err := templates.Decode(w.Payload)
		if err != nil {
			return nil, err
		}
		return &TemplateAttachment{template: t}, nil
	}

	var p binaryPayloadWire
	if err := json.Unmarshal(w.Payload, &p); err != nil {
		return nil, fmt.Errorf("decode attachment payload: %w", err)
	}
	a, err := p.decode(w.Type)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (p binaryPayloadWire) decode(kind AttachmentType) (*BinaryAttachment, error) {
	if p.AttachmentID != "" {
		return NewReusedAttachment(kind, p.AttachmentID)
	}
	a, err := NewURLAttachment(kind, p.URL)
	if err != nil || !p.IsReusable {
		return a, err
	}
	return a.Reusable()
}
