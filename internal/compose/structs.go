package compose

import "messenger-sdk/pkg/send/templates"

// Draft is the request body of the compose endpoint. It names what the
// message should contain; Compose turns it into a validated payload.
type Draft struct {
	Recipient        RecipientDraft    `json:"recipient"`
	NotificationType string            `json:"notificationType,omitempty" binding:"omitempty,oneof=REGULAR SILENT_PUSH NO_PUSH"`
	Text             string            `json:"text,omitempty"`
	Media            *MediaDraft       `json:"media,omitempty"`
	Template         *TemplateDraft    `json:"template,omitempty"`
	QuickReplies     []QuickReplyDraft `json:"quickReplies,omitempty" binding:"omitempty,dive"`
	Metadata         string            `json:"metadata,omitempty"`
	Variables        map[string]string `json:"variables,omitempty"` // replaces {{vars.<key>}} in text fields
}

type RecipientDraft struct {
	ID          string `json:"id,omitempty" binding:"required_without=PhoneNumber"`
	PhoneNumber string `json:"phoneNumber,omitempty" binding:"required_without=ID"`
}

// MediaDraft is an image, audio, video or file attachment given by URL or by
// the id of an uploaded asset.
type MediaDraft struct {
	Type         string `json:"type" binding:"required"`
	URL          string `json:"url,omitempty"`
	AttachmentID string `json:"attachmentId,omitempty"`
	Reusable     bool   `json:"reusable,omitempty"`
}

// TemplateDraft covers every template type. Fields not used by Type are
// ignored.
type TemplateDraft struct {
	Type string `json:"type" binding:"required,oneof=generic button list receipt"`

	Text             string         `json:"text,omitempty"`             // button
	TopElementStyle  string         `json:"topElementStyle,omitempty"`  // list
	ImageAspectRatio string         `json:"imageAspectRatio,omitempty"` // generic
	Sharable         bool           `json:"sharable,omitempty"`         // generic, receipt
	Buttons          []ButtonDraft  `json:"buttons,omitempty"`          // button, list
	Elements         []ElementDraft `json:"elements,omitempty"`         // generic, list
	Receipt          *ReceiptDraft  `json:"receipt,omitempty"`
}

type ElementDraft struct {
	Title         string              `json:"title"`
	Subtitle      string              `json:"subtitle,omitempty"`
	ImageURL      string              `json:"imageUrl,omitempty"`
	DefaultAction *DefaultActionDraft `json:"defaultAction,omitempty"`
	Buttons       []ButtonDraft       `json:"buttons,omitempty"`
}

type DefaultActionDraft struct {
	URL                string `json:"url"`
	WebviewHeightRatio string `json:"webviewHeightRatio,omitempty"`
}

type ButtonDraft struct {
	Type                string `json:"type" binding:"required"`
	Title               string `json:"title,omitempty"`
	URL                 string `json:"url,omitempty"`
	Payload             string `json:"payload,omitempty"`
	PhoneNumber         string `json:"phoneNumber,omitempty"`
	WebviewHeightRatio  string `json:"webviewHeightRatio,omitempty"`
	MessengerExtensions bool   `json:"messengerExtensions,omitempty"`
	FallbackURL         string `json:"fallbackUrl,omitempty"`
}

type QuickReplyDraft struct {
	Type     string `json:"type" binding:"required,oneof=text location"`
	Title    string `json:"title,omitempty"`
	Payload  string `json:"payload,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type ReceiptDraft struct {
	RecipientName string                     `json:"recipientName"`
	OrderNumber   string                     `json:"orderNumber"`
	Currency      string                     `json:"currency"`
	PaymentMethod string                     `json:"paymentMethod"`
	MerchantName  string                     `json:"merchantName,omitempty"`
	OrderURL      string                     `json:"orderUrl,omitempty"`
	Timestamp     int64                      `json:"timestamp,omitempty"` // unix seconds
	Address       *templates.Address         `json:"address,omitempty"`
	Summary       templates.Summary          `json:"summary"`
	Elements      []templates.ReceiptElement `json:"elements,omitempty"`
	Adjustments   []templates.Adjustment     `json:"adjustments,omitempty"`
}
