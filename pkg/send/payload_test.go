package send

import (
	"encoding/json"
	"strings"
	"testing"

	"messenger-sdk/pkg/send/buttons"
	"messenger-sdk/pkg/send/templates"
	"messenger-sdk/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadWireNames(t *testing.T) {
	red, err := NewTextQuickReply("Red", "PICKED_RED")
	require.NoError(t, err)
	red, err = red.WithImageURL("https://example.com/red.png")
	require.NoError(t, err)

	p, err := newTestPayloadBuilder(t).
		NotificationType(NotificationSilentPush).
		AddMessage().
		Text("Pick a color:").
		QuickReplies(red, NewLocationQuickReply()).
		Metadata("DEVELOPER_DEFINED_METADATA").
		Done().
		Build()
	require.NoError(t, err)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"recipient": {"id": "1254459154682919"},
		"message": {
			"text": "Pick a color:",
			"quick_replies": [
				{"content_type": "text", "title": "Red", "payload": "PICKED_RED", "image_url": "https://example.com/red.png"},
				{"content_type": "location"}
			],
			"metadata": "DEVELOPER_DEFINED_METADATA"
		},
		"notification_type": "SILENT_PUSH"
	}`, string(data))
}

func TestBinaryAttachmentWire(t *testing.T) {
	tests := []struct {
		name     string
		build    func() (*BinaryAttachment, error)
		wantJSON string
	}{
		{
			name: "Testcase #1: url",
			build: func() (*BinaryAttachment, error) {
				return NewURLAttachment(AttachmentVideo, "https://example.com/clip.mp4")
			},
			wantJSON: `{"type": "video", "payload": {"url": "https://example.com/clip.mp4"}}`,
		},
		{
			name: "Testcase #2: reusable url",
			build: func() (*BinaryAttachment, error) {
				a, err := NewURLAttachment(AttachmentFile, "https://example.com/doc.pdf")
				if err != nil {
					return nil, err
				}
				return a.Reusable()
			},
			wantJSON: `{"type": "file", "payload": {"url": "https://example.com/doc.pdf", "is_reusable": true}}`,
		},
		{
			name: "Testcase #3: reused asset",
			build: func() (*BinaryAttachment, error) {
				return NewReusedAttachment(AttachmentAudio, "1857777774821032")
			},
			wantJSON: `{"type": "audio", "payload": {"attachment_id": "1857777774821032"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := tt.build()
			require.NoError(t, err)

			w, err := encodeAttachment(a)
			require.NoError(t, err)
			data, err := json.Marshal(w)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantJSON, string(data))

			var back attachmentWire
			require.NoError(t, json.Unmarshal(data, &back))
			got, err := back.decode()
			require.NoError(t, err)
			assert.Equal(t, Attachment(a), got)
		})
	}
}

func TestAttachmentConstructors(t *testing.T) {
	_, err := NewURLAttachment(AttachmentTemplate, "https://example.com")
	assert.True(t, validation.IsValidation(err))

	_, err = NewURLAttachment("sticker", "https://example.com")
	assert.True(t, validation.IsValidation(err))

	_, err = NewURLAttachment(AttachmentImage, "")
	assert.True(t, validation.IsValidation(err))

	reused, err := NewReusedAttachment(AttachmentImage, "42")
	require.NoError(t, err)
	_, err = reused.Reusable()
	assert.True(t, validation.IsValidation(err))

	img, err := NewURLAttachment(AttachmentImage, "https://example.com/a.png")
	require.NoError(t, err)
	kept, err := img.Reusable()
	require.NoError(t, err)
	assert.False(t, img.IsReusable())
	assert.True(t, kept.IsReusable())
}

func TestQuickReplyConstructors(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		payload   string
		wantField string
	}{
		{name: "Testcase #1: valid", title: "Yes", payload: "YES"},
		{name: "Testcase #2: title of 20 characters", title: strings.Repeat("t", 20), payload: "P"},
		{name: "Testcase #3: title of 21 characters", title: strings.Repeat("t", 21), payload: "P", wantField: "title"},
		{name: "Testcase #4: blank title", title: "", payload: "P", wantField: "title"},
		{name: "Testcase #5: payload of 1001 characters", title: "Yes", payload: strings.Repeat("p", 1001), wantField: "payload"},
		{name: "Testcase #6: blank payload", title: "Yes", payload: " ", wantField: "payload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewTextQuickReply(tt.title, tt.payload)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, QuickReplyText, q.ContentType())
				assert.Equal(t, tt.title, q.Title())
				assert.Equal(t, tt.payload, q.Payload())
				return
			}
			assert.Nil(t, q)
			var ve *validation.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}

	_, err := NewLocationQuickReply().WithImageURL("https://example.com/pin.png")
	assert.True(t, validation.IsValidation(err))
}

func TestPayloadRoundTrip(t *testing.T) {
	recipient, err := NewRecipientByPhoneNumber("+1(212)555-2368")
	require.NoError(t, err)

	more, err := buttons.NewPostbackButton("View More", "VIEW_MORE")
	require.NoError(t, err)
	buy, err := buttons.NewURLButton("Buy", "https://example.com/buy", buttons.WithWebviewHeightRatio(buttons.WebviewFull))
	require.NoError(t, err)

	list, err := templates.NewListTemplateBuilder(templates.TopElementLarge).
		Buttons(more).
		AddElements().
		AddElement("Classic T-Shirt Collection").
		Subtitle("See all our colors").
		ImageURL("https://example.com/collection.png").
		DefaultAction("https://example.com/shop").
		WebviewHeightRatio(buttons.WebviewTall).
		Build().
		Buttons(buy).
		Build().
		AddElement("Classic White T-Shirt").
		Subtitle("100% Cotton, 200% Comfortable").
		Build().
		Done().
		Build()
	require.NoError(t, err)

	yes, err := NewTextQuickReply("Yes", "YES")
	require.NoError(t, err)

	want, err := NewPayloadBuilder(recipient).
		NotificationType(NotificationNoPush).
		AddMessage().
		Template(list).
		QuickReplies(yes, NewLocationQuickReply()).
		Metadata("campaign=spring").
		Done().
		Build()
	require.NoError(t, err)

	data, err := json.Marshal(want)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]any{"phone_number": "+1(212)555-2368"}, raw["recipient"])
	attachment := raw["message"].(map[string]any)["attachment"].(map[string]any)
	assert.Equal(t, "template", attachment["type"])
	assert.Equal(t, "list", attachment["payload"].(map[string]any)["template_type"])

	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NotSame(t, want, got)

	again, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestParseRejectsInvalidPayloads(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantKind  string
		wantField string
	}{
		{
			name:      "Testcase #1: missing message",
			body:      `{"recipient": {"id": "1"}}`,
			wantKind:  "validation",
			wantField: "message",
		},
		{
			name:     "Testcase #2: recipient with id and phone number",
			body:     `{"recipient": {"id": "1", "phone_number": "+1"}, "message": {"text": "hi"}}`,
			wantKind: "validation",
		},
		{
			name:      "Testcase #3: text over 320 characters",
			body:      `{"recipient": {"id": "1"}, "message": {"text": "` + strings.Repeat("a", 321) + `"}}`,
			wantKind:  "validation",
			wantField: "message.text",
		},
		{
			name:      "Testcase #4: unknown notification type",
			body:      `{"recipient": {"id": "1"}, "message": {"text": "hi"}, "notification_type": "LOUD"}`,
			wantKind:  "validation",
			wantField: "notification_type",
		},
		{
			name:     "Testcase #5: text and attachment",
			body:     `{"recipient": {"id": "1"}, "message": {"text": "hi", "attachment": {"type": "image", "payload": {"url": "https://example.com/a.png"}}}}`,
			wantKind: "state",
		},
		{
			name:     "Testcase #6: list with one element",
			body:     `{"recipient": {"id": "1"}, "message": {"attachment": {"type": "template", "payload": {"template_type": "list", "top_element_style": "compact", "elements": [{"title": "only"}]}}}}`,
			wantKind: "state",
		},
		{
			name:      "Testcase #7: unknown quick reply type",
			body:      `{"recipient": {"id": "1"}, "message": {"text": "hi", "quick_replies": [{"content_type": "emoji"}]}}`,
			wantKind:  "validation",
			wantField: "message.quick_replies[0].content_type",
		},
		{
			name:     "Testcase #8: malformed json",
			body:     `{"recipient":`,
			wantKind: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(tt.body))
			assert.Nil(t, p)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, validation.Kind(err))
			if tt.wantField != "" {
				var ve *validation.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantField, ve.Field)
			}
		})
	}
}

func TestPayloadBuilder(t *testing.T) {
	_, err := NewPayloadBuilder(nil).AddMessage().Text("hi").Done().Build()
	assert.True(t, validation.IsValidation(err))

	_, err = newTestPayloadBuilder(t).Build()
	assert.True(t, validation.IsValidation(err), "a payload needs a message")

	b := newTestPayloadBuilder(t).AddMessage().Text("hi").Done()
	_, err = b.Build()
	require.NoError(t, err)
	_, err = b.Build()
	assert.True(t, validation.IsState(err))

	_, err = NewRecipientByID(" ")
	assert.True(t, validation.IsValidation(err))
}

func TestUnknownNotificationType(t *testing.T) {
	_, err := newTestPayloadBuilder(t).
		NotificationType("LOUD").
		AddMessage().Text("hi").Done().
		Build()
	var ve *validation.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "notificationType", ve.Field)
	assert.Contains(t, ve.Reason, "REGULAR")
}
