package compose

import (
	"encoding/json"
	"strings"
	"testing"

	"messenger-sdk/pkg/send"
	"messenger-sdk/pkg/send/templates"
	"messenger-sdk/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listDraft() *TemplateDraft {
	return &TemplateDraft{
		Type:            "list",
		TopElementStyle: "large",
		Buttons:         []ButtonDraft{{Type: "postback", Title: "View More", Payload: "VIEW_MORE"}},
		Elements: []ElementDraft{
			{
				Title:    "Hi {{vars.name}}",
				Subtitle: "Picked for you",
				ImageURL: "https://example.com/top.png",
				DefaultAction: &DefaultActionDraft{
					URL:                "https://example.com/top",
					WebviewHeightRatio: "tall",
				},
				Buttons: []ButtonDraft{{Type: "web_url", Title: "Shop", URL: "https://example.com/shop"}},
			},
			{Title: "Classic White T-Shirt"},
		},
	}
}

func TestComposeText(t *testing.T) {
	p, err := Compose(Draft{
		Recipient:        RecipientDraft{ID: "42"},
		NotificationType: "NO_PUSH",
		Text:             "Hello {{vars.name}}, your order {{vars.order}} shipped",
		Variables:        map[string]string{"name": "Ana", "order": "#1001"},
		QuickReplies: []QuickReplyDraft{
			{Type: "text", Title: "Track", Payload: "TRACK"},
			{Type: "location"},
		},
		Metadata: "order=1001",
	})
	require.NoError(t, err)
	assert.Equal(t, "42", p.Recipient().ID())
	assert.Equal(t, send.NotificationNoPush, p.NotificationType())
	assert.Equal(t, "Hello Ana, your order #1001 shipped", p.Message().Text())
	assert.Len(t, p.Message().QuickReplies(), 2)
	assert.Equal(t, "order=1001", p.Message().Metadata())
}

func TestComposeListTemplate(t *testing.T) {
	p, err := Compose(Draft{
		Recipient: RecipientDraft{PhoneNumber: "+15105551234"},
		Template:  listDraft(),
		Variables: map[string]string{"name": "Ana"},
	})
	require.NoError(t, err)

	att, ok := p.Message().Attachment().(*send.TemplateAttachment)
	require.True(t, ok)
	list, ok := att.Template().(*templates.ListTemplate)
	require.True(t, ok)

	els := list.Elements()
	require.Len(t, els, 2)
	assert.Equal(t, "Hi Ana", els[0].Title())
	assert.Equal(t, "https://example.com/top", els[0].DefaultAction().URL())
	assert.Len(t, list.Buttons(), 1)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	parsed, err := send.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, p, parsed)
}

func TestComposeOtherTemplates(t *testing.T) {
	tests := []struct {
		name     string
		template *TemplateDraft
		wantType templates.Type
	}{
		{
			name: "Testcase #1: generic",
			template: &TemplateDraft{
				Type:             "generic",
				ImageAspectRatio: "square",
				Sharable:         true,
				Elements: []ElementDraft{{
					Title:         "Hat",
					DefaultAction: &DefaultActionDraft{URL: "https://example.com/hat"},
					Buttons:       []ButtonDraft{{Type: "element_share"}, {Type: "phone_number", Title: "Call", PhoneNumber: "+15105551234"}},
				}},
			},
			wantType: templates.TypeGeneric,
		},
		{
			name: "Testcase #2: button",
			template: &TemplateDraft{
				Type: "button",
				Text: "Link your account",
				Buttons: []ButtonDraft{
					{Type: "account_link", URL: "https://example.com/login"},
					{Type: "account_unlink"},
				},
			},
			wantType: templates.TypeButton,
		},
		{
			name: "Testcase #3: receipt",
			template: &TemplateDraft{
				Type: "receipt",
				Receipt: &ReceiptDraft{
					RecipientName: "Ana",
					OrderNumber:   "1001",
					Currency:      "EUR",
					PaymentMethod: "Visa 1234",
					Timestamp:     1428444852,
					Summary:       templates.Summary{TotalCost: 19.99},
					Elements:      []templates.ReceiptElement{{Title: "Hat", Price: 19.99, Quantity: 1}},
				},
			},
			wantType: templates.TypeReceipt,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compose(Draft{Recipient: RecipientDraft{ID: "42"}, Template: tt.template})
			require.NoError(t, err)
			att := p.Message().Attachment().(*send.TemplateAttachment)
			assert.Equal(t, tt.wantType, att.Template().TemplateType())
		})
	}
}

func TestComposeMedia(t *testing.T) {
	p, err := Compose(Draft{
		Recipient: RecipientDraft{ID: "42"},
		Media:     &MediaDraft{Type: "image", URL: "https://example.com/cat.png", Reusable: true},
	})
	require.NoError(t, err)
	a := p.Message().Attachment().(*send.BinaryAttachment)
	assert.True(t, a.IsReusable())

	p, err = Compose(Draft{
		Recipient: RecipientDraft{ID: "42"},
		Media:     &MediaDraft{Type: "file", AttachmentID: "1857777774821032"},
	})
	require.NoError(t, err)
	assert.Equal(t, "1857777774821032", p.Message().Attachment().(*send.BinaryAttachment).AttachmentID())
}

func TestComposeErrors(t *testing.T) {
	withList := func(edit func(*TemplateDraft)) Draft {
		d := listDraft()
		edit(d)
		return Draft{Recipient: RecipientDraft{ID: "42"}, Template: d}
	}

	tests := []struct {
		name     string
		draft    Draft
		wantKind string
	}{
		{
			name:     "Testcase #1: text and media",
			draft:    Draft{Recipient: RecipientDraft{ID: "42"}, Text: "hi", Media: &MediaDraft{Type: "image", URL: "https://example.com/a.png"}},
			wantKind: "state",
		},
		{
			name:     "Testcase #2: nothing to send",
			draft:    Draft{Recipient: RecipientDraft{ID: "42"}},
			wantKind: "state",
		},
		{
			name:     "Testcase #3: text too long after expansion",
			draft:    Draft{Recipient: RecipientDraft{ID: "42"}, Text: "{{vars.long}}", Variables: map[string]string{"long": strings.Repeat("a", 321)}},
			wantKind: "validation",
		},
		{
			name:     "Testcase #4: list with one element",
			draft:    withList(func(d *TemplateDraft) { d.Elements = d.Elements[:1] }),
			wantKind: "state",
		},
		{
			name:     "Testcase #5: large list without image",
			draft:    withList(func(d *TemplateDraft) { d.Elements[0].ImageURL = "" }),
			wantKind: "validation",
		},
		{
			name:     "Testcase #6: element with two buttons",
			draft:    withList(func(d *TemplateDraft) { d.Elements[1].Buttons = []ButtonDraft{d.Buttons[0], d.Buttons[0]} }),
			wantKind: "state",
		},
		{
			name:     "Testcase #7: unknown button type",
			draft:    withList(func(d *TemplateDraft) { d.Buttons[0].Type = "nested" }),
			wantKind: "validation",
		},
		{
			name:     "Testcase #8: recipient with id and phone number",
			draft:    Draft{Recipient: RecipientDraft{ID: "42", PhoneNumber: "+1"}, Text: "hi"},
			wantKind: "validation",
		},
		{
			name:     "Testcase #9: receipt without details",
			draft:    Draft{Recipient: RecipientDraft{ID: "42"}, Template: &TemplateDraft{Type: "receipt"}},
			wantKind: "validation",
		},
		{
			name:     "Testcase #10: unknown quick reply type",
			draft:    Draft{Recipient: RecipientDraft{ID: "42"}, Text: "hi", QuickReplies: []QuickReplyDraft{{Type: "emoji"}}},
			wantKind: "validation",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compose(tt.draft)
			assert.Nil(t, p)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, validation.Kind(err))
		})
	}
}

func TestExpandKeepsUnknownPlaceholders(t *testing.T) {
	c := composer{vars: map[string]string{"name": "Ana"}}
	assert.Equal(t, "Ana {{vars.city}}", c.expand("{{vars.name}} {{vars.city}}"))
	assert.Equal(t, "plain", composer{}.expand("plain"))
}

func TestExpandDoesNotExpandSubstitutedValues(t *testing.T) {
	c := composer{vars: map[string]string{
		"a": "{{vars.b}}", "b": "X",
		"c": "{{vars.d}}", "d": "Y",
		"e": "{{vars.f}}", "f": "Z",
	}}
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "Testcase #1: values holding placeholders", text: "{{vars.a}}-{{vars.c}}-{{vars.e}}", want: "{{vars.b}}-{{vars.d}}-{{vars.f}}"},
		{name: "Testcase #2: direct keys", text: "{{vars.b}}{{vars.d}}{{vars.f}}", want: "XYZ"},
		{name: "Testcase #3: mixed with unknown", text: "{{vars.a}} {{vars.zz}}", want: "{{vars.b}} {{vars.zz}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// map order must not leak into the result
			for i := 0; i < 100; i++ {
				require.Equal(t, tt.want, c.expand(tt.text))
			}
		})
	}
}
