// Package compose translates declarative message drafts into send API
// payloads using the builders in pkg/send.
package compose

import (
	"fmt"
	"regexp"
	"time"

	"messenger-sdk/pkg/send"
	"messenger-sdk/pkg/send/buttons"
	"messenger-sdk/pkg/send/templates"
	"messenger-sdk/pkg/validation"
)

// Compose builds the payload described by d. Errors are the builders' own
// *validation.ValidationError or *validation.StateError values, so callers
// can tell bad input from a malformed draft sequence.
func Compose(d Draft) (*send.MessagingPayload, error) {
	c := composer{vars: d.Variables}

	recipient, err := c.recipient(d.Recipient)
	if err != nil {
		return nil, err
	}

	pb := send.NewPayloadBuilder(recipient)
	if d.NotificationType != "" {
		pb.NotificationType(send.NotificationType(d.NotificationType))
	}

	mb := pb.AddMessage()
	if d.Text != "" {
		mb.Text(c.expand(d.Text))
	}
	if d.Media != nil {
		a, err := c.media(*d.Media)
		if err != nil {
			return nil, fmt.Errorf("media: %w", err)
		}
		mb.BinaryAttachment(a)
	}
	if d.Template != nil {
		t, err := c.template(*d.Template)
		if err != nil {
			return nil, fmt.Errorf("template: %w", err)
		}
		mb.Template(t)
	}
	if d.QuickReplies != nil {
		qrs := make([]*send.QuickReply, len(d.QuickReplies))
		for i, qd := range d.QuickReplies {
			q, err := c.quickReply(qd)
			if err != nil {
				return nil, fmt.Errorf("quickReplies[%d]: %w", i, err)
			}
			qrs[i] = q
		}
		mb.QuickReplies(qrs...)
	}
	if d.Metadata != "" {
		mb.Metadata(d.Metadata)
	}

	return mb.Done().Build()
}

var placeholder = regexp.MustCompile(`\{\{vars\.([^}]+)\}\}`)

type composer struct {
	vars map[string]string
}

// expand substitutes {{vars.<key>}} placeholders in one pass. Substituted
// values are not expanded again and unknown keys stay as written.
func (c composer) expand(text string) string {
	if len(c.vars) == 0 {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		if v, ok := c.vars[key]; ok {
			return v
		}
		return m
	})
}

func (c composer) recipient(d RecipientDraft) (*send.Recipient, error) {
	switch {
	case d.ID != "" && d.PhoneNumber != "":
		return nil, validation.Invalid("recipient", "set either id or phoneNumber, not both")
	case d.ID != "":
		return send.NewRecipientByID(d.ID)
	default:
		return send.NewRecipientByPhoneNumber(d.PhoneNumber)
	}
}

func (c composer) media(d MediaDraft) (*send.BinaryAttachment, error) {
	kind := send.AttachmentType(d.Type)
	if d.AttachmentID != "" {
		return send.NewReusedAttachment(kind, d.AttachmentID)
	}
	a, err := send.NewURLAttachment(kind, d.URL)
	if err != nil || !d.Reusable {
		return a, err
	}
	return a.Reusable()
}

func (c composer) quickReply(d QuickReplyDraft) (*send.QuickReply, error) {
	switch send.QuickReplyContentType(d.Type) {
	case send.QuickReplyLocation:
		return send.NewLocationQuickReply(), nil
	case send.QuickReplyText:
		q, err := send.NewTextQuickReply(c.expand(d.Title), d.Payload)
		if err != nil || d.ImageURL == "" {
			return q, err
		}
		return q.WithImageURL(d.ImageURL)
	default:
		return nil, validation.Invalid("type", fmt.Sprintf("unknown quick reply type %q", d.Type))
	}
}

func (c composer) template(d TemplateDraft) (templates.Template, error) {
	switch templates.Type(d.Type) {
	case templates.TypeList:
		return asTemplate(c.list(d))
	case templates.TypeGeneric:
		return asTemplate(c.generic(d))
	case templates.TypeButton:
		bs, err := c.buttons(d.Buttons)
		if err != nil {
			return nil, err
		}
		return asTemplate(templates.NewButtonTemplate(c.expand(d.Text), bs...))
	case templates.TypeReceipt:
		if d.Receipt == nil {
			return nil, validation.Invalid("receipt", "must not be nil")
		}
		return asTemplate(c.receipt(*d.Receipt, d.Sharable))
	default:
		return nil, validation.Invalid("type", fmt.Sprintf("unknown template type %q", d.Type))
	}
}

func (c composer) list(d TemplateDraft) (*templates.ListTemplate, error) {
	lb := templates.NewListTemplateBuilder(templates.TopElementStyle(d.TopElementStyle))
	if d.Buttons != nil {
		bs, err := c.buttons(d.Buttons)
		if err != nil {
			return nil, err
		}
		lb.Buttons(bs...)
	}

	elements := lb.AddElements()
	for i, ed := range d.Elements {
		eb := elements.AddElement(c.expand(ed.Title))
		if ed.Subtitle != "" {
			eb.Subtitle(c.expand(ed.Subtitle))
		}
		if ed.ImageURL != "" {
			eb.ImageURL(ed.ImageURL)
		}
		if ed.Buttons != nil {
			bs, err := c.buttons(ed.Buttons)
			if err != nil {
				return nil, fmt.Errorf("elements[%d]: %w", i, err)
			}
			eb.Buttons(bs...)
		}
		if ed.DefaultAction != nil {
			ab := eb.DefaultAction(ed.DefaultAction.URL)
			if ed.DefaultAction.WebviewHeightRatio != "" {
				ab.WebviewHeightRatio(buttons.WebviewHeightRatio(ed.DefaultAction.WebviewHeightRatio))
			}
			ab.Build()
		}
		eb.Build()
	}
	return elements.Done().Build()
}

func (c composer) generic(d TemplateDraft) (*templates.GenericTemplate, error) {
	gb := templates.NewGenericTemplateBuilder()
	if d.ImageAspectRatio != "" {
		gb.ImageAspectRatio(templates.ImageAspectRatio(d.ImageAspectRatio))
	}
	if d.Sharable {
		gb.Sharable()
	}
	for i, ed := range d.Elements {
		eb := templates.NewGenericElementBuilder(c.expand(ed.Title))
		if ed.Subtitle != "" {
			eb.Subtitle(c.expand(ed.Subtitle))
		}
		if ed.ImageURL != "" {
			eb.ImageURL(ed.ImageURL)
		}
		if ed.DefaultAction != nil {
			a, err := templates.NewDefaultAction(ed.DefaultAction.URL, buttons.WebviewHeightRatio(ed.DefaultAction.WebviewHeightRatio))
			if err != nil {
				return nil, fmt.Errorf("elements[%d]: %w", i, err)
			}
			eb.DefaultAction(a)
		}
		if ed.Buttons != nil {
			bs, err := c.buttons(ed.Buttons)
			if err != nil {
				return nil, fmt.Errorf("elements[%d]: %w", i, err)
			}
			eb.Buttons(bs...)
		}
		el, err := eb.Build()
		if err != nil {
			return nil, fmt.Errorf("elements[%d]: %w", i, err)
		}
		gb.AddElement(el)
	}
	return gb.Build()
}

func (c composer) receipt(d ReceiptDraft, sharable bool) (*templates.ReceiptTemplate, error) {
	rb := templates.NewReceiptTemplateBuilder(d.RecipientName, d.OrderNumber, d.Currency, d.PaymentMethod, d.Summary)
	if sharable {
		rb.Sharable()
	}
	if d.MerchantName != "" {
		rb.MerchantName(d.MerchantName)
	}
	if d.OrderURL != "" {
		rb.OrderURL(d.OrderURL)
	}
	if d.Timestamp != 0 {
		rb.Timestamp(time.Unix(d.Timestamp, 0))
	}
	if d.Address != nil {
		rb.Address(*d.Address)
	}
	for _, el := range d.Elements {
		rb.AddElement(el)
	}
	for _, adj := range d.Adjustments {
		rb.AddAdjustment(adj)
	}
	return rb.Build()
}

func (c composer) buttons(ds []ButtonDraft) ([]buttons.Button, error) {
	bs := make([]buttons.Button, len(ds))
	for i, d := range ds {
		b, err := c.button(d)
		if err != nil {
			return nil, fmt.Errorf("buttons[%d]: %w", i, err)
		}
		bs[i] = b
	}
	return bs, nil
}

func (c composer) button(d ButtonDraft) (buttons.Button, error) {
	title := c.expand(d.Title)
	switch buttons.Type(d.Type) {
	case buttons.TypeURL:
		var opts []buttons.URLOption
		if d.WebviewHeightRatio != "" {
			opts = append(opts, buttons.WithWebviewHeightRatio(buttons.WebviewHeightRatio(d.WebviewHeightRatio)))
		}
		if d.MessengerExtensions {
			opts = append(opts, buttons.WithMessengerExtensions(d.FallbackURL))
		}
		return asButton(buttons.NewURLButton(title, d.URL, opts...))
	case buttons.TypePostback:
		return asButton(buttons.NewPostbackButton(title, d.Payload))
	case buttons.TypeCall:
		return asButton(buttons.NewCallButton(title, d.PhoneNumber))
	case buttons.TypeShare:
		return buttons.NewShareButton(), nil
	case buttons.TypeLogIn:
		return asButton(buttons.NewLogInButton(d.URL))
	case buttons.TypeLogOut:
		return buttons.NewLogOutButton(), nil
	default:
		return nil, validation.Invalid("type", fmt.Sprintf("unknown button type %q", d.Type))
	}
}

func asButton[T buttons.Button](b T, err error) (buttons.Button, error) {
	if err != nil {
		return nil, err
	}
	return b, nil
}

func asTemplate[T templates.Template](t T, err error) (templates.Template, error) {
	if err != nil {
		return nil, err
	}
	return t, nil
}
