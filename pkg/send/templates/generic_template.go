package templates

import (
	"encoding/json"
	"fmt"
	"slices"

	"messenger-sdk/pkg/send/buttons"
	"messenger-sdk/pkg/validation"
)

const (
	genericMaxElements            = 10
	genericElementButtonsLimit    = 3
	genericTitleCharacterLimit    = 80
	genericSubtitleCharacterLimit = 80
)

// ImageAspectRatio sets the aspect ratio of generic template images.
type ImageAspectRatio string

const (
	ImageAspectHorizontal ImageAspectRatio = "horizontal"
	ImageAspectSquare     ImageAspectRatio = "square"
)

// GenericTemplate is a horizontally scrollable carousel of up to ten elements.
type GenericTemplate struct {
	imageAspectRatio ImageAspectRatio
	sharable         bool
	elements         []*GenericElement
}

func (*GenericTemplate) TemplateType() Type { return TypeGeneric }
func (t *GenericTemplate) ImageAspectRatio() ImageAspectRatio { return t.imageAspectRatio }
func (t *GenericTemplate) Sharable() bool { return t.sharable }
func (t *GenericTemplate) Elements() []*GenericElement { return slices.Clone(t.elements) }
func (*GenericTemplate) isTemplate() {}

// GenericElement is one card of a generic template.
type GenericElement struct {
	title         string
	subtitle      string
	imageURL      string
	defaultAction *DefaultAction
	buttons       []buttons.Button
}

func (e *GenericElement) Title() string { return e.title }
func (e *GenericElement) Subtitle() string { return e.subtitle }
func (e *GenericElement) ImageURL() string { return e.imageURL }
func (e *GenericElement) DefaultAction() *DefaultAction { return e.defaultAction }
func (e *GenericElement) Buttons() []buttons.Button { return slices.Clone(e.buttons) }

// GenericElementBuilder builds a single card.
type GenericElementBuilder struct {
	el  GenericElement
	err error
}

// NewGenericElementBuilder starts a card with the given title.
func NewGenericElementBuilder(title string) *GenericElementBuilder {
	b := &GenericElementBuilder{el: GenericElement{title: title}}
	b.check(
		validation.NotBlank(title, "title"),
		validation.LengthNotGreaterThan(title, genericTitleCharacterLimit, "title"),
	)
	return b
}

func (b *GenericElementBuilder) Subtitle(subtitle string) *GenericElementBuilder {
	if b.check(validation.LengthNotGreaterThan(subtitle, genericSubtitleCharacterLimit, "subtitle")) {
		b.el.subtitle = subtitle
	}
	return b
}

func (b *GenericElementBuilder) ImageURL(url string) *GenericElementBuilder {
	if b.check() {
		b.el.imageURL = url
	}
	return b
}

func (b *GenericElementBuilder) DefaultAction(a *DefaultAction) *GenericElementBuilder {
	if b.check(validation.NotNil(a, "defaultAction")) {
		b.el.defaultAction = a
	}
	return b
}

// Buttons sets up to three card buttons.
func (b *GenericElementBuilder) Buttons(bs ...buttons.Button) *GenericElementBuilder {
	if b.check(
		validation.NotEmpty(bs, "buttons"),
		validation.SizeNotGreaterThan(bs, genericElementButtonsLimit, "buttons"),
		notNilButtons(bs),
	) {
		b.el.buttons = slices.Clone(bs)
	}
	return b
}

func (b *GenericElementBuilder) Build() (*GenericElement, error) {
	if b.err != nil {
		return nil, b.err
	}
	el := b.el
	return &el, nil
}

func (b *GenericElementBuilder) check(errs ...error) bool {
	if b.err != nil {
		return false
	}
	b.err = validation.First(errs...)
	return b.err == nil
}

// GenericTemplateBuilder collects one to ten cards.
type GenericTemplateBuilder struct {
	t   GenericTemplate
	err error
}

func NewGenericTemplateBuilder() *GenericTemplateBuilder {
	return &GenericTemplateBuilder{}
}

func (b *GenericTemplateBuilder) ImageAspectRatio(r ImageAspectRatio) *GenericTemplateBuilder {
	if b.check(validation.OneOf(r, "imageAspectRatio", ImageAspectHorizontal, ImageAspectSquare)) {
		b.t.imageAspectRatio = r
	}
	return b
}

func (b *GenericTemplateBuilder) Sharable() *GenericTemplateBuilder {
	if b.check() {
		b.t.sharable = true
	}
	return b
}

func (b *GenericTemplateBuilder) AddElement(el *GenericElement) *GenericTemplateBuilder {
	if b.check(validation.NotNil(el, "element")) {
		b.t.elements = append(b.t.elements, el)
	}
	return b
}

// Build fails when there are no cards or more than ten.
func (b *GenericTemplateBuilder) Build() (*GenericTemplate, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := validation.First(
		validation.NotEmpty(b.t.elements, "elements"),
		validation.SizeNotGreaterThanState(b.t.elements, genericMaxElements, "elements"),
	); err != nil {
		return nil, err
	}
	t := b.t
	t.elements = slices.Clone(b.t.elements)
	return &t, nil
}

func (b *GenericTemplateBuilder) check(errs ...error) bool {
	if b.err != nil {
		return false
	}
	b.err = validation.First(errs...)
	return b.err == nil
}

type genericTemplateWire struct {
	TemplateType     Type                 `json:"template_type"`
	ImageAspectRatio ImageAspectRatio     `json:"image_aspect_ratio,omitempty"`
	Sharable         bool                 `json:"sharable,omitempty"`
	Elements         []genericElementWire `json:"elements"`
}

type genericElementWire struct {
	Title         string             `json:"title"`
	Subtitle      string             `json:"subtitle,omitempty"`
	ImageURL      string             `json:"image_url,omitempty"`
	DefaultAction *defaultActionWire `json:"default_action,omitempty"`
	Buttons       []buttons.Wire     `json:"buttons,omitempty"`
}

func (t *GenericTemplate) MarshalJSON() ([]byte, error) {
	w := genericTemplateWire{
		TemplateType:     TypeGeneric,
		ImageAspectRatio: t.imageAspectRatio,
		Sharable:         t.sharable,
		Elements:         make([]genericElementWire, len(t.elements)),
	}
	for i, e := range t.elements {
		w.Elements[i] = genericElementWire{
			Title:         e.title,
			Subtitle:      e.subtitle,
			ImageURL:      e.imageURL,
			DefaultAction: e.defaultAction.wire(),
			Buttons:       buttons.EncodeList(e.buttons),
		}
	}
	return json.Marshal(w)
}

func decodeGeneric(data []byte) (*GenericTemplate, error) {
	var w genericTemplateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode generic template: %w", err)
	}

	b := NewGenericTemplateBuilder()
	if w.ImageAspectRatio != "" {
		b.ImageAspectRatio(w.ImageAspectRatio)
	}
	if w.Sharable {
		b.Sharable()
	}
	for i, ew := range w.Elements {
		eb := NewGenericElementBuilder(ew.Title)
		if ew.Subtitle != "" {
			eb.Subtitle(ew.Subtitle)
		}
		if ew.ImageURL != "" {
			eb.ImageURL(ew.ImageURL)
		}
		if ew.DefaultAction != nil {
			if err := ew.DefaultAction.check(); err != nil {
				return nil, err
			}
			a, err := NewDefaultAction(ew.DefaultAction.URL, ew.DefaultAction.WebviewHeightRatio)
			if err != nil {
				return nil, fmt.Errorf("elements[%d]: %w", i, err)
			}
			eb.DefaultAction(a)
		}
		if ew.Buttons != nil {
			bs, err := buttons.DecodeList(ew.Buttons)
			if err != nil {
				return nil, fmt.Errorf("elements[%d]: %w", i, err)
			}
			eb.Buttons(bs...)
		}
		el, err := eb.Build()
		if err != nil {
			return nil, fmt.Errorf("elements[%d]: %w", i, err)
		}
		b.AddElement(el)
	}
	return b.Build()
}
