package templates

import (
	"encoding/json"
	"fmt"
	"slices"

	"messenger-sdk/pkg/send/buttons"
	"messenger-sdk/pkg/validation"
)

const (
	listButtonsLimit           = 1
	listMinElements            = 2
	listMaxElements            = 4
	listElementButtonsLimit    = 1
	listTitleCharacterLimit    = 80
	listSubtitleCharacterLimit = 80
)

// TopElementStyle selects how the first element of a list is rendered.
type TopElementStyle string

const (
	TopElementLarge   TopElementStyle = "large"
	TopElementCompact TopElementStyle = "compact"
)

// Valid reports whether s is a known style.
func (s TopElementStyle) Valid() bool {
	return validateStyle(s) == nil
}

func validateStyle(s TopElementStyle) error {
	return validation.OneOf(s, "topElementStyle", TopElementLarge, TopElementCompact)
}

// ListTemplate shows two to four elements stacked vertically.
type ListTemplate struct {
	topElementStyle TopElementStyle
	buttons         []buttons.Button
	elements        []ListElement
}

func (*ListTemplate) TemplateType() Type { return TypeList }
func (t *ListTemplate) TopElementStyle() TopElementStyle { return t.topElementStyle }
func (t *ListTemplate) Buttons() []buttons.Button { return slices.Clone(t.buttons) }
func (t *ListTemplate) Elements() []ListElement { return slices.Clone(t.elements) }
func (*ListTemplate) isTemplate() {}

// ListElement is one row of a list template.
type ListElement struct {
	title         string
	subtitle      string
	imageURL      string
	buttons       []buttons.Button
	defaultAction *DefaultAction
}

func (e ListElement) Title() string { return e.title }
func (e ListElement) Subtitle() string { return e.subtitle }
func (e ListElement) ImageURL() string { return e.imageURL }
func (e ListElement) Buttons() []buttons.Button { return slices.Clone(e.buttons) }
func (e ListElement) DefaultAction() *DefaultAction { return e.defaultAction }

// ListTemplateBuilder is the entry stage of the list template pipeline:
//
//	NewListTemplateBuilder(style) -> AddElements() -> AddElement(title) ->
//	DefaultAction(url) -> Build() -> Build() -> Done() -> Build()
//
// Each stage is a distinct type exposing only the calls valid at that point.
// A failed check is recorded on the stage that saw it, later calls on that
// stage are ignored, and the error travels up to the parent when the stage is
// finalized. Build returns it.
type ListTemplateBuilder struct {
	topElementStyle TopElementStyle
	buttons         []buttons.Button
	elements        []ListElement
	collecting      bool
	built           bool
	err             error
}

// NewListTemplateBuilder starts a list template with a fixed top element style.
func NewListTemplateBuilder(style TopElementStyle) *ListTemplateBuilder {
	b := &ListTemplateBuilder{topElementStyle: style}
	b.check(validateStyle(style))
	return b
}

// Buttons sets the list-level button. At most one is allowed.
func (b *ListTemplateBuilder) Buttons(bs ...buttons.Button) *ListTemplateBuilder {
	if b.check(
		validation.NotEmpty(bs, "buttons"),
		validation.SizeNotGreaterThan(bs, listButtonsLimit, "buttons"),
		notNilButtons(bs),
	) {
		b.buttons = slices.Clone(bs)
	}
	return b
}

// AddElements moves to the element collection stage. A template has a single
// element list; a second call records a StateError.
func (b *ListTemplateBuilder) AddElements() *ElementListBuilder {
	if b.collecting {
		b.fail(validation.State("elements", "element list already started"))
	}
	b.collecting = true
	return &ElementListBuilder{parent: b}
}

// Err returns the first error recorded on this stage.
func (b *ListTemplateBuilder) Err() error {
	return b.err
}

// Build finalizes the template. It fails when no element list was completed,
// or when the style is large and the first element lacks an image.
func (b *ListTemplateBuilder) Build() (*ListTemplate, error) {
	if b.built {
		return nil, validation.State("listTemplate", "already built")
	}
	b.built = true
	if b.err != nil {
		return nil, b.err
	}
	if err := validation.NotEmpty(b.elements, "elements"); err != nil {
		return nil, err
	}
	if b.topElementStyle == TopElementLarge {
		if err := validation.NotBlank(b.elements[0].imageURL, "imageUrl"); err != nil {
			return nil, err
		}
	}
	return &ListTemplate{
		topElementStyle: b.topElementStyle,
		buttons:         b.buttons,
		elements:        b.elements,
	}, nil
}

func (b *ListTemplateBuilder) check(errs ...error) bool {
	if b.err != nil {
		return false
	}
	b.err = validation.First(errs...)
	return b.err == nil
}

func (b *ListTemplateBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// ElementListBuilder accumulates the elements of a list template in order.
type ElementListBuilder struct {
	parent   *ListTemplateBuilder
	elements []ListElement
	done     bool
	err      error
}

// AddElement starts a new element with the given title.
func (l *ElementListBuilder) AddElement(title string) *ListElementBuilder {
	e := &ListElementBuilder{list: l, title: title}
	e.check(
		validation.NotBlank(title, "title"),
		validation.LengthNotGreaterThan(title, listTitleCharacterLimit, "title"),
	)
	return e
}

// Done hands the collected elements to the list template builder. Fewer than
// two or more than four elements is a StateError.
func (l *ElementListBuilder) Done() *ListTemplateBuilder {
	if l.done {
		l.parent.fail(validation.State("elements", "element list already finalized"))
		return l.parent
	}
	l.done = true
	if l.err != nil {
		l.parent.fail(l.err)
		return l.parent
	}
	if err := validation.First(
		validation.SizeNotGreaterThanState(l.elements, listMaxElements, "elements"),
		validation.SizeNotLessThanState(l.elements, listMinElements, "elements"),
	); err != nil {
		l.parent.fail(err)
		return l.parent
	}
	l.parent.elements = slices.Clone(l.elements)
	return l.parent
}

// Err returns the first error recorded on this stage.
func (l *ElementListBuilder) Err() error {
	return l.err
}

func (l *ElementListBuilder) add(e ListElement) {
	if l.done {
		l.fail(validation.State("elements", "element list already finalized"))
		return
	}
	if l.err == nil {
		l.elements = append(l.elements, e)
	}
}

// fail records err here, or on the parent once this stage is finalized.
func (l *ElementListBuilder) fail(err error) {
	if l.done {
		l.parent.fail(err)
		return
	}
	if l.err == nil {
		l.err = err
	}
}

// ListElementBuilder holds the draft of a single list element.
type ListElementBuilder struct {
	list          *ElementListBuilder
	title         string
	subtitle      string
	imageURL      string
	buttons       []buttons.Button
	defaultAction *DefaultAction
	built         bool
	err           error
}

func (e *ListElementBuilder) Subtitle(subtitle string) *ListElementBuilder {
	if e.check(validation.LengthNotGreaterThan(subtitle, listSubtitleCharacterLimit, "subtitle")) {
		e.subtitle = subtitle
	}
	return e
}

func (e *ListElementBuilder) ImageURL(url string) *ListElementBuilder {
	if e.check() {
		e.imageURL = url
	}
	return e
}

// Buttons sets the element button. An empty list is a ValidationError and
// more than one button is a StateError.
func (e *ListElementBuilder) Buttons(bs ...buttons.Button) *ListElementBuilder {
	if e.check(
		validation.NotEmpty(bs, "buttons"),
		validation.SizeNotGreaterThanState(bs, listElementButtonsLimit, "buttons"),
		notNilButtons(bs),
	) {
		e.buttons = slices.Clone(bs)
	}
	return e
}

// DefaultAction moves to the default action stage of this element.
func (e *ListElementBuilder) DefaultAction(url string) *DefaultActionBuilder {
	a := &DefaultActionBuilder{element: e, url: url}
	a.check(validation.NotBlank(url, "defaultAction.url"))
	return a
}

// Err returns the first error recorded on this stage.
func (e *ListElementBuilder) Err() error {
	return e.err
}

// Build appends the element to its list and returns the list builder. A
// builder adds exactly one element; calling Build again records a StateError.
func (e *ListElementBuilder) Build() *ElementListBuilder {
	if e.built {
		e.list.fail(validation.State("element", fmt.Sprintf("element %q already built", e.title)))
		return e.list
	}
	e.built = true
	if e.err != nil {
		e.list.fail(e.err)
		return e.list
	}
	e.list.add(ListElement{
		title:         e.title,
		subtitle:      e.subtitle,
		imageURL:      e.imageURL,
		buttons:       e.buttons,
		defaultAction: e.defaultAction,
	})
	return e.list
}

func (e *ListElementBuilder) check(errs ...error) bool {
	if e.err != nil {
		return false
	}
	e.err = validation.First(errs...)
	return e.err == nil
}

func (e *ListElementBuilder) fail(err error) {
	if e.built {
		e.list.fail(err)
		return
	}
	if e.err == nil {
		e.err = err
	}
}

// DefaultActionBuilder holds the draft default action of a list element.
type DefaultActionBuilder struct {
	element            *ListElementBuilder
	url                string
	webviewHeightRatio buttons.WebviewHeightRatio
	built              bool
	err                error
}

func (a *DefaultActionBuilder) WebviewHeightRatio(r buttons.WebviewHeightRatio) *DefaultActionBuilder {
	if a.check(validateRatio(r)) {
		a.webviewHeightRatio = r
	}
	return a
}

// Err returns the first error recorded on this stage.
func (a *DefaultActionBuilder) Err() error {
	return a.err
}

// Build attaches the default action to its element and returns the element builder.
func (a *DefaultActionBuilder) Build() *ListElementBuilder {
	if a.built {
		a.element.fail(validation.State("defaultAction", "already built"))
		return a.element
	}
	a.built = true
	if a.err != nil {
		a.element.fail(a.err)
		return a.element
	}
	if a.element.built {
		a.element.fail(validation.State("defaultAction", "element already built"))
		return a.element
	}
	a.element.defaultAction = &DefaultAction{url: a.url, webviewHeightRatio: a.webviewHeightRatio}
	return a.element
}

func (a *DefaultActionBuilder) check(errs ...error) bool {
	if a.err != nil {
		return false
	}
	a.err = validation.First(errs...)
	return a.err == nil
}

func notNilButtons(bs []buttons.Button) error {
	for i, b := range bs {
		if err := validation.NotNil(b, fmt.Sprintf("buttons[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

type listTemplateWire struct {
	TemplateType    Type              `json:"template_type"`
	TopElementStyle TopElementStyle   `json:"top_element_style"`
	Buttons         []buttons.Wire    `json:"buttons,omitempty"`
	Elements        []listElementWire `json:"elements"`
}

type listElementWire struct {
	Title         string             `json:"title"`
	Subtitle      string             `json:"subtitle,omitempty"`
	ImageURL      string             `json:"image_url,omitempty"`
	Buttons       []buttons.Wire     `json:"buttons,omitempty"`
	DefaultAction *defaultActionWire `json:"default_action,omitempty"`
}

func (t *ListTemplate) MarshalJSON() ([]byte, error) {
	w := listTemplateWire{
		TemplateType:    TypeList,
		TopElementStyle: t.topElementStyle,
		Buttons:         buttons.EncodeList(t.buttons),
		Elements:        make([]listElementWire, len(t.elements)),
	}
	for i, e := range t.elements {
		w.Elements[i] = listElementWire{
			Title:         e.title,
			Subtitle:      e.subtitle,
			ImageURL:      e.imageURL,
			Buttons:       buttons.EncodeList(e.buttons),
			DefaultAction: e.defaultAction.wire(),
		}
	}
	return json.Marshal(w)
}

func decodeList(data []byte) (*ListTemplate, error) {
	var w listTemplateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode list template: %w", err)
	}

	b := NewListTemplateBuilder(w.TopElementStyle)
	if w.Buttons != nil {
		bs, err := buttons.DecodeList(w.Buttons)
		if err != nil {
			return nil, err
		}
		b.Buttons(bs...)
	}

	list := b.AddElements()
	for _, ew := range w.Elements {
		e := list.AddElement(ew.Title)
		if ew.Subtitle != "" {
			e.Subtitle(ew.Subtitle)
		}
		if ew.ImageURL != "" {
			e.ImageURL(ew.ImageURL)
		}
		if ew.Buttons != nil {
			bs, err := buttons.DecodeList(ew.Buttons)
			if err != nil {
				return nil, err
			}
			e.Buttons(bs...)
		}
		if ew.DefaultAction != nil {
			if err := ew.DefaultAction.check(); err != nil {
				return nil, err
			}
			a := e.DefaultAction(ew.DefaultAction.URL)
			if ew.DefaultAction.WebviewHeightRatio != "" {
				a.WebviewHeightRatio(ew.DefaultAction.WebviewHeightRatio)
			}
			a.Build()
		}
		e.Build()
	}
	return list.Done().Build()
}
