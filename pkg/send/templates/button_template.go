package templates

import (
	"encoding/json"
	"fmt"
	"slices"

	"messenger-sdk/pkg/send/buttons"
	"messenger-sdk/pkg/validation"
)

const (
	buttonTemplateTextCharacterLimit = 640
	buttonTemplateButtonsLimit       = 3
)

// ButtonTemplate is a text message with one to three buttons under it.
type ButtonTemplate struct {
	text    string
	buttons []buttons.Button
}

// NewButtonTemplate validates and returns a button template.
func NewButtonTemplate(text string, bs ...buttons.Button) (*ButtonTemplate, error) {
	if err := validation.First(
		validation.NotBlank(text, "text"),
		validation.LengthNotGreaterThan(text, buttonTemplateTextCharacterLimit, "text"),
		validation.NotEmpty(bs, "buttons"),
		validation.SizeNotGreaterThan(bs, buttonTemplateButtonsLimit, "buttons"),
		notNilButtons(bs),
	); err != nil {
		return nil, err
	}
	return &ButtonTemplate{text: text, buttons: slices.Clone(bs)}, nil
}

func (*ButtonTemplate) TemplateType() Type { return TypeButton }
func (t *ButtonTemplate) Text() string { return t.text }
func (t *ButtonTemplate) Buttons() []buttons.Button { return slices.Clone(t.buttons) }
func (*ButtonTemplate) isTemplate() {}

type buttonTemplateWire struct {
	TemplateType Type           `json:"template_type"`
	Text         string         `json:"text"`
	Buttons      []buttons.Wire `json:"buttons"`
}

func (t *ButtonTemplate) MarshalJSON() ([]byte, error) {
	return json.Marshal(buttonTemplateWire{
		TemplateType: TypeButton,
		Text:         t.text,
		Buttons:      buttons.EncodeList(t.buttons),
	})
}

func decodeButton(data []byte) (*ButtonTemplate, error) {
	var w buttonTemplateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode button template: %w", err)
	}
	bs, err := buttons.DecodeList(w.Buttons)
	if err != nil {
		return nil, err
	}
	return NewButtonTemplate(w.Text, bs...)
}
