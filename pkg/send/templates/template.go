// Package templates builds the structured template payloads a message can
// carry as its attachment: generic, button, receipt and list templates.
package templates

import (
	"encoding/json"
	"fmt"

	"messenger-sdk/pkg/validation"
)

// Type is the `template_type` discriminator.
type Type string

const (
	TypeGeneric Type = "generic"
	TypeButton  Type = "button"
	TypeReceipt Type = "receipt"
	TypeList    Type = "list"
)

// Template is implemented by every template variant in this package. Values
// are immutable once built.
type Template interface {
	json.Marshaler
	TemplateType() Type
	isTemplate()
}

// Decode rebuilds a template from the payload object of a template
// attachment. The variant's builder is replayed, so every limit is checked again.
func Decode(data []byte) (Template, error) {
	var head struct {
		TemplateType Type `json:"template_type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode template: %w", err)
	}

	switch head.TemplateType {
	case TypeGeneric:
		return asTemplate(decodeGeneric(data))
	case TypeButton:
		return asTemplate(decodeButton(data))
	case TypeReceipt:
		return asTemplate(decodeReceipt(data))
	case TypeList:
		return asTemplate(decodeList(data))
	default:
		return nil, validation.Invalid("template_type", fmt.Sprintf("unknown template type %q", head.TemplateType))
	}
}

func asTemplate[T Template](t T, err error) (Template, error) {
	if err != nil {
		return nil, err
	}
	return t, nil
}
