package templates

import (
	"fmt"

	"messenger-sdk/pkg/send/buttons"
	"messenger-sdk/pkg/validation"
)

// DefaultAction is the tap target of an element when none of its buttons is
// pressed. Its type is always web_url.
type DefaultAction struct {
	url                string
	webviewHeightRatio buttons.WebviewHeightRatio
}

// NewDefaultAction validates and returns a default action. ratio may be empty.
func NewDefaultAction(url string, ratio buttons.WebviewHeightRatio) (*DefaultAction, error) {
	if err := validation.First(
		validation.NotBlank(url, "url"),
		validateRatio(ratio),
	); err != nil {
		return nil, err
	}
	return &DefaultAction{url: url, webviewHeightRatio: ratio}, nil
}

func (a *DefaultAction) Type() buttons.Type { return buttons.TypeURL }
func (a *DefaultAction) URL() string { return a.url }
func (a *DefaultAction) WebviewHeightRatio() buttons.WebviewHeightRatio { return a.webviewHeightRatio }

type defaultActionWire struct {
	Type               buttons.Type               `json:"type"`
	URL                string                     `json:"url"`
	WebviewHeightRatio buttons.WebviewHeightRatio `json:"webview_height_ratio,omitempty"`
}

func (a *DefaultAction) wire() *defaultActionWire {
	if a == nil {
		return nil
	}
	return &defaultActionWire{
		Type:               buttons.TypeURL,
		URL:                a.url,
		WebviewHeightRatio: a.webviewHeightRatio,
	}
}

func (w *defaultActionWire) check() error {
	if w.Type != buttons.TypeURL {
		return validation.Invalid("default_action.type", fmt.Sprintf("must be %q", buttons.TypeURL))
	}
	return nil
}

func validateRatio(r buttons.WebviewHeightRatio) error {
	return buttons.ValidateRatio(r)
}
