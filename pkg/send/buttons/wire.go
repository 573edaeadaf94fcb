package buttons

import (
	"encoding/json"
	"fmt"

	"messenger-sdk/pkg/validation"
)

// Wire is the JSON shape shared by all button variants.
type Wire struct {
	Type                Type               `json:"type" validate:"required"`
	Title               string             `json:"title,omitempty" validate:"max=20"`
	URL                 string             `json:"url,omitempty"`
	Payload             string             `json:"payload,omitempty" validate:"max=1000"`
	WebviewHeightRatio  WebviewHeightRatio `json:"webview_height_ratio,omitempty" validate:"omitempty,oneof=compact tall full"`
	MessengerExtensions bool               `json:"messenger_extensions,omitempty"`
	FallbackURL         string             `json:"fallback_url,omitempty"`
}

// Encode converts a button to its wire form.
func Encode(b Button) Wire {
	switch v := b.(type) {
	case *URLButton:
		return Wire{
			Type:                TypeURL,
			Title:               v.title,
			URL:                 v.url,
			WebviewHeightRatio:  v.webviewHeightRatio,
			MessengerExtensions: v.messengerExtensions,
			FallbackURL:         v.fallbackURL,
		}
	case *PostbackButton:
		return Wire{Type: TypePostback, Title: v.title, Payload: v.payload}
	case *CallButton:
		return Wire{Type: TypeCall, Title: v.title, Payload: v.phoneNumber}
	case *ShareButton:
		return Wire{Type: TypeShare}
	case *LogInButton:
		return Wire{Type: TypeLogIn, URL: v.url}
	case *LogOutButton:
		return Wire{Type: TypeLogOut}
	default:
		panic(fmt.Sprintf("buttons: unhandled variant %T", b))
	}
}

// Decode rebuilds a button from its wire form, running the same checks as the
// constructors.
func Decode(w Wire) (Button, error) {
	var (
		b   Button
		err error
	)
	switch w.Type {
	case TypeURL:
		var opts []URLOption
		if w.WebviewHeightRatio != "" {
			opts = append(opts, WithWebviewHeightRatio(w.WebviewHeightRatio))
		}
		if w.MessengerExtensions {
			opts = append(opts, WithMessengerExtensions(w.FallbackURL))
		}
		b, err = asButton(NewURLButton(w.Title, w.URL, opts...))
	case TypePostback:
		b, err = asButton(NewPostbackButton(w.Title, w.Payload))
	case TypeCall:
		b, err = asButton(NewCallButton(w.Title, w.Payload))
	case TypeShare:
		b = NewShareButton()
	case TypeLogIn:
		b, err = asButton(NewLogInButton(w.URL))
	case TypeLogOut:
		b = NewLogOutButton()
	default:
		err = validation.Invalid("type", fmt.Sprintf("unknown button type %q", w.Type))
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// asButton keeps a failed constructor from leaking a typed nil into the interface.
func asButton[T Button](b T, err error) (Button, error) {
	if err != nil {
		return nil, err
	}
	return b, nil
}

// EncodeList converts buttons to wire form. A nil list stays nil.
func EncodeList(bs []Button) []Wire {
	if bs == nil {
		return nil
	}
	out := make([]Wire, len(bs))
	for i, b := range bs {
		out[i] = Encode(b)
	}
	return out
}

// DecodeList rebuilds buttons from wire form. A nil list stays nil.
func DecodeList(ws []Wire) ([]Button, error) {
	if ws == nil {
		return nil, nil
	}
	out := make([]Button, len(ws))
	for i, w := range ws {
		b, err := Decode(w)
		if err != nil {
			return nil, fmt.Errorf("buttons[%d]: %w", i, err)
		}
		out[i] = b
	}
	return out, nil
}

func (b *URLButton) MarshalJSON() ([]byte, error) { return json.Marshal(Encode(b)) }
func (b *PostbackButton) MarshalJSON() ([]byte, error) { return json.Marshal(Encode(b)) }
func (b *CallButton) MarshalJSON() ([]byte, error) { return json.Marshal(Encode(b)) }
func (b *ShareButton) MarshalJSON() ([]byte, error) { return json.Marshal(Encode(b)) }
func (b *LogInButton) MarshalJSON() ([]byte, error) { return json.Marshal(Encode(b)) }
func (b *LogOutButton) MarshalJSON() ([]byte, error) { return json.Marshal(Encode(b)) }
