// Package buttons defines the button variants that templates and list
// elements can carry.
package buttons

import "messenger-sdk/pkg/validation"

const (
	titleCharacterLimit   = 20
	payloadCharacterLimit = 1000
)

// Type is the wire discriminator of a button.
type Type string

const (
	TypeURL      Type = "web_url"
	TypePostback Type = "postback"
	TypeCall     Type = "phone_number"
	TypeShare    Type = "element_share"
	TypeLogIn    Type = "account_link"
	TypeLogOut   Type = "account_unlink"
)

// WebviewHeightRatio controls how tall the in-app browser opens.
type WebviewHeightRatio string

const (
	WebviewCompact WebviewHeightRatio = "compact"
	WebviewTall    WebviewHeightRatio = "tall"
	WebviewFull    WebviewHeightRatio = "full"
)

// Valid reports whether r is one of the platform's ratios.
func (r WebviewHeightRatio) Valid() bool {
	return ValidateRatio(r) == nil
}

// ValidateRatio accepts an empty ratio, which leaves the platform default.
func ValidateRatio(r WebviewHeightRatio) error {
	if r == "" {
		return nil
	}
	return validation.OneOf(r, "webviewHeightRatio", WebviewCompact, WebviewTall, WebviewFull)
}

// Button is implemented by every button variant in this package.
type Button interface {
	Type() Type
	isButton()
}

// URLButton opens a web page.
type URLButton struct {
	title               string
	url                 string
	webviewHeightRatio  WebviewHeightRatio
	messengerExtensions bool
	fallbackURL         string
}

// URLOption customizes a URLButton.
type URLOption func(*URLButton)

// WithWebviewHeightRatio sets the webview height of the opened page.
func WithWebviewHeightRatio(r WebviewHeightRatio) URLOption {
	return func(b *URLButton) {
		b.webviewHeightRatio = r
	}
}

// WithMessengerExtensions enables the extensions SDK on the opened page,
// falling back to fallbackURL on clients that lack it.
func WithMessengerExtensions(fallbackURL string) URLOption {
	return func(b *URLButton) {
		b.messengerExtensions = true
		b.fallbackURL = fallbackURL
	}
}

// NewURLButton validates and returns a web_url button.
func NewURLButton(title, url string, opts ...URLOption) (*URLButton, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validation.NotBlank(url, "url"); err != nil {
		return nil, err
	}

	b := &URLButton{title: title, url: url}
	for _, opt := range opts {
		opt(b)
	}
	if err := ValidateRatio(b.webviewHeightRatio); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *URLButton) Type() Type { return TypeURL }
func (b *URLButton) Title() string { return b.title }
func (b *URLButton) URL() string { return b.url }
func (b *URLButton) WebviewHeightRatio() WebviewHeightRatio { return b.webviewHeightRatio }
func (b *URLButton) MessengerExtensions() bool { return b.messengerExtensions }
func (b *URLButton) FallbackURL() string { return b.fallbackURL }
func (*URLButton) isButton() {}

// PostbackButton sends its payload back to the webhook when tapped.
type PostbackButton struct {
	title   string
	payload string
}

// NewPostbackButton validates and returns a postback button.
func NewPostbackButton(title, payload string) (*PostbackButton, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validation.First(
		validation.NotBlank(payload, "payload"),
		validation.LengthNotGreaterThan(payload, payloadCharacterLimit, "payload"),
	); err != nil {
		return nil, err
	}
	return &PostbackButton{title: title, payload: payload}, nil
}

func (b *PostbackButton) Type() Type { return TypePostback }
func (b *PostbackButton) Title() string { return b.title }
func (b *PostbackButton) Payload() string { return b.payload }
func (*PostbackButton) isButton() {}

// CallButton dials a phone number.
type CallButton struct {
	title       string
	phoneNumber string
}

// NewCallButton validates and returns a phone_number button. The number must
// be in E.164 form, e.g. +15105551234.
func NewCallButton(title, phoneNumber string) (*CallButton, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validation.NotBlank(phoneNumber, "phoneNumber"); err != nil {
		return nil, err
	}
	if err := validation.E164(phoneNumber, "phoneNumber"); err != nil {
		return nil, err
	}
	return &CallButton{title: title, phoneNumber: phoneNumber}, nil
}

func (b *CallButton) Type() Type { return TypeCall }
func (b *CallButton) Title() string { return b.title }
func (b *CallButton) PhoneNumber() string { return b.phoneNumber }
func (*CallButton) isButton() {}

// ShareButton opens the native share dialog for the enclosing element.
type ShareButton struct{}

// NewShareButton returns an element_share button.
func NewShareButton() *ShareButton {
	return &ShareButton{}
}

func (*ShareButton) Type() Type { return TypeShare }
func (*ShareButton) isButton() {}

// LogInButton starts the account linking flow at url.
type LogInButton struct {
	url string
}

// NewLogInButton validates and returns an account_link button.
func NewLogInButton(url string) (*LogInButton, error) {
	if err := validation.NotBlank(url, "url"); err != nil {
		return nil, err
	}
	return &LogInButton{url: url}, nil
}

func (b *LogInButton) Type() Type { return TypeLogIn }
func (b *LogInButton) URL() string { return b.url }
func (*LogInButton) isButton() {}

// LogOutButton unlinks the account.
type LogOutButton struct{}

// NewLogOutButton returns an account_unlink button.
func NewLogOutButton() *LogOutButton {
	return &LogOutButton{}
}

func (*LogOutButton) Type() Type { return TypeLogOut }
func (*LogOutButton) isButton() {}

func validateTitle(title string) error {
	return validation.First(
		validation.NotBlank(title, "title"),
		validation.LengthNotGreaterThan(title, titleCharacterLimit, "title"),
	)
}
