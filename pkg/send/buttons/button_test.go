package buttons

import (
	"encoding/json"
	"strings"
	"testing"

	"messenger-sdk/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewURLButton(t *testing.T) {
	b, err := NewURLButton("Open", "https://example.com/item",
		WithWebviewHeightRatio(WebviewTall),
		WithMessengerExtensions("https://example.com/fallback"),
	)
	require.NoError(t, err)
	assert.Equal(t, TypeURL, b.Type())
	assert.Equal(t, WebviewTall, b.WebviewHeightRatio())
	assert.True(t, b.MessengerExtensions())

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "web_url",
		"title": "Open",
		"url": "https://example.com/item",
		"webview_height_ratio": "tall",
		"messenger_extensions": true,
		"fallback_url": "https://example.com/fallback"
	}`, string(data))
}

func TestConstructorsRejectBadInput(t *testing.T) {
	tests := []struct {
		name  string
		build func() error
	}{
		{
			name: "Testcase #1: url button blank title",
			build: func() error {
				_, err := NewURLButton(" ", "https://example.com")
				return err
			},
		},
		{
			name: "Testcase #2: url button title over 20 characters",
			build: func() error {
				_, err := NewURLButton(strings.Repeat("t", 21), "https://example.com")
				return err
			},
		},
		{
			name: "Testcase #3: url button blank url",
			build: func() error {
				_, err := NewURLButton("Open", "")
				return err
			},
		},
		{
			name: "Testcase #4: url button unknown ratio",
			build: func() error {
				_, err := NewURLButton("Open", "https://example.com", WithWebviewHeightRatio("huge"))
				return err
			},
		},
		{
			name: "Testcase #5: postback payload over 1000 characters",
			build: func() error {
				_, err := NewPostbackButton("Buy", strings.Repeat("p", 1001))
				return err
			},
		},
		{
			name: "Testcase #6: call button without country code",
			build: func() error {
				_, err := NewCallButton("Call", "5551234")
				return err
			},
		},
		{
			name: "Testcase #7: call button number with spaces",
			build: func() error {
				_, err := NewCallButton("Call", "+1 510 555 1234")
				return err
			},
		},
		{
			name: "Testcase #8: call button number too short",
			build: func() error {
				_, err := NewCallButton("Call", "+123")
				return err
			},
		},
		{
			name: "Testcase #9: log in button blank url",
			build: func() error {
				_, err := NewLogInButton("")
				return err
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			require.Error(t, err)
			assert.True(t, validation.IsValidation(err))
		})
	}
}

func TestEncodeDecodeEveryVariant(t *testing.T) {
	url, err := NewURLButton("Open", "https://example.com", WithWebviewHeightRatio(WebviewCompact))
	require.NoError(t, err)
	postback, err := NewPostbackButton("Buy", "BUY_42")
	require.NoError(t, err)
	call, err := NewCallButton("Call", "+15105551234")
	require.NoError(t, err)
	login, err := NewLogInButton("https://example.com/login")
	require.NoError(t, err)

	all := []Button{url, postback, call, NewShareButton(), login, NewLogOutButton()}

	data, err := json.Marshal(EncodeList(all))
	require.NoError(t, err)

	var wires []Wire
	require.NoError(t, json.Unmarshal(data, &wires))
	got, err := DecodeList(wires)
	require.NoError(t, err)
	assert.Equal(t, all, got)
}

func TestCallButtonWire(t *testing.T) {
	call, err := NewCallButton("Call", "+15105551234")
	require.NoError(t, err)
	assert.Equal(t, Wire{Type: TypeCall, Title: "Call", Payload: "+15105551234"}, Encode(call))
}

func TestDecodeUnknownType(t *testing.T) {
	b, err := Decode(Wire{Type: "nested"})
	assert.Nil(t, b)
	assert.True(t, validation.IsValidation(err))
}

func TestDecodeListKeepsNil(t *testing.T) {
	got, err := DecodeList(nil)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Nil(t, EncodeList(nil))
}

func TestDecodeFailedConstructorReturnsNilInterface(t *testing.T) {
	b, err := Decode(Wire{Type: TypePostback, Title: "Buy"})
	require.Error(t, err)
	assert.True(t, b == nil)
}
