package templates

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"time"

	"messenger-sdk/pkg/validation"
)

const receiptMaxElements = 100

// ReceiptElement is one purchased item.
type ReceiptElement struct {
	Title    string  `json:"title" validate:"notblank,max=80"`
	Subtitle string  `json:"subtitle,omitempty" validate:"max=80"`
	Quantity int     `json:"quantity,omitempty" validate:"gte=0"`
	Price    float64 `json:"price" validate:"gte=0"`
	Currency string  `json:"currency,omitempty" validate:"omitempty,len=3"`
	ImageURL string  `json:"image_url,omitempty"`
}

// Address is the shipping address of an order.
type Address struct {
	Street1    string `json:"street_1" validate:"notblank"`
	Street2    string `json:"street_2,omitempty"`
	City       string `json:"city" validate:"notblank"`
	PostalCode string `json:"postal_code" validate:"notblank"`
	State      string `json:"state" validate:"notblank"`
	Country    string `json:"country" validate:"notblank"`
}

// Summary holds the order totals. Zero optional amounts are omitted.
type Summary struct {
	Subtotal     float64 `json:"subtotal,omitempty" validate:"gte=0"`
	ShippingCost float64 `json:"shipping_cost,omitempty" validate:"gte=0"`
	TotalTax     float64 `json:"total_tax,omitempty" validate:"gte=0"`
	TotalCost    float64 `json:"total_cost" validate:"gte=0"`
}

// Adjustment is a discount or surcharge applied to the order.
type Adjustment struct {
	Name   string  `json:"name" validate:"notblank"`
	Amount float64 `json:"amount"`
}

// ReceiptTemplate is an order confirmation.
type ReceiptTemplate struct {
	sharable      bool
	recipientName string
	merchantName  string
	orderNumber   string
	currency      string
	paymentMethod string
	orderURL      string
	timestamp     int64
	elements      []ReceiptElement
	address       *Address
	summary       Summary
	adjustments   []Adjustment
}

func (*ReceiptTemplate) TemplateType() Type { return TypeReceipt }
func (t *ReceiptTemplate) Sharable() bool { return t.sharable }
func (t *ReceiptTemplate) RecipientName() string { return t.recipientName }
func (t *ReceiptTemplate) MerchantName() string { return t.merchantName }
func (t *ReceiptTemplate) OrderNumber() string { return t.orderNumber }
func (t *ReceiptTemplate) Currency() string { return t.currency }
func (t *ReceiptTemplate) PaymentMethod() string { return t.paymentMethod }
func (t *ReceiptTemplate) OrderURL() string { return t.orderURL }
func (t *ReceiptTemplate) Elements() []ReceiptElement { return slices.Clone(t.elements) }
func (t *ReceiptTemplate) Summary() Summary { return t.summary }
func (t *ReceiptTemplate) Adjustments() []Adjustment { return slices.Clone(t.adjustments) }
func (*ReceiptTemplate) isTemplate() {}

// Timestamp returns the order time, or the zero time when unset.
func (t *ReceiptTemplate) Timestamp() time.Time {
	if t.timestamp == 0 {
		return time.Time{}
	}
	return time.Unix(t.timestamp, 0)
}

// Address returns a copy of the shipping address, or nil.
func (t *ReceiptTemplate) Address() *Address {
	if t.address == nil {
		return nil
	}
	a := *t.address
	return &a
}

// ReceiptTemplateBuilder assembles a receipt.
type ReceiptTemplateBuilder struct {
	t   ReceiptTemplate
	err error
}

// NewReceiptTemplateBuilder starts a receipt with its required fields.
// currency is an ISO 4217 code.
func NewReceiptTemplateBuilder(recipientName, orderNumber, currency, paymentMethod string, summary Summary) *ReceiptTemplateBuilder {
	b := &ReceiptTemplateBuilder{}
	if b.check(
		validation.NotBlank(recipientName, "recipientName"),
		validation.NotBlank(orderNumber, "orderNumber"),
		validation.NotBlank(currency, "currency"),
		validation.NotBlank(paymentMethod, "paymentMethod"),
		validation.Struct(summary),
	) {
		b.t.recipientName = recipientName
		b.t.orderNumber = orderNumber
		b.t.currency = currency
		b.t.paymentMethod = paymentMethod
		b.t.summary = summary
	}
	return b
}

func (b *ReceiptTemplateBuilder) Sharable() *ReceiptTemplateBuilder {
	if b.check() {
		b.t.sharable = true
	}
	return b
}

func (b *ReceiptTemplateBuilder) MerchantName(name string) *ReceiptTemplateBuilder {
	if b.check(validation.NotBlank(name, "merchantName")) {
		b.t.merchantName = name
	}
	return b
}

func (b *ReceiptTemplateBuilder) OrderURL(url string) *ReceiptTemplateBuilder {
	if b.check(validation.NotBlank(url, "orderUrl")) {
		b.t.orderURL = url
	}
	return b
}

// Timestamp sets the order time with second precision.
func (b *ReceiptTemplateBuilder) Timestamp(ts time.Time) *ReceiptTemplateBuilder {
	var err error
	if ts.Unix() <= 0 {
		err = validation.Invalid("timestamp", "must be after the unix epoch")
	}
	if b.check(err) {
		b.t.timestamp = ts.Unix()
	}
	return b
}

func (b *ReceiptTemplateBuilder) Address(a Address) *ReceiptTemplateBuilder {
	if b.check(validation.Struct(a)) {
		b.t.address = &a
	}
	return b
}

func (b *ReceiptTemplateBuilder) AddElement(el ReceiptElement) *ReceiptTemplateBuilder {
	if b.check(validation.Struct(el)) {
		b.t.elements = append(b.t.elements, el)
	}
	return b
}

func (b *ReceiptTemplateBuilder) AddAdjustment(adj Adjustment) *ReceiptTemplateBuilder {
	if b.check(validation.Struct(adj)) {
		b.t.adjustments = append(b.t.adjustments, adj)
	}
	return b
}

// Build fails on the first recorded error or when more than 100 items were added.
func (b *ReceiptTemplateBuilder) Build() (*ReceiptTemplate, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := validation.SizeNotGreaterThanState(b.t.elements, receiptMaxElements, "elements"); err != nil {
		return nil, err
	}
	t := b.t
	t.elements = slices.Clone(b.t.elements)
	t.adjustments = slices.Clone(b.t.adjustments)
	return &t, nil
}

func (b *ReceiptTemplateBuilder) check(errs ...error) bool {
	if b.err != nil {
		return false
	}
	b.err = validation.First(errs...)
	return b.err == nil
}

type receiptTemplateWire struct {
	TemplateType  Type             `json:"template_type"`
	Sharable      bool             `json:"sharable,omitempty"`
	RecipientName string           `json:"recipient_name"`
	MerchantName  string           `json:"merchant_name,omitempty"`
	OrderNumber   string           `json:"order_number"`
	Currency      string           `json:"currency"`
	PaymentMethod string           `json:"payment_method"`
	OrderURL      string           `json:"order_url,omitempty"`
	Timestamp     string           `json:"timestamp,omitempty"`
	Elements      []ReceiptElement `json:"elements,omitempty"`
	Address       *Address         `json:"address,omitempty"`
	Summary       Summary          `json:"summary"`
	Adjustments   []Adjustment     `json:"adjustments,omitempty"`
}

func (t *ReceiptTemplate) MarshalJSON() ([]byte, error) {
	w := receiptTemplateWire{
		TemplateType:  TypeReceipt,
		Sharable:      t.sharable,
		RecipientName: t.recipientName,
		MerchantName:  t.merchantName,
		OrderNumber:   t.orderNumber,
		Currency:      t.currency,
		PaymentMethod: t.paymentMethod,
		OrderURL:      t.orderURL,
		Elements:      t.elements,
		Address:       t.address,
		Summary:       t.summary,
		Adjustments:   t.adjustments,
	}
	if t.timestamp != 0 {
		w.Timestamp = strconv.FormatInt(t.timestamp, 10)
	}
	return json.Marshal(w)
}

func decodeReceipt(data []byte) (*ReceiptTemplate, error) {
	var w receiptTemplateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode receipt template: %w", err)
	}

	b := NewReceiptTemplateBuilder(w.RecipientName, w.OrderNumber, w.Currency, w.PaymentMethod, w.Summary)
	if w.Sharable {
		b.Sharable()
	}
	if w.MerchantName != "" {
		b.MerchantName(w.MerchantName)
	}
	if w.OrderURL != "" {
		b.OrderURL(w.OrderURL)
	}
	if w.Timestamp != "" {
		secs, err := strconv.ParseInt(w.Timestamp, 10, 64)
		if err != nil {
			return nil, validation.Invalid("timestamp", "must be unix seconds")
		}
		b.Timestamp(time.Unix(secs, 0))
	}
	if w.Address != nil {
		b.Address(*w.Address)
	}
	for _, el := range w.Elements {
		b.AddElement(el)
	}
	for _, adj := range w.Adjustments {
		b.AddAdjustment(adj)
	}
	return b.Build()
}
