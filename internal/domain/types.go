package domain

import (
	"time"
)

// DraftStatus describes the lifecycle state of a checkout draft.
type DraftStatus string

const (
	// DraftStatusOpen indicates the draft is still being edited.
	DraftStatusOpen DraftStatus = "open"
	// DraftStatusSubmitted indicates the draft was handed off for order processing.
	DraftStatusSubmitted DraftStatus = "submitted"
)

// PaymentMethod enumerates the mutually exclusive payment variants.
type PaymentMethod string

const (
	// PaymentMethodCard selects the credit/debit card variant.
	PaymentMethodCard PaymentMethod = "card"
	// PaymentMethodEasypaisa selects the Easypaisa mobile-wallet variant.
	PaymentMethodEasypaisa PaymentMethod = "easypaisa"
	// PaymentMethodJazzcash selects the JazzCash mobile-wallet variant.
	PaymentMethodJazzcash PaymentMethod = "jazzcash"
)

// KnownPaymentMethods lists every accepted payment method discriminant.
var KnownPaymentMethods = []PaymentMethod{
	PaymentMethodCard,
	PaymentMethodEasypaisa,
	PaymentMethodJazzcash,
}

// CountryRef identifies a shipping country from the static reference table.
type CountryRef struct {
	Name      string
	ISOCode   string
	FlagGlyph string
}

// ContactInfo holds the checkout contact section.
type ContactInfo struct {
	FirstName        string
	LastName         string
	Email            string
	MarketingConsent bool
}

// DeliveryInfo holds the shipping address section.
type DeliveryInfo struct {
	FirstName  string
	LastName   string
	Company    string
	Address    string
	Apartment  string
	City       string
	State      string
	ZipCode    string
	Country    *CountryRef
	SMSConsent bool
}

// PhoneNumber stores a dialing code and the national remainder separately.
type PhoneNumber struct {
	CountryCode    string
	NationalNumber string
}

// ShippingSelection records the chosen shipping method and its cost in minor units.
type ShippingSelection struct {
	Method    string
	CostCents int64
}

// ReceiptRef references an uploaded wallet receipt. Only metadata is kept; the
// bytes never enter the draft document.
type ReceiptRef struct {
	Filename    string
	ContentType string
	SizeBytes   int64
}

// CardDraft is the card variant of the payment union.
type CardDraft struct {
	Number                string
	Expiry                string
	CVV                   string
	NameOnCard            string
	BillingSameAsShipping bool
}

// WalletDraft is the shared shape of the mobile-wallet variants.
type WalletDraft struct {
	Receipt *ReceiptRef
}

// PaymentDraft is a tagged union over the supported payment methods. Exactly
// one variant is active (Method); switching the discriminant preserves every
// variant's own draft data.
type PaymentDraft struct {
	Method    PaymentMethod
	Card      CardDraft
	Easypaisa WalletDraft
	Jazzcash  WalletDraft
}

// RememberMe captures the save-my-info preference and its phone number.
type RememberMe struct {
	SaveInfo bool
	Phone    PhoneNumber
}

// LineItem is a purchasable cart entry. Name is the identity key.
type LineItem struct {
	Name       string
	Color      string
	PriceCents int64
}

// Cart holds the draft's line items. TotalCents is derived from Items and is
// recomputed on every mutation, never stored independently.
type Cart struct {
	Items       []LineItem
	GiftMessage string
	TotalCents  int64
}

// OrderDraft is the composite in-progress order aggregate. One document per
// draft ID; lifecycle spans the checkout visit.
type OrderDraft struct {
	ID string
	// ClientKey scopes the payment mirror entry to the shopper's client, the
	// server-side analog of the storefront's per-browser cache. Empty falls
	// back to the draft ID.
	ClientKey    string
	Status       DraftStatus
	Contact      ContactInfo
	Delivery     DeliveryInfo
	Phone        PhoneNumber
	Shipping     ShippingSelection
	Payment      PaymentDraft
	RememberMe   RememberMe
	DiscountCode string
	Cart         Cart
	CreatedAt    time.Time
	UpdatedAt    time.Time
	SubmittedAt  *time.Time
}

// Clone returns a deep copy of the draft so callers can mutate it without
// sharing pointers or the items slice with stored state.
func (d OrderDraft) Clone() OrderDraft {
	dup := d
	if d.Delivery.Country != nil {
		country := *d.Delivery.Country
		dup.Delivery.Country = &country
	}
	dup.Payment = d.Payment.Clone()
	if d.Cart.Items != nil {
		dup.Cart.Items = make([]LineItem, len(d.Cart.Items))
		copy(dup.Cart.Items, d.Cart.Items)
	}
	if d.SubmittedAt != nil {
		at := *d.SubmittedAt
		dup.SubmittedAt = &at
	}
	return dup
}

// Clone returns a deep copy of the payment union, including receipt markers.
func (p PaymentDraft) Clone() PaymentDraft {
	dup := p
	if p.Easypaisa.Receipt != nil {
		receipt := *p.Easypaisa.Receipt
		dup.Easypaisa.Receipt = &receipt
	}
	if p.Jazzcash.Receipt != nil {
		receipt := *p.Jazzcash.Receipt
		dup.Jazzcash.Receipt = &receipt
	}
	return dup
}

// FieldErrors maps a field name to a human-readable validation message. An
// absent key or empty string means the field is valid.
type FieldErrors map[string]string

// HasErrors reports whether any field carries a non-empty message.
func (e FieldErrors) HasErrors() bool {
	for _, msg := range e {
		if msg != "" {
			return true
		}
	}
	return false
}

// Merge folds the other error set into this one, dropping empty messages.
func (e FieldErrors) Merge(other FieldErrors) FieldErrors {
	if e == nil {
		e = FieldErrors{}
	}
	for field, msg := range other {
		if msg == "" {
			delete(e, field)
			continue
		}
		e[field] = msg
	}
	return e
}
