package services

import (
	"context"

	domain "github.com/stethcare/checkout-api/internal/domain"
)

// Domain aliases re-exported for handler convenience.
type (
	OrderDraft         = domain.OrderDraft
	Cart               = domain.Cart
	FieldErrors        = domain.FieldErrors
	PaymentMethod      = domain.PaymentMethod
	SystemHealthReport = domain.SystemHealthReport
)

// DraftService owns the checkout draft aggregate: section merges, cart
// mutations, receipt attachment, and submission.
type DraftService interface {
	CreateDraft(ctx context.Context, cmd CreateDraftCommand) (DraftResult, error)
	GetDraft(ctx context.Context, draftID string) (OrderDraft, error)
	UpdateSection(ctx context.Context, cmd UpdateSectionCommand) (DraftResult, error)
	AddLineItem(ctx context.Context, cmd LineItemCommand) (Cart, error)
	RemoveLineItem(ctx context.Context, cmd LineItemCommand) (Cart, error)
	AttachReceipt(ctx context.Context, cmd AttachReceiptCommand) (DraftResult, error)
	SubmitDraft(ctx context.Context, draftID string) (SubmitResult, error)
}

// SystemService aggregates utility endpoints (health checks, build metadata).
type SystemService interface {
	HealthReport(ctx context.Context) (SystemHealthReport, error)
}

// CreateDraftCommand seeds a new draft. ClientKey scopes the payment mirror
// entry so a returning shopper's cached payment section can be rehydrated.
type CreateDraftCommand struct {
	ClientKey string
}

// DraftResult pairs the saved draft with inline validation messages for the
// touched fields. Validation never blocks the save.
type DraftResult struct {
	Draft       OrderDraft
	FieldErrors FieldErrors
}

// Section names a patchable region of the draft.
type Section string

const (
	SectionContact    Section = "contact"
	SectionDelivery   Section = "delivery"
	SectionPhone      Section = "phone"
	SectionShipping   Section = "shipping"
	SectionPayment    Section = "payment"
	SectionRememberMe Section = "remember-me"
	SectionDiscount   Section = "discount"
)

// UpdateSectionCommand applies a shallow partial update to exactly one
// section. Only the patch matching Section is consulted; nil fields inside a
// patch leave the stored value untouched.
type UpdateSectionCommand struct {
	DraftID    string
	Section    Section
	Contact    *ContactPatch
	Delivery   *DeliveryPatch
	Phone      *PhonePatch
	Shipping   *ShippingPatch
	Payment    *PaymentPatch
	RememberMe *RememberMePatch
	Discount   *DiscountPatch
}

// ContactPatch carries optional contact-section fields.
type ContactPatch struct {
	FirstName        *string
	LastName         *string
	Email            *string
	MarketingConsent *bool
}

// DeliveryPatch carries optional delivery-section fields. Setting CountryCode
// replaces the country reference and resets the state selection.
type DeliveryPatch struct {
	FirstName   *string
	LastName    *string
	Company     *string
	Address     *string
	Apartment   *string
	City        *string
	State       *string
	ZipCode     *string
	CountryCode *string
	SMSConsent  *bool
}

// PhonePatch carries optional phone-section fields. Combined accepts a
// pre-formatted "+<code> <number>" string split by dialing-code prefix, with
// explicit CountryCode/NationalNumber taking precedence when both are set.
type PhonePatch struct {
	CountryCode    *string
	NationalNumber *string
	Combined       *string
}

// ShippingPatch selects a shipping method; the cost is resolved server-side.
type ShippingPatch struct {
	Method *string
}

// PaymentPatch switches the active payment method and/or edits the card
// variant. Switching methods never clears the other variants' drafts.
type PaymentPatch struct {
	Method *string
	Card   *CardPatch
}

// CardPatch carries optional card-variant fields; values are normalised
// (grouping, expiry slash, CVV digits) before storage.
type CardPatch struct {
	Number                *string
	Expiry                *string
	CVV                   *string
	NameOnCard            *string
	BillingSameAsShipping *bool
}

// RememberMePatch carries the save-my-info preference and its phone number.
// Combined works as in PhonePatch.
type RememberMePatch struct {
	SaveInfo       *bool
	CountryCode    *string
	NationalNumber *string
	Combined       *string
}

// DiscountPatch replaces the draft's discount code.
type DiscountPatch struct {
	Code *string
}

// LineItemCommand identifies a cart mutation by the item's catalog name.
type LineItemCommand struct {
	DraftID string
	Name    string
}

// AttachReceiptCommand attaches an uploaded receipt to a wallet variant.
type AttachReceiptCommand struct {
	DraftID     string
	Method      PaymentMethod
	Filename    string
	ContentType string
	SizeBytes   int64
}

// SubmitResult confirms a successful submission.
type SubmitResult struct {
	Draft           OrderDraft
	ConfirmationRef string
}
