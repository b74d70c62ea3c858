package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "github.com/stethcare/checkout-api/internal/domain"
	pfirestore "github.com/stethcare/checkout-api/internal/platform/firestore"
	"github.com/stethcare/checkout-api/internal/repositories"
)

const (
	draftCollection = "checkoutDrafts"
)

// DraftRepository persists checkout draft documents within Firestore.
type DraftRepository struct {
	base     *pfirestore.BaseRepository[draftDocument]
	provider *pfirestore.Provider
}

var _ repositories.DraftRepository = (*DraftRepository)(nil)

// NewDraftRepository constructs a Firestore-backed draft repository.
func NewDraftRepository(provider *pfirestore.Provider) (*DraftRepository, error) {
	if provider == nil {
		return nil, errors.New("draft repository requires firestore provider")
	}
	base := pfirestore.NewBaseRepository[draftDocument](provider, draftCollection, nil, nil)
	return &DraftRepository{
		base:     base,
		provider: provider,
	}, nil
}

// SaveDraft upserts the draft document using the draft ID as document identifier.
func (r *DraftRepository) SaveDraft(ctx context.Context, draft domain.OrderDraft) (domain.OrderDraft, error) {
	if r == nil || r.base == nil {
		return domain.OrderDraft{}, errors.New("draft repository not initialised")
	}

	draftID := strings.TrimSpace(draft.ID)
	if draftID == "" {
		return domain.OrderDraft{}, errors.New("draft repository: draft id is required")
	}

	doc := encodeDraftDocument(draft)

	result, err := r.base.Set(ctx, draftID, doc)
	if err != nil {
		return domain.OrderDraft{}, err
	}

	saved := draft.Clone()
	saved.ID = draftID
	saved.UpdatedAt = result.UpdateTime
	return saved, nil
}

// LoadDraft fetches the draft document for the given ID.
func (r *DraftRepository) LoadDraft(ctx context.Context, draftID string) (domain.OrderDraft, error) {
	if r == nil || r.base == nil {
		return domain.OrderDraft{}, errors.New("draft repository not initialised")
	}
	id := strings.TrimSpace(draftID)
	if id == "" {
		return domain.OrderDraft{}, errors.New("draft repository: draft id is required")
	}

	doc, err := r.base.Get(ctx, id)
	if err != nil {
		return domain.OrderDraft{}, err
	}

	draft := doc.Data.decode()
	draft.ID = doc.ID
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = doc.CreateTime
	}
	if draft.UpdatedAt.IsZero() {
		draft.UpdatedAt = doc.UpdateTime
	}
	return draft, nil
}

// DeleteDraft removes the draft document. Deleting an absent draft is a no-op.
func (r *DraftRepository) DeleteDraft(ctx context.Context, draftID string) error {
	if r == nil || r.base == nil {
		return errors.New("draft repository not initialised")
	}
	id := strings.TrimSpace(draftID)
	if id == "" {
		return errors.New("draft repository: draft id is required")
	}

	return r.base.Delete(ctx, id)
}

type draftDocument struct {
	Status       string             `firestore:"status"`
	Contact      contactDocument    `firestore:"contact"`
	Delivery     deliveryDocument   `firestore:"delivery"`
	Phone        phoneDocument      `firestore:"phone"`
	Shipping     shippingDocument   `firestore:"shipping"`
	Payment      paymentDocument    `firestore:"payment"`
	RememberMe   rememberMeDocument `firestore:"rememberMe"`
	DiscountCode string             `firestore:"discountCode,omitempty"`
	Cart         cartDocument       `firestore:"cart"`
	CreatedAt    time.Time          `firestore:"createdAt"`
	UpdatedAt    time.Time          `firestore:"updatedAt"`
	SubmittedAt  *time.Time         `firestore:"submittedAt,omitempty"`
}

type contactDocument struct {
	FirstName        string `firestore:"firstName,omitempty"`
	LastName         string `firestore:"lastName,omitempty"`
	Email            string `firestore:"email,omitempty"`
	MarketingConsent bool   `firestore:"marketingConsent"`
}

type deliveryDocument struct {
	FirstName  string           `firestore:"firstName,omitempty"`
	LastName   string           `firestore:"lastName,omitempty"`
	Company    string           `firestore:"company,omitempty"`
	Address    string           `firestore:"address,omitempty"`
	Apartment  string           `firestore:"apartment,omitempty"`
	City       string           `firestore:"city,omitempty"`
	State      string           `firestore:"state,omitempty"`
	ZipCode    string           `firestore:"zipCode,omitempty"`
	Country    *countryDocument `firestore:"country,omitempty"`
	SMSConsent bool             `firestore:"smsConsent"`
}

type countryDocument struct {
	Name      string `firestore:"name"`
	ISOCode   string `firestore:"isoCode"`
	FlagGlyph string `firestore:"flagGlyph,omitempty"`
}

type phoneDocument struct {
	CountryCode    string `firestore:"countryCode,omitempty"`
	NationalNumber string `firestore:"nationalNumber,omitempty"`
}

type shippingDocument struct {
	Method    string `firestore:"method,omitempty"`
	CostCents int64  `firestore:"costCents"`
}

type paymentDocument struct {
	Method    string         `firestore:"method"`
	Card      cardDocument   `firestore:"card"`
	Easypaisa walletDocument `firestore:"easypaisa"`
	Jazzcash  walletDocument `firestore:"jazzcash"`
}

type cardDocument struct {
	Number                string `firestore:"number,omitempty"`
	Expiry                string `firestore:"expiry,omitempty"`
	CVV                   string `firestore:"cvv,omitempty"`
	NameOnCard            string `firestore:"nameOnCard,omitempty"`
	BillingSameAsShipping bool   `firestore:"billingSameAsShipping"`
}

type walletDocument struct {
	ReceiptName string `firestore:"receiptName,omitempty"`
	ContentType string `firestore:"contentType,omitempty"`
	SizeBytes   int64  `firestore:"sizeBytes,omitempty"`
}

type rememberMeDocument struct {
	SaveInfo bool          `firestore:"saveInfo"`
	Phone    phoneDocument `firestore:"phone"`
}

type lineItemDocument struct {
	Name       string `firestore:"name"`
	Color      string `firestore:"color,omitempty"`
	PriceCents int64  `firestore:"priceCents"`
}

type cartDocument struct {
	Items       []lineItemDocument `firestore:"items"`
	GiftMessage string             `firestore:"giftMessage,omitempty"`
	TotalCents  int64              `firestore:"totalCents"`
}

func encodeDraftDocument(draft domain.OrderDraft) draftDocument {
	doc := draftDocument{
		Status: string(draft.Status),
		Contact: contactDocument{
			FirstName:        strings.TrimSpace(draft.Contact.FirstName),
			LastName:         strings.TrimSpace(draft.Contact.LastName),
			Email:            strings.TrimSpace(draft.Contact.Email),
			MarketingConsent: draft.Contact.MarketingConsent,
		},
		Delivery: deliveryDocument{
			FirstName:  strings.TrimSpace(draft.Delivery.FirstName),
			LastName:   strings.TrimSpace(draft.Delivery.LastName),
			Company:    strings.TrimSpace(draft.Delivery.Company),
			Address:    strings.TrimSpace(draft.Delivery.Address),
			Apartment:  strings.TrimSpace(draft.Delivery.Apartment),
			City:       strings.TrimSpace(draft.Delivery.City),
			State:      strings.TrimSpace(draft.Delivery.State),
			ZipCode:    strings.TrimSpace(draft.Delivery.ZipCode),
			SMSConsent: draft.Delivery.SMSConsent,
		},
		Phone: phoneDocument{
			CountryCode:    strings.TrimSpace(draft.Phone.CountryCode),
			NationalNumber: strings.TrimSpace(draft.Phone.NationalNumber),
		},
		Shipping: shippingDocument{
			Method:    strings.TrimSpace(draft.Shipping.Method),
			CostCents: draft.Shipping.CostCents,
		},
		Payment: paymentDocument{
			Method: string(draft.Payment.Method),
			Card: cardDocument{
				Number:                draft.Payment.Card.Number,
				Expiry:                draft.Payment.Card.Expiry,
				CVV:                   draft.Payment.Card.CVV,
				NameOnCard:            draft.Payment.Card.NameOnCard,
				BillingSameAsShipping: draft.Payment.Card.BillingSameAsShipping,
			},
			Easypaisa: encodeWalletDocument(draft.Payment.Easypaisa),
			Jazzcash:  encodeWalletDocument(draft.Payment.Jazzcash),
		},
		RememberMe: rememberMeDocument{
			SaveInfo: draft.RememberMe.SaveInfo,
			Phone: phoneDocument{
				CountryCode:    strings.TrimSpace(draft.RememberMe.Phone.CountryCode),
				NationalNumber: strings.TrimSpace(draft.RememberMe.Phone.NationalNumber),
			},
		},
		DiscountCode: strings.TrimSpace(draft.DiscountCode),
		Cart: cartDocument{
			Items:       make([]lineItemDocument, 0, len(draft.Cart.Items)),
			GiftMessage: strings.TrimSpace(draft.Cart.GiftMessage),
			TotalCents:  draft.Cart.TotalCents,
		},
		CreatedAt:   draft.CreatedAt.UTC(),
		UpdatedAt:   draft.UpdatedAt.UTC(),
		SubmittedAt: draft.SubmittedAt,
	}

	if draft.Delivery.Country != nil {
		doc.Delivery.Country = &countryDocument{
			Name:      draft.Delivery.Country.Name,
			ISOCode:   draft.Delivery.Country.ISOCode,
			FlagGlyph: draft.Delivery.Country.FlagGlyph,
		}
	}

	for _, item := range draft.Cart.Items {
		doc.Cart.Items = append(doc.Cart.Items, lineItemDocument{
			Name:       item.Name,
			Color:      item.Color,
			PriceCents: item.PriceCents,
		})
	}

	return doc
}

func encodeWalletDocument(wallet domain.WalletDraft) walletDocument {
	if wallet.Receipt == nil {
		return walletDocument{}
	}
	return walletDocument{
		ReceiptName: wallet.Receipt.Filename,
		ContentType: wallet.Receipt.ContentType,
		SizeBytes:   wallet.Receipt.SizeBytes,
	}
}

func (d draftDocument) decode() domain.OrderDraft {
	draft := domain.OrderDraft{
		Status: domain.DraftStatus(d.Status),
		Contact: domain.ContactInfo{
			FirstName:        d.Contact.FirstName,
			LastName:         d.Contact.LastName,
			Email:            d.Contact.Email,
			MarketingConsent: d.Contact.MarketingConsent,
		},
		Delivery: domain.DeliveryInfo{
			FirstName:  d.Delivery.FirstName,
			LastName:   d.Delivery.LastName,
			Company:    d.Delivery.Company,
			Address:    d.Delivery.Address,
			Apartment:  d.Delivery.Apartment,
			City:       d.Delivery.City,
			State:      d.Delivery.State,
			ZipCode:    d.Delivery.ZipCode,
			SMSConsent: d.Delivery.SMSConsent,
		},
		Phone: domain.PhoneNumber{
			CountryCode:    d.Phone.CountryCode,
			NationalNumber: d.Phone.NationalNumber,
		},
		Shipping: domain.ShippingSelection{
			Method:    d.Shipping.Method,
			CostCents: d.Shipping.CostCents,
		},
		Payment: domain.PaymentDraft{
			Method: domain.PaymentMethod(d.Payment.Method),
			Card: domain.CardDraft{
				Number:                d.Payment.Card.Number,
				Expiry:                d.Payment.Card.Expiry,
				CVV:                   d.Payment.Card.CVV,
				NameOnCard:            d.Payment.Card.NameOnCard,
				BillingSameAsShipping: d.Payment.Card.BillingSameAsShipping,
			},
			Easypaisa: d.Payment.Easypaisa.decode(),
			Jazzcash:  d.Payment.Jazzcash.decode(),
		},
		RememberMe: domain.RememberMe{
			SaveInfo: d.RememberMe.SaveInfo,
			Phone: domain.PhoneNumber{
				CountryCode:    d.RememberMe.Phone.CountryCode,
				NationalNumber: d.RememberMe.Phone.NationalNumber,
			},
		},
		DiscountCode: d.DiscountCode,
		Cart: domain.Cart{
			Items:       make([]domain.LineItem, 0, len(d.Cart.Items)),
			GiftMessage: d.Cart.GiftMessage,
		},
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		SubmittedAt: d.SubmittedAt,
	}

	if d.Delivery.Country != nil {
		draft.Delivery.Country = &domain.CountryRef{
			Name:      d.Delivery.Country.Name,
			ISOCode:   d.Delivery.Country.ISOCode,
			FlagGlyph: d.Delivery.Country.FlagGlyph,
		}
	}

	for _, item := range d.Cart.Items {
		draft.Cart.Items = append(draft.Cart.Items, domain.LineItem{
			Name:       item.Name,
			Color:      item.Color,
			PriceCents: item.PriceCents,
		})
	}
	draft.Cart.Recalculate()

	return draft
}

func (d walletDocument) decode() domain.WalletDraft {
	if strings.TrimSpace(d.ReceiptName) == "" {
		return domain.WalletDraft{}
	}
	return domain.WalletDraft{Receipt: &domain.ReceiptRef{
		Filename:    d.ReceiptName,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
	}}
}
