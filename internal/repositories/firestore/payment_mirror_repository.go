package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"

	domain "github.com/stethcare/checkout-api/internal/domain"
	pfirestore "github.com/stethcare/checkout-api/internal/platform/firestore"
	"github.com/stethcare/checkout-api/internal/repositories"
)

const (
	mirrorCollection = "paymentMirror"
	mirrorKeyPrefix  = "paymentData"
)

// PaymentMirrorRepository caches serialised payment sections in Firestore
// under the fixed "paymentData" key prefix.
type PaymentMirrorRepository struct {
	base     *pfirestore.BaseRepository[mirrorDocument]
	provider *pfirestore.Provider
}

var _ repositories.PaymentMirrorRepository = (*PaymentMirrorRepository)(nil)

// NewPaymentMirrorRepository constructs a Firestore-backed payment mirror.
func NewPaymentMirrorRepository(provider *pfirestore.Provider) (*PaymentMirrorRepository, error) {
	if provider == nil {
		return nil, errors.New("payment mirror requires firestore provider")
	}
	base := pfirestore.NewBaseRepository[mirrorDocument](provider, mirrorCollection, nil, mirrorDecoder())
	return &PaymentMirrorRepository{
		base:     base,
		provider: provider,
	}, nil
}

// Save writes the payment section under the draft's cache key. Receipts are
// reduced to their filename marker before serialisation.
func (r *PaymentMirrorRepository) Save(ctx context.Context, draftID string, payment domain.PaymentDraft) error {
	if r == nil || r.base == nil {
		return errors.New("payment mirror not initialised")
	}
	key, err := mirrorDocumentID(draftID)
	if err != nil {
		return err
	}

	doc := mirrorDocument{
		Method: string(payment.Method),
		Card: mirrorCardDocument{
			Number:                payment.Card.Number,
			Expiry:                payment.Card.Expiry,
			CVV:                   payment.Card.CVV,
			NameOnCard:            payment.Card.NameOnCard,
			BillingSameAsShipping: payment.Card.BillingSameAsShipping,
		},
		Easypaisa: mirrorWalletDocument{ReceiptName: mirrorReceiptName(payment.Easypaisa.Receipt)},
		Jazzcash:  mirrorWalletDocument{ReceiptName: mirrorReceiptName(payment.Jazzcash.Receipt)},
	}

	_, err = r.base.Set(ctx, key, doc)
	return err
}

// Load decodes the cached payment section for the draft. Entries that fail to
// decode or carry an unknown method surface as ErrMirrorCorrupt.
func (r *PaymentMirrorRepository) Load(ctx context.Context, draftID string) (domain.PaymentDraft, error) {
	if r == nil || r.base == nil {
		return domain.PaymentDraft{}, errors.New("payment mirror not initialised")
	}
	key, err := mirrorDocumentID(draftID)
	if err != nil {
		return domain.PaymentDraft{}, err
	}

	doc, err := r.base.Get(ctx, key)
	if err != nil {
		var repoErr repositories.RepositoryError
		if errors.As(err, &repoErr) && repoErr.IsNotFound() {
			return domain.PaymentDraft{}, repositories.ErrMirrorNotFound
		}
		return domain.PaymentDraft{}, err
	}

	method := domain.PaymentMethod(strings.TrimSpace(doc.Data.Method))
	known := false
	for _, candidate := range domain.KnownPaymentMethods {
		if method == candidate {
			known = true
			break
		}
	}
	if !known {
		return domain.PaymentDraft{}, repositories.ErrMirrorCorrupt
	}

	return domain.PaymentDraft{
		Method: method,
		Card: domain.CardDraft{
			Number:                doc.Data.Card.Number,
			Expiry:                doc.Data.Card.Expiry,
			CVV:                   doc.Data.Card.CVV,
			NameOnCard:            doc.Data.Card.NameOnCard,
			BillingSameAsShipping: doc.Data.Card.BillingSameAsShipping,
		},
		Easypaisa: domain.WalletDraft{Receipt: mirrorReceiptFromName(doc.Data.Easypaisa.ReceiptName)},
		Jazzcash:  domain.WalletDraft{Receipt: mirrorReceiptFromName(doc.Data.Jazzcash.ReceiptName)},
	}, nil
}

// Delete drops the cached entry. Deleting an absent entry is a no-op.
func (r *PaymentMirrorRepository) Delete(ctx context.Context, draftID string) error {
	if r == nil || r.base == nil {
		return errors.New("payment mirror not initialised")
	}
	key, err := mirrorDocumentID(draftID)
	if err != nil {
		return err
	}
	return r.base.Delete(ctx, key)
}

func mirrorDocumentID(draftID string) (string, error) {
	id := strings.TrimSpace(draftID)
	if id == "" {
		return "", errors.New("payment mirror: draft id is required")
	}
	return mirrorKeyPrefix + ":" + id, nil
}

// mirrorDecoder maps snapshot decode failures to ErrMirrorCorrupt so callers
// can fall back to empty defaults instead of failing the request.
func mirrorDecoder() pfirestore.Decoder[mirrorDocument] {
	return func(_ context.Context, snap *firestore.DocumentSnapshot) (mirrorDocument, error) {
		var doc mirrorDocument
		if err := snap.DataTo(&doc); err != nil {
			return mirrorDocument{}, repositories.ErrMirrorCorrupt
		}
		return doc, nil
	}
}

func mirrorReceiptName(receipt *domain.ReceiptRef) string {
	if receipt == nil {
		return ""
	}
	return receipt.Filename
}

func mirrorReceiptFromName(name string) *domain.ReceiptRef {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return &domain.ReceiptRef{Filename: name}
}

type mirrorDocument struct {
	Method    string               `firestore:"method"`
	Card      mirrorCardDocument   `firestore:"card"`
	Easypaisa mirrorWalletDocument `firestore:"easypaisa"`
	Jazzcash  mirrorWalletDocument `firestore:"jazzcash"`
}

type mirrorCardDocument struct {
	Number                string `firestore:"number,omitempty"`
	Expiry                string `firestore:"expiry,omitempty"`
	CVV                   string `firestore:"cvv,omitempty"`
	NameOnCard            string `firestore:"nameOnCard,omitempty"`
	BillingSameAsShipping bool   `firestore:"billingSameAsShipping"`
}

type mirrorWalletDocument struct {
	ReceiptName string `firestore:"receiptName,omitempty"`
}
