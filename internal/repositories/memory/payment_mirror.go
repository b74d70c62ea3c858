package memory

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	domain "github.com/stethcare/checkout-api/internal/domain"
	"github.com/stethcare/checkout-api/internal/repositories"
)

const mirrorKeyPrefix = "paymentData"

// PaymentMirror caches serialised payment sections in process memory under the
// fixed "paymentData" key prefix, mirroring what the storefront keeps in its
// local cache.
type PaymentMirror struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

var _ repositories.PaymentMirrorRepository = (*PaymentMirror)(nil)

// NewPaymentMirror constructs an empty in-memory payment mirror.
func NewPaymentMirror() *PaymentMirror {
	return &PaymentMirror{entries: make(map[string][]byte)}
}

// Save serialises the payment section and stores it under the draft's cache
// key. Receipts are reduced to their filename marker before serialisation.
func (m *PaymentMirror) Save(_ context.Context, draftID string, payment domain.PaymentDraft) error {
	key, err := mirrorKey(draftID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(encodeMirrorEntry(payment))
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.entries[key] = data
	m.mu.Unlock()
	return nil
}

// Load decodes the cached payment section for the draft. Undecodable entries
// return ErrMirrorCorrupt.
func (m *PaymentMirror) Load(_ context.Context, draftID string) (domain.PaymentDraft, error) {
	key, err := mirrorKey(draftID)
	if err != nil {
		return domain.PaymentDraft{}, err
	}

	m.mu.RLock()
	data, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return domain.PaymentDraft{}, repositories.ErrMirrorNotFound
	}

	var entry mirrorEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return domain.PaymentDraft{}, repositories.ErrMirrorCorrupt
	}
	payment, err := entry.decode()
	if err != nil {
		return domain.PaymentDraft{}, repositories.ErrMirrorCorrupt
	}
	return payment, nil
}

// Delete drops the cached entry. Deleting an absent entry is a no-op.
func (m *PaymentMirror) Delete(_ context.Context, draftID string) error {
	key, err := mirrorKey(draftID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// SeedRaw stores raw bytes under the draft's cache key, bypassing
// serialisation. Tests use it to simulate corrupt cache entries.
func (m *PaymentMirror) SeedRaw(draftID string, data []byte) {
	key, err := mirrorKey(draftID)
	if err != nil {
		return
	}

	m.mu.Lock()
	m.entries[key] = append([]byte(nil), data...)
	m.mu.Unlock()
}

func mirrorKey(draftID string) (string, error) {
	id := strings.TrimSpace(draftID)
	if id == "" {
		return "", errors.New("payment mirror: draft id is required")
	}
	return mirrorKeyPrefix + ":" + id, nil
}

type mirrorEntry struct {
	Method    string           `json:"method"`
	Card      mirrorCardEntry  `json:"card"`
	Easypaisa mirrorWalletSlot `json:"easypaisa"`
	Jazzcash  mirrorWalletSlot `json:"jazzcash"`
}

type mirrorCardEntry struct {
	Number                string `json:"number,omitempty"`
	Expiry                string `json:"expiry,omitempty"`
	CVV                   string `json:"cvv,omitempty"`
	NameOnCard            string `json:"nameOnCard,omitempty"`
	BillingSameAsShipping bool   `json:"billingSameAsShipping,omitempty"`
}

type mirrorWalletSlot struct {
	ReceiptName string `json:"receiptName,omitempty"`
}

func encodeMirrorEntry(payment domain.PaymentDraft) mirrorEntry {
	return mirrorEntry{
		Method: string(payment.Method),
		Card: mirrorCardEntry{
			Number:                payment.Card.Number,
			Expiry:                payment.Card.Expiry,
			CVV:                   payment.Card.CVV,
			NameOnCard:            payment.Card.NameOnCard,
			BillingSameAsShipping: payment.Card.BillingSameAsShipping,
		},
		Easypaisa: mirrorWalletSlot{ReceiptName: receiptName(payment.Easypaisa.Receipt)},
		Jazzcash:  mirrorWalletSlot{ReceiptName: receiptName(payment.Jazzcash.Receipt)},
	}
}

func (e mirrorEntry) decode() (domain.PaymentDraft, error) {
	method := domain.PaymentMethod(strings.TrimSpace(e.Method))
	known := false
	for _, candidate := range domain.KnownPaymentMethods {
		if method == candidate {
			known = true
			break
		}
	}
	if !known {
		return domain.PaymentDraft{}, errors.New("payment mirror: unknown payment method")
	}

	return domain.PaymentDraft{
		Method: method,
		Card: domain.CardDraft{
			Number:                e.Card.Number,
			Expiry:                e.Card.Expiry,
			CVV:                   e.Card.CVV,
			NameOnCard:            e.Card.NameOnCard,
			BillingSameAsShipping: e.Card.BillingSameAsShipping,
		},
		Easypaisa: domain.WalletDraft{Receipt: receiptFromName(e.Easypaisa.ReceiptName)},
		Jazzcash:  domain.WalletDraft{Receipt: receiptFromName(e.Jazzcash.ReceiptName)},
	}, nil
}

func receiptName(receipt *domain.ReceiptRef) string {
	if receipt == nil {
		return ""
	}
	return receipt.Filename
}

func receiptFromName(name string) *domain.ReceiptRef {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return &domain.ReceiptRef{Filename: name}
}
