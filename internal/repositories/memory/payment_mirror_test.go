package memory

import (
	"context"
	"errors"
	"testing"

	domain "github.com/stethcare/checkout-api/internal/domain"
	"github.com/stethcare/checkout-api/internal/repositories"
)

func TestPaymentMirrorRoundTrip(t *testing.T) {
	mirror := NewPaymentMirror()
	ctx := context.Background()

	payment := domain.PaymentDraft{
		Method: domain.PaymentMethodCard,
		Card: domain.CardDraft{
			Number:     "4111 1111 1111 1111",
			Expiry:     "12/26",
			CVV:        "123",
			NameOnCard: "Ada Lovelace",
		},
	}

	if err := mirror.Save(ctx, "draft-1", payment); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := mirror.Load(ctx, "draft-1")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Method != domain.PaymentMethodCard {
		t.Fatalf("unexpected method %s", loaded.Method)
	}
	if loaded.Card.Number != payment.Card.Number || loaded.Card.CVV != payment.Card.CVV {
		t.Fatalf("card fields lost in round trip: %+v", loaded.Card)
	}
}

func TestPaymentMirrorStripsReceiptToFilename(t *testing.T) {
	mirror := NewPaymentMirror()
	ctx := context.Background()

	payment := domain.PaymentDraft{
		Method: domain.PaymentMethodEasypaisa,
		Easypaisa: domain.WalletDraft{
			Receipt: &domain.ReceiptRef{
				Filename:    "receipt.png",
				ContentType: "image/png",
				SizeBytes:   2048,
			},
		},
	}

	if err := mirror.Save(ctx, "draft-1", payment); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, err := mirror.Load(ctx, "draft-1")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	receipt := loaded.Easypaisa.Receipt
	if receipt == nil || receipt.Filename != "receipt.png" {
		t.Fatalf("expected filename marker to survive, got %+v", receipt)
	}
	if receipt.ContentType != "" || receipt.SizeBytes != 0 {
		t.Fatalf("expected only the filename marker to be cached, got %+v", receipt)
	}
}

func TestPaymentMirrorMissingEntry(t *testing.T) {
	mirror := NewPaymentMirror()
	_, err := mirror.Load(context.Background(), "absent")
	if !errors.Is(err, repositories.ErrMirrorNotFound) {
		t.Fatalf("expected ErrMirrorNotFound, got %v", err)
	}
}

func TestPaymentMirrorCorruptEntries(t *testing.T) {
	mirror := NewPaymentMirror()
	ctx := context.Background()

	t.Run("unparseable json", func(t *testing.T) {
		mirror.SeedRaw("draft-1", []byte("{not json"))
		_, err := mirror.Load(ctx, "draft-1")
		if !errors.Is(err, repositories.ErrMirrorCorrupt) {
			t.Fatalf("expected ErrMirrorCorrupt, got %v", err)
		}
	})

	t.Run("unknown payment method", func(t *testing.T) {
		mirror.SeedRaw("draft-2", []byte(`{"method":"bitcoin"}`))
		_, err := mirror.Load(ctx, "draft-2")
		if !errors.Is(err, repositories.ErrMirrorCorrupt) {
			t.Fatalf("expected ErrMirrorCorrupt, got %v", err)
		}
	})
}

func TestPaymentMirrorDelete(t *testing.T) {
	mirror := NewPaymentMirror()
	ctx := context.Background()

	if err := mirror.Save(ctx, "draft-1", domain.PaymentDraft{Method: domain.PaymentMethodCard}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := mirror.Delete(ctx, "draft-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := mirror.Load(ctx, "draft-1"); !errors.Is(err, repositories.ErrMirrorNotFound) {
		t.Fatalf("expected entry to be gone, got %v", err)
	}

	// Deleting an absent entry is a no-op.
	if err := mirror.Delete(ctx, "draft-1"); err != nil {
		t.Fatalf("expected no-op delete, got %v", err)
	}
}

func TestPaymentMirrorRequiresDraftID(t *testing.T) {
	mirror := NewPaymentMirror()
	if err := mirror.Save(context.Background(), "  ", domain.PaymentDraft{}); err == nil {
		t.Fatal("expected an error for a blank draft id")
	}
}
