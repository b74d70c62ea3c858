package validation

import (
	"testing"
	"time"

	"github.com/stethcare/checkout-api/internal/domain"
)

var cardTestNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestFormatCardNumber(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"groups of four", "4111111111111111", "4111 1111 1111 1111"},
		{"strips punctuation", "4111-1111-1111-1111", "4111 1111 1111 1111"},
		{"partial entry", "41111", "4111 1"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatCardNumber(tc.input); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestFormatCardNumberIdempotent(t *testing.T) {
	once := FormatCardNumber("4111111111111111")
	twice := FormatCardNumber(once)
	if once != twice {
		t.Fatalf("reformatting changed the value: %q vs %q", once, twice)
	}
}

func TestFormatExpiry(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"1226", "12/26"},
		{"12/26", "12/26"},
		{"12", "12"},
		{"1", "1"},
		{"122634", "12/26"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := FormatExpiry(tc.input); got != tc.expected {
			t.Errorf("FormatExpiry(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestSanitizeCVV(t *testing.T) {
	if got := SanitizeCVV("1a2b3c4d5"); got != "1234" {
		t.Fatalf("expected 1234, got %q", got)
	}
	if got := SanitizeCVV("007"); got != "007" {
		t.Fatalf("expected 007, got %q", got)
	}
}

func TestCardFieldRules(t *testing.T) {
	ctx := Context{Now: cardTestNow}

	cases := []struct {
		name    string
		field   string
		value   string
		wantMsg bool
	}{
		{"valid number", "number", "4111 1111 1111 1111", false},
		{"short number", "number", "41111", true},
		{"valid expiry", "expiry", "12/26", false},
		{"current month accepted", "expiry", "06/25", false},
		{"previous month rejected", "expiry", "05/25", true},
		{"bad expiry shape", "expiry", "13/26", true},
		{"valid cvv", "securityCode", "123", false},
		{"four digit cvv", "securityCode", "1234", false},
		{"short cvv", "securityCode", "12", true},
		{"valid name", "name", "Ada Lovelace", false},
		{"short name", "name", "Al", true},
		{"unknown field allowed", "billingSameAsShipping", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := CardField(tc.field, tc.value, ctx)
			if tc.wantMsg && msg == "" {
				t.Fatalf("expected a validation message for %s=%q", tc.field, tc.value)
			}
			if !tc.wantMsg && msg != "" {
				t.Fatalf("unexpected message for %s=%q: %s", tc.field, tc.value, msg)
			}
		})
	}
}

func TestCardCollectsAllErrors(t *testing.T) {
	errs := Card(domain.CardDraft{}, Context{Now: cardTestNow})
	for _, field := range []string{"number", "expiry", "securityCode", "name"} {
		if errs[field] == "" {
			t.Errorf("expected an error for %s", field)
		}
	}

	errs = Card(domain.CardDraft{
		Number:     "4111 1111 1111 1111",
		Expiry:     "12/26",
		CVV:        "123",
		NameOnCard: "Ada Lovelace",
	}, Context{Now: cardTestNow})
	if errs.HasErrors() {
		t.Fatalf("expected a clean card, got %v", errs)
	}
}
