package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/stethcare/checkout-api/internal/domain"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{13,19}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
)

// FormatCardNumber strips every non-digit and re-inserts a space after each
// group of four. Formatting an already-formatted number yields the same
// string.
func FormatCardNumber(value string) string {
	digits := digitsOnly(value)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatExpiry strips non-digits and inserts the slash after the second
// digit, truncating to MM/YY length.
func FormatExpiry(value string) string {
	digits := digitsOnly(value)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) <= 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}

// SanitizeCVV keeps only digits and truncates to four characters.
func SanitizeCVV(value string) string {
	digits := digitsOnly(value)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	return digits
}

func cardNumberRule(value string, _ Context) string {
	if !cardNumberPattern.MatchString(digitsOnly(value)) {
		return "Enter a valid card number"
	}
	return ""
}

// expiryRule checks MM/YY shape and rejects dates strictly before the current
// month. YY is interpreted as 2000+YY.
func expiryRule(value string, ctx Context) string {
	if !expiryPattern.MatchString(value) {
		return "Use MM/YY format"
	}
	parts := strings.SplitN(value, "/", 2)
	month, _ := strconv.Atoi(parts[0])
	year, _ := strconv.Atoi(parts[1])
	year += 2000

	now := ctx.Now
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return "Card expired"
	}
	return ""
}

func cvvRule(value string, _ Context) string {
	if !cvvPattern.MatchString(value) {
		return "3-4 digits"
	}
	return ""
}

func nameOnCardRule(value string, _ Context) string {
	if len(strings.TrimSpace(value)) < 3 {
		return "Enter full name"
	}
	return ""
}

// CardRules is the per-field rule table for the card payment variant.
var CardRules = map[string]Rule{
	"number":       cardNumberRule,
	"expiry":       expiryRule,
	"securityCode": cvvRule,
	"name":         nameOnCardRule,
}

// CardField validates one card field against the rule table.
func CardField(field, value string, ctx Context) string {
	rule, ok := CardRules[field]
	if !ok {
		return ""
	}
	return rule(value, ctx)
}

// Card validates the whole card draft.
func Card(card domain.CardDraft, ctx Context) domain.FieldErrors {
	errs := domain.FieldErrors{}
	record := func(field, value string) {
		if msg := CardField(field, value, ctx); msg != "" {
			errs[field] = msg
		}
	}
	record("number", card.Number)
	record("expiry", card.Expiry)
	record("securityCode", card.CVV)
	record("name", card.NameOnCard)
	return errs
}
