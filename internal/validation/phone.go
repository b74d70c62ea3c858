package validation

import (
	"regexp"
	"strings"
)

var (
	nanpPattern    = regexp.MustCompile(`^\(?\d{3}\)?[-.]?\d{3}[-.]?\d{4}$`)
	ukPhonePattern = regexp.MustCompile(`^(\(?\d{1,5}\)?[-.]?){1,4}\d{4}$`)
	allDigits      = regexp.MustCompile(`^\d+$`)
)

// SanitizeNationalNumber strips every character except digits, spaces,
// hyphens, and parentheses.
func SanitizeNationalNumber(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Phone validates a national number against its dialing code. NANP (+1)
// numbers must reduce to a 10-digit sequence in a standard grouping form; UK
// (+44) follows a multi-group pattern; Pakistan (+92) must reduce to exactly
// ten digits; every other code requires at least five digits.
func Phone(dialingCode, number string) string {
	if strings.TrimSpace(number) == "" {
		return "Phone number is required"
	}

	switch strings.TrimSpace(dialingCode) {
	case "+1":
		compact := strings.ReplaceAll(number, " ", "")
		if !nanpPattern.MatchString(compact) {
			return "US/Canada numbers should be 10 digits"
		}
	case "+44":
		compact := strings.ReplaceAll(number, " ", "")
		if !ukPhonePattern.MatchString(compact) {
			return "Invalid UK number format"
		}
	case "+92":
		digits := digitsOnly(number)
		if len(digits) != 10 || !allDigits.MatchString(digits) {
			return "Pakistan mobile numbers should be 10 digits"
		}
	default:
		if len(digitsOnly(number)) < 5 {
			return "Phone number should have at least 5 digits"
		}
	}
	return ""
}
