// Package validation centralises the checkout field rules. Each rule is a pure
// function from value and context to a human-readable message (empty string =
// valid), keyed by field name, so the validation surface is testable without
// any HTTP or storage machinery. Messages are surfaced inline next to the
// offending field; they are never raised as errors.
package validation

import (
	"strings"
	"time"
)

// Context carries the inputs a rule may depend on besides the value itself.
type Context struct {
	// CountryCode is the delivery country ISO code, or the dialing code for
	// phone rules.
	CountryCode string
	// Now anchors time-dependent rules such as card expiry.
	Now time.Time
}

// Rule evaluates a single field value. An empty return means valid.
type Rule func(value string, ctx Context) string

func requireNonEmpty(message string) Rule {
	return func(value string, _ Context) string {
		if strings.TrimSpace(value) == "" {
			return message
		}
		return ""
	}
}

// digitsOnly strips every non-digit rune from the value.
func digitsOnly(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
