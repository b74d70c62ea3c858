package validation

import (
	"regexp"
	"strings"

	"github.com/stethcare/checkout-api/internal/domain"
)

var (
	usZipPattern  = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	ukPostPattern = regexp.MustCompile(`(?i)^[A-Z]{1,2}\d[A-Z\d]? \d[A-Z]{2}$`)
	caPostPattern = regexp.MustCompile(`(?i)^[A-Z]\d[A-Z] \d[A-Z]\d$`)
)

func zipRule(value string, ctx Context) string {
	if strings.TrimSpace(value) == "" {
		return "ZIP code is required"
	}
	switch strings.ToUpper(strings.TrimSpace(ctx.CountryCode)) {
	case "US":
		if !usZipPattern.MatchString(value) {
			return "Invalid US ZIP code"
		}
	case "GB":
		if !ukPostPattern.MatchString(value) {
			return "Invalid UK postal code"
		}
	case "CA":
		if !caPostPattern.MatchString(value) {
			return "Invalid Canadian postal code"
		}
	}
	return ""
}

func countryRule(value string, _ Context) string {
	if strings.TrimSpace(value) == "" {
		return "Country is required"
	}
	return ""
}

// DeliveryRules is the per-field rule table for the delivery section.
var DeliveryRules = map[string]Rule{
	"firstName": requireNonEmpty("First name is required"),
	"lastName":  requireNonEmpty("Last name is required"),
	"address":   requireNonEmpty("Address is required"),
	"city":      requireNonEmpty("City is required"),
	"zipCode":   zipRule,
	"country":   countryRule,
}

// DeliveryField validates one delivery field against the rule table. Fields
// without a rule (company, apartment, state) are always valid.
func DeliveryField(field, value string, ctx Context) string {
	rule, ok := DeliveryRules[field]
	if !ok {
		return ""
	}
	return rule(value, ctx)
}

// Delivery validates a whole delivery section, returning one message per
// offending field.
func Delivery(info domain.DeliveryInfo, ctx Context) domain.FieldErrors {
	country := ""
	if info.Country != nil {
		country = info.Country.ISOCode
		ctx.CountryCode = info.Country.ISOCode
	}

	errs := domain.FieldErrors{}
	record := func(field, value string) {
		if msg := DeliveryField(field, value, ctx); msg != "" {
			errs[field] = msg
		}
	}
	record("firstName", info.FirstName)
	record("lastName", info.LastName)
	record("address", info.Address)
	record("city", info.City)
	record("zipCode", info.ZipCode)
	record("country", country)
	return errs
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactRules is the per-field rule table for the contact section.
var ContactRules = map[string]Rule{
	"firstName": requireNonEmpty("First name is required"),
	"lastName":  requireNonEmpty("Last name is required"),
	"email": func(value string, _ Context) string {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return "Email is required"
		}
		if !emailPattern.MatchString(trimmed) {
			return "Enter a valid email"
		}
		return ""
	},
}

// Contact validates the contact section.
func Contact(info domain.ContactInfo, ctx Context) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if msg := ContactRules["firstName"](info.FirstName, ctx); msg != "" {
		errs["firstName"] = msg
	}
	if msg := ContactRules["lastName"](info.LastName, ctx); msg != "" {
		errs["lastName"] = msg
	}
	if msg := ContactRules["email"](info.Email, ctx); msg != "" {
		errs["email"] = msg
	}
	return errs
}
