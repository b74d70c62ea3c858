// Package refdata holds the static reference tables consumed by the checkout
// flow: shipping countries, state/province lists, dialing codes, the
// recommended-items catalog, and shipping options. All tables are read-only.
package refdata

import (
	"strings"

	"github.com/stethcare/checkout-api/internal/domain"
)

var countries = []domain.CountryRef{
	{Name: "United States", ISOCode: "US", FlagGlyph: "\U0001F1FA\U0001F1F8"},
	{Name: "Pakistan", ISOCode: "PK", FlagGlyph: "\U0001F1F5\U0001F1F0"},
	{Name: "United Kingdom", ISOCode: "GB", FlagGlyph: "\U0001F1EC\U0001F1E7"},
	{Name: "Canada", ISOCode: "CA", FlagGlyph: "\U0001F1E8\U0001F1E6"},
	{Name: "Australia", ISOCode: "AU", FlagGlyph: "\U0001F1E6\U0001F1FA"},
	{Name: "India", ISOCode: "IN", FlagGlyph: "\U0001F1EE\U0001F1F3"},
	{Name: "China", ISOCode: "CN", FlagGlyph: "\U0001F1E8\U0001F1F3"},
	{Name: "Germany", ISOCode: "DE", FlagGlyph: "\U0001F1E9\U0001F1EA"},
	{Name: "France", ISOCode: "FR", FlagGlyph: "\U0001F1EB\U0001F1F7"},
	{Name: "United Arab Emirates", ISOCode: "AE", FlagGlyph: "\U0001F1E6\U0001F1EA"},
	{Name: "Saudi Arabia", ISOCode: "SA", FlagGlyph: "\U0001F1F8\U0001F1E6"},
	{Name: "Japan", ISOCode: "JP", FlagGlyph: "\U0001F1EF\U0001F1F5"},
	{Name: "South Korea", ISOCode: "KR", FlagGlyph: "\U0001F1F0\U0001F1F7"},
	{Name: "Brazil", ISOCode: "BR", FlagGlyph: "\U0001F1E7\U0001F1F7"},
	{Name: "Mexico", ISOCode: "MX", FlagGlyph: "\U0001F1F2\U0001F1FD"},
}

// Countries returns the full country table in display order.
func Countries() []domain.CountryRef {
	out := make([]domain.CountryRef, len(countries))
	copy(out, countries)
	return out
}

// CountryByCode looks up a country by its ISO code, case-insensitively.
func CountryByCode(code string) (domain.CountryRef, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range countries {
		if c.ISOCode == code {
			return c, true
		}
	}
	return domain.CountryRef{}, false
}

// SearchCountries filters the table by case-insensitive substring match on the
// country name. An empty query returns the whole table.
func SearchCountries(query string) []domain.CountryRef {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return Countries()
	}
	out := make([]domain.CountryRef, 0, len(countries))
	for _, c := range countries {
		if strings.Contains(strings.ToLower(c.Name), query) {
			out = append(out, c)
		}
	}
	return out
}
