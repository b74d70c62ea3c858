package refdata

import "strings"

// DialingCode pairs an international dialing prefix with its country.
type DialingCode struct {
	Code      string
	Country   string
	FlagGlyph string
}

var dialingCodes = []DialingCode{
	{Code: "+1", Country: "US", FlagGlyph: "\U0001F1FA\U0001F1F8"},
	{Code: "+92", Country: "PK", FlagGlyph: "\U0001F1F5\U0001F1F0"},
	{Code: "+44", Country: "UK", FlagGlyph: "\U0001F1EC\U0001F1E7"},
	{Code: "+1", Country: "CA", FlagGlyph: "\U0001F1E8\U0001F1E6"},
	{Code: "+61", Country: "AU", FlagGlyph: "\U0001F1E6\U0001F1FA"},
	{Code: "+91", Country: "IN", FlagGlyph: "\U0001F1EE\U0001F1F3"},
	{Code: "+86", Country: "CN", FlagGlyph: "\U0001F1E8\U0001F1F3"},
	{Code: "+49", Country: "DE", FlagGlyph: "\U0001F1E9\U0001F1EA"},
	{Code: "+33", Country: "FR", FlagGlyph: "\U0001F1EB\U0001F1F7"},
	{Code: "+971", Country: "AE", FlagGlyph: "\U0001F1E6\U0001F1EA"},
	{Code: "+966", Country: "SA", FlagGlyph: "\U0001F1F8\U0001F1E6"},
	{Code: "+81", Country: "JP", FlagGlyph: "\U0001F1EF\U0001F1F5"},
	{Code: "+82", Country: "KR", FlagGlyph: "\U0001F1F0\U0001F1F7"},
	{Code: "+55", Country: "BR", FlagGlyph: "\U0001F1E7\U0001F1F7"},
	{Code: "+52", Country: "MX", FlagGlyph: "\U0001F1F2\U0001F1FD"},
	{Code: "+27", Country: "ZA", FlagGlyph: "\U0001F1FF\U0001F1E6"},
	{Code: "+7", Country: "RU", FlagGlyph: "\U0001F1F7\U0001F1FA"},
	{Code: "+39", Country: "IT", FlagGlyph: "\U0001F1EE\U0001F1F9"},
	{Code: "+34", Country: "ES", FlagGlyph: "\U0001F1EA\U0001F1F8"},
	{Code: "+31", Country: "NL", FlagGlyph: "\U0001F1F3\U0001F1F1"},
}

// DefaultDialingCode is the fallback when an inbound phone string matches no
// known prefix.
func DefaultDialingCode() DialingCode {
	code, _ := DialingCodeFor("+92")
	return code
}

// DialingCodes returns the dialing-code table in display order.
func DialingCodes() []DialingCode {
	out := make([]DialingCode, len(dialingCodes))
	copy(out, dialingCodes)
	return out
}

// DialingCodeFor returns the first table entry with the given prefix.
func DialingCodeFor(code string) (DialingCode, bool) {
	code = strings.TrimSpace(code)
	for _, dc := range dialingCodes {
		if dc.Code == code {
			return dc, true
		}
	}
	return DialingCode{}, false
}

// SplitPhone splits a pre-formatted "+<code> <number>" string by prefix
// matching against the table. On no match it returns the fallback code and an
// empty number. Longer prefixes win so "+971…" is not claimed by "+9".
func SplitPhone(value string) (DialingCode, string) {
	value = strings.TrimSpace(value)
	var (
		best      DialingCode
		bestLen   int
		remainder string
		found     bool
	)
	for _, dc := range dialingCodes {
		if strings.HasPrefix(value, dc.Code) && len(dc.Code) > bestLen {
			best = dc
			bestLen = len(dc.Code)
			remainder = strings.TrimSpace(value[len(dc.Code):])
			found = true
		}
	}
	if !found {
		return DefaultDialingCode(), ""
	}
	return best, remainder
}
