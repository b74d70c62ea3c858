package validation

import "testing"

func TestSanitizeNationalNumber(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"(301) 555-0123", "(301) 555-0123"},
		{"301.555.0123", "3015550123"},
		{"+92 300 1234567", "92 300 1234567"},
		{"abc123", "123"},
	}

	for _, tc := range cases {
		if got := SanitizeNationalNumber(tc.input); got != tc.expected {
			t.Errorf("SanitizeNationalNumber(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestPhone(t *testing.T) {
	cases := []struct {
		name    string
		code    string
		number  string
		wantMsg bool
	}{
		{"nanp plain", "+1", "3015550123", false},
		{"nanp grouped", "+1", "(301) 555-0123", false},
		{"nanp too short", "+1", "555-0123", true},
		{"uk grouped", "+44", "20 7946 0958", false},
		{"uk garbage", "+44", "12", true},
		{"pakistan ten digits", "+92", "3001234567", false},
		{"pakistan grouped", "+92", "300 123-4567", false},
		{"pakistan nine digits", "+92", "300123456", true},
		{"pakistan eleven digits", "+92", "30012345678", true},
		{"fallback minimum", "+81", "12345", false},
		{"fallback too short", "+81", "1234", true},
		{"empty required", "+1", "  ", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := Phone(tc.code, tc.number)
			if tc.wantMsg && msg == "" {
				t.Fatalf("expected a message for %s %q", tc.code, tc.number)
			}
			if !tc.wantMsg && msg != "" {
				t.Fatalf("unexpected message for %s %q: %s", tc.code, tc.number, msg)
			}
		})
	}
}
