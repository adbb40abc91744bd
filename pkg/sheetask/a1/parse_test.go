package a1

import "testing"

func TestParseRange(t *testing.T) {
	tests := []struct {
		ref      string
		expected Range
	}{
		{"Sheet1", Range{Sheet: "Sheet1"}},
		{"'My Sheet'", Range{Sheet: "My Sheet"}},
		{"Sheet1!B2", Range{Sheet: "Sheet1", R1: 2, C1: 2, R2: 2, C2: 2}},
		{"'My Sheet'!A1:C10", Range{Sheet: "My Sheet", R1: 1, C1: 1, R2: 10, C2: 3}},
		{"=Data!$A$1:$D$10", Range{Sheet: "Data", R1: 1, C1: 1, R2: 10, C2: 4}},
		{"'Bob''s'!C3:A1", Range{Sheet: "Bob's", R1: 1, C1: 1, R2: 3, C2: 3}},
	}

	for _, tt := range tests {
		result, err := ParseRange(tt.ref)
		if err != nil {
			t.Errorf("ParseRange(%q) failed: %v", tt.ref, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("ParseRange(%q) = %+v, expected %+v", tt.ref, result, tt.expected)
		}
	}
}

func TestParseRangeErrors(t *testing.T) {
	for _, ref := range []string{"", "Sheet1!", "Sheet1!A1:B2,Sheet1!C1:D2", "Sheet1!1A", "Sheet1!A1:B2:C3"} {
		if _, err := ParseRange(ref); err == nil {
			t.Errorf("ParseRange(%q) expected error", ref)
		}
	}
}

func TestRangeStringRoundTrip(t *testing.T) {
	for _, ref := range []string{"Sheet1", "'My Sheet'!A1:C10", "Sheet1!B2", "'Bob''s'!AA1:AB20"} {
		r, err := ParseRange(ref)
		if err != nil {
			t.Fatalf("ParseRange(%q) failed: %v", ref, err)
		}
		if got := r.String(); got != ref {
			t.Errorf("Range.String() = %q, expected %q", got, ref)
		}
	}
}
