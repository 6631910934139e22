package cardgen

import (
	"strings"
	"testing"
)

func TestGeneratePAN(t *testing.T) {
	pan, err := GeneratePAN("400000")
	if err != nil {
		t.Fatalf("GeneratePAN: %v", err)
	}
	if len(pan) != panLen {
		t.Fatalf("expected %d digits, got %d (%q)", panLen, len(pan), pan)
	}
	if !strings.HasPrefix(pan, "400000") {
		t.Fatalf("expected bin prefix, got %q", pan)
	}
	if err := ValidatePAN(pan); err != nil {
		t.Fatalf("generated pan failed validation: %v", err)
	}
}

func TestGeneratePANRejectsBadBIN(t *testing.T) {
	for _, bin := range []string{"", "4000a0", "4000000000000000"} {
		if _, err := GeneratePAN(bin); err == nil {
			t.Errorf("expected error for bin %q", bin)
		}
	}
}

func TestValidatePAN(t *testing.T) {
	// 4242424242424242 is a well-known Luhn-valid number.
	if err := ValidatePAN("4242424242424242"); err != nil {
		t.Fatalf("ValidatePAN: %v", err)
	}
	for _, pan := range []string{"", "4242", "4242424242424241", "424242424242424x"} {
		if err := ValidatePAN(pan); err == nil {
			t.Errorf("expected error for pan %q", pan)
		}
	}
}

func TestMaskPAN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"4242424242424242", "424242******4242"},
		{"123456789", "*****6789"},
		{"1234", "****"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := MaskPAN(tc.in); got != tc.want {
			t.Errorf("MaskPAN(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLastN(t *testing.T) {
	if got := LastN("4242424242424242", 4); got != "4242" {
		t.Errorf("LastN = %q, want 4242", got)
	}
	if got := LastN("42", 4); got != "42" {
		t.Errorf("LastN = %q, want 42", got)
	}
}
