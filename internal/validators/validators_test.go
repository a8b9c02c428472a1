package validators

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"+998 90 123-45-67", "+998901234567", true},
		{"(998) 901234567", "+998901234567", true},
		{"998901234567", "+998901234567", true},
		{"12345", "", false},
		{"+99890abc4567", "", false},
		{"99+8901234567", "", false},
		{"1234567890123456", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizePhone(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizePhone(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ada@Clinic.Test "); got != "ada@clinic.test" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
