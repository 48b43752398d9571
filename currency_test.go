package billfold

import (
	"errors"
	"testing"
)

func TestValidateCurrency(t *testing.T) {
	tests := []struct {
		code string
		err  bool
	}{
		{"EUR", false},
		{"eur", false},
		{"USD", false},
		{"JPY", false},
		{"EURO", true},
		{"", true},
		{"??", true},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := ValidateCurrency(tt.code)
			if (err != nil) != tt.err {
				t.Errorf("ValidateCurrency(%q) error = %v, wantErr %v", tt.code, err, tt.err)
			}
			if err != nil && !errors.Is(err, ErrUnknownCurrency) {
				t.Errorf("error = %v, want ErrUnknownCurrency", err)
			}
		})
	}
}
