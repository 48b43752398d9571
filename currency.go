package billfold

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

// ValidateCurrency checks a currency code against the ISO registry.
func ValidateCurrency(code string) error {
	if money.GetCurrency(strings.ToUpper(code)) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return nil
}
