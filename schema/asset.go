package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const MaxSymbolPrecision = 18

var (
	ErrInvalidSymbol     = errors.New("invalid_symbol")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrPrecisionMismatch = errors.New("precision_mismatch")
)

var (
	symbolCodeReg = regexp.MustCompile(`^[A-Z]{1,7}$`)

	// amounts must stay addable without overflowing int64
	maxRawAmount = decimal.NewFromInt(4_000_000_000_000_000_000)
)

// Symbol is an asset symbol with an explicit precision, e.g. "HODL,4".
// Ledger amounts are carried as raw int64 units of 10^-Precision.
type Symbol struct {
	Code      string
	Precision int
}

func ParseSymbol(s string) (Symbol, error) {
	ss := strings.Split(s, ",")
	if len(ss) != 2 {
		return Symbol{}, ErrInvalidSymbol
	}
	code := strings.TrimSpace(ss[0])
	if !symbolCodeReg.MatchString(code) {
		return Symbol{}, ErrInvalidSymbol
	}
	precision, err := strconv.Atoi(strings.TrimSpace(ss[1]))
	if err != nil || precision < 0 || precision > MaxSymbolPrecision {
		return Symbol{}, ErrInvalidSymbol
	}
	return Symbol{Code: code, Precision: precision}, nil
}

func (s Symbol) String() string {
	return fmt.Sprintf("%s,%d", s.Code, s.Precision)
}

// ParseAmount converts a decimal string to raw ledger units. The fractional
// part must carry exactly precision digits, a mismatch is rejected rather
// than rescaled.
func ParseAmount(amt string, precision int) (int64, error) {
	amt = strings.TrimSpace(amt)
	fracPart := ""
	if idx := strings.Index(amt, "."); idx >= 0 {
		fracPart = amt[idx+1:]
	}
	if len(fracPart) != precision {
		return 0, ErrPrecisionMismatch
	}
	d, err := decimal.NewFromString(amt)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	raw := d.Shift(int32(precision))
	if !raw.Equal(raw.Truncate(0)) || raw.Abs().GreaterThan(maxRawAmount) {
		return 0, ErrInvalidAmount
	}
	return raw.IntPart(), nil
}

// FormatAmount renders raw ledger units back as a decimal string with the
// symbol's full precision, e.g. 5000000 at precision 4 -> "500.0000".
func FormatAmount(raw int64, precision int) string {
	return decimal.New(raw, -int32(precision)).StringFixed(int32(precision))
}
