package domain

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Amount is a monetary value in minor currency units (pesewas, kobo).
// Paystack expects amounts in minor units; the API and the database use
// two-decimal notation.
type Amount int64

// ParseAmount parses a decimal string with at most two fraction digits.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty amount", ErrInvalidInput)
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || (hasFrac && (frac == "" || len(frac) > 2)) {
		return 0, fmt.Errorf("%w: malformed amount %q", ErrInvalidInput, s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("%w: malformed amount %q", ErrInvalidInput, s)
	}
	units, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount out of range", ErrInvalidInput)
	}
	if neg {
		units = -units
	}
	return Amount(units), nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Minor returns the value in minor units.
func (a Amount) Minor() int64 { return int64(a) }

// Times multiplies the amount by a quantity.
func (a Amount) Times(n int) Amount { return a * Amount(n) }

// String renders the amount with two decimals, e.g. "50.00".
func (a Amount) String() string {
	v := int64(a)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON encodes the amount as a JSON number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Value implements driver.Valuer for NUMERIC columns.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements sql.Scanner for NUMERIC columns.
func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = 0
		return nil
	case []byte:
		return a.scanString(string(v))
	case string:
		return a.scanString(v)
	case int64:
		*a = Amount(v * 100)
		return nil
	case float64:
		return a.scanString(strconv.FormatFloat(v, 'f', 2, 64))
	default:
		return fmt.Errorf("cannot scan %T into Amount", src)
	}
}

func (a *Amount) scanString(s string) error {
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
