package money

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Amount is a monetary value as returned by the coaching API.
// The API serialises decimals either as JSON numbers or as strings ("12.50");
// both decode to the same Amount.
type Amount float64

// UnmarshalJSON accepts a number, a numeric string, or null (zero).
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("money: %w", err)
		}
		if s == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("money: invalid amount %q", s)
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("money: %w", err)
	}
	*a = Amount(f)
	return nil
}

// Float returns the amount as a float64.
func (a Amount) Float() float64 {
	return float64(a)
}

// String formats the amount with two decimals and no currency symbol.
func (a Amount) String() string {
	return strconv.FormatFloat(float64(a), 'f', 2, 64)
}

// GBP formats the amount in pounds, e.g. "£12.50".
func (a Amount) GBP() string {
	return "£" + a.String()
}

// FormatOptional renders an optional amount for a form input: empty when nil.
func FormatOptional(a *Amount) string {
	if a == nil {
		return ""
	}
	return a.String()
}
