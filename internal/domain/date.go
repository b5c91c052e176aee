package domain

import (
	"fmt"
	"time"

	"golang.org/x/text/currency"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// NewDate builds a Date in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON and UnmarshalJSON shadow the promoted time.Time methods.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid type: expected date string, got %s", s)
	}
	return d.UnmarshalText([]byte(s[1 : len(s)-1]))
}

// ============================================================
// Money
// ============================================================

// Currency is an ISO 4217 currency code.
type Currency struct {
	currency.Unit
}

// RUB is the default settlement currency.
var RUB = Currency{currency.RUB}

// ParseCurrency parses a three-letter ISO 4217 code.
func ParseCurrency(s string) (Currency, error) {
	u, err := currency.ParseISO(s)
	if err != nil {
		return Currency{}, fmt.Errorf("invalid currency code %q", s)
	}
	return Currency{u}, nil
}

func (c Currency) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Currency) UnmarshalText(b []byte) error {
	parsed, err := ParseCurrency(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Amount is a monetary value with its currency.
type Amount struct {
	Amount   float64  `json:"amount"`
	Currency Currency `json:"currency"`
}
