package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MoneyPlaces 金额小数位
const MoneyPlaces = 2

// DateLayout 日期格式
const DateLayout = "2006-01-02"

// MaxIntegerDigits 金额整数部分最大位数, 对应 decimal(15,2) 列
const MaxIntegerDigits = 13

// maxMoneyLength bounds the raw text before it reaches the decimal parser.
const maxMoneyLength = 32

var maxMoney = decimal.New(1, MaxIntegerDigits)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrInvalidDate    = errors.New("invalid date, expected YYYY-MM-DD")
)

// Money 定点金额, 始终保留两位小数
type Money struct {
	decimal.Decimal
}

// NewMoney rounds d to two fractional digits.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(MoneyPlaces)}
}

// MustMoney parses s and panics on failure. Intended for constants and tests.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney 零
func ZeroMoney() Money {
	return Money{Decimal: decimal.Zero}
}

// ParseMoney parses a decimal string such as "100", "100.5" or "1,250.00".
// Empty input is an error; callers decide whether a missing amount means zero.
// Exponent notation is rejected and the integer part is limited to
// MaxIntegerDigits digits.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	if len(s) > maxMoneyLength || strings.ContainsAny(s, "eE") {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	m := NewMoney(d)
	if !m.InRange() {
		return Money{}, fmt.Errorf("%w: %q exceeds %d integer digits", ErrInvalidAmount, s, MaxIntegerDigits)
	}
	return m, nil
}

// ParseNonNegativeMoney parses s and rejects values below zero.
func ParseNonNegativeMoney(s string) (Money, error) {
	m, err := ParseMoney(s)
	if err != nil {
		return Money{}, err
	}
	if m.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return m, nil
}

// InRange reports whether m fits a decimal(15,2) column.
func (m Money) InRange() bool {
	return m.Abs().LessThan(maxMoney)
}

func (m Money) Add(o Money) Money {
	return NewMoney(m.Decimal.Add(o.Decimal))
}

func (m Money) Sub(o Money) Money {
	return NewMoney(m.Decimal.Sub(o.Decimal))
}

func (m Money) Equal(o Money) bool {
	return m.Decimal.Equal(o.Decimal)
}

// String 固定两位小数
func (m Money) String() string {
	return m.Decimal.StringFixed(MoneyPlaces)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts both JSON numbers and numeric strings. null is an
// error, never zero.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return fmt.Errorf("%w: null", ErrInvalidAmount)
	}
	s = strings.Trim(s, `"`)
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *Money) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("failed to scan Money: %w", err)
	}
	*m = NewMoney(d)
	return nil
}

// SumMoney 求和
func SumMoney(values ...Money) Money {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v.Decimal)
	}
	return NewMoney(total)
}

// Date 日历日期, 不含时间与时区
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today 今天
func Today() Date {
	return NewDate(time.Now())
}

// ParseDate parses YYYY-MM-DD and rejects impossible days such as 2024-02-30.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewDate(t), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GormDataType 映射为 SQL DATE 列
func (Date) GormDataType() string {
	return "date"
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = NewDate(v)
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("failed to scan Date: %v", value)
	}
	return nil
}

func (d *Date) scanString(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
