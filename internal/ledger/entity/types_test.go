package entity

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"100", "100.00", false},
		{"100.5", "100.50", false},
		{" 1,250.75 ", "1250.75", false},
		{"0.005", "0.01", false},
		{"2.345", "2.35", false},
		{"-3.10", "-3.10", false},
		{"", "", true},
		{"abc", "", true},
		{"12..3", "", true},
		{"9999999999999.99", "9999999999999.99", false},
		{"-9999999999999.99", "-9999999999999.99", false},
		{"99999999999999.00", "", true},
		{"9999999999999.995", "", true},
		{"1e2", "", true},
		{"1e20", "", true},
		{"1E999999", "", true},
		{"1e-999999", "", true},
		{"0." + strings.Repeat("0", 40) + "1", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMoney(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("ParseMoney(%q) expected ErrInvalidAmount, got %s, %v", tt.in, got, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMoney(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseMoney(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseNonNegativeMoney(t *testing.T) {
	if _, err := ParseNonNegativeMoney("-0.01"); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
	m, err := ParseNonNegativeMoney("0")
	if err != nil || m.String() != "0.00" {
		t.Fatalf("zero should be accepted, got %s, %v", m, err)
	}
}

func TestMoneyExactAddition(t *testing.T) {
	total := MustMoney("100.00").Add(MustMoney("14.00"))
	if total.String() != "114.00" {
		t.Fatalf("expected 114.00, got %s", total)
	}
	// 0.1 + 0.2 must not drift
	if got := MustMoney("0.1").Add(MustMoney("0.2")); !got.Equal(MustMoney("0.30")) {
		t.Fatalf("expected 0.30, got %s", got)
	}
	if got := SumMoney(); got.String() != "0.00" {
		t.Fatalf("empty sum should be 0.00, got %s", got)
	}
	if got := MustMoney("500").Sub(MustMoney("600")); got.String() != "-100.00" {
		t.Fatalf("expected -100.00, got %s", got)
	}
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Total Money `json:"total"`
	}{MustMoney("114")})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"total":"114.00"}` {
		t.Fatalf("unexpected json: %s", data)
	}

	var v struct {
		A Money `json:"a"`
		B Money `json:"b"`
		C Money `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":100.5,"b":"14"}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.A.String() != "100.50" || v.B.String() != "14.00" {
		t.Fatalf("unexpected values: %s %s", v.A, v.B)
	}
	if err := json.Unmarshal([]byte(`{"c":null}`), &v); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("null must not become zero, got %v (%s)", err, v.C)
	}
	if err := json.Unmarshal([]byte(`{"a":"twelve"}`), &v); err == nil {
		t.Fatal("expected error for non-numeric string")
	}
}

func TestMoneyScanValue(t *testing.T) {
	var m Money
	if err := m.Scan([]byte("123.456")); err != nil {
		t.Fatal(err)
	}
	if m.String() != "123.46" {
		t.Fatalf("expected 123.46, got %s", m)
	}
	v, err := MustMoney("7").Value()
	if err != nil || v != "7.00" {
		t.Fatalf("Value() = %v, %v", v, err)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "2024-02-29" {
		t.Fatalf("got %s", d)
	}
	for _, bad := range []string{"2024-02-30", "2023-02-29", "29/02/2024", "", "2024-1-5"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestDateJSONAndScan(t *testing.T) {
	data, _ := json.Marshal(NewDate(time.Date(2025, 3, 7, 23, 59, 0, 0, time.UTC)))
	if string(data) != `"2025-03-07"` {
		t.Fatalf("unexpected json: %s", data)
	}
	data, _ = json.Marshal(Date{})
	if string(data) != "null" {
		t.Fatalf("zero date should marshal to null, got %s", data)
	}

	var d Date
	if err := d.Scan("2025-03-07T00:00:00Z"); err != nil || d.String() != "2025-03-07" {
		t.Fatalf("scan string: %s, %v", d, err)
	}
	if err := d.Scan(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)); err != nil || d.String() != "2024-12-31" {
		t.Fatalf("scan time: %s, %v", d, err)
	}
	if err := d.Scan(42); err == nil {
		t.Fatal("expected error scanning int")
	}
}

func TestNewID(t *testing.T) {
	re := regexp.MustCompile(`^[0-9a-f]{32}$`)
	a, b := NewID(), NewID()
	if !re.MatchString(a) || !re.MatchString(b) {
		t.Fatalf("ids not 32 hex chars: %s %s", a, b)
	}
	if a == b {
		t.Fatal("ids should differ")
	}
}

func TestIsValidPOStatus(t *testing.T) {
	for _, s := range []string{"active", "fulfilled", "cancelled"} {
		if !IsValidPOStatus(s) {
			t.Errorf("%s should be valid", s)
		}
	}
	if IsValidPOStatus("Active") || IsValidPOStatus("open") {
		t.Error("unknown status accepted")
	}
}
