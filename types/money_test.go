package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMoneyConstructors(t *testing.T) {
	tests := []struct {
		name     string
		money    Money
		amount   string
		currency string
	}{
		{"ZAR", ZAR(d("50")), "50", "ZAR"},
		{"USD", USD(d("49")), "49", "USD"},
		{"EUR", EUR(d("199")), "199", "EUR"},
		{"GBP", GBP(d("99")), "99", "GBP"},
		{"Lowercase code", New(d("1.5"), "zar"), "1.5", "ZAR"},
		{"Zero", Zero("usd"), "0", "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.money.Amount.Equal(d(tt.amount)) {
				t.Errorf("Amount: got %s, want %s", tt.money.Amount, tt.amount)
			}
			if tt.money.Currency != tt.currency {
				t.Errorf("Currency: got %s, want %s", tt.money.Currency, tt.currency)
			}
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Money
		expected Money
	}{
		{"Add", func() Money { return ZAR(d("50")).Add(ZAR(d("15"))) }, ZAR(d("65"))},
		{"Subtract", func() Money { return ZAR(d("65")).Subtract(ZAR(d("50"))) }, ZAR(d("15"))},
		{"Multiply fractional", func() Money { return ZAR(d("20.00")).Multiply(d("2.5")) }, ZAR(d("50"))},
		{"Multiply exact", func() Money { return ZAR(d("0.1")).Multiply(d("3")) }, ZAR(d("0.3"))},
		{"Negate", func() Money { return ZAR(d("1")).Negate() }, ZAR(d("-1"))},
		{"Abs negative", func() Money { return ZAR(d("-1")).Abs() }, ZAR(d("1"))},
		{"Round", func() Money { return ZAR(d("3.14159")).Round() }, ZAR(d("3.14"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.op()
			if !result.Equal(tt.expected) {
				t.Errorf("Got %s, want %s", result.Amount, tt.expected.Amount)
			}
		})
	}
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for currency mismatch")
		}
	}()

	_ = ZAR(d("1")).Add(USD(d("1")))
}

func TestMoneyComparison(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Money
		less    bool
		greater bool
		equal   bool
	}{
		{"Equal", ZAR(d("1")), ZAR(d("1")), false, false, true},
		{"Equal trailing zeros", ZAR(d("50")), ZAR(d("50.00")), false, false, true},
		{"Less", ZAR(d("0.5")), ZAR(d("1")), true, false, false},
		{"Greater", ZAR(d("2")), ZAR(d("1")), false, true, false},
		{"Zero equal", ZAR(d("0")), Zero("zar"), false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.LessThan(tt.b); got != tt.less {
				t.Errorf("LessThan: got %v, want %v", got, tt.less)
			}
			if got := tt.a.GreaterThan(tt.b); got != tt.greater {
				t.Errorf("GreaterThan: got %v, want %v", got, tt.greater)
			}
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("Equal: got %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestMoneyPredicates(t *testing.T) {
	tests := []struct {
		name       string
		money      Money
		isZero     bool
		isPositive bool
		isNegative bool
	}{
		{"Zero", ZAR(d("0")), true, false, false},
		{"Positive", ZAR(d("0.01")), false, true, false},
		{"Negative", ZAR(d("-0.01")), false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.money.IsZero(); got != tt.isZero {
				t.Errorf("IsZero: got %v, want %v", got, tt.isZero)
			}
			if got := tt.money.IsPositive(); got != tt.isPositive {
				t.Errorf("IsPositive: got %v, want %v", got, tt.isPositive)
			}
			if got := tt.money.IsNegative(); got != tt.isNegative {
				t.Errorf("IsNegative: got %v, want %v", got, tt.isNegative)
			}
		})
	}
}

func TestMoneyFormatMajor(t *testing.T) {
	tests := []struct {
		money    Money
		expected string
	}{
		{ZAR(d("65")), "65.00"},
		{ZAR(d("0.005")), "0.01"},
		{USD(d("49")), "49.00"},
		{USD(d("-49")), "-49.00"},
		{New(d("100"), "JPY"), "100"},
		{New(d("12.5"), "XXQ"), "12.50"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.money.FormatMajor(); got != tt.expected {
				t.Errorf("FormatMajor: got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	if got := USD(d("49")).String(); got != "$49.00" {
		t.Errorf("String: got %q, want %q", got, "$49.00")
	}
	if got := New(d("12.5"), "XXQ").String(); got != "XXQ 12.50" {
		t.Errorf("String: got %q, want %q", got, "XXQ 12.50")
	}
}

func TestMoneyStringLargeAmounts(t *testing.T) {
	tests := []struct {
		name string
		m    Money
		want string
	}{
		{"fits int64", ZAR(d("1000000")), "R1,000,000.00"},
		{"overflows int64", ZAR(d("100000000000000000000")), "R100,000,000,000,000,000,000.00"},
		{"negative overflow", USD(d("-100000000000000000000.5")), "-$100,000,000,000,000,000,000.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.String(); got != tt.want {
				t.Errorf("String: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(USD(d("49.5")))
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var result struct {
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
		Display  string  `json:"display"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if result.Amount != 49.5 || result.Currency != "USD" || result.Display != "$49.50" {
		t.Errorf("Unmarshaled data incorrect: %+v", result)
	}
}

func TestSum(t *testing.T) {
	tests := []struct {
		name     string
		values   []Money
		expected Money
	}{
		{"Empty", nil, Zero("ZAR")},
		{"Single", []Money{ZAR(d("50"))}, ZAR(d("50"))},
		{"Multiple", []Money{ZAR(d("50")), ZAR(d("15"))}, ZAR(d("65"))},
		{"Fractions", []Money{ZAR(d("0.1")), ZAR(d("0.2"))}, ZAR(d("0.3"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Sum("ZAR", tt.values...)
			if !result.Equal(tt.expected) {
				t.Errorf("Sum: got %s, want %s", result.Amount, tt.expected.Amount)
			}
		})
	}
}

func BenchmarkMoneyAdd(b *testing.B) {
	m1 := ZAR(d("1.25"))
	m2 := ZAR(d("2.50"))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m1.Add(m2)
	}
}

func BenchmarkMoneyString(b *testing.B) {
	m := ZAR(d("49"))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.String()
	}
}
