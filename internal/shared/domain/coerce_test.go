package domain

import (
	"testing"
	"time"
)

func TestDigitsToInt(t *testing.T) {
	cases := map[string]int64{
		"1.500.000": 1500000,
		"15.000,00": 1500000,
		"":          0,
		"abc":       0,
		" 42 ":      42,
	}
	for in, want := range cases {
		if got := DigitsToInt(in); got != want {
			t.Errorf("DigitsToInt(%q) = %d, want %d", in, got, want)
		}
	}
	if got := DigitsToInt("99999999999999999999999"); got != 0 {
		t.Errorf("overflow must coerce to 0, got %d", got)
	}
}

func TestCoerceInt(t *testing.T) {
	cases := map[string]int64{
		"12":       12,
		"12.9":     12,
		"-3.5":     -3,
		"1.234,50": 1234,
		"":         0,
		"n/a":      0,
		" 7 ":      7,
	}
	for in, want := range cases {
		if got := CoerceInt(in); got != want {
			t.Errorf("CoerceInt(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestIntegralString(t *testing.T) {
	cases := map[string]string{
		"1001.0": "1001",
		"1001":   "1001",
		" 0 ":    "0",
		"A-17":   "A-17",
		"12.5":   "12.5",
		"":       "",
	}
	for in, want := range cases {
		if got := IntegralString(in); got != want {
			t.Errorf("IntegralString(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseDateFirst(t *testing.T) {
	got, ok := ParseDateFirst("01/03/24 10:15", "2/1/06")
	if !ok {
		t.Fatal("expected date to parse")
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if _, ok := ParseDateFirst("01/03/2024", "2/1/06"); ok {
		t.Fatal("four-digit year must not match a two-digit layout")
	}
	if _, ok := ParseDateFirst("  ", "2/1/06"); ok {
		t.Fatal("blank value must not parse")
	}
}

func TestForwardFill(t *testing.T) {
	var ff ForwardFill[string]

	if v, filled := ff.Next("", false); v != "" || filled {
		t.Fatalf("leading missing value: got (%q, %v)", v, filled)
	}
	if v, filled := ff.Next("a", true); v != "a" || filled {
		t.Fatalf("present value: got (%q, %v)", v, filled)
	}
	if v, filled := ff.Next("", false); v != "a" || !filled {
		t.Fatalf("missing value: got (%q, %v), want (\"a\", true)", v, filled)
	}
}
