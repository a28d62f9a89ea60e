package lifecycle

import "testing"

func TestParseCurrency(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1.250,00", 1250.00},
		{"R$ 1.200,50", 1200.50},
		{"350,00", 350.00},
		{"350", 350},
		{"0", 0},
		{"0,00", 0},
		{"", 0},
		{"abc", 0},
		{"R$", 0},
		{"  89,90 ", 89.90},
		{"1.000.000,99", 1000000.99},
	}
	for _, tc := range cases {
		if got := ParseCurrency(tc.in); got != tc.want {
			t.Fatalf("ParseCurrency(%q): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}
