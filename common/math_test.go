package common_test

import (
	"math/big"
	"testing"

	"github.com/barsava/ethfetch/common"
)

func TestBigToFloat(t *testing.T) {
	cases := []struct {
		value   int64
		decimal uint64
		want    float64
	}{
		{1100, 2, 11},
		{1100, 3, 1.1},
		{25, 1, 2.5},
		{5, 1, 0.5},
		{7, 0, 7},
		{0, 18, 0},
	}
	for _, c := range cases {
		if got := common.BigToFloat(big.NewInt(c.value), c.decimal); got != c.want {
			t.Errorf("BigToFloat(%d, %d): want %v, got %v", c.value, c.decimal, c.want, got)
		}
	}
}

func TestBigToFloatString(t *testing.T) {
	huge, _ := big.NewInt(0).SetString("123456789012345678901234567890", 10)
	cases := []struct {
		name    string
		value   *big.Int
		decimal uint64
		want    string
	}{
		{"fraction keeps one digit", big.NewInt(1100), 3, "1.1"},
		{"exact integer drops the dot", big.NewInt(1000), 3, "1"},
		{"zero", big.NewInt(0), 18, "0"},
		{"smallest unit", big.NewInt(1), 18, "0.000000000000000001"},
		{"no decimals", big.NewInt(12345), 0, "12345"},
		{"beyond float64 precision", huge, 18, "123456789012.34567890123456789"},
	}
	for _, c := range cases {
		if got := common.BigToFloatString(c.value, c.decimal); got != c.want {
			t.Errorf("%s: want %q, got %q", c.name, c.want, got)
		}
	}
}

func TestStringToBigInt(t *testing.T) {
	got, err := common.StringToBigInt("123456789012345678901234567890")
	if err != nil {
		t.Fatalf("StringToBigInt: %s", err)
	}
	if got.String() != "123456789012345678901234567890" {
		t.Errorf("want the input back, got %s", got.String())
	}

	if _, err := common.StringToBigInt("0x10"); err == nil {
		t.Error("expected an error for hex input")
	}
	if _, err := common.StringToBigInt("twelve"); err == nil {
		t.Error("expected an error for non-numeric input")
	}
}
