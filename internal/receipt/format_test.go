package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	cases := map[string]string{
		"1000":      "1,000",
		"1000.5":    "1,000.5",
		"1000.50":   "1,000.5",
		"12.3456":   "12.346",
		"0":         "0",
		"0.125":     "0.125",
		"999":       "999",
		"1234567.8": "1,234,567.8",
		"-1500.25":  "-1,500.25",
		"-0.5":      "-0.5",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatNumber(dec(in)), in)
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := map[string]string{
		"1000":        "1,000.00",
		"1000.5":      "1,000.50",
		"149.5":       "149.50",
		"0":           "0.00",
		"0.005":       "0.01",
		"1234567.891": "1,234,567.89",
		"-20":         "-20.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatCurrency(dec(in)), in)
	}
}

func TestFormatPlainHasNoSeparators(t *testing.T) {
	assert.Equal(t, "1000.00", FormatPlain(dec("1000")))
	assert.Equal(t, "12.35", FormatPlain(dec("12.345")))
}
