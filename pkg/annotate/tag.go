package annotate

import (
	"strconv"
	"strings"

	qerrors "github.com/quiltviz/quilt/pkg/errors"
)

// Tag style tokens. Latin and roman tokens carry their case: "a" yields
// a, b, c and "I" yields I, II, III.
const (
	StyleLatinLower = "a"
	StyleLatinUpper = "A"
	StyleArabic     = "1"
	StyleRomanLower = "i"
	StyleRomanUpper = "I"
)

// validStyle reports whether token names a known tag style.
func validStyle(token string) bool {
	switch token {
	case StyleLatinLower, StyleLatinUpper, StyleArabic, StyleRomanLower, StyleRomanUpper:
		return true
	}
	return false
}

// formatTag renders the i-th tag (zero-based) in the given style.
func formatTag(style string, i int) (string, error) {
	switch style {
	case StyleLatinLower:
		return latin(i), nil
	case StyleLatinUpper:
		return strings.ToUpper(latin(i)), nil
	case StyleArabic:
		return strconv.Itoa(i + 1), nil
	case StyleRomanLower:
		return strings.ToLower(roman(i + 1)), nil
	case StyleRomanUpper:
		return roman(i + 1), nil
	}
	return "", qerrors.New(qerrors.ErrCodeInvalidTag, "unknown tag style %q", style)
}

// latin renders 0..25 as a..z and continues aa, ab, ... beyond.
func latin(i int) string {
	var b []byte
	for {
		b = append([]byte{byte('a' + i%26)}, b...)
		i = i/26 - 1
		if i < 0 {
			return string(b)
		}
	}
}

var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// roman renders n >= 1 as an uppercase roman numeral.
func roman(n int) string {
	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			b.WriteString(rv.symbol)
			n -= rv.value
		}
	}
	return b.String()
}
