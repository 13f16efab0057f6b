// Package inset computes where an overlay subplot sits inside a host
// plot. Box edges mix fractions of a reference region with absolute
// physical lengths; the reference region is either the host's panel
// (the data rectangle) or its full extent including axes and titles.
package inset

import (
	"strconv"
	"strings"

	qerrors "github.com/quiltviz/quilt/pkg/errors"
)

// Unit is a physical or device length unit.
type Unit string

// Supported length units.
const (
	UnitMillimeter Unit = "mm"
	UnitCentimeter Unit = "cm"
	UnitInch       Unit = "in"
	UnitPoint      Unit = "pt"
	UnitPixel      Unit = "px"
)

// DefaultDPI is the device resolution used when the caller does not
// supply one. 96 dot/inch matches the CSS reference pixel.
const DefaultDPI = 96.0

// pixelsPerUnit returns the px equivalent of one unit at the given DPI.
func pixelsPerUnit(u Unit, dpi float64) (float64, error) {
	switch u {
	case UnitMillimeter:
		return dpi / 25.4, nil
	case UnitCentimeter:
		return dpi / 2.54, nil
	case UnitInch:
		return dpi, nil
	case UnitPoint:
		return dpi / 72.0, nil
	case UnitPixel:
		return 1, nil
	default:
		return 0, qerrors.New(qerrors.ErrCodeInvalidUnit, "unknown unit %q", string(u))
	}
}

// Length is an absolute distance with a unit.
type Length struct {
	Value float64
	Unit  Unit
}

// Pixels converts the length to device pixels at the given DPI.
func (l Length) Pixels(dpi float64) (float64, error) {
	per, err := pixelsPerUnit(l.Unit, dpi)
	if err != nil {
		return 0, err
	}
	return l.Value * per, nil
}

// ParseLength parses strings like "15mm", "0.5in", or "12pt".
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 && !isDigit(s[i-1]) && s[i-1] != '.' {
		i--
	}
	if i == 0 || i == len(s) {
		return Length{}, qerrors.New(qerrors.ErrCodeInvalidUnit, "malformed length %q", s)
	}
	value, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return Length{}, qerrors.Wrap(qerrors.ErrCodeInvalidUnit, err, "malformed length %q", s)
	}
	unit := Unit(strings.TrimSpace(s[i:]))
	if _, err := pixelsPerUnit(unit, DefaultDPI); err != nil {
		return Length{}, err
	}
	return Length{Value: value, Unit: unit}, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
