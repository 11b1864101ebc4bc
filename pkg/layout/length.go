package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Length is a distance in English Metric Units, the native unit of Office
// Open XML drawings.
type Length int64

// Unit sizes in EMU.
const (
	EMU        Length = 1
	Pixel      Length = 9525 // at 96 dpi
	Point      Length = 12700
	Millimeter Length = 36000
	Centimeter Length = 360000
	Inch       Length = 914400
)

// Inches converts f inches to a Length, rounding to the nearest EMU.
func Inches(f float64) Length {
	return Length(math.Round(f * float64(Inch)))
}

// Points converts f points to a Length, rounding to the nearest EMU.
func Points(f float64) Length {
	return Length(math.Round(f * float64(Point)))
}

// Pixels converts n pixels at 96 dpi to a Length.
func Pixels(n int) Length {
	return Length(n) * Pixel
}

// Inches returns l in inches.
func (l Length) Inches() float64 { return float64(l) / float64(Inch) }

// Points returns l in points.
func (l Length) Points() float64 { return float64(l) / float64(Point) }

// Pixels returns l in pixels at 96 dpi.
func (l Length) Pixels() float64 { return float64(l) / float64(Pixel) }

// Scale multiplies l by f and truncates toward zero.
func (l Length) Scale(f float64) Length {
	return Length(float64(l) * f)
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Inches(), 'f', -1, 64) + "in"
}

var lengthUnits = []struct {
	suffix string
	unit   Length
}{
	{"emu", EMU},
	{"in", Inch},
	{"pt", Point},
	{"px", Pixel},
	{"cm", Centimeter},
	{"mm", Millimeter},
}

// ParseLength parses a number with an optional unit suffix: "in", "pt",
// "px", "cm", "mm" or "emu". A bare number is taken as EMU.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, fmt.Errorf("empty length")
	}
	unit := EMU
	for _, u := range lengthUnits {
		if strings.HasSuffix(s, u.suffix) {
			unit = u.unit
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			break
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	return Length(math.Round(f * float64(unit))), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so lengths can be
// written as "0.75in" or "36pt" in configuration files.
func (l *Length) UnmarshalText(text []byte) error {
	v, err := ParseLength(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
