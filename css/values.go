// Package css holds the small CSS vocabulary the exporter emits - unit and
// color conversion, inline declaration building - and an inspector for user
// supplied stylesheets.
package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// pxPerPt converts typographic points to CSS pixels at the usual 96/72 ratio.
const pxPerPt = 1.3333

// PtToPx converts points to whole CSS pixels. Deterministic and monotonic,
// PtToPx(72) is 96.
func PtToPx(pts float64) int {
	return int(math.Round(pts * pxPerPt))
}

// Px renders a pixel count as a CSS length.
func Px(px int) string {
	return strconv.Itoa(px) + "px"
}

// Pt renders a point value as a CSS length, shortest form.
func Pt(pts float64) string {
	return Num(pts) + "pt"
}

// Num renders a float the way stylesheets want it, no exponent and no
// trailing zeros.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// HexRGB converts fractional color components in [0, 1] to a #rrggbb literal.
func HexRGB(r, g, b float64) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(r), channel(g), channel(b))
}

func channel(v float64) int {
	c := int(math.Round(v * 255))
	if c < 0 {
		return 0
	}
	if c > 255 {
		return 255
	}
	return c
}

// Border renders a border shorthand from a width in points, a dash style
// keyword of the document model and an optional color literal.
func Border(widthPt float64, dashStyle, hexColor string) string {
	px := PtToPx(widthPt)
	if px < 1 {
		px = 1
	}
	out := Px(px) + " " + DashStyle(dashStyle)
	if hexColor != "" {
		out += " " + hexColor
	}
	return out
}

// DashStyle maps the document's dash style vocabulary onto CSS border styles,
// solid when unrecognized.
func DashStyle(style string) string {
	switch style {
	case "DOT":
		return "dotted"
	case "DASH":
		return "dashed"
	default:
		return "solid"
	}
}

// Inline accumulates CSS declarations in insertion order. Zero value is ready
// to use, empty values are skipped so call sites stay free of conditionals.
type Inline struct {
	b strings.Builder
}

// Add appends one declaration and returns the receiver for chaining.
func (s *Inline) Add(property, value string) *Inline {
	if value == "" {
		return s
	}
	s.b.WriteString(property)
	s.b.WriteByte(':')
	s.b.WriteString(value)
	s.b.WriteByte(';')
	return s
}

// AddPx appends a pixel length declaration, skipping zero.
func (s *Inline) AddPx(property string, px int) *Inline {
	if px == 0 {
		return s
	}
	return s.Add(property, Px(px))
}

// Empty reports whether nothing has been added.
func (s *Inline) Empty() bool {
	return s.b.Len() == 0
}

// String returns the accumulated declarations, suitable for a style attribute.
func (s *Inline) String() string {
	return s.b.String()
}
