package jiix

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/akeil/nebotool/internal/errors"
)

// Style declaration keys.
const (
	KeyPenWidth = "-myscript-pen-width"
	KeyColor    = "color"
)

// Style is the visual style for ink items, decoded from a declaration like
// "-myscript-pen-width:2;color:#11223344".
type Style struct {
	// PenWidth is the width of the pen in export units (millimeters).
	PenWidth float64
	// Color is the decoded #RRGGBBAA value.
	Color color.NRGBA
}

// ParseStyle decodes a semicolon delimited list of key:value pairs.
//
// Only the pen width and color keys are interpreted; others are ignored.
// A key which is not given keeps its zero value.
func ParseStyle(s string) (Style, error) {
	var st Style
	for _, segment := range strings.Split(s, ";") {
		if strings.TrimSpace(segment) == "" {
			continue
		}

		parts := strings.SplitN(segment, ":", 2)
		if len(parts) != 2 {
			return st, errors.New(errors.MalformedStyle, "no value in segment %q", segment)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case KeyPenWidth:
			w, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return st, errors.WithCause(errors.InvalidPenWidth, err, "parse %q", value)
			}
			st.PenWidth = w
		case KeyColor:
			c, err := ParseColor(value)
			if err != nil {
				return st, err
			}
			st.Color = c
		default:
			// unknown attributes are allowed
		}
	}

	return st, nil
}

// ParseColor decodes a color literal in the form #RRGGBBAA.
func ParseColor(s string) (color.NRGBA, error) {
	var c color.NRGBA
	if len(s) != 9 || s[0] != '#' {
		return c, errors.New(errors.InvalidColor, "expected #RRGGBBAA, got %q", s)
	}

	var rgba [4]uint8
	for i := range rgba {
		v, err := strconv.ParseUint(s[1+i*2:3+i*2], 16, 8)
		if err != nil {
			return c, errors.WithCause(errors.InvalidColor, err, "parse %q", s)
		}
		rgba[i] = uint8(v)
	}

	return color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}, nil
}

// String encodes the style in canonical form.
// The result can be decoded with ParseStyle.
func (s Style) String() string {
	return fmt.Sprintf("%v:%v;%v:%v",
		KeyPenWidth, strconv.FormatFloat(s.PenWidth, 'f', -1, 64),
		KeyColor, FormatColor(s.Color))
}

// FormatColor encodes c as #RRGGBBAA.
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
