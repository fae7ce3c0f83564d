package jiix

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeil/nebotool/internal/errors"
)

func TestParseStyle(t *testing.T) {
	s, err := ParseStyle("-myscript-pen-width:2;color:#11223344")
	require.NoError(t, err)

	assert.Equal(t, 2.0, s.PenWidth)
	assert.Equal(t, color.NRGBA{17, 34, 51, 68}, s.Color)
}

func TestParseStyleLenient(t *testing.T) {
	// whitespace, unknown keys, trailing and empty segments
	s, err := ParseStyle(" color : #FF000080 ; font-family: MyScript Inter;;-myscript-pen-width: 0.625 ;")
	require.NoError(t, err)

	assert.Equal(t, 0.625, s.PenWidth)
	assert.Equal(t, color.NRGBA{255, 0, 0, 128}, s.Color)

	empty, err := ParseStyle("")
	require.NoError(t, err)
	assert.Equal(t, Style{}, empty)
}

func TestParseStyleErrors(t *testing.T) {
	cases := []struct {
		input string
		kind  errors.Kind
	}{
		{"color", errors.MalformedStyle},
		{"-myscript-pen-width:2;bogus", errors.MalformedStyle},
		{"-myscript-pen-width:wide", errors.InvalidPenWidth},
		{"-myscript-pen-width:", errors.InvalidPenWidth},
		{"color:#FF00", errors.InvalidColor},
		{"color:#GG000000", errors.InvalidColor},
		{"color:FF00000000", errors.InvalidColor},
		{"color:#FF0000800", errors.InvalidColor},
	}

	for _, c := range cases {
		_, err := ParseStyle(c.input)
		if err == nil {
			t.Errorf("expected error for %q", c.input)
			continue
		}
		if !errors.Is(err, c.kind) {
			t.Errorf("unexpected error kind for %q: %v", c.input, err)
		}
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#FF000080")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{255, 0, 0, 128}, c)

	c, err = ParseColor("#a0b0c0ff")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{0xa0, 0xb0, 0xc0, 0xff}, c)

	_, err = ParseColor("#FF00")
	assert.True(t, errors.Is(err, errors.InvalidColor))
}

func TestStyleRoundTrip(t *testing.T) {
	styles := []Style{
		{PenWidth: 2, Color: color.NRGBA{17, 34, 51, 68}},
		{PenWidth: 0.625, Color: color.NRGBA{0, 0, 0, 255}},
		{PenWidth: 1.0 / 3.0, Color: color.NRGBA{255, 255, 255, 0}},
		{},
	}

	for _, s := range styles {
		decoded, err := ParseStyle(s.String())
		if err != nil {
			t.Errorf("failed to decode %q: %v", s.String(), err)
			continue
		}
		if decoded != s {
			t.Errorf("round trip changed style: %v != %v", decoded, s)
		}
	}
}
