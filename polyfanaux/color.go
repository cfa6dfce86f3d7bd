package polyfanaux

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses "#rrggbb", "#rrggbbaa" or an SVG 1.1 color name such as "teal"
// into normalized RGBA components.
func ParseColor(s string) ([4]float32, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		c, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return [4]float32{}, fmt.Errorf("unknown color name %q", s)
		}
		return rgbaToFloat(c), nil
	}
	b, err := hex.DecodeString(s[1:])
	if err != nil {
		return [4]float32{}, fmt.Errorf("bad hex color %q: %w", s, err)
	}
	switch len(b) {
	case 3:
		return rgbaToFloat(color.RGBA{R: b[0], G: b[1], B: b[2], A: 255}), nil
	case 4:
		return rgbaToFloat(color.RGBA{R: b[0], G: b[1], B: b[2], A: b[3]}), nil
	}
	return [4]float32{}, fmt.Errorf("hex color %q must have 6 or 8 digits", s)
}

func rgbaToFloat(c color.RGBA) [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}
