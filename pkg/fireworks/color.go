package fireworks

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	heartSaturation = 0.8
	heartLightness  = 0.7
	glowLightness   = 0.5
)

// HSL converts hue (degrees, any range), saturation and lightness ([0,1]) to
// an opaque colour.
func HSL(hue, saturation, lightness float64) color.NRGBA {
	c := colorful.Hsl(normalizeHue(hue), saturation, lightness).Clamped()
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// ParticleColor is the fill and trail colour for a hue: hsl(hue, 80%, 70%).
func ParticleColor(hue float64) color.NRGBA {
	return HSL(hue, heartSaturation, heartLightness)
}

// GlowColor is the shadow colour for a hue: hsl(hue, 80%, 50%).
func GlowColor(hue float64) color.NRGBA {
	return HSL(hue, heartSaturation, glowLightness)
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// ParseHue extracts the hue from a CSS-style "hsl(h, s%, l%)" or
// "hsla(...)" string.
func ParseHue(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	var body string
	switch {
	case strings.HasPrefix(s, "hsla("):
		body = strings.TrimPrefix(s, "hsla(")
	case strings.HasPrefix(s, "hsl("):
		body = strings.TrimPrefix(s, "hsl(")
	default:
		return 0, false
	}

	first, _, _ := strings.Cut(body, ",")
	first = strings.TrimSuffix(strings.TrimSpace(first), ")")
	first = strings.TrimSuffix(first, "deg")

	h, err := strconv.ParseFloat(strings.TrimSpace(first), 64)
	if err != nil {
		return 0, false
	}
	return h, true
}

// paletteHues parses every usable palette entry.
func paletteHues(palette []string) []float64 {
	hues := make([]float64, 0, len(palette))
	for _, entry := range palette {
		if h, ok := ParseHue(entry); ok {
			hues = append(hues, h)
		}
	}
	return hues
}
