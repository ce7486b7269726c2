// Package theme defines the visual style of the wheel: the sector
// palette, fixed colors, label fonts and the metrics the painter uses.
package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/elizafairlady/go-wheel/draw"
)

// Theme holds the visual defaults for painting a wheel.
type Theme struct {
	// Sector colors, assigned cyclically by active-set position.
	Palette []draw.Color

	Background  draw.Color
	Placeholder draw.Color // empty-wheel disc
	Prompt      draw.Color // empty-wheel message
	Stroke      draw.Color // sector separators
	Label       draw.Color
	Hub         draw.Color
	Pointer     draw.Color
	Banner      draw.Color
	BannerText  draw.Color

	LabelFont  draw.Font
	PromptFont draw.Font
	BannerFont draw.Font

	EmptyMessage string

	// Metrics (in pixels unless noted)
	Margin      int // between the canvas edge and the rim
	StrokeW     int // separator thickness, as Line's thick
	HubRadius   int
	LabelRadius float64 // fraction of the wheel radius
	PointerLen  int     // pointer height
	PointerHalf int     // half the pointer's base
}

// Default returns the classic Wheel of Names look.
func Default() *Theme {
	return &Theme{
		Palette: []draw.Color{
			0xFF6B6BFF, 0x4ECDC4FF, 0x45B7D1FF, 0x96CEB4FF, 0xFFEAA7FF,
			0xDDA0DDFF, 0x98D8E8FF, 0xF7DC6FFF, 0xBB8FCEFF, 0x85C1E9FF,
			0xF8C471FF, 0x82E0AAFF, 0xF1948AFF, 0x85C1E9FF, 0xD7BDE2FF,
		},
		Background:  draw.DWhite,
		Placeholder: 0xF0F0F0FF,
		Prompt:      0x666666FF,
		Stroke:      draw.DWhite,
		Label:       draw.DWhite,
		Hub:         draw.DAcmeText,
		Pointer:     draw.DAcmeText,
		Banner:      draw.DAcmeYellow,
		BannerText:  draw.DAcmeText,

		LabelFont:  draw.Font{Size: 16, Bold: true},
		PromptFont: draw.Font{Size: 20},
		BannerFont: draw.Font{Size: 22, Bold: true},

		EmptyMessage: "Add names to spin!",

		Margin:      30,
		StrokeW:     1,
		HubRadius:   20,
		LabelRadius: 0.7,
		PointerLen:  24,
		PointerHalf: 15,
	}
}

// Color returns the palette color for active-set position i.
func (t *Theme) Color(i int) draw.Color {
	if len(t.Palette) == 0 {
		return draw.DAcmeDim
	}
	return t.Palette[i%len(t.Palette)]
}

// ParseColor parses a color string. Supports:
//   - Named colors: "black", "white", "red", etc.
//   - Hex: "0xFF0000FF" (RRGGBBAA)
//   - Web hex: "#FF0000" or "#FF0000FF"
func ParseColor(s string) (draw.Color, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "black":
		return draw.DBlack, nil
	case "white":
		return draw.DWhite, nil
	case "red":
		return draw.DRed, nil
	case "green":
		return draw.DGreen, nil
	case "blue":
		return draw.DBlue, nil
	case "paleyellow":
		return draw.DPaleyellow, nil
	case "greyblue":
		return draw.DGreyblue, nil
	case "acmeyellow":
		return draw.DAcmeYellow, nil
	case "acmeborder":
		return draw.DAcmeBorder, nil
	case "acmetext":
		return draw.DAcmeText, nil
	case "acmedim":
		return draw.DAcmeDim, nil
	}

	var digits string
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		digits = s[2:]
		if len(digits) != 8 {
			return 0, fmt.Errorf("theme: color %q: want 8 hex digits", s)
		}
	case strings.HasPrefix(s, "#"):
		digits = s[1:]
		switch len(digits) {
		case 6:
			digits += "FF"
		case 8:
		default:
			return 0, fmt.Errorf("theme: color %q: want #RRGGBB or #RRGGBBAA", s)
		}
	default:
		return 0, fmt.Errorf("theme: unknown color %q", s)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("theme: color %q: %w", s, err)
	}
	return draw.Color(v), nil
}
