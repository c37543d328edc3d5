package render

import "image/color"

var (
	colorBackground = rgb(0x14, 0x18, 0x21)
	colorPanel      = rgb(0x1C, 0x22, 0x2E)
	colorPanelAlt   = rgb(0x21, 0x28, 0x38)
	colorText       = rgb(0xEC, 0xEF, 0xF4)
	colorMuted      = rgb(0xB0, 0xBE, 0xC5)
	colorGrid       = rgb(0x2A, 0x32, 0x41)

	ColorGold    = rgb(0xFF, 0xD7, 0x00)
	ColorSilver  = rgb(0xC0, 0xC0, 0xC0)
	ColorBronze  = rgb(0xCD, 0x7F, 0x32)
	ColorNeutral = colorMuted
)

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// RankColor returns the highlight for podium places and the muted colour for
// everyone else. rank is 1-based.
func RankColor(rank int) color.RGBA {
	switch rank {
	case 1:
		return ColorGold
	case 2:
		return ColorSilver
	case 3:
		return ColorBronze
	default:
		return ColorNeutral
	}
}
