package render

import "github.com/gdamore/tcell/v2"

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbHudText    = tcell.NewRGBColor(255, 255, 255) // White
	RgbHudDim     = tcell.NewRGBColor(140, 140, 160) // Labels
	RgbStatusBar  = tcell.NewRGBColor(40, 42, 58)    // Status line background

	RgbLife      = tcell.NewRGBColor(255, 80, 80)   // Remaining lives
	RgbCombo     = tcell.NewRGBColor(255, 165, 0)   // Orange combo counter
	RgbBanner    = tcell.NewRGBColor(255, 255, 120) // Banner text
	RgbGameOver  = tcell.NewRGBColor(255, 0, 0)     // Round over overlay
	RgbPaused    = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbHazard    = tcell.NewRGBColor(255, 60, 60)   // Hazard glyph
	RgbHazardBg  = tcell.NewRGBColor(60, 10, 10)    // Hazard halo
	RgbBonus     = tcell.NewRGBColor(255, 215, 0)   // Gold bonus item
	RgbBonusBg   = tcell.NewRGBColor(70, 55, 0)     // Bonus halo
	RgbTrailHead = tcell.NewRGBColor(255, 255, 255) // Newest blade sample
	RgbTrailTail = tcell.NewRGBColor(90, 90, 110)   // Oldest blade sample

	RgbAudioMuted   = tcell.NewRGBColor(255, 0, 0)   // Bright red when muted
	RgbAudioUnmuted = tcell.NewRGBColor(0, 255, 0)   // Bright green when unmuted
	RgbModeBg       = tcell.NewRGBColor(128, 0, 128) // Active mode chips
)

// TintColor converts a 0xRRGGBB tint to a terminal colour; zero falls back to white
func TintColor(tint uint32) tcell.Color {
	if tint == 0 {
		return RgbHudText
	}
	return tcell.NewHexColor(int32(tint & 0xFFFFFF))
}

// Lerp blends two RGB colours; t is clamped to [0,1]
func Lerp(a, b tcell.Color, t float64) tcell.Color {
	t = max(0, min(1, t))
	ar, ag, ab := a.RGB()
	br, bg, bb := b.RGB()
	mix := func(x, y int32) int32 { return x + int32(float64(y-x)*t) }
	return tcell.NewRGBColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}
