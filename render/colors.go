package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/strata/sand"
)

// Palette is the fixed 12-slot category color ramp, green through cyan.
// Category color_index values address into it modulo its length.
var Palette = []sand.RGB{
	{R: 0, G: 176, B: 80},    // Green
	{R: 128, G: 255, B: 0},   // Lime
	{R: 255, G: 255, B: 0},   // Yellow
	{R: 255, G: 204, B: 0},   // Amber
	{R: 255, G: 153, B: 0},   // Orange
	{R: 255, G: 51, B: 0},    // Vermilion
	{R: 255, G: 0, B: 0},     // Red
	{R: 153, G: 0, B: 255},   // Purple
	{R: 102, G: 51, B: 255},  // Violet
	{R: 0, G: 0, B: 255},     // Blue
	{R: 0, G: 153, B: 255},   // Sky
	{R: 0, G: 255, B: 255},   // Cyan
}

// Fallback colors orphaned grains white; Background is the empty-cell
// tone.
var (
	Fallback   = sand.RGB{R: 255, G: 255, B: 255}
	Background = sand.RGB{R: 26, G: 27, B: 38} // Tokyo Night background
)

// RGB color definitions for chrome around the sand pane
var (
	RgbStatusBar   = tcell.NewRGBColor(255, 255, 255) // White
	RgbStatusText  = tcell.NewRGBColor(0, 0, 0)       // Dark text for status
	RgbHint        = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbHeader      = tcell.NewRGBColor(200, 200, 200) // Light gray base
	RgbModalBorder = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbSelectionBg = tcell.NewRGBColor(50, 50, 50)    // Very dark gray
	RgbKarmaGood   = tcell.NewRGBColor(0, 200, 0)     // Normal Green
	RgbKarmaBad    = tcell.NewRGBColor(255, 80, 80)   // Normal Red
	RgbFace        = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbBackground  = ToTcell(Background)
)

// ToTcell converts an engine color to a tcell color.
func ToTcell(c sand.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// PaletteColor returns the tcell color for a palette slot, folded modulo
// the palette length. Negative slots get the fallback.
func PaletteColor(index int) tcell.Color {
	if index < 0 {
		return ToTcell(Fallback)
	}
	return ToTcell(Palette[index%len(Palette)])
}

// NewRenderer builds the sand renderer over the standard palette.
func NewRenderer() *sand.Renderer {
	return sand.NewRenderer(Palette, Fallback, Background)
}
