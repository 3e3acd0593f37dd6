package printers

import (
	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/agenda/pkg/category"
)

type ansi struct {
	attr color.Attribute
	hex  string
}

// xterm defaults for the 16 basic colours.
var (
	normalPalette = []ansi{
		{color.FgBlack, "#000000"},
		{color.FgRed, "#cd0000"},
		{color.FgGreen, "#00cd00"},
		{color.FgYellow, "#cdcd00"},
		{color.FgBlue, "#0000ee"},
		{color.FgMagenta, "#cd00cd"},
		{color.FgCyan, "#00cdcd"},
		{color.FgWhite, "#e5e5e5"},
	}
	brightPalette = []ansi{
		{color.FgHiBlack, "#7f7f7f"},
		{color.FgHiRed, "#ff0000"},
		{color.FgHiGreen, "#00ff00"},
		{color.FgHiYellow, "#ffff00"},
		{color.FgHiBlue, "#5c5cff"},
		{color.FgHiMagenta, "#ff00ff"},
		{color.FgHiCyan, "#00ffff"},
		{color.FgHiWhite, "#ffffff"},
	}
)

// Nearest returns the basic terminal colour closest to hex in Lab space.
// Bright colours are used on dark backgrounds. Unparseable input yields the
// default foreground.
func Nearest(hex string, dark bool) color.Attribute {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.Reset
	}
	palette := normalPalette
	if dark {
		palette = brightPalette
	}
	best := palette[0].attr
	bestDist := -1.0
	for _, p := range palette {
		pc, _ := colorful.Hex(p.hex)
		if d := c.DistanceLab(pc); bestDist < 0 || d < bestDist {
			best, bestDist = p.attr, d
		}
	}
	return best
}

func (pp *PrettyPrint) categoryColor(id category.ID, extra ...color.Attribute) *color.Color {
	attrs := append([]color.Attribute{Nearest(category.ColorOf(id), pp.Dark)}, extra...)
	return color.New(attrs...)
}

func (pp *PrettyPrint) priorityColor(p category.Priority) *color.Color {
	return color.New(Nearest(p.Info().Border, pp.Dark), color.Bold)
}
