package render

import "github.com/citelab/citeboard/internal/chart"

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// ANSI 256-color ramps for the named palettes. Bars and slices cycle
// through their palette in point order.
var palettes = map[string][]string{
	chart.PaletteBlues: {
		"\x1b[38;5;27m", "\x1b[38;5;33m", "\x1b[38;5;39m",
		"\x1b[38;5;45m", "\x1b[38;5;81m", "\x1b[38;5;117m",
	},
	chart.PaletteTeal: {
		"\x1b[38;5;30m", "\x1b[38;5;36m", "\x1b[38;5;42m",
		"\x1b[38;5;43m", "\x1b[38;5;79m", "\x1b[38;5;115m",
	},
	chart.PalettePurples: {
		"\x1b[38;5;93m", "\x1b[38;5;99m", "\x1b[38;5;105m",
		"\x1b[38;5;141m", "\x1b[38;5;147m", "\x1b[38;5;183m",
	},
	chart.PalettePastel: {
		"\x1b[38;5;110m", "\x1b[38;5;150m", "\x1b[38;5;180m",
		"\x1b[38;5;216m", "\x1b[38;5;222m", "\x1b[38;5;146m",
	},
	chart.PaletteSet3: {
		"\x1b[38;5;108m", "\x1b[38;5;179m", "\x1b[38;5;146m",
		"\x1b[38;5;174m", "\x1b[38;5;109m", "\x1b[38;5;222m",
		"\x1b[38;5;139m", "\x1b[38;5;181m",
	},
}

func paletteColors(name string) []string {
	if colors, ok := palettes[name]; ok {
		return colors
	}
	return palettes[chart.PaletteBlues]
}

func colorAt(palette string, idx int) string {
	colors := paletteColors(palette)
	return colors[idx%len(colors)]
}
