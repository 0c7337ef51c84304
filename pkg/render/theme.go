package render

// Theme selects a color scheme.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// palette holds the colors a chart needs.
type palette struct {
	Background string
	Grid       string
	Axis       string
	Text       string
	TextMuted  string
	Series     string
}

var lightPalette = palette{
	Background: "#fafaf9", // stone-50.
	Grid:       "#e7e5e4", // stone-200.
	Axis:       "#a8a29e", // stone-400.
	Text:       "#44403c", // stone-700.
	TextMuted:  "#78716c", // stone-500.
	Series:     "#a16207", // amber-700.
}

var darkPalette = palette{
	Background: "#0c0a09", // stone-950.
	Grid:       "#44403c", // stone-700.
	Axis:       "#57534e", // stone-600.
	Text:       "#d6d3d1", // stone-300.
	TextMuted:  "#a8a29e", // stone-400.
	Series:     "#d97706", // amber-600.
}

func paletteFor(t Theme) palette {
	if t == ThemeDark {
		return darkPalette
	}

	return lightPalette
}
