package sitegen

// Palette is the color scheme applied to a generated site via CSS custom
// properties.
type Palette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// FontPairing names the heading and body font families for a category.
type FontPairing struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Fixed per-category palettes and font pairings. These are part of the
// generated-output contract: tests assert on them and regenerating a site
// with the same inputs must keep producing the same settings.
var (
	PaletteGeneral    = Palette{Primary: "#2563eb", Secondary: "#1e40af", Accent: "#60a5fa"}
	PaletteSpecialist = Palette{Primary: "#0f766e", Secondary: "#134e4a", Accent: "#2dd4bf"}
	PalettePediatric  = Palette{Primary: "#f59e0b", Secondary: "#d97706", Accent: "#fcd34d"}
	PaletteClinic     = Palette{Primary: "#7c3aed", Secondary: "#5b21b6", Accent: "#a78bfa"}

	FontsGeneral    = FontPairing{Heading: "Merriweather, serif", Body: "Open Sans, sans-serif"}
	FontsSpecialist = FontPairing{Heading: "Playfair Display, serif", Body: "Lato, sans-serif"}
	FontsPediatric  = FontPairing{Heading: "Quicksand, sans-serif", Body: "Nunito, sans-serif"}
	FontsClinic     = FontPairing{Heading: "Montserrat, sans-serif", Body: "Roboto, sans-serif"}
)
