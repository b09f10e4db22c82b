package theme

const (
	Classic = "classic"
	Modern  = "modern"
	Warm    = "warm"
	Elegant = "elegant"

	Default = Classic
)

// Values is the resolved visual tuple of a preset.
type Values struct {
	FontFamily      string
	PrimaryColor    string
	SecondaryColor  string
	BackgroundColor string
	TextColor       string
	AccentColor     string
	BorderRadius    string
}

type Info struct {
	Name        string
	Title       string
	Description string
}

var presets = map[string]Values{
	Classic: {
		FontFamily:      "'Inter', Arial, sans-serif",
		PrimaryColor:    "#1f2937",
		SecondaryColor:  "#4b5563",
		BackgroundColor: "#ffffff",
		TextColor:       "#374151",
		AccentColor:     "#3b82f6",
		BorderRadius:    "4px",
	},
	Modern: {
		FontFamily:      "'Inter', sans-serif",
		PrimaryColor:    "#4f46e5",
		SecondaryColor:  "#6366f1",
		BackgroundColor: "#f9fafb",
		TextColor:       "#111827",
		AccentColor:     "#4f46e5",
		BorderRadius:    "8px",
	},
	Warm: {
		FontFamily:      "Georgia, serif",
		PrimaryColor:    "#92400e",
		SecondaryColor:  "#b45309",
		BackgroundColor: "#fffbeb",
		TextColor:       "#78350f",
		AccentColor:     "#d97706",
		BorderRadius:    "6px",
	},
	Elegant: {
		FontFamily:      "'Inter', sans-serif",
		PrimaryColor:    "#18181b",
		SecondaryColor:  "#3f3f46",
		BackgroundColor: "#fafafa",
		TextColor:       "#27272a",
		AccentColor:     "#a855f7",
		BorderRadius:    "2px",
	},
}

var catalog = []Info{
	{Name: Classic, Title: "Klassisch", Description: "Zeitlos und professionell, passt zu jedem Geschäft"},
	{Name: Modern, Title: "Modern", Description: "Frisch und zeitgemäss, für innovative Unternehmen"},
	{Name: Warm, Title: "Warm", Description: "Einladend und persönlich, für Handwerk und Gastronomie"},
	{Name: Elegant, Title: "Elegant", Description: "Zurückhaltend und hochwertig, für Premium-Angebote"},
}

// Lookup resolves a preset id.
func Lookup(preset string) (Values, bool) {
	v, ok := presets[preset]
	return v, ok
}

// Resolve resolves a preset id, falling back to the default preset for
// unknown ids. The returned name is the preset actually used.
func Resolve(preset string) (string, Values) {
	if v, ok := presets[preset]; ok {
		return preset, v
	}
	return Default, presets[Default]
}

func Known(preset string) bool {
	_, ok := presets[preset]
	return ok
}

// All returns the catalog in display order.
func All() []Info {
	return append([]Info(nil), catalog...)
}
