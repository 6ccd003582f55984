package weather

// UnknownIcon is the sentinel glyph for absent or unrecognized weather codes
const UnknownIcon = "❓"

// weatherIcons maps WMO weather codes from open-meteo to display glyphs.
// Closed table; anything outside falls back to UnknownIcon.
var weatherIcons = map[int]string{
	0:  "☀️",
	1:  "🌤️",
	2:  "⛅",
	3:  "☁️",
	45: "🌫️",
	48: "🌫️",
	51: "🌦️",
	53: "🌦️",
	55: "🌧️",
	61: "🌦️",
	63: "🌧️",
	65: "🌧️",
	66: "🌧️",
	67: "🌧️",
	71: "🌨️",
	73: "🌨️",
	75: "❄️",
	77: "❄️",
	80: "🌧️",
	81: "🌧️",
	82: "⛈️",
	85: "🌨️",
	86: "❄️",
	95: "⛈️",
	96: "⛈️",
	97: "⛈️",
}

// IconForCode returns the glyph for a weather code, or UnknownIcon when the
// code is absent or not in the table.
func IconForCode(code *int) string {
	if code == nil {
		return UnknownIcon
	}
	if icon, ok := weatherIcons[*code]; ok {
		return icon
	}
	return UnknownIcon
}
