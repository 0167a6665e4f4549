package domain

import "strings"

// KnownLocations lists the area identifiers the lookup tables ship with.
// Buyers pick from these, but free-form values survive comparison through
// NormalizeLocation.
var KnownLocations = []string{
	"New Cairo", "Zamalek", "Heliopolis", "Maadi", "Nasr City",
	"6th of October", "Sheikh Zayed", "New Capital", "Mohandessin", "Dokki",
	"Giza", "Alexandria", "North Coast", "Ain Sokhna", "El Gouna",
	"Madinaty", "El Rehab", "Shorouk", "Obour", "Mostakbal City",
}

// locationAliases folds common spellings, abbreviations and Arabic names
// into the canonical identifier used across listings and buyer preferences.
var locationAliases = map[string]string{
	"new cairo":          "New Cairo",
	"القاهرة الجديدة":    "New Cairo",
	"tagamoa":            "New Cairo",
	"التجمع الخامس":      "New Cairo",
	"zamalek":            "Zamalek",
	"الزمالك":            "Zamalek",
	"heliopolis":         "Heliopolis",
	"masr el gedida":     "Heliopolis",
	"مصر الجديدة":        "Heliopolis",
	"maadi":              "Maadi",
	"المعادي":            "Maadi",
	"nasr city":          "Nasr City",
	"مدينة نصر":          "Nasr City",
	"6 october":          "6th of October",
	"6th october":        "6th of October",
	"october":            "6th of October",
	"السادس من أكتوبر":   "6th of October",
	"أكتوبر":             "6th of October",
	"sheikh zayed":       "Sheikh Zayed",
	"zayed":              "Sheikh Zayed",
	"الشيخ زايد":         "Sheikh Zayed",
	"new capital":        "New Capital",
	"العاصمة الإدارية":   "New Capital",
	"administrative capital": "New Capital",
	"alex":               "Alexandria",
	"alexandria":         "Alexandria",
	"الإسكندرية":         "Alexandria",
	"north coast":        "North Coast",
	"sahel":              "North Coast",
	"الساحل الشمالي":     "North Coast",
}

// NormalizeLocation folds a location identifier to its canonical form.
// Unknown values are trimmed and title-cased on the first rune only, so two
// free-form spellings still compare equal case-insensitively.
func NormalizeLocation(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return ""
	}
	if canonical, ok := locationAliases[strings.ToLower(location)]; ok {
		return canonical
	}
	runes := []rune(location)
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}

// LocationsMatch reports whether two location identifiers refer to the same
// area after normalization. Empty values never match anything.
func LocationsMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(NormalizeLocation(a), NormalizeLocation(b))
}
