// Package resources serves the static crisis-resource directory: hotlines,
// support organizations and emergency numbers, keyed by location with
// Jamaica as the default.
package resources

// Hotline is a phone line with its availability window.
type Hotline struct {
	Name      string `json:"name"`
	Number    string `json:"number"`
	Available string `json:"available"`
}

// Organization is a support organization with a contact point.
type Organization struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// Emergency holds the short-dial emergency numbers.
type Emergency struct {
	Police    string `json:"police"`
	Ambulance string `json:"ambulance"`
	Fire      string `json:"fire"`
}

// Directory is the crisis-resource listing for one location.
type Directory struct {
	Location      string         `json:"location"`
	Hotlines      []Hotline      `json:"hotlines"`
	Organizations []Organization `json:"organizations"`
	Emergency     Emergency      `json:"emergency"`
}

// DefaultLocation is used when a caller asks for an unknown location.
const DefaultLocation = "Jamaica"

var directories = map[string]Directory{
	"Jamaica": {
		Location: "Jamaica",
		Hotlines: []Hotline{
			{Name: "Suicide Prevention Helpline", Number: "876-XXX-XXXX", Available: "24/7"},
			{Name: "Bellevue Hospital Crisis Line", Number: "876-XXX-XXXX", Available: "24/7"},
			{Name: "Women's Crisis Centre", Number: "876-929-2997", Available: "24/7"},
		},
		Organizations: []Organization{
			{Name: "Jamaica AIDS Support for Life (JASL)", Contact: "info@jasl.org.jm"},
			{Name: "Peace Management Initiative (PMI)", Contact: "pmi@example.com"},
			{Name: "Eve for Life", Contact: "eveforlife@example.com"},
		},
		Emergency: Emergency{
			Police:    "119",
			Ambulance: "110",
			Fire:      "110",
		},
	},
}

// ForLocation returns the directory for a location, falling back to the
// Jamaica-wide listing.
func ForLocation(location string) Directory {
	if dir, ok := directories[location]; ok {
		return dir
	}
	return directories[DefaultLocation]
}
