package domain

import "math"

const (
	lightText = "#FFF"
	darkText  = "#000"
)

// EPACategory describes one step of the EPA air-quality index
type EPACategory struct {
	Index     int    `json:"index"`
	Label     string `json:"label"`
	Color     string `json:"color"`
	TextColor string `json:"text_color"`
}

// epaCategories is indexed by the ordinal EPA value; entry 0 doubles as the unknown category.
var epaCategories = []EPACategory{
	{Index: 0, Label: "N/A", Color: "#BDC3C7", TextColor: lightText},
	{Index: 1, Label: "Good", Color: "#00E400", TextColor: lightText},
	{Index: 2, Label: "Moderate", Color: "#FFFF00", TextColor: darkText},
	{Index: 3, Label: "Unhealthy for Sensitive Groups", Color: "#FF7E00", TextColor: lightText},
	{Index: 4, Label: "Unhealthy", Color: "#FF0000", TextColor: lightText},
	{Index: 5, Label: "Very Unhealthy", Color: "#8F3F97", TextColor: lightText},
	{Index: 6, Label: "Hazardous", Color: "#7E0023", TextColor: lightText},
}

// MaxEPAIndex is the highest valid EPA index
const MaxEPAIndex = 6

// EPAInfo returns the category for an EPA index, or the N/A category when out of range
func EPAInfo(index int) EPACategory {
	if index < 0 || index >= len(epaCategories) {
		return epaCategories[0]
	}
	return epaCategories[index]
}

// PM25Band is a PM2.5 concentration range (µg/m³) with its display colours
type PM25Band struct {
	Label     string  `json:"label"`
	Color     string  `json:"color"`
	TextColor string  `json:"text_color"`
	Max       float64 `json:"-"`
}

// pm25Bands are ordered by inclusive upper bound.
var pm25Bands = []PM25Band{
	{Max: 12, Label: "Good", Color: "#00E400", TextColor: lightText},
	{Max: 35.4, Label: "Moderate", Color: "#FFFF00", TextColor: darkText},
	{Max: 55.4, Label: "Unhealthy for Sensitive Groups", Color: "#FF7E00", TextColor: lightText},
	{Max: 150.4, Label: "Unhealthy", Color: "#FF0000", TextColor: lightText},
	{Max: 250.4, Label: "Very Unhealthy", Color: "#8F3F97", TextColor: lightText},
	{Max: math.Inf(1), Label: "Hazardous", Color: "#7E0023", TextColor: lightText},
}

// PM25BandFor returns the band containing the given concentration
func PM25BandFor(pm25 float64) PM25Band {
	for _, b := range pm25Bands {
		if pm25 <= b.Max {
			return b
		}
	}
	return pm25Bands[len(pm25Bands)-1]
}

// DefaultThreshold is the WHO 24-hour PM2.5 guideline (µg/m³) stored with new favorites
const DefaultThreshold = 25.0
