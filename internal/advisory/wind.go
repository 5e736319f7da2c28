package advisory

import "math"

// kphToMps converts km/h to m/s
const kphToMps = 0.277778

// WindBand is a half-open wind speed range [Min, Max) in m/s
type WindBand struct {
	Min         float64
	Max         float64
	Description string
	Tip         string
}

// windBands are ordered, disjoint and gap-free from 0 to +Inf
var windBands = [...]WindBand{
	{Min: 0, Max: 0.3, Description: "🌀 Calm", Tip: "🎣 Ideal for fishing"},
	{Min: 0.3, Max: 1.5, Description: "🌬 Light breeze", Tip: "🎣 Excellent conditions"},
	{Min: 1.5, Max: 3.3, Description: "🍃 Moderate wind", Tip: "🎣 Good bite"},
	{Min: 3.3, Max: 5.4, Description: "🌪 Strong wind", Tip: "🎣 Fish bite cautiously"},
	{Min: 5.4, Max: math.Inf(1), Description: "⚠️ Storm wind", Tip: "❌ Unfavorable for fishing"},
}

// UnknownWind is returned when a speed matches no band
var UnknownWind = WindBand{Description: "🌫 Unknown"}

// KphToMps converts a wind speed from km/h to m/s
func KphToMps(kph float64) float64 {
	return kph * kphToMps
}

// WindBands returns a copy of the wind band table
func WindBands() []WindBand {
	bands := make([]WindBand, len(windBands))
	copy(bands, windBands[:])
	return bands
}

// ClassifyWind returns the first band containing the speed in m/s
func ClassifyWind(mps float64) WindBand {
	for _, band := range windBands {
		if band.Min <= mps && mps < band.Max {
			return band
		}
	}
	return UnknownWind
}
