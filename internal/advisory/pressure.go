// Package advisory turns a weather observation into a fishing-conditions report
package advisory

// Favorability indicates how a weather factor affects the bite
type Favorability int

const (
	FavorabilityUnknown Favorability = iota
	Favorable
	Neutral
	Unfavorable
)

// Pressure band boundaries in millibars
const (
	lowPressureBelow  = 1000.0
	highPressureAbove = 1010.0
)

// PressureBand classifies barometric pressure
type PressureBand struct {
	Level        string // Short label: low, medium or high
	Verdict      string // Favorability indicator shown to the user
	Favorability Favorability
}

var (
	PressureLow     = PressureBand{Level: "low", Verdict: "🟢 Favorable", Favorability: Favorable}
	PressureMedium  = PressureBand{Level: "medium", Verdict: "🟡 Normal", Favorability: Neutral}
	PressureHigh    = PressureBand{Level: "high", Verdict: "🔴 Unfavorable", Favorability: Unfavorable}
	UnknownPressure = PressureBand{Level: "unknown", Verdict: "⚪ Unknown", Favorability: FavorabilityUnknown}
)

// ClassifyPressure maps a pressure value to its band.
// Below 1000 is low, 1000 to 1010 inclusive is medium, above 1010 is high.
func ClassifyPressure(mb float64) PressureBand {
	switch {
	case mb < lowPressureBelow:
		return PressureLow
	case mb <= highPressureAbove:
		return PressureMedium
	case mb > highPressureAbove:
		return PressureHigh
	default:
		// NaN
		return UnknownPressure
	}
}
