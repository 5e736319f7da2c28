package advisory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abelzeko/fishing-bot/internal/entities"
	"github.com/abelzeko/fishing-bot/internal/markup"
)

const (
	ratingGlyph = "⭐"
	maxRating   = 5
)

// Report is a rendered fishing-conditions report for one water body
type Report struct {
	WaterBody    string
	Text         string // HTML-formatted message text
	Pressure     PressureBand
	Wind         WindBand
	WindSpeedMps float64
}

// BuildReport combines a water body's static data with a weather observation.
// It returns false when the observation could not be fetched; no partial
// report is produced in that case. Logging the cause is left to the caller.
func BuildReport(wb entities.WaterBody, obs *entities.WeatherObservation, fetchErr error) (*Report, bool) {
	if fetchErr != nil || obs == nil {
		return nil, false
	}

	windSpeed := KphToMps(obs.WindKph)
	pressure := ClassifyPressure(obs.PressureMb)
	wind := ClassifyWind(windSpeed)

	var result strings.Builder
	result.WriteString(fmt.Sprintf("🌊 %s\n", markup.Bold(wb.Name)))
	result.WriteString(fmt.Sprintf("📍 Depth: %s\n", markup.Escape(wb.Depth)))
	result.WriteString(fmt.Sprintf("🐟 Fish: %s\n\n", markup.Escape(strings.Join(wb.FishTypes, ", "))))

	result.WriteString(fmt.Sprintf("🎣 %s\n", markup.Bold("Bite forecast:")))
	result.WriteString(fmt.Sprintf("⭐ Rating: %s\n", stars(wb.FishRating)))
	result.WriteString(fmt.Sprintf("⏲ Pressure: %s hPa (%s) %s\n", formatNumber(obs.PressureMb), pressure.Level, pressure.Verdict))
	if wind.Tip != "" {
		result.WriteString(fmt.Sprintf("%s - %s\n\n", wind.Description, wind.Tip))
	} else {
		result.WriteString(wind.Description + "\n\n")
	}

	result.WriteString(fmt.Sprintf("🌡 Temperature: %s°C\n", formatNumber(obs.TempC)))
	result.WriteString(fmt.Sprintf("💨 Wind: %.1f m/s (%s)\n", windSpeed, markup.Escape(obs.WindDir)))
	result.WriteString(fmt.Sprintf("💧 Humidity: %d%%\n\n", obs.Humidity))

	result.WriteString(fmt.Sprintf("🕒 Updated: %s", markup.Escape(obs.LastUpdated)))

	return &Report{
		WaterBody:    wb.Name,
		Text:         result.String(),
		Pressure:     pressure,
		Wind:         wind,
		WindSpeedMps: windSpeed,
	}, true
}

// stars renders the rating, clamped to 0..5
func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > maxRating {
		rating = maxRating
	}
	return strings.Repeat(ratingGlyph, rating)
}

// formatNumber prints a value without trailing zeros, e.g. 1005 or 1005.5
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
