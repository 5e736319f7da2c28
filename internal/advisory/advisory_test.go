package advisory

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/abelzeko/fishing-bot/internal/entities"
)

func TestClassifyPressure(t *testing.T) {
	tests := []struct {
		name     string
		pressure float64
		want     PressureBand
	}{
		{"far below", 950, PressureLow},
		{"just below 1000", 999.99, PressureLow},
		{"lower medium boundary", 1000, PressureMedium},
		{"middle", 1005, PressureMedium},
		{"upper medium boundary", 1010, PressureMedium},
		{"just above 1010", 1010.01, PressureHigh},
		{"far above", 1040, PressureHigh},
		{"negative infinity", math.Inf(-1), PressureLow},
		{"positive infinity", math.Inf(1), PressureHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyPressure(tt.pressure); got != tt.want {
				t.Errorf("ClassifyPressure(%v) = %+v, want %+v", tt.pressure, got, tt.want)
			}
		})
	}
}

func TestClassifyPressureNaN(t *testing.T) {
	if got := ClassifyPressure(math.NaN()); got != UnknownPressure {
		t.Errorf("ClassifyPressure(NaN) = %+v, want unknown band", got)
	}
}

func TestClassifyPressurePartition(t *testing.T) {
	// Walk across both boundaries in small steps; every value must land in
	// exactly one band and the sequence must never go backwards.
	order := map[string]int{"low": 0, "medium": 1, "high": 2}
	prev := 0
	for p := 990.0; p <= 1020.0; p += 0.05 {
		band := ClassifyPressure(p)
		idx, ok := order[band.Level]
		if !ok {
			t.Fatalf("ClassifyPressure(%v) returned unexpected band %q", p, band.Level)
		}
		if idx < prev {
			t.Fatalf("ClassifyPressure(%v) went back from band %d to %d", p, prev, idx)
		}
		prev = idx
	}
}

func TestClassifyWind(t *testing.T) {
	tests := []struct {
		speed float64
		want  string
	}{
		{0, "🌀 Calm"},
		{0.29, "🌀 Calm"},
		{0.3, "🌬 Light breeze"},
		{1.49, "🌬 Light breeze"},
		{1.5, "🍃 Moderate wind"},
		{3.0, "🍃 Moderate wind"},
		{3.3, "🌪 Strong wind"},
		{5.39, "🌪 Strong wind"},
		{5.4, "⚠️ Storm wind"},
		{40, "⚠️ Storm wind"},
	}

	for _, tt := range tests {
		if got := ClassifyWind(tt.speed); got.Description != tt.want {
			t.Errorf("ClassifyWind(%v) = %q, want %q", tt.speed, got.Description, tt.want)
		}
	}
}

func TestClassifyWindUnknown(t *testing.T) {
	for _, speed := range []float64{-1, math.NaN()} {
		got := ClassifyWind(speed)
		if got != UnknownWind {
			t.Errorf("ClassifyWind(%v) = %+v, want unknown band", speed, got)
		}
		if got.Tip != "" {
			t.Errorf("ClassifyWind(%v) tip = %q, want empty", speed, got.Tip)
		}
	}
}

func TestWindBandsAreContiguous(t *testing.T) {
	bands := WindBands()
	if len(bands) != 5 {
		t.Fatalf("expected 5 wind bands, got %d", len(bands))
	}
	if bands[0].Min != 0 {
		t.Errorf("first band starts at %v, want 0", bands[0].Min)
	}
	for i := 1; i < len(bands); i++ {
		if bands[i].Min != bands[i-1].Max {
			t.Errorf("gap or overlap between band %d and %d: %v vs %v", i-1, i, bands[i-1].Max, bands[i].Min)
		}
	}
	if !math.IsInf(bands[len(bands)-1].Max, 1) {
		t.Errorf("last band must end at +Inf, got %v", bands[len(bands)-1].Max)
	}

	// Mutating the copy must not affect classification
	bands[0].Description = "changed"
	if ClassifyWind(0).Description != "🌀 Calm" {
		t.Error("WindBands() exposed the internal table")
	}
}

func TestKphToMps(t *testing.T) {
	if got := KphToMps(36); math.Abs(got-10.0) > 0.01 {
		t.Errorf("KphToMps(36) = %v, want about 10.0", got)
	}
	if got := KphToMps(0); got != 0 {
		t.Errorf("KphToMps(0) = %v, want 0", got)
	}
	if got := KphToMps(72); math.Abs(got-2*KphToMps(36)) > 1e-9 {
		t.Errorf("KphToMps is not linear: KphToMps(72) = %v", got)
	}
}

func lakeA() entities.WaterBody {
	return entities.WaterBody{
		Name:       "Lake A",
		Latitude:   60.6,
		Longitude:  43.45,
		FishRating: 4,
		Depth:      "4-8 m",
		FishTypes:  []string{"pike", "perch"},
		PhotoURL:   "https://example.com/lake-a.jpg",
	}
}

func lakeAWeather() *entities.WeatherObservation {
	return &entities.WeatherObservation{
		PressureMb:  1005,
		WindKph:     10.8,
		WindDir:     "N",
		TempC:       15,
		Humidity:    60,
		LastUpdated: "2024-01-01 12:00",
	}
}

func TestBuildReportScenario(t *testing.T) {
	report, ok := BuildReport(lakeA(), lakeAWeather(), nil)
	if !ok || report == nil {
		t.Fatal("BuildReport returned no report for a valid observation")
	}

	if report.Pressure != PressureMedium {
		t.Errorf("pressure band = %+v, want medium", report.Pressure)
	}
	if report.Wind.Description != "🍃 Moderate wind" {
		t.Errorf("wind band = %q, want moderate", report.Wind.Description)
	}
	if math.Abs(report.WindSpeedMps-3.0) > 0.01 {
		t.Errorf("wind speed = %v, want about 3.0", report.WindSpeedMps)
	}

	// Fields must appear in this order
	fields := []string{
		"<b>Lake A</b>",
		"4-8 m",
		"pike, perch",
		"Rating: ⭐⭐⭐⭐\n",
		"1005 hPa (medium) 🟡 Normal",
		"🍃 Moderate wind - 🎣 Good bite",
		"15°C",
		"3.0 m/s (N)",
		"60%",
		"2024-01-01 12:00",
	}
	pos := 0
	for _, field := range fields {
		idx := strings.Index(report.Text[pos:], field)
		if idx < 0 {
			t.Fatalf("field %q missing or out of order in report:\n%s", field, report.Text)
		}
		pos += idx + len(field)
	}

	if strings.Count(report.Text, "⭐") != 5 {
		t.Errorf("expected the rating label plus four stars, got report:\n%s", report.Text)
	}
}

func TestBuildReportIsIdempotent(t *testing.T) {
	first, _ := BuildReport(lakeA(), lakeAWeather(), nil)
	second, _ := BuildReport(lakeA(), lakeAWeather(), nil)
	if first.Text != second.Text {
		t.Errorf("BuildReport produced different text for identical input:\n%s\n---\n%s", first.Text, second.Text)
	}
}

func TestBuildReportFetchFailure(t *testing.T) {
	report, ok := BuildReport(lakeA(), nil, errors.New("timeout"))
	if ok || report != nil {
		t.Errorf("BuildReport returned a report despite fetch failure: %+v", report)
	}

	report, ok = BuildReport(lakeA(), lakeAWeather(), errors.New("status 500"))
	if ok || report != nil {
		t.Error("BuildReport must not emit a report when an error accompanies the observation")
	}

	report, ok = BuildReport(lakeA(), nil, nil)
	if ok || report != nil {
		t.Error("BuildReport must not emit a report without an observation")
	}
}

func TestBuildReportPressureBoundary(t *testing.T) {
	obs := lakeAWeather()
	obs.PressureMb = 1000
	report, ok := BuildReport(lakeA(), obs, nil)
	if !ok {
		t.Fatal("expected a report")
	}
	if report.Pressure != PressureMedium {
		t.Errorf("1000 mb classified as %q, want medium", report.Pressure.Level)
	}
}

func TestBuildReportCalmWind(t *testing.T) {
	obs := lakeAWeather()
	obs.WindKph = 0
	report, ok := BuildReport(lakeA(), obs, nil)
	if !ok {
		t.Fatal("expected a report")
	}
	if !strings.Contains(report.Text, "🌀 Calm - 🎣 Ideal for fishing") {
		t.Errorf("calm band missing from report:\n%s", report.Text)
	}
	if !strings.Contains(report.Text, "0.0 m/s (N)") {
		t.Errorf("wind speed not rendered with one decimal:\n%s", report.Text)
	}
}

func TestBuildReportUnknownWindDegrades(t *testing.T) {
	obs := lakeAWeather()
	obs.WindKph = -5
	report, ok := BuildReport(lakeA(), obs, nil)
	if !ok {
		t.Fatal("unknown wind band must not prevent a report")
	}
	if !strings.Contains(report.Text, "🌫 Unknown\n") {
		t.Errorf("expected generic wind label in report:\n%s", report.Text)
	}
}

func TestBuildReportEscapesMarkup(t *testing.T) {
	wb := lakeA()
	wb.Name = "Lake <A> & Co"
	report, _ := BuildReport(wb, lakeAWeather(), nil)
	if !strings.Contains(report.Text, "<b>Lake &lt;A&gt; &amp; Co</b>") {
		t.Errorf("water body name not escaped:\n%s", report.Text)
	}
}

func TestStarsClamp(t *testing.T) {
	if got := stars(-1); got != "" {
		t.Errorf("stars(-1) = %q, want empty", got)
	}
	if got := stars(9); got != strings.Repeat("⭐", 5) {
		t.Errorf("stars(9) = %q, want five stars", got)
	}
}
