// Package entities contains the core domain objects for the fishing-bot application
package entities

// WaterBody represents a fishing location with static reference data
type WaterBody struct {
	Name       string   // Display name, unique across the catalog
	Latitude   float64  // Geographic latitude
	Longitude  float64  // Geographic longitude
	FishRating int      // Fish abundance rating, 1 to 5
	Depth      string   // Depth range description, e.g. "4-8 м"
	FishTypes  []string // Fish species, in display order
	PhotoURL   string   // Reference photo of the location
}

// WeatherObservation represents the current weather reported by the weather provider
type WeatherObservation struct {
	PressureMb  float64 // Pressure in millibars (hPa)
	WindKph     float64 // Wind speed in km/h
	WindDir     string  // Compass direction, e.g. "NW"
	TempC       float64 // Temperature in °C
	Humidity    int     // Relative humidity in percent
	LastUpdated string  // Provider's last-updated timestamp, as received
}
