package forecast

import (
	"fmt"
	"math"
)

// KmhFromMps converts a wind speed in m/s to a rounded km/h value.
func KmhFromMps(mps float64) int {
	return int(math.Round(mps * 3.6))
}

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// WindDirection maps a bearing in degrees to a 16-point compass label.
// Out-of-range bearings wrap (359° reads as N).
func WindDirection(deg float64) string {
	idx := int(math.Round(deg/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return compassPoints[idx]
}

// TemperatureColor maps a temperature in °C to the display color used by
// the comparison view. Bands break at 0/10/20/30/40.
func TemperatureColor(tempC float64) string {
	switch {
	case tempC < 0:
		return "#87CEEB" // sky blue, freezing
	case tempC < 10:
		return "#4A90E2"
	case tempC < 20:
		return "#50C878"
	case tempC < 30:
		return "#FFD700"
	case tempC < 40:
		return "#FF8C00"
	default:
		return "#FF4500"
	}
}

// AQIInfo is the display tuple for an Air Quality Index category.
type AQIInfo struct {
	Level       string `json:"level"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

var aqiTable = map[int]AQIInfo{
	1: {Level: "Good", Color: "#00e400", Description: "Air quality is good. Enjoy outdoor activities!"},
	2: {Level: "Fair", Color: "#ffff00", Description: "Air quality is acceptable for most people."},
	3: {Level: "Moderate", Color: "#ff7e00", Description: "Sensitive individuals should limit outdoor activities."},
	4: {Level: "Poor", Color: "#ff0000", Description: "Everyone should limit outdoor activities."},
	5: {Level: "Very Poor", Color: "#8f3f97", Description: "Health warnings. Everyone should avoid outdoor activities."},
}

// AQILevel maps an AQI category (1..5) to its display tuple. Any other
// value maps to an explicit Unknown entry rather than failing.
func AQILevel(aqi int) AQIInfo {
	if info, ok := aqiTable[aqi]; ok {
		return info
	}
	return AQIInfo{Level: "Unknown", Color: "#999999", Description: "Air quality data unavailable."}
}

// IconURL returns the provider icon URL for a condition icon code.
// Size is the provider's scale suffix, e.g. "2x" or "4x".
func IconURL(icon, size string) string {
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@%s.png", icon, size)
}
