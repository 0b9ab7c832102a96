// Package demo produces synthetic provider payloads for running without a
// valid API key. Payloads are schema-identical to real OpenWeatherMap
// responses and deterministic for a fixed clock and input, so demo mode is
// testable and stable across reloads.
package demo

import (
	"hash/fnv"
	"math"
	"time"

	"github.com/Mani-Chandra65/Weather-App/internal/owm"
)

// locationID derives a stable provider-style location identifier from a
// city name.
func locationID(city string) int64 {
	h := fnv.New32a()
	h.Write([]byte(city))
	return int64(h.Sum32() % 1000000)
}

// CurrentWeather returns a demo current-conditions payload for the named
// city.
func CurrentWeather(city string, now time.Time) owm.CurrentWeather {
	return owm.CurrentWeather{
		ID:   locationID(city),
		Name: city,
		Sys: owm.SysInfo{
			Country: "US",
			Sunrise: 1695795600,
			Sunset:  1695839400,
		},
		Main: owm.MainMetrics{
			Temp:      22,
			FeelsLike: 24,
			TempMin:   18,
			TempMax:   26,
			Pressure:  1013,
			Humidity:  65,
		},
		Weather: []owm.ConditionInfo{
			{Description: "partly cloudy", Icon: "02d"},
		},
		Wind:       owm.Wind{Speed: 3.5, Deg: 180},
		Visibility: 10000,
		Dt:         now.Unix(),
	}
}

var forecastConditions = []owm.ConditionInfo{
	{Description: "sunny", Icon: "01d"},
	{Description: "partly cloudy", Icon: "02d"},
	{Description: "cloudy", Icon: "04d"},
	{Description: "rainy", Icon: "10d"},
}

// Forecast returns a demo 5-day forecast: 40 samples at 3-hour spacing with
// smooth sinusoidal curves for the numeric series.
func Forecast(now time.Time) owm.Forecast {
	samples := make([]owm.ForecastSample, 40)
	for i := range samples {
		fi := float64(i)
		temp := 20 + math.Sin(fi*0.1)*5
		samples[i] = owm.ForecastSample{
			Dt: now.Unix() + int64(i)*3*3600,
			Main: owm.MainMetrics{
				Temp:      temp,
				FeelsLike: temp + 2,
				TempMin:   temp - 2,
				TempMax:   temp + 4,
				Pressure:  1013 + math.Sin(fi*0.05)*10,
				Humidity:  60 + int(math.Round(math.Sin(fi*0.2)*20)),
			},
			Weather: []owm.ConditionInfo{forecastConditions[i%len(forecastConditions)]},
			Wind: owm.Wind{
				Speed: 2 + math.Abs(math.Sin(fi*0.3))*3,
				Deg:   float64((i * 45) % 360),
			},
		}
	}
	return owm.Forecast{List: samples}
}

// AirQuality returns a demo air-pollution payload with mid-range readings.
func AirQuality() owm.AirQuality {
	sample := owm.AirQualitySample{
		Components: owm.PollutantConcentrations{
			CO:   250,
			NO:   0.7,
			NO2:  25,
			O3:   70,
			SO2:  7,
			PM25: 20,
			PM10: 27,
			NH3:  2,
		},
	}
	sample.Main.AQI = 2
	return owm.AirQuality{List: []owm.AirQualitySample{sample}}
}

// GeocodeDirect returns a single candidate location for the named city,
// with coordinates derived from the city name so repeated searches agree.
func GeocodeDirect(city string) []owm.GeoLocation {
	id := locationID(city)
	return []owm.GeoLocation{
		{
			Name:    city,
			Lat:     float64(id%120) - 60,
			Lon:     float64(id%360) - 180,
			Country: "US",
		},
	}
}

// GeocodeReverse returns a single named location for the given coordinates.
func GeocodeReverse(lat, lon float64) []owm.GeoLocation {
	return []owm.GeoLocation{
		{Name: "Demo City", Lat: lat, Lon: lon, Country: "US"},
	}
}
