package owm

// Wire types mirroring the OpenWeatherMap JSON payloads. The facade passes
// these through to its own callers unchanged, so field names and tags follow
// the provider documentation exactly.

// ConditionInfo is one entry of the "weather" array present on current and
// forecast payloads.
type ConditionInfo struct {
	ID          int    `json:"id,omitempty"`
	Main        string `json:"main,omitempty"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// MainMetrics groups the thermodynamic readings of a sample.
type MainMetrics struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

// Wind holds wind speed (m/s, metric units) and direction (degrees).
type Wind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

// Precipitation is the rain/snow volume object; the provider reports the
// last/next 3 hours under the literal key "3h".
type Precipitation struct {
	ThreeH float64 `json:"3h"`
}

// SysInfo carries country and sun times on a current-weather payload.
type SysInfo struct {
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

// Coord is a latitude/longitude pair.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CurrentWeather is the /data/2.5/weather response: a point-in-time reading
// for one location. Immutable once fetched; owned by the caller.
type CurrentWeather struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Coord      Coord           `json:"coord,omitempty"`
	Sys        SysInfo         `json:"sys"`
	Main       MainMetrics     `json:"main"`
	Weather    []ConditionInfo `json:"weather"`
	Wind       Wind            `json:"wind"`
	Visibility int             `json:"visibility"`
	Dt         int64           `json:"dt"`
	Timezone   int             `json:"timezone,omitempty"`
}

// Condition returns the leading weather condition, or a zero value when the
// provider sent an empty array.
func (w CurrentWeather) Condition() ConditionInfo {
	if len(w.Weather) == 0 {
		return ConditionInfo{}
	}
	return w.Weather[0]
}

// ForecastSample is one 3-hour step of the /data/2.5/forecast list.
type ForecastSample struct {
	Dt      int64           `json:"dt"`
	Main    MainMetrics     `json:"main"`
	Weather []ConditionInfo `json:"weather"`
	Wind    Wind            `json:"wind"`
	Rain    *Precipitation  `json:"rain,omitempty"`
	Snow    *Precipitation  `json:"snow,omitempty"`
}

// Condition returns the leading weather condition of the sample.
func (s ForecastSample) Condition() ConditionInfo {
	if len(s.Weather) == 0 {
		return ConditionInfo{}
	}
	return s.Weather[0]
}

// Forecast is the /data/2.5/forecast response: an ordered series of 3-hour
// samples over a 5-day horizon (~40 entries).
type Forecast struct {
	List []ForecastSample `json:"list"`
	City struct {
		ID      int64  `json:"id"`
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city,omitempty"`
}

// PollutantConcentrations are raw component readings in µg/m³.
type PollutantConcentrations struct {
	CO   float64 `json:"co"`
	NO   float64 `json:"no"`
	NO2  float64 `json:"no2"`
	O3   float64 `json:"o3"`
	SO2  float64 `json:"so2"`
	PM25 float64 `json:"pm2_5"`
	PM10 float64 `json:"pm10"`
	NH3  float64 `json:"nh3"`
}

// AirQualitySample is one entry of the air-pollution response list: an AQI
// category 1..5 plus component concentrations.
type AirQualitySample struct {
	Main struct {
		AQI int `json:"aqi"`
	} `json:"main"`
	Components PollutantConcentrations `json:"components"`
}

// AirQuality is the /data/2.5/air_pollution response.
type AirQuality struct {
	List []AirQualitySample `json:"list"`
}

// GeoLocation is one entry of a direct or reverse geocoding response.
type GeoLocation struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}
