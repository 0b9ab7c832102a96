package owm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const (
	defaultDataURL = "https://api.openweathermap.org/data/2.5"
	defaultGeoURL  = "https://api.openweathermap.org/geo/1.0"
)

// Client talks to the OpenWeatherMap data and geocoding APIs. Construct it
// with NewClient; the zero value is not usable.
type Client struct {
	apiKey  string
	dataURL string
	geoURL  string
	httpCfg HTTPClientConfig
	limiter *rate.Limiter
	circuit *gobreaker.CircuitBreaker
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURLs overrides the data and geocoding base URLs (used in tests).
func WithBaseURLs(dataURL, geoURL string) Option {
	return func(c *Client) {
		c.dataURL = dataURL
		c.geoURL = geoURL
	}
}

// NewClient creates a Client using the given HTTP client and API key.
func NewClient(client *http.Client, apiKey string, opts ...Option) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	c := &Client{
		apiKey:  apiKey,
		dataURL: defaultDataURL,
		geoURL:  defaultGeoURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		// Free tier allows 60 calls/minute; allow short bursts.
		limiter: rate.NewLimiter(rate.Limit(1), 5),
		circuit: cb,
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentByCity fetches current conditions for a city name.
func (c *Client) CurrentByCity(ctx context.Context, city string) (CurrentWeather, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("units", "metric")

	var out CurrentWeather
	err := c.get(ctx, c.dataURL+"/weather", values, &out)
	return out, err
}

// CurrentByCoords fetches current conditions for a coordinate pair.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon float64) (CurrentWeather, error) {
	values := coordValues(lat, lon)
	values.Set("units", "metric")

	var out CurrentWeather
	err := c.get(ctx, c.dataURL+"/weather", values, &out)
	return out, err
}

// ForecastByCity fetches the 5-day / 3-hour forecast for a city name.
func (c *Client) ForecastByCity(ctx context.Context, city string) (Forecast, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("units", "metric")

	var out Forecast
	err := c.get(ctx, c.dataURL+"/forecast", values, &out)
	return out, err
}

// ForecastByCoords fetches the 5-day / 3-hour forecast for a coordinate pair.
func (c *Client) ForecastByCoords(ctx context.Context, lat, lon float64) (Forecast, error) {
	values := coordValues(lat, lon)
	values.Set("units", "metric")

	var out Forecast
	err := c.get(ctx, c.dataURL+"/forecast", values, &out)
	return out, err
}

// AirQuality fetches air pollution data for a coordinate pair.
func (c *Client) AirQuality(ctx context.Context, lat, lon float64) (AirQuality, error) {
	var out AirQuality
	err := c.get(ctx, c.dataURL+"/air_pollution", coordValues(lat, lon), &out)
	return out, err
}

// GeocodeDirect resolves a city name to up to five candidate locations.
func (c *Client) GeocodeDirect(ctx context.Context, city string) ([]GeoLocation, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("limit", "5")

	var out []GeoLocation
	err := c.get(ctx, c.geoURL+"/direct", values, &out)
	return out, err
}

// GeocodeReverse resolves a coordinate pair to the nearest named location.
func (c *Client) GeocodeReverse(ctx context.Context, lat, lon float64) ([]GeoLocation, error) {
	values := coordValues(lat, lon)
	values.Set("limit", "1")

	var out []GeoLocation
	err := c.get(ctx, c.geoURL+"/reverse", values, &out)
	return out, err
}

func coordValues(lat, lon float64) url.Values {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return values
}

// get performs a resilient GET against endpoint and decodes the JSON body
// into out.
func (c *Client) get(ctx context.Context, endpoint string, values url.Values, out interface{}) error {
	values.Set("appid", c.apiKey)

	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s?%s", endpoint, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.limiter, c.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}
	return nil
}
