// Package client is the fetch client for the weather facade: one operation
// per endpoint, with provider and transport failures normalized into a
// single human-readable error shape. It never retries; callers decide
// whether to surface an error or fall back.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Mani-Chandra65/Weather-App/internal/owm"
)

// ErrCityNotFound is returned by DashboardByCity when a city name resolves
// to zero geocoding results.
var ErrCityNotFound = errors.New("City not found")

// Error is the single error kind produced by failed fetches. Message is
// the server-supplied message when one was present, else a per-operation
// default.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Per-operation default messages, used when the server response carries no
// message field.
const (
	msgWeather    = "Failed to fetch weather data"
	msgForecast   = "Failed to fetch forecast data"
	msgAirQuality = "Failed to fetch air quality data"
	msgLocation   = "Failed to fetch location data"
	msgComparison = "Failed to fetch comparison data"
)

// Client issues requests against the facade's /api base URL. Construct one
// per base URL; there is no package-level instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the given base URL, e.g.
// "http://localhost:5000/api". A nil httpClient gets a sensible default.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// CurrentWeatherByCity fetches current conditions by city name.
func (c *Client) CurrentWeatherByCity(ctx context.Context, city string) (owm.CurrentWeather, error) {
	var out owm.CurrentWeather
	err := c.get(ctx, "/weather/current/"+url.PathEscape(city), msgWeather, &out)
	return out, err
}

// CurrentByCity is an alias satisfying the comparison set's Fetcher
// interface.
func (c *Client) CurrentByCity(ctx context.Context, city string) (owm.CurrentWeather, error) {
	return c.CurrentWeatherByCity(ctx, city)
}

// CurrentWeatherByCoordinates fetches current conditions by coordinates.
func (c *Client) CurrentWeatherByCoordinates(ctx context.Context, lat, lon float64) (owm.CurrentWeather, error) {
	var out owm.CurrentWeather
	err := c.get(ctx, "/weather/coordinates/"+coordPath(lat, lon), msgWeather, &out)
	return out, err
}

// ForecastByCity fetches the 5-day forecast by city name.
func (c *Client) ForecastByCity(ctx context.Context, city string) (owm.Forecast, error) {
	var out owm.Forecast
	err := c.get(ctx, "/weather/forecast/"+url.PathEscape(city), msgForecast, &out)
	return out, err
}

// ForecastByCoordinates fetches the 5-day forecast by coordinates.
func (c *Client) ForecastByCoordinates(ctx context.Context, lat, lon float64) (owm.Forecast, error) {
	var out owm.Forecast
	err := c.get(ctx, "/weather/forecast/coordinates/"+coordPath(lat, lon), msgForecast, &out)
	return out, err
}

// AirQuality fetches air pollution data by coordinates.
func (c *Client) AirQuality(ctx context.Context, lat, lon float64) (owm.AirQuality, error) {
	var out owm.AirQuality
	err := c.get(ctx, "/weather/air-quality/"+coordPath(lat, lon), msgAirQuality, &out)
	return out, err
}

// LocationsByCity resolves a city name to candidate locations.
func (c *Client) LocationsByCity(ctx context.Context, city string) ([]owm.GeoLocation, error) {
	var out []owm.GeoLocation
	err := c.get(ctx, "/geo/direct/"+url.PathEscape(city), msgLocation, &out)
	return out, err
}

// LocationByCoordinates resolves coordinates to the nearest named location.
func (c *Client) LocationByCoordinates(ctx context.Context, lat, lon float64) ([]owm.GeoLocation, error) {
	var out []owm.GeoLocation
	err := c.get(ctx, "/geo/reverse/"+coordPath(lat, lon), msgLocation, &out)
	return out, err
}

// CompareCities fetches current conditions for several cities in one call,
// preserving input order.
func (c *Client) CompareCities(ctx context.Context, cities []string) ([]owm.CurrentWeather, error) {
	body, err := json.Marshal(map[string][]string{"cities": cities})
	if err != nil {
		return nil, err
	}

	var out []owm.CurrentWeather
	if err := c.do(ctx, http.MethodPost, "/weather/compare", body, msgComparison, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Dashboard is the joined result of the three initial-load fetches.
type Dashboard struct {
	Current    owm.CurrentWeather
	Forecast   owm.Forecast
	AirQuality owm.AirQuality
}

// FetchDashboard issues the current-weather, forecast and air-quality
// fetches for one coordinate pair concurrently and joins them: all three
// must succeed, and the first failure wins with no partial result.
func (c *Client) FetchDashboard(ctx context.Context, lat, lon float64) (Dashboard, error) {
	var d Dashboard

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d.Current, err = c.CurrentWeatherByCoordinates(ctx, lat, lon)
		return err
	})
	g.Go(func() error {
		var err error
		d.Forecast, err = c.ForecastByCoordinates(ctx, lat, lon)
		return err
	})
	g.Go(func() error {
		var err error
		d.AirQuality, err = c.AirQuality(ctx, lat, lon)
		return err
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

// FetchDashboardByCity geocodes the city first and then joins the three
// coordinate fetches. Zero geocoding results is ErrCityNotFound.
func (c *Client) FetchDashboardByCity(ctx context.Context, city string) (Dashboard, error) {
	locations, err := c.LocationsByCity(ctx, city)
	if err != nil {
		return Dashboard{}, err
	}
	if len(locations) == 0 {
		return Dashboard{}, ErrCityNotFound
	}
	return c.FetchDashboard(ctx, locations[0].Lat, locations[0].Lon)
}

func coordPath(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "/" + strconv.FormatFloat(lon, 'f', -1, 64)
}

func (c *Client) get(ctx context.Context, path, defaultMsg string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, defaultMsg, out)
}

// errorBody is the facade's error envelope.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, defaultMsg string, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Message: defaultMsg}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Message: defaultMsg}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope errorBody
		if decErr := json.NewDecoder(resp.Body).Decode(&envelope); decErr == nil && envelope.Message != "" {
			return &Error{Message: envelope.Message}
		}
		return &Error{Message: defaultMsg}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Message: fmt.Sprintf("%s: unexpected response body", defaultMsg)}
	}
	return nil
}
