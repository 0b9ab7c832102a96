package weather

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Mani-Chandra65/Weather-App/internal/demo"
	"github.com/Mani-Chandra65/Weather-App/internal/owm"
)

// Provider abstracts the upstream weather/geocoding data source.
// *owm.Client is the production implementation.
type Provider interface {
	CurrentByCity(ctx context.Context, city string) (owm.CurrentWeather, error)
	CurrentByCoords(ctx context.Context, lat, lon float64) (owm.CurrentWeather, error)
	ForecastByCity(ctx context.Context, city string) (owm.Forecast, error)
	ForecastByCoords(ctx context.Context, lat, lon float64) (owm.Forecast, error)
	AirQuality(ctx context.Context, lat, lon float64) (owm.AirQuality, error)
	GeocodeDirect(ctx context.Context, city string) ([]owm.GeoLocation, error)
	GeocodeReverse(ctx context.Context, lat, lon float64) ([]owm.GeoLocation, error)
}

// Service fronts the upstream provider for the HTTP facade. When no valid
// credential is configured, or the provider rejects the credential, it
// substitutes deterministic demo payloads instead of failing; every other
// provider error is surfaced to the caller. The fallback policy lives here
// and nowhere else.
type Service struct {
	provider Provider
	demoMode bool
	log      *zap.SugaredLogger
	now      func() time.Time
}

// NewService creates a Service. demoMode forces synthetic payloads for
// every operation (no credential configured).
func NewService(provider Provider, demoMode bool, log *zap.SugaredLogger) *Service {
	return &Service{
		provider: provider,
		demoMode: demoMode,
		log:      log,
		now:      time.Now,
	}
}

// DemoMode reports whether the service is running without a valid
// credential.
func (s *Service) DemoMode() bool {
	return s.demoMode
}

// withFallback calls the upstream operation and substitutes the demo
// generator when the service runs without a credential or the provider
// rejects it (401).
func withFallback[T any](ctx context.Context, s *Service, op string, call func(context.Context) (T, error), generate func() T) (T, error) {
	if s.demoMode {
		s.log.Infow("serving demo data", "op", op, "reason", "no API key configured")
		return generate(), nil
	}

	v, err := call(ctx)
	if err != nil {
		if errors.Is(err, owm.ErrUnauthorized) {
			s.log.Warnw("API key rejected by provider; serving demo data", "op", op)
			return generate(), nil
		}
		var zero T
		return zero, err
	}
	return v, nil
}

// CurrentByCity returns current conditions for a city name.
func (s *Service) CurrentByCity(ctx context.Context, city string) (owm.CurrentWeather, error) {
	return withFallback(ctx, s, "current-by-city",
		func(ctx context.Context) (owm.CurrentWeather, error) {
			return s.provider.CurrentByCity(ctx, city)
		},
		func() owm.CurrentWeather { return demo.CurrentWeather(city, s.now()) })
}

// CurrentByCoords returns current conditions for a coordinate pair.
func (s *Service) CurrentByCoords(ctx context.Context, lat, lon float64) (owm.CurrentWeather, error) {
	return withFallback(ctx, s, "current-by-coordinates",
		func(ctx context.Context) (owm.CurrentWeather, error) {
			return s.provider.CurrentByCoords(ctx, lat, lon)
		},
		func() owm.CurrentWeather { return demo.CurrentWeather("Your Location", s.now()) })
}

// ForecastByCity returns the 5-day forecast for a city name.
func (s *Service) ForecastByCity(ctx context.Context, city string) (owm.Forecast, error) {
	return withFallback(ctx, s, "forecast-by-city",
		func(ctx context.Context) (owm.Forecast, error) {
			return s.provider.ForecastByCity(ctx, city)
		},
		func() owm.Forecast { return demo.Forecast(s.now()) })
}

// ForecastByCoords returns the 5-day forecast for a coordinate pair.
func (s *Service) ForecastByCoords(ctx context.Context, lat, lon float64) (owm.Forecast, error) {
	return withFallback(ctx, s, "forecast-by-coordinates",
		func(ctx context.Context) (owm.Forecast, error) {
			return s.provider.ForecastByCoords(ctx, lat, lon)
		},
		func() owm.Forecast { return demo.Forecast(s.now()) })
}

// AirQuality returns air pollution data for a coordinate pair.
func (s *Service) AirQuality(ctx context.Context, lat, lon float64) (owm.AirQuality, error) {
	return withFallback(ctx, s, "air-quality",
		func(ctx context.Context) (owm.AirQuality, error) {
			return s.provider.AirQuality(ctx, lat, lon)
		},
		func() owm.AirQuality { return demo.AirQuality() })
}

// GeocodeDirect resolves a city name to candidate locations.
func (s *Service) GeocodeDirect(ctx context.Context, city string) ([]owm.GeoLocation, error) {
	return withFallback(ctx, s, "geocode-direct",
		func(ctx context.Context) ([]owm.GeoLocation, error) {
			return s.provider.GeocodeDirect(ctx, city)
		},
		func() []owm.GeoLocation { return demo.GeocodeDirect(city) })
}

// GeocodeReverse resolves a coordinate pair to the nearest named location.
func (s *Service) GeocodeReverse(ctx context.Context, lat, lon float64) ([]owm.GeoLocation, error) {
	return withFallback(ctx, s, "geocode-reverse",
		func(ctx context.Context) ([]owm.GeoLocation, error) {
			return s.provider.GeocodeReverse(ctx, lat, lon)
		},
		func() []owm.GeoLocation { return demo.GeocodeReverse(lat, lon) })
}

// Compare fetches current conditions for every listed city concurrently,
// preserving input order. The whole operation fails on the first error; no
// partial result is returned.
func (s *Service) Compare(ctx context.Context, cities []string) ([]owm.CurrentWeather, error) {
	results := make([]owm.CurrentWeather, len(cities))

	g, ctx := errgroup.WithContext(ctx)
	for i, city := range cities {
		i, city := i, city
		g.Go(func() error {
			w, err := s.CurrentByCity(ctx, city)
			if err != nil {
				return err
			}
			results[i] = w
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
