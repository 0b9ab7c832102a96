package httpapi

import (
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Mani-Chandra65/Weather-App/internal/session"
	"github.com/Mani-Chandra65/Weather-App/internal/weather"
)

var validate = validator.New()

// Per-operation error labels, mirrored by the fetch client's defaults.
const (
	errWeather    = "Failed to fetch weather data"
	errForecast   = "Failed to fetch forecast data"
	errAirQuality = "Failed to fetch air quality data"
	errLocation   = "Failed to fetch location data"
	errComparison = "Failed to fetch comparison data"
)

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, sess *session.Manager) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		status := "demo_mode"
		if !service.DemoMode() {
			status = "valid"
		}
		return c.JSON(fiber.Map{
			"status":       "healthy",
			"service":      "weather-dashboard-backend",
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
			"apiKeyStatus": status,
		})
	})

	api.Get("/weather/current/:city", func(c *fiber.Ctx) error {
		city, err := cityParam(c)
		if err != nil {
			return badRequest(c, err)
		}

		data, err := service.CurrentByCity(c.Context(), city)
		if err != nil {
			return upstreamError(c, errWeather, err)
		}
		return c.JSON(data)
	})

	api.Get("/weather/coordinates/:lat/:lon", func(c *fiber.Ctx) error {
		coords, err := coordParams(c)
		if err != nil {
			return badRequest(c, err)
		}

		data, err := service.CurrentByCoords(c.Context(), coords.Lat, coords.Lon)
		if err != nil {
			return upstreamError(c, errWeather, err)
		}
		return c.JSON(data)
	})

	// The coordinate route must be registered before the :city route so
	// "coordinates" is not captured as a city name.
	api.Get("/weather/forecast/coordinates/:lat/:lon", func(c *fiber.Ctx) error {
		coords, err := coordParams(c)
		if err != nil {
			return badRequest(c, err)
		}

		data, err := service.ForecastByCoords(c.Context(), coords.Lat, coords.Lon)
		if err != nil {
			return upstreamError(c, errForecast, err)
		}
		return c.JSON(data)
	})

	api.Get("/weather/forecast/:city", func(c *fiber.Ctx) error {
		city, err := cityParam(c)
		if err != nil {
			return badRequest(c, err)
		}

		data, err := service.ForecastByCity(c.Context(), city)
		if err != nil {
			return upstreamError(c, errForecast, err)
		}
		return c.JSON(data)
	})

	api.Get("/weather/air-quality/:lat/:lon", func(c *fiber.Ctx) error {
		coords, err := coordParams(c)
		if err != nil {
			return badRequest(c, err)
		}

		data, err := service.AirQuality(c.Context(), coords.Lat, coords.Lon)
		if err != nil {
			return upstreamError(c, errAirQuality, err)
		}
		return c.JSON(data)
	})

	api.Get("/geo/direct/:city", func(c *fiber.Ctx) error {
		city, err := cityParam(c)
		if err != nil {
			return badRequest(c, err)
		}

		data, err := service.GeocodeDirect(c.Context(), city)
		if err != nil {
			return upstreamError(c, errLocation, err)
		}
		return c.JSON(data)
	})

	api.Get("/geo/reverse/:lat/:lon", func(c *fiber.Ctx) error {
		coords, err := coordParams(c)
		if err != nil {
			return badRequest(c, err)
		}

		data, err := service.GeocodeReverse(c.Context(), coords.Lat, coords.Lon)
		if err != nil {
			return upstreamError(c, errLocation, err)
		}
		return c.JSON(data)
	})

	api.Post("/weather/compare", func(c *fiber.Ctx) error {
		var req compareRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
		if err := validate.Struct(req); err != nil {
			return badRequest(c, err)
		}

		data, err := service.Compare(c.Context(), req.Cities)
		if err != nil {
			return upstreamError(c, errComparison, err)
		}
		return c.JSON(data)
	})

	api.Get("/preferences", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"theme":     sess.Theme(),
			"autoTheme": sess.AutoTheme(),
		})
	})

	api.Put("/preferences", func(c *fiber.Ctx) error {
		var req preferencesRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
		if err := validate.Struct(req); err != nil {
			return badRequest(c, err)
		}

		if req.AutoTheme != nil {
			sess.SetAutoTheme(*req.AutoTheme)
		}
		if req.Theme != nil {
			sess.SetTheme(*req.Theme)
		}

		return c.JSON(fiber.Map{
			"theme":     sess.Theme(),
			"autoTheme": sess.AutoTheme(),
		})
	})

	// 404 for any unmatched API path, echoing the requested path back.
	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "API endpoint not found",
			"path":    c.OriginalURL(),
			"message": "This API endpoint does not exist",
		})
	})
}

// compareRequest is the batch-compare body: 1..5 non-empty city names.
type compareRequest struct {
	Cities []string `json:"cities" validate:"required,min=1,max=5,dive,required"`
}

// preferencesRequest updates one or both display preferences.
type preferencesRequest struct {
	Theme     *string `json:"theme" validate:"omitempty,oneof=light dark"`
	AutoTheme *bool   `json:"autoTheme"`
}

// cityQuery validates the city path parameter.
type cityQuery struct {
	City string `validate:"required"`
}

func cityParam(c *fiber.Ctx) (string, error) {
	raw := c.Params("city")
	city, err := url.PathUnescape(raw)
	if err != nil {
		city = raw
	}

	if err := validate.Struct(cityQuery{City: city}); err != nil {
		return "", err
	}
	return city, nil
}

// coordQuery validates the lat/lon path parameters.
type coordQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

func coordParams(c *fiber.Ctx) (coordQuery, error) {
	var q coordQuery

	lat, err := strconv.ParseFloat(c.Params("lat"), 64)
	if err != nil {
		return q, err
	}
	lon, err := strconv.ParseFloat(c.Params("lon"), 64)
	if err != nil {
		return q, err
	}

	q.Lat = lat
	q.Lon = lon
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "Invalid request",
		"message": err.Error(),
	})
}

// upstreamError reports a failed provider call: a per-operation label plus
// the most specific message available.
func upstreamError(c *fiber.Ctx, label string, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   label,
		"message": err.Error(),
	})
}
