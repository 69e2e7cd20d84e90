package handlers

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/legislators/internal/api"
	"github.com/jjenkins/legislators/internal/observability"
	"github.com/jjenkins/legislators/internal/service"
)

// WeatherHandler returns current conditions at the capital city of a
// legislator's state.
func WeatherHandler(directory *service.Directory, weather *service.WeatherClient, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		if !weather.Configured() {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Weather API key not configured"})
		}

		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid legislator id"})
		}

		legislator, err := directory.Get(ctx, id)
		if err != nil {
			return errorJSON(c, err)
		}

		capital, ok := service.CapitalForState(legislator.State)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": fmt.Sprintf("Capital city not found for state: %s", legislator.State),
			})
		}

		report, err := weather.Current(ctx, capital, legislator.State)
		if err != nil {
			metrics.WeatherRequests.WithLabelValues("error").Inc()
			return errorJSON(c, err)
		}
		metrics.WeatherRequests.WithLabelValues("success").Inc()

		return c.JSON(api.NewWeatherView(legislator, capital, report))
	}
}
