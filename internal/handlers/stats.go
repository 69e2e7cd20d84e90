package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/legislators/internal/api"
	"github.com/jjenkins/legislators/internal/service"
)

// AgeStatsHandler returns the derived age-statistics report.
func AgeStatsHandler(directory *service.Directory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		stats, err := directory.AgeStatistics(ctx)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(api.NewAgeStatsView(stats))
	}
}
