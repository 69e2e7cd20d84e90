package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/legislators/internal/api"
	"github.com/jjenkins/legislators/internal/model"
	"github.com/jjenkins/legislators/internal/service"
)

// statusFor maps core error kinds onto HTTP status codes. Both front ends
// use the same mapping.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrUpstreamUnavailable):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

// ListLegislatorsHandler returns all legislators, optionally filtered by
// state and party query parameters.
func ListLegislatorsHandler(directory *service.Directory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		filter := model.Filter{
			State: c.Query("state"),
			Party: c.Query("party"),
		}

		legislators, err := directory.List(ctx, filter)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(api.NewLegislatorViews(legislators))
	}
}

// GetLegislatorHandler returns a single legislator by govtrack_id.
func GetLegislatorHandler(directory *service.Directory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid legislator id"})
		}

		legislator, err := directory.Get(ctx, id)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(api.NewLegislatorView(legislator))
	}
}

// UpdateNotesHandler overwrites the notes annotation for a legislator. The
// note field must be present in the body, though it may be empty.
func UpdateNotesHandler(directory *service.Directory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid legislator id"})
		}

		var req api.NotesUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		legislator, err := directory.UpdateNotes(ctx, id, req.Note)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(fiber.Map{
			"message":    "Notes updated successfully",
			"legislator": api.NewLegislatorView(legislator),
		})
	}
}
