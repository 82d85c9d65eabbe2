package handlers

import (
	"errors"
	"yt-fetch-api/models"
	"yt-fetch-api/services"
	"yt-fetch-api/utils"

	"github.com/gofiber/fiber/v2"
)

// HandleInfo handles POST /api/info
func HandleInfo(c *fiber.Ctx) error {
	var req models.InfoRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, utils.ErrInvalidRequest, "Invalid request body")
	}

	if req.URL == "" {
		return utils.BadRequest(c, utils.ErrInvalidURL, "URL is required")
	}
	if _, err := utils.ExtractVideoID(req.URL); err != nil {
		return utils.BadRequest(c, utils.ErrInvalidURL, err.Error())
	}

	meta, err := services.FetchMetadata(req.URL)
	if err != nil {
		var verr utils.ValidationError
		switch {
		case errors.As(err, &verr):
			return utils.BadRequest(c, utils.ErrInvalidURL, verr.Error())
		case errors.Is(err, services.ErrToolMissing):
			return utils.ServiceUnavailable(c, utils.ErrToolMissing, "No extraction tool is installed on the server")
		case errors.Is(err, services.ErrExtractionFailed):
			return utils.BadGateway(c, utils.ErrExtractFailed, "failed to get information, check URL and retry")
		default:
			return utils.InternalError(c, "Failed to fetch video metadata")
		}
	}

	return c.JSON(meta)
}
