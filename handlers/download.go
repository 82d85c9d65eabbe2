package handlers

import (
	"errors"
	"yt-fetch-api/models"
	"yt-fetch-api/services"
	"yt-fetch-api/utils"

	"github.com/gofiber/fiber/v2"
)

// HandleDownload handles POST /api/download. The download runs to
// completion before the descriptor is returned; once the tool starts, only
// its own timeout stops it.
func HandleDownload(c *fiber.Ctx) error {
	var req models.DownloadRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, utils.ErrInvalidRequest, "Invalid request body")
	}

	if req.URL == "" {
		return utils.BadRequest(c, utils.ErrInvalidURL, "URL is required")
	}

	artifact, err := services.Download(&req)
	if err != nil {
		var verr utils.ValidationError
		switch {
		case errors.As(err, &verr):
			code := utils.ErrValidationError
			if verr.Field == "url" {
				code = utils.ErrInvalidURL
			}
			return utils.BadRequest(c, code, verr.Error())
		case errors.Is(err, services.ErrToolMissing):
			return utils.ServiceUnavailable(c, utils.ErrToolMissing, "No extraction tool is installed on the server")
		case errors.Is(err, services.ErrDownloadFailed):
			return utils.BadGateway(c, utils.ErrDownloadFailed, "Download failed, check URL and retry")
		case errors.Is(err, services.ErrArtifactMissing):
			return utils.InternalError(c, "Download finished but the output file was not found")
		default:
			return utils.InternalError(c, "Download failed")
		}
	}

	return c.JSON(artifact)
}
