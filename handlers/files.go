package handlers

import (
	"fmt"
	"yt-fetch-api/models"
	"yt-fetch-api/services"
	"yt-fetch-api/utils"

	"github.com/gofiber/fiber/v2"
)

// HandleFile handles GET /files/:filename. The artifact streams back as an
// attachment; the post-serve delete timer starts when the response body has
// been fully written, not when the handler returns.
func HandleFile(c *fiber.Ctx) error {
	filename := c.Params("filename")

	if !utils.ValidateArtifactName(filename) {
		return utils.BadRequest(c, utils.ErrInvalidFilename, "Invalid file name")
	}

	stream, size, err := services.Artifacts.ServeOnce(filename)
	if err != nil {
		return utils.NotFound(c, utils.ErrFileNotFound, "File not found")
	}

	c.Set(fiber.HeaderContentType, "application/octet-stream")
	c.Set(fiber.HeaderContentLength, fmt.Sprintf("%d", size))
	c.Set(fiber.HeaderContentDisposition, utils.AttachmentDisposition(filename))

	return c.SendStream(stream, int(size))
}

// HandleDeleteFile handles DELETE /api/files/:filename, reclaiming a staged
// artifact before its timers fire. Idempotent.
func HandleDeleteFile(c *fiber.Ctx) error {
	filename := c.Params("filename")

	if !utils.ValidateArtifactName(filename) {
		return utils.BadRequest(c, utils.ErrInvalidFilename, "Invalid file name")
	}

	if err := services.Artifacts.Remove(filename); err != nil {
		return utils.InternalError(c, "Failed to delete file")
	}

	return c.JSON(models.DeleteResponse{Success: true})
}
