package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"yt-fetch-api/config"
	"yt-fetch-api/services"
	"yt-fetch-api/utils"

	"github.com/gofiber/fiber/v2"
)

// HandleThumbnail handles GET /api/thumbnail/:id, relaying the video
// thumbnail through the server so browser clients avoid cross-origin
// fetches of the upstream image host.
func HandleThumbnail(c *fiber.Ctx) error {
	videoID := c.Params("id")

	if !utils.ValidateVideoID(videoID) {
		return utils.BadRequest(c, utils.ErrInvalidURL, "Invalid video ID")
	}

	body, contentType, size, err := services.FetchThumbnail(videoID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFound(c, utils.ErrFileNotFound, "Thumbnail not found")
		}
		log.Printf("[Thumbnail] Fetch failed for %s: %v\n", videoID, err)
		return utils.BadGateway(c, utils.ErrExtractFailed, "Failed to fetch thumbnail")
	}
	defer body.Close()

	c.Set(fiber.HeaderContentType, contentType)
	if size > 0 {
		c.Set(fiber.HeaderContentLength, fmt.Sprintf("%d", size))
	}

	buf := config.BufferPool.Get().(*[]byte)
	defer config.BufferPool.Put(buf)

	if _, err := io.CopyBuffer(c, body, *buf); err != nil {
		log.Printf("[Thumbnail] Stream interrupted for %s: %v\n", videoID, err)
	}
	return nil
}
