package handlers

import (
	"time"
	"yt-fetch-api/models"
	"yt-fetch-api/services"

	"github.com/gofiber/fiber/v2"
)

// HandleHealth handles GET /health, reporting which extraction tool is
// usable right now. The probe is never cached across requests.
func HandleHealth(c *fiber.Ctx) error {
	avail := services.Probe()
	ffmpeg := services.ProbeFFmpeg()

	status := "ok"
	if !avail.Available {
		status = "degraded"
	}

	return c.JSON(models.HealthResponse{
		Status:          status,
		Tool:            avail.Tool,
		ToolAvailable:   avail.Available,
		FFmpegAvailable: ffmpeg,
		Timestamp:       time.Now().UnixMilli(),
	})
}
