package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"
	"yt-fetch-api/config"
	"yt-fetch-api/models"
	"yt-fetch-api/utils"
)

// toolJSON matches the fields we use from the tool's --dump-json output
type toolJSON struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Thumbnail   string  `json:"thumbnail"`
	Duration    float64 `json:"duration"`
	Uploader    string  `json:"uploader"`
	ViewCount   int64   `json:"view_count"`
	UploadDate  string  `json:"upload_date"`
	Description string  `json:"description"`
}

// FetchMetadata runs the extraction tool twice: once for the structured
// metadata document, once for the free-text format listing. Both runs are
// bounded by config.MetadataTimeout.
func FetchMetadata(url string) (*models.VideoMetadata, error) {
	videoID, err := utils.ExtractVideoID(url)
	if err != nil {
		return nil, err
	}

	avail := Probe()
	if !avail.Available {
		return nil, ErrToolMissing
	}

	out, err := runTool(avail.Path, config.MetadataTimeout, "--dump-json", "--no-playlist", url)
	if err != nil {
		log.Printf("[Meta] %s metadata fetch failed for %s: %v\n", avail.Tool, videoID, err)
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	var data toolJSON
	if err := json.Unmarshal(out, &data); err != nil {
		return nil, fmt.Errorf("%w: malformed metadata document: %v", ErrExtractionFailed, err)
	}

	listing, err := runTool(avail.Path, config.MetadataTimeout, "-F", "--no-playlist", url)
	if err != nil {
		log.Printf("[Meta] %s format listing failed for %s: %v\n", avail.Tool, videoID, err)
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	meta := &models.VideoMetadata{
		ID:          videoID,
		Title:       data.Title,
		Thumbnail:   data.Thumbnail,
		Duration:    FormatDuration(data.Duration),
		Uploader:    data.Uploader,
		Views:       data.ViewCount,
		UploadDate:  data.UploadDate,
		Description: data.Description,
		Formats:     ParseFormatListing(string(listing)),
	}
	applyDefaults(meta, videoID)

	return meta, nil
}

// applyDefaults overlays documented fallbacks onto tool-reported values
func applyDefaults(meta *models.VideoMetadata, videoID string) {
	if meta.Title == "" {
		meta.Title = videoID
	}
	if meta.Thumbnail == "" {
		meta.Thumbnail = fmt.Sprintf(config.ThumbnailURLTemplate, videoID)
	}
}

// containerMarkers select the listing lines worth parsing
var containerMarkers = []string{"mp4", "webm", "m4a"}

// ParseFormatListing parses the tool's human-readable -F output. Lines
// carrying a known container marker are split on whitespace: first token is
// the format id, second the container, third the quality label (the header
// word "format" is excluded), and the remainder joins into a note. The
// result is truncated to the first config.MaxFormats entries.
func ParseFormatListing(listing string) []models.FormatDescriptor {
	formats := []models.FormatDescriptor{}

	for _, line := range strings.Split(listing, "\n") {
		if !hasContainerMarker(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		desc := models.FormatDescriptor{
			FormatID: fields[0],
			Ext:      fields[1],
		}
		if len(fields) > 2 && fields[2] != "format" {
			desc.Quality = fields[2]
		}
		if len(fields) > 3 {
			desc.Note = strings.Join(fields[3:], " ")
		}

		formats = append(formats, desc)
		if len(formats) >= config.MaxFormats {
			break
		}
	}

	return formats
}

func hasContainerMarker(line string) bool {
	for _, marker := range containerMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// FormatDuration normalizes a duration in seconds to H:MM:SS or M:SS
func FormatDuration(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// runTool executes the extraction tool with a structured argument list (no
// shell) under the given timeout, returning stdout. The optional SOCKS5
// proxy applies to every invocation.
func runTool(path string, timeout time.Duration, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if config.ProxyAddr != "" {
		args = append([]string{"--proxy", "socks5://" + config.ProxyAddr}, args...)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Orphaned children of a killed tool must not hold the pipes open forever
	cmd.WaitDelay = 5 * time.Second

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("timed out after %v", timeout)
		}
		return nil, fmt.Errorf("%v: %s", err, firstLine(stderr.String()))
	}

	return stdout.Bytes(), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		return s[:idx]
	}
	return s
}
