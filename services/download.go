package services

import (
	"fmt"
	"log"
	"strings"
	"time"
	"yt-fetch-api/config"
	"yt-fetch-api/models"
	"yt-fetch-api/utils"
)

// Download translates the request into one tool invocation, runs it under
// config.DownloadTimeout, then locates the resulting artifact by its
// reserved prefix. The concrete extension is decided by the tool.
func Download(req *models.DownloadRequest) (*models.ArtifactDescriptor, error) {
	quality := req.Quality
	if quality == "" {
		quality = "highest"
	}
	format := req.Format
	if format == "" {
		format = config.DefaultContainer
	}

	// Allow-list gate: nothing user-influenced reaches the argv otherwise
	if err := utils.ValidateQuality(quality); err != nil {
		return nil, err
	}
	if err := utils.ValidateContainer(format); err != nil {
		return nil, err
	}

	videoID, err := utils.ExtractVideoID(req.URL)
	if err != nil {
		return nil, err
	}

	avail := Probe()
	if !avail.Available {
		return nil, ErrToolMissing
	}

	// Prefix reserved before the tool runs; the file materializes under it
	prefix := ArtifactPrefix(videoID, time.Now())
	args := BuildToolArgs(quality, format, Artifacts.OutputTemplate(prefix), req.URL)

	log.Printf("[Download] %s %s quality=%s format=%s\n", avail.Tool, videoID, quality, format)

	if _, err := runTool(avail.Path, config.DownloadTimeout, args...); err != nil {
		log.Printf("[Download] %s failed for %s: %v\n", avail.Tool, videoID, err)
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	names, err := Artifacts.ListNames()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactMissing, err)
	}
	fileName, ok := FindByPrefix(names, prefix)
	if !ok {
		log.Printf("[Download] tool exited clean but no file matches prefix %s\n", prefix)
		return nil, ErrArtifactMissing
	}

	size, err := Artifacts.Stat(fileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactMissing, err)
	}

	log.Printf("[Download] Completed: %s (%d bytes)\n", fileName, size)

	return &models.ArtifactDescriptor{
		FileName:    fileName,
		Size:        size,
		DownloadURL: "/files/" + fileName,
	}, nil
}

// ArtifactPrefix builds the unique staging prefix for one request. Two
// near-simultaneous requests for the same video get distinct prefixes
// through the millisecond timestamp.
func ArtifactPrefix(videoID string, createdAt time.Time) string {
	return fmt.Sprintf("video_%s_%d", videoID, createdAt.UnixMilli())
}

// BuildToolArgs maps a validated quality selector onto one of the three
// invocation shapes. Callers must have allow-list-checked quality and
// format already.
func BuildToolArgs(quality, format, outputTemplate, url string) []string {
	var args []string

	switch quality {
	case "audio":
		args = append(args,
			"-x",
			"--audio-format", config.AudioFormat,
			"--audio-quality", config.AudioQuality,
		)
	case "highest":
		args = append(args,
			"-f", fmt.Sprintf("bestvideo[ext=%s]+bestaudio/best", format),
			"--merge-output-format", format,
		)
	default:
		// Height-bound selector like "720p": strip the suffix for the ceiling
		height := strings.TrimSuffix(quality, "p")
		args = append(args,
			"-f", fmt.Sprintf("bestvideo[height<=%s][ext=%s]+bestaudio/best[height<=%s]", height, format, height),
			"--merge-output-format", format,
		)
	}

	return append(args, "--no-playlist", "-o", outputTemplate, url)
}

// FindByPrefix locates the artifact in a directory-name snapshot. Pure so
// the discovery contract is testable apart from filesystem timing.
func FindByPrefix(names []string, prefix string) (string, bool) {
	for _, name := range names {
		if strings.Contains(name, prefix) {
			return name, true
		}
	}
	return "", false
}
