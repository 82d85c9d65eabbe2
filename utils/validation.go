package utils

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"yt-fetch-api/config"
)

var (
	// YouTube URL patterns (watch, embed, short, shorts links)
	youtubeURLPattern = regexp.MustCompile(`(?:youtube\.com\/(?:watch\?v=|embed\/|v\/|shorts\/)|youtu\.be\/)([a-zA-Z0-9_-]{11})`)
	videoIDPattern    = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	// Staged artifact names follow the video_{id}_{timestamp} prefix convention
	artifactNamePattern = regexp.MustCompile(`^video_[a-zA-Z0-9_-]{11}_\d+\.[a-zA-Z0-9]+$`)
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ExtractVideoID extracts the 11-character video ID from a YouTube URL.
// No network access; pure pattern match.
func ExtractVideoID(url string) (string, error) {
	matches := youtubeURLPattern.FindStringSubmatch(url)
	if len(matches) < 2 {
		return "", ValidationError{Field: "url", Message: "Invalid YouTube URL"}
	}
	return matches[1], nil
}

// ValidateVideoID checks a bare video identifier
func ValidateVideoID(id string) bool {
	return videoIDPattern.MatchString(id)
}

// ValidateQuality enforces the quality selector allow-list. Every selector
// that reaches the subprocess layer must pass this check first.
func ValidateQuality(quality string) error {
	if quality == "audio" || quality == "highest" {
		return nil
	}
	if slices.Contains(config.HeightQualities, quality) {
		return nil
	}
	return ValidationError{Field: "quality", Message: fmt.Sprintf("Must be 'audio', 'highest' or one of: %v", config.HeightQualities)}
}

// ValidateContainer enforces the target container allow-list
func ValidateContainer(format string) error {
	if !slices.Contains(config.Containers, format) {
		return ValidationError{Field: "format", Message: fmt.Sprintf("Invalid container. Must be one of: %v", config.Containers)}
	}
	return nil
}

// ValidateArtifactName checks a staged file name: prefix convention plus
// path traversal rejection.
func ValidateArtifactName(name string) bool {
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return false
	}
	return artifactNamePattern.MatchString(name)
}
