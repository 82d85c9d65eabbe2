package services

import (
	"context"
	"os/exec"
	"time"
	"yt-fetch-api/config"
)

// Availability reports which extraction tool is usable, if any
type Availability struct {
	Available bool
	Tool      string // canonical name: "yt-dlp" or "youtube-dl"
	Path      string // binary path or name used to invoke it
}

const probeTimeout = 10 * time.Second

// Probe checks for the primary tool, then the fallback. An installation can
// be added or removed between requests, so the result is computed fresh on
// every call. A missing binary is a normal outcome, not an error.
func Probe() Availability {
	candidates := []struct {
		name string
		path string
	}{
		{config.ToolYtDlp, config.YtDlpPath},
		{config.ToolYoutubeDL, config.YoutubeDLPath},
	}

	for _, c := range candidates {
		if versionCheck(c.path) {
			return Availability{Available: true, Tool: c.name, Path: c.path}
		}
	}
	return Availability{}
}

// ProbeFFmpeg reports whether ffmpeg is runnable. Audio extraction and
// stream merging depend on it being on the tool's path.
func ProbeFFmpeg() bool {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	return exec.CommandContext(ctx, config.FFmpegPath, "-version").Run() == nil
}

func versionCheck(path string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	return exec.CommandContext(ctx, path, "--version").Run() == nil
}
