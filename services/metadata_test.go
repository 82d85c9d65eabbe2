package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"yt-fetch-api/config"
	"yt-fetch-api/models"
)

const sampleListing = `[youtube] AAAAAAAAAAA: Downloading webpage
[info] Available formats for AAAAAAAAAAA:
format code  extension  resolution note
249          webm       audio only tiny   50k , webm_dash container, opus @ 50k (48000Hz), 1.27MiB
250          webm       audio only tiny   70k , webm_dash container, opus @ 70k (48000Hz), 1.73MiB
140          m4a        audio only tiny  129k , m4a_dash container, mp4a.40.2@129k (44100Hz), 3.21MiB
160          mp4        256x144    144p   29k , mp4_dash container, avc1.4d400c, video only
134          mp4        640x360    360p  120k , mp4_dash container, avc1.4d401e, video only
136          mp4        1280x720   720p  300k , mp4_dash container, avc1.64001f, video only
18           mp4        640x360    360p  200k , avc1.42001E, mp4a.40.2 (44100Hz), 5.00MiB
22           mp4        1280x720   720p  400k , avc1.64001F, mp4a.40.2 (44100Hz) (best)
`

func TestParseFormatListing(t *testing.T) {
	formats := ParseFormatListing(sampleListing)

	if len(formats) != 8 {
		t.Fatalf("got %d formats, want 8", len(formats))
	}

	first := formats[0]
	if first.FormatID != "249" || first.Ext != "webm" || first.Quality != "audio" {
		t.Errorf("first format = %+v, want id=249 ext=webm quality=audio", first)
	}
	if !strings.Contains(first.Note, "opus") {
		t.Errorf("first format note %q does not carry the remaining tokens", first.Note)
	}

	last := formats[7]
	if last.FormatID != "22" || last.Ext != "mp4" || last.Quality != "1280x720" {
		t.Errorf("last format = %+v, want id=22 ext=mp4 quality=1280x720", last)
	}
}

func TestParseFormatListingExcludesHeaderWord(t *testing.T) {
	listing := "137 mp4 format 1080p video only\n"
	formats := ParseFormatListing(listing)
	if len(formats) != 1 {
		t.Fatalf("got %d formats, want 1", len(formats))
	}
	if formats[0].Quality != "" {
		t.Errorf("quality = %q, want the literal header word excluded", formats[0].Quality)
	}
}

func TestParseFormatListingSkipsUnmarkedLines(t *testing.T) {
	listing := "sb0 storyboard 48x27 mhtml\n251 opus-only line without marker\n"
	if formats := ParseFormatListing(listing); len(formats) != 0 {
		t.Errorf("got %d formats from unmarked lines, want 0", len(formats))
	}
}

func TestParseFormatListingTruncation(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < config.MaxFormats+5; i++ {
		sb.WriteString("137 mp4 1080p dash\n")
	}
	formats := ParseFormatListing(sb.String())
	if len(formats) != config.MaxFormats {
		t.Errorf("got %d formats, want truncation at %d", len(formats), config.MaxFormats)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{59, "0:59"},
		{60, "1:00"},
		{212, "3:32"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{7322, "2:02:02"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

// writeSleepingTool writes a fake tool that passes its version check but
// hangs on any real invocation. It drops the inherited stdio pipes before
// sleeping so the kill is observed immediately.
func writeSleepingTool(t *testing.T) string {
	t.Helper()
	script := `#!/bin/sh
if [ "$1" = "--version" ]; then exit 0; fi
exec >/dev/null 2>&1
sleep 30
exit 0
`
	path := filepath.Join(t.TempDir(), "yt-dlp-sleeper")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write sleeping tool: %v", err)
	}
	return path
}

func TestFetchMetadataTimeout(t *testing.T) {
	oldTool, oldTimeout := config.YtDlpPath, config.MetadataTimeout
	defer func() {
		config.YtDlpPath = oldTool
		config.MetadataTimeout = oldTimeout
	}()
	config.YtDlpPath = writeSleepingTool(t)
	config.MetadataTimeout = 150 * time.Millisecond

	start := time.Now()
	_, err := FetchMetadata("https://www.youtube.com/watch?v=AAAAAAAAAAA")
	elapsed := time.Since(start)

	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("err = %v, want ErrExtractionFailed", err)
	}
	if elapsed > 3*time.Second {
		t.Errorf("metadata fetch took %v, want prompt return after the %v timeout", elapsed, config.MetadataTimeout)
	}
}

func TestApplyDefaults(t *testing.T) {
	meta := &models.VideoMetadata{}
	applyDefaults(meta, "AAAAAAAAAAA")

	if meta.Title != "AAAAAAAAAAA" {
		t.Errorf("default title = %q, want the video ID", meta.Title)
	}
	want := "https://i.ytimg.com/vi/AAAAAAAAAAA/hqdefault.jpg"
	if meta.Thumbnail != want {
		t.Errorf("default thumbnail = %q, want %q", meta.Thumbnail, want)
	}

	meta = &models.VideoMetadata{Title: "Real title", Thumbnail: "https://example.com/t.jpg"}
	applyDefaults(meta, "AAAAAAAAAAA")
	if meta.Title != "Real title" || meta.Thumbnail != "https://example.com/t.jpg" {
		t.Errorf("tool-reported values were overwritten: %+v", meta)
	}
}
