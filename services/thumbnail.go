package services

import (
	"fmt"
	"io"
	"net/http"
	"yt-fetch-api/config"
)

// FetchThumbnail opens the video's thumbnail through the shared HTTP
// client. The caller owns the returned body.
func FetchThumbnail(videoID string) (io.ReadCloser, string, int64, error) {
	url := fmt.Sprintf(config.ThumbnailURLTemplate, videoID)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, "", 0, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := config.ThumbClient.Do(req)
	if err != nil {
		return nil, "", 0, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", 0, ErrNotFound
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return resp.Body, contentType, resp.ContentLength, nil
}
