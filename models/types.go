package models

// InfoRequest represents the incoming metadata request
type InfoRequest struct {
	URL string `json:"url"`
}

// DownloadRequest represents the incoming download request
type DownloadRequest struct {
	URL     string `json:"url"`
	Quality string `json:"quality,omitempty"` // "audio", "highest", or "720p" etc.
	Format  string `json:"format,omitempty"`  // target container, default mp4
}

// FormatDescriptor is one entry of the tool's format listing
type FormatDescriptor struct {
	FormatID string `json:"formatId"`
	Ext      string `json:"ext"`
	Quality  string `json:"quality,omitempty"`
	Note     string `json:"note,omitempty"`
}

// VideoMetadata is the per-request metadata report. Never persisted.
type VideoMetadata struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Thumbnail   string             `json:"thumbnail"`
	Duration    string             `json:"duration"` // H:MM:SS or M:SS
	Uploader    string             `json:"uploader,omitempty"`
	Views       int64              `json:"views,omitempty"`
	UploadDate  string             `json:"uploadDate,omitempty"`
	Description string             `json:"description,omitempty"`
	Formats     []FormatDescriptor `json:"formats"`
}

// ArtifactDescriptor describes a staged download ready to be fetched
type ArtifactDescriptor struct {
	FileName    string `json:"fileName"`
	Size        int64  `json:"size"`
	DownloadURL string `json:"downloadUrl"`
}

// HealthResponse for health check
type HealthResponse struct {
	Status          string `json:"status"`
	Tool            string `json:"tool,omitempty"`
	ToolAvailable   bool   `json:"toolAvailable"`
	FFmpegAvailable bool   `json:"ffmpegAvailable"`
	Timestamp       int64  `json:"timestamp"`
}

// DeleteResponse for artifact deletion
type DeleteResponse struct {
	Success bool `json:"success"`
}
