package config

import (
	"context"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	_ "github.com/joho/godotenv/autoload" // Auto-load .env file
	"golang.org/x/net/proxy"
)

const (
	// Server
	DefaultPort = "5001"

	// Artifact lifecycle
	MaxArtifactAge = 1 * time.Hour
	SweepSchedule  = "*/30 * * * *" // Every 30 minutes

	// Format listing is truncated to this many entries
	MaxFormats = 10

	// Audio extraction
	AudioFormat  = "mp3"
	AudioQuality = "192K"

	// Containers
	DefaultContainer = "mp4"

	// Request ID
	RequestIDLength = 21

	// Thumbnail relay
	ThumbnailURLTemplate = "https://i.ytimg.com/vi/%s/hqdefault.jpg"
	ThumbnailTimeout     = 15 * time.Second

	// 64KB - optimal for io.CopyBuffer
	BufferSize = 64 * 1024
)

// Canonical tool names reported by the health endpoint
const (
	ToolYtDlp     = "yt-dlp"
	ToolYoutubeDL = "youtube-dl"
)

// Extraction tool timeouts and the post-serve delete delay
var (
	MetadataTimeout  = 30 * time.Second
	DownloadTimeout  = 300 * time.Second
	ServeDeleteDelay = 5 * time.Second
)

// Extraction tool binaries. Overridable via env for containerized installs;
// bare names rely on PATH lookup.
var (
	YtDlpPath     = getEnv("YTDLP_PATH", ToolYtDlp)
	YoutubeDLPath = getEnv("YOUTUBE_DL_PATH", ToolYoutubeDL)
	FFmpegPath    = getEnv("FFMPEG_PATH", "ffmpeg")
)

var (
	Port       = getEnv("PORT", DefaultPort)
	StorageDir = getEnv("STORAGE_DIR", "./storage")

	// Optional SOCKS5 proxy. When set, the thumbnail client dials through it
	// and the extraction tool receives it via --proxy.
	ProxyAddr = os.Getenv("PROXY_ADDR")
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Supported quality selectors besides "audio" and "highest"
var HeightQualities = []string{"2160p", "1440p", "1080p", "720p", "480p", "360p", "144p"}

// Supported target containers
var Containers = []string{"mp4", "webm", "mkv"}

// BufferPool for reusing copy buffers (reduces GC pressure)
var BufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, BufferSize)
		return &buf
	},
}

// ThumbClient serves the thumbnail relay (connections pooled)
var ThumbClient *http.Client

func newThumbTransport() *http.Transport {
	t := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	if ProxyAddr != "" {
		t.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer, err := proxy.SOCKS5("tcp", ProxyAddr, nil, proxy.Direct)
			if err != nil {
				return nil, err
			}
			return dialer.Dial(network, addr)
		}
	}
	return t
}

func init() {
	ThumbClient = &http.Client{
		Transport: newThumbTransport(),
		Timeout:   ThumbnailTimeout,
	}
}
