package model

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mode selects what a DownloadRequest produces.
type Mode string

const (
	// ModeVideoMP4 downloads the best available video+audio as an MP4 file.
	ModeVideoMP4 Mode = "video"

	// ModeAudioMP3 extracts the audio track as an MP3 file.
	ModeAudioMP3 Mode = "audio"

	// ModeBoth produces both an MP4 and an MP3 via two independent runs.
	ModeBoth Mode = "both"
)

// String returns the string representation of Mode.
func (m Mode) String() string {
	return string(m)
}

// NeedsFFmpeg reports whether the mode requires ffmpeg for audio
// post-processing. Plain video downloads only need the extractor.
func (m Mode) NeedsFFmpeg() bool {
	return m == ModeAudioMP3 || m == ModeBoth
}

// ParseMode converts a user-supplied mode string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "video", "mp4", "video_mp4":
		return ModeVideoMP4, nil
	case "audio", "mp3", "audio_mp3":
		return ModeAudioMP3, nil
	case "both", "all":
		return ModeBoth, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected video, audio or both)", s)
	}
}

// DownloadRequest describes a single download invocation. It is immutable
// once constructed; Validate must pass before it is handed to the
// orchestrator.
type DownloadRequest struct {
	ID        string
	URL       string
	DestDir   string
	Mode      Mode
	CreatedAt time.Time
}

// NewDownloadRequest builds a request for the given URL, destination
// directory and mode. An empty destDir resolves to the current working
// directory.
func NewDownloadRequest(rawURL, destDir string, mode Mode) DownloadRequest {
	if destDir == "" {
		destDir = "."
	}
	return DownloadRequest{
		ID:        generateRequestID(),
		URL:       strings.TrimSpace(rawURL),
		DestDir:   destDir,
		Mode:      mode,
		CreatedAt: time.Now(),
	}
}

// Validate checks the request before dispatch: the URL must be a non-empty
// absolute http(s) URL and the destination directory must exist or be
// creatable with write permission. Validation failures carry the matching
// error kind so front ends can surface them uniformly.
func (r DownloadRequest) Validate() error {
	if r.URL == "" {
		return &KindError{Kind: ErrURLInvalid, Message: "URL is empty"}
	}
	parsed, err := url.Parse(r.URL)
	if err != nil {
		return &KindError{Kind: ErrURLInvalid, Message: fmt.Sprintf("cannot parse URL: %v", err)}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &KindError{Kind: ErrURLInvalid, Message: fmt.Sprintf("URL must start with http:// or https://, got %q", r.URL)}
	}
	if parsed.Host == "" {
		return &KindError{Kind: ErrURLInvalid, Message: fmt.Sprintf("URL has no host: %q", r.URL)}
	}

	if err := os.MkdirAll(r.DestDir, 0o755); err != nil {
		if os.IsPermission(err) {
			return &KindError{Kind: ErrPermissionDenied, Message: fmt.Sprintf("cannot create destination directory: %v", err)}
		}
		return &KindError{Kind: ErrUnknownFailure, Message: fmt.Sprintf("cannot create destination directory: %v", err)}
	}

	// os.MkdirAll succeeds on an existing dir regardless of writability,
	// so probe write permission explicitly.
	probe := filepath.Join(r.DestDir, ".ytfetch-write-probe")
	f, err := os.Create(probe)
	if err != nil {
		return &KindError{Kind: ErrPermissionDenied, Message: fmt.Sprintf("destination directory is not writable: %v", err)}
	}
	f.Close()
	os.Remove(probe)

	return nil
}

// generateRequestID generates a unique request ID using UUID v7 for better
// uniqueness and time ordering.
func generateRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf("req-%d", time.Now().UnixNano())
	}
	return "req-" + id.String()
}
