package download

import (
	"context"

	"github.com/ytget/ytfetch/internal/model"
)

// Downloader defines the interface front ends use to drive downloads.
type Downloader interface {
	// SetProgressCallback sets the callback receiving normalized
	// progress events for the request in flight.
	SetProgressCallback(func(model.ProgressEvent))

	// Download executes the request and returns its terminal result.
	Download(ctx context.Context, req model.DownloadRequest) model.DownloadResult
}
