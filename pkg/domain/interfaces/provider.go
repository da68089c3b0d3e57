package interfaces

import (
	"context"

	"github.com/m-mizutani/ytlink/pkg/domain/model"
)

// ConverterClient defines operations of the third-party conversion provider
type ConverterClient interface {
	// CheckDatabase looks up a finished conversion in the provider's cache.
	// It returns nil without error on a cache miss.
	CheckDatabase(ctx context.Context, target *model.Target) (*model.DownloadResult, error)

	// GetVideoData fetches metadata of the video behind sourceURL
	GetVideoData(ctx context.Context, sourceURL string) (*model.VideoData, error)

	// DownloadVideo requests a conversion and returns the link to the converted file
	DownloadVideo(ctx context.Context, req *model.ConvertRequest) (string, error)

	// InsertToDatabase registers a finished conversion to the provider's cache
	InsertToDatabase(ctx context.Context, conv *model.Conversion) error
}
