package interfaces

import (
	"context"

	"github.com/m-mizutani/ytlink/pkg/domain/model"
)

// DownloadUseCase defines the interface for resolving a download link
type DownloadUseCase interface {
	// Download validates the request and returns the converted media link
	Download(ctx context.Context, req *model.DownloadRequest) (*model.DownloadResult, error)
}
