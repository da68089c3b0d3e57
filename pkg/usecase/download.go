package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ytlink/pkg/domain/interfaces"
	"github.com/m-mizutani/ytlink/pkg/domain/model"
	"github.com/m-mizutani/ytlink/pkg/domain/types"
	"github.com/m-mizutani/ytlink/pkg/infra/metrics"
	"github.com/m-mizutani/ytlink/pkg/utils/async"
)

type downloadUseCase struct {
	converter  interfaces.ConverterClient
	dispatcher *async.Dispatcher
	metrics    *metrics.Metrics
}

// DownloadOption is a functional option of the download use case
type DownloadOption func(*downloadUseCase)

// WithDispatcher sets the dispatcher that runs cache registrations
func WithDispatcher(d *async.Dispatcher) DownloadOption {
	return func(uc *downloadUseCase) {
		uc.dispatcher = d
	}
}

// WithMetrics enables download metrics
func WithMetrics(m *metrics.Metrics) DownloadOption {
	return func(uc *downloadUseCase) {
		uc.metrics = m
	}
}

// NewDownload creates a new instance of DownloadUseCase
func NewDownload(converter interfaces.ConverterClient, opts ...DownloadOption) interfaces.DownloadUseCase {
	uc := &downloadUseCase{
		converter:  converter,
		dispatcher: async.New(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Download validates the request, asks the provider's cache and converts the
// video when the cache misses. A fresh conversion is registered to the
// provider in background; its failure does not affect the returned result.
func (uc *downloadUseCase) Download(ctx context.Context, req *model.DownloadRequest) (*model.DownloadResult, error) {
	target, err := req.Validate()
	if err != nil {
		uc.metrics.RecordDownload(types.ParseFormat(req.Format).String(), metrics.ResultInvalid)
		return nil, err
	}

	logger := ctxlog.From(ctx).With(
		slog.String("download_id", uuid.NewString()),
		slog.String("video_id", target.VideoID.String()),
		slog.String("format", target.Format.String()),
		slog.Int("quality", int(target.Quality)),
	)
	ctx = ctxlog.With(ctx, logger)

	result, cached, err := uc.resolve(ctx, target)
	if err != nil {
		uc.metrics.RecordDownload(target.Format.String(), metrics.ResultFailed)
		return nil, err
	}

	if cached {
		uc.metrics.RecordDownload(target.Format.String(), metrics.ResultCached)
		logger.Info("Found cached conversion", "title", result.Title)
	} else {
		uc.metrics.RecordDownload(target.Format.String(), metrics.ResultConverted)
		logger.Info("Converted video", "title", result.Title)
	}

	return result, nil
}

func (uc *downloadUseCase) resolve(ctx context.Context, target *model.Target) (*model.DownloadResult, bool, error) {
	logger := ctxlog.From(ctx)

	cached, err := uc.converter.CheckDatabase(ctx, target)
	if err != nil {
		return nil, false, err
	}
	if cached != nil {
		return cached, true, nil
	}
	logger.Debug("No cached conversion")

	sourceURL := target.SourceURL()
	videoData, err := uc.converter.GetVideoData(ctx, sourceURL)
	if err != nil {
		return nil, false, err
	}

	link, err := uc.converter.DownloadVideo(ctx, &model.ConvertRequest{
		SourceURL: sourceURL,
		Title:     videoData.Title,
		Quality:   target.Quality,
		Format:    target.Format,
	})
	if err != nil {
		return nil, false, err
	}

	conv := &model.Conversion{
		VideoID:    target.VideoID,
		ServerPath: link,
		Title:      videoData.Title,
		Quality:    target.Quality,
		Format:     target.Format,
	}
	uc.dispatcher.Dispatch(ctx, func(ctx context.Context) error {
		err := uc.converter.InsertToDatabase(ctx, conv)
		uc.metrics.RecordRegistration(err)
		if err != nil {
			return goerr.Wrap(err, "failed to register conversion",
				goerr.V("video_id", conv.VideoID),
				goerr.V("server_path", conv.ServerPath))
		}
		ctxlog.From(ctx).Debug("Registered conversion")
		return nil
	})

	return &model.DownloadResult{
		Title:    videoData.Title,
		Download: link,
	}, false, nil
}
