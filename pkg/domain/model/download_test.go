package model_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/ytlink/pkg/domain/model"
	"github.com/m-mizutani/ytlink/pkg/domain/types"
)

func TestDownloadRequest_HasRequiredParams(t *testing.T) {
	tests := []struct {
		name string
		req  model.DownloadRequest
		want bool
	}{
		{"all set", model.DownloadRequest{URL: "u", Quality: "q", Format: "f"}, true},
		{"missing url", model.DownloadRequest{Quality: "q", Format: "f"}, false},
		{"missing quality", model.DownloadRequest{URL: "u", Format: "f"}, false},
		{"missing format", model.DownloadRequest{URL: "u", Quality: "q"}, false},
		{"all missing", model.DownloadRequest{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, tt.req.HasRequiredParams(), tt.want)
		})
	}
}

func TestDownloadRequest_Validate(t *testing.T) {
	t.Run("video request", func(t *testing.T) {
		req := &model.DownloadRequest{
			URL:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Quality: "720",
			Format:  "mp4",
		}
		target, err := req.Validate()
		gt.NoError(t, err)
		gt.Equal(t, target.VideoID, types.VideoID("dQw4w9WgXcQ"))
		gt.Equal(t, target.Quality, types.QualityCode(720))
		gt.Equal(t, target.Format, types.FormatMP4)
		gt.Equal(t, target.Format.Value(), 0)
		gt.Equal(t, target.SourceURL(), "http://googleusercontent.com/youtube.com/dQw4w9WgXcQ")
	})

	t.Run("unknown format is treated as audio", func(t *testing.T) {
		req := &model.DownloadRequest{
			URL:     "https://youtu.be/dQw4w9WgXcQ",
			Quality: "320",
			Format:  "flac",
		}
		target, err := req.Validate()
		gt.NoError(t, err)
		gt.Equal(t, target.Format, types.FormatMP3)
		gt.Equal(t, target.Format.Value(), 1)
		gt.Equal(t, target.Quality, types.QualityCode(0))
	})

	t.Run("invalid URL", func(t *testing.T) {
		req := &model.DownloadRequest{
			URL:     "https://example.com/video",
			Quality: "320",
			Format:  "mp3",
		}
		_, err := req.Validate()
		gt.Error(t, err)
		gt.Equal(t, err.Error(), "Invalid YouTube URL")
		gt.True(t, goerr.HasTag(err, types.ErrTagValidation))
	})

	t.Run("invalid quality", func(t *testing.T) {
		req := &model.DownloadRequest{
			URL:     "https://youtu.be/dQw4w9WgXcQ",
			Quality: "500",
			Format:  "mp3",
		}
		_, err := req.Validate()
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("96, 128, 256, 320")
	})
}
