package model

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ytlink/pkg/domain/types"
)

// DownloadRequest is the set of query parameters of a download API call
type DownloadRequest struct {
	URL     string
	Quality string
	Format  string
}

// HasRequiredParams returns false if any parameter is missing or empty
func (x *DownloadRequest) HasRequiredParams() bool {
	return x.URL != "" && x.Quality != "" && x.Format != ""
}

// Target is a validated DownloadRequest in the form the provider expects
type Target struct {
	VideoID types.VideoID
	Quality types.QualityCode
	Format  types.Format
}

// Validate extracts the video ID and resolves the quality code. Returned
// errors are tagged with types.ErrTagValidation.
func (x *DownloadRequest) Validate() (*Target, error) {
	videoID, ok := ExtractVideoID(x.URL)
	if !ok {
		return nil, goerr.New("Invalid YouTube URL",
			goerr.T(types.ErrTagValidation),
			goerr.V("url", x.URL))
	}

	format := types.ParseFormat(x.Format)
	quality, err := ResolveQuality(format, x.Quality)
	if err != nil {
		return nil, err
	}

	return &Target{
		VideoID: videoID,
		Quality: quality,
		Format:  format,
	}, nil
}

// SourceURL returns the URL the provider resolves the video from
func (x *Target) SourceURL() string {
	return fmt.Sprintf("http://googleusercontent.com/youtube.com/%s", x.VideoID)
}

// DownloadResult is the converted media returned to the caller
type DownloadResult struct {
	Title    string
	Download string // URL of the converted file
}

// VideoData is the metadata the provider reports for a source URL
type VideoData struct {
	Title string
}

// ConvertRequest asks the provider to produce a converted file
type ConvertRequest struct {
	SourceURL string
	Title     string
	Quality   types.QualityCode
	Format    types.Format
}

// Conversion is a finished conversion registered to the provider's cache
type Conversion struct {
	VideoID    types.VideoID
	ServerPath string
	Title      string
	Quality    types.QualityCode
	Format     types.Format
}
