// Package cnvmp3 is a client of the cnvmp3.com conversion service. Paths,
// headers and JSON field names mirror what the service's web front-end sends.
package cnvmp3

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ytlink/pkg/domain/model"
	"github.com/m-mizutani/ytlink/pkg/domain/types"
	"github.com/m-mizutani/ytlink/pkg/infra/metrics"
)

const (
	// DefaultBaseURL is the origin of the conversion service
	DefaultBaseURL = "https://cnvmp3.com"
	// DefaultTimeout bounds a single call to the service
	DefaultTimeout = 30 * time.Second

	userAgent      = "Mozilla/5.0 (Linux; Android 10)"
	headerOrigin   = "https://cnvmp3.com"
	headerReferer  = "https://cnvmp3.com/v51"
	videoDataToken = "1234"
)

// Endpoint paths
const (
	pathCheckDatabase    = "/check_database.php"
	pathGetVideoData     = "/get_video_data.php"
	pathDownloadVideo    = "/download_video_ucep.php"
	pathInsertToDatabase = "/insert_to_database.php"
)

// Client calls the conversion service over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// Option is a functional option for Client
type Option func(*Client)

// WithBaseURL overrides the service origin
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithTimeout sets the timeout of each call
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithMetrics enables recording of per-endpoint metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a new conversion service client
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type checkDatabaseRequest struct {
	YoutubeID   string `json:"youtube_id"`
	Quality     int    `json:"quality"`
	FormatValue int    `json:"formatValue"`
}

type checkDatabaseResponse struct {
	Success providerFlag    `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type cachedConversion struct {
	Title      providerText `json:"title"`
	ServerPath providerText `json:"server_path"`
}

// CheckDatabase looks up a finished conversion. A response without success
// or without a data object is a cache miss.
func (c *Client) CheckDatabase(ctx context.Context, target *model.Target) (*model.DownloadResult, error) {
	req := &checkDatabaseRequest{
		YoutubeID:   target.VideoID.String(),
		Quality:     int(target.Quality),
		FormatValue: target.Format.Value(),
	}

	var resp checkDatabaseResponse
	if err := c.post(ctx, pathCheckDatabase, req, &resp); err != nil {
		return nil, err
	}

	if !bool(resp.Success) || !isObject(resp.Data) {
		return nil, nil
	}

	var cached cachedConversion
	if err := json.Unmarshal(resp.Data, &cached); err != nil {
		return nil, goerr.Wrap(err, "failed to decode cached conversion",
			goerr.T(types.ErrTagTransport),
			goerr.V("data", string(resp.Data)))
	}
	if cached.ServerPath == "" {
		return nil, nil
	}

	return &model.DownloadResult{
		Title:    string(cached.Title),
		Download: string(cached.ServerPath),
	}, nil
}

type getVideoDataRequest struct {
	URL   string `json:"url"`
	Token string `json:"token" masq:"secret"`
}

type getVideoDataResponse struct {
	Title providerText    `json:"title"`
	Error providerMessage `json:"error"`
}

// GetVideoData fetches the title of the video. An error reported by the
// service is returned with its message unchanged.
func (c *Client) GetVideoData(ctx context.Context, sourceURL string) (*model.VideoData, error) {
	req := &getVideoDataRequest{
		URL:   sourceURL,
		Token: videoDataToken,
	}

	var resp getVideoDataResponse
	if err := c.post(ctx, pathGetVideoData, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, goerr.New(string(resp.Error),
			goerr.T(types.ErrTagUpstream),
			goerr.V("endpoint", pathGetVideoData),
			goerr.V("source_url", sourceURL))
	}

	return &model.VideoData{Title: string(resp.Title)}, nil
}

type downloadVideoRequest struct {
	URL         string `json:"url"`
	Quality     int    `json:"quality"`
	Title       string `json:"title"`
	FormatValue int    `json:"formatValue"`
}

type downloadVideoResponse struct {
	DownloadLink providerText    `json:"download_link"`
	Error        providerMessage `json:"error"`
}

// DownloadVideo requests the conversion and returns the download link
func (c *Client) DownloadVideo(ctx context.Context, req *model.ConvertRequest) (string, error) {
	body := &downloadVideoRequest{
		URL:         req.SourceURL,
		Quality:     int(req.Quality),
		Title:       req.Title,
		FormatValue: req.Format.Value(),
	}

	var resp downloadVideoResponse
	if err := c.post(ctx, pathDownloadVideo, body, &resp); err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", goerr.New(string(resp.Error),
			goerr.T(types.ErrTagUpstream),
			goerr.V("endpoint", pathDownloadVideo),
			goerr.V("source_url", req.SourceURL))
	}

	return string(resp.DownloadLink), nil
}

type insertToDatabaseRequest struct {
	YoutubeID   string `json:"youtube_id"`
	ServerPath  string `json:"server_path"`
	Quality     int    `json:"quality"`
	Title       string `json:"title"`
	FormatValue int    `json:"formatValue"`
}

// InsertToDatabase registers a finished conversion so that later
// CheckDatabase calls hit. The response body is not inspected.
func (c *Client) InsertToDatabase(ctx context.Context, conv *model.Conversion) error {
	req := &insertToDatabaseRequest{
		YoutubeID:   conv.VideoID.String(),
		ServerPath:  conv.ServerPath,
		Quality:     int(conv.Quality),
		Title:       conv.Title,
		FormatValue: conv.Format.Value(),
	}

	return c.post(ctx, pathInsertToDatabase, req, nil)
}

// post sends body as JSON to path and decodes the response into out unless
// out is nil
func (c *Client) post(ctx context.Context, path string, body, out any) (err error) {
	logger := ctxlog.From(ctx)
	start := time.Now()
	defer func() {
		c.metrics.RecordProviderRequest(strings.TrimSuffix(strings.TrimPrefix(path, "/"), ".php"), err, time.Since(start))
	}()

	raw, err := json.Marshal(body)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal provider request", goerr.V("endpoint", path))
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return goerr.Wrap(err, "failed to create provider request", goerr.V("url", url))
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", headerOrigin)
	req.Header.Set("Referer", headerReferer)

	logger.Debug("Sending provider request", "url", url, "body", body)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send request to provider",
			goerr.T(types.ErrTagTransport),
			goerr.V("url", url))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(err, "failed to read provider response",
			goerr.T(types.ErrTagTransport),
			goerr.V("url", url))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return goerr.New(fmt.Sprintf("Request failed with status code %d", resp.StatusCode),
			goerr.T(types.ErrTagTransport),
			goerr.V("url", url),
			goerr.V("body", string(data)))
	}

	logger.Debug("Received provider response", "url", url, "status", resp.StatusCode, "size", len(data))

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return goerr.Wrap(err, "failed to decode provider response",
			goerr.T(types.ErrTagTransport),
			goerr.V("url", url),
			goerr.V("body", string(data)))
	}

	return nil
}

func isObject(data json.RawMessage) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}
