package http

import (
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ytlink/pkg/domain/interfaces"
	"github.com/m-mizutani/ytlink/pkg/domain/model"
	"github.com/m-mizutani/ytlink/pkg/domain/types"
	"github.com/m-mizutani/ytlink/pkg/utils/errs"
)

const msgMissingParameters = "Missing parameters. Please provide 'url', 'quality', and 'format'."

type downloadSuccess struct {
	Creator      string `json:"creator"`
	Success      bool   `json:"success"`
	Title        string `json:"title"`
	DownloadLink string `json:"download_link"`
}

type downloadFailure struct {
	Creator string `json:"creator"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DownloadHandler serves GET /api/download
type DownloadHandler struct {
	downloadUC interfaces.DownloadUseCase
}

// NewDownloadHandler creates a new DownloadHandler
func NewDownloadHandler(downloadUC interfaces.DownloadUseCase) *DownloadHandler {
	return &DownloadHandler{
		downloadUC: downloadUC,
	}
}

// Handle resolves the download link for the url, quality and format query
// parameters
func (h *DownloadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	query := r.URL.Query()
	req := &model.DownloadRequest{
		URL:     query.Get("url"),
		Quality: query.Get("quality"),
		Format:  query.Get("format"),
	}

	if !req.HasRequiredParams() {
		logger.Warn("Missing download parameters",
			"url", req.URL,
			"quality", req.Quality,
			"format", req.Format,
		)
		writeJSON(ctx, w, http.StatusBadRequest, &downloadFailure{
			Creator: types.Creator,
			Success: false,
			Message: msgMissingParameters,
		})
		return
	}

	result, err := h.downloadUC.Download(ctx, req)
	if err != nil {
		if goerr.HasTag(err, types.ErrTagValidation) {
			logger.Warn("Invalid download request", "error", err)
		} else {
			errs.Handle(ctx, "Failed to resolve download link", err)
		}

		writeJSON(ctx, w, http.StatusInternalServerError, &downloadFailure{
			Creator: types.Creator,
			Success: false,
			Message: err.Error(),
		})
		return
	}

	writeJSON(ctx, w, http.StatusOK, &downloadSuccess{
		Creator:      types.Creator,
		Success:      true,
		Title:        result.Title,
		DownloadLink: result.Download,
	})
}
