// Package handler exposes the resolution coordinator over HTTP.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sovereign/internal/resolution"
	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
	"sovereign/pkg/platform/httputil"
	"sovereign/pkg/requestcontext"
)

type Handler struct {
	service *resolution.Service
	logger  *slog.Logger
}

func New(service *resolution.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Routes returns the /resolutions subtree.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/{nomination}", h.Resolve)
	return r
}

type resolveRequest struct {
	// Market names the admission market to settle alongside the vote;
	// omitted when nobody opened one.
	Market string `json:"market,omitempty"`

	market *domain.Address
}

func (r *resolveRequest) Validate() error {
	if r.Market == "" {
		return nil
	}
	addr, err := domain.ParseAddress(r.Market)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "market")
	}
	r.market = &addr
	return nil
}

func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nomination, err := domain.ParseAddress(chi.URLParam(r, "nomination"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeValidation, "nomination"))
		return
	}
	req, ok := httputil.DecodeAndPrepare[resolveRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	res, err := h.service.Resolve(ctx, nomination, req.market)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newResolveResponse(res))
}
