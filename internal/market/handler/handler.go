// Package handler exposes the admission market over HTTP.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sovereign/internal/market"
	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
	"sovereign/pkg/platform/httputil"
	"sovereign/pkg/requestcontext"
)

type Handler struct {
	service *market.Service
	logger  *slog.Logger
}

func New(service *market.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Routes returns the /markets subtree. Settlement has no route here: markets
// settle only through the resolution coordinator.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateMarket)
	r.Get("/factory", h.GetFactory)
	r.Route("/{address}", func(r chi.Router) {
		r.Get("/", h.GetMarket)
		r.Post("/positions", h.TakePosition)
		r.Get("/positions/{wallet}", h.GetPosition)
		r.Post("/claims", h.ClaimWinnings)
		r.Post("/expire", h.ExpireMarket)
	})
	return r
}

func (h *Handler) CreateMarket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[createMarketRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	m, err := h.service.CreateMarket(ctx, req.params)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, newMarketResponse(m))
}

func (h *Handler) GetMarket(w http.ResponseWriter, r *http.Request) {
	addr, ok := addressParam(w, r, "address")
	if !ok {
		return
	}
	m, err := h.service.GetMarket(r.Context(), addr)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newMarketResponse(m))
}

func (h *Handler) GetFactory(w http.ResponseWriter, r *http.Request) {
	f, err := h.service.GetFactory(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newFactoryResponse(f))
}

func (h *Handler) TakePosition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr, ok := addressParam(w, r, "address")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[takePositionRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	pos, err := h.service.TakePosition(ctx, addr, req.side, req.Amount, req.MinTokens)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, newPositionResponse(pos))
}

func (h *Handler) GetPosition(w http.ResponseWriter, r *http.Request) {
	addr, ok := addressParam(w, r, "address")
	if !ok {
		return
	}
	wallet, ok := addressParam(w, r, "wallet")
	if !ok {
		return
	}
	pos, err := h.service.GetPosition(r.Context(), addr, wallet)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newPositionResponse(pos))
}

func (h *Handler) ClaimWinnings(w http.ResponseWriter, r *http.Request) {
	addr, ok := addressParam(w, r, "address")
	if !ok {
		return
	}
	pos, err := h.service.ClaimWinnings(r.Context(), addr)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newPositionResponse(pos))
}

func (h *Handler) ExpireMarket(w http.ResponseWriter, r *http.Request) {
	addr, ok := addressParam(w, r, "address")
	if !ok {
		return
	}
	m, err := h.service.ExpireMarket(r.Context(), addr)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newMarketResponse(m))
}

func addressParam(w http.ResponseWriter, r *http.Request, name string) (domain.Address, bool) {
	addr, err := domain.ParseAddress(chi.URLParam(r, name))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeValidation, name))
		return domain.Address{}, false
	}
	return addr, true
}
