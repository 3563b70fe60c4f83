// Package handler exposes the identity registry over HTTP.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sovereign/internal/identity"
	"sovereign/internal/identity/models"
	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
	"sovereign/pkg/platform/httputil"
	"sovereign/pkg/requestcontext"
)

const defaultLeaderboardSize = 25

type Handler struct {
	service *identity.Service
	logger  *slog.Logger
}

func New(service *identity.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Routes returns the /identities subtree.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Route("/{address}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/authorities", h.SetAuthority)
		r.Post("/scores/{dimension}", h.UpdateScore)
		r.Get("/creator-score", h.CreatorScore)
	})
	return r
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.CreateIdentity(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, newIdentityResponse(id))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	addr, ok := addressParam(w, r, "address")
	if !ok {
		return
	}
	id, err := h.service.GetIdentity(r.Context(), addr)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newIdentityResponse(id))
}

func (h *Handler) SetAuthority(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr, ok := addressParam(w, r, "address")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[setAuthorityRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	id, err := h.service.SetAuthority(ctx, addr, req.dimension, req.authority)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newIdentityResponse(id))
}

func (h *Handler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr, ok := addressParam(w, r, "address")
	if !ok {
		return
	}
	dim, err := models.ParseDimension(chi.URLParam(r, "dimension"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[updateScoreRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	var id *models.Identity
	switch {
	case req.Score != nil:
		id, err = h.service.UpdateScore(ctx, addr, dim, *req.Score)
	case req.TradingMetrics != nil:
		if dim != models.DimensionTrading {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "trading_metrics only apply to the trading dimension"))
			return
		}
		id, err = h.service.UpdateTradingDetails(ctx, addr, models.TradingScoreDetails{
			WinRateBps:      req.TradingMetrics.WinRateBps,
			ProfitFactorBps: req.TradingMetrics.ProfitFactorBps,
			TotalTrades:     req.TradingMetrics.TotalTrades,
			TotalVolume:     req.TradingMetrics.TotalVolume,
			MaxDrawdownBps:  req.TradingMetrics.MaxDrawdownBps,
		})
	default:
		if dim != models.DimensionCivic {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "civic_metrics only apply to the civic dimension"))
			return
		}
		id, err = h.service.UpdateCivicDetails(ctx, addr, models.CivicScoreDetails{
			ProblemsSolved:        req.CivicMetrics.ProblemsSolved,
			PredictionAccuracyBps: req.CivicMetrics.PredictionAccuracyBps,
			DirectionsProposed:    req.CivicMetrics.DirectionsProposed,
			DirectionsWon:         req.CivicMetrics.DirectionsWon,
			CurrentStreak:         req.CivicMetrics.CurrentStreak,
			CommunityTrust:        req.CivicMetrics.CommunityTrust,
		})
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newIdentityResponse(id))
}

func (h *Handler) CreatorScore(w http.ResponseWriter, r *http.Request) {
	addr, ok := addressParam(w, r, "address")
	if !ok {
		return
	}
	details, err := h.service.GetCreatorScore(r.Context(), addr)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newCreatorScoreResponse(details))
}

// SurfacingScore serves GET /surfacing-scores/{wallet}. Mounted separately
// because surfacing records are keyed by predictor wallet, not identity.
func (h *Handler) SurfacingScore(w http.ResponseWriter, r *http.Request) {
	addr, ok := addressParam(w, r, "wallet")
	if !ok {
		return
	}
	sc, err := h.service.GetSurfacingScore(r.Context(), addr)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newSurfacingScoreResponse(sc))
}

// Leaderboard serves GET /leaderboard?limit=n.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultLeaderboardSize)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 || parsed > 100 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "limit must be between 1 and 100"))
			return
		}
		limit = parsed
	}
	entries, err := h.service.Leaderboard(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newLeaderboardResponse(entries))
}

func addressParam(w http.ResponseWriter, r *http.Request, name string) (domain.Address, bool) {
	addr, err := domain.ParseAddress(chi.URLParam(r, name))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeValidation, name))
		return domain.Address{}, false
	}
	return addr, true
}
