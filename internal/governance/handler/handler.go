// Package handler exposes the governance engine over HTTP.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sovereign/internal/governance"
	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
	"sovereign/pkg/platform/httputil"
	"sovereign/pkg/requestcontext"
)

type Handler struct {
	service *governance.Service
	logger  *slog.Logger
}

func New(service *governance.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// DAORoutes returns the /daos subtree.
func (h *Handler) DAORoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateDAO)
	r.Route("/{address}", func(r chi.Router) {
		r.Get("/", h.GetDAO)
		r.Post("/members", h.AddFounderMember)
		r.Get("/members/{wallet}", h.GetMembership)
		r.Post("/nominations", h.NominateCreator)
	})
	return r
}

// NominationRoutes returns the /nominations subtree. Resolution is mounted
// separately by the resolution coordinator's handler.
func (h *Handler) NominationRoutes() chi.Router {
	r := chi.NewRouter()
	r.Route("/{address}", func(r chi.Router) {
		r.Get("/", h.GetNomination)
		r.Post("/votes", h.CastVote)
	})
	return r
}

func (h *Handler) CreateDAO(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[createDAORequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	dao, err := h.service.CreateDAO(ctx, req.params)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, newDAOResponse(dao))
}

func (h *Handler) GetDAO(w http.ResponseWriter, r *http.Request) {
	addr, ok := addressParam(w, r, "address")
	if !ok {
		return
	}
	dao, err := h.service.GetDAO(r.Context(), addr)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newDAOResponse(dao))
}

func (h *Handler) AddFounderMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr, ok := addressParam(w, r, "address")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[addMemberRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	m, err := h.service.AddFounderMember(ctx, addr, req.wallet)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, newMembershipResponse(m))
}

func (h *Handler) GetMembership(w http.ResponseWriter, r *http.Request) {
	daoAddr, ok := addressParam(w, r, "address")
	if !ok {
		return
	}
	wallet, ok := addressParam(w, r, "wallet")
	if !ok {
		return
	}
	m, err := h.service.GetMembership(r.Context(), daoAddr, wallet)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newMembershipResponse(m))
}

func (h *Handler) NominateCreator(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr, ok := addressParam(w, r, "address")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[nominateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	n, err := h.service.NominateCreator(ctx, addr, req.nominee, req.Reason)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, newNominationResponse(n))
}

func (h *Handler) GetNomination(w http.ResponseWriter, r *http.Request) {
	addr, ok := addressParam(w, r, "address")
	if !ok {
		return
	}
	n, err := h.service.GetNomination(r.Context(), addr)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newNominationResponse(n))
}

func (h *Handler) CastVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr, ok := addressParam(w, r, "address")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[castVoteRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	n, err := h.service.CastVote(ctx, addr, req.choice, req.salt)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newNominationResponse(n))
}

func addressParam(w http.ResponseWriter, r *http.Request, name string) (domain.Address, bool) {
	addr, err := domain.ParseAddress(chi.URLParam(r, name))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeValidation, name))
		return domain.Address{}, false
	}
	return addr, true
}
