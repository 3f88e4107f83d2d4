package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/auth"
	"github.com/starford/folio/internal/portfolio"
)

// Handler holds API route handlers.
type Handler struct {
	svc *portfolio.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *portfolio.Service) *Handler {
	return &Handler{svc: svc}
}

// ListProjects handles GET /api/projects.
//
//	@Summary		List portfolio projects
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}	Project
//	@Router			/projects [get]
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Projects(r.Context()))
}

// ListCertificates handles GET /api/certificates.
//
//	@Summary		List certificates and education entries
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}	Certificate
//	@Router			/certificates [get]
func (h *Handler) ListCertificates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Certificates(r.Context()))
}

// SubmitContact handles POST /api/contact.
//
//	@Summary		Submit the contact form
//	@Tags			contact
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ContactRequest	true	"Contact form"
//	@Success		201		{object}	ContactResponse
//	@Failure		400		{object}	errResponse
//	@Router			/contact [post]
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := readJSON(w, r, &req); err != nil {
		// An unreadable body is treated as an empty form.
		req = ContactRequest{}
	}

	m, err := h.svc.SubmitContact(r.Context(), req)
	if err != nil {
		var ve *portfolio.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, errorBody(ve.Message))
			return
		}
		slog.Error("submit contact failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
		return
	}
	writeJSON(w, http.StatusCreated, ContactResponse{
		Message: "Contact form submitted successfully",
		ID:      m.ID,
	})
}

// Login handles POST /api/auth/login.
//
//	@Summary		Log in as the site admin
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	LoginResponse
//	@Failure		400		{object}	errResponse
//	@Failure		401		{object}	errResponse
//	@Router			/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidInput):
			writeJSON(w, http.StatusBadRequest, errorBody("Please provide email and password"))
		case errors.Is(err, apperr.ErrUnauthorized):
			writeJSON(w, http.StatusUnauthorized, errorBody("Invalid credentials"))
		default:
			slog.Error("login failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   res.Token,
		User:    LoginUser{ID: res.User.ID, Email: res.User.Email},
	})
}

// ListMessages handles GET /api/admin/messages.
//
//	@Summary		List contact messages, newest first
//	@Tags			admin
//	@Produce		json
//	@Success		200	{array}		MessageDTO
//	@Failure		401	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/admin/messages [get]
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.Messages(r.Context())
	if err != nil {
		slog.Error("list messages failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Failed to fetch messages"))
		return
	}
	if u, ok := auth.UserFrom(r.Context()); ok {
		slog.Debug("admin listed messages", slog.String("user", u.Email), slog.Int("count", len(msgs)))
	}
	out := make([]MessageDTO, len(msgs))
	for i, m := range msgs {
		out[i] = MessageDTO(m)
	}
	writeJSON(w, http.StatusOK, out)
}

// Stats handles GET /api/admin/stats.
//
//	@Summary		Store diagnostics
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	StatsResponse
//	@Failure		401	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/admin/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		slog.Error("stats failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Database connection failed"))
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Live handles GET /health/live.
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready handles GET /health/ready.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ready(r.Context()); err != nil {
		slog.Warn("readiness check failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Store: h.svc.StoreState()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Store: h.svc.StoreState()})
}
