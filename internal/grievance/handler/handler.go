package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"resident/internal/grievance/models"
	dErrors "resident/pkg/domain-errors"
	"resident/pkg/platform/envelope"
	"resident/pkg/platform/httputil"
	"resident/pkg/platform/middleware/auth"
	"resident/pkg/requestcontext"
)

// Service defines the interface for grievance operations.
type Service interface {
	GetGrievanceTicket(ctx context.Context, req envelope.MainRequest[models.GrievanceRequest]) (*envelope.ResponseWrapper[any], error)
}

// Handler handles grievance endpoints.
type Handler struct {
	logger       *slog.Logger
	grievance    Service
	jwtValidator auth.JWTValidator
}

func New(grievance Service, logger *slog.Logger, jwtValidator auth.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		grievance:    grievance,
		jwtValidator: jwtValidator,
	}
}

// Register registers the grievance routes behind bearer authentication.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/grievance/ticket", h.handleCreateTicket)
	})
}

func (h *Handler) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.TicketRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	resp, err := h.grievance.GetGrievanceTicket(ctx, envelope.MainRequest[models.GrievanceRequest](*req))
	if err != nil {
		if dErrors.ToHTTPStatus(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "failed to create grievance ticket",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteEnvelopeError(w, models.ResponseID, req.Version, requestcontext.Now(ctx), err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
