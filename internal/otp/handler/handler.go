package handler

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"resident/internal/otp/models"
	"resident/internal/otp/quota"
	dErrors "resident/pkg/domain-errors"
	"resident/pkg/platform/envelope"
	"resident/pkg/platform/httputil"
	"resident/pkg/platform/middleware/ratelimit"
	"resident/pkg/requestcontext"
)

// Service defines the OTP operations the handler exposes.
type Service interface {
	GenerateOTP(ctx context.Context, req *models.OTPRequest) (*models.OTPResponse, error)
	GenerateOTPForIndividualID(ctx context.Context, req *models.IndividualIDRequest) (*models.IndividualIDResponse, error)
}

// Handler serves the resident OTP endpoints.
type Handler struct {
	logger  *slog.Logger
	otp     Service
	limiter *ratelimit.Limiter
}

// New creates an OTP Handler. A nil limiter disables rate limiting.
func New(otp Service, logger *slog.Logger, limiter *ratelimit.Limiter) *Handler {
	return &Handler{
		logger:  logger,
		otp:     otp,
		limiter: limiter,
	}
}

// Register registers the OTP routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		if h.limiter != nil {
			r.Use(h.limiter.Middleware)
		}
		r.Post("/req/otp", h.handleGenerateOTP)
		r.Post("/individualId/otp", h.handleIndividualIDOTP)
	})
}

// handleGenerateOTP relays the platform's OTP response unchanged.
func (h *Handler) handleGenerateOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.GenerateOTPRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	resp, err := h.otp.GenerateOTP(ctx, &req.Request)
	if err != nil {
		h.logFailure(ctx, "failed to generate OTP", requestID, err)
		setRetryHeaders(w, requestcontext.Now(ctx), err)
		httputil.WriteEnvelopeError(w, req.ID, req.Version, requestcontext.Now(ctx), err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleIndividualIDOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.IndividualIDOTPRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	resp, err := h.otp.GenerateOTPForIndividualID(ctx, &req.Request)
	if err != nil {
		h.logFailure(ctx, "failed to generate OTP for AID", requestID, err)
		setRetryHeaders(w, requestcontext.Now(ctx), err)
		httputil.WriteEnvelopeError(w, req.ID, req.Version, requestcontext.Now(ctx), err)
		return
	}
	// platform errors belong on the wrapper, not inside the payload
	errs := resp.Errors
	resp.Errors = nil
	wrapped := envelope.NewResponse(req.ID, req.Version, requestcontext.Now(ctx), resp)
	wrapped.Errors = append(wrapped.Errors, errs...)
	httputil.WriteJSON(w, http.StatusOK, wrapped)
}

// setRetryHeaders tells the client when a spent OTP quota frees up again.
func setRetryHeaders(w http.ResponseWriter, now time.Time, err error) {
	var exceeded *quota.ExceededError
	if !errors.As(err, &exceeded) {
		return
	}
	retryAfter := int(math.Ceil(exceeded.ResetAt.Sub(now).Seconds()))
	w.Header().Set("Retry-After", strconv.Itoa(max(retryAfter, 1)))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(exceeded.ResetAt.Unix(), 10))
}

func (h *Handler) logFailure(ctx context.Context, msg, requestID string, err error) {
	if h.logger == nil {
		return
	}
	if dErrors.ToHTTPStatus(dErrors.CodeOf(err)) < http.StatusInternalServerError {
		h.logger.WarnContext(ctx, msg,
			"request_id", requestID,
			"error", err,
		)
		return
	}
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestID,
		"error", err,
	)
}
