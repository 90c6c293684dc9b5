// Package service mediates resident OTP requests: it forwards them to the
// platform OTP API, records a resident transaction for every OTP sent and
// translates failures into stable domain codes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"resident/internal/apiclient"
	"resident/internal/otp/metrics"
	"resident/internal/otp/models"
	"resident/internal/otp/quota"
	txmodels "resident/internal/transaction/models"
	dErrors "resident/pkg/domain-errors"
	audit "resident/pkg/platform/audit"
	"resident/pkg/requestcontext"
)

const moduleName = "resident-otp"

// Entry points, used as metric labels.
const (
	entryDirect = "direct"
	entryAID    = "aid"
)

type APIClient interface {
	PostAPI(ctx context.Context, api apiclient.APIName, body, out any) error
}

// IdentityResolver resolves AIDs and issues IDA tokens.
type IdentityResolver interface {
	GetIndividualIDForAID(ctx context.Context, aid string) (string, error)
	GetIDATokenForIndividualID(ctx context.Context, individualID string) (string, error)
}

// RefIDDeriver produces the identifiers stored on a transaction record.
type RefIDDeriver interface {
	CreateEventID() string
	GetRefIDHash(individualID string) (string, error)
	GetIDForResidentTransaction(ctx context.Context, individualID string, channels []string) (string, error)
}

type TransactionStore interface {
	Save(ctx context.Context, txn *txmodels.ResidentTransaction) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// QuotaChecker consumes one OTP request from an individual's quota.
type QuotaChecker interface {
	Check(ctx context.Context, individualID string) (*quota.Result, error)
}

type Service struct {
	client         APIClient
	identity       IdentityResolver
	deriver        RefIDDeriver
	store          TransactionStore
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	quota          QuotaChecker
	langCode       string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithQuota caps OTP requests per resolved individual id. A nil *quota.Limiter
// allows everything.
func WithQuota(q QuotaChecker) Option {
	return func(s *Service) {
		s.quota = q
	}
}

// WithLangCode sets the language recorded on transactions.
func WithLangCode(lang string) Option {
	return func(s *Service) {
		if lang != "" {
			s.langCode = lang
		}
	}
}

func New(client APIClient, identity IdentityResolver, deriver RefIDDeriver, store TransactionStore, opts ...Option) *Service {
	s := &Service{
		client:   client,
		identity: identity,
		deriver:  deriver,
		store:    store,
		langCode: txmodels.DefaultLangCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateOTP asks the platform to send an OTP. When the platform answers
// cleanly a transaction record is written before the response is returned;
// a response carrying errors is returned as is with nothing written.
// Every failure is audited once as OTP_GEN_EXCEPTION and surfaces as
// otp_generation_exception, including a failed write after the OTP was sent.
func (s *Service) GenerateOTP(ctx context.Context, req *models.OTPRequest) (*models.OTPResponse, error) {
	resp, err := s.generate(ctx, req)
	s.metrics.IncrementRequest(entryDirect, outcome(resp, err))
	return resp, err
}

func (s *Service) generate(ctx context.Context, req *models.OTPRequest) (*models.OTPResponse, error) {
	if req == nil || strings.TrimSpace(req.IndividualID) == "" || len(req.OTPChannels) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "individualId and at least one otpChannel are required")
	}
	if err := s.checkQuota(ctx, req.IndividualID); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		s.metrics.ObserveGenerateLatency(time.Since(start))
	}()

	var resp models.OTPResponse
	if err := s.client.PostAPI(ctx, apiclient.OTPGen, req, &resp); err != nil {
		return nil, s.generateFailed(ctx, req, "otp_gen_call", err)
	}
	if !resp.Succeeded() {
		if s.logger != nil {
			s.logger.InfoContext(ctx, "OTP request rejected by platform",
				"transaction_id", req.TransactionID,
				"errors", len(resp.Errors),
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		return &resp, nil
	}
	if err := s.InsertData(ctx, req); err != nil {
		return nil, s.generateFailed(ctx, req, "insert_data", err)
	}
	s.logAudit(ctx, audit.EventSendOTPSuccess, req.TransactionID, "",
		"channels", strings.Join(req.OTPChannels, ","),
	)
	return &resp, nil
}

// InsertData builds the SEND_OTP transaction for req and writes it once.
// A single channel gets a channel-scoped reference id, several channels get
// the plain hash of the individual id. Errors are returned unchanged.
func (s *Service) InsertData(ctx context.Context, req *models.OTPRequest) error {
	var (
		refID string
		err   error
	)
	if len(req.OTPChannels) == 1 {
		refID, err = s.deriver.GetIDForResidentTransaction(ctx, req.IndividualID, req.OTPChannels)
	} else {
		refID, err = s.deriver.GetRefIDHash(req.IndividualID)
	}
	if err != nil {
		return err
	}
	// the channel-scoped derivation already fetched the token, so this is
	// served from the identity cache
	tokenID, err := s.identity.GetIDATokenForIndividualID(ctx, req.IndividualID)
	if err != nil {
		return err
	}

	txn := txmodels.NewSendOTPTransaction(txmodels.SendOTP{
		EventID:       s.deriver.CreateEventID(),
		TransactionID: req.TransactionID,
		IndividualID:  req.IndividualID,
		Channels:      req.OTPChannels,
		RefID:         refID,
		TokenID:       tokenID,
		LangCode:      s.langCode,
		CreatedAt:     requestcontext.Now(ctx),
	})
	if err := s.store.Save(ctx, txn); err != nil {
		return fmt.Errorf("saving resident transaction %s: %w", txn.EventID, err)
	}
	s.metrics.IncrementTransactionsWritten()
	return nil
}

// GenerateOTPForIndividualID resolves an AID to its individual id and sends
// the OTP for it. The quota is charged to the resolved individual id, so both
// entry points share it. Resolution failures, and checked or upstream failures
// while generating, all surface as aid_status_is_not_ready with the cause
// dropped. A spent quota is returned as too_many_requests.
func (s *Service) GenerateOTPForIndividualID(ctx context.Context, req *models.IndividualIDRequest) (*models.IndividualIDResponse, error) {
	if req == nil || strings.TrimSpace(req.IndividualID) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "individualId is required")
	}

	individualID, err := s.identity.GetIndividualIDForAID(ctx, req.IndividualID)
	if err != nil {
		return nil, s.aidNotReady(ctx, req, "resolve_aid", err)
	}

	resp, err := s.generate(ctx, models.ToOTPRequest(req, individualID))
	if err != nil {
		if _, collapse := aidCodes[Classify(err)]; collapse && !dErrors.HasCode(err, dErrors.CodeTooManyRequests) {
			return nil, s.aidNotReady(ctx, req, "generate_otp", err)
		}
		s.metrics.IncrementRequest(entryAID, outcome(nil, err))
		return nil, err
	}

	out := models.ToIndividualIDResponse(resp)
	out.TransactionID = resp.TransactionID
	s.metrics.IncrementRequest(entryAID, outcome(resp, nil))
	return out, nil
}

// checkQuota returns too_many_requests wrapping a *quota.ExceededError once
// individualID has used up its quota. Quota store failures let the request
// through.
func (s *Service) checkQuota(ctx context.Context, individualID string) error {
	if s.quota == nil {
		return nil
	}
	res, err := s.quota.Check(ctx, individualID)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "otp quota check failed, allowing request",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
		return nil
	}
	if res.Allowed {
		return nil
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "otp quota exhausted",
			"reset_at", res.ResetAt,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return dErrors.Wrap(&quota.ExceededError{ResetAt: res.ResetAt}, dErrors.CodeTooManyRequests, "OTP request limit reached")
}

func (s *Service) generateFailed(ctx context.Context, req *models.OTPRequest, stage string, err error) error {
	kind := Classify(err)
	if s.logger != nil {
		s.logger.ErrorContext(ctx, "OTP generation failed",
			"stage", stage,
			"kind", kind.String(),
			"transaction_id", req.TransactionID,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	s.logAudit(ctx, audit.EventOTPGenException, req.TransactionID, kind.String(), "stage", stage)
	return translateGenerate(err)
}

func (s *Service) aidNotReady(ctx context.Context, req *models.IndividualIDRequest, stage string, err error) error {
	kind := Classify(err)
	if s.logger != nil {
		s.logger.WarnContext(ctx, "OTP for AID not possible yet",
			"stage", stage,
			"kind", kind.String(),
			"transaction_id", req.TransactionID,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	s.logAudit(ctx, audit.EventAIDOTPNotReady, req.TransactionID, kind.String(), "stage", stage)
	s.metrics.IncrementRequest(entryAID, string(dErrors.CodeAIDStatusNotReady))
	return dErrors.New(dErrors.CodeAIDStatusNotReady, msgAIDNotReady)
}

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, subject, reason string, attrs ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attrs = append(attrs, "request_id", requestID)
	}
	args := append(attrs, "event", string(event), "log_type", "audit", "transaction_id", subject)
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event), args...)
	}
	if s.auditPublisher == nil {
		return
	}
	e := audit.NewEvent(event, moduleName, subject)
	e.Reason = reason
	if err := s.auditPublisher.Emit(ctx, e); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"event", string(event),
			"error", err,
		)
	}
}

func outcome(resp *models.OTPResponse, err error) string {
	switch {
	case err != nil:
		return string(dErrors.CodeOf(err))
	case resp.Succeeded():
		return "sent"
	default:
		return "rejected"
	}
}
