// Package service lodges resident grievance tickets.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"resident/internal/apiclient"
	"resident/internal/grievance/models"
	identitymodels "resident/internal/identity/models"
	dErrors "resident/pkg/domain-errors"
	audit "resident/pkg/platform/audit"
	"resident/pkg/platform/envelope"
	"resident/pkg/platform/sentinel"
	"resident/pkg/requestcontext"
)

const moduleName = "resident-grievance"

// GrievanceService lodges a grievance and answers with its ticket id.
// Failures are of kind KindIO or KindUpstreamAccess.
type GrievanceService interface {
	GetGrievanceTicket(ctx context.Context, req envelope.MainRequest[models.GrievanceRequest]) (*envelope.ResponseWrapper[any], error)
}

var _ GrievanceService = (*Service)(nil)

type Store interface {
	Save(ctx context.Context, ticket *models.Ticket) error
}

// IdentityLookup supplies contact defaults for fields the resident left empty.
type IdentityLookup interface {
	GetIdentity(ctx context.Context, individualID string) (*identitymodels.Identity, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// ErrorKind classifies grievance failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindIO
	KindUpstreamAccess
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindUpstreamAccess:
		return "upstream_access"
	default:
		return "unknown"
	}
}

// Classify maps err onto a grievance ErrorKind.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case apiclient.IsAccessError(err), errors.Is(err, context.DeadlineExceeded):
		return KindUpstreamAccess
	case errors.Is(err, sentinel.ErrUnavailable), errors.Is(err, sentinel.ErrConflict):
		return KindIO
	default:
		return KindUnknown
	}
}

var kindCodes = map[ErrorKind]dErrors.Code{
	KindUnknown:        dErrors.CodeGrievanceTicket,
	KindIO:             dErrors.CodeGrievanceTicket,
	KindUpstreamAccess: dErrors.CodeUpstream,
}

type Service struct {
	store          Store
	identity       IdentityLookup
	auditPublisher AuditPublisher
	logger         *slog.Logger
	newID          func() string
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

// WithIDGenerator overrides ticket id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// New creates the grievance service. identity may be nil, in which case
// missing contact fields stay empty.
func New(store Store, identity IdentityLookup, opts ...Option) *Service {
	s := &Service{
		store:    store,
		identity: identity,
		logger:   slog.Default(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetGrievanceTicket lodges a grievance for the authenticated resident.
func (s *Service) GetGrievanceTicket(ctx context.Context, req envelope.MainRequest[models.GrievanceRequest]) (*envelope.ResponseWrapper[any], error) {
	individualID := requestcontext.IndividualID(ctx)
	if individualID == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "resident identity missing from request")
	}
	if err := req.Request.Validate(); err != nil {
		return nil, err
	}

	grievance := req.Request
	if grievance.NeedsContactDefaults() && s.identity != nil {
		if err := s.fillContactDefaults(ctx, individualID, &grievance); err != nil {
			return nil, s.failed(ctx, grievance.EventID, "identity_lookup", err)
		}
	}

	ticket := models.NewTicket(s.newID(), individualID, grievance, requestcontext.Now(ctx))
	if err := s.store.Save(ctx, ticket); err != nil {
		return nil, s.failed(ctx, grievance.EventID, "save_ticket", err)
	}

	s.logAudit(ctx, audit.EventGrievanceTicketSuccess, grievance.EventID, "",
		"ticket_id", ticket.TicketID,
	)
	version := req.Version
	if version == "" {
		version = "1.0"
	}
	var payload any = models.TicketResponse{TicketID: ticket.TicketID}
	return envelope.NewResponse(models.ResponseID, version, requestcontext.Now(ctx), payload), nil
}

// fillContactDefaults copies name, email and phone from the identity record
// into empty request fields. An identity that cannot be found is tolerated.
func (s *Service) fillContactDefaults(ctx context.Context, individualID string, req *models.GrievanceRequest) error {
	identity, err := s.identity.GetIdentity(ctx, individualID)
	if err != nil {
		if _, coded := dErrors.As(err); coded {
			s.logger.WarnContext(ctx, "no identity for grievance contact defaults",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			return nil
		}
		return err
	}
	if req.Name == "" {
		req.Name = identity.Name
	}
	if req.EmailID == "" {
		req.EmailID = identity.Email
	}
	if req.PhoneNo == "" {
		req.PhoneNo = identity.Phone
	}
	return nil
}

func (s *Service) failed(ctx context.Context, eventID, stage string, err error) error {
	kind := Classify(err)
	s.logger.ErrorContext(ctx, "failed to lodge grievance",
		"stage", stage,
		"kind", kind.String(),
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	s.logAudit(ctx, audit.EventGrievanceTicketFailed, eventID, kind.String(), "stage", stage)
	return dErrors.Wrap(err, kindCodes[kind], "failed to create grievance ticket")
}

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, subject, reason string, attrs ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attrs = append(attrs, "request_id", requestID)
	}
	args := append(attrs, "event", string(event), "log_type", "audit", "event_id", subject)
	s.logger.InfoContext(ctx, string(event), args...)
	if s.auditPublisher == nil {
		return
	}
	e := audit.NewEvent(event, moduleName, subject)
	e.Reason = reason
	if err := s.auditPublisher.Emit(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"event", string(event),
			"error", err,
		)
	}
}
