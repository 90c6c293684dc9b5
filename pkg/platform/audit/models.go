package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal/regulatory significance,
	// e.g. a grievance lodged by a resident.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers failures relevant to monitoring and alerting,
	// e.g. OTP generation failing against the upstream API.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity that can be sampled.
	CategoryOperations EventCategory = "operations"
)

// EventType mirrors the resident audit taxonomy: system failures versus
// business actions taken on a resident's behalf.
type EventType string

const (
	TypeSystem   EventType = "SYSTEM"
	TypeBusiness EventType = "BUSINESS"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID          string
	Category    EventCategory
	Type        EventType
	Timestamp   time.Time
	Action      string // named event tag, e.g. OTP_GEN_EXCEPTION
	Description string
	// Subject is the resident the event concerns (individual id or transaction id).
	Subject   string
	Reason    string
	RequestID string
	ClientIP  string
	Device    string
	Module    string
}

// AuditEvent is a named event tag.
type AuditEvent string

const (
	// OTP events
	EventOTPGenException AuditEvent = "OTP_GEN_EXCEPTION"
	EventSendOTPSuccess  AuditEvent = "SEND_OTP_SUCCESS"
	EventAIDOTPNotReady  AuditEvent = "AID_OTP_NOT_READY"

	// Grievance events
	EventGrievanceTicketSuccess AuditEvent = "GRIEVANCE_TICKET_REQUEST_SUCCESS"
	EventGrievanceTicketFailed  AuditEvent = "GRIEVANCE_TICKET_REQUEST_FAILED"
)

type eventInfo struct {
	category    EventCategory
	eventType   EventType
	description string
}

// eventCatalogue maps each named event to its category, type and description.
var eventCatalogue = map[AuditEvent]eventInfo{
	EventOTPGenException: {CategorySecurity, TypeSystem, "OTP generation failed"},
	EventSendOTPSuccess:  {CategoryOperations, TypeBusiness, "OTP generated and transaction recorded"},
	EventAIDOTPNotReady:  {CategoryOperations, TypeBusiness, "OTP requested for an AID that is not processed yet"},

	EventGrievanceTicketSuccess: {CategoryCompliance, TypeBusiness, "Grievance ticket created"},
	EventGrievanceTicketFailed:  {CategorySecurity, TypeSystem, "Grievance ticket creation failed"},
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if info, ok := eventCatalogue[e]; ok {
		return info.category
	}
	return CategoryOperations
}

// Type returns the EventType for this audit event, SYSTEM when unknown.
func (e AuditEvent) Type() EventType {
	if info, ok := eventCatalogue[e]; ok {
		return info.eventType
	}
	return TypeSystem
}

// Description returns the catalogue description, or the tag itself.
func (e AuditEvent) Description() string {
	if info, ok := eventCatalogue[e]; ok {
		return info.description
	}
	return string(e)
}

// NewEvent builds an Event for a named tag with catalogue defaults filled in.
func NewEvent(tag AuditEvent, module, subject string) Event {
	return Event{
		Category:    tag.Category(),
		Type:        tag.Type(),
		Action:      string(tag),
		Description: tag.Description(),
		Module:      module,
		Subject:     subject,
	}
}

// Store is the append side of an audit sink.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Lister is implemented by sinks that can be queried.
type Lister interface {
	ListBySubject(ctx context.Context, subject string) ([]Event, error)
}
