package models

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	dErrors "resident/pkg/domain-errors"
	"resident/pkg/platform/envelope"
)

const (
	// ResponseID identifies grievance responses.
	ResponseID = "mosip.resident.grievance.ticket"
	// StatusNew is the status of a freshly lodged ticket.
	StatusNew = "NEW"

	MaxMessageLength = 1024
	maxEventIDLength = 64
	maxNameLength    = 256
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// GrievanceRequest is a resident's complaint about one of their events.
// Contact fields left empty are filled from the resident's identity.
type GrievanceRequest struct {
	EventID          string `json:"eventId"`
	Name             string `json:"name,omitempty"`
	EmailID          string `json:"emailId,omitempty"`
	AlternateEmailID string `json:"alternateEmailId,omitempty"`
	PhoneNo          string `json:"phoneNo,omitempty"`
	AlternatePhoneNo string `json:"alternatePhoneNo,omitempty"`
	Message          string `json:"message"`
}

// Validate trims every field and checks lengths and contact formats.
func (r *GrievanceRequest) Validate() error {
	r.EventID = strings.TrimSpace(r.EventID)
	r.Name = strings.TrimSpace(r.Name)
	r.EmailID = strings.TrimSpace(r.EmailID)
	r.AlternateEmailID = strings.TrimSpace(r.AlternateEmailID)
	r.PhoneNo = strings.TrimSpace(r.PhoneNo)
	r.AlternatePhoneNo = strings.TrimSpace(r.AlternatePhoneNo)
	r.Message = strings.TrimSpace(r.Message)

	switch {
	case r.EventID == "":
		return dErrors.New(dErrors.CodeValidation, "eventId is required")
	case len(r.EventID) > maxEventIDLength:
		return dErrors.New(dErrors.CodeValidation, "eventId is too long")
	case r.Message == "":
		return dErrors.New(dErrors.CodeValidation, "message is required")
	case utf8.RuneCountInString(r.Message) > MaxMessageLength:
		return dErrors.New(dErrors.CodeValidation, "message must not exceed 1024 characters")
	case utf8.RuneCountInString(r.Name) > maxNameLength:
		return dErrors.New(dErrors.CodeValidation, "name is too long")
	}
	for field, email := range map[string]string{"emailId": r.EmailID, "alternateEmailId": r.AlternateEmailID} {
		if email == "" {
			continue
		}
		if _, err := mail.ParseAddress(email); err != nil {
			return dErrors.New(dErrors.CodeValidation, "invalid "+field)
		}
	}
	for field, phone := range map[string]string{"phoneNo": r.PhoneNo, "alternatePhoneNo": r.AlternatePhoneNo} {
		if phone != "" && !phonePattern.MatchString(phone) {
			return dErrors.New(dErrors.CodeValidation, "invalid "+field)
		}
	}
	return nil
}

// NeedsContactDefaults reports whether any primary contact field is missing.
func (r *GrievanceRequest) NeedsContactDefaults() bool {
	return r.Name == "" || r.EmailID == "" || r.PhoneNo == ""
}

// TicketRequest is the inbound body of POST /grievance/ticket.
type TicketRequest envelope.MainRequest[GrievanceRequest]

func (r *TicketRequest) Validate() error {
	return r.Request.Validate()
}

// Ticket is a persisted grievance.
type Ticket struct {
	TicketID         string
	EventID          string
	IndividualID     string
	Name             string
	EmailID          string
	AlternateEmailID string
	PhoneNo          string
	AlternatePhoneNo string
	Message          string
	Status           string
	CreatedAt        time.Time
}

// NewTicket builds a ticket in status NEW from a validated request.
func NewTicket(ticketID, individualID string, req GrievanceRequest, createdAt time.Time) *Ticket {
	return &Ticket{
		TicketID:         ticketID,
		EventID:          req.EventID,
		IndividualID:     individualID,
		Name:             req.Name,
		EmailID:          req.EmailID,
		AlternateEmailID: req.AlternateEmailID,
		PhoneNo:          req.PhoneNo,
		AlternatePhoneNo: req.AlternatePhoneNo,
		Message:          req.Message,
		Status:           StatusNew,
		CreatedAt:        createdAt,
	}
}

// TicketResponse is the payload returned for a lodged ticket.
type TicketResponse struct {
	TicketID string `json:"ticketId"`
}
