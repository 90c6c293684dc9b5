package models

import (
	"strings"

	txmodels "resident/internal/transaction/models"
	dErrors "resident/pkg/domain-errors"
	"resident/pkg/platform/envelope"
	platformstrings "resident/pkg/platform/strings"
)

// OTPRequest asks the platform to send an OTP to the resident's channels.
// It is also the body posted to the OTP generation API.
type OTPRequest struct {
	ID            string   `json:"id"`
	Version       string   `json:"version"`
	RequestTime   string   `json:"requestTime"`
	IndividualID  string   `json:"individualId"`
	TransactionID string   `json:"transactionID"`
	OTPChannels   []string `json:"otpChannel"`
}

// MaskedContacts is the payload of a successful OTP response.
type MaskedContacts struct {
	MaskedMobile string `json:"maskedMobile,omitempty"`
	MaskedEmail  string `json:"maskedEmail,omitempty"`
}

// OTPResponse is the OTP generation API's answer. It counts as successful
// only when it carries no errors and a response payload.
type OTPResponse struct {
	ID            string                  `json:"id"`
	Version       string                  `json:"version"`
	ResponseTime  string                  `json:"responseTime"`
	TransactionID string                  `json:"transactionID"`
	Response      *MaskedContacts         `json:"response"`
	Errors        []envelope.ServiceError `json:"errors"`
}

func (r *OTPResponse) Succeeded() bool {
	return r != nil && len(r.Errors) == 0 && r.Response != nil
}

// IndividualIDRequest is an OTP request keyed by an application id (AID)
// rather than the individual id.
type IndividualIDRequest struct {
	ID            string   `json:"id"`
	Version       string   `json:"version"`
	RequestTime   string   `json:"requestTime"`
	IndividualID  string   `json:"individualId"`
	TransactionID string   `json:"transactionId"`
	OTPChannels   []string `json:"otpChannel"`
}

// IndividualIDResponse is the AID form of OTPResponse.
type IndividualIDResponse struct {
	TransactionID string                  `json:"transactionId"`
	MaskedMobile  string                  `json:"maskedMobile,omitempty"`
	MaskedEmail   string                  `json:"maskedEmail,omitempty"`
	Errors        []envelope.ServiceError `json:"errors,omitempty"`
}

// ToOTPRequest maps an AID request onto an OTP request for individualID.
func ToOTPRequest(req *IndividualIDRequest, individualID string) *OTPRequest {
	return &OTPRequest{
		ID:            req.ID,
		Version:       req.Version,
		RequestTime:   req.RequestTime,
		IndividualID:  individualID,
		TransactionID: req.TransactionID,
		OTPChannels:   append([]string(nil), req.OTPChannels...),
	}
}

// ToIndividualIDResponse maps an OTP response onto the AID response shape.
// The transaction id is copied by the caller.
func ToIndividualIDResponse(resp *OTPResponse) *IndividualIDResponse {
	out := &IndividualIDResponse{Errors: resp.Errors}
	if resp.Response != nil {
		out.MaskedMobile = resp.Response.MaskedMobile
		out.MaskedEmail = resp.Response.MaskedEmail
	}
	return out
}

// GenerateOTPRequest is the inbound body of POST /req/otp.
type GenerateOTPRequest envelope.MainRequest[OTPRequest]

// Validate normalizes channels and checks required fields.
func (r *GenerateOTPRequest) Validate() error {
	channels, err := validate(r.Request.IndividualID, r.Request.TransactionID, r.Request.OTPChannels)
	if err != nil {
		return err
	}
	r.Request.OTPChannels = channels
	r.Request.IndividualID = strings.TrimSpace(r.Request.IndividualID)
	r.Request.TransactionID = strings.TrimSpace(r.Request.TransactionID)
	if r.Request.ID == "" {
		r.Request.ID = r.ID
	}
	if r.Request.Version == "" {
		r.Request.Version = r.Version
	}
	if r.Request.RequestTime == "" {
		r.Request.RequestTime = r.RequestTime
	}
	return nil
}

// IndividualIDOTPRequest is the inbound body of POST /individualId/otp.
type IndividualIDOTPRequest envelope.MainRequest[IndividualIDRequest]

func (r *IndividualIDOTPRequest) Validate() error {
	channels, err := validate(r.Request.IndividualID, r.Request.TransactionID, r.Request.OTPChannels)
	if err != nil {
		return err
	}
	r.Request.OTPChannels = channels
	r.Request.IndividualID = strings.TrimSpace(r.Request.IndividualID)
	r.Request.TransactionID = strings.TrimSpace(r.Request.TransactionID)
	if r.Request.ID == "" {
		r.Request.ID = r.ID
	}
	if r.Request.Version == "" {
		r.Request.Version = r.Version
	}
	if r.Request.RequestTime == "" {
		r.Request.RequestTime = r.RequestTime
	}
	return nil
}

func validate(individualID, transactionID string, channels []string) ([]string, error) {
	if strings.TrimSpace(individualID) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "individualId is required")
	}
	if strings.TrimSpace(transactionID) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "transactionId is required")
	}
	return NormalizeChannels(channels)
}

// NormalizeChannels upper-cases and de-duplicates channels, keeping the
// first occurrence order. At least one supported channel is required.
func NormalizeChannels(channels []string) ([]string, error) {
	out := platformstrings.DedupeAndTrimUpper(channels)
	if len(out) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "otpChannel must not be empty")
	}
	for _, c := range out {
		switch c {
		case txmodels.ChannelEmail, txmodels.ChannelPhone:
		default:
			return nil, dErrors.New(dErrors.CodeValidation, "unsupported otpChannel: "+c)
		}
	}
	return out, nil
}
