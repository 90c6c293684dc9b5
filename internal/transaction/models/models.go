package models

import (
	"strings"
	"time"
)

// OTP delivery channels.
const (
	ChannelEmail = "EMAIL"
	ChannelPhone = "PHONE"
)

// Fixed values stamped on records of OTP requests.
const (
	RequestTypeSendOTP  = "SEND_OTP"
	SummaryOTPGenerated = "OTP Generated"
	StatusOTPRequested  = "OTP_REQUESTED"
	RefIDTypeUIN        = "UIN"
	DefaultLangCode     = "eng"
	CreatedByResident   = "resident-services"
)

// ResidentTransaction is the persistent record of a resident-initiated
// action. Records are written once and never updated by this service.
type ResidentTransaction struct {
	EventID         string
	RequestTrnID    string
	RequestTypeCode string
	RequestSummary  string
	AuthTypeCode    string
	AttributeList   string
	OTPChannels     []string
	StatusCode      string
	StatusComment   string
	LangCode        string
	RefIDType       string
	RefID           string
	IndividualID    string
	TokenID         string
	Purpose         string
	CreatedBy       string
	CreatedAt       time.Time
}

// SendOTP carries the derived values for a SEND_OTP record.
type SendOTP struct {
	EventID       string
	TransactionID string
	IndividualID  string
	Channels      []string
	RefID         string
	TokenID       string
	LangCode      string
	CreatedAt     time.Time
}

// NewSendOTPTransaction builds the record written after an OTP is generated.
// The attribute list and auth type are the channels joined with ", ";
// the purpose joins them with ",".
func NewSendOTPTransaction(in SendOTP) *ResidentTransaction {
	lang := in.LangCode
	if lang == "" {
		lang = DefaultLangCode
	}
	attributes := strings.Join(in.Channels, ", ")
	return &ResidentTransaction{
		EventID:         in.EventID,
		RequestTrnID:    in.TransactionID,
		RequestTypeCode: RequestTypeSendOTP,
		RequestSummary:  SummaryOTPGenerated,
		AuthTypeCode:    attributes,
		AttributeList:   attributes,
		OTPChannels:     append([]string(nil), in.Channels...),
		StatusCode:      StatusOTPRequested,
		StatusComment:   StatusOTPRequested,
		LangCode:        lang,
		RefIDType:       RefIDTypeUIN,
		RefID:           in.RefID,
		IndividualID:    in.IndividualID,
		TokenID:         in.TokenID,
		Purpose:         strings.Join(in.Channels, ","),
		CreatedBy:       CreatedByResident,
		CreatedAt:       in.CreatedAt,
	}
}
