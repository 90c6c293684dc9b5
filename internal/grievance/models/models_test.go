package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "resident/pkg/domain-errors"
)

func TestGrievanceRequest_Validate(t *testing.T) {
	valid := func() GrievanceRequest {
		return GrievanceRequest{
			EventID: " 01J0000000000000000000000 ",
			Message: "  OTP never arrived  ",
			EmailID: "resident@example.org",
			PhoneNo: "+919876543210",
		}
	}

	t.Run("valid request is trimmed", func(t *testing.T) {
		req := valid()
		require.NoError(t, req.Validate())
		assert.Equal(t, "01J0000000000000000000000", req.EventID)
		assert.Equal(t, "OTP never arrived", req.Message)
	})

	tests := []struct {
		name   string
		mutate func(*GrievanceRequest)
	}{
		{"missing event id", func(r *GrievanceRequest) { r.EventID = "  " }},
		{"missing message", func(r *GrievanceRequest) { r.Message = "" }},
		{"message too long", func(r *GrievanceRequest) { r.Message = strings.Repeat("a", MaxMessageLength+1) }},
		{"bad email", func(r *GrievanceRequest) { r.EmailID = "not-an-email" }},
		{"bad alternate email", func(r *GrievanceRequest) { r.AlternateEmailID = "@@" }},
		{"bad phone", func(r *GrievanceRequest) { r.PhoneNo = "12ab" }},
		{"bad alternate phone", func(r *GrievanceRequest) { r.AlternatePhoneNo = "123" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			assert.True(t, dErrors.HasCode(req.Validate(), dErrors.CodeValidation))
		})
	}

	t.Run("message at the limit is accepted", func(t *testing.T) {
		req := valid()
		req.Message = strings.Repeat("é", MaxMessageLength)
		assert.NoError(t, req.Validate())
	})
}

func TestNewTicket(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ticket := NewTicket("t-1", "4518367290", GrievanceRequest{EventID: "e-1", Message: "hello", Name: "Asha"}, at)

	assert.Equal(t, StatusNew, ticket.Status)
	assert.Equal(t, "4518367290", ticket.IndividualID)
	assert.Equal(t, "e-1", ticket.EventID)
	assert.Equal(t, "Asha", ticket.Name)
	assert.Equal(t, at, ticket.CreatedAt)
}

func TestNeedsContactDefaults(t *testing.T) {
	full := GrievanceRequest{Name: "Asha", EmailID: "a@example.org", PhoneNo: "9876543210"}
	assert.False(t, full.NeedsContactDefaults())
	full.PhoneNo = ""
	assert.True(t, full.NeedsContactDefaults())
}
