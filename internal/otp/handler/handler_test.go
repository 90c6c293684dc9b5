package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"resident/internal/otp/handler/mocks"
	"resident/internal/otp/models"
	"resident/internal/otp/quota"
	dErrors "resident/pkg/domain-errors"
	"resident/pkg/platform/envelope"
	"resident/pkg/platform/middleware/ratelimit"
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)), nil).Register(s.router)
}

func (s *HandlerSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *HandlerSuite) post(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

const otpBody = `{
	"id": "mosip.resident.otp",
	"version": "1.0",
	"requesttime": "2026-03-01T10:00:00.000Z",
	"request": {"individualId": "4518367290", "transactionID": "1234567890", "otpChannel": ["email", "PHONE", "EMAIL"]}
}`

func (s *HandlerSuite) TestGenerateOTP() {
	s.Run("relays the platform response", func() {
		s.service.EXPECT().GenerateOTP(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *models.OTPRequest) (*models.OTPResponse, error) {
				s.Equal("4518367290", req.IndividualID)
				s.Equal([]string{"EMAIL", "PHONE"}, req.OTPChannels)
				s.Equal("mosip.resident.otp", req.ID)
				return &models.OTPResponse{
					TransactionID: req.TransactionID,
					Response:      &models.MaskedContacts{MaskedMobile: "98XXXXXX10"},
				}, nil
			})

		rec := s.post("/req/otp", otpBody)
		s.Equal(http.StatusOK, rec.Code)

		var got models.OTPResponse
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&got))
		s.Equal("1234567890", got.TransactionID)
		s.Equal("98XXXXXX10", got.Response.MaskedMobile)
	})

	s.Run("generation failure is a wrapped error", func() {
		s.service.EXPECT().GenerateOTP(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeOTPGeneration, "failed to generate OTP"))

		rec := s.post("/req/otp", otpBody)
		s.Equal(http.StatusBadGateway, rec.Code)

		var got envelope.ResponseWrapper[any]
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&got))
		s.Require().Len(got.Errors, 1)
		s.Equal("OTP_GENERATION_EXCEPTION", got.Errors[0].ErrorCode)
	})

	s.Run("invalid request never reaches the service", func() {
		s.service.EXPECT().GenerateOTP(gomock.Any(), gomock.Any()).Times(0)

		rec := s.post("/req/otp", `{"request":{"individualId":"4518367290","transactionID":"1","otpChannel":[]}}`)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), string(dErrors.CodeValidation))
	})

	s.Run("malformed body", func() {
		rec := s.post("/req/otp", `{`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestIndividualIDOTP() {
	body := `{"id":"mosip.resident.individualId.otp","version":"1.0","request":{"individualId":"10001100770000320220","transactionId":"1234567890","otpChannel":["PHONE"]}}`

	s.Run("wraps the response", func() {
		s.service.EXPECT().GenerateOTPForIndividualID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *models.IndividualIDRequest) (*models.IndividualIDResponse, error) {
				s.Equal("10001100770000320220", req.IndividualID)
				return &models.IndividualIDResponse{TransactionID: req.TransactionID, MaskedMobile: "98XXXXXX10"}, nil
			})

		rec := s.post("/individualId/otp", body)
		s.Equal(http.StatusOK, rec.Code)

		var got envelope.ResponseWrapper[models.IndividualIDResponse]
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&got))
		s.Equal("mosip.resident.individualId.otp", got.ID)
		s.Equal("1234567890", got.Response.TransactionID)
		s.Empty(got.Errors)
	})

	s.Run("platform errors move to the wrapper", func() {
		s.service.EXPECT().GenerateOTPForIndividualID(gomock.Any(), gomock.Any()).
			Return(&models.IndividualIDResponse{
				TransactionID: "1234567890",
				Errors:        []envelope.ServiceError{{ErrorCode: "IDA-OTA-001", Message: "limit"}},
			}, nil)

		rec := s.post("/individualId/otp", body)
		s.Equal(http.StatusOK, rec.Code)

		var got envelope.ResponseWrapper[models.IndividualIDResponse]
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&got))
		s.Require().Len(got.Errors, 1)
		s.Equal("IDA-OTA-001", got.Errors[0].ErrorCode)
		s.Empty(got.Response.Errors)
	})

	s.Run("AID not ready", func() {
		s.service.EXPECT().GenerateOTPForIndividualID(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeAIDStatusNotReady, "AID status is not ready"))

		rec := s.post("/individualId/otp", body)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
		s.Contains(rec.Body.String(), "AID_STATUS_IS_NOT_READY")
	})
}

func TestRegister_RateLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockService(ctrl)
	service.EXPECT().GenerateOTP(gomock.Any(), gomock.Any()).
		Return(&models.OTPResponse{Response: &models.MaskedContacts{}}, nil).
		Times(1)

	router := chi.NewRouter()
	New(service, nil, ratelimit.New(1, 1)).Register(router)

	codes := make([]int, 0, 2)
	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/req/otp", strings.NewReader(otpBody))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	require.Len(t, codes, 2)
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRegister_QuotaExhausted(t *testing.T) {
	resetAt := time.Now().Add(30 * time.Minute)
	quotaErr := dErrors.Wrap(&quota.ExceededError{ResetAt: resetAt}, dErrors.CodeTooManyRequests, "OTP request limit reached")

	ctrl := gomock.NewController(t)
	service := mocks.NewMockService(ctrl)
	service.EXPECT().GenerateOTP(gomock.Any(), gomock.Any()).Return(nil, quotaErr)
	service.EXPECT().GenerateOTPForIndividualID(gomock.Any(), gomock.Any()).Return(nil, quotaErr)

	router := chi.NewRouter()
	New(service, nil, nil).Register(router)

	for _, path := range []string{"/req/otp", "/individualId/otp"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(otpBody)))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get("Retry-After"), path)
		assert.Equal(t, strconv.FormatInt(resetAt.Unix(), 10), rec.Header().Get("X-RateLimit-Reset"), path)
		assert.Contains(t, rec.Body.String(), "TOO_MANY_REQUESTS", path)
	}
}

func TestRegister_OtherErrorsSetNoRetryHeaders(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockService(ctrl)
	service.EXPECT().GenerateOTP(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeOTPGeneration, "OTP generation failed"))

	router := chi.NewRouter()
	New(service, nil, nil).Register(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/req/otp", strings.NewReader(otpBody)))
	assert.Empty(t, rec.Header().Get("Retry-After"))
}
