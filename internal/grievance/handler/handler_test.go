package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"resident/internal/grievance/handler/mocks"
	"resident/internal/grievance/models"
	dErrors "resident/pkg/domain-errors"
	"resident/pkg/platform/envelope"
	"resident/pkg/platform/middleware/auth"
	"resident/pkg/requestcontext"
	"resident/pkg/testutil"
)

type stubValidator struct{}

func (stubValidator) ValidateToken(token string) (*auth.JWTClaims, error) {
	if token != "good" {
		return nil, errors.New("invalid token")
	}
	return &auth.JWTClaims{IndividualID: "4518367290"}, nil
}

const ticketBody = `{"id":"mosip.resident.grievance","version":"1.0","request":{"eventId":"evt-1","message":"OTP never arrived"}}`

func setup(t *testing.T) (*mocks.MockService, chi.Router) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	router := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), stubValidator{}).Register(router)
	return svc, router
}

func post(t *testing.T, router http.Handler, token, body string) *httptest.ResponseRecorder {
	req := testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPost, "/grievance/ticket", body), token)
	return testutil.DoRequest(router, req)
}

func TestHandleCreateTicket(t *testing.T) {
	testutil.Given(t, "an authenticated resident", func(t *testing.T) {
		testutil.When(t, "the ticket is created", func(t *testing.T) {
			svc, router := setup(t)
			svc.EXPECT().GetGrievanceTicket(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, req envelope.MainRequest[models.GrievanceRequest]) (*envelope.ResponseWrapper[any], error) {
					assert.Equal(t, "4518367290", requestcontext.IndividualID(ctx))
					assert.Equal(t, "evt-1", req.Request.EventID)
					return envelope.NewResponse[any](models.ResponseID, "1.0", time.Now(), models.TicketResponse{TicketID: "ticket-1"}), nil
				})

			rec := post(t, router, "good", ticketBody)
			testutil.Then(t, "the ticket id is returned", func(t *testing.T) {
				testutil.AssertStatus(t, rec, http.StatusOK)
				got := testutil.UnmarshalResponse[envelope.ResponseWrapper[models.TicketResponse]](t, rec)
				assert.Equal(t, "ticket-1", got.Response.TicketID)
			})
		})

		testutil.When(t, "the body fails validation", func(t *testing.T) {
			svc, router := setup(t)
			svc.EXPECT().GetGrievanceTicket(gomock.Any(), gomock.Any()).Times(0)

			rec := post(t, router, "good", `{"request":{"eventId":"evt-1"}}`)
			testutil.Then(t, "it is rejected before the service", func(t *testing.T) {
				testutil.AssertStatus(t, rec, http.StatusBadRequest)
			})
		})

		testutil.When(t, "the ticket store fails", func(t *testing.T) {
			svc, router := setup(t)
			svc.EXPECT().GetGrievanceTicket(gomock.Any(), gomock.Any()).
				Return(nil, dErrors.New(dErrors.CodeGrievanceTicket, "failed to create grievance ticket"))

			rec := post(t, router, "good", ticketBody)
			testutil.Then(t, "a wrapped 500 is returned", func(t *testing.T) {
				testutil.AssertEnvelopeError(t, rec, http.StatusInternalServerError, "GRIEVANCE_TICKET_FAILED")
			})
		})
	})

	testutil.Given(t, "no bearer token", func(t *testing.T) {
		svc, router := setup(t)
		svc.EXPECT().GetGrievanceTicket(gomock.Any(), gomock.Any()).Times(0)

		rec := post(t, router, "", ticketBody)
		testutil.Then(t, "the request is unauthorized", func(t *testing.T) {
			testutil.AssertStatus(t, rec, http.StatusUnauthorized)
		})
	})
}
