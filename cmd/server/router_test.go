package main

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"resident/internal/platform/config"
	"resident/pkg/testutil"
)

func TestRouterScaffold(t *testing.T) {
	cfg := config.Server{
		LangCode:           "eng",
		JWTSigningKey:      "test-key",
		RefIDHashAlgorithm: "SHA-256",
		OTPRatePerMinute:   60,
		OTPRateBurst:       10,
		APIs:               map[string]string{},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	testutil.Given(t, "a router with no backing services", func(t *testing.T) {
		router, closeAudit := newRouter(cfg, log, &infra{})
		t.Cleanup(closeAudit)

		testutil.When(t, "probing operational endpoints", func(t *testing.T) {
			health := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/health", nil))
			metricsRec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/metrics", nil))

			testutil.Then(t, "both respond", func(t *testing.T) {
				testutil.AssertStatus(t, health, http.StatusOK)
				testutil.AssertStatus(t, metricsRec, http.StatusOK)
				assert.Contains(t, metricsRec.Body.String(), "go_goroutines")
			})
		})

		testutil.When(t, "posting a malformed OTP request", func(t *testing.T) {
			rec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/resident/v1/req/otp", `{`))

			testutil.Then(t, "it is rejected as a bad request", func(t *testing.T) {
				testutil.AssertStatus(t, rec, http.StatusBadRequest)
				assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
			})
		})

		testutil.When(t, "filing a grievance without a token", func(t *testing.T) {
			rec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/resident/v1/grievance/ticket", `{}`))

			testutil.Then(t, "it is unauthorized", func(t *testing.T) {
				testutil.AssertStatus(t, rec, http.StatusUnauthorized)
			})
		})

		testutil.When(t, "calling an unknown route", func(t *testing.T) {
			rec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/resident/v1/unknown", nil))

			testutil.Then(t, "it is not found", func(t *testing.T) {
				testutil.AssertStatus(t, rec, http.StatusNotFound)
			})
		})
	})
}
