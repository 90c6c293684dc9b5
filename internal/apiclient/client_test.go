package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"resident/pkg/platform/circuit"
	"resident/pkg/platform/sentinel"
	"resident/pkg/requestcontext"
)

type ClientSuite struct {
	suite.Suite
	server  *httptest.Server
	handler http.HandlerFunc
	metrics *Metrics
	client  *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handler(w, r)
	}))
	s.metrics = NewMetrics(prometheus.NewRegistry())
	s.client = New(map[string]string{
		string(OTPGen):    s.server.URL + "/req/otp",
		string(AIDStatus): s.server.URL + "/aid/{aid}/status",
		string(IDAToken):  s.server.URL + "/token",
	},
		WithMetrics(s.metrics),
		WithBreakerOptions(circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour)),
	)
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestPostAPI() {
	s.Run("sends JSON and decodes the response", func() {
		var gotBody map[string]any
		var gotRequestID string
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			s.Equal(http.MethodPost, r.Method)
			s.Equal("application/json", r.Header.Get("Content-Type"))
			gotRequestID = r.Header.Get("X-Request-ID")
			s.Require().NoError(json.NewDecoder(r.Body).Decode(&gotBody))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"transactionID":"txn-1","response":{"maskedEmail":"a***@x.io"}}`))
		}

		ctx := requestcontext.WithRequestID(context.Background(), "req-9")
		var out struct {
			TransactionID string         `json:"transactionID"`
			Response      map[string]any `json:"response"`
		}
		err := s.client.PostAPI(ctx, OTPGen, map[string]string{"individualId": "123"}, &out)

		s.Require().NoError(err)
		s.Equal("txn-1", out.TransactionID)
		s.Equal("123", gotBody["individualId"])
		s.Equal("req-9", gotRequestID)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.Calls.WithLabelValues(string(OTPGen), "ok")))
	})

	s.Run("non-2xx is an access error with status", func() {
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"errors":[{"errorCode":"RES-SER-410"}]}`))
		}

		err := s.client.PostAPI(context.Background(), OTPGen, map[string]string{}, nil)

		var ae *AccessError
		s.Require().ErrorAs(err, &ae)
		s.Equal(http.StatusBadRequest, ae.StatusCode)
		s.Equal(OTPGen, ae.API)
		s.Contains(err.Error(), "RES-SER-410")
	})

	s.Run("undecodable body is an access error", func() {
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not-json`))
		}

		var out map[string]any
		err := s.client.PostAPI(context.Background(), OTPGen, map[string]string{}, &out)
		s.True(IsAccessError(err))
	})
}

func (s *ClientSuite) TestGetAPI_FillsPathAndQuery() {
	var gotPath, gotQuery string
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"response":{"individualId":"9876543210","aidStatus":"PROCESSED"}}`))
	}

	var out struct {
		Response struct {
			IndividualID string `json:"individualId"`
		} `json:"response"`
	}
	err := s.client.GetAPI(context.Background(), AIDStatus,
		map[string]string{"aid": "10001100770000320220"},
		url.Values{"type": []string{"AID"}},
		&out)

	s.Require().NoError(err)
	s.Equal("/aid/10001100770000320220/status", gotPath)
	s.Equal("type=AID", gotQuery)
	s.Equal("9876543210", out.Response.IndividualID)
}

func (s *ClientSuite) TestUnknownAPI() {
	err := s.client.PostAPI(context.Background(), IDRepoIdentity, nil, nil)
	var ae *AccessError
	s.Require().ErrorAs(err, &ae)
	s.Equal(IDRepoIdentity, ae.API)
	s.Zero(ae.StatusCode)
}

func (s *ClientSuite) TestCircuitOpensAfterServerErrors() {
	calls := 0
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	for range 2 {
		err := s.client.PostAPI(context.Background(), OTPGen, map[string]string{}, nil)
		s.True(IsAccessError(err))
	}

	err := s.client.PostAPI(context.Background(), OTPGen, map[string]string{}, nil)
	s.True(IsAccessError(err))
	s.True(errors.Is(err, sentinel.ErrUnavailable), "open circuit fails fast")
	s.Equal(2, calls)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Calls.WithLabelValues(string(OTPGen), "circuit_open")))
}

func (s *ClientSuite) TestCircuitIsPerAPI() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/token" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}

	for range 3 {
		s.True(IsAccessError(s.client.PostAPI(context.Background(), IDAToken, map[string]string{}, nil)))
	}
	err := s.client.PostAPI(context.Background(), IDAToken, map[string]string{}, nil)
	s.ErrorIs(err, sentinel.ErrUnavailable, "token circuit is open")

	err = s.client.PostAPI(context.Background(), OTPGen, map[string]string{}, nil)
	s.NoError(err, "OTP generation keeps its own closed circuit")
}

func (s *ClientSuite) TestCancelledCallsDoNotOpenCircuit() {
	release := make(chan struct{})
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
		_, _ = w.Write([]byte(`{}`))
	}

	for range 5 {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		err := s.client.PostAPI(ctx, IDAToken, map[string]string{}, nil)
		cancel()
		s.True(IsAccessError(err))
		s.False(errors.Is(err, sentinel.ErrUnavailable))
	}
	close(release)

	s.NoError(s.client.PostAPI(context.Background(), IDAToken, map[string]string{}, nil))
	s.NoError(s.client.PostAPI(context.Background(), OTPGen, map[string]string{}, nil))
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	target := server.URL
	server.Close()

	client := New(map[string]string{string(OTPGen): target})
	err := client.PostAPI(context.Background(), OTPGen, map[string]string{}, nil)

	var ae *AccessError
	require.ErrorAs(t, err, &ae)
	assert.Zero(t, ae.StatusCode)
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	client := New(map[string]string{string(OTPGen): server.URL}, WithTimeout(20*time.Millisecond))
	err := client.PostAPI(context.Background(), OTPGen, map[string]string{}, nil)
	assert.True(t, IsAccessError(err))
}
