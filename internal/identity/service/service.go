// Package service resolves resident identifiers against the identity
// repository and the authentication service.
package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"resident/internal/apiclient"
	"resident/internal/identity/models"
	dErrors "resident/pkg/domain-errors"
	"resident/pkg/platform/envelope"
	"resident/pkg/platform/sentinel"
	"resident/pkg/requestcontext"
)

type APIClient interface {
	PostAPI(ctx context.Context, api apiclient.APIName, body, out any) error
	GetAPI(ctx context.Context, api apiclient.APIName, pathParams map[string]string, query url.Values, out any) error
}

// TokenCache stores IDA tokens per individual id. Get returns
// sentinel.ErrNotFound on a miss.
type TokenCache interface {
	Get(ctx context.Context, individualID string) (string, error)
	Set(ctx context.Context, individualID, token string, ttl time.Duration) error
}

type Service struct {
	client   APIClient
	cache    TokenCache
	cacheTTL time.Duration
	langCode string
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.cacheTTL = ttl
	}
}

// WithLangCode selects which localized name GetIdentity returns.
func WithLangCode(lang string) Option {
	return func(s *Service) {
		s.langCode = lang
	}
}

// New constructs a Service. cache may be nil to disable token caching.
func New(client APIClient, cache TokenCache, opts ...Option) *Service {
	s := &Service{
		client:   client,
		cache:    cache,
		cacheTTL: 15 * time.Minute,
		langCode: "eng",
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetIndividualIDForAID resolves an application id into the individual id
// issued for it. AIDs that are not processed yet, or whose lookup reports
// errors, yield aid_status_is_not_ready.
func (s *Service) GetIndividualIDForAID(ctx context.Context, aid string) (string, error) {
	var resp models.AIDStatusResponse
	if err := s.client.GetAPI(ctx, apiclient.AIDStatus, map[string]string{"aid": aid}, nil, &resp); err != nil {
		return "", err
	}
	if e, ok := envelope.FirstError(resp.Errors); ok {
		s.logger.InfoContext(ctx, "aid status lookup returned errors",
			"error_code", e.ErrorCode,
			"request_id", requestcontext.RequestID(ctx),
		)
		return "", dErrors.New(dErrors.CodeAIDStatusNotReady, "AID status is not ready: "+e.Message)
	}
	if resp.Response == nil || resp.Response.IndividualID == "" || resp.Response.AIDStatus != models.AIDStatusProcessed {
		return "", dErrors.New(dErrors.CodeAIDStatusNotReady, "AID is not processed yet")
	}
	return resp.Response.IndividualID, nil
}

// GetIdentity returns the contact attributes on record for an individual.
func (s *Service) GetIdentity(ctx context.Context, individualID string) (*models.Identity, error) {
	var resp models.IdentityResponse
	query := url.Values{"type": {"demo"}}
	if err := s.client.GetAPI(ctx, apiclient.IDRepoIdentity, map[string]string{"id": individualID}, query, &resp); err != nil {
		return nil, err
	}
	if e, ok := envelope.FirstError(resp.Errors); ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "identity not found: "+e.ErrorCode)
	}
	if resp.Response == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "identity not found")
	}
	return resp.Response.Identity.ToIdentity(s.langCode), nil
}

// GetIDATokenForIndividualID returns the authentication token bound to the
// individual, serving from the cache when possible. Cache failures degrade
// to a direct lookup.
func (s *Service) GetIDATokenForIndividualID(ctx context.Context, individualID string) (string, error) {
	if s.cache != nil {
		token, err := s.cache.Get(ctx, individualID)
		switch {
		case err == nil:
			return token, nil
		case !errors.Is(err, sentinel.ErrNotFound):
			s.logger.WarnContext(ctx, "ida token cache read failed",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}

	req := models.TokenRequest{
		ID:          "mosip.resident.ida.token",
		Version:     "v1",
		RequestTime: envelope.FormatTime(requestcontext.Now(ctx)),
		Request:     models.TokenRequestBody{IndividualID: individualID},
	}
	var resp models.TokenResponse
	if err := s.client.PostAPI(ctx, apiclient.IDAToken, req, &resp); err != nil {
		return "", err
	}
	if e, ok := envelope.FirstError(resp.Errors); ok {
		return "", dErrors.New(dErrors.CodeNotFound, "ida token unavailable: "+e.ErrorCode)
	}
	if resp.Response == nil || resp.Response.Token == "" {
		return "", dErrors.New(dErrors.CodeNotFound, "ida token unavailable")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, individualID, resp.Response.Token, s.cacheTTL); err != nil {
			s.logger.WarnContext(ctx, "ida token cache write failed",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}
	return resp.Response.Token, nil
}
