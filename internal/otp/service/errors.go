package service

import (
	"context"
	"errors"

	"resident/internal/apiclient"
	"resident/internal/transaction/refid"
	dErrors "resident/pkg/domain-errors"
	"resident/pkg/platform/sentinel"
)

// ErrorKind is the closed set of failure classes the mediator distinguishes.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindUpstreamAccess: a platform API could not be reached or answered badly.
	KindUpstreamAccess
	// KindAlgorithm: the configured digest for reference ids is unavailable.
	KindAlgorithm
	// KindDomainChecked: a business rule rejected the request.
	KindDomainChecked
	// KindDomainRuntime: an already translated OTP_GENERATION_EXCEPTION.
	KindDomainRuntime
	// KindPersistence: the transaction record could not be written.
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindUpstreamAccess:
		return "upstream_access"
	case KindAlgorithm:
		return "algorithm"
	case KindDomainChecked:
		return "domain_checked"
	case KindDomainRuntime:
		return "domain_runtime"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Classify places err in its kind. Coded domain errors win over the causes
// they wrap.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	if de, ok := dErrors.As(err); ok {
		if de.Code == dErrors.CodeOTPGeneration {
			return KindDomainRuntime
		}
		return KindDomainChecked
	}
	switch {
	case apiclient.IsAccessError(err):
		return KindUpstreamAccess
	case errors.Is(err, context.DeadlineExceeded):
		return KindUpstreamAccess
	case errors.Is(err, refid.ErrAlgorithmUnavailable):
		return KindAlgorithm
	case errors.Is(err, sentinel.ErrConflict), errors.Is(err, sentinel.ErrUnavailable):
		return KindPersistence
	default:
		return KindUnknown
	}
}

// generateCodes maps failures inside GenerateOTP. Every kind collapses into
// OTP_GENERATION_EXCEPTION so callers see one stable code.
var generateCodes = map[ErrorKind]dErrors.Code{
	KindUnknown:        dErrors.CodeOTPGeneration,
	KindUpstreamAccess: dErrors.CodeOTPGeneration,
	KindAlgorithm:      dErrors.CodeOTPGeneration,
	KindDomainChecked:  dErrors.CodeOTPGeneration,
	KindDomainRuntime:  dErrors.CodeOTPGeneration,
	KindPersistence:    dErrors.CodeOTPGeneration,
}

// aidCodes maps failures raised while generating an OTP for an AID. Kinds
// absent from the table pass through unchanged.
var aidCodes = map[ErrorKind]dErrors.Code{
	KindUpstreamAccess: dErrors.CodeAIDStatusNotReady,
	KindDomainChecked:  dErrors.CodeAIDStatusNotReady,
}

const (
	msgOTPGeneration = "failed to generate OTP"
	msgAIDNotReady   = "AID status is not ready"
)

func translateGenerate(err error) error {
	return dErrors.Wrap(err, generateCodes[Classify(err)], msgOTPGeneration)
}
