// Package httputil holds the JSON plumbing shared by handlers: decoding and
// validating request bodies and writing success and error envelopes.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	dErrors "resident/pkg/domain-errors"
	"resident/pkg/platform/envelope"
)

// maxBodyBytes bounds request bodies accepted by DecodeAndPrepare.
const maxBodyBytes = 1 << 20

// Validatable is implemented by request bodies that normalise and check themselves.
type Validatable interface {
	Validate() error
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into a status and a {"error","error_description"}
// body. Internal errors never expose their description.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)

	body := map[string]string{"error": string(code)}
	if de, ok := dErrors.As(err); ok && status < http.StatusInternalServerError {
		body["error_description"] = de.Message
	}
	WriteJSON(w, status, body)
}

// WriteEnvelopeError writes err inside the resident response wrapper, with
// the upper-cased domain code (e.g. OTP_GENERATION_EXCEPTION) as errorCode.
func WriteEnvelopeError(w http.ResponseWriter, id, version string, now time.Time, err error) {
	code := dErrors.CodeOf(err)
	message := "internal error"
	if de, ok := dErrors.As(err); ok && code != dErrors.CodeInternal {
		message = de.Message
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code),
		envelope.NewErrorResponse(id, version, now, strings.ToUpper(string(code)), message))
}

// Decode reads a JSON body into dst, rejecting unknown trailing data.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return dErrors.New(dErrors.CodeBadRequest, "request body is required")
		}
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid JSON body")
	}
	return nil
}

// DecodeAndPrepare decodes the body into a T and runs its Validate method.
// On failure it writes the error response, logs at warn level and returns false.
func DecodeAndPrepare[T any, PT interface {
	*T
	Validatable
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	var req T
	if err := Decode(r, &req); err != nil {
		logRejected(ctx, logger, requestID, "failed to decode request", err)
		WriteError(w, err)
		return nil, false
	}
	if err := PT(&req).Validate(); err != nil {
		logRejected(ctx, logger, requestID, "invalid request", err)
		WriteError(w, err)
		return nil, false
	}
	return &req, true
}

func logRejected(ctx context.Context, logger *slog.Logger, requestID, msg string, err error) {
	if logger == nil {
		return
	}
	logger.WarnContext(ctx, msg,
		"request_id", requestID,
		"error", err,
	)
}
