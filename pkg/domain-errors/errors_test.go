package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct error", func(t *testing.T) {
		err := New(CodeNotFound, "missing")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("store: %w", New(CodeConflict, "dup"))
		assert.True(t, HasCode(err, CodeConflict))
	})

	t.Run("uses outermost code", func(t *testing.T) {
		inner := New(CodeAIDStatusNotReady, "not ready")
		outer := Wrap(inner, CodeOTPGeneration, "otp failed")
		assert.True(t, HasCode(outer, CodeOTPGeneration))
		assert.False(t, HasCode(outer, CodeAIDStatusNotReady))
	})

	t.Run("plain errors have no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeOTPGeneration, "OTP generation failed")

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), string(CodeOTPGeneration))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:             http.StatusBadRequest,
		CodeOTPChannelNotSupported: http.StatusBadRequest,
		CodeUnauthorized:           http.StatusUnauthorized,
		CodeAIDStatusNotReady:      http.StatusUnprocessableEntity,
		CodeOTPGeneration:          http.StatusBadGateway,
		CodeTooManyRequests:        http.StatusTooManyRequests,
		Code("unknown"):            http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), "code %s", code)
	}
}
