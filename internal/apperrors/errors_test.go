package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"conflict", Conflict("dup"), http.StatusConflict},
		{"unauthorized", Unauthorized("no"), http.StatusUnauthorized},
		{"forbidden", Forbidden("no"), http.StatusForbidden},
		{"not found", NotFound("gone"), http.StatusNotFound},
		{"expired", Expired("old"), http.StatusGone},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("register: %w", Conflict("dup")), http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestMessage_HidesInternalCause(t *testing.T) {
	err := Internal(errors.New("connection refused on 10.0.0.3"))
	assert.Equal(t, "Internal server error", Message(err))
	assert.Contains(t, err.Error(), "connection refused")

	assert.Equal(t, "Internal server error", Message(errors.New("raw")))
	assert.Equal(t, "Email already registered", Message(Conflict("Email already registered")))

	mailErr := Wrap(ErrInternal, "Failed to send verification email. Please try again.", errors.New("smtp: 535"))
	assert.Equal(t, http.StatusInternalServerError, Status(mailErr))
	assert.Equal(t, "Failed to send verification email. Please try again.", Message(mailErr))
}

func TestIs_MatchesKind(t *testing.T) {
	err := fmt.Errorf("outer: %w", Expired("Verification token has expired"))
	assert.True(t, errors.Is(err, ErrExpired))
	assert.False(t, errors.Is(err, ErrNotFound))
}
