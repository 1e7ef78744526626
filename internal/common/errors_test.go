package common

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	cause := errors.New("boom")
	err := NewUserError("Could not save", cause)

	assert.Equal(t, "Could not save: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Could not save", Describe(fmt.Errorf("wrapped: %w", err)))
}

func TestInvalid(t *testing.T) {
	err := Invalid("amount", "is required")

	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "amount is required")
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "not authenticated", err: fmt.Errorf("load: %w", ErrNotAuthenticated), want: "not logged in"},
		{name: "unauthorized", err: fmt.Errorf("GET /goals: %w", ErrUnauthorized), want: "rejected your credentials"},
		{name: "transport", err: fmt.Errorf("%w: dial tcp", ErrTransport), want: "Could not reach"},
		{name: "other", err: errors.New("plain"), want: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, Describe(tt.err), tt.want)
		})
	}
}

func TestNewHandler(t *testing.T) {
	var buf bytes.Buffer

	handler, err := NewHandler(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)
	slog.New(handler).Info("hello", "user_id", 7)
	assert.Contains(t, buf.String(), `"user_id":7`)

	_, err = NewHandler(&buf, slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}
