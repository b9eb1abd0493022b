package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromErr(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not_found", NewError("missing").Mark(ErrNotFound), http.StatusNotFound, ErrCodeNotFound},
		{"already_exists", NewError("dup").Mark(ErrAlreadyExists), http.StatusConflict, ErrCodeAlreadyExists},
		{"conflict", NewError("in use").Mark(ErrConflict), http.StatusConflict, ErrCodeConflict},
		{"validation", NewError("bad").Mark(ErrValidation), http.StatusBadRequest, ErrCodeValidation},
		{"invalid_operation", NewError("nope").Mark(ErrInvalidOperation), http.StatusBadRequest, ErrCodeInvalidOperation},
		{"database", NewError("down").Mark(ErrDatabase), http.StatusInternalServerError, ErrCodeDatabase},
		{"notification", NewError("broker").Mark(ErrNotification), http.StatusBadGateway, ErrCodeNotification},
		{"unmarked", errors.New("boom"), http.StatusInternalServerError, ErrCodeSystemError},
		{
			name:   "server_side_mark_wins",
			err:    WithError(NewError("missing").Mark(ErrNotFound)).Mark(ErrDatabase),
			status: http.StatusInternalServerError,
			code:   ErrCodeDatabase,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, HTTPStatusFromErr(tc.err))
			assert.Equal(t, tc.code, Code(tc.err))
		})
	}
}

func TestIsUnexpected(t *testing.T) {
	assert.False(t, IsUnexpected(nil))
	assert.False(t, IsUnexpected(NewError("x").Mark(ErrValidation)))
	assert.True(t, IsUnexpected(errors.New("x")))
	assert.True(t, IsUnexpected(NewError("x").Mark(ErrNotification)))
}

func TestIsConflictCoversDuplicates(t *testing.T) {
	assert.True(t, IsConflict(NewError("x").Mark(ErrAlreadyExists)))
	assert.True(t, IsConflict(NewError("x").Mark(ErrConflict)))
	assert.False(t, IsAlreadyExists(NewError("x").Mark(ErrConflict)))
}

func TestBuilderHintsAndDetails(t *testing.T) {
	inner := NewError("row missing").
		WithHint("Claim not found").
		WithReportableDetails(map[string]any{"id": "clm_1"}).
		Mark(ErrNotFound)

	outer := WithError(inner).
		WithHint("Outer hint").
		WithDetail("stage", "persist").
		Error()

	assert.True(t, IsNotFound(outer))
	assert.Equal(t, "Claim not found", GetDisplayMessage(outer))

	details := GetReportableDetails(outer)
	assert.Equal(t, "clm_1", details["id"])
	assert.Equal(t, "persist", details["stage"])
}

func TestGetDisplayMessageWithoutHint(t *testing.T) {
	assert.Empty(t, GetDisplayMessage(errors.New("plain")))
}
