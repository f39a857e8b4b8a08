package rest

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserErrorJSONStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"not found", errors.New("user not found"), http.StatusNotFound, "user not found"},
		{"duplicate email", errors.New("email already exists"), http.StatusBadRequest, "email already exists"},
		{"weak password", errors.New("password must be at least 6 characters"), http.StatusBadRequest, "password must"},
		{"session store failure", errors.New("failed to delete token: connection refused"), http.StatusInternalServerError, "Something went wrong"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(t)

			require.NoError(t, userErrorJSON(c, tc.err))

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantBody)
		})
	}
}

func TestUserErrorJSONHidesBackendDetails(t *testing.T) {
	c, rec := newJSONContext(t)

	require.NoError(t, userErrorJSON(c, errors.New("failed to delete token: connection refused")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
