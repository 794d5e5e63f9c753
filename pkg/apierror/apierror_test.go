package apierror

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAPIError(t *testing.T) {
	t.Parallel()

	t.Run("formats code and message", func(t *testing.T) {
		err := New("INVALID_ROLE", "role must be teacher or student", "", http.StatusBadRequest)
		require.Equal(t, "INVALID_ROLE: role must be teacher or student", err.Error())
	})

	t.Run("includes details when present", func(t *testing.T) {
		err := New("NOT_FOUND", "user not found", "ada", http.StatusNotFound)
		require.Equal(t, "NOT_FOUND: user not found (ada)", err.Error())
	})

	t.Run("nil error is empty", func(t *testing.T) {
		var err *APIError
		require.Empty(t, err.Error())
	})

	t.Run("boundary helpers carry their status", func(t *testing.T) {
		require.Equal(t, http.StatusBadRequest, BadRequest("invalid JSON body").HTTPStatus)
		require.Equal(t, http.StatusUnauthorized, Unauthorized("authentication required").HTTPStatus)
	})
}
