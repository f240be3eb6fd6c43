package apierr

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/quizbingo/internal/model"
	"github.com/mcoot/quizbingo/internal/services/host"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid request", NewInvalidRequestError("bad body"), http.StatusBadRequest, CodeInvalidRequest},
		{"host unauthorized", model.ErrHostUnauthorized, http.StatusUnauthorized, CodeUnauthorized},
		{"wrong password", host.ErrInvalidPassword, http.StatusUnauthorized, CodeInvalidPassword},
		{"wrapped pool error", fmt.Errorf("sampling quizzes: %w", model.ErrQuizPoolTooSmall), http.StatusServiceUnavailable, CodeQuizPoolTooSmall},
		{"bank not loaded", model.ErrQuizBankNotLoaded, http.StatusServiceUnavailable, CodeQuizBankNotLoaded},
		{"unknown", fmt.Errorf("disk on fire"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}
