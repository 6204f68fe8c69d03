package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/qrclock-gateway/internal/services/auth"
	"github.com/mcoot/qrclock-gateway/internal/storage"
)

func TestClassify(t *testing.T) {
	storeErr := storage.Wrap("find by pin", errors.New("too many connections"))

	tests := []struct {
		name    string
		err     error
		kind    Kind
		status  int
		message string
		detail  string
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, KindAuthentication, http.StatusUnauthorized, MsgInvalidCredentials, ""},
		{"invalid pin", fmt.Errorf("verify: %w", auth.ErrInvalidPIN), KindAuthentication, http.StatusUnauthorized, MsgInvalidPIN, ""},
		{"store failure", storeErr, KindStore, http.StatusInternalServerError, MsgDatabaseError, "too many connections"},
		{"already classified", NewValidationError(MsgPINRequired), KindValidation, http.StatusBadRequest, MsgPINRequired, ""},
		{"unexpected", errors.New("boom"), KindUnhandled, http.StatusInternalServerError, MsgUnhandled, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Classify(tt.err, MsgDatabaseError)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.status, e.Status)
			assert.Equal(t, tt.message, e.Message)
			assert.Equal(t, tt.detail, e.Detail())
		})
	}
}

func TestWriteMethodNotAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteDispatchError(rr, NewMethodNotAllowedError(http.MethodPut))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "POST, GET, PUT, DELETE", rr.Header().Get("Allow"))
	assert.Equal(t, "Method PUT Not Allowed", rr.Body.String())
}

func TestWriteStepErrorStoreCarriesMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteStepError(rr, Classify(storage.Wrap("find by credentials", errors.New("dial tcp: refused")), MsgDatabaseError))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"success":false,"message":"Database error","error":"dial tcp: refused"}`, rr.Body.String())
}

func TestWriteStepErrorUnhandledFallsThrough(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteStepError(rr, NewUnhandledError(errors.New("boom")))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"An error occurred while processing your request","details":"boom"}`, rr.Body.String())
}
