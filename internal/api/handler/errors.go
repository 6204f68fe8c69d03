package handler

import (
	"net/http"

	"github.com/mcoot/qrclock-gateway/internal/api/apierr"
)

// Func is an HTTP handler that translates its own known failures and
// returns anything it could not anticipate. The dispatcher turns a
// returned error into the last-resort 500 response.
type Func func(w http.ResponseWriter, r *http.Request) error

// WriteStepError writes a password or PIN step failure
func WriteStepError(w http.ResponseWriter, err error) {
	apierr.WriteStepError(w, apierr.Classify(err, apierr.MsgDatabaseError))
}
