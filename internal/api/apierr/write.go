package apierr

import (
	"net/http"

	"github.com/mcoot/qrclock-gateway/internal/api/response"
)

// WriteStepError writes the failure body used by the password and PIN steps.
// Kinds the steps do not own fall through to WriteDispatchError.
func WriteStepError(w http.ResponseWriter, e *Error) {
	switch e.Kind {
	case KindValidation, KindAuthentication:
		response.JSON(w, e.Status, response.StepFailure{Success: false, Message: e.Message})
	case KindStore:
		response.JSON(w, e.Status, response.StepFailure{Success: false, Message: e.Message, Error: e.Detail()})
	default:
		WriteDispatchError(w, e)
	}
}

// WriteProbeError writes the failure body of the connectivity probe
func WriteProbeError(w http.ResponseWriter, e *Error) {
	response.JSON(w, http.StatusInternalServerError, response.ProbeFailure{
		Success: false,
		Error:   MsgConnectionFailed,
		Details: e.Detail(),
	})
}

// WriteDispatchError writes the dispatcher's own responses: 404, 405 and
// the last-resort 500
func WriteDispatchError(w http.ResponseWriter, e *Error) {
	switch e.Kind {
	case KindNotFound:
		response.JSON(w, e.Status, response.DispatchError{Error: e.Message})
	case KindMethodNotAllowed:
		w.Header().Set("Allow", AllowHeader())
		response.Text(w, e.Status, e.Message)
	default:
		details := e.Detail()
		if details == "" {
			details = e.Message
		}
		response.JSON(w, http.StatusInternalServerError, response.DispatchError{
			Error:   MsgUnhandled,
			Details: details,
		})
	}
}
