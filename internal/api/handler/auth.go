package handler

import (
	"net/http"

	"github.com/mcoot/qrclock-gateway/internal/api/apierr"
	"github.com/mcoot/qrclock-gateway/internal/api/request"
	"github.com/mcoot/qrclock-gateway/internal/api/response"
	"github.com/mcoot/qrclock-gateway/internal/services/auth"
)

// AuthHandler handles the probe and both verification steps
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Probe handles GET /api/test
func (h *AuthHandler) Probe(w http.ResponseWriter, r *http.Request) error {
	rows, err := h.authService.Probe(r.Context())
	if err != nil {
		apierr.WriteProbeError(w, apierr.Classify(err, apierr.MsgConnectionFailed))
		return nil
	}

	response.JSON(w, http.StatusOK, response.ProbeResponse{
		Success: true,
		Message: response.MsgProbeOK,
		Data:    rows,
	})
	return nil
}

// Login handles POST /api/admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var req request.LoginRequest
	if err := request.Decode(r.Body, &req); err != nil {
		WriteStepError(w, apierr.NewValidationError(apierr.MsgInvalidBody))
		return nil
	}

	if !req.Complete() {
		WriteStepError(w, apierr.NewValidationError(apierr.MsgCredentialsRequired))
		return nil
	}

	admin, err := h.authService.VerifyPassword(r.Context(), req.Username, req.Password)
	if err != nil {
		return writeKnown(w, err)
	}

	response.JSON(w, http.StatusOK, response.LoginResponseFromModel(admin))
	return nil
}

// VerifyPIN handles POST /api/admin/verify-pin
func (h *AuthHandler) VerifyPIN(w http.ResponseWriter, r *http.Request) error {
	var req request.VerifyPINRequest
	if err := request.Decode(r.Body, &req); err != nil {
		WriteStepError(w, apierr.NewValidationError(apierr.MsgInvalidBody))
		return nil
	}

	if !req.Complete() {
		WriteStepError(w, apierr.NewValidationError(apierr.MsgPINRequired))
		return nil
	}

	admin, err := h.authService.VerifyPIN(r.Context(), req.AdminID.ID(), string(req.PIN))
	if err != nil {
		return writeKnown(w, err)
	}

	response.JSON(w, http.StatusOK, response.VerifyPINResponse{
		Success: true,
		Message: response.MsgLoginOK,
		Admin:   response.AdminFromModel(admin),
	})
	return nil
}

// writeKnown writes authentication and store failures; anything else is
// returned for the dispatcher's safety net
func writeKnown(w http.ResponseWriter, err error) error {
	e := apierr.Classify(err, apierr.MsgDatabaseError)
	if e.Kind == apierr.KindUnhandled {
		return err
	}
	apierr.WriteStepError(w, e)
	return nil
}
