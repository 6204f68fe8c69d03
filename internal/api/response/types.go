package response

import (
	"github.com/mcoot/qrclock-gateway/internal/model"
)

// Success messages
const (
	MsgProbeOK       = "Database connection successful!"
	MsgCredentialsOK = "Credentials verified. Please enter PIN."
	MsgLoginOK       = "Login successful"
)

// ProbeResponse is the body of a successful connectivity probe
type ProbeResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    []model.ProbeRow `json:"data"`
}

// ProbeFailure is the body of a failed connectivity probe
type ProbeFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

// LoginResponse is the body of a successful password step.
// It carries no secret fields.
type LoginResponse struct {
	Success     bool          `json:"success"`
	Message     string        `json:"message"`
	RequiresPin bool          `json:"requiresPin"`
	AdminID     model.AdminID `json:"adminId"`
	AdminName   string        `json:"adminName"`
}

// LoginResponseFromModel builds the password step response for an admin
func LoginResponseFromModel(a *model.Admin) LoginResponse {
	return LoginResponse{
		Success:     true,
		Message:     MsgCredentialsOK,
		RequiresPin: true,
		AdminID:     a.ID,
		AdminName:   a.Name,
	}
}

// Admin is the authenticated identity returned by the PIN step
type Admin struct {
	ID       model.AdminID `json:"id"`
	Name     string        `json:"name"`
	Username string        `json:"username"`
}

// AdminFromModel converts a model.Admin, dropping password and PIN
func AdminFromModel(a *model.Admin) Admin {
	return Admin{
		ID:       a.ID,
		Name:     a.Name,
		Username: a.Username,
	}
}

// VerifyPINResponse is the body of a successful PIN step
type VerifyPINResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Admin   Admin  `json:"admin"`
}

// StepFailure is the body of a failed password or PIN step.
// Error carries the store's message for 500s only.
type StepFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// DispatchError is the body written by the dispatcher itself
// (unmatched routes and the last-resort 500)
type DispatchError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
