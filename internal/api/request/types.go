package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/qrclock-gateway/internal/model"
)

// ErrMalformedBody is returned when a request body is not the expected JSON object
var ErrMalformedBody = errors.New("malformed request body")

// LoginRequest is the request body for the password step
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Complete reports whether both factors were supplied
func (r LoginRequest) Complete() bool {
	return r.Username != "" && r.Password != ""
}

// VerifyPINRequest is the request body for the PIN step
type VerifyPINRequest struct {
	AdminID AdminRef `json:"adminId"`
	PIN     Text     `json:"pin"`
}

// Complete reports whether both fields were supplied
func (r VerifyPINRequest) Complete() bool {
	return r.AdminID != 0 && r.PIN != ""
}

// Text accepts a JSON string or number. null decodes to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*t = Text(n.String())
		return nil
	}
	return fmt.Errorf("expected string or number, got %s", b)
}

// AdminRef is an admin ID sent as a JSON number or a numeric string.
// null, 0 and "" all decode to the zero value, meaning "not supplied".
type AdminRef model.AdminID

func (a *AdminRef) UnmarshalJSON(b []byte) error {
	var t Text
	if err := t.UnmarshalJSON(b); err != nil {
		return err
	}
	s := strings.TrimSpace(string(t))
	if s == "" {
		*a = 0
		return nil
	}
	id, err := model.ParseAdminID(s)
	if err != nil {
		return fmt.Errorf("admin id %q is not an integer", s)
	}
	*a = AdminRef(id)
	return nil
}

// ID returns the admin ID
func (a AdminRef) ID() model.AdminID {
	return model.AdminID(a)
}

// Decode reads a JSON object from body into v. An empty body decodes as {}.
func Decode(body io.Reader, v any) error {
	if body == nil {
		return nil
	}
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", ErrMalformedBody)
	}
	return nil
}
