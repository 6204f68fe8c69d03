package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mcoot/qrclock-gateway/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintf(o.w, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.ProbeResponse:
		o.printProbe(v)
	case response.LoginResponse:
		o.printLogin(v)
	case response.VerifyPINResponse:
		o.printVerifyPIN(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printProbe(p response.ProbeResponse) {
	_, _ = fmt.Fprintln(o.w, p.Message)
	_, _ = fmt.Fprintf(o.w, "Rows: %d\n", len(p.Data))
}

func (o *Output) printLogin(l response.LoginResponse) {
	_, _ = fmt.Fprintln(o.w, l.Message)
	_, _ = fmt.Fprintf(o.w, "Admin: %s (%s)\n", l.AdminName, l.AdminID)
}

func (o *Output) printVerifyPIN(v response.VerifyPINResponse) {
	_, _ = fmt.Fprintln(o.w, v.Message)
	_, _ = fmt.Fprintf(o.w, "Admin: %s (%s)\n", v.Admin.Name, v.Admin.ID)
	_, _ = fmt.Fprintf(o.w, "Username: %s\n", v.Admin.Username)
}
