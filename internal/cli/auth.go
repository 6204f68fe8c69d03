package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/qrclock-gateway/internal/api/response"
)

var errNoPIN = errors.New("no PIN provided")

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type verifyPINBody struct {
	AdminID int64  `json:"adminId"`
	PIN     string `json:"pin"`
}

func newLoginCmd() *cobra.Command {
	var username, password, pin string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as an administrator (password, then PIN)",
		Long: `Runs both steps of the administrator login.

If --pin is not given, the PIN is read from standard input once the
password step has succeeded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output, cmd.OutOrStdout())

			var login response.LoginResponse
			if err := client.Post(cmd.Context(), "/api/admin/login", loginBody{
				Username: username,
				Password: password,
			}, &login); err != nil {
				return err
			}

			if cfg.Output != "json" {
				out.Print(login)
			}

			if pin == "" {
				if cfg.Output != "json" {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "PIN for %s: ", login.AdminName)
				}
				var err error
				if pin, err = readLine(cmd); err != nil {
					return err
				}
			}

			var verified response.VerifyPINResponse
			if err := client.Post(cmd.Context(), "/api/admin/verify-pin", verifyPINBody{
				AdminID: int64(login.AdminID),
				PIN:     pin,
			}, &verified); err != nil {
				return err
			}

			out.Print(verified)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "Admin username (required)")
	cmd.Flags().StringVarP(&password, "pass", "p", "", "Admin password (required)")
	cmd.Flags().StringVar(&pin, "pin", "", "Admin PIN (prompted for if omitted)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newVerifyPINCmd() *cobra.Command {
	var (
		adminID int64
		pin     string
	)

	cmd := &cobra.Command{
		Use:   "verify-pin",
		Short: "Run only the PIN step for an admin id",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.VerifyPINResponse
			if err := client.Post(cmd.Context(), "/api/admin/verify-pin", verifyPINBody{
				AdminID: adminID,
				PIN:     pin,
			}, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&adminID, "admin-id", 0, "Admin id returned by login (required)")
	cmd.Flags().StringVar(&pin, "pin", "", "Admin PIN (required)")
	_ = cmd.MarkFlagRequired("admin-id")
	_ = cmd.MarkFlagRequired("pin")

	return cmd
}

func readLine(cmd *cobra.Command) (string, error) {
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read PIN: %w", err)
		}
		return "", errNoPIN
	}
	return line, nil
}
