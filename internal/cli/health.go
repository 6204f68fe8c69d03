package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/qrclock-gateway/internal/api/response"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the gateway can reach its credential store",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.ProbeResponse

			if err := client.Get(cmd.Context(), "/api/test", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
