package cli

import (
	"github.com/spf13/cobra"
)

type healthResponse struct {
	Status string `json:"status"`
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result healthResponse
			if err := client.Get("/api/v1/health", &result); err != nil {
				out.PrintError(err)
				return err
			}

			if cfg.Output == "json" {
				out.Print(result)
			} else {
				out.PrintMessage("Server is " + result.Status)
			}
			return nil
		},
	}
}
