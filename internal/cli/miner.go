package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type minerResponse struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	DeviceModel string `json:"device_model,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

type loginResponse struct {
	OK bool `json:"ok"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type minerRow struct {
	Username      string  `json:"username"`
	Email         string  `json:"email"`
	DeviceModel   string  `json:"device_model,omitempty"`
	Hashrate      float64 `json:"hashrate"`
	Threads       int     `json:"threads"`
	AcceptedDaily int     `json:"accepted_daily"`
	TrxDaily      float64 `json:"trx_daily"`
	Online        bool    `json:"online"`
	ElapsedLabel  string  `json:"elapsed_label"`
	LastSeenEpoch *int64  `json:"last_seen_epoch"`
}

func newRegisterCmd() *cobra.Command {
	var password, email, deviceModel string

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Register a new miner account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]string{
				"username":     args[0],
				"password":     password,
				"email":        email,
				"device_model": deviceModel,
			}

			var miner minerResponse
			if err := client.Post("/api/v1/miners/register", body, &miner); err != nil {
				out.PrintError(err)
				return err
			}

			if cfg.Output == "json" {
				out.Print(miner)
			} else {
				out.PrintMessage(fmt.Sprintf("Registered miner %s (%s)", miner.Username, miner.Email))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (required)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email (required)")
	cmd.Flags().StringVarP(&deviceModel, "device", "d", "", "Device model")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLoginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Check miner credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]string{
				"username": args[0],
				"password": password,
			}

			var result loginResponse
			if err := client.Post("/api/v1/miners/login", body, &result); err != nil {
				out.PrintError(err)
				return err
			}

			if cfg.Output == "json" {
				out.Print(result)
			} else if result.OK {
				out.PrintMessage("Login OK")
			} else {
				out.PrintMessage("Login failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Miner telemetry operations",
	}

	cmd.AddCommand(newStatsPushCmd())
	return cmd
}

func newStatsPushCmd() *cobra.Command {
	var (
		hashrate      float64
		threads       int
		acceptedDaily int
		trxDaily      float64
	)

	cmd := &cobra.Command{
		Use:   "push <username>",
		Short: "Push a telemetry update",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			// Only send the fields the operator actually set; the server
			// leaves unsent fields untouched
			body := map[string]any{"username": args[0]}
			if cmd.Flags().Changed("hashrate") {
				body["hashrate"] = hashrate
			}
			if cmd.Flags().Changed("threads") {
				body["threads"] = threads
			}
			if cmd.Flags().Changed("accepted") {
				body["accepted_daily"] = acceptedDaily
			}
			if cmd.Flags().Changed("trx") {
				body["trx_daily"] = trxDaily
			}

			var result statusResponse
			if err := client.Post("/api/v1/miners/stats", body, &result); err != nil {
				out.PrintError(err)
				return err
			}

			if cfg.Output == "json" {
				out.Print(result)
			} else {
				out.PrintMessage("Stats recorded")
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&hashrate, "hashrate", 0, "Current hashrate (H/s)")
	cmd.Flags().IntVar(&threads, "threads", 0, "Active mining threads")
	cmd.Flags().IntVar(&acceptedDaily, "accepted", 0, "Accepted shares in the last 24h")
	cmd.Flags().Float64Var(&trxDaily, "trx", 0, "TRX earned in the last 24h")

	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all registered miners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var rows []minerRow
			if err := client.Get("/api/v1/miners", &rows); err != nil {
				out.PrintError(err)
				return err
			}

			if cfg.Output == "json" {
				out.Print(rows)
				return nil
			}

			var b strings.Builder
			fmt.Fprintf(&b, "%-20s %-12s %10s %8s %10s %10s %-8s %s\n",
				"USERNAME", "DEVICE", "HASHRATE", "THREADS", "ACCEPTED", "TRX", "STATUS", "LAST SEEN")
			for _, row := range rows {
				status := "offline"
				if row.Online {
					status = "online"
				}
				fmt.Fprintf(&b, "%-20s %-12s %10.2f %8d %10d %10.4f %-8s %s\n",
					row.Username, row.DeviceModel, row.Hashrate, row.Threads,
					row.AcceptedDaily, row.TrxDaily, status, row.ElapsedLabel)
			}
			out.PrintMessage(strings.TrimRight(b.String(), "\n"))
			return nil
		},
	}
}
