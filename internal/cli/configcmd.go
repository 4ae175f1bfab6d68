package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/leelawheel/internal/api/request"
	"github.com/mcoot/leelawheel/internal/api/response"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Admin config commands (requires the admin token)",
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the current config",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.ConfigResponse

			if err := client.Get(cmd.Context(), "/api/v1/config", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var (
		cooldown  int
		dailyLock bool
		testing   bool
		devBypass bool
		apiKey    string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change config fields; unset flags keep their value",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req request.UpdateConfigRequest
			flags := cmd.Flags()
			if flags.Changed("cooldown") {
				req.CooldownMinutes = &cooldown
			}
			if flags.Changed("daily-lock") {
				req.DailyLock = &dailyLock
			}
			if flags.Changed("testing") {
				req.TestingMode = &testing
			}
			if flags.Changed("dev-bypass") {
				req.DevBypass = &devBypass
			}
			if flags.Changed("api-key") {
				req.APIKey = &apiKey
			}
			if req == (request.UpdateConfigRequest{}) {
				return fmt.Errorf("nothing to change")
			}

			var result response.ConfigResponse
			if err := client.Put(cmd.Context(), "/api/v1/config", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&cooldown, "cooldown", 0, "Cooldown in minutes when the daily lock is off")
	cmd.Flags().BoolVar(&dailyLock, "daily-lock", true, "Lock players until the next local midnight")
	cmd.Flags().BoolVar(&testing, "testing", false, "Disable all locking")
	cmd.Flags().BoolVar(&devBypass, "dev-bypass", false, "Random draws with no lock or history")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Upstream API key")

	return cmd
}
