package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/leelawheel/internal/api/request"
	"github.com/mcoot/leelawheel/internal/api/response"
	"github.com/mcoot/leelawheel/internal/model"
)

func newDrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "draw <first-name> <last-name>",
		Short: "Spin the wheel for a player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.DrawRequest{FirstName: args[0], LastName: args[1]}
			var result response.DrawResponse

			if err := client.Post(cmd.Context(), "/api/v1/draws", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "status <first-name> <last-name>",
		Short: "Show a player's lock and last card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.StatusResponse

			if err := client.Get(cmd.Context(), "/api/v1/players/status?"+playerQuery(args[0], args[1]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)

			if watch && result.Lock.State != string(model.LockOpen) {
				return streamCountdown(cmd.Context(), args[0], args[1])
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Follow the countdown until the player can spin again")

	return cmd
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <first-name> <last-name>",
		Short: "List the quotes a player has seen recently",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.HistoryResponse

			if err := client.Get(cmd.Context(), "/api/v1/players/history?"+playerQuery(args[0], args[1]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func playerQuery(first, last string) string {
	q := url.Values{}
	q.Set("first_name", first)
	q.Set("last_name", last)
	return q.Encode()
}
