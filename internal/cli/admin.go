package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/leelawheel/internal/services/auth"
)

// TokenHashResult is printed by admin hash-token
type TokenHashResult struct {
	Token string `json:"token"`
	Hash  string `json:"hash"`
}

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin token management",
	}

	cmd.AddCommand(newAdminHashTokenCmd())

	return cmd
}

func newAdminHashTokenCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "hash-token [token]",
		Short: "Hash an admin token for ADMIN_TOKEN_HASH",
		Long: `Print the bcrypt hash to set as ADMIN_TOKEN_HASH on the server. A random
token is generated when none is given. With --save the token is also written
to the token file so later config commands pick it up.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string
			if len(args) == 1 {
				token = args[0]
			} else {
				generated, err := auth.GenerateToken()
				if err != nil {
					return err
				}
				token = generated
			}

			hash, err := auth.HashToken(token)
			if err != nil {
				return fmt.Errorf("hash token: %w", err)
			}

			if save {
				if err := cfg.SaveToken(token); err != nil {
					return fmt.Errorf("failed to save token: %w", err)
				}
			}

			out := NewOutput(cfg.Output)
			out.Print(TokenHashResult{Token: token, Hash: hash})
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the token to the token file")

	return cmd
}
