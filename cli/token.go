package cli

import (
	"fmt"
	"time"

	"homechef-api/config"
	"homechef-api/middleware"

	"github.com/spf13/cobra"
)

var (
	tokenEmail string
	tokenName  string
	tokenTTL   time.Duration
)

// tokenCmd mints a bearer token signed with JWT_SECRET for local testing
func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token",
		Long: `Mint a bearer token the API accepts, signed with JWT_SECRET.

Examples:
  homechef token --email cook@example.com --name "Home Cook"
  homechef token --email admin@example.com --ttl 1h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			token, err := middleware.GenerateToken(cfg.Auth.Secret, cfg.Auth.Issuer, tokenEmail, tokenName, tokenTTL)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&tokenEmail, "email", "", "email claim (required)")
	cmd.Flags().StringVar(&tokenName, "name", "", "display name claim")
	cmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
