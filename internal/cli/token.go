package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/all-dot-files/tictoc/internal/server"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
	tokenSecret  string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for 'tictoc serve'",
	Long: `Mint an HS256 bearer token signed with the server's JWT secret.

Examples:
  tictoc token --subject ci --ttl 720h
  curl -H "Authorization: Bearer $(tictoc token)" localhost:7878/api/v1/timers`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := configManager.Get().Server.JWTSecret
		if tokenSecret != "" {
			secret = tokenSecret
		}
		subject := tokenSubject
		if subject == "" {
			subject = os.Getenv("USER")
		}
		if subject == "" {
			subject = "tictoc"
		}

		token, err := server.IssueToken([]byte(secret), subject, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "token subject (default: $USER)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime (0 for no expiry)")
	tokenCmd.Flags().StringVar(&tokenSecret, "jwt-secret", "", "signing secret (default from config)")
}
