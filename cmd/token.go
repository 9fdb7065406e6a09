package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steadysun/steadysun-go/api"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Inspect the API token",
}

var tokenCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the configured API token is well formed",
	Long: `Check the configured API token is well formed. No request is made, so a
token that passes may still be rejected by the API.`,
	Args: cobra.NoArgs,
	RunE: runTokenCheck,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenCheckCmd)
}

func runTokenCheck(cmd *cobra.Command, args []string) error {
	if cfg.API.Token == "" {
		return api.ErrTokenMissing
	}
	// config.Load already rejected malformed tokens
	if err := api.ValidateToken(cfg.API.Token); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Token is well formed (%d characters), API at %s\n", len(cfg.API.Token), cfg.API.URL)
	return nil
}
