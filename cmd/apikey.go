package cmd

import (
	"context"
	"fmt"

	"github.com/vibast-solutions/ms-go-records/app/service"
	"github.com/vibast-solutions/ms-go-records/config"

	"github.com/spf13/cobra"
)

var apiKeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Issue and check API keys",
}

var apiKeyIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a new API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withServices(cmd.Context(), func(ctx context.Context, s *services) error {
			apiKey, err := s.keys.IssueAPIKey(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "api_key: %s\n", apiKey)
			return nil
		})
	},
}

var apiKeyValidateCmd = &cobra.Command{
	Use:   "validate <api_key>",
	Short: "Check whether an API key was issued",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd.Context(), func(ctx context.Context, s *services) error {
			valid, err := s.keys.ValidateAPIKey(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "key_prefix: %s\n", service.KeyPrefix(args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "valid: %t\n", valid)
			return nil
		})
	},
}

func init() {
	apiKeyCmd.AddCommand(apiKeyIssueCmd)
	apiKeyCmd.AddCommand(apiKeyValidateCmd)
	rootCmd.AddCommand(apiKeyCmd)
}

func withServices(ctx context.Context, fn func(context.Context, *services) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err = configureLogging(cfg); err != nil {
		return err
	}

	s, err := newServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(ctx, s)
}
