package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

// NewRootCmd builds the storefront command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront client: support chat, admin stats, checkout and profile",
		Long: `storefront talks to the storefront REST backend.

Guests can chat with support and check out a cart once logged in. Admins can
watch the dashboard counters. "storefront serve" runs an in-memory backend
for local use.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (overrides STOREFRONT_CONFIG)")

	root.AddCommand(serveCmd(opts))
	root.AddCommand(loginCmd(opts))
	root.AddCommand(logoutCmd(opts))
	root.AddCommand(whoamiCmd(opts))
	root.AddCommand(chatCmd(opts))
	root.AddCommand(statsCmd(opts))
	root.AddCommand(checkoutCmd(opts))
	root.AddCommand(profileCmd(opts))

	return root
}

// Execute runs the root command
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
