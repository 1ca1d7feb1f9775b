package cli

import (
	"github.com/spf13/cobra"

	"github.com/bnema/ocicomp/internal/app"
)

// newServeCmd creates the serve command.
func newServeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the component HTTP API",
		Long: `Start the HTTP API that publishes, fetches, updates and deletes
components in the configured registry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts.configPath, Version)
		},
	}
}
