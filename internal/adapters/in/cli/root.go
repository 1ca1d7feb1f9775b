// Package cli implements the CLI adapter for ocicomp.
// Commands run the component service in-process through the app kernel.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bnema/ocicomp/internal/adapters/in/cli/ui/styles"
	"github.com/bnema/ocicomp/internal/app"
	"github.com/bnema/ocicomp/internal/boundaries/in"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath  string
	registryURL string
	username    string
	password    string
	askPassword bool
	logLevel    string
	noColor     bool
}

// cliFs is the filesystem commands read inputs from and write outputs to.
var cliFs afero.Fs = afero.NewOsFs()

// openService returns the component service for a command together with a
// context carrying the logger and a close func.
var openService = openKernel

// readPassword prompts on stderr and reads without echo.
var readPassword = func() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("--ask-password requires an interactive terminal")
	}
	if err := cliWritef(os.Stderr, "Registry password: "); err != nil {
		return "", err
	}
	b, err := term.ReadPassword(fd)
	_ = cliWriteLine(os.Stderr, "")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}

func openKernel(cmd *cobra.Command, opts *globalOptions) (in.ComponentService, context.Context, func(), error) {
	password := opts.password
	if opts.askPassword {
		p, err := readPassword()
		if err != nil {
			return nil, nil, nil, err
		}
		password = p
	}

	kernel, err := app.NewKernel(opts.configPath,
		app.WithRegistryURL(opts.registryURL),
		app.WithCredentials(opts.username, password),
		app.WithLogLevel(opts.logLevel),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	closeFn := func() { _ = kernel.Close() }
	return kernel.Components(), kernel.Context(cmd.Context()), closeFn, nil
}

// NewRootCmd creates the root command for the ocicomp CLI.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "ocicomp",
		Short: "Publish and retrieve components in an OCI registry",
		Long: `ocicomp stores components, a binary plus a metadata document, as OCI
artifacts in any registry implementing the distribution API.

Run 'ocicomp serve' for the HTTP API, or use push, fetch, update and delete
directly against the configured registry.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			styles.SetPlain(opts.noColor || !isTerminal(cmd.OutOrStdout()))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to config file")
	flags.StringVar(&opts.registryURL, "registry", "", "Registry base URL (overrides registry.url)")
	flags.StringVarP(&opts.username, "username", "u", "", "Registry username")
	flags.StringVarP(&opts.password, "password", "p", "", "Registry password")
	flags.BoolVar(&opts.askPassword, "ask-password", false, "Prompt for the registry password")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (overrides logging.level)")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newPushCmd(opts))
	rootCmd.AddCommand(newFetchCmd(opts))
	rootCmd.AddCommand(newUpdateCmd(opts))
	rootCmd.AddCommand(newDeleteCmd(opts))
	rootCmd.AddCommand(newPingCmd(opts))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command and reports a failure on stderr.
func Execute(ctx context.Context) int {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		_ = cliWriteLine(os.Stderr, cliRenderError(err.Error()))
		return 1
	}
	return 0
}

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(version, commit, date string) {
	if version != "" {
		Version = version
	}
	if commit != "" {
		Commit = commit
	}
	if date != "" {
		BuildDate = date
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if err := cliWriteLine(out, cliRenderTitle("ocicomp "+Version)); err != nil {
				return err
			}
			if err := cliWriteLine(out, cliRenderMeta("Commit:", Commit)); err != nil {
				return err
			}
			return cliWriteLine(out, cliRenderMeta("Build Date:", BuildDate))
		},
	}
}
