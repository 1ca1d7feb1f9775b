package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bnema/ocicomp/internal/adapters/dto"
	"github.com/bnema/ocicomp/internal/boundaries/in"
	"github.com/bnema/ocicomp/internal/domain"
)

type publishOptions struct {
	metadataPath string
	binaryPath   string
	jsonOutput   bool
}

type fetchOptions struct {
	outputPath string
	jsonOutput bool
}

// withService opens the component service and runs fn with it.
func withService(cmd *cobra.Command, opts *globalOptions, fn func(ctx context.Context, svc in.ComponentService) error) error {
	svc, ctx, closeFn, err := openService(cmd, opts)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, svc)
}

func newPushCmd(opts *globalOptions) *cobra.Command {
	var popts publishOptions

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Publish a component",
		Long: `Publish a binary and its metadata document. The repository and tag are
taken from the metadata "name" and "tag" (or "version") fields.`,
		Example: "  ocicomp push --metadata component.json --binary plugin.wasm",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc in.ComponentService) error {
				return runPush(ctx, svc, popts, cmd.OutOrStdout())
			})
		},
	}

	cmd.Flags().StringVarP(&popts.metadataPath, "metadata", "m", "", "Metadata document (JSON or YAML)")
	cmd.Flags().StringVarP(&popts.binaryPath, "binary", "b", "", "Component binary")
	cmd.Flags().BoolVar(&popts.jsonOutput, "json", false, "Print the result as JSON")
	_ = cmd.MarkFlagRequired("metadata")
	_ = cmd.MarkFlagRequired("binary")

	return cmd
}

func newUpdateCmd(opts *globalOptions) *cobra.Command {
	var popts publishOptions

	cmd := &cobra.Command{
		Use:   "update <repository> <reference>",
		Short: "Replace the metadata and optionally the binary of a component",
		Long: `Republish an existing component. Without --binary the current binary
layer is kept and only the metadata is replaced.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc in.ComponentService) error {
				return runUpdate(ctx, svc, args[0], args[1], popts, cmd.OutOrStdout())
			})
		},
	}

	cmd.Flags().StringVarP(&popts.metadataPath, "metadata", "m", "", "Metadata document (JSON or YAML)")
	cmd.Flags().StringVarP(&popts.binaryPath, "binary", "b", "", "Replacement binary")
	cmd.Flags().BoolVar(&popts.jsonOutput, "json", false, "Print the result as JSON")
	_ = cmd.MarkFlagRequired("metadata")

	return cmd
}

func newFetchCmd(opts *globalOptions) *cobra.Command {
	var fopts fetchOptions

	cmd := &cobra.Command{
		Use:   "fetch <repository> <reference>",
		Short: "Fetch a component",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc in.ComponentService) error {
				return runFetch(ctx, svc, args[0], args[1], fopts, cmd.OutOrStdout())
			})
		},
	}

	cmd.Flags().StringVarP(&fopts.outputPath, "output", "o", "", "Write the binary to this file")
	cmd.Flags().BoolVar(&fopts.jsonOutput, "json", false, "Print the component as JSON (binary base64 encoded)")

	return cmd
}

func newDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <repository> <reference>",
		Aliases: []string{"rm"},
		Short:   "Delete a component manifest",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc in.ComponentService) error {
				return runDelete(ctx, svc, args[0], args[1], cmd.OutOrStdout())
			})
		},
	}
}

func newPingCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the registry is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc in.ComponentService) error {
				return runPing(ctx, svc, cmd.OutOrStdout())
			})
		},
	}
}

func runPush(ctx context.Context, svc in.ComponentService, opts publishOptions, out io.Writer) error {
	component, err := readComponent(opts, true)
	if err != nil {
		return err
	}

	result, err := svc.Push(ctx, component)
	if err != nil {
		return fmt.Errorf("push failed: %w", err)
	}

	if opts.jsonOutput {
		return writeJSON(out, dto.NewPublishResponse(result))
	}
	return renderPublishResult(out, "pushed", result)
}

func runUpdate(ctx context.Context, svc in.ComponentService, repository, reference string, opts publishOptions, out io.Writer) error {
	component, err := readComponent(opts, false)
	if err != nil {
		return err
	}
	component.Name = repository
	component.Reference = reference

	result, err := svc.Update(ctx, component)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	if opts.jsonOutput {
		return writeJSON(out, dto.NewPublishResponse(result))
	}
	return renderPublishResult(out, "updated", result)
}

func runFetch(ctx context.Context, svc in.ComponentService, repository, reference string, opts fetchOptions, out io.Writer) error {
	fetched, err := svc.Fetch(ctx, repository, reference)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	if opts.outputPath != "" && fetched.Binary != nil {
		if err := afero.WriteFile(cliFs, opts.outputPath, fetched.Binary, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.outputPath, err)
		}
	}

	if opts.jsonOutput {
		return writeJSON(out, dto.NewComponentResponse(fetched))
	}
	return renderFetched(out, fetched, opts.outputPath)
}

func runDelete(ctx context.Context, svc in.ComponentService, repository, reference string, out io.Writer) error {
	if err := svc.Delete(ctx, repository, reference); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return cliWriteLine(out, cliRenderSuccess(fmt.Sprintf("deleted %s:%s", repository, reference)))
}

func runPing(ctx context.Context, svc in.ComponentService, out io.Writer) error {
	if err := svc.Health(ctx); err != nil {
		return fmt.Errorf("registry unreachable: %w", err)
	}
	return cliWriteLine(out, cliRenderSuccess("registry reachable"))
}

// readComponent loads the metadata document and, when given, the binary.
func readComponent(opts publishOptions, binaryRequired bool) (*domain.Component, error) {
	if opts.metadataPath == "" {
		return nil, fmt.Errorf("%w: --metadata is required", domain.ErrMissingInput)
	}
	raw, err := afero.ReadFile(cliFs, opts.metadataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}
	meta, err := domain.ParseComponentMetadata(raw)
	if err != nil {
		return nil, err
	}

	component := &domain.Component{Metadata: meta}

	if opts.binaryPath == "" {
		if binaryRequired {
			return nil, fmt.Errorf("%w: --binary is required", domain.ErrMissingInput)
		}
		return component, nil
	}

	binary, err := afero.ReadFile(cliFs, opts.binaryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read binary: %w", err)
	}
	component.Binary = binary

	return component, nil
}
