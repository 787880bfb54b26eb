package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"goa.design/clue/log"

	"github.com/darwinjs/darwin/internal/branding"
	"github.com/darwinjs/darwin/internal/config"
	"github.com/darwinjs/darwin/internal/generator"
	"github.com/darwinjs/darwin/internal/inflect"
	"github.com/darwinjs/darwin/internal/scaffold"
	"github.com/darwinjs/darwin/internal/writer"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	root    string
	verbose bool
	quiet   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` generates Darwin.js controller and view stubs, and the namespace
modules that enclose them, under the project's JavaScript asset tree.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(opts.logContext(cmd))
		},
	}

	cmd.PersistentFlags().StringVar(&opts.root, "root", "", "Project root (default: $"+branding.EnvVar("root")+" or the current directory)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug details and show diffs of overwritten files")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress status output")

	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newDestroyCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

func (o *rootOptions) logContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logOpts := []log.LogOption{log.WithFormat(log.FormatTerminal), log.WithOutput(cmd.ErrOrStderr())}
	if o.verbose {
		logOpts = append(logOpts, log.WithDebug())
	}
	return log.Context(ctx, logOpts...)
}

func (o *rootOptions) projectRoot() string {
	if o.root != "" {
		return o.root
	}
	if env := os.Getenv(branding.EnvVar("root")); env != "" {
		return env
	}
	return "."
}

func (o *rootOptions) output(cmd *cobra.Command) io.Writer {
	if o.quiet {
		return io.Discard
	}
	return cmd.OutOrStdout()
}

// newGenerator loads the project config and wires the planner and writer.
func (o *rootOptions) newGenerator(cmd *cobra.Command, pretend bool) (*generator.Generator, *config.Config, error) {
	cfg, err := config.Load(o.projectRoot())
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.CheckVersion(buildVersion); err != nil {
		return nil, nil, err
	}

	planner, err := scaffold.NewPlanner(cfg.Layout(), inflect.New(cfg.Plurals))
	if err != nil {
		return nil, nil, err
	}
	w := writer.New(afero.NewOsFs(),
		writer.WithOutput(o.output(cmd)),
		writer.WithRoot(cfg.Root),
		writer.WithPretend(pretend),
		writer.WithDiff(o.verbose),
	)
	return generator.New(planner, w), cfg, nil
}
