package cli

import (
	"github.com/spf13/cobra"
)

func newDestroyCmd(opts *rootOptions) *cobra.Command {
	var pretend bool

	cmd := &cobra.Command{
		Use:     "destroy <name>",
		Aliases: []string{"d"},
		Short:   "Remove controller and view stubs",
		Long: `Remove the controller and view stubs a "generate" with the same name would write.
Namespace modules are kept, since other actions may share them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := opts.newGenerator(cmd, pretend)
			if err != nil {
				return err
			}
			_, err = g.Destroy(cmd.Context(), args[0])
			return err
		},
	}

	cmd.Flags().BoolVarP(&pretend, "pretend", "p", false, "Run but do not make any changes")
	return cmd
}
