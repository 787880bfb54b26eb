package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"goa.design/clue/log"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var (
		pretend bool
		list    bool
	)

	cmd := &cobra.Command{
		Use:     "generate <name>",
		Aliases: []string{"g"},
		Short:   "Generate controller and view stubs",
		Long: `Generate a Darwin.js controller/view pair and any missing namespace modules.

A snake_case name is a single action. Any other name is a resource and
expands into the index, edit, show, new and form actions, with its last
segment pluralized. Namespace modules that already exist are left alone;
controller and view stubs are always rewritten.

Examples:
  darwin generate admin/widget_thing   # one action
  darwin generate admin/Widget         # admin/widgets/{index,edit,show,new,form}
  darwin generate Widget --pretend     # show what would be written`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, cfg, err := opts.newGenerator(cmd, pretend)
			if err != nil {
				return err
			}

			if list {
				plans, err := g.Plan(ctx, args[0])
				if err != nil {
					return err
				}
				for _, plan := range plans {
					rel, err := filepath.Rel(cfg.Root, plan.Path)
					if err != nil {
						rel = plan.Path
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%-10s  %s\n", plan.Role, rel)
				}
				return nil
			}

			res, err := g.Generate(ctx, args[0])
			if err != nil {
				return err
			}
			log.Debug(ctx, log.KV{K: "msg", V: "done"}, log.KV{K: "kind", V: res.Kind.String()},
				log.KV{K: "files", V: len(res.Events)}, log.KV{K: "pretend", V: pretend})
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pretend, "pretend", "p", false, "Run but do not make any changes")
	cmd.Flags().BoolVar(&list, "list", false, "Print the planned files without checking or writing anything")
	return cmd
}
