package cli

import (
	"folderlist/internal/view"

	"github.com/spf13/cobra"
)

func (a *app) newListCmd() *cobra.Command {
	var (
		lf      listerFlags
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "list [root]",
		Short: "List the subfolders of root with creation and modification times",
		Long: `List the immediate subfolders of root. Files are not shown.

Without a root, the last successfully listed root is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.newLister(cmd, &lf)
			if err != nil {
				return err
			}
			b, err := a.newBrowser(optionalArg(args, 0), l, a.newLauncher())
			if err != nil {
				return err
			}

			entries, err := b.Refresh()
			if err != nil {
				return err
			}

			if jsonOut {
				return view.WriteJSON(cmd.OutOrStdout(), b.Root(), entries)
			}
			if len(entries) == 0 {
				cmd.PrintErrf("No subfolders in %s\n", b.Root())
				return nil
			}
			return view.WriteTable(cmd.OutOrStdout(), entries)
		},
	}

	a.addListerFlags(cmd, &lf)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
