package cli

import (
	"fmt"
	"strings"

	"folderlist/internal/launcher"
	"folderlist/internal/metrics"

	"github.com/spf13/cobra"
)

// printLauncher reports the editor command instead of running it.
type printLauncher struct {
	cmd    *cobra.Command
	editor *launcher.Launcher
}

func (p printLauncher) ResolveAndLaunch(rootPath, folderName string) error {
	_, err := fmt.Fprintln(p.cmd.OutOrStdout(), strings.Join(p.editor.Command(rootPath, folderName), " "))
	return err
}

func (a *app) newOpenCmd() *cobra.Command {
	var (
		lf     listerFlags
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "open [root] <folder>",
		Short: "Open a subfolder of root in the editor",
		Long: `Open the subfolder called folder in the configured editor. The editor is
started in the background; folderlist does not wait for it.

The folder must appear in a fresh listing of root. With a single argument,
the last listed root is used.`,
		Example: `  folderlist open ~/src project
  folderlist open project
  folderlist --editor "code --new-window" open ~/src project`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, name := "", args[0]
			if len(args) == 2 {
				root, name = args[0], args[1]
			}

			l, err := a.newLister(cmd, &lf)
			if err != nil {
				return err
			}

			editor := a.newLauncher()
			launch := metrics.InstrumentLauncher(editor)
			if dryRun {
				launch = printLauncher{cmd: cmd, editor: editor}
			}

			b, err := a.newBrowser(root, l, launch)
			if err != nil {
				return err
			}
			if _, err := b.Refresh(); err != nil {
				return err
			}
			return b.Activate(name)
		},
	}

	a.addListerFlags(cmd, &lf)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the editor command instead of running it")
	return cmd
}
