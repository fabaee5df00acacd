package cli

import (
	"fmt"
	"time"

	"folderlist/internal/browser"
	"folderlist/internal/lister"
	"folderlist/internal/view"

	"github.com/spf13/cobra"
)

func (a *app) newWatchCmd() *cobra.Command {
	var (
		lf          listerFlags
		every       string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Re-list root on a schedule and print the table when it changes",
		Long: `Re-list root on a schedule and print the table whenever the listing
changes. The schedule is a cron spec or a descriptor such as "@every 10s".

Runs until interrupted.`,
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

			out := cmd.OutOrStdout()
			onChange := func(entries []lister.FolderEntry) {
				fmt.Fprintf(out, "%s  %s\n", time.Now().Format(lister.TimestampLayout), b.Root())
				if err := view.WriteTable(out, entries); err != nil {
					logger.Error("Failed to write table: %v", err)
				}
				fmt.Fprintln(out)
			}
			onError := func(err error) {
				cmd.PrintErrf("Error: %v\n", err)
			}

			w, err := browser.NewWatcher(b, every, onChange, onError)
			if err != nil {
				return err
			}

			stopMetrics := serveMetrics(metricsAddr)
			defer stopMetrics()

			w.Start()
			<-cmd.Context().Done()
			w.Stop()
			return nil
		},
	}

	a.addListerFlags(cmd, &lf)
	cmd.Flags().StringVar(&every, "every", a.cfg.WatchSchedule, "Refresh schedule (cron spec or @every duration)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", a.cfg.MetricsAddr, "Serve Prometheus metrics on this address, e.g. :9091")
	return cmd
}
