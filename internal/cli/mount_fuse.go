//go:build linux || freebsd

package cli

import (
	"errors"
	"path/filepath"

	"folderlist/internal/fs"

	"github.com/spf13/cobra"
)

func (a *app) newMountCmd() *cobra.Command {
	var (
		lf          listerFlags
		sourcePath  string
		mountPoint  string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "mount",
		Short: "Serve a read-only FUSE view of a folder listing",
		Long: `Mount a read-only filesystem at --mount that shows the subfolders of
--source. Each folder carries its timestamps as attributes and as the
user.folderlist.created and user.folderlist.modified extended attributes.
FOLDERS.txt in the mount root holds the rendered table.

Runs until interrupted, then unmounts. Ownership follows PUID and PGID when set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sourcePath == "" || mountPoint == "" {
				return errors.New("--source and --mount are required")
			}

			l, err := a.newLister(cmd, &lf)
			if err != nil {
				return err
			}

			vfs, err := fs.NewFolderFS(filepath.Clean(sourcePath), l)
			if err != nil {
				return err
			}

			stopMetrics := serveMetrics(metricsAddr)
			defer stopMetrics()
			return vfs.Serve(cmd.Context(), filepath.Clean(mountPoint))
		},
	}

	a.addListerFlags(cmd, &lf)
	cmd.Flags().StringVar(&sourcePath, "source", "", "Directory whose subfolders are shown")
	cmd.Flags().StringVar(&mountPoint, "mount", "", "Mount point for the view")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", a.cfg.MetricsAddr, "Serve Prometheus metrics on this address, e.g. :9091")
	return cmd
}
