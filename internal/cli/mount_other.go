//go:build !linux && !freebsd

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func (a *app) newMountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mount",
		Short: "Serve a read-only FUSE view of a folder listing (linux and freebsd only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("mount is not supported on %s", runtime.GOOS)
		},
	}
}
