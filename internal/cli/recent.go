package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newRecentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "Show recently listed roots, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := a.session()
			if manager == nil {
				return errors.New("session file is not available")
			}
			session, err := manager.Load()
			if err != nil {
				return err
			}

			if len(session.Recent) == 0 {
				cmd.PrintErrln("No roots listed yet")
				return nil
			}
			for _, root := range session.Recent {
				marker := " "
				if root == session.LastRoot {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, root)
			}
			return nil
		},
	}
}
