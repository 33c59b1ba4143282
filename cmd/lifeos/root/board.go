package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/AlexZhen345/LifeOS/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI day board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			accountID, err := currentAccount(ctx, svc)
			if err != nil {
				return err
			}
			return tui.RunBoard(ctx, svc, accountID, cmd.OutOrStdout())
		},
	}
	return cmd
}
