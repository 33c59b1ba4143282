package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexZhen345/LifeOS/internal/ui"
)

func newCheckinsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "checkins",
		Short: "Show recent check-ins",
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
			data, err := svc.UserDataRepo().Load(ctx, accountID)
			if err != nil {
				return err
			}
			if data == nil {
				return errors.New("account has no data document")
			}

			out := cmd.OutOrStdout()
			records := data.CheckInRecords
			if len(records) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no check-ins yet)"))
				return nil
			}
			if limit > 0 && len(records) > limit {
				records = records[len(records)-limit:]
			}

			fmt.Fprintln(out, ui.Heading(ui.IconDone, "Check-ins"))
			for i := len(records) - 1; i >= 0; i-- {
				r := records[i]
				photo := ""
				if r.PhotoData != "" {
					photo = " 📷"
				}
				fmt.Fprintf(out, "%s  %s  %s%s\n",
					ui.Muted.Render(r.Timestamp.Format("Jan 2 15:04")),
					ui.Key.Render(r.TaskTitle), ui.RewardsShort(r.Rewards), photo)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "How many check-ins to show")
	return cmd
}
