package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexZhen345/LifeOS/internal/engine"
	"github.com/AlexZhen345/LifeOS/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "Show achievement progress",
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
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Achievements"))
			for _, a := range engine.Catalog {
				if data.HasAchievement(a.ID) {
					fmt.Fprintf(out, "%s %s — %s\n", a.Icon, ui.Good.Render(a.Name), ui.Muted.Render(a.Description))
				} else {
					fmt.Fprintf(out, "🔒 %s — %s\n", ui.Dim.Render(a.Name), ui.Muted.Render(a.Description))
				}
			}
			return nil
		},
	}
}
