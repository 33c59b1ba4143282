package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexZhen345/LifeOS/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the character sheet",
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
			a := data.Attributes
			st := data.Stats

			fmt.Fprintln(out, ui.Heading("⚔️", data.Profile.Name))
			fmt.Fprintln(out, ui.LabelValue("Level", a.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", ui.XPBar(a.XP, a.XPForNextLevel)))
			fmt.Fprintln(out, ui.AttrLine(a.Rewards))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Record"))
			fmt.Fprintf(out, "- %s %d created, %d completed (%.0f%%)\n",
				ui.Key.Render("Tasks:"), st.TotalTasksCreated, st.TotalTasksCompleted, st.AverageCompletionRate*100)
			fmt.Fprintf(out, "- %s %s %d days\n", ui.Key.Render("Streak:"), ui.IconStreak, st.StreakDays)
			if st.AverageDelayDays > 0 {
				fmt.Fprintf(out, "- %s %.1f days\n", ui.Key.Render("Average delay:"), st.AverageDelayDays)
			}
			if st.LastActiveDate != "" {
				fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Last active:"), st.LastActiveDate)
			}
			fmt.Fprintf(out, "- %s %d unlocked\n", ui.Key.Render("Achievements:"), len(data.Achievements))
			return nil
		},
	}
	return cmd
}
