package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexZhen345/LifeOS/internal/engine"
	"github.com/AlexZhen345/LifeOS/internal/storage"
	"github.com/AlexZhen345/LifeOS/internal/ui"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage the day schedule",
	}
	cmd.AddCommand(
		newPlanAddCmd(),
		newPlanListCmd(),
		newPlanToggleCmd(),
		newPlanRemoveCmd(),
		newPlanClearCmd(),
	)
	return cmd
}

func planDate(flag string) string {
	if flag != "" {
		return flag
	}
	return engine.Today()
}

func newPlanAddCmd() *cobra.Command {
	var date, at, desc, typ, link string
	var duration int
	var rewards storage.Rewards

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a schedule entry",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
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
			item, err := svc.AddScheduleItem(ctx, accountID, planDate(date), engine.ScheduleItemInput{
				Time:         at,
				Title:        args[0],
				Description:  desc,
				Duration:     duration,
				Type:         storage.ScheduleItemType(typ),
				Rewards:      rewards,
				LinkedTaskID: link,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Planned %s %s at %s\n",
				ui.Good.Render(ui.IconDone), ui.ScheduleIcon(item.Type), ui.Key.Render(item.Title), item.Time)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("id: "+item.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&at, "at", "", "Start time (HH:MM)")
	cmd.Flags().StringVarP(&desc, "desc", "m", "", "Description")
	cmd.Flags().StringVar(&typ, "type", "task", "Entry type (task|meal|break|routine)")
	cmd.Flags().StringVar(&link, "task", "", "Existing task id to link")
	cmd.Flags().IntVar(&duration, "duration", 0, "Minutes")
	addRewardFlags(cmd, &rewards)
	return cmd
}

func newPlanListCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the day schedule",
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
			day := planDate(date)
			items, err := svc.ScheduleRepo().LoadDay(ctx, accountID, day)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconPlan, "Plan for "+day))
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(empty)"))
				return nil
			}
			for _, it := range items {
				mark := "[ ]"
				if it.Completed {
					mark = ui.Good.Render("[x]")
				}
				linked := ""
				if it.LinkedTaskID != "" {
					linked = ui.Muted.Render(" task:" + it.LinkedTaskID)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s%s %s\n",
					mark, it.Time, ui.ScheduleIcon(it.Type), ui.Key.Render(it.Title), linked, ui.Muted.Render(it.ID))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	return cmd
}

func newPlanToggleCmd() *cobra.Command {
	var date, photo string
	var skipPhoto bool

	cmd := &cobra.Command{
		Use:   "toggle <item-id>",
		Short: "Toggle a schedule entry",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("item id is required")
			}
			return nil
		},
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
			day := planDate(date)

			if photo != "" || skipPhoto {
				res, err := svc.CheckInScheduleItem(ctx, accountID, day, args[0], engine.CompleteInput{PhotoData: photo})
				if err != nil {
					return err
				}
				printCompleteResult(cmd, res.Completed)
				return nil
			}

			res, err := svc.ToggleScheduleItem(ctx, accountID, day, args[0])
			if err != nil {
				return err
			}
			if res.RequiresCheckIn {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s is backed by an open task; check in with --photo <data> or --skip-photo.\n",
					ui.Warn.Render(ui.IconWarn), ui.Key.Render(res.Item.Title))
				return nil
			}
			state := "reopened"
			if res.Item.Completed {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now %s.\n", ui.Good.Render(ui.IconDone), ui.Key.Render(res.Item.Title), state)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&photo, "photo", "", "Check-in photo for the linked task")
	cmd.Flags().BoolVar(&skipPhoto, "skip-photo", false, "Check in the linked task without a photo")
	return cmd
}

func newPlanRemoveCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove a schedule entry",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("item id is required")
			}
			return nil
		},
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
			ok, err := svc.RemoveScheduleItem(ctx, accountID, planDate(date), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no schedule entry with id %s", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed.\n", ui.Warn.Render(ui.IconWarn))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	return cmd
}

func newPlanClearCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the day schedule",
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
			day := planDate(date)
			if err := svc.ScheduleRepo().ClearDay(ctx, accountID, day); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Cleared the plan for %s.\n", ui.Warn.Render(ui.IconWarn), day)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	return cmd
}
