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

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(),
		newTaskListCmd(),
		newTaskDoneCmd(),
		newTaskUndoCmd(),
		newTaskDeleteCmd(),
	)
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var desc, date, category string
	var duration int
	var rewards storage.Rewards

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
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
			task, err := svc.CreateTask(ctx, accountID, engine.CreateTaskInput{
				Title:       args[0],
				Description: desc,
				Date:        date,
				Duration:    duration,
				Category:    category,
				Rewards:     rewards,
			})
			if err != nil {
				return err
			}
			if task == nil {
				return errors.New("account has no data document")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s for %s (%s)\n",
				ui.Good.Render(ui.IconDone), ui.Key.Render(task.Title), task.ScheduledDate, ui.RewardsShort(task.Rewards))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("id: "+task.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&desc, "desc", "m", "", "Description")
	cmd.Flags().StringVar(&date, "date", "", "Scheduled date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Planned minutes (default your preferred duration)")
	cmd.Flags().StringVar(&category, "category", "", "Category label")
	addRewardFlags(cmd, &rewards)
	return cmd
}

func addRewardFlags(cmd *cobra.Command, r *storage.Rewards) {
	cmd.Flags().IntVar(&r.INT, "int", 0, "Intelligence reward")
	cmd.Flags().IntVar(&r.VIT, "vit", 0, "Vitality reward")
	cmd.Flags().IntVar(&r.CHA, "cha", 0, "Charisma reward")
	cmd.Flags().IntVar(&r.GOLD, "gold", 0, "Gold reward")
	cmd.Flags().IntVar(&r.WIL, "wil", 0, "Willpower reward")
}

func newTaskListCmd() *cobra.Command {
	var date string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open tasks",
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

			var tasks []storage.TaskRecord
			if all {
				tasks, err = svc.UserDataRepo().RecentTaskHistory(ctx, accountID, 50)
			} else {
				tasks, err = svc.ActiveTasks(ctx, accountID, date)
			}
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no tasks)"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTask, "Tasks"))
			for _, t := range tasks {
				if t.Deleted {
					continue
				}
				mark := "[ ]"
				if t.Completed {
					mark = ui.Good.Render("[x]")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s %s\n",
					mark, t.ScheduledDate, ui.Key.Render(t.Title), ui.RewardsShort(t.Rewards), ui.Muted.Render(t.ID))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Only tasks scheduled for this date")
	cmd.Flags().BoolVar(&all, "all", false, "Include completed tasks")
	return cmd
}

func newTaskDoneCmd() *cobra.Command {
	var photo string
	var skipPhoto bool
	var actual int

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task (check in)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if photo == "" && !skipPhoto {
				return errors.New("check in with --photo <data> or pass --skip-photo")
			}
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
			res, err := svc.CompleteTask(ctx, accountID, args[0], engine.CompleteInput{
				PhotoData:      photo,
				ActualDuration: actual,
			})
			if err != nil {
				return err
			}
			printCompleteResult(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&photo, "photo", "", "Check-in photo (path or data URI)")
	cmd.Flags().BoolVar(&skipPhoto, "skip-photo", false, "Check in without a photo")
	cmd.Flags().IntVar(&actual, "actual", 0, "Actual minutes spent")
	return cmd
}

func printCompleteResult(cmd *cobra.Command, res *engine.CompleteResult) {
	out := cmd.OutOrStdout()
	if res.XPGained == 0 {
		fmt.Fprintln(out, ui.Muted.Render("Already completed; nothing changed."))
		return
	}
	fmt.Fprintf(out, "%s Completed %s  %s  +%d XP\n",
		ui.Good.Render(ui.IconDone), ui.Key.Render(res.Task.Title), ui.RewardsShort(res.Rewards), res.XPGained)
	if res.LevelUp.LeveledUp {
		fmt.Fprintf(out, "%s You are now level %d!\n", ui.BadgeLevelUp, res.LevelUp.Level)
	}
	fmt.Fprintf(out, "%s %s streak: %d days\n", ui.IconStreak, ui.Key.Render("Streak:"), res.StreakDays)
	for _, a := range res.Unlocked {
		fmt.Fprintf(out, "%s Achievement unlocked: %s %s\n", ui.Gold.Render(ui.IconTrophy), a.Icon, ui.Key.Render(a.Name))
	}
}

func newTaskUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo <id>",
		Short: "Reverse a completion",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task id is required")
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
			task, err := svc.UncompleteTask(ctx, accountID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Reopened %s; rewards taken back.\n",
				ui.Warn.Render(ui.IconWarn), ui.Key.Render(task.Title))
			return nil
		},
	}
}

func newTaskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task id is required")
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
			if err := svc.DeleteTask(ctx, accountID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted task %s.\n", ui.Warn.Render(ui.IconWarn), args[0])
			return nil
		},
	}
}
