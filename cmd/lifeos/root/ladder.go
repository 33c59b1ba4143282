package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexZhen345/LifeOS/internal/leaderboard"
	"github.com/AlexZhen345/LifeOS/internal/ui"
)

func newLadderCmd() *cobra.Command {
	var metricName string
	var top int

	cmd := &cobra.Command{
		Use:   "ladder",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			metric, err := leaderboard.ParseMetric(metricName)
			if err != nil {
				return err
			}
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			agg := leaderboard.New(cfg.Leaderboard.PopulationSize, cfg.Leaderboard.EffectiveSeed())

			// Locals: every opted-in account on this machine.
			accounts, err := svc.AccountStore().List(ctx)
			if err != nil {
				return err
			}
			var locals []leaderboard.Entry
			for _, a := range accounts {
				data, err := svc.UserDataRepo().Load(ctx, a.ID)
				if err != nil {
					return err
				}
				if e, ok := leaderboard.LocalEntry(a.ID, data); ok {
					locals = append(locals, e)
				}
			}

			rows := agg.Ranked(locals, metric)
			if top <= 0 || top > len(rows) {
				top = len(rows)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading("🏅", fmt.Sprintf("Ladder — %s", metric)))
			for i, e := range rows[:top] {
				name := e.Nickname
				if e.IsLocal {
					name = ui.Good.Render(name + " (you)")
				}
				fmt.Fprintf(out, "%2d. %-24s L%-3d %s %d\n", i+1, name, e.Level, ui.Key.Render("score:"), e.Score(metric))
			}

			current, err := svc.AccountStore().CurrentID(ctx)
			if err != nil {
				return err
			}
			if current != "" {
				data, err := svc.UserDataRepo().Load(ctx, current)
				if err != nil {
					return err
				}
				if e, ok := leaderboard.LocalEntry(current, data); ok {
					fmt.Fprintf(out, "\n%s #%d among %d contenders\n",
						ui.Key.Render("Your rank:"), agg.RankOf(e, metric), len(agg.Population())+1)
				} else {
					fmt.Fprintln(out, ui.Muted.Render("\nJoin the ladder with `lifeos profile set --join-ladder --nickname <name>`."))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&metricName, "metric", "total", "Ranking metric (total|int|vit|cha|gold|wil|streak)")
	cmd.Flags().IntVar(&top, "top", 10, "How many rows to show")
	return cmd
}
