package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AlexZhen345/LifeOS/internal/engine"
	"github.com/AlexZhen345/LifeOS/internal/ui"
)

func newAICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Work with an external planning assistant",
	}
	cmd.AddCommand(
		newAIContextCmd(),
		newAIImportCmd(),
	)
	return cmd
}

func newAIContextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "context",
		Short: "Print the planning context digest",
		Long:  "Prints an English digest of your profile, skills, and record. Paste it into your assistant of choice and ask for a day plan.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			accountID, err := currentAccount(ctx, svc)
			if err != nil {
				return err
			}
			digest, err := svc.BuildContext(ctx, accountID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), digest)
			if cfg.AI.Model != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("\n(configured assistant: "+cfg.AI.Model+")"))
			}
			return nil
		},
	}
}

func newAIImportCmd() *cobra.Command {
	var date, file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a plan produced by the assistant",
		Long:  "Reads a JSON plan ({\"tasks\": [...], \"schedule\": [...]}) from --file or stdin and folds it into your tasks and day schedule.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			var err error
			if file != "" {
				raw, err = os.ReadFile(file)
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}
			if len(raw) == 0 {
				return errors.New("empty plan; pass --file or pipe JSON on stdin")
			}
			payload, err := engine.ParsePlanPayload(raw)
			if err != nil {
				return err
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
			report, err := svc.ImportPlan(ctx, accountID, date, payload)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d tasks and %d schedule entries for %s.\n",
				ui.Good.Render(ui.IconRobot), len(report.Tasks), len(report.Schedule), report.Date)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Target day (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Plan file (default stdin)")
	return cmd
}
