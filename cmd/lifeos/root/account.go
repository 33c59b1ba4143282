package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexZhen345/LifeOS/internal/ui"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage local accounts",
	}
	cmd.AddCommand(
		newAccountCreateCmd(),
		newAccountListCmd(),
		newAccountSwitchCmd(),
		newAccountDeleteCmd(),
	)
	return cmd
}

func newAccountCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create an account and switch to it",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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

			info, err := svc.AccountStore().Create(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Created account %s (%s) and switched to it.\n",
				ui.Good.Render(ui.IconDone), ui.Key.Render(info.Name), ui.Muted.Render(info.ID))
			return nil
		},
	}
}

func newAccountListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			accounts, err := svc.AccountStore().List(ctx)
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No accounts yet. Create one with `lifeos account create <name>`."))
				return nil
			}
			current, err := svc.AccountStore().CurrentID(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading("👥", "Accounts"))
			for _, a := range accounts {
				marker := "  "
				if a.ID == current {
					marker = ui.Good.Render("* ")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s %s\n", marker, ui.Key.Render(a.Name), ui.Muted.Render(a.ID))
			}
			return nil
		},
	}
}

func newAccountSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <id>",
		Short: "Switch the active account",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("account id is required")
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

			ok, err := svc.AccountStore().Switch(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no account with id %s", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Switched to %s.\n", ui.Good.Render(ui.IconDone), args[0])
			return nil
		},
	}
}

func newAccountDeleteCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account and its data",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("account id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return errors.New("deleting an account erases its history; re-run with --force")
			}
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			ok, err := svc.AccountStore().Delete(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no account with id %s", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted account %s.\n", ui.Warn.Render(ui.IconWarn), args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation")
	return cmd
}
