package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AlexZhen345/LifeOS/internal/community"
	"github.com/AlexZhen345/LifeOS/internal/ui"
)

func newPartnerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "partner",
		Short: "Find and talk to accountability partners",
	}
	cmd.AddCommand(
		newPartnerSyncCmd(),
		newPartnerMatchesCmd(),
		newPartnerRequestCmd(),
		newPartnerInboxCmd(),
		newPartnerRespondCmd(),
		newPartnerChatCmd(),
		newPartnerUnreadCmd(),
	)
	return cmd
}

func newPartnerSyncCmd() *cobra.Command {
	var interests, goals, tags []string
	var intro string
	var stop bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Publish your partner profile",
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
			profile, err := communityService(svc).SyncProfile(ctx, accountID, data, community.SyncProfileInput{
				Interests:    interests,
				Goals:        goals,
				Introduction: intro,
				IsLooking:    !stop,
				MatchTags:    tags,
			})
			if err != nil {
				return err
			}
			state := "looking for partners"
			if !profile.IsLooking {
				state = "not looking"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Profile synced: level %d, %s.\n",
				ui.Good.Render(ui.IconDone), profile.Level, state)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&interests, "interests", nil, "Interests (default: your skills)")
	cmd.Flags().StringSliceVar(&goals, "goals", nil, "Goals (default: your learning goals)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Match tags (e.g. morning, study)")
	cmd.Flags().StringVar(&intro, "intro", "", "Introduction line")
	cmd.Flags().BoolVar(&stop, "stop", false, "Stop appearing in matches")
	return cmd
}

func newPartnerMatchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matches",
		Short: "Show compatible partners",
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
			matches, err := communityService(svc).Matches(ctx, accountID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconPartner, "Matches"))
			if len(matches) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(nobody is looking right now)"))
				return nil
			}
			for _, m := range matches {
				p := m.Profile
				fmt.Fprintf(out, "%s %s (L%d) %s %d  %s\n",
					p.Avatar, ui.Key.Render(p.Name), p.Level, ui.Gold.Render("match"), m.Score, ui.Muted.Render(p.ID))
				if p.Introduction != "" {
					fmt.Fprintln(out, "   "+ui.Muted.Render(p.Introduction))
				}
				if len(p.Goals) > 0 {
					fmt.Fprintln(out, "   goals: "+strings.Join(p.Goals, ", "))
				}
			}
			return nil
		},
	}
}

func newPartnerRequestCmd() *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "request <partner-id>",
		Short: "Send a match request",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("partner id is required")
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
			req, err := communityService(svc).SendRequest(ctx, accountID, args[0], message)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Request sent. %s\n", ui.Good.Render(ui.IconDone), ui.Muted.Render(req.ID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "A line about why you want to pair up")
	return cmd
}

func newPartnerInboxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inbox",
		Short: "Show pending requests and matched partners",
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
			com := communityService(svc)
			pending, err := com.PendingRequests(ctx, accountID)
			if err != nil {
				return err
			}
			matched, err := com.MatchedPartners(ctx, accountID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading("📬", "Requests"))
			if len(pending) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none pending)"))
			}
			for _, r := range pending {
				fmt.Fprintf(out, "- from %s: %s  %s\n", ui.Key.Render(r.FromUserID), r.Message, ui.Muted.Render(r.ID))
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render(ui.IconPartner+" Matched"))
			if len(matched) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no partners yet)"))
			}
			for _, p := range matched {
				fmt.Fprintf(out, "- %s %s %s\n", p.Avatar, ui.Key.Render(p.Name), ui.Muted.Render(p.ID))
			}
			return nil
		},
	}
}

func newPartnerRespondCmd() *cobra.Command {
	var reject bool
	cmd := &cobra.Command{
		Use:   "respond <request-id>",
		Short: "Accept or reject a request",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("request id is required")
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
			req, err := communityService(svc).RespondRequest(ctx, accountID, args[0], !reject)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Request %s.\n", ui.Good.Render(ui.IconDone), req.Status)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reject, "reject", false, "Reject instead of accepting")
	return cmd
}

func newPartnerChatCmd() *cobra.Command {
	var send string
	cmd := &cobra.Command{
		Use:   "chat <partner-id>",
		Short: "Read a conversation, or send a message with --send",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("partner id is required")
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
			com := communityService(svc)

			if send != "" {
				if _, err := com.SendMessage(ctx, accountID, args[0], send); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Sent.\n", ui.Good.Render(ui.IconDone))
				return nil
			}

			messages, err := com.Conversation(ctx, accountID, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading("💬", "Chat"))
			if len(messages) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no messages yet)"))
			}
			for _, m := range messages {
				who := "them"
				if m.SenderID == accountID {
					who = "you"
				}
				fmt.Fprintf(out, "%s %s: %s\n", ui.Muted.Render(m.CreatedAt.Format("Jan 2 15:04")), ui.Key.Render(who), m.Content)
			}
			return com.MarkConversationRead(ctx, accountID, args[0])
		},
	}
	cmd.Flags().StringVar(&send, "send", "", "Message to send")
	return cmd
}

func newPartnerUnreadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unread",
		Short: "Show the unread badge count",
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
			n, err := communityService(svc).TotalUnread(ctx, accountID)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing new."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d unread\n", ui.Warn.Render("🔔"), n)
			return nil
		},
	}
}
