package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AlexZhen345/LifeOS/internal/storage"
	"github.com/AlexZhen345/LifeOS/internal/ui"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit the profile",
	}
	cmd.AddCommand(
		newProfileShowCmd(),
		newProfileSetCmd(),
		newSkillsSetCmd(),
	)
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show profile and skills",
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
			p := data.Profile
			fmt.Fprintln(out, ui.Heading("👤", "Profile"))
			fmt.Fprintln(out, ui.LabelValue("Name", p.Name))
			if p.Age > 0 {
				fmt.Fprintln(out, ui.LabelValue("Age", p.Age))
			}
			if p.Occupation != "" {
				fmt.Fprintln(out, ui.LabelValue("Occupation", p.Occupation))
			}
			if p.WakeUpTime != "" || p.SleepTime != "" {
				fmt.Fprintln(out, ui.LabelValue("Day", p.WakeUpTime+" to "+p.SleepTime))
			}
			if p.DailyAvailableHours > 0 {
				fmt.Fprintln(out, ui.LabelValue("Available hours", p.DailyAvailableHours))
			}
			if len(p.PreferredWorkPeriods) > 0 {
				fmt.Fprintln(out, ui.LabelValue("Work periods", strings.Join(p.PreferredWorkPeriods, ", ")))
			}
			fmt.Fprintln(out, ui.LabelValue("On ladder", p.JoinLeaderboard))

			s := data.Skills
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render("🛠️ Skills"))
			if len(s.Skills) > 0 {
				fmt.Fprintln(out, ui.LabelValue("Skills", strings.Join(s.Skills, ", ")))
			}
			if len(s.LearningGoals) > 0 {
				fmt.Fprintln(out, ui.LabelValue("Goals", strings.Join(s.LearningGoals, ", ")))
			}
			if len(s.Strengths) > 0 {
				fmt.Fprintln(out, ui.LabelValue("Strengths", strings.Join(s.Strengths, ", ")))
			}
			if len(s.Weaknesses) > 0 {
				fmt.Fprintln(out, ui.LabelValue("Weaknesses", strings.Join(s.Weaknesses, ", ")))
			}
			if s.PreferredTaskDuration > 0 {
				fmt.Fprintln(out, ui.LabelValue("Task length", fmt.Sprintf("%d min", s.PreferredTaskDuration)))
			}
			return nil
		},
	}
}

func newProfileSetCmd() *cobra.Command {
	var name, occupation, wake, sleep, nickname string
	var age int
	var hours float64
	var periods []string
	var joinLadder, leaveLadder bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
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

			var patch storage.ProfilePatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("age") {
				patch.Age = &age
			}
			if flags.Changed("occupation") {
				patch.Occupation = &occupation
			}
			if flags.Changed("wake") {
				patch.WakeUpTime = &wake
			}
			if flags.Changed("sleep") {
				patch.SleepTime = &sleep
			}
			if flags.Changed("hours") {
				patch.DailyAvailableHours = &hours
			}
			if flags.Changed("periods") {
				patch.PreferredWorkPeriods = &periods
			}
			if flags.Changed("nickname") {
				patch.LeaderboardNickname = &nickname
			}
			if joinLadder && leaveLadder {
				return errors.New("--join-ladder and --leave-ladder are mutually exclusive")
			}
			if joinLadder {
				v := true
				patch.JoinLeaderboard = &v
			}
			if leaveLadder {
				v := false
				patch.JoinLeaderboard = &v
			}

			if err := svc.UserDataRepo().UpdateProfile(ctx, accountID, patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Profile updated.\n", ui.Good.Render(ui.IconDone))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().IntVar(&age, "age", 0, "Age")
	cmd.Flags().StringVar(&occupation, "occupation", "", "Occupation")
	cmd.Flags().StringVar(&wake, "wake", "", "Wake-up time (HH:MM)")
	cmd.Flags().StringVar(&sleep, "sleep", "", "Sleep time (HH:MM)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Daily available hours")
	cmd.Flags().StringSliceVar(&periods, "periods", nil, "Preferred work periods (morning|afternoon|evening|night)")
	cmd.Flags().BoolVar(&joinLadder, "join-ladder", false, "Opt in to the leaderboard")
	cmd.Flags().BoolVar(&leaveLadder, "leave-ladder", false, "Opt out of the leaderboard")
	cmd.Flags().StringVar(&nickname, "nickname", "", "Leaderboard nickname")
	return cmd
}

func newSkillsSetCmd() *cobra.Command {
	var skills, goals, strengths, weaknesses []string
	var duration int

	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Update skills and learning goals",
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

			var patch storage.SkillsPatch
			flags := cmd.Flags()
			if flags.Changed("skills") {
				patch.Skills = &skills
			}
			if flags.Changed("goals") {
				patch.LearningGoals = &goals
			}
			if flags.Changed("strengths") {
				patch.Strengths = &strengths
			}
			if flags.Changed("weaknesses") {
				patch.Weaknesses = &weaknesses
			}
			if flags.Changed("duration") {
				patch.PreferredTaskDuration = &duration
			}

			if err := svc.UserDataRepo().UpdateSkills(ctx, accountID, patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Skills updated.\n", ui.Good.Render(ui.IconDone))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&skills, "skills", nil, "Current skills")
	cmd.Flags().StringSliceVar(&goals, "goals", nil, "Learning goals")
	cmd.Flags().StringSliceVar(&strengths, "strengths", nil, "Strengths")
	cmd.Flags().StringSliceVar(&weaknesses, "weaknesses", nil, "Weaknesses")
	cmd.Flags().IntVar(&duration, "duration", 0, "Preferred task length in minutes")
	return cmd
}
