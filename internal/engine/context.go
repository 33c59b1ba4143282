package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/AlexZhen345/LifeOS/internal/storage"
)

// BuildContext renders a compact English digest of an account suitable for
// pasting into an external planning assistant. It carries everything the
// assistant needs to produce a day plan and nothing it does not: profile,
// skills, progression, and the recent task record.
func (s *Service) BuildContext(ctx context.Context, accountID string) (string, error) {
	data, err := s.users.Load(ctx, accountID)
	if err != nil {
		return "", err
	}
	if data == nil {
		return "", &NotFoundError{Kind: "account", ID: accountID}
	}

	var b strings.Builder
	p := data.Profile

	fmt.Fprintf(&b, "User: %s", orUnset(p.Name))
	if p.Age > 0 {
		fmt.Fprintf(&b, ", age %d", p.Age)
	}
	if p.Occupation != "" {
		fmt.Fprintf(&b, ", %s", p.Occupation)
	}
	b.WriteString("\n")

	if p.WakeUpTime != "" || p.SleepTime != "" {
		fmt.Fprintf(&b, "Day: wakes %s, sleeps %s\n", orUnset(p.WakeUpTime), orUnset(p.SleepTime))
	}
	if p.DailyAvailableHours > 0 {
		fmt.Fprintf(&b, "Available: %.1f hours/day", p.DailyAvailableHours)
		if len(p.PreferredWorkPeriods) > 0 {
			fmt.Fprintf(&b, ", prefers %s", strings.Join(p.PreferredWorkPeriods, ", "))
		}
		b.WriteString("\n")
	}

	sk := data.Skills
	if len(sk.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(sk.Skills, ", "))
	}
	if len(sk.LearningGoals) > 0 {
		fmt.Fprintf(&b, "Learning goals: %s\n", strings.Join(sk.LearningGoals, ", "))
	}
	if len(sk.Strengths) > 0 {
		fmt.Fprintf(&b, "Strengths: %s\n", strings.Join(sk.Strengths, ", "))
	}
	if len(sk.Weaknesses) > 0 {
		fmt.Fprintf(&b, "Weaknesses: %s\n", strings.Join(sk.Weaknesses, ", "))
	}
	if sk.PreferredTaskDuration > 0 {
		fmt.Fprintf(&b, "Preferred task length: %d minutes\n", sk.PreferredTaskDuration)
	}

	a := data.Attributes
	fmt.Fprintf(&b, "Character: level %d, %d/%d XP; INT %d, VIT %d, CHA %d, GOLD %d, WIL %d\n",
		a.Level, a.XP, a.XPForNextLevel, a.INT, a.VIT, a.CHA, a.GOLD, a.WIL)

	st := data.Stats
	fmt.Fprintf(&b, "Record: %d tasks created, %d completed (%.0f%% rate), streak %d days",
		st.TotalTasksCreated, st.TotalTasksCompleted, st.AverageCompletionRate*100, st.StreakDays)
	if st.AverageDelayDays > 0 {
		fmt.Fprintf(&b, ", average delay %.1f days", st.AverageDelayDays)
	}
	b.WriteString("\n")

	var recent []storage.TaskRecord
	for _, t := range data.TaskHistory {
		if !t.Deleted {
			recent = append(recent, t)
		}
	}
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	if len(recent) > 0 {
		b.WriteString("Recent tasks:\n")
		for i := len(recent) - 1; i >= 0; i-- {
			t := recent[i]
			state := "pending"
			if t.Completed {
				state = "done"
			}
			fmt.Fprintf(&b, "- [%s] %s (%s, %d min)\n", state, t.Title, t.ScheduledDate, t.Duration)
		}
	}

	return b.String(), nil
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
