package engine

import "github.com/AlexZhen345/LifeOS/internal/storage"

// AchievementStats is the aggregate snapshot achievement conditions are
// evaluated against.
type AchievementStats struct {
	TotalTasksCompleted int
	ConsecutiveDays     int
	Attributes          storage.Rewards
	GoalsCompleted      int
	Level               int
}

// ConditionKind tags the closed set of achievement condition shapes.
// Conditions are data, not code, so the catalog is serializable and each
// kind is covered by one comparator.
type ConditionKind string

const (
	TotalTasksAtLeast      ConditionKind = "total_tasks_at_least"
	ConsecutiveDaysAtLeast ConditionKind = "consecutive_days_at_least"
	AllAttributesPositive  ConditionKind = "all_attributes_positive"
	AttributeAtLeast       ConditionKind = "attribute_at_least"
	GoalsCompletedAtLeast  ConditionKind = "goals_completed_at_least"
	LevelAtLeast           ConditionKind = "level_at_least"
)

type Condition struct {
	Kind      ConditionKind
	Attr      Attribute // only for AttributeAtLeast
	Threshold int
}

// Met evaluates the condition against the stats snapshot.
func (c Condition) Met(stats AchievementStats) bool {
	switch c.Kind {
	case TotalTasksAtLeast:
		return stats.TotalTasksCompleted >= c.Threshold
	case ConsecutiveDaysAtLeast:
		return stats.ConsecutiveDays >= c.Threshold
	case AllAttributesPositive:
		a := stats.Attributes
		return a.INT > 0 && a.VIT > 0 && a.CHA > 0 && a.GOLD > 0 && a.WIL > 0
	case AttributeAtLeast:
		return RewardOf(stats.Attributes, c.Attr) >= c.Threshold
	case GoalsCompletedAtLeast:
		return stats.GoalsCompleted >= c.Threshold
	case LevelAtLeast:
		return stats.Level >= c.Threshold
	default:
		return false
	}
}

// Achievement is a static catalog entry. Unlock state lives in the user
// document, not here.
type Achievement struct {
	ID          string
	Name        string
	Icon        string
	Description string
	Condition   Condition
}

// AchievementFirstTask is the entry surfaced as a side effect of the
// historically-first task completion.
const AchievementFirstTask = "first_task"

// Catalog is the full achievement wall.
var Catalog = []Achievement{
	{
		ID: AchievementFirstTask, Name: "First Sprout", Icon: "🌱",
		Description: "Complete your first task",
		Condition:   Condition{Kind: TotalTasksAtLeast, Threshold: 1},
	},
	{
		ID: "consecutive_3_days", Name: "Unbroken", Icon: "🔥",
		Description: "Complete tasks 3 days in a row",
		Condition:   Condition{Kind: ConsecutiveDaysAtLeast, Threshold: 3},
	},
	{
		ID: "total_10_tasks", Name: "Scholar's Path", Icon: "📚",
		Description: "Complete 10 tasks in total",
		Condition:   Condition{Kind: TotalTasksAtLeast, Threshold: 10},
	},
	{
		ID: "all_attributes", Name: "Well-Rounded", Icon: "🌟",
		Description: "Raise all 5 attributes above 0",
		Condition:   Condition{Kind: AllAttributesPositive},
	},
	{
		ID: "int_50", Name: "Sage's Name", Icon: "💡",
		Description: "Reach 50 INT",
		Condition:   Condition{Kind: AttributeAtLeast, Attr: AttributeINT, Threshold: 50},
	},
	{
		ID: "wil_30", Name: "Iron Will", Icon: "💪",
		Description: "Reach 30 WIL",
		Condition:   Condition{Kind: AttributeAtLeast, Attr: AttributeWIL, Threshold: 30},
	},
	{
		ID: "goals_5", Name: "Day Closer", Icon: "🎯",
		Description: "Finish every task of the day, 5 times",
		Condition:   Condition{Kind: GoalsCompletedAtLeast, Threshold: 5},
	},
	{
		ID: "level_5", Name: "Rising Star", Icon: "⬆️",
		Description: "Reach level 5",
		Condition:   Condition{Kind: LevelAtLeast, Threshold: 5},
	},
}

// CatalogEntry returns the catalog achievement with the given id, or nil.
func CatalogEntry(id string) *Achievement {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}

// EvaluateAchievements returns the catalog entries that are newly unlocked
// by the stats snapshot. Already-unlocked ids are never re-evaluated, so an
// unlock can never revert regardless of how the stats later move.
func EvaluateAchievements(unlocked []string, stats AchievementStats) []Achievement {
	seen := make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		seen[id] = true
	}

	var newly []Achievement
	for _, a := range Catalog {
		if seen[a.ID] {
			continue
		}
		if a.Condition.Met(stats) {
			newly = append(newly, a)
		}
	}
	return newly
}

// StatsSnapshot derives the achievement evaluation input from a user
// document. GoalsCompleted counts days on which every task scheduled for
// that day was completed.
func StatsSnapshot(u *storage.UserData) AchievementStats {
	return AchievementStats{
		TotalTasksCompleted: u.Stats.TotalTasksCompleted,
		ConsecutiveDays:     u.Stats.StreakDays,
		Attributes:          u.Attributes.Rewards,
		GoalsCompleted:      countClosedDays(u.TaskHistory),
		Level:               u.Attributes.Level,
	}
}

func countClosedDays(history []storage.TaskRecord) int {
	total := map[string]int{}
	done := map[string]int{}
	for _, t := range history {
		total[t.ScheduledDate]++
		if t.Completed {
			done[t.ScheduledDate]++
		}
	}
	closed := 0
	for date, n := range total {
		if n > 0 && done[date] == n {
			closed++
		}
	}
	return closed
}
