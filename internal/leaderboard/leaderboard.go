package leaderboard

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/AlexZhen345/LifeOS/internal/storage"
)

// Metric selects which dimension the ladder is ranked by.
type Metric string

const (
	MetricTotal  Metric = "total"
	MetricINT    Metric = "int"
	MetricVIT    Metric = "vit"
	MetricCHA    Metric = "cha"
	MetricGOLD   Metric = "gold"
	MetricWIL    Metric = "wil"
	MetricStreak Metric = "streak"
)

var AllMetrics = []Metric{MetricTotal, MetricINT, MetricVIT, MetricCHA, MetricGOLD, MetricWIL, MetricStreak}

// ParseMetric maps a user-supplied name to a metric. Unknown names error.
func ParseMetric(input string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "total":
		return MetricTotal, nil
	case "int", "intelligence":
		return MetricINT, nil
	case "vit", "vitality":
		return MetricVIT, nil
	case "cha", "charisma":
		return MetricCHA, nil
	case "gold", "wealth":
		return MetricGOLD, nil
	case "wil", "will", "willpower":
		return MetricWIL, nil
	case "streak":
		return MetricStreak, nil
	default:
		return "", fmt.Errorf("unknown leaderboard metric %q", input)
	}
}

// Entry is one ladder row. Local entries come from opted-in accounts on this
// machine; the rest are the synthetic population.
type Entry struct {
	ID         string
	Nickname   string
	Level      int
	Attributes storage.Rewards
	StreakDays int
	IsLocal    bool
}

// Score returns the entry's value along the given metric.
func (e Entry) Score(m Metric) int {
	switch m {
	case MetricINT:
		return e.Attributes.INT
	case MetricVIT:
		return e.Attributes.VIT
	case MetricCHA:
		return e.Attributes.CHA
	case MetricGOLD:
		return e.Attributes.GOLD
	case MetricWIL:
		return e.Attributes.WIL
	case MetricStreak:
		return e.StreakDays
	default:
		return e.Attributes.Total()
	}
}

var nicknames = []string{
	"NightOwl", "EarlyBird", "IronQuill", "StillWater", "SwiftFox",
	"QuietStorm", "BoldStride", "KeenEdge", "TrueNorth", "BrightSpark",
	"LongRoad", "SteadyHand", "WildCard", "HighNoon", "DeepFocus",
	"FreshStart", "LastLight", "FirstFrost", "GoldenHour", "ClearSky",
	"StoneBridge", "RiverStone", "OakHeart", "SilverLine", "FarHorizon",
}

// Aggregator ranks a synthetic population against local accounts. The
// population is generated once per Aggregator and reused across calls, so
// every ladder view within one invocation sees the same field.
type Aggregator struct {
	size       int
	seed       int64
	population []Entry
}

func New(size int, seed int64) *Aggregator {
	if size <= 0 {
		size = 20
	}
	return &Aggregator{size: size, seed: seed}
}

// Population returns the cached synthetic field, generating it on first use.
func (a *Aggregator) Population() []Entry {
	if a.population == nil {
		a.population = generate(a.size, a.seed)
	}
	return a.population
}

func generate(size int, seed int64) []Entry {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Entry, 0, size)
	for i := 0; i < size; i++ {
		attrs := storage.Rewards{
			INT:  50 + rng.Intn(201),  // 50..250
			VIT:  30 + rng.Intn(151),  // 30..180
			CHA:  20 + rng.Intn(101),  // 20..120
			GOLD: 50 + rng.Intn(301),  // 50..350
			WIL:  40 + rng.Intn(181),  // 40..220
		}
		name := nicknames[i%len(nicknames)]
		if i >= len(nicknames) {
			name = fmt.Sprintf("%s%d", name, i/len(nicknames)+1)
		}
		out = append(out, Entry{
			ID:         fmt.Sprintf("mock-%d", i+1),
			Nickname:   name,
			Level:      attrs.Total()/100 + 1,
			Attributes: attrs,
			StreakDays: rng.Intn(31),
		})
	}
	return out
}

// Ranked merges the local entries into the population and returns the rows
// ordered by the metric, best first. Ties keep their incoming order.
func (a *Aggregator) Ranked(locals []Entry, m Metric) []Entry {
	rows := make([]Entry, 0, len(a.Population())+len(locals))
	rows = append(rows, a.Population()...)
	rows = append(rows, locals...)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score(m) > rows[j].Score(m)
	})
	return rows
}

// RankOf places one entry against the synthetic population alone: the count
// of population members with a strictly greater score, plus one.
func (a *Aggregator) RankOf(e Entry, m Metric) int {
	rank := 1
	for _, p := range a.Population() {
		if p.Score(m) > e.Score(m) {
			rank++
		}
	}
	return rank
}

// LocalEntry builds a ladder row from an opted-in account document. Returns
// false when the account has not joined the ladder.
func LocalEntry(accountID string, data *storage.UserData) (Entry, bool) {
	if data == nil || !data.Profile.JoinLeaderboard {
		return Entry{}, false
	}
	name := data.Profile.LeaderboardNickname
	if name == "" {
		name = data.Profile.Name
	}
	return Entry{
		ID:         accountID,
		Nickname:   name,
		Level:      data.Attributes.Level,
		Attributes: data.Attributes.Rewards,
		StreakDays: data.Stats.StreakDays,
		IsLocal:    true,
	}, true
}
