package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DateFormat is the calendar-date layout used throughout: local time, not
// UTC, so a task scheduled "today" stays on today across timezone offsets.
const DateFormat = "2006-01-02"

// DefaultUserData returns the document a fresh account starts with.
func DefaultUserData(name string, now time.Time) *UserData {
	return &UserData{
		Profile: Profile{
			Name:                 name,
			DailyAvailableHours:  4,
			PreferredWorkPeriods: []string{"morning", "afternoon"},
			LeaderboardNickname:  name,
		},
		Skills: Skills{
			Skills:                []string{},
			LearningGoals:         []string{},
			Strengths:             []string{},
			Weaknesses:            []string{},
			PreferredTaskDuration: 60,
		},
		TaskHistory:    []TaskRecord{},
		CheckInRecords: []CheckInRecord{},
		Attributes: Attributes{
			Level:          1,
			XP:             0,
			XPForNextLevel: 100,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UserDataRepo reads and writes per-account UserData documents. The account
// id is always passed explicitly; the repository holds no notion of a
// current account.
type UserDataRepo struct {
	kv *KV
}

func NewUserDataRepo(kv *KV) *UserDataRepo {
	return &UserDataRepo{kv: kv}
}

func userDataKey(accountID string) string {
	return userDataPrefix + accountID
}

// Load returns the account's document, or nil when the account id is empty,
// the document does not exist, or the stored value fails to parse. The
// document remembers the version it was loaded at for the next Save.
func (r *UserDataRepo) Load(ctx context.Context, accountID string) (*UserData, error) {
	if accountID == "" {
		return nil, nil
	}
	var data UserData
	version, ok, err := r.kv.GetJSON(ctx, userDataKey(accountID), &data)
	if err != nil || !ok {
		return nil, err
	}
	data.version = version
	return &data, nil
}

// Save stamps UpdatedAt and persists the whole document with a check-and-set
// against the version it was loaded at. A concurrent writer surfaces as
// ErrVersionConflict; the caller reloads and reapplies.
func (r *UserDataRepo) Save(ctx context.Context, accountID string, data *UserData) error {
	data.UpdatedAt = time.Now()
	if err := r.kv.PutJSON(ctx, userDataKey(accountID), data, data.version); err != nil {
		return err
	}
	data.version++
	return nil
}

// mutate runs fn against the loaded document and saves. Absent document is
// a no-op, not an error.
func (r *UserDataRepo) mutate(ctx context.Context, accountID string, fn func(*UserData)) error {
	data, err := r.Load(ctx, accountID)
	if err != nil || data == nil {
		return err
	}
	fn(data)
	return r.Save(ctx, accountID, data)
}

// ProfilePatch carries the optional profile fields for a shallow merge.
// Nil pointers leave the stored value untouched.
type ProfilePatch struct {
	Name                 *string
	Age                  *int
	Occupation           *string
	WakeUpTime           *string
	SleepTime            *string
	DailyAvailableHours  *float64
	PreferredWorkPeriods *[]string
	JoinLeaderboard      *bool
	LeaderboardNickname  *string
}

func (r *UserDataRepo) UpdateProfile(ctx context.Context, accountID string, patch ProfilePatch) error {
	return r.mutate(ctx, accountID, func(u *UserData) {
		p := &u.Profile
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Age != nil {
			p.Age = *patch.Age
		}
		if patch.Occupation != nil {
			p.Occupation = *patch.Occupation
		}
		if patch.WakeUpTime != nil {
			p.WakeUpTime = *patch.WakeUpTime
		}
		if patch.SleepTime != nil {
			p.SleepTime = *patch.SleepTime
		}
		if patch.DailyAvailableHours != nil {
			p.DailyAvailableHours = *patch.DailyAvailableHours
		}
		if patch.PreferredWorkPeriods != nil {
			p.PreferredWorkPeriods = *patch.PreferredWorkPeriods
		}
		if patch.JoinLeaderboard != nil {
			p.JoinLeaderboard = *patch.JoinLeaderboard
		}
		if patch.LeaderboardNickname != nil {
			p.LeaderboardNickname = *patch.LeaderboardNickname
		}
	})
}

// SkillsPatch carries the optional skills fields for a shallow merge.
type SkillsPatch struct {
	Skills                *[]string
	LearningGoals         *[]string
	Strengths             *[]string
	Weaknesses            *[]string
	PreferredTaskDuration *int
}

func (r *UserDataRepo) UpdateSkills(ctx context.Context, accountID string, patch SkillsPatch) error {
	return r.mutate(ctx, accountID, func(u *UserData) {
		s := &u.Skills
		if patch.Skills != nil {
			s.Skills = *patch.Skills
		}
		if patch.LearningGoals != nil {
			s.LearningGoals = *patch.LearningGoals
		}
		if patch.Strengths != nil {
			s.Strengths = *patch.Strengths
		}
		if patch.Weaknesses != nil {
			s.Weaknesses = *patch.Weaknesses
		}
		if patch.PreferredTaskDuration != nil {
			s.PreferredTaskDuration = *patch.PreferredTaskDuration
		}
	})
}

// AddTaskToHistory assigns the entry a fresh id, appends it, and bumps the
// created counter. Returns the stored record.
func (r *UserDataRepo) AddTaskToHistory(ctx context.Context, accountID string, entry TaskRecord) (TaskRecord, error) {
	records, err := r.AddTasksToHistory(ctx, accountID, []TaskRecord{entry})
	if err != nil || len(records) == 0 {
		return TaskRecord{}, err
	}
	return records[0], nil
}

// AddTasksToHistory appends all entries with fresh ids in one write.
func (r *UserDataRepo) AddTasksToHistory(ctx context.Context, accountID string, entries []TaskRecord) ([]TaskRecord, error) {
	var stored []TaskRecord
	err := r.mutate(ctx, accountID, func(u *UserData) {
		for _, entry := range entries {
			entry.ID = uuid.NewString()
			u.TaskHistory = append(u.TaskHistory, entry)
			stored = append(stored, entry)
		}
		u.Stats.TotalTasksCreated += len(entries)
	})
	return stored, err
}

// AddCheckInRecord assigns a fresh id and appends the check-in event.
func (r *UserDataRepo) AddCheckInRecord(ctx context.Context, accountID string, record CheckInRecord) (CheckInRecord, error) {
	record.ID = uuid.NewString()
	err := r.mutate(ctx, accountID, func(u *UserData) {
		u.CheckInRecords = append(u.CheckInRecords, record)
	})
	return record, err
}

// RecomputeStats derives the aggregate counters from the task history in
// place. Derived fields are never hand-edited.
func RecomputeStats(u *UserData, today time.Time) {
	if len(u.TaskHistory) == 0 {
		u.Stats.LastActiveDate = today.Format(DateFormat)
		return
	}

	completed := 0
	delayed := 0
	totalDelayDays := 0
	for _, t := range u.TaskHistory {
		if !t.Completed {
			continue
		}
		completed++
		if t.CompletedDate == "" || t.CompletedDate <= t.ScheduledDate {
			continue
		}
		scheduled, err1 := time.ParseInLocation(DateFormat, t.ScheduledDate, time.Local)
		done, err2 := time.ParseInLocation(DateFormat, t.CompletedDate, time.Local)
		if err1 != nil || err2 != nil {
			continue
		}
		delayed++
		totalDelayDays += int(done.Sub(scheduled).Hours() / 24)
	}

	u.Stats.AverageCompletionRate = float64(completed) / float64(len(u.TaskHistory))
	if delayed > 0 {
		u.Stats.AverageDelayDays = float64(totalDelayDays) / float64(delayed)
	} else {
		u.Stats.AverageDelayDays = 0
	}
	u.Stats.LastActiveDate = today.Format(DateFormat)
}

// RecentTaskHistory returns up to limit most recent task records, newest
// first.
func (r *UserDataRepo) RecentTaskHistory(ctx context.Context, accountID string, limit int) ([]TaskRecord, error) {
	data, err := r.Load(ctx, accountID)
	if err != nil || data == nil {
		return nil, err
	}
	history := data.TaskHistory
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	out := make([]TaskRecord, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i])
	}
	return out, nil
}

// RecentCheckIns returns up to limit most recent check-in records, newest
// first.
func (r *UserDataRepo) RecentCheckIns(ctx context.Context, accountID string, limit int) ([]CheckInRecord, error) {
	data, err := r.Load(ctx, accountID)
	if err != nil || data == nil {
		return nil, err
	}
	records := data.CheckInRecords
	if len(records) > limit {
		records = records[len(records)-limit:]
	}
	out := make([]CheckInRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		out = append(out, records[i])
	}
	return out, nil
}
