package engine

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/AlexZhen345/LifeOS/internal/storage"
)

// Service wires the repositories together and owns every read-modify-write
// cycle on user documents. The account id is threaded explicitly through
// all operations; there is no ambient current-account state in here.
type Service struct {
	db        *sql.DB
	kv        *storage.KV
	accounts  *storage.AccountStore
	users     *storage.UserDataRepo
	schedules *storage.ScheduleRepo
}

func NewService(db *sql.DB) *Service {
	kv := storage.NewKV(db)
	return &Service{
		db:        db,
		kv:        kv,
		accounts:  storage.NewAccountStore(kv),
		users:     storage.NewUserDataRepo(kv),
		schedules: storage.NewScheduleRepo(kv),
	}
}

func (s *Service) KV() *storage.KV { return s.kv }

func (s *Service) AccountStore() *storage.AccountStore { return s.accounts }

func (s *Service) UserDataRepo() *storage.UserDataRepo { return s.users }

func (s *Service) ScheduleRepo() *storage.ScheduleRepo { return s.schedules }

// Today returns the current calendar date in local time.
func Today() string {
	return time.Now().Format(storage.DateFormat)
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}

// CreateTaskInput describes a manually or externally created task.
type CreateTaskInput struct {
	Title       string
	Description string
	Date        string // YYYY-MM-DD; empty = today
	Duration    int    // minutes; 0 = the account's preferred duration
	Category    string
	Rewards     storage.Rewards
}

// CreateTask appends one task to the account's history. Returns the stored
// record, or nil when no account document exists.
func (s *Service) CreateTask(ctx context.Context, accountID string, in CreateTaskInput) (*storage.TaskRecord, error) {
	records, err := s.CreateTasks(ctx, accountID, []CreateTaskInput{in})
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return &records[0], nil
}

// CreateTasks appends a batch of tasks in one document write.
func (s *Service) CreateTasks(ctx context.Context, accountID string, ins []CreateTaskInput) ([]storage.TaskRecord, error) {
	data, err := s.users.Load(ctx, accountID)
	if err != nil || data == nil {
		return nil, err
	}

	entries := make([]storage.TaskRecord, 0, len(ins))
	for _, in := range ins {
		title, err := normalizeTitle(in.Title)
		if err != nil {
			return nil, err
		}
		date := in.Date
		if date == "" {
			date = Today()
		}
		duration := in.Duration
		if duration <= 0 {
			duration = data.Skills.PreferredTaskDuration
			if duration <= 0 {
				duration = 60
			}
		}
		entries = append(entries, storage.TaskRecord{
			Title:         title,
			Description:   strings.TrimSpace(in.Description),
			ScheduledDate: date,
			Duration:      duration,
			Category:      in.Category,
			Rewards:       in.Rewards,
		})
	}
	return s.users.AddTasksToHistory(ctx, accountID, entries)
}

// ActiveTasks returns the not-yet-completed tasks, optionally restricted to
// one scheduled date.
func (s *Service) ActiveTasks(ctx context.Context, accountID, date string) ([]storage.TaskRecord, error) {
	data, err := s.users.Load(ctx, accountID)
	if err != nil || data == nil {
		return nil, err
	}
	var out []storage.TaskRecord
	for _, t := range data.TaskHistory {
		if t.Completed || t.Deleted {
			continue
		}
		if date != "" && t.ScheduledDate != date {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// TasksOn returns every task scheduled for the given date, completed or not.
func (s *Service) TasksOn(ctx context.Context, accountID, date string) ([]storage.TaskRecord, error) {
	data, err := s.users.Load(ctx, accountID)
	if err != nil || data == nil {
		return nil, err
	}
	var out []storage.TaskRecord
	for _, t := range data.TaskHistory {
		if t.ScheduledDate == date && !t.Deleted {
			out = append(out, t)
		}
	}
	return out, nil
}
