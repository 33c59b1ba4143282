package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AlexZhen345/LifeOS/internal/storage"
)

// TaskStateError reports a lifecycle operation applied to a task in the
// wrong state.
type TaskStateError struct {
	TaskID string
	Reason string
}

func (e *TaskStateError) Error() string {
	return fmt.Sprintf("task %s: %s", e.TaskID, e.Reason)
}

// NotFoundError reports a missing task or account document.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// CompleteInput carries the optional check-in details for a completion.
type CompleteInput struct {
	PhotoData      string // data URI thumbnail; empty when the photo was skipped
	ActualDuration int    // minutes; 0 = use the planned duration
}

// CompleteResult summarizes everything a completion changed.
type CompleteResult struct {
	Task       storage.TaskRecord
	Rewards    storage.Rewards
	XPGained   int
	LevelUp    LevelUpResult
	Unlocked   []Achievement
	StreakDays int
	CheckIn    storage.CheckInRecord
}

// CompleteTask marks a task done, records the check-in, applies rewards and
// experience, advances the streak, and evaluates achievements, all in one
// document write. The linked schedule item, if any, is flipped afterwards.
// Completing a task that is already completed changes nothing and reports
// zero gain.
func (s *Service) CompleteTask(ctx context.Context, accountID, taskID string, in CompleteInput) (*CompleteResult, error) {
	data, err := s.users.Load(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, &NotFoundError{Kind: "account", ID: accountID}
	}
	task := data.Task(taskID)
	if task == nil {
		return nil, &NotFoundError{Kind: "task", ID: taskID}
	}
	if task.Deleted {
		return nil, &TaskStateError{TaskID: taskID, Reason: "task was deleted"}
	}
	if task.Completed {
		// Completing a completed task is a no-op, not a fault.
		return &CompleteResult{Task: *task, StreakDays: data.Stats.StreakDays}, nil
	}

	now := time.Now()
	today := now.Format(storage.DateFormat)

	task.Completed = true
	task.CompletedDate = today
	task.CheckInPhoto = in.PhotoData
	if in.ActualDuration > 0 {
		task.ActualDuration = in.ActualDuration
	} else {
		task.ActualDuration = task.Duration
	}

	checkIn := storage.CheckInRecord{
		ID:        uuid.NewString(),
		TaskID:    task.ID,
		TaskTitle: task.Title,
		PhotoData: in.PhotoData,
		Timestamp: now,
		Rewards:   task.Rewards,
	}
	data.CheckInRecords = append(data.CheckInRecords, checkIn)

	data.Attributes.Rewards = data.Attributes.Rewards.Add(task.Rewards)
	lu := ResolveLevelUp(data.Attributes.XP+XPPerTask, data.Attributes.Level, data.Attributes.XPForNextLevel)
	data.Attributes.XP = lu.XP
	data.Attributes.Level = lu.Level
	data.Attributes.XPForNextLevel = lu.XPForNextLevel

	data.Stats.TotalTasksCompleted++
	data.Stats.StreakDays = nextStreak(data.Stats.StreakDays, data.Stats.LastActiveDate, now)
	storage.RecomputeStats(data, now)

	unlocked := EvaluateAchievements(data.Achievements, StatsSnapshot(data))
	for _, a := range unlocked {
		data.Achievements = append(data.Achievements, a.ID)
	}

	if err := s.users.Save(ctx, accountID, data); err != nil {
		return nil, err
	}
	if err := s.syncLinkedItems(ctx, accountID, task.ScheduledDate, task.ID, true); err != nil {
		return nil, err
	}

	return &CompleteResult{
		Task:       *task,
		Rewards:    task.Rewards,
		XPGained:   XPPerTask,
		LevelUp:    lu,
		Unlocked:   unlocked,
		StreakDays: data.Stats.StreakDays,
		CheckIn:    checkIn,
	}, nil
}

// nextStreak advances the consecutive-day counter. Completing a second task
// on the same day leaves it alone; a gap longer than one day resets it.
func nextStreak(current int, lastActive string, now time.Time) int {
	today := now.Format(storage.DateFormat)
	yesterday := now.AddDate(0, 0, -1).Format(storage.DateFormat)
	switch lastActive {
	case today:
		if current < 1 {
			return 1
		}
		return current
	case yesterday:
		return current + 1
	default:
		return 1
	}
}

// UncompleteTask reverses a completion. Rewards come back off the character
// without a floor; experience is floored at zero and the level is left
// where it stands. Unlocked achievements stay unlocked. Un-completing a task
// that is not completed is a no-op.
func (s *Service) UncompleteTask(ctx context.Context, accountID, taskID string) (*storage.TaskRecord, error) {
	data, err := s.users.Load(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, &NotFoundError{Kind: "account", ID: accountID}
	}
	task := data.Task(taskID)
	if task == nil {
		return nil, &NotFoundError{Kind: "task", ID: taskID}
	}
	if task.Deleted {
		return nil, &TaskStateError{TaskID: taskID, Reason: "task was deleted"}
	}
	if !task.Completed {
		// Nothing to reverse; leave the document untouched.
		return task, nil
	}

	data.Attributes.Rewards = data.Attributes.Rewards.Sub(task.Rewards)
	data.Attributes.XP -= XPPerTask
	if data.Attributes.XP < 0 {
		data.Attributes.XP = 0
	}

	task.Completed = false
	task.CompletedDate = ""
	task.ActualDuration = 0
	task.CheckInPhoto = ""

	if data.Stats.TotalTasksCompleted > 0 {
		data.Stats.TotalTasksCompleted--
	}

	for i := len(data.CheckInRecords) - 1; i >= 0; i-- {
		if data.CheckInRecords[i].TaskID == taskID {
			data.CheckInRecords = append(data.CheckInRecords[:i], data.CheckInRecords[i+1:]...)
			break
		}
	}

	storage.RecomputeStats(data, time.Now())

	if err := s.users.Save(ctx, accountID, data); err != nil {
		return nil, err
	}
	if err := s.syncLinkedItems(ctx, accountID, task.ScheduledDate, task.ID, false); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask retires a task from the active list. A completed task first has
// its rewards and experience reversed the same way UncompleteTask does. The
// history record itself is never erased; it is closed out instead so it no
// longer surfaces as pending work.
func (s *Service) DeleteTask(ctx context.Context, accountID, taskID string) error {
	data, err := s.users.Load(ctx, accountID)
	if err != nil {
		return err
	}
	if data == nil {
		return &NotFoundError{Kind: "account", ID: accountID}
	}
	task := data.Task(taskID)
	if task == nil {
		return &NotFoundError{Kind: "task", ID: taskID}
	}
	if task.Deleted {
		return &TaskStateError{TaskID: taskID, Reason: "already deleted"}
	}

	if task.Completed {
		data.Attributes.Rewards = data.Attributes.Rewards.Sub(task.Rewards)
		data.Attributes.XP -= XPPerTask
		if data.Attributes.XP < 0 {
			data.Attributes.XP = 0
		}
		for i := len(data.CheckInRecords) - 1; i >= 0; i-- {
			if data.CheckInRecords[i].TaskID == taskID {
				data.CheckInRecords = append(data.CheckInRecords[:i], data.CheckInRecords[i+1:]...)
				break
			}
		}
		if data.Stats.TotalTasksCompleted > 0 {
			data.Stats.TotalTasksCompleted--
		}
	}
	// The record is closed out, not erased. Schedule entries that still point
	// at it keep their reference and degrade to plain unlinked items.
	task.Completed = true
	task.Deleted = true
	task.CheckInPhoto = ""

	storage.RecomputeStats(data, time.Now())

	return s.users.Save(ctx, accountID, data)
}
