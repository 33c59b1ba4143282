package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AlexZhen345/LifeOS/internal/storage"
)

// SyncLinkedTask flips every schedule item linked to the task to the given
// completion state. Idempotent; the second return reports whether anything
// changed.
func SyncLinkedTask(items []storage.ScheduleItem, taskID string, completed bool) ([]storage.ScheduleItem, bool) {
	changed := false
	for i := range items {
		if items[i].LinkedTaskID == taskID && items[i].Completed != completed {
			items[i].Completed = completed
			changed = true
		}
	}
	return items, changed
}

func (s *Service) syncLinkedItems(ctx context.Context, accountID, date, taskID string, completed bool) error {
	items, err := s.schedules.LoadDay(ctx, accountID, date)
	if err != nil {
		return err
	}
	items, changed := SyncLinkedTask(items, taskID, completed)
	if !changed {
		return nil
	}
	return s.schedules.SaveDay(ctx, accountID, date, items)
}

// ScheduleItemInput describes a new day-plan entry.
type ScheduleItemInput struct {
	Time         string
	Title        string
	Description  string
	Duration     int
	Type         storage.ScheduleItemType
	Rewards      storage.Rewards
	LinkedTaskID string
}

// AddScheduleItem appends one entry to the day plan. Task-typed items may
// name an existing task history record to link against.
func (s *Service) AddScheduleItem(ctx context.Context, accountID, date string, in ScheduleItemInput) (*storage.ScheduleItem, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	typ := in.Type
	if typ == "" {
		typ = storage.ScheduleTask
	}
	if !typ.IsValid() {
		return nil, fmt.Errorf("unknown schedule item type %q", in.Type)
	}
	if in.LinkedTaskID != "" {
		data, err := s.users.Load(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if data == nil {
			return nil, &NotFoundError{Kind: "account", ID: accountID}
		}
		task := data.Task(in.LinkedTaskID)
		if task == nil || task.Deleted {
			return nil, &NotFoundError{Kind: "task", ID: in.LinkedTaskID}
		}
	}

	items, err := s.schedules.LoadDay(ctx, accountID, date)
	if err != nil {
		return nil, err
	}
	item := storage.ScheduleItem{
		ID:           uuid.NewString(),
		Time:         in.Time,
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		Duration:     in.Duration,
		Type:         typ,
		Rewards:      in.Rewards,
		LinkedTaskID: in.LinkedTaskID,
	}
	items = append(items, item)
	if err := s.schedules.SaveDay(ctx, accountID, date, items); err != nil {
		return nil, err
	}
	return &item, nil
}

// ToggleResult tells the caller what a toggle did, or what it still needs.
// RequiresCheckIn means nothing was changed yet: the item is backed by an
// uncompleted task, and the caller must come back through CheckInScheduleItem
// with the check-in details.
type ToggleResult struct {
	Item            storage.ScheduleItem
	RequiresCheckIn bool
	Completed       *CompleteResult
}

// ToggleScheduleItem flips a day-plan entry. Items linked to a live task
// defer to the task lifecycle so rewards and schedule state move together.
func (s *Service) ToggleScheduleItem(ctx context.Context, accountID, date, itemID string) (*ToggleResult, error) {
	items, err := s.schedules.LoadDay(ctx, accountID, date)
	if err != nil {
		return nil, err
	}
	idx := indexOfItem(items, itemID)
	if idx < 0 {
		return nil, &NotFoundError{Kind: "schedule item", ID: itemID}
	}
	item := items[idx]

	if item.LinkedTaskID != "" {
		data, err := s.users.Load(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if data == nil {
			return nil, &NotFoundError{Kind: "account", ID: accountID}
		}
		// A reference to a deleted task is stale; the item falls back to
		// behaving like an unlinked entry.
		task := data.Task(item.LinkedTaskID)
		if task != nil && !task.Deleted {
			if !item.Completed && !task.Completed {
				return &ToggleResult{Item: item, RequiresCheckIn: true}, nil
			}
			if item.Completed && task.Completed {
				if _, err := s.UncompleteTask(ctx, accountID, task.ID); err != nil {
					return nil, err
				}
				// The task lifecycle synced its own scheduled date; the item
				// may live on a different day, so sync that one too.
				if err := s.syncLinkedItems(ctx, accountID, date, task.ID, false); err != nil {
					return nil, err
				}
				item.Completed = false
				return &ToggleResult{Item: item}, nil
			}
			// The pair is out of step (a dangling edit); fall through and
			// realign the item to the task below.
			item.Completed = task.Completed
			items[idx] = item
			if err := s.schedules.SaveDay(ctx, accountID, date, items); err != nil {
				return nil, err
			}
			return &ToggleResult{Item: item}, nil
		}
	}

	items[idx].Completed = !items[idx].Completed
	if err := s.schedules.SaveDay(ctx, accountID, date, items); err != nil {
		return nil, err
	}
	return &ToggleResult{Item: items[idx]}, nil
}

// CheckInScheduleItem completes the task behind a schedule item. The task
// lifecycle flips the item as part of its schedule sync, so both sides land
// in the completed state together.
func (s *Service) CheckInScheduleItem(ctx context.Context, accountID, date, itemID string, in CompleteInput) (*ToggleResult, error) {
	items, err := s.schedules.LoadDay(ctx, accountID, date)
	if err != nil {
		return nil, err
	}
	idx := indexOfItem(items, itemID)
	if idx < 0 {
		return nil, &NotFoundError{Kind: "schedule item", ID: itemID}
	}
	item := items[idx]
	if item.LinkedTaskID == "" {
		return nil, &TaskStateError{TaskID: itemID, Reason: "schedule item has no linked task"}
	}

	res, err := s.CompleteTask(ctx, accountID, item.LinkedTaskID, in)
	if err != nil {
		return nil, err
	}
	// Completion synced the task's own scheduled date; the item may sit on a
	// different day, so bring that day along as well.
	if err := s.syncLinkedItems(ctx, accountID, date, item.LinkedTaskID, true); err != nil {
		return nil, err
	}
	item.Completed = true
	return &ToggleResult{Item: item, Completed: res}, nil
}

// RemoveScheduleItem drops one entry from the day plan. The linked task, if
// any, stays in the history untouched.
func (s *Service) RemoveScheduleItem(ctx context.Context, accountID, date, itemID string) (bool, error) {
	items, err := s.schedules.LoadDay(ctx, accountID, date)
	if err != nil {
		return false, err
	}
	idx := indexOfItem(items, itemID)
	if idx < 0 {
		return false, nil
	}
	items = append(items[:idx], items[idx+1:]...)
	return true, s.schedules.SaveDay(ctx, accountID, date, items)
}

func indexOfItem(items []storage.ScheduleItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
