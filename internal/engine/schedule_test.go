package engine

import (
	"context"
	"testing"

	"github.com/AlexZhen345/LifeOS/internal/storage"
)

func TestSyncLinkedTaskIdempotent(t *testing.T) {
	items := []storage.ScheduleItem{
		{ID: "a", Title: "one", Type: storage.ScheduleTask, LinkedTaskID: "t1"},
		{ID: "b", Title: "two", Type: storage.ScheduleTask, LinkedTaskID: "t2"},
		{ID: "c", Title: "lunch", Type: storage.ScheduleMeal},
	}

	items, changed := SyncLinkedTask(items, "t1", true)
	if !changed {
		t.Fatal("first sync should report a change")
	}
	if !items[0].Completed || items[1].Completed || items[2].Completed {
		t.Fatalf("unexpected flips: %+v", items)
	}

	items, changed = SyncLinkedTask(items, "t1", true)
	if changed {
		t.Fatal("second identical sync should be a no-op")
	}
	if !items[0].Completed {
		t.Fatal("state drifted on re-sync")
	}
}

func TestToggleScheduleItemRequiresCheckIn(t *testing.T) {
	svc, id := newTestService(t)
	ctx := context.Background()
	day := Today()

	task, err := svc.CreateTask(ctx, id, CreateTaskInput{Title: "write report", Rewards: storage.Rewards{INT: 2}})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	item, err := svc.AddScheduleItem(ctx, id, day, ScheduleItemInput{
		Time:         "09:00",
		Title:        "write report",
		Type:         storage.ScheduleTask,
		LinkedTaskID: task.ID,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	// First toggle only asks for the check-in; nothing moves yet.
	res, err := svc.ToggleScheduleItem(ctx, id, day, item.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !res.RequiresCheckIn {
		t.Fatal("expected RequiresCheckIn for a live linked task")
	}
	items, err := svc.ScheduleRepo().LoadDay(ctx, id, day)
	if err != nil {
		t.Fatalf("load day: %v", err)
	}
	if items[0].Completed {
		t.Fatal("item flipped before the check-in resolved")
	}

	// Checking in completes the task and the item together.
	res, err = svc.CheckInScheduleItem(ctx, id, day, item.ID, CompleteInput{})
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if res.Completed == nil || !res.Item.Completed {
		t.Fatalf("check-in result: %+v", res)
	}
	items, _ = svc.ScheduleRepo().LoadDay(ctx, id, day)
	if !items[0].Completed {
		t.Fatal("item not completed after check-in")
	}
	data := mustLoad(t, svc, id)
	if got := data.Task(task.ID); got == nil || !got.Completed {
		t.Fatal("linked task not completed")
	}

	// Toggling back reverses the task through the engine.
	res, err = svc.ToggleScheduleItem(ctx, id, day, item.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if res.RequiresCheckIn || res.Item.Completed {
		t.Fatalf("toggle back result: %+v", res)
	}
	data = mustLoad(t, svc, id)
	if got := data.Task(task.ID); got.Completed {
		t.Fatal("linked task still completed after reversal")
	}
	if data.Attributes.INT != 0 {
		t.Fatalf("INT=%d, want 0 after reversal", data.Attributes.INT)
	}
}

func TestToggleUnlinkedItem(t *testing.T) {
	svc, id := newTestService(t)
	ctx := context.Background()
	day := Today()

	item, err := svc.AddScheduleItem(ctx, id, day, ScheduleItemInput{Time: "12:30", Title: "lunch", Type: storage.ScheduleMeal})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	res, err := svc.ToggleScheduleItem(ctx, id, day, item.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if res.RequiresCheckIn || !res.Item.Completed {
		t.Fatalf("meal toggle should flip directly: %+v", res)
	}
}

func TestDeleteTaskLeavesItemWithStaleReference(t *testing.T) {
	svc, id := newTestService(t)
	ctx := context.Background()
	day := Today()

	task, err := svc.CreateTask(ctx, id, CreateTaskInput{Title: "obsolete", Rewards: storage.Rewards{INT: 5}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	item, err := svc.AddScheduleItem(ctx, id, day, ScheduleItemInput{Title: "obsolete", Type: storage.ScheduleTask, LinkedTaskID: task.ID})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if err := svc.DeleteTask(ctx, id, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	items, err := svc.ScheduleRepo().LoadDay(ctx, id, day)
	if err != nil {
		t.Fatalf("load day: %v", err)
	}
	if len(items) != 1 || items[0].LinkedTaskID != task.ID {
		t.Fatalf("item should survive with its reference intact: %+v", items)
	}

	// The stale item now behaves like an unlinked entry: it flips directly,
	// never asks for a check-in, and moves no rewards.
	res, err := svc.ToggleScheduleItem(ctx, id, day, item.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if res.RequiresCheckIn || !res.Item.Completed {
		t.Fatalf("stale item toggle: %+v", res)
	}
	data := mustLoad(t, svc, id)
	if data.Attributes.INT != 0 {
		t.Fatalf("INT=%d, toggling a stale item must not award rewards", data.Attributes.INT)
	}

	// Linking a new item against the deleted task is refused.
	if _, err := svc.AddScheduleItem(ctx, id, day, ScheduleItemInput{Title: "again", Type: storage.ScheduleTask, LinkedTaskID: task.ID}); err == nil {
		t.Fatal("linked a schedule item to a deleted task")
	}
}

func TestCheckInSyncsItemOnDifferentDayThanTask(t *testing.T) {
	svc, id := newTestService(t)
	ctx := context.Background()
	day := Today()

	// The task was scheduled in the past; the catch-up slot sits on today's
	// plan. Both sides must land in the same state.
	task, err := svc.CreateTask(ctx, id, CreateTaskInput{
		Title:   "overdue reading",
		Date:    "2026-08-20",
		Rewards: storage.Rewards{INT: 3},
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	item, err := svc.AddScheduleItem(ctx, id, day, ScheduleItemInput{
		Time:         "10:00",
		Title:        "overdue reading",
		Type:         storage.ScheduleTask,
		LinkedTaskID: task.ID,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	res, err := svc.CheckInScheduleItem(ctx, id, day, item.ID, CompleteInput{})
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if res.Completed == nil || !res.Item.Completed {
		t.Fatalf("check-in result: %+v", res)
	}

	items, err := svc.ScheduleRepo().LoadDay(ctx, id, day)
	if err != nil {
		t.Fatalf("load day: %v", err)
	}
	if len(items) != 1 || !items[0].Completed {
		t.Fatalf("persisted item out of step with the task: %+v", items)
	}
	data := mustLoad(t, svc, id)
	if got := data.Task(task.ID); got == nil || !got.Completed {
		t.Fatalf("task not completed: %+v", got)
	}

	// Toggling back reverses the task and reopens today's item too.
	if _, err := svc.ToggleScheduleItem(ctx, id, day, item.ID); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	items, err = svc.ScheduleRepo().LoadDay(ctx, id, day)
	if err != nil {
		t.Fatalf("load day: %v", err)
	}
	if items[0].Completed {
		t.Fatalf("item stuck completed after the reversal: %+v", items[0])
	}
	data = mustLoad(t, svc, id)
	if got := data.Task(task.ID); got.Completed {
		t.Fatal("task not reversed")
	}
	if data.Attributes.INT != 0 {
		t.Fatalf("INT=%d, want 0 after the round trip", data.Attributes.INT)
	}
}
