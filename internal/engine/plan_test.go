package engine

import (
	"context"
	"testing"

	"github.com/AlexZhen345/LifeOS/internal/storage"
)

func TestParsePlanPayloadStripsCodeFence(t *testing.T) {
	raw := []byte("```json\n{\"tasks\":[{\"title\":\"Review notes\",\"duration\":25,\"rewards\":{\"INT\":3,\"MANA\":9}}]}\n```\n")
	payload, err := ParsePlanPayload(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(payload.Tasks) != 1 || payload.Tasks[0].Title != "Review notes" {
		t.Fatalf("payload: %+v", payload)
	}
	r := RewardsFromMap(payload.Tasks[0].Rewards)
	if r.INT != 3 || r.Total() != 3 {
		t.Fatalf("unknown reward key not dropped: %+v", r)
	}
}

func TestParsePlanPayloadRejectsEmpty(t *testing.T) {
	if _, err := ParsePlanPayload([]byte(`{"tasks":[],"schedule":[]}`)); err == nil {
		t.Fatal("empty payload should error")
	}
	if _, err := ParsePlanPayload([]byte("not json")); err == nil {
		t.Fatal("malformed payload should error")
	}
}

func TestImportPlanLinksByTitle(t *testing.T) {
	svc, id := newTestService(t)
	ctx := context.Background()

	payload := &PlanPayload{
		Tasks: []PlanTask{
			{Title: "Morning run", Duration: 30, Rewards: map[string]int{"VIT": 4}},
			{Title: "Study Go", Duration: 60, Rewards: map[string]int{"INT": 5}},
		},
		Schedule: []PlanItem{
			{Time: "07:00", Title: "Morning Run", Type: "task"},
			{Time: "09:00", Title: "Study Go", Type: "task", LinkedTask: "study go"},
			{Time: "12:30", Title: "Lunch", Type: "meal"},
		},
	}
	report, err := svc.ImportPlan(ctx, id, "2026-09-01", payload)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(report.Tasks) != 2 || len(report.Schedule) != 3 {
		t.Fatalf("report: %d tasks, %d items", len(report.Tasks), len(report.Schedule))
	}

	byTitle := map[string]storage.TaskRecord{}
	for _, task := range report.Tasks {
		byTitle[task.Title] = task
	}
	for _, item := range report.Schedule {
		switch item.Title {
		case "Morning Run":
			if item.LinkedTaskID != byTitle["Morning run"].ID {
				t.Fatalf("case-insensitive title link failed: %+v", item)
			}
		case "Study Go":
			if item.LinkedTaskID != byTitle["Study Go"].ID {
				t.Fatalf("explicit link failed: %+v", item)
			}
		case "Lunch":
			if item.LinkedTaskID != "" || item.Type != storage.ScheduleMeal {
				t.Fatalf("meal should stay unlinked: %+v", item)
			}
		}
	}

	// Completing through the imported schedule rewards the linked task.
	run := report.Schedule[0]
	res, err := svc.CheckInScheduleItem(ctx, id, "2026-09-01", run.ID, CompleteInput{})
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if res.Completed.Rewards.VIT != 4 {
		t.Fatalf("rewards: %+v", res.Completed.Rewards)
	}
}

func TestMatchTaskByTitlePrefersExactThenContainment(t *testing.T) {
	tasks := []storage.TaskRecord{
		{ID: "a", Title: "Read"},
		{ID: "b", Title: "Read chapter 3"},
		{ID: "c", Title: "Stretch"},
	}
	if got := matchTaskByTitle(tasks, "read"); got == nil || got.ID != "a" {
		t.Fatalf("exact match: %+v", got)
	}
	if got := matchTaskByTitle(tasks, "chapter 3"); got == nil || got.ID != "b" {
		t.Fatalf("containment match: %+v", got)
	}
	if got := matchTaskByTitle(tasks, "morning stretch routine"); got == nil || got.ID != "c" {
		t.Fatalf("reverse containment: %+v", got)
	}
	if got := matchTaskByTitle(tasks, "swim"); got != nil {
		t.Fatalf("unrelated ref matched %+v", got)
	}
	if got := matchTaskByTitle(tasks, "  "); got != nil {
		t.Fatalf("blank ref matched %+v", got)
	}
}
