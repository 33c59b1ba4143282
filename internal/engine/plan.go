package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AlexZhen345/LifeOS/internal/storage"
)

// PlanTask is one task in an imported plan payload. Rewards arrive as an
// open attribute map; unknown keys are dropped on fold.
type PlanTask struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Date        string         `json:"date"`
	Duration    int            `json:"duration"`
	Category    string         `json:"category"`
	Rewards     map[string]int `json:"rewards"`
}

// PlanItem is one schedule entry in an imported plan payload. LinkedTask
// names a task by title; linking is resolved on import.
type PlanItem struct {
	Time        string         `json:"time"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Duration    int            `json:"duration"`
	Type        string         `json:"type"`
	Rewards     map[string]int `json:"rewards"`
	LinkedTask  string         `json:"linkedTask"`
}

// PlanPayload is the JSON shape an external planning assistant hands back.
type PlanPayload struct {
	Tasks    []PlanTask `json:"tasks"`
	Schedule []PlanItem `json:"schedule"`
}

// ParsePlanPayload decodes a plan document. It tolerates a payload wrapped
// in a markdown code fence, which assistants routinely emit.
func ParsePlanPayload(raw []byte) (*PlanPayload, error) {
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if i := strings.LastIndex(text, "```"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
	}

	var payload PlanPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("parse plan payload: %w", err)
	}
	if len(payload.Tasks) == 0 && len(payload.Schedule) == 0 {
		return nil, fmt.Errorf("plan payload contains no tasks or schedule items")
	}
	return &payload, nil
}

// ImportReport summarizes what an import created.
type ImportReport struct {
	Tasks    []storage.TaskRecord
	Schedule []storage.ScheduleItem
	Date     string
}

// ImportPlan folds a parsed plan into the account: tasks are appended to the
// history, schedule entries are added to the target day, and task-typed
// entries are linked to tasks by title. Dates on individual tasks override
// the plan date.
func (s *Service) ImportPlan(ctx context.Context, accountID, date string, payload *PlanPayload) (*ImportReport, error) {
	if date == "" {
		date = Today()
	}

	inputs := make([]CreateTaskInput, 0, len(payload.Tasks))
	for _, pt := range payload.Tasks {
		taskDate := pt.Date
		if taskDate == "" {
			taskDate = date
		}
		inputs = append(inputs, CreateTaskInput{
			Title:       pt.Title,
			Description: pt.Description,
			Date:        taskDate,
			Duration:    pt.Duration,
			Category:    pt.Category,
			Rewards:     RewardsFromMap(pt.Rewards),
		})
	}

	var created []storage.TaskRecord
	if len(inputs) > 0 {
		var err error
		created, err = s.CreateTasks(ctx, accountID, inputs)
		if err != nil {
			return nil, err
		}
	}

	// Link schedule entries against the freshly created tasks first, then
	// against any still-open task in the history.
	var open []storage.TaskRecord
	if len(payload.Schedule) > 0 {
		var err error
		open, err = s.ActiveTasks(ctx, accountID, "")
		if err != nil {
			return nil, err
		}
	}

	report := &ImportReport{Tasks: created, Date: date}
	for _, pi := range payload.Schedule {
		typ := storage.ScheduleItemType(strings.ToLower(strings.TrimSpace(pi.Type)))
		if !typ.IsValid() {
			typ = storage.ScheduleTask
		}

		linked := ""
		ref := pi.LinkedTask
		if ref == "" && typ == storage.ScheduleTask {
			ref = pi.Title
		}
		if ref != "" {
			if t := matchTaskByTitle(created, ref); t != nil {
				linked = t.ID
			} else if t := matchTaskByTitle(open, ref); t != nil {
				linked = t.ID
			}
		}

		item, err := s.AddScheduleItem(ctx, accountID, date, ScheduleItemInput{
			Time:         pi.Time,
			Title:        pi.Title,
			Description:  pi.Description,
			Duration:     pi.Duration,
			Type:         typ,
			Rewards:      RewardsFromMap(pi.Rewards),
			LinkedTaskID: linked,
		})
		if err != nil {
			return nil, err
		}
		report.Schedule = append(report.Schedule, *item)
	}
	return report, nil
}

// matchTaskByTitle prefers an exact title match, then falls back to
// containment either way round.
func matchTaskByTitle(tasks []storage.TaskRecord, ref string) *storage.TaskRecord {
	want := strings.ToLower(strings.TrimSpace(ref))
	if want == "" {
		return nil
	}
	for i := range tasks {
		if strings.ToLower(strings.TrimSpace(tasks[i].Title)) == want {
			return &tasks[i]
		}
	}
	for i := range tasks {
		title := strings.ToLower(strings.TrimSpace(tasks[i].Title))
		if title == "" {
			continue
		}
		if strings.Contains(title, want) || strings.Contains(want, title) {
			return &tasks[i]
		}
	}
	return nil
}
