package storage

import "context"

const schedulePrefix = "schedule/"

// ScheduleRepo stores one schedule-item list per (account, calendar date).
type ScheduleRepo struct {
	kv *KV
}

func NewScheduleRepo(kv *KV) *ScheduleRepo {
	return &ScheduleRepo{kv: kv}
}

func scheduleKey(accountID, date string) string {
	return schedulePrefix + accountID + "/" + date
}

// LoadDay returns the schedule for the given local date. A day with no
// stored schedule yields an empty list, not an error.
func (r *ScheduleRepo) LoadDay(ctx context.Context, accountID, date string) ([]ScheduleItem, error) {
	var items []ScheduleItem
	if _, _, err := r.kv.GetJSON(ctx, scheduleKey(accountID, date), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveDay replaces the day's schedule in full.
func (r *ScheduleRepo) SaveDay(ctx context.Context, accountID, date string, items []ScheduleItem) error {
	return r.kv.ForceJSON(ctx, scheduleKey(accountID, date), items)
}

// ClearDay removes the day's schedule entirely.
func (r *ScheduleRepo) ClearDay(ctx context.Context, accountID, date string) error {
	return r.kv.Delete(ctx, scheduleKey(accountID, date))
}
