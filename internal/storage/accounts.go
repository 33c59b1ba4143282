package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	accountsKey       = "accounts"
	currentAccountKey = "current_account"
	userDataPrefix    = "user_data/"

	// legacyUserDataKey is where the pre-multi-account single document
	// lived. MigrateLegacy wraps it into a real account.
	legacyUserDataKey = "user_data"
)

// AccountStore manages the global account list and the current-account
// pointer. Per-account documents are namespaced by account id.
type AccountStore struct {
	kv *KV
}

func NewAccountStore(kv *KV) *AccountStore {
	return &AccountStore{kv: kv}
}

// List returns all accounts in creation order.
func (s *AccountStore) List(ctx context.Context) ([]AccountInfo, error) {
	var accounts []AccountInfo
	if _, _, err := s.kv.GetJSON(ctx, accountsKey, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *AccountStore) saveList(ctx context.Context, accounts []AccountInfo) error {
	return s.kv.ForceJSON(ctx, accountsKey, accounts)
}

// CurrentID returns the current account id, or "" when none is set or the
// pointer references an account that no longer exists.
func (s *AccountStore) CurrentID(ctx context.Context) (string, error) {
	raw, _, ok, err := s.kv.Get(ctx, currentAccountKey)
	if err != nil || !ok {
		return "", err
	}
	accounts, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	for _, a := range accounts {
		if a.ID == raw {
			return raw, nil
		}
	}
	// Dangling pointer: fall back to the unauthenticated state.
	return "", nil
}

// setCurrent updates the pointer and bumps the account's LastActiveAt.
func (s *AccountStore) setCurrent(ctx context.Context, id string) error {
	if err := s.kv.Force(ctx, currentAccountKey, id); err != nil {
		return err
	}
	accounts, err := s.List(ctx)
	if err != nil {
		return err
	}
	for i := range accounts {
		if accounts[i].ID == id {
			accounts[i].LastActiveAt = time.Now()
			return s.saveList(ctx, accounts)
		}
	}
	return nil
}

// Create appends a new account, makes it current, and seeds its user data
// document with defaults.
func (s *AccountStore) Create(ctx context.Context, name string) (AccountInfo, error) {
	now := time.Now()
	account := AccountInfo{
		ID:           uuid.NewString(),
		Name:         name,
		CreatedAt:    now,
		LastActiveAt: now,
	}

	accounts, err := s.List(ctx)
	if err != nil {
		return AccountInfo{}, err
	}
	accounts = append(accounts, account)
	if err := s.saveList(ctx, accounts); err != nil {
		return AccountInfo{}, err
	}
	if err := s.setCurrent(ctx, account.ID); err != nil {
		return AccountInfo{}, err
	}
	// A fresh id means a fresh key; the create-time check-and-set catches
	// the impossible collision instead of silently overwriting.
	if err := s.kv.PutJSON(ctx, userDataPrefix+account.ID, DefaultUserData(name, now), 0); err != nil {
		return AccountInfo{}, err
	}
	return account, nil
}

// Switch makes id the current account. Returns false when id is not in the
// account list.
func (s *AccountStore) Switch(ctx context.Context, id string) (bool, error) {
	accounts, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	found := false
	for _, a := range accounts {
		if a.ID == id {
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}
	if err := s.setCurrent(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the account, its user data document, and every schedule
// day it stored. When the deleted account was current, switches to the first
// remaining account, or clears the pointer if none remain. Returns false
// when id is not in the list.
func (s *AccountStore) Delete(ctx context.Context, id string) (bool, error) {
	accounts, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	remaining := accounts[:0:0]
	for _, a := range accounts {
		if a.ID != id {
			remaining = append(remaining, a)
		}
	}
	if len(remaining) == len(accounts) {
		return false, nil
	}
	if err := s.saveList(ctx, remaining); err != nil {
		return false, err
	}
	if err := s.kv.Delete(ctx, userDataPrefix+id); err != nil {
		return false, err
	}
	days, err := s.kv.ListKeys(ctx, schedulePrefix+id+"/")
	if err != nil {
		return false, err
	}
	for _, key := range days {
		if err := s.kv.Delete(ctx, key); err != nil {
			return false, err
		}
	}

	cur, _, ok, err := s.kv.Get(ctx, currentAccountKey)
	if err != nil {
		return false, err
	}
	if ok && cur == id {
		if len(remaining) > 0 {
			if err := s.setCurrent(ctx, remaining[0].ID); err != nil {
				return false, err
			}
		} else if err := s.kv.Delete(ctx, currentAccountKey); err != nil {
			return false, err
		}
	}
	return true, nil
}

// MigrateLegacy wraps a pre-multi-account single document into a new
// account, preserving its content verbatim, and removes the legacy key.
// Returns nil when there is nothing to migrate; safe to call on every start.
func (s *AccountStore) MigrateLegacy(ctx context.Context) (*AccountInfo, error) {
	var legacy UserData
	_, ok, err := s.kv.GetJSON(ctx, legacyUserDataKey, &legacy)
	if err != nil || !ok {
		return nil, err
	}

	name := legacy.Profile.Name
	if name == "" {
		name = "user"
	}
	account, err := s.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	// Replace the seeded defaults with the legacy content as-is.
	if err := s.kv.ForceJSON(ctx, userDataPrefix+account.ID, &legacy); err != nil {
		return nil, err
	}
	if err := s.kv.Delete(ctx, legacyUserDataKey); err != nil {
		return nil, err
	}
	return &account, nil
}
