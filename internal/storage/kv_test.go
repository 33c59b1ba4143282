package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestKV(t *testing.T) *KV {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewKV(db)
}

func TestKVCheckAndSet(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	if err := kv.Put(ctx, "doc", `{"n":1}`, 0); err != nil {
		t.Fatalf("create: %v", err)
	}
	raw, version, ok, err := kv.Get(ctx, "doc")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if raw != `{"n":1}` || version != 1 {
		t.Fatalf("got %q v%d", raw, version)
	}

	// Creating over an existing key conflicts.
	if err := kv.Put(ctx, "doc", `{"n":9}`, 0); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("create-over-existing: %v", err)
	}

	// A write against the read version succeeds and bumps the version.
	if err := kv.Put(ctx, "doc", `{"n":2}`, version); err != nil {
		t.Fatalf("update: %v", err)
	}
	// A second write against the stale version is a lost update; reject it.
	if err := kv.Put(ctx, "doc", `{"n":3}`, version); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("stale update: %v", err)
	}

	raw, version, _, _ = kv.Get(ctx, "doc")
	if raw != `{"n":2}` || version != 2 {
		t.Fatalf("after conflict: %q v%d", raw, version)
	}
}

func TestKVForceIgnoresVersion(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	if err := kv.Force(ctx, "doc", "a"); err != nil {
		t.Fatalf("force create: %v", err)
	}
	if err := kv.Force(ctx, "doc", "b"); err != nil {
		t.Fatalf("force update: %v", err)
	}
	raw, version, _, _ := kv.Get(ctx, "doc")
	if raw != "b" || version != 2 {
		t.Fatalf("got %q v%d", raw, version)
	}
}

func TestKVMalformedDocumentTreatedAsAbsent(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	if err := kv.Force(ctx, "doc", "{not json"); err != nil {
		t.Fatalf("force: %v", err)
	}
	var dst map[string]int
	_, ok, err := kv.GetJSON(ctx, "doc", &dst)
	if err != nil {
		t.Fatalf("GetJSON should not error on malformed data: %v", err)
	}
	if ok {
		t.Fatal("malformed document reported as present")
	}
}

func TestKVListKeysPrefix(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	for _, k := range []string{"schedule/a/2026-01-02", "schedule/a/2026-01-01", "schedule/b/2026-01-01", "accounts"} {
		if err := kv.Force(ctx, k, "{}"); err != nil {
			t.Fatalf("force %s: %v", k, err)
		}
	}
	keys, err := kv.ListKeys(ctx, "schedule/a/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 2 || keys[0] != "schedule/a/2026-01-01" || keys[1] != "schedule/a/2026-01-02" {
		t.Fatalf("keys: %v", keys)
	}
}
