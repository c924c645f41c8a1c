package database_test

import (
	"context"
	"slices"
	"testing"

	"github.com/edfarias/picrelay/internal/database"
)

// newTestStore opens an in-memory SQLite database with migrations applied.
func newTestStore(t *testing.T) database.Store {
	t.Helper()

	db, err := database.NewDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	return database.NewStore(db, nil)
}

func TestNewUsersStartUnapproved(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.UpsertUser(ctx, 42, "alice"); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}

	approved, err := store.IsApproved(ctx, 42)
	if err != nil {
		t.Fatalf("IsApproved failed: %v", err)
	}
	if approved {
		t.Error("new user should start unapproved")
	}
}

func TestUpsertUserIdempotent(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.UpsertUser(ctx, 42, "alice"); err != nil {
		t.Fatalf("first UpsertUser failed: %v", err)
	}
	if err := store.UpsertUser(ctx, 42, "alice_renamed"); err != nil {
		t.Fatalf("second UpsertUser failed: %v", err)
	}

	user, err := store.GetUser(ctx, 42)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user == nil {
		t.Fatal("expected exactly one record, got none")
	}
	if user.Username != "alice_renamed" {
		t.Errorf("expected latest username %q, got %q", "alice_renamed", user.Username)
	}
}

func TestUpsertPreservesApproval(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.UpsertUser(ctx, 42, "alice"); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}
	if err := store.ApproveUser(ctx, 42); err != nil {
		t.Fatalf("ApproveUser failed: %v", err)
	}

	// Re-registration (e.g. the user runs /start again) must not revoke access.
	if err := store.UpsertUser(ctx, 42, "alice_new"); err != nil {
		t.Fatalf("re-UpsertUser failed: %v", err)
	}

	approved, err := store.IsApproved(ctx, 42)
	if err != nil {
		t.Fatalf("IsApproved failed: %v", err)
	}
	if !approved {
		t.Error("approval should survive profile refresh")
	}
}

func TestApproveUser(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.UpsertUser(ctx, 42, "alice"); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}
	if err := store.ApproveUser(ctx, 42); err != nil {
		t.Fatalf("ApproveUser failed: %v", err)
	}

	approved, err := store.IsApproved(ctx, 42)
	if err != nil {
		t.Fatalf("IsApproved failed: %v", err)
	}
	if !approved {
		t.Error("user should be approved")
	}

	ids, err := store.ListApprovedUserIDs(ctx)
	if err != nil {
		t.Fatalf("ListApprovedUserIDs failed: %v", err)
	}
	if !slices.Contains(ids, int64(42)) {
		t.Errorf("approved list %v should contain user 42", ids)
	}
}

func TestApproveUnknownUserCreatesRecord(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.ApproveUser(ctx, 99); err != nil {
		t.Fatalf("ApproveUser on unseen id failed: %v", err)
	}

	approved, err := store.IsApproved(ctx, 99)
	if err != nil {
		t.Fatalf("IsApproved failed: %v", err)
	}
	if !approved {
		t.Error("approval of an unseen id should not silently no-op")
	}
}

func TestIsApprovedMissingUser(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	approved, err := store.IsApproved(ctx, 12345)
	if err != nil {
		t.Fatalf("IsApproved on missing user should not error, got: %v", err)
	}
	if approved {
		t.Error("missing user should not be approved")
	}
}

func TestGetUserMissing(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.GetUser(ctx, 12345)
	if err != nil {
		t.Fatalf("GetUser on missing user should not error, got: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil for missing user, got %+v", user)
	}
}

func TestListApprovedUserIDs(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []int64{1, 2, 3} {
		if err := store.UpsertUser(ctx, id, "user"); err != nil {
			t.Fatalf("UpsertUser failed: %v", err)
		}
	}
	if err := store.ApproveUser(ctx, 1); err != nil {
		t.Fatalf("ApproveUser failed: %v", err)
	}
	if err := store.ApproveUser(ctx, 3); err != nil {
		t.Fatalf("ApproveUser failed: %v", err)
	}

	ids, err := store.ListApprovedUserIDs(ctx)
	if err != nil {
		t.Fatalf("ListApprovedUserIDs failed: %v", err)
	}

	slices.Sort(ids)
	want := []int64{1, 3}
	if !slices.Equal(ids, want) {
		t.Errorf("expected approved ids %v, got %v", want, ids)
	}
}

func TestRunMaintenance(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	if err := store.RunMaintenance(context.Background()); err != nil {
		t.Errorf("RunMaintenance failed: %v", err)
	}
}
