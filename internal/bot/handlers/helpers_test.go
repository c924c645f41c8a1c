package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot/models"
)

func TestDeliverToAllCountsFailuresWithoutAborting(t *testing.T) {
	t.Parallel()

	ids := []int64{1, 2, 3, 4, 5}
	var attempted []int64

	success, failed := deliverToAll(context.Background(), ids, func(_ context.Context, id int64) error {
		attempted = append(attempted, id)
		if id == 3 {
			return errors.New("delivery failed")
		}
		return nil
	})

	if success != 4 || failed != 1 {
		t.Errorf("expected tally success=4 failed=1, got success=%d failed=%d", success, failed)
	}
	if len(attempted) != len(ids) {
		t.Errorf("expected delivery attempted to all %d recipients, got %d", len(ids), len(attempted))
	}
	// Recipients after the failing one must still be attempted.
	if attempted[3] != 4 || attempted[4] != 5 {
		t.Errorf("recipients after the failure were not attempted in order: %v", attempted)
	}
}

func TestDeliverToAllEmpty(t *testing.T) {
	t.Parallel()

	success, failed := deliverToAll(context.Background(), nil, func(context.Context, int64) error {
		t.Fatal("send should not be called for an empty recipient list")
		return nil
	})
	if success != 0 || failed != 0 {
		t.Errorf("expected zero tally, got success=%d failed=%d", success, failed)
	}
}

func TestParseTargetID(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected int64
		wantErr  bool
	}{
		{name: "valid id", input: "/approve 12345", expected: 12345},
		{name: "valid with extra args", input: "/approve 42 now", expected: 42},
		{name: "missing argument", input: "/approve", wantErr: true},
		{name: "non-numeric argument", input: "/approve bob", wantErr: true},
		{name: "empty text", input: "", wantErr: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			id, err := parseTargetID(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error for %q, got id %d", tc.input, id)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTargetID(%q) failed: %v", tc.input, err)
			}
			if id != tc.expected {
				t.Errorf("parseTargetID(%q) = %d, want %d", tc.input, id, tc.expected)
			}
		})
	}
}

func TestCommandArgument(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple argument", input: "/broadcast hello", expected: "hello"},
		{name: "multi word argument", input: "/broadcast hello there everyone", expected: "hello there everyone"},
		{name: "bot mention suffix", input: "/broadcast@somebot hello", expected: "hello"},
		{name: "no argument", input: "/broadcast", expected: ""},
		{name: "trailing spaces only", input: "/broadcast   ", expected: ""},
		{name: "empty text", input: "", expected: ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := commandArgument(tc.input); got != tc.expected {
				t.Errorf("commandArgument(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestMembershipAllows(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		member   *models.ChatMember
		expected bool
	}{
		{name: "owner", member: &models.ChatMember{Type: models.ChatMemberTypeOwner}, expected: true},
		{name: "administrator", member: &models.ChatMember{Type: models.ChatMemberTypeAdministrator}, expected: true},
		{name: "member", member: &models.ChatMember{Type: models.ChatMemberTypeMember}, expected: true},
		{name: "restricted", member: &models.ChatMember{Type: models.ChatMemberTypeRestricted}, expected: false},
		{name: "left", member: &models.ChatMember{Type: models.ChatMemberTypeLeft}, expected: false},
		{name: "banned", member: &models.ChatMember{Type: models.ChatMemberTypeBanned}, expected: false},
		{name: "nil member", member: nil, expected: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := membershipAllows(tc.member); got != tc.expected {
				t.Errorf("membershipAllows(%s) = %v, want %v", tc.name, got, tc.expected)
			}
		})
	}
}

func TestIsFromAdmin(t *testing.T) {
	t.Parallel()

	const adminID int64 = 777

	makeUpdate := func(userID int64) *models.Update {
		return &models.Update{
			Message: &models.Message{
				From: &models.User{ID: userID},
				Chat: models.Chat{ID: 1},
			},
		}
	}

	testCases := []struct {
		name     string
		update   *models.Update
		expected bool
	}{
		{name: "admin sender", update: makeUpdate(adminID), expected: true},
		{name: "non-admin sender", update: makeUpdate(123), expected: false},
		{name: "nil message", update: &models.Update{}, expected: false},
		{name: "nil sender", update: &models.Update{Message: &models.Message{}}, expected: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := isFromAdmin(adminID, tc.update); got != tc.expected {
				t.Errorf("isFromAdmin(%s) = %v, want %v", tc.name, got, tc.expected)
			}
		})
	}
}
