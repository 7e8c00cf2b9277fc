package services

import (
	"context"
	"errors"
	"testing"

	"cuebook-api/packages/core/membership"
	"cuebook-api/packages/core/models"
	"cuebook-api/packages/core/store"
)

func setupGroup(t *testing.T) (*GroupService, *MembershipService, *memoryMembers, string) {
	t.Helper()
	groups, members := newLedger()
	groupSvc := NewGroupService(groups, members)
	group, err := groupSvc.CreateGroup(context.Background(), "owner", models.CreateGroupRequest{Name: "Flat 3B"})
	if err != nil {
		t.Fatal(err)
	}
	return groupSvc, NewMembershipService(members, groups), members, group.ID
}

func TestCreateGroupMakesOwnerActive(t *testing.T) {
	groupSvc, _, members, groupID := setupGroup(t)

	if groupID == "" {
		t.Fatal("group has no id")
	}
	status, _ := members.GetStatus(context.Background(), "owner", groupID)
	if status != membership.StatusActive {
		t.Errorf("owner status = %s", status)
	}

	list, err := groupSvc.GetMembers(context.Background(), groupID)
	if err != nil || len(list) != 1 || list[0].UserID != "owner" {
		t.Errorf("members = %+v, %v", list, err)
	}
}

func TestRequestAndAccept(t *testing.T) {
	_, svc, members, groupID := setupGroup(t)
	ctx := context.Background()

	res, err := svc.Apply(ctx, "ann", "ann", groupID, membership.ActionRequest)
	if err != nil {
		t.Fatal(err)
	}
	if res.PreviousStatus != "idle" || res.Status != "requesting" {
		t.Errorf("request = %+v", res)
	}

	if _, err := svc.Apply(ctx, "ann", "ann", groupID, membership.ActionAcceptRequest); !errors.Is(err, ErrForbidden) {
		t.Errorf("self accept err = %v, want ErrForbidden", err)
	}

	res, err = svc.Apply(ctx, "owner", "ann", groupID, membership.ActionAcceptRequest)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != "active" {
		t.Errorf("accept = %+v", res)
	}
	if status, _ := members.GetStatus(ctx, "ann", groupID); status != membership.StatusActive {
		t.Errorf("stored status = %s", status)
	}
}

func TestSelfActionsNeedTheUser(t *testing.T) {
	_, svc, _, groupID := setupGroup(t)

	for _, action := range []membership.Action{membership.ActionRequest, membership.ActionAcceptInvite, membership.ActionLeave} {
		if _, err := svc.Apply(context.Background(), "owner", "bob", groupID, action); !errors.Is(err, ErrForbidden) {
			t.Errorf("%s on behalf of bob: err = %v, want ErrForbidden", action, err)
		}
	}
}

func TestInviteByNonMemberIsForbidden(t *testing.T) {
	_, svc, _, groupID := setupGroup(t)

	if _, err := svc.Apply(context.Background(), "stranger", "bob", groupID, membership.ActionInvite); !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestRejectedTransitionLeavesStatus(t *testing.T) {
	_, svc, members, groupID := setupGroup(t)
	ctx := context.Background()

	_, err := svc.Apply(ctx, "owner", "bob", groupID, membership.ActionRemove)
	var te *membership.TransitionError
	if !errors.As(err, &te) || !errors.Is(err, membership.ErrRejected) {
		t.Fatalf("err = %v, want a rejected transition", err)
	}
	if te.Reason != "user is not a member of this group" {
		t.Errorf("reason = %q", te.Reason)
	}
	if status, _ := members.GetStatus(ctx, "bob", groupID); status != membership.StatusIdle {
		t.Errorf("status = %s after rejection", status)
	}
}

func TestConcurrentUpdateIsReported(t *testing.T) {
	_, svc, members, groupID := setupGroup(t)
	ctx := context.Background()

	members.beforeSet = func() {
		members.beforeSet = nil
		members.set("bob", groupID, membership.StatusInviting)
	}

	_, err := svc.Apply(ctx, "bob", "bob", groupID, membership.ActionRequest)
	if !errors.Is(err, store.ErrConcurrentUpdate) {
		t.Fatalf("err = %v, want ErrConcurrentUpdate", err)
	}
	if status, _ := members.GetStatus(ctx, "bob", groupID); status != membership.StatusInviting {
		t.Errorf("status = %s, the concurrent write must win", status)
	}
}

func TestUnknownGroup(t *testing.T) {
	_, svc, _, _ := setupGroup(t)

	if _, err := svc.Apply(context.Background(), "ann", "ann", "missing", membership.ActionRequest); !errors.Is(err, store.ErrGroupNotFound) {
		t.Errorf("err = %v, want ErrGroupNotFound", err)
	}
}
