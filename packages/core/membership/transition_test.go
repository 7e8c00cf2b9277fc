package membership

import (
	"errors"
	"testing"
)

var allStatuses = []Status{StatusIdle, StatusRequesting, StatusInviting, StatusActive}

var allActions = []Action{
	ActionRequest, ActionAcceptRequest, ActionRejectRequest,
	ActionInvite, ActionAcceptInvite, ActionRejectInvite,
	ActionLeave, ActionRemove,
}

type key struct {
	status Status
	action Action
}

var legal = map[key]Status{
	{StatusIdle, ActionRequest}:             StatusRequesting,
	{StatusIdle, ActionInvite}:              StatusInviting,
	{StatusActive, ActionLeave}:             StatusIdle,
	{StatusActive, ActionRemove}:            StatusIdle,
	{StatusRequesting, ActionAcceptRequest}: StatusActive,
	{StatusRequesting, ActionRejectRequest}: StatusIdle,
	{StatusInviting, ActionAcceptInvite}:    StatusActive,
	{StatusInviting, ActionRejectInvite}:    StatusIdle,
}

func TestTransitionCrossProduct(t *testing.T) {
	for _, s := range allStatuses {
		for _, a := range allActions {
			got, err := Transition(s, a)
			want, ok := legal[key{s, a}]

			if ok {
				if err != nil {
					t.Errorf("%s --%s--> unexpected error %v", s, a, err)
					continue
				}
				if got != want {
					t.Errorf("%s --%s--> got %s, want %s", s, a, got, want)
				}
				continue
			}

			var te *TransitionError
			if !errors.As(err, &te) {
				t.Errorf("%s --%s--> expected *TransitionError, got %v", s, a, err)
				continue
			}
			if te.Reason == "" {
				t.Errorf("%s --%s--> empty rejection reason", s, a)
			}
			if !errors.Is(err, ErrRejected) {
				t.Errorf("%s --%s--> error does not match ErrRejected", s, a)
			}
			if got != s {
				t.Errorf("%s --%s--> rejected transition changed status to %s", s, a, got)
			}
		}
	}
}

func TestTransitionReasons(t *testing.T) {
	cases := []struct {
		status Status
		action Action
		reason string
	}{
		{StatusIdle, ActionAcceptRequest, "user did not request to join this group"},
		{StatusIdle, ActionRejectInvite, "user has no invite to this group"},
		{StatusIdle, ActionLeave, "user is not a member of this group"},
		{StatusActive, ActionInvite, "user is already a member of this group"},
		{StatusRequesting, ActionRequest, "join request was already submitted"},
		{StatusRequesting, ActionAcceptInvite, "user already requested to join this group"},
		{StatusInviting, ActionInvite, "user was already invited to this group"},
		{StatusInviting, ActionRemove, "user is not a member of this group"},
	}

	for _, tc := range cases {
		_, err := Transition(tc.status, tc.action)
		var te *TransitionError
		if !errors.As(err, &te) {
			t.Fatalf("%s --%s--> expected rejection", tc.status, tc.action)
		}
		if te.Reason != tc.reason {
			t.Errorf("%s --%s--> reason %q, want %q", tc.status, tc.action, te.Reason, tc.reason)
		}
	}
}

func TestRequestAcceptLeaveRoundTrip(t *testing.T) {
	s := StatusIdle
	for _, a := range []Action{ActionRequest, ActionAcceptRequest, ActionLeave} {
		next, err := Transition(s, a)
		if err != nil {
			t.Fatalf("%s --%s--> %v", s, a, err)
		}
		s = next
	}
	if s != StatusIdle {
		t.Fatalf("round trip ended in %s", s)
	}
}

func TestInviteAcceptRemoveRoundTrip(t *testing.T) {
	s := StatusIdle
	for _, a := range []Action{ActionInvite, ActionAcceptInvite, ActionRemove} {
		next, err := Transition(s, a)
		if err != nil {
			t.Fatalf("%s --%s--> %v", s, a, err)
		}
		s = next
	}
	if s != StatusIdle {
		t.Fatalf("round trip ended in %s", s)
	}
}

func TestTransitionPanicsOnUnknownValues(t *testing.T) {
	assertPanics := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	assertPanics("unknown action", func() { Transition(StatusIdle, Action("JOIN")) })
	assertPanics("unknown status", func() { Transition(Status("banned"), ActionRequest) })
}

func TestParse(t *testing.T) {
	if s, err := ParseStatus(""); err != nil || s != StatusIdle {
		t.Errorf("ParseStatus(\"\") = %s, %v", s, err)
	}
	if _, err := ParseStatus("banned"); err == nil {
		t.Error("ParseStatus accepted an unknown status")
	}
	if a, err := ParseAction("ACCEPT_INVITE"); err != nil || a != ActionAcceptInvite {
		t.Errorf("ParseAction = %s, %v", a, err)
	}
	if _, err := ParseAction("accept_invite"); err == nil {
		t.Error("ParseAction accepted a lowercase action")
	}
}

func TestSelfAction(t *testing.T) {
	self := map[Action]bool{
		ActionRequest:      true,
		ActionAcceptInvite: true,
		ActionRejectInvite: true,
		ActionLeave:        true,
	}
	for _, a := range allActions {
		if SelfAction(a) != self[a] {
			t.Errorf("SelfAction(%s) = %v", a, SelfAction(a))
		}
	}
}
