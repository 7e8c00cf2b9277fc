// Package membership holds the request/invite state machine that governs how
// a user joins or leaves a ledger group.
package membership

import (
	"errors"
	"fmt"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusRequesting Status = "requesting"
	StatusInviting   Status = "inviting"
	StatusActive     Status = "active"
)

type Action string

const (
	ActionRequest       Action = "REQUEST"
	ActionAcceptRequest Action = "ACCEPT_REQUEST"
	ActionRejectRequest Action = "REJECT_REQUEST"
	ActionInvite        Action = "INVITE"
	ActionAcceptInvite  Action = "ACCEPT_INVITE"
	ActionRejectInvite  Action = "REJECT_INVITE"
	ActionLeave         Action = "LEAVE"
	ActionRemove        Action = "REMOVE"
)

// ErrRejected is matched by every *TransitionError.
var ErrRejected = errors.New("membership transition rejected")

// TransitionError is returned when an action is not allowed from the current
// status. Reason is meant to be shown to the user.
type TransitionError struct {
	Status Status
	Action Action
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while %s: %s", e.Action, e.Status, e.Reason)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrRejected
}

func (s Status) Valid() bool {
	switch s {
	case StatusIdle, StatusRequesting, StatusInviting, StatusActive:
		return true
	}
	return false
}

func (a Action) Valid() bool {
	switch a {
	case ActionRequest, ActionAcceptRequest, ActionRejectRequest,
		ActionInvite, ActionAcceptInvite, ActionRejectInvite,
		ActionLeave, ActionRemove:
		return true
	}
	return false
}

// ParseStatus converts a persisted value; an empty value reads as idle.
func ParseStatus(v string) (Status, error) {
	if v == "" {
		return StatusIdle, nil
	}
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown membership status %q", v)
	}
	return s, nil
}

func ParseAction(v string) (Action, error) {
	a := Action(v)
	if !a.Valid() {
		return "", fmt.Errorf("unknown membership action %q", v)
	}
	return a, nil
}

// Transition returns the status reached by applying action to status. An
// action that makes no sense from status yields a *TransitionError. Values
// outside the declared enums are caller bugs and panic.
func Transition(status Status, action Action) (Status, error) {
	if !action.Valid() {
		panic(fmt.Sprintf("membership: unknown action %q", string(action)))
	}

	reject := func(reason string) (Status, error) {
		return status, &TransitionError{Status: status, Action: action, Reason: reason}
	}

	switch status {
	case StatusIdle:
		switch action {
		case ActionRequest:
			return StatusRequesting, nil
		case ActionInvite:
			return StatusInviting, nil
		case ActionAcceptRequest, ActionRejectRequest:
			return reject("user did not request to join this group")
		case ActionAcceptInvite, ActionRejectInvite:
			return reject("user has no invite to this group")
		case ActionLeave, ActionRemove:
			return reject("user is not a member of this group")
		}

	case StatusActive:
		switch action {
		case ActionLeave, ActionRemove:
			return StatusIdle, nil
		default:
			return reject("user is already a member of this group")
		}

	case StatusRequesting:
		switch action {
		case ActionRequest:
			return reject("join request was already submitted")
		case ActionAcceptRequest:
			return StatusActive, nil
		case ActionRejectRequest:
			return StatusIdle, nil
		case ActionInvite, ActionAcceptInvite, ActionRejectInvite:
			return reject("user already requested to join this group")
		case ActionLeave, ActionRemove:
			return reject("user is not a member of this group")
		}

	case StatusInviting:
		switch action {
		case ActionRequest:
			return reject("user was already invited to this group, accept the invite instead")
		case ActionAcceptRequest, ActionRejectRequest, ActionInvite:
			return reject("user was already invited to this group")
		case ActionAcceptInvite:
			return StatusActive, nil
		case ActionRejectInvite:
			return StatusIdle, nil
		case ActionLeave, ActionRemove:
			return reject("user is not a member of this group")
		}
	}

	panic(fmt.Sprintf("membership: unknown status %q", string(status)))
}

// SelfAction reports whether the action must be performed by the user whose
// membership changes. The others are performed by an active member.
func SelfAction(action Action) bool {
	switch action {
	case ActionRequest, ActionAcceptInvite, ActionRejectInvite, ActionLeave:
		return true
	}
	return false
}
