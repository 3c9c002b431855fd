package request

import "errors"

var (
	ErrInvalidStatus     = errors.New("invalid request status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Rank orders statuses by workflow progression; used for status sorting.
func (s Status) Rank() int {
	switch s {
	case StatusDraft:
		return 0
	case StatusPending:
		return 1
	case StatusApproved:
		return 2
	case StatusRejected:
		return 3
	default:
		return -1
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionReopen  Action = "reopen"
)

var transitions = map[Status]map[Action]Status{
	StatusDraft: {
		ActionSubmit: StatusPending,
	},
	StatusPending: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
	},
	StatusRejected: {
		ActionReopen: StatusDraft,
	},
}

// Transition returns the status reached by applying action to cur, or
// ErrInvalidTransition when the pair is not in the workflow table.
func Transition(cur Status, action Action) (Status, error) {
	next, ok := transitions[cur][action]
	if !ok {
		return "", ErrInvalidTransition
	}
	return next, nil
}
