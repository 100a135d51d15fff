package permit

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownStatus      = errors.New("unknown permit status")
	ErrActionNotAvailable = errors.New("action not offered for this permit")
)

// Status is the permit-to-work lifecycle as the backend reports it. The
// dashboard never derives transitions from it; the Actions list on the
// fetched entity is the sole source of truth for what may happen next.
type Status string

const (
	StatusSubmitted        Status = "submitted"
	StatusVerified         Status = "verified"
	StatusClientApproved   Status = "client_approved"
	StatusClientRejected   Status = "client_rejected"
	StatusClosureRequested Status = "closure_requested"
	StatusClosed           Status = "closed"
)

var allStatuses = map[Status]struct{}{
	StatusSubmitted:        {},
	StatusVerified:         {},
	StatusClientApproved:   {},
	StatusClientRejected:   {},
	StatusClosureRequested: {},
	StatusClosed:           {},
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if _, ok := allStatuses[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return s, nil
}

// Action names the dashboard knows how to dispatch. Anything else in the
// Actions list is ignored without error.
const (
	ActionVerify         = "verify"
	ActionClientApprove  = "client_approve"
	ActionClientReject   = "client_reject"
	ActionClosureRequest = "closure_request"
	ActionClose          = "close"
)

func KnownAction(name string) bool {
	switch name {
	case ActionVerify, ActionClientApprove, ActionClientReject, ActionClosureRequest, ActionClose:
		return true
	}
	return false
}

// ActionDescriptor is a server-computed legal transition for the current
// viewer: the name to dispatch on and the URL to PUT to.
type ActionDescriptor struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Permit is the server-owned permit-to-work record.
type Permit struct {
	ID             int64              `json:"id"`
	Number         string             `json:"number"`
	Status         Status             `json:"status"`
	WorkDesc       string             `json:"work_description"`
	IssuedBy       string             `json:"issued_by"`
	IssuedAt       string             `json:"issued_at"`
	RejectedRemark string             `json:"rejected_remark"`
	Actions        []ActionDescriptor `json:"actions"`
}

// Action returns the descriptor for the named transition, if the server
// offered it to the current viewer.
func (p *Permit) Action(name string) (ActionDescriptor, bool) {
	for _, action := range p.Actions {
		if action.Name == name {
			return action, true
		}
	}
	return ActionDescriptor{}, false
}
