package booking

import "github.com/agendaflow/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// InitialStatus: reservas do link público entram pendentes; as criadas pelo
// próprio salão já entram aprovadas.
func InitialStatus(public bool) Status {
	if public {
		return StatusPending
	}
	return StatusApproved
}

func CanApprove(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusApproved {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusApproved {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if current != StatusApproved {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// Active são os status que ocupam horário na agenda.
func Active(current Status) bool {
	return current == StatusPending || current == StatusApproved
}
