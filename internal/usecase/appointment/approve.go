package appointment

import (
	"context"

	"github.com/agendaflow/salon-scheduler/internal/audit"
	domain "github.com/agendaflow/salon-scheduler/internal/domain/booking"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/models"
)

// ApproveAppointment confirma uma reserva pendente vinda do link público.
type ApproveAppointment struct {
	repo  domain.Repository
	audit Auditor
}

func NewApproveAppointment(
	repo domain.Repository,
	audit Auditor,
) *ApproveAppointment {
	return &ApproveAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ApproveAppointment) Execute(
	ctx context.Context,
	accountID uint,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, accountID, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanApprove(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	ap.Status = string(domain.StatusApproved)

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AccountID: accountID,
		UserID:    userID,
		Action:    "appointment_approved",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
