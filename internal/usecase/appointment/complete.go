package appointment

import (
	"context"

	"github.com/agendaflow/salon-scheduler/internal/audit"
	domain "github.com/agendaflow/salon-scheduler/internal/domain/booking"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/models"
	"github.com/agendaflow/salon-scheduler/internal/timezone"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit Auditor
	cache CacheInvalidator
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit Auditor,
	cache CacheInvalidator,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	accountID uint,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, accountID, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanComplete(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	loc, err := uc.repo.GetLocationByID(ctx, accountID, ap.LocationID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(loc.Timezone)
	ap.Status = string(domain.StatusCompleted)
	ap.CompletedAt = &now

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Concluído sai do conjunto ocupado; o dia cacheado fica obsoleto.
	date := ap.StartTime.In(timezone.Location(loc.Timezone)).Format("2006-01-02")
	uc.cache.InvalidateDay(ctx, ap.LocationID, ap.AgentID, date)

	uc.audit.Dispatch(audit.Event{
		AccountID: accountID,
		UserID:    userID,
		Action:    "appointment_completed",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
