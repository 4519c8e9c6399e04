package appointment

import (
	"context"
	"time"

	"github.com/agendaflow/salon-scheduler/internal/audit"
	domain "github.com/agendaflow/salon-scheduler/internal/domain/booking"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/models"
	"github.com/agendaflow/salon-scheduler/internal/schedule"
	"github.com/agendaflow/salon-scheduler/internal/timezone"
)

type UpdateAppointmentInput struct {
	AccountID     uint
	UserID        *uint
	AppointmentID uint

	Submit domain.SubmitInput
}

// UpdateAppointment reaplica exatamente a validação da criação; a única
// diferença é que o próprio agendamento não conta como conflito.
type UpdateAppointment struct {
	repo  domain.Repository
	audit Auditor
	cache CacheInvalidator
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit Auditor,
	cache CacheInvalidator,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	if err := domain.ValidateSubmit(in.Submit); err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AccountID, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if !domain.Active(domain.Status(ap.Status)) {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	loc, err := uc.repo.GetLocationByID(ctx, in.AccountID, in.Submit.LocationID)
	if err != nil {
		return nil, httperr.ErrBusiness("location_not_found")
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Submit.Date+" "+in.Submit.StartTime,
		timezone.Location(loc.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	agent, err := uc.repo.GetAgent(ctx, in.AccountID, in.Submit.AgentID)
	if err != nil {
		return nil, httperr.ErrBusiness("agent_not_found")
	}

	services, err := uc.repo.ListServices(ctx, in.AccountID, in.Submit.ServiceIDs)
	if err != nil {
		return nil, err
	}
	extras, err := uc.repo.ListExtras(ctx, in.AccountID, in.Submit.ExtraIDs)
	if err != nil {
		return nil, err
	}

	endHM, ok := schedule.EndTime(
		in.Submit.StartTime,
		in.Submit.ServiceIDs,
		in.Submit.ExtraIDs,
		serviceCatalog(services),
		extraCatalog(extras),
	)
	if !ok {
		return nil, httperr.ErrBusiness("duration_unresolvable")
	}

	total := schedule.TotalDuration(
		in.Submit.ServiceIDs,
		in.Submit.ExtraIDs,
		serviceCatalog(services),
		extraCatalog(extras),
	)
	end := start.Add(time.Duration(total) * time.Minute)

	// O cliente também pode mudar numa edição: referência existente ou
	// nome+telefone, igual à criação.
	var client *models.Client
	if in.Submit.ClientID != 0 {
		client, err = uc.repo.GetClientByID(ctx, in.AccountID, in.Submit.ClientID)
		if err != nil {
			return nil, httperr.ErrBusiness("client_not_found")
		}
	} else {
		client, err = uc.repo.GetOrCreateClient(
			ctx,
			in.AccountID,
			in.Submit.ClientName,
			in.Submit.ClientPhone,
		)
		if err != nil {
			return nil, err
		}
	}

	dayInput, err := daySnapshot(ctx, uc.repo, loc, agent, start, ap.ID, 0)
	if err != nil {
		return nil, err
	}
	if !schedule.Bookable(dayInput, in.Submit.StartTime, endHM) {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	previousDate := ap.StartTime.In(timezone.Location(loc.Timezone)).Format("2006-01-02")
	previousAgent := ap.AgentID
	previousLocation := ap.LocationID

	ap.LocationID = loc.ID
	ap.AgentID = agent.ID
	ap.ClientID = client.ID
	ap.StartTime = start
	ap.EndTime = end
	ap.Discount = in.Submit.Discount
	ap.TotalValue = itemsValue(services, extras)
	ap.Observations = in.Submit.Observations

	if err := uc.repo.UpdateAppointmentIfFree(ctx, ap, in.Submit.ServiceIDs, in.Submit.ExtraIDs); err != nil {
		return nil, err
	}

	uc.cache.InvalidateDay(ctx, loc.ID, agent.ID, in.Submit.Date)
	moved := previousDate != in.Submit.Date ||
		previousAgent != agent.ID ||
		previousLocation != loc.ID
	if moved {
		uc.cache.InvalidateDay(ctx, previousLocation, previousAgent, previousDate)
	}

	uc.audit.Dispatch(audit.Event{
		AccountID: in.AccountID,
		UserID:    in.UserID,
		Action:    "appointment_updated",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
