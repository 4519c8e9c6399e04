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

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	AccountID uint
	UserID    *uint

	// Public marca reservas vindas do link público da unidade.
	Public bool

	Submit domain.SubmitInput
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit Auditor
	cache CacheInvalidator
}

func NewCreateAppointment(
	repo domain.Repository,
	audit Auditor,
	cache CacheInvalidator,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Pré-condições, em ordem fixa
	// --------------------------------------------------
	if err := domain.ValidateSubmit(in.Submit); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Unidade + data/hora no fuso da unidade
	// --------------------------------------------------
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

	// --------------------------------------------------
	// Antecedência mínima
	// --------------------------------------------------
	minAdvance := loc.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(loc.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// Profissional
	// --------------------------------------------------
	agent, err := uc.repo.GetAgent(ctx, in.AccountID, in.Submit.AgentID)
	if err != nil {
		return nil, httperr.ErrBusiness("agent_not_found")
	}

	// --------------------------------------------------
	// Duração: serviços + adicionais
	// --------------------------------------------------
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

	// --------------------------------------------------
	// Cliente: referência existente ou nome+telefone
	// --------------------------------------------------
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

	// --------------------------------------------------
	// Revalidação do horário com snapshot fresco
	// --------------------------------------------------
	dayInput, err := uc.daySnapshot(ctx, loc, agent, start, 0)
	if err != nil {
		return nil, err
	}
	if !schedule.Bookable(dayInput, in.Submit.StartTime, endHM) {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	// --------------------------------------------------
	// Criação (conflito rechecado com lock na transação)
	// --------------------------------------------------
	ap := &models.Appointment{
		AccountID:    in.AccountID,
		LocationID:   loc.ID,
		AgentID:      agent.ID,
		ClientID:     client.ID,
		StartTime:    start,
		EndTime:      end,
		Status:       string(domain.InitialStatus(in.Public)),
		Discount:     in.Submit.Discount,
		TotalValue:   itemsValue(services, extras),
		Observations: in.Submit.Observations,
	}

	if err := uc.repo.CreateAppointmentIfFree(ctx, ap, in.Submit.ServiceIDs, in.Submit.ExtraIDs); err != nil {
		return nil, err
	}

	uc.cache.InvalidateDay(ctx, loc.ID, agent.ID, in.Submit.Date)

	uc.audit.Dispatch(audit.Event{
		AccountID: in.AccountID,
		UserID:    in.UserID,
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}

// --------------------------------------------------
// Helpers compartilhados pelos use cases
// --------------------------------------------------

func (uc *CreateAppointment) daySnapshot(
	ctx context.Context,
	loc *models.Location,
	agent *models.Agent,
	date time.Time,
	excludeAppointmentID uint,
) (schedule.DayInput, error) {
	return daySnapshot(ctx, uc.repo, loc, agent, date, excludeAppointmentID, 0)
}

func daySnapshot(
	ctx context.Context,
	repo domain.Repository,
	loc *models.Location,
	agent *models.Agent,
	date time.Time,
	excludeAppointmentID uint,
	slotMinutes int,
) (schedule.DayInput, error) {

	tz := timezone.Location(loc.Timezone)
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, tz)
	dayEnd := dayStart.Add(24 * time.Hour)

	locationWeek, err := repo.WeekFor(ctx, models.ScheduleOwnerLocation, loc.ID)
	if err != nil {
		return schedule.DayInput{}, err
	}

	var agentWeek schedule.Week
	if agent.CustomHours {
		agentWeek, err = repo.WeekFor(ctx, models.ScheduleOwnerAgent, agent.ID)
		if err != nil {
			return schedule.DayInput{}, err
		}
	}

	exceptions, err := repo.ListExceptions(ctx, loc.ID, dayStart)
	if err != nil {
		return schedule.DayInput{}, err
	}

	appointments, err := repo.ListDayAppointments(ctx, agent.ID, dayStart, dayEnd, excludeAppointmentID)
	if err != nil {
		return schedule.DayInput{}, err
	}

	blocks, err := repo.ListBlocks(ctx, agent.ID, dayStart)
	if err != nil {
		return schedule.DayInput{}, err
	}

	return schedule.DayInput{
		Date:         dayStart,
		LocationWeek: locationWeek,
		AgentWeek:    agentWeek,
		Exceptions:   exceptions,
		Appointments: appointments,
		Blocks:       blocks,
		SlotMinutes:  slotMinutes,
	}, nil
}

func serviceCatalog(services []models.Service) []schedule.CatalogItem {
	out := make([]schedule.CatalogItem, 0, len(services))
	for _, s := range services {
		out = append(out, schedule.CatalogItem{ID: s.ID, DurationMin: s.DurationMin})
	}
	return out
}

func extraCatalog(extras []models.ServiceExtra) []schedule.CatalogItem {
	out := make([]schedule.CatalogItem, 0, len(extras))
	for _, e := range extras {
		out = append(out, schedule.CatalogItem{ID: e.ID, DurationMin: e.DurationMin})
	}
	return out
}

func itemsValue(services []models.Service, extras []models.ServiceExtra) float64 {
	total := 0.0
	for _, s := range services {
		total += s.Price
	}
	for _, e := range extras {
		total += e.Price
	}
	return total
}
