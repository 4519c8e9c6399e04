package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agendaflow/salon-scheduler/internal/audit"
	domain "github.com/agendaflow/salon-scheduler/internal/domain/booking"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/models"
	"github.com/agendaflow/salon-scheduler/internal/schedule"
	"github.com/agendaflow/salon-scheduler/internal/timezone"
)

// --------------------------------------------------
// Fakes
// --------------------------------------------------

var errNotFound = errors.New("not found")

type fakeRepo struct {
	locations map[uint]*models.Location
	agents    map[uint]*models.Agent
	services  []models.Service
	extras    []models.ServiceExtra
	clients   map[uint]*models.Client
	stored    map[uint]*models.Appointment
	week      schedule.Week

	saved            *models.Appointment
	getOrCreateCalls int
}

func (r *fakeRepo) GetLocationByID(_ context.Context, accountID, id uint) (*models.Location, error) {
	loc, ok := r.locations[id]
	if !ok || loc.AccountID != accountID {
		return nil, errNotFound
	}
	return loc, nil
}

func (r *fakeRepo) GetLocationBySlug(_ context.Context, slug string) (*models.Location, error) {
	for _, loc := range r.locations {
		if loc.Slug == slug {
			return loc, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetAgent(_ context.Context, accountID, agentID uint) (*models.Agent, error) {
	agent, ok := r.agents[agentID]
	if !ok || agent.AccountID != accountID {
		return nil, errNotFound
	}
	return agent, nil
}

func (r *fakeRepo) ListServices(_ context.Context, _ uint, ids []uint) ([]models.Service, error) {
	var out []models.Service
	for _, s := range r.services {
		for _, id := range ids {
			if s.ID == id {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) ListExtras(_ context.Context, _ uint, ids []uint) ([]models.ServiceExtra, error) {
	var out []models.ServiceExtra
	for _, e := range r.extras {
		for _, id := range ids {
			if e.ID == id {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) GetClientByID(_ context.Context, accountID, id uint) (*models.Client, error) {
	client, ok := r.clients[id]
	if !ok || client.AccountID != accountID {
		return nil, errNotFound
	}
	return client, nil
}

func (r *fakeRepo) GetOrCreateClient(_ context.Context, accountID uint, name, phone string) (*models.Client, error) {
	r.getOrCreateCalls++
	return &models.Client{ID: 99, AccountID: accountID, Name: name, Phone: phone}, nil
}

func (r *fakeRepo) WeekFor(_ context.Context, _ string, _ uint) (schedule.Week, error) {
	return r.week, nil
}

func (r *fakeRepo) ListExceptions(_ context.Context, _ uint, _ time.Time) ([]schedule.Exception, error) {
	return nil, nil
}

func (r *fakeRepo) ListDayAppointments(_ context.Context, _ uint, _, _ time.Time, _ uint) ([]schedule.Booking, error) {
	return nil, nil
}

func (r *fakeRepo) ListBlocks(_ context.Context, _ uint, _ time.Time) ([]schedule.Booking, error) {
	return nil, nil
}

func (r *fakeRepo) CreateAppointmentIfFree(_ context.Context, ap *models.Appointment, _, _ []uint) error {
	ap.ID = 100
	copied := *ap
	r.saved = &copied
	return nil
}

func (r *fakeRepo) UpdateAppointmentIfFree(_ context.Context, ap *models.Appointment, _, _ []uint) error {
	copied := *ap
	r.saved = &copied
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, accountID, id uint) (*models.Appointment, error) {
	ap, ok := r.stored[id]
	if !ok || ap.AccountID != accountID {
		return nil, errNotFound
	}
	copied := *ap
	return &copied, nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	copied := *ap
	r.saved = &copied
	return nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, _, _ uint, _, _ time.Time) ([]models.Appointment, error) {
	return nil, nil
}

type invalidation struct {
	locationID uint
	agentID    uint
	date       string
}

type fakeCache struct {
	invalidated []invalidation
}

func (c *fakeCache) InvalidateDay(_ context.Context, locationID, agentID uint, date string) {
	c.invalidated = append(c.invalidated, invalidation{locationID, agentID, date})
}

func (c *fakeCache) has(locationID, agentID uint, date string) bool {
	for _, inv := range c.invalidated {
		if inv == (invalidation{locationID, agentID, date}) {
			return true
		}
	}
	return false
}

type fakeAuditor struct {
	events []audit.Event
}

func (a *fakeAuditor) Dispatch(ev audit.Event) {
	a.events = append(a.events, ev)
}

// --------------------------------------------------
// Fixture
// --------------------------------------------------

func openWeek() schedule.Week {
	week := schedule.DefaultWeek()
	for wd := range week {
		week[wd].Open = true
		week[wd].Periods = []schedule.TimePeriod{{Start: "08:00", End: "18:00"}}
	}
	return week
}

func newFakeRepo() *fakeRepo {
	tz := timezone.Location("America/Sao_Paulo")

	return &fakeRepo{
		locations: map[uint]*models.Location{
			1: {ID: 1, AccountID: 1, Slug: "centro", Timezone: "America/Sao_Paulo"},
			2: {ID: 2, AccountID: 1, Slug: "zona-sul", Timezone: "America/Sao_Paulo"},
		},
		agents: map[uint]*models.Agent{
			5: {ID: 5, AccountID: 1, LocationID: 1, Name: "Bia", Active: true},
		},
		services: []models.Service{
			{ID: 10, AccountID: 1, Name: "Corte", DurationMin: 30, Price: 50},
		},
		clients: map[uint]*models.Client{
			1: {ID: 1, AccountID: 1, Name: "Ana", Phone: "11999990001"},
			2: {ID: 2, AccountID: 1, Name: "Carla", Phone: "11999990002"},
		},
		stored: map[uint]*models.Appointment{
			100: {
				ID:         100,
				AccountID:  1,
				LocationID: 1,
				AgentID:    5,
				ClientID:   1,
				StartTime:  time.Date(2025, 12, 1, 10, 0, 0, 0, tz),
				EndTime:    time.Date(2025, 12, 1, 10, 30, 0, 0, tz),
				Status:     "approved",
			},
		},
		week: openWeek(),
	}
}

func updateSubmit() domain.SubmitInput {
	return domain.SubmitInput{
		AgentID:    5,
		ServiceIDs: []uint{10},
		Date:       "2025-12-01",
		StartTime:  "10:00",
		ClientID:   1,
		LocationID: 1,
	}
}

// --------------------------------------------------
// Tests
// --------------------------------------------------

func TestUpdateAppointmentPersistsNewClient(t *testing.T) {
	repo := newFakeRepo()
	cache := &fakeCache{}
	uc := NewUpdateAppointment(repo, &fakeAuditor{}, cache)

	in := updateSubmit()
	in.ClientID = 2

	ap, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		AccountID:     1,
		AppointmentID: 100,
		Submit:        in,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if ap.ClientID != 2 {
		t.Errorf("ClientID devolvido = %d, esperado 2", ap.ClientID)
	}
	if repo.saved == nil || repo.saved.ClientID != 2 {
		t.Errorf("ClientID gravado = %+v, esperado 2", repo.saved)
	}
}

func TestUpdateAppointmentCreatesClientFromContact(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateAppointment(repo, &fakeAuditor{}, &fakeCache{})

	in := updateSubmit()
	in.ClientID = 0
	in.ClientName = "Duda"
	in.ClientPhone = "11999990099"

	ap, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		AccountID:     1,
		AppointmentID: 100,
		Submit:        in,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if repo.getOrCreateCalls != 1 {
		t.Errorf("GetOrCreateClient chamado %d vezes, esperado 1", repo.getOrCreateCalls)
	}
	if ap.ClientID != 99 || repo.saved.ClientID != 99 {
		t.Errorf("ClientID = %d (gravado %d), esperado 99", ap.ClientID, repo.saved.ClientID)
	}
}

func TestUpdateAppointmentUnknownClient(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateAppointment(repo, &fakeAuditor{}, &fakeCache{})

	in := updateSubmit()
	in.ClientID = 777

	_, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		AccountID:     1,
		AppointmentID: 100,
		Submit:        in,
	})
	if !httperr.IsBusiness(err, "client_not_found") {
		t.Fatalf("erro = %v, esperado client_not_found", err)
	}
	if repo.saved != nil {
		t.Errorf("nada deveria ser gravado, gravado %+v", repo.saved)
	}
}

func TestUpdateAppointmentInvalidatesPreviousDay(t *testing.T) {
	repo := newFakeRepo()
	cache := &fakeCache{}
	uc := NewUpdateAppointment(repo, &fakeAuditor{}, cache)

	// Move a reserva para outra unidade e outro dia.
	in := updateSubmit()
	in.LocationID = 2
	in.Date = "2025-12-03"

	if _, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		AccountID:     1,
		AppointmentID: 100,
		Submit:        in,
	}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !cache.has(2, 5, "2025-12-03") {
		t.Errorf("dia novo não invalidado: %+v", cache.invalidated)
	}
	// O dia antigo é invalidado na unidade antiga, não na nova.
	if !cache.has(1, 5, "2025-12-01") {
		t.Errorf("dia antigo não invalidado na unidade antiga: %+v", cache.invalidated)
	}
}
