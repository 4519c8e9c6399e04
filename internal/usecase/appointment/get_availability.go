package appointment

import (
	"context"
	"time"

	domain "github.com/agendaflow/salon-scheduler/internal/domain/booking"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/schedule"
)

type GetAvailability struct {
	repo  domain.Repository
	cache AvailabilityStore
}

func NewGetAvailability(
	repo domain.Repository,
	cache AvailabilityStore,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		cache: cache,
	}
}

// Execute calcula a agenda do dia de um profissional numa unidade. A
// granularidade padrão é 60min (grade); o formulário de reserva pede 30min.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	accountID uint,
	locationID uint,
	agentID uint,
	date time.Time,
	slotMinutes int,
) (schedule.DayAvailability, error) {

	if slotMinutes <= 0 {
		slotMinutes = schedule.DefaultSlotMinutes
	}

	loc, err := uc.repo.GetLocationByID(ctx, accountID, locationID)
	if err != nil {
		return schedule.DayAvailability{}, httperr.ErrBusiness("location_not_found")
	}

	agent, err := uc.repo.GetAgent(ctx, accountID, agentID)
	if err != nil {
		return schedule.DayAvailability{}, httperr.ErrBusiness("agent_not_found")
	}

	dateKey := date.Format("2006-01-02")
	if cached, ok := uc.cache.Get(ctx, locationID, agentID, dateKey, slotMinutes); ok {
		return *cached, nil
	}

	in, err := daySnapshot(ctx, uc.repo, loc, agent, date, 0, slotMinutes)
	if err != nil {
		return schedule.DayAvailability{}, err
	}

	av := schedule.ComputeDayAvailability(in)
	uc.cache.Set(ctx, locationID, agentID, dateKey, slotMinutes, av)

	return av, nil
}
