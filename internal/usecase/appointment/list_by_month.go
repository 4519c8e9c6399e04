package appointment

import (
	"context"
	"time"

	domain "github.com/agendaflow/salon-scheduler/internal/domain/booking"
	"github.com/agendaflow/salon-scheduler/internal/dto"
	"github.com/agendaflow/salon-scheduler/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	accountID uint,
	locationID uint,
	agentID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	loc, err := uc.repo.GetLocationByID(ctx, accountID, locationID)
	if err != nil {
		return nil, err
	}

	tz := timezone.Location(loc.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, tz)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, locationID, agentID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		item := dto.AppointmentListDTO{
			ID:         ap.ID,
			AgentID:    ap.AgentID,
			StartTime:  ap.StartTime,
			EndTime:    ap.EndTime,
			Status:     ap.Status,
			ClientName: ap.Client.Name,
			TotalValue: ap.TotalValue,
		}
		for _, s := range ap.Services {
			item.Services = append(item.Services, s.Name)
		}
		out = append(out, item)
	}

	return out, nil
}
