package appointment

import (
	"context"
	"time"

	domain "github.com/agendaflow/salon-scheduler/internal/domain/booking"
	"github.com/agendaflow/salon-scheduler/internal/dto"
	"github.com/agendaflow/salon-scheduler/internal/models"
	"github.com/agendaflow/salon-scheduler/internal/schedule"
	"github.com/agendaflow/salon-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute lista o dia inteiro, inclusive horários já passados e status
// terminais: um agendamento concluído de manhã continua visível e editável
// à tarde. As frações de layout saem da mesma janela usada pela grade.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	accountID uint,
	locationID uint,
	agentID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	loc, err := uc.repo.GetLocationByID(ctx, accountID, locationID)
	if err != nil {
		return nil, err
	}

	tz := timezone.Location(loc.Timezone)
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, tz)
	end := start.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, locationID, agentID, start, end)
	if err != nil {
		return nil, err
	}

	week, err := uc.repo.WeekFor(ctx, models.ScheduleOwnerLocation, locationID)
	if err != nil {
		return nil, err
	}
	gridStart, gridEnd := schedule.GridWindow(week)

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		startHM := ap.StartTime.In(tz).Format("15:04")
		endHM := ap.EndTime.In(tz).Format("15:04")

		offset, okStart := schedule.FractionOfDay(startHM, gridStart, gridEnd)
		bottom, okEnd := schedule.FractionOfDay(endHM, gridStart, gridEnd)

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

		if okStart && okEnd {
			item.GridVisible = true
			item.OffsetPct = offset * 100
			item.HeightPct = (bottom - offset) * 100
		}

		out = append(out, item)
	}

	return out, nil
}
