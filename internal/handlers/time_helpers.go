package handlers

import (
	"time"

	"github.com/agendaflow/salon-scheduler/internal/models"
	"github.com/agendaflow/salon-scheduler/internal/timezone"
)

// Todo parse de data/hora da API acontece no fuso da unidade.

func locationTZ(loc *models.Location) *time.Location {
	if loc != nil {
		return timezone.Location(loc.Timezone)
	}
	return timezone.Location("")
}

func parseDateInLocation(loc *models.Location, dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, locationTZ(loc))
}
