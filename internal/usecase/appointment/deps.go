package appointment

import (
	"context"

	"github.com/agendaflow/salon-scheduler/internal/audit"
	"github.com/agendaflow/salon-scheduler/internal/schedule"
)

// Auditor despacha eventos de auditoria fora do caminho da requisição.
type Auditor interface {
	Dispatch(ev audit.Event)
}

// CacheInvalidator limpa a disponibilidade cacheada de um dia depois de uma
// mutação de agenda. Toda transição que devolve um horário ao dia (cancelar,
// concluir, no-show) e toda gravação passam por aqui.
type CacheInvalidator interface {
	InvalidateDay(ctx context.Context, locationID, agentID uint, date string)
}

// AvailabilityStore lê e grava o resultado do cálculo de disponibilidade.
type AvailabilityStore interface {
	Get(ctx context.Context, locationID, agentID uint, date string, slotMinutes int) (*schedule.DayAvailability, bool)
	Set(ctx context.Context, locationID, agentID uint, date string, slotMinutes int, av schedule.DayAvailability)
}
