package dto

import "time"

// AppointmentListDTO carrega, além dos dados do agendamento, as frações de
// layout usadas pela grade do dia (offset/altura proporcionais à janela).
type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	AgentID     uint      `json:"agent_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	Services    []string  `json:"services"`
	TotalValue  float64   `json:"total_value"`
	OffsetPct   float64   `json:"offset_pct"`
	HeightPct   float64   `json:"height_pct"`
	GridVisible bool      `json:"grid_visible"`
}
