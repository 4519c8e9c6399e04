package models

import "time"

// Bloqueio manual do profissional, independente do horário da unidade.
// Date nula = bloqueio recorrente (vale todo dia).
type UnavailableBlock struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	AgentID uint  `gorm:"index" json:"agent_id"`
	Agent   Agent `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date *time.Time `json:"date"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
