package models

import "time"

const (
	ScheduleOwnerLocation = "location"
	ScheduleOwnerAgent    = "agent"
)

// Linha de horário semanal: um dia (0=domingo..6=sábado) de uma unidade ou
// de um profissional. Todos os 7 dias são sempre gravados, inclusive os
// fechados, para a leitura nunca precisar adivinhar.
type ScheduleDay struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerType string `gorm:"size:20;index:idx_schedule_owner;not null" json:"owner_type"`
	OwnerID   uint   `gorm:"index:idx_schedule_owner;not null" json:"owner_id"`

	Weekday int  `json:"weekday"`
	Open    bool `json:"open"`

	Periods []SchedulePeriod `gorm:"constraint:OnDelete:CASCADE;" json:"periods"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SchedulePeriod struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	ScheduleDayID uint `gorm:"index" json:"schedule_day_id"`

	StartTime string `gorm:"size:5" json:"start"`
	EndTime   string `gorm:"size:5" json:"end"`
}
