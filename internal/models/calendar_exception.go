package models

import "time"

// Exceção de calendário da unidade: feriado, férias, manutenção etc.
// Vale para todas as datas em [DateStart, DateEnd]. Sem TimeStart/TimeEnd
// bloqueia o dia inteiro; com eles, só aquele intervalo em cada data.
type CalendarException struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	LocationID uint     `gorm:"index" json:"location_id"`
	Location   Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	DateStart time.Time `json:"date_start"`
	DateEnd   time.Time `json:"date_end"`

	TimeStart *string `gorm:"size:5" json:"time_start"`
	TimeEnd   *string `gorm:"size:5" json:"time_end"`

	Kind        string `gorm:"size:20;default:'other'" json:"kind"`
	Description string `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
