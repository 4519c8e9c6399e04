package models

import "time"

// Agent é o profissional que atende. Pode estar vinculado a várias unidades,
// com uma unidade principal, e opcionalmente ter horário próprio que
// restringe o horário da unidade.
type Agent struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	AccountID uint `json:"account_id"`

	LocationID uint       `json:"location_id"`
	Location   Location   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	Locations  []Location `gorm:"many2many:agent_locations;" json:"locations,omitempty"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Phone     string `gorm:"size:20" json:"phone"`
	AvatarURL string `gorm:"size:255" json:"avatar_url"`

	CustomHours bool `gorm:"default:false" json:"custom_hours"`
	Active      bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
