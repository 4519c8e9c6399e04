package models

import "time"

type Appointment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	AccountID uint `json:"account_id"`

	LocationID uint     `json:"location_id"`
	Location   Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	AgentID uint  `json:"agent_id"`
	Agent   Agent `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"agent"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	Services []Service      `gorm:"many2many:appointment_services;" json:"services"`
	Extras   []ServiceExtra `gorm:"many2many:appointment_extras;" json:"extras"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	// Desconto opaco (pontos de fidelidade, ajuste manual).
	Discount   float64 `json:"discount"`
	TotalValue float64 `json:"total_value"`

	Observations string     `gorm:"size:255" json:"observations"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CompletedAt  *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
