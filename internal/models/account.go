package models

import "time"

// Conta do salão. O plano só define quantas unidades podem existir.
type Account struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Plan string `gorm:"size:20;default:'single'" json:"plan"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	PlanSingle = "single"
	PlanMulti  = "multi"
)
