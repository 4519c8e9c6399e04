package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/middleware"
	"github.com/agendaflow/salon-scheduler/internal/models"
	"github.com/agendaflow/salon-scheduler/internal/schedule"
)

// ScheduleHandler lê e grava o horário semanal de uma unidade ou de um
// profissional. A gravação sempre materializa os 7 dias.
type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type SchedulePeriodInput struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type ScheduleDayInput struct {
	Weekday int                   `json:"weekday"`
	Open    bool                  `json:"open"`
	Periods []SchedulePeriodInput `json:"periods"`
}

type ScheduleUpdateRequest struct {
	Days []ScheduleDayInput `json:"days" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *ScheduleHandler) resolveOwner(c *gin.Context) (string, uint, bool) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	ownerType := c.Param("ownerType")
	if ownerType != models.ScheduleOwnerLocation && ownerType != models.ScheduleOwnerAgent {
		httperr.BadRequest(c, "invalid_owner_type", "Tipo de dono do horário inválido.")
		return "", 0, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_owner_id", "ID inválido.")
		return "", 0, false
	}
	ownerID := uint(id)

	// O dono precisa pertencer à conta autenticada.
	var count int64
	if ownerType == models.ScheduleOwnerLocation {
		h.db.Model(&models.Location{}).
			Where("id = ? AND account_id = ?", ownerID, accountID).
			Count(&count)
	} else {
		h.db.Model(&models.Agent{}).
			Where("id = ? AND account_id = ?", ownerID, accountID).
			Count(&count)
	}
	if count == 0 {
		httperr.NotFound(c, "owner_not_found", "Unidade ou profissional não encontrado.")
		return "", 0, false
	}

	return ownerType, ownerID, true
}

func loadWeek(db *gorm.DB, ownerType string, ownerID uint) (schedule.Week, error) {
	var days []models.ScheduleDay
	if err := db.
		Preload("Periods").
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}

	partial := make(schedule.Week, 0, len(days))
	for _, d := range days {
		day := schedule.DaySchedule{
			Weekday: d.Weekday,
			Open:    d.Open,
		}
		for _, p := range d.Periods {
			day.Periods = append(day.Periods, schedule.TimePeriod{
				Start: p.StartTime,
				End:   p.EndTime,
			})
		}
		partial = append(partial, day)
	}

	return schedule.MergeWithDefault(partial), nil
}

// ======================================================
// GET
// ======================================================

func (h *ScheduleHandler) Get(c *gin.Context) {
	ownerType, ownerID, ok := h.resolveOwner(c)
	if !ok {
		return
	}

	week, err := loadWeek(h.db, ownerType, ownerID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_schedule", "Erro ao buscar horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": week})
}

// ======================================================
// UPDATE
// ======================================================

func (h *ScheduleHandler) Update(c *gin.Context) {
	ownerType, ownerID, ok := h.resolveOwner(c)
	if !ok {
		return
	}

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	partial := make(schedule.Week, 0, len(req.Days))
	for _, d := range req.Days {
		day := schedule.DaySchedule{
			Weekday: d.Weekday,
			Open:    d.Open,
		}
		for _, p := range d.Periods {
			day.Periods = append(day.Periods, schedule.TimePeriod{
				Start: p.Start,
				End:   p.End,
			})
		}
		partial = append(partial, day)
	}

	week, err := schedule.ValidateWeek(schedule.MergeWithDefault(partial))
	if err != nil {
		httperr.BadRequest(c, "invalid_schedule", "Horário semanal inválido.")
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var oldDays []models.ScheduleDay
		if err := tx.
			Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
			Find(&oldDays).Error; err != nil {
			return err
		}

		for _, d := range oldDays {
			if err := tx.Where("schedule_day_id = ?", d.ID).
				Delete(&models.SchedulePeriod{}).Error; err != nil {
				return err
			}
		}
		if err := tx.
			Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
			Delete(&models.ScheduleDay{}).Error; err != nil {
			return err
		}

		for _, day := range week {
			row := models.ScheduleDay{
				OwnerType: ownerType,
				OwnerID:   ownerID,
				Weekday:   day.Weekday,
				Open:      day.Open,
			}
			for _, p := range day.Periods {
				row.Periods = append(row.Periods, models.SchedulePeriod{
					StartTime: p.Start,
					EndTime:   p.End,
				})
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_schedule", "Erro ao salvar horários.")
		return
	}

	// Profissional com horário gravado passa a usar horário próprio.
	if ownerType == models.ScheduleOwnerAgent {
		h.db.Model(&models.Agent{}).
			Where("id = ?", ownerID).
			Update("custom_hours", true)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "days": week})
}
