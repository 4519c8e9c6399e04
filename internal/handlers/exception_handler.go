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

// ExceptionHandler gerencia as exceções de calendário de uma unidade:
// feriados, férias, eventos e bloqueios parciais de um intervalo de datas.
type ExceptionHandler struct {
	db *gorm.DB
}

func NewExceptionHandler(db *gorm.DB) *ExceptionHandler {
	return &ExceptionHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type ExceptionRequest struct {
	DateStart string `json:"date_start" binding:"required"`
	DateEnd   string `json:"date_end" binding:"required"`

	TimeStart *string `json:"time_start"`
	TimeEnd   *string `json:"time_end"`

	Kind        string `json:"kind"`
	Description string `json:"description"`
}

var exceptionKinds = map[string]bool{
	schedule.ExceptionHoliday:      true,
	schedule.ExceptionVacation:     true,
	schedule.ExceptionSpecialEvent: true,
	schedule.ExceptionMaintenance:  true,
	schedule.ExceptionOther:        true,
}

// ======================================================
// HELPERS
// ======================================================

func (h *ExceptionHandler) findLocation(c *gin.Context) (*models.Location, bool) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_location_id", "ID da unidade inválido.")
		return nil, false
	}

	var loc models.Location
	if err := h.db.
		Where("id = ? AND account_id = ?", id, accountID).
		First(&loc).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "location_not_found", "Unidade não encontrada.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_location", "Erro ao buscar unidade.")
		return nil, false
	}

	return &loc, true
}

func (h *ExceptionHandler) buildException(
	c *gin.Context,
	loc *models.Location,
	req ExceptionRequest,
) (*models.CalendarException, bool) {

	dateStart, err := parseDateInLocation(loc, req.DateStart)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inicial inválida.")
		return nil, false
	}
	dateEnd, err := parseDateInLocation(loc, req.DateEnd)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data final inválida.")
		return nil, false
	}
	if dateEnd.Before(dateStart) {
		httperr.BadRequest(c, "invalid_date_range", "Data final antes da inicial.")
		return nil, false
	}

	// TimeStart e TimeEnd andam juntos; qualquer um sozinho vira dia inteiro.
	hasStart := req.TimeStart != nil && *req.TimeStart != ""
	hasEnd := req.TimeEnd != nil && *req.TimeEnd != ""
	if hasStart != hasEnd {
		httperr.BadRequest(c, "incomplete_time_range", "Informe início e fim do intervalo, ou nenhum dos dois.")
		return nil, false
	}
	if hasStart {
		p := schedule.TimePeriod{Start: *req.TimeStart, End: *req.TimeEnd}
		if !p.Valid() {
			httperr.BadRequest(c, "invalid_time_range", "Intervalo de horário inválido.")
			return nil, false
		}
	}

	kind := req.Kind
	if kind == "" {
		kind = schedule.ExceptionOther
	}
	if !exceptionKinds[kind] {
		httperr.BadRequest(c, "invalid_kind", "Tipo de exceção inválido.")
		return nil, false
	}

	ex := &models.CalendarException{
		LocationID:  loc.ID,
		DateStart:   dateStart,
		DateEnd:     dateEnd,
		Kind:        kind,
		Description: req.Description,
	}
	if hasStart {
		ex.TimeStart = req.TimeStart
		ex.TimeEnd = req.TimeEnd
	}

	return ex, true
}

// ======================================================
// LIST
// ======================================================

func (h *ExceptionHandler) List(c *gin.Context) {
	loc, ok := h.findLocation(c)
	if !ok {
		return
	}

	q := h.db.Where("location_id = ?", loc.ID)

	// Filtro opcional: só exceções que tocam um intervalo de datas.
	if from := c.Query("from"); from != "" {
		if d, err := parseDateInLocation(loc, from); err == nil {
			q = q.Where("date_end >= ?", d)
		}
	}
	if to := c.Query("to"); to != "" {
		if d, err := parseDateInLocation(loc, to); err == nil {
			q = q.Where("date_start <= ?", d)
		}
	}

	var exceptions []models.CalendarException
	if err := q.Order("date_start ASC").Find(&exceptions).Error; err != nil {
		httperr.Internal(c, "failed_to_list_exceptions", "Erro ao listar exceções.")
		return
	}

	c.JSON(http.StatusOK, exceptions)
}

// ======================================================
// CREATE
// ======================================================

func (h *ExceptionHandler) Create(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	loc, ok := h.findLocation(c)
	if !ok {
		return
	}

	var req ExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	ex, ok := h.buildException(c, loc, req)
	if !ok {
		return
	}

	if err := h.db.Create(ex).Error; err != nil {
		httperr.Internal(c, "failed_to_create_exception", "Erro ao criar exceção.")
		return
	}

	writeAudit(h.db, accountID, &userID, "exception_created", "calendar_exception", &ex.ID, nil)

	c.JSON(http.StatusCreated, ex)
}

// ======================================================
// UPDATE
// ======================================================

func (h *ExceptionHandler) Update(c *gin.Context) {
	loc, ok := h.findLocation(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("exceptionId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_exception_id", "ID da exceção inválido.")
		return
	}

	var existing models.CalendarException
	if err := h.db.
		Where("id = ? AND location_id = ?", id, loc.ID).
		First(&existing).Error; err != nil {

		httperr.NotFound(c, "exception_not_found", "Exceção não encontrada.")
		return
	}

	var req ExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	ex, ok := h.buildException(c, loc, req)
	if !ok {
		return
	}

	existing.DateStart = ex.DateStart
	existing.DateEnd = ex.DateEnd
	existing.TimeStart = ex.TimeStart
	existing.TimeEnd = ex.TimeEnd
	existing.Kind = ex.Kind
	existing.Description = ex.Description

	if err := h.db.Save(&existing).Error; err != nil {
		httperr.Internal(c, "failed_to_update_exception", "Erro ao salvar exceção.")
		return
	}

	c.JSON(http.StatusOK, existing)
}

// ======================================================
// DELETE
// ======================================================

func (h *ExceptionHandler) Delete(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	loc, ok := h.findLocation(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("exceptionId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_exception_id", "ID da exceção inválido.")
		return
	}

	res := h.db.
		Where("id = ? AND location_id = ?", id, loc.ID).
		Delete(&models.CalendarException{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_exception", "Erro ao remover exceção.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "exception_not_found", "Exceção não encontrada.")
		return
	}

	entityID := uint(id)
	writeAudit(h.db, accountID, &userID, "exception_deleted", "calendar_exception", &entityID, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
