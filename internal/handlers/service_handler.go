package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/middleware"
	"github.com/agendaflow/salon-scheduler/internal/models"
)

// ServiceHandler cobre o catálogo da conta: serviços e adicionais.
type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	DurationMin *int     `json:"duration_min"`
	Price       *float64 `json:"price"`
	Active      *bool    `json:"active"`
	Category    *string  `json:"category"`
}

type CreateExtraRequest struct {
	Name        string  `json:"name" binding:"required"`
	DurationMin int     `json:"duration_min" binding:"min=0"`
	Price       float64 `json:"price"`
}

type UpdateExtraRequest struct {
	Name        *string  `json:"name"`
	DurationMin *int     `json:"duration_min"`
	Price       *float64 `json:"price"`
	Active      *bool    `json:"active"`
}

// ======================================================
// SERVICES
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	q := h.db.Where("account_id = ?", accountID)

	if category := strings.TrimSpace(strings.ToLower(c.Query("category"))); category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if query := strings.TrimSpace(strings.ToLower(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if c.Query("active") == "true" {
		q = q.Where("active = true")
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	service := models.Service{
		AccountID:   accountID,
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Category:    req.Category,
		Active:      true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	writeAudit(h.db, accountID, &userID, "service_created", "service", &service.ID, nil)

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "ID do serviço inválido.")
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND account_id = ?", id, accountID).
		First(&service).Error; err != nil {

		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			httperr.BadRequest(c, "invalid_duration", "Duração deve ser positiva (em minutos).")
			return
		}
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}
	if req.Category != nil {
		service.Category = *req.Category
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao salvar serviço.")
		return
	}

	c.JSON(http.StatusOK, service)
}

// ======================================================
// EXTRAS
// ======================================================

func (h *ServiceHandler) ListExtras(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	q := h.db.Where("account_id = ?", accountID)
	if c.Query("active") == "true" {
		q = q.Where("active = true")
	}

	var extras []models.ServiceExtra
	if err := q.Order("id ASC").Find(&extras).Error; err != nil {
		httperr.Internal(c, "failed_to_list_extras", "Erro ao listar adicionais.")
		return
	}

	c.JSON(http.StatusOK, extras)
}

func (h *ServiceHandler) CreateExtra(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateExtraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	extra := models.ServiceExtra{
		AccountID:   accountID,
		Name:        req.Name,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Active:      true,
	}

	if err := h.db.Create(&extra).Error; err != nil {
		httperr.Internal(c, "failed_to_create_extra", "Erro ao criar adicional.")
		return
	}

	writeAudit(h.db, accountID, &userID, "extra_created", "service_extra", &extra.ID, nil)

	c.JSON(http.StatusCreated, extra)
}

func (h *ServiceHandler) UpdateExtra(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_extra_id", "ID do adicional inválido.")
		return
	}

	var extra models.ServiceExtra
	if err := h.db.
		Where("id = ? AND account_id = ?", id, accountID).
		First(&extra).Error; err != nil {

		httperr.NotFound(c, "extra_not_found", "Adicional não encontrado.")
		return
	}

	var req UpdateExtraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		extra.Name = *req.Name
	}
	if req.DurationMin != nil {
		if *req.DurationMin < 0 {
			httperr.BadRequest(c, "invalid_duration", "Duração não pode ser negativa.")
			return
		}
		extra.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		extra.Price = *req.Price
	}
	if req.Active != nil {
		extra.Active = *req.Active
	}

	if err := h.db.Save(&extra).Error; err != nil {
		httperr.Internal(c, "failed_to_update_extra", "Erro ao salvar adicional.")
		return
	}

	c.JSON(http.StatusOK, extra)
}
