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

type LocationHandler struct {
	db *gorm.DB
}

func NewLocationHandler(db *gorm.DB) *LocationHandler {
	return &LocationHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateLocationRequest struct {
	Name    string `json:"name" binding:"required"`
	Slug    string `json:"slug" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type UpdateLocationRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	Status            *string `json:"status"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *LocationHandler) findLocation(c *gin.Context) (*models.Location, bool) {
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

// ======================================================
// LIST / GET
// ======================================================

func (h *LocationHandler) List(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	var locations []models.Location
	if err := h.db.
		Where("account_id = ?", accountID).
		Order("id ASC").
		Find(&locations).Error; err != nil {

		httperr.Internal(c, "failed_to_list_locations", "Erro ao listar unidades.")
		return
	}

	c.JSON(http.StatusOK, locations)
}

func (h *LocationHandler) Get(c *gin.Context) {
	loc, ok := h.findLocation(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, loc)
}

// ======================================================
// CREATE
// ======================================================

// Create abre uma nova unidade. Contas no plano single só podem ter uma.
func (h *LocationHandler) Create(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	var account models.Account
	if err := h.db.First(&account, accountID).Error; err != nil {
		httperr.Internal(c, "account_not_found", "Conta não encontrada.")
		return
	}

	if account.Plan != models.PlanMulti {
		var count int64
		h.db.Model(&models.Location{}).Where("account_id = ?", accountID).Count(&count)
		if count >= 1 {
			httperr.BadRequest(c, "plan_limit_reached", "Seu plano permite apenas uma unidade.")
			return
		}
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	var slugCount int64
	h.db.Model(&models.Location{}).Where("slug = ?", slug).Count(&slugCount)
	if slugCount > 0 {
		httperr.BadRequest(c, "slug_already_exists", "Já existe uma unidade com esse endereço.")
		return
	}

	loc := models.Location{
		AccountID: accountID,
		Name:      req.Name,
		Slug:      slug,
		Phone:     req.Phone,
		Address:   req.Address,
	}

	if err := h.db.Create(&loc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_location", "Erro ao criar unidade.")
		return
	}

	writeAudit(h.db, accountID, &userID, "location_created", "location", &loc.ID, nil)

	c.JSON(http.StatusCreated, loc)
}

// ======================================================
// UPDATE
// ======================================================

func (h *LocationHandler) Update(c *gin.Context) {
	loc, ok := h.findLocation(c)
	if !ok {
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Phone != nil {
		loc.Phone = *req.Phone
	}
	if req.Address != nil {
		loc.Address = *req.Address
	}
	if req.Timezone != nil {
		loc.Timezone = *req.Timezone
	}
	if req.Status != nil {
		if *req.Status != "active" && *req.Status != "inactive" {
			httperr.BadRequest(c, "invalid_status", "Status deve ser active ou inactive.")
			return
		}
		loc.Status = *req.Status
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		loc.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(loc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_location", "Erro ao salvar a unidade.")
		return
	}

	c.JSON(http.StatusOK, loc)
}
