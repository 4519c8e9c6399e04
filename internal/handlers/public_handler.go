package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/agendaflow/salon-scheduler/internal/domain/booking"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/models"
	"github.com/agendaflow/salon-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler atende o link público da unidade, sem autenticação. Reservas
// criadas por aqui nascem pendentes e esperam aprovação no painel.
type PublicHandler struct {
	db           *gorm.DB
	repo         domain.Repository
	createUC     *appointment.CreateAppointment
	availability *appointment.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	repo domain.Repository,
	createUC *appointment.CreateAppointment,
	availability *appointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		repo:         repo,
		createUC:     createUC,
		availability: availability,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicBookingRequest struct {
	AgentID    uint   `json:"agent_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required"`
	ExtraIDs   []uint `json:"extra_ids"`

	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:mm

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`

	Observations string `json:"observations"`
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *PublicHandler) findBySlug(c *gin.Context) (*models.Location, bool) {
	loc, err := h.repo.GetLocationBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.NotFound(c, "location_not_found", "Unidade não encontrada.")
		return nil, false
	}
	return loc, true
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	loc, ok := h.findBySlug(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("account_id = ? AND active = true", loc.AccountID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	var extras []models.ServiceExtra
	if err := h.db.
		Where("account_id = ? AND active = true", loc.AccountID).
		Order("id ASC").
		Find(&extras).Error; err != nil {

		httperr.Internal(c, "failed_to_list_extras", "Erro ao listar adicionais.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location": gin.H{
			"id":      loc.ID,
			"name":    loc.Name,
			"slug":    loc.Slug,
			"phone":   loc.Phone,
			"address": loc.Address,
		},
		"services": services,
		"extras":   extras,
	})
}

func (h *PublicHandler) ListAgents(c *gin.Context) {
	loc, ok := h.findBySlug(c)
	if !ok {
		return
	}

	var agents []models.Agent
	if err := h.db.
		Where(
			"account_id = ? AND active = true AND (location_id = ? OR id IN (SELECT agent_id FROM agent_locations WHERE location_id = ?))",
			loc.AccountID, loc.ID, loc.ID,
		).
		Order("name ASC").
		Find(&agents).Error; err != nil {

		httperr.Internal(c, "failed_to_list_agents", "Erro ao listar profissionais.")
		return
	}

	out := make([]gin.H, 0, len(agents))
	for _, a := range agents {
		out = append(out, gin.H{
			"id":         a.ID,
			"name":       a.Name,
			"avatar_url": a.AvatarURL,
		})
	}

	c.JSON(http.StatusOK, out)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

// AvailabilityForClient usa o mesmo use case do painel, com grade de 30min
// por padrão para o formulário de reserva.
func (h *PublicHandler) AvailabilityForClient(c *gin.Context) {
	loc, ok := h.findBySlug(c)
	if !ok {
		return
	}

	agentID, err := strconv.ParseUint(c.Query("agent_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "missing_agent", "Profissional obrigatório.")
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slotMinutes := 30
	if v, err := strconv.Atoi(c.Query("slot_minutes")); err == nil && v > 0 {
		slotMinutes = v
	}

	av, err := h.availability.Execute(
		c.Request.Context(),
		loc.AccountID,
		loc.ID,
		uint(agentID),
		date,
		slotMinutes,
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, av)
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	loc, ok := h.findBySlug(c)
	if !ok {
		return
	}

	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		AccountID: loc.AccountID,
		Public:    true,
		Submit: domain.SubmitInput{
			AgentID:      req.AgentID,
			ServiceIDs:   req.ServiceIDs,
			ExtraIDs:     req.ExtraIDs,
			Date:         req.Date,
			StartTime:    req.Time,
			ClientName:   req.ClientName,
			ClientPhone:  req.ClientPhone,
			LocationID:   loc.ID,
			Observations: req.Observations,
		},
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         ap.ID,
		"status":     ap.Status,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
	})
}
