package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/media"
	"github.com/agendaflow/salon-scheduler/internal/middleware"
	"github.com/agendaflow/salon-scheduler/internal/models"
	"github.com/agendaflow/salon-scheduler/internal/schedule"
	"github.com/agendaflow/salon-scheduler/internal/storage"
)

// Limite do upload de avatar antes do reencode.
const maxAvatarBytes = 5 << 20

type AgentHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
}

func NewAgentHandler(db *gorm.DB, uploader *storage.Uploader) *AgentHandler {
	return &AgentHandler{
		db:       db,
		uploader: uploader,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAgentRequest struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone"`
	LocationID uint   `json:"location_id" binding:"required"`

	// Outras unidades em que o profissional também atende.
	LocationIDs []uint `json:"location_ids"`
}

type UpdateAgentRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	LocationID  *uint   `json:"location_id"`
	LocationIDs []uint  `json:"location_ids"`
	CustomHours *bool   `json:"custom_hours"`
	Active      *bool   `json:"active"`
}

type BlockRequest struct {
	// Date vazia cria um bloqueio recorrente (vale todo dia).
	Date      string `json:"date"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Reason    string `json:"reason"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *AgentHandler) findAgent(c *gin.Context, param string) (*models.Agent, bool) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_agent_id", "ID do profissional inválido.")
		return nil, false
	}

	var agent models.Agent
	if err := h.db.
		Preload("Locations").
		Where("id = ? AND account_id = ?", id, accountID).
		First(&agent).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "agent_not_found", "Profissional não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_agent", "Erro ao buscar profissional.")
		return nil, false
	}

	return &agent, true
}

func (h *AgentHandler) accountLocations(accountID uint, ids []uint) ([]models.Location, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var locations []models.Location
	err := h.db.
		Where("account_id = ? AND id IN ?", accountID, ids).
		Find(&locations).Error
	return locations, err
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AgentHandler) List(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	q := h.db.Where("account_id = ?", accountID)

	if locationID := c.Query("location_id"); locationID != "" {
		if id, err := strconv.ParseUint(locationID, 10, 64); err == nil {
			q = q.Where(
				"location_id = ? OR id IN (SELECT agent_id FROM agent_locations WHERE location_id = ?)",
				id, id,
			)
		}
	}

	if c.Query("active") == "true" {
		q = q.Where("active = true")
	}

	var agents []models.Agent
	if err := q.Order("name ASC").Find(&agents).Error; err != nil {
		httperr.Internal(c, "failed_to_list_agents", "Erro ao listar profissionais.")
		return
	}

	c.JSON(http.StatusOK, agents)
}

func (h *AgentHandler) Get(c *gin.Context) {
	agent, ok := h.findAgent(c, "id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, agent)
}

// ======================================================
// CREATE
// ======================================================

func (h *AgentHandler) Create(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	var count int64
	h.db.Model(&models.Location{}).
		Where("id = ? AND account_id = ?", req.LocationID, accountID).
		Count(&count)
	if count == 0 {
		httperr.BadRequest(c, "location_not_found", "Unidade não encontrada.")
		return
	}

	agent := models.Agent{
		AccountID:  accountID,
		LocationID: req.LocationID,
		Name:       req.Name,
		Phone:      req.Phone,
		Active:     true,
	}

	if err := h.db.Create(&agent).Error; err != nil {
		httperr.Internal(c, "failed_to_create_agent", "Erro ao criar profissional.")
		return
	}

	if len(req.LocationIDs) > 0 {
		locations, err := h.accountLocations(accountID, req.LocationIDs)
		if err == nil && len(locations) > 0 {
			h.db.Model(&agent).Association("Locations").Replace(locations)
		}
	}

	writeAudit(h.db, accountID, &userID, "agent_created", "agent", &agent.ID, nil)

	c.JSON(http.StatusCreated, agent)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AgentHandler) Update(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	agent, ok := h.findAgent(c, "id")
	if !ok {
		return
	}

	var req UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		agent.Name = *req.Name
	}
	if req.Phone != nil {
		agent.Phone = *req.Phone
	}
	if req.LocationID != nil {
		var count int64
		h.db.Model(&models.Location{}).
			Where("id = ? AND account_id = ?", *req.LocationID, accountID).
			Count(&count)
		if count == 0 {
			httperr.BadRequest(c, "location_not_found", "Unidade não encontrada.")
			return
		}
		agent.LocationID = *req.LocationID
	}
	if req.CustomHours != nil {
		agent.CustomHours = *req.CustomHours
	}
	if req.Active != nil {
		agent.Active = *req.Active
	}

	if err := h.db.Save(agent).Error; err != nil {
		httperr.Internal(c, "failed_to_update_agent", "Erro ao salvar profissional.")
		return
	}

	if req.LocationIDs != nil {
		locations, err := h.accountLocations(accountID, req.LocationIDs)
		if err == nil {
			h.db.Model(agent).Association("Locations").Replace(locations)
		}
	}

	c.JSON(http.StatusOK, agent)
}

// ======================================================
// AVATAR
// ======================================================

// UploadAvatar recebe um JPEG/PNG multipart, reencoda para webp 256px e
// grava no bucket com chave aleatória.
func (h *AgentHandler) UploadAvatar(c *gin.Context) {
	agent, ok := h.findAgent(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_avatar_file", "Arquivo de avatar obrigatório (campo avatar).")
		return
	}
	if file.Size > maxAvatarBytes {
		httperr.BadRequest(c, "avatar_too_large", "Imagem acima de 5MB.")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_avatar", "Erro ao ler o arquivo enviado.")
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		httperr.Internal(c, "failed_to_read_avatar", "Erro ao ler o arquivo enviado.")
		return
	}

	encoded, err := media.EncodeAvatar(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida. Envie JPEG ou PNG.")
		return
	}

	key := fmt.Sprintf("avatars/%d/%s.webp", agent.ID, uuid.NewString())

	url, err := h.uploader.Put(c.Request.Context(), key, "image/webp", encoded)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_avatar", "Erro ao enviar a imagem.")
		return
	}

	agent.AvatarURL = url
	if err := h.db.Save(agent).Error; err != nil {
		httperr.Internal(c, "failed_to_update_agent", "Erro ao salvar profissional.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

// ======================================================
// BLOCKS
// ======================================================

func (h *AgentHandler) ListBlocks(c *gin.Context) {
	agent, ok := h.findAgent(c, "id")
	if !ok {
		return
	}

	var blocks []models.UnavailableBlock
	if err := h.db.
		Where("agent_id = ?", agent.ID).
		Order("date ASC NULLS FIRST, start_time ASC").
		Find(&blocks).Error; err != nil {

		httperr.Internal(c, "failed_to_list_blocks", "Erro ao listar bloqueios.")
		return
	}

	c.JSON(http.StatusOK, blocks)
}

func (h *AgentHandler) CreateBlock(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	agent, ok := h.findAgent(c, "id")
	if !ok {
		return
	}

	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	p := schedule.TimePeriod{Start: req.StartTime, End: req.EndTime}
	if !p.Valid() {
		httperr.BadRequest(c, "invalid_time_range", "Intervalo de horário inválido.")
		return
	}

	block := models.UnavailableBlock{
		AgentID:   agent.ID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	}

	if req.Date != "" {
		var loc models.Location
		if err := h.db.First(&loc, agent.LocationID).Error; err == nil {
			if d, err := parseDateInLocation(&loc, req.Date); err == nil {
				block.Date = &d
			} else {
				httperr.BadRequest(c, "invalid_date", "Data inválida.")
				return
			}
		}
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_block", "Erro ao criar bloqueio.")
		return
	}

	writeAudit(h.db, accountID, &userID, "block_created", "unavailable_block", &block.ID, nil)

	c.JSON(http.StatusCreated, block)
}

func (h *AgentHandler) DeleteBlock(c *gin.Context) {
	agent, ok := h.findAgent(c, "id")
	if !ok {
		return
	}

	blockID, err := strconv.ParseUint(c.Param("blockId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_block_id", "ID do bloqueio inválido.")
		return
	}

	res := h.db.
		Where("id = ? AND agent_id = ?", blockID, agent.ID).
		Delete(&models.UnavailableBlock{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_block", "Erro ao remover bloqueio.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "block_not_found", "Bloqueio não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
