package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/agendaflow/salon-scheduler/internal/domain/booking"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/httpresp"
	"github.com/agendaflow/salon-scheduler/internal/middleware"
	"github.com/agendaflow/salon-scheduler/internal/payments"
	"github.com/agendaflow/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC      *appointment.CreateAppointment
	updateUC      *appointment.UpdateAppointment
	approveUC     *appointment.ApproveAppointment
	cancelUC      *appointment.CancelAppointment
	completeUC    *appointment.CompleteAppointment
	noShowUC      *appointment.MarkNoShow
	listByDateUC  *appointment.ListAppointmentsByDate
	listByMonthUC *appointment.ListAppointmentsByMonth
	availability  *appointment.GetAvailability

	paymentLinks payments.LinkGenerator
	repo         domain.Repository
}

func NewAppointmentHandler(
	createUC *appointment.CreateAppointment,
	updateUC *appointment.UpdateAppointment,
	approveUC *appointment.ApproveAppointment,
	cancelUC *appointment.CancelAppointment,
	completeUC *appointment.CompleteAppointment,
	noShowUC *appointment.MarkNoShow,
	listByDateUC *appointment.ListAppointmentsByDate,
	listByMonthUC *appointment.ListAppointmentsByMonth,
	availability *appointment.GetAvailability,
	paymentLinks payments.LinkGenerator,
	repo domain.Repository,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:      createUC,
		updateUC:      updateUC,
		approveUC:     approveUC,
		cancelUC:      cancelUC,
		completeUC:    completeUC,
		noShowUC:      noShowUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
		availability:  availability,
		paymentLinks:  paymentLinks,
		repo:          repo,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AppointmentRequest struct {
	LocationID uint   `json:"location_id" binding:"required"`
	AgentID    uint   `json:"agent_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required"`
	ExtraIDs   []uint `json:"extra_ids"`

	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:mm

	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`

	Observations string  `json:"observations"`
	Discount     float64 `json:"discount"`
}

func (r AppointmentRequest) submit() domain.SubmitInput {
	return domain.SubmitInput{
		AgentID:      r.AgentID,
		ServiceIDs:   r.ServiceIDs,
		ExtraIDs:     r.ExtraIDs,
		Date:         r.Date,
		StartTime:    r.Time,
		ClientID:     r.ClientID,
		ClientName:   r.ClientName,
		ClientPhone:  r.ClientPhone,
		LocationID:   r.LocationID,
		Observations: r.Observations,
		Discount:     r.Discount,
	}
}

// ======================================================
// HELPERS
// ======================================================

// writeBusinessError converte o código de negócio num status HTTP. Códigos
// *_not_found viram 404, o resto 400; erro não-negócio vira 500.
func writeBusinessError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	if strings.HasSuffix(be.Code, "_not_found") {
		httperr.NotFound(c, be.Code, "Registro não encontrado.")
		return
	}
	httperr.BadRequest(c, be.Code, "Operação recusada: "+be.Code+".")
}

func authContext(c *gin.Context) (accountID uint, userID *uint) {
	accountID = c.MustGet(middleware.ContextAccountID).(uint)
	uid := c.MustGet(middleware.ContextUserID).(uint)
	return accountID, &uid
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "ID do agendamento inválido.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	accountID, userID := authContext(c)

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		AccountID: accountID,
		UserID:    userID,
		Public:    false,
		Submit:    req.submit(),
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	accountID, userID := authContext(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), appointment.UpdateAppointmentInput{
		AccountID:     accountID,
		UserID:        userID,
		AppointmentID: id,
		Submit:        req.submit(),
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Approve(c *gin.Context) {
	accountID, userID := authContext(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.approveUC.Execute(c.Request.Context(), accountID, userID, id)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	accountID, userID := authContext(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), accountID, userID, id)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	accountID, userID := authContext(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), accountID, userID, id)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	accountID, userID := authContext(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.noShowUC.Execute(c.Request.Context(), accountID, userID, id)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, ap)
}

// ======================================================
// LISTS
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	locationID, err := strconv.ParseUint(c.Query("location_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "missing_location", "Unidade obrigatória.")
		return
	}
	agentID, _ := strconv.ParseUint(c.Query("agent_id"), 10, 64)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	items, err := h.listByDateUC.Execute(
		c.Request.Context(),
		accountID,
		uint(locationID),
		uint(agentID),
		date,
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	locationID, err := strconv.ParseUint(c.Query("location_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "missing_location", "Unidade obrigatória.")
		return
	}
	agentID, _ := strconv.ParseUint(c.Query("agent_id"), 10, 64)

	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	items, err := h.listByMonthUC.Execute(
		c.Request.Context(),
		accountID,
		uint(locationID),
		uint(agentID),
		year,
		month,
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	locationID, err := strconv.ParseUint(c.Query("location_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "missing_location", "Unidade obrigatória.")
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

	slotMinutes, _ := strconv.Atoi(c.Query("slot_minutes"))

	av, err := h.availability.Execute(
		c.Request.Context(),
		accountID,
		uint(locationID),
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

// ======================================================
// PAYMENT LINK
// ======================================================

func (h *AppointmentHandler) PaymentLink(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.repo.GetAppointment(c.Request.Context(), accountID, id)
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	link, err := h.paymentLinks.PaymentLink(c.Request.Context(), ap)
	if err != nil {
		httperr.Internal(c, "failed_to_create_payment_link", "Erro ao gerar link de pagamento.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_url": link})
}
