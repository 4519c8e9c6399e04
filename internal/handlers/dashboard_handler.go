package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/middleware"
	"github.com/agendaflow/salon-scheduler/internal/models"
	"github.com/agendaflow/salon-scheduler/internal/timezone"
)

// DashboardHandler resume o movimento de um período: contagem por status e
// faturamento dos concluídos (valor menos desconto).
type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	locationID, err := strconv.ParseUint(c.Query("location_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "missing_location", "Unidade obrigatória.")
		return
	}

	var loc models.Location
	if err := h.db.
		Where("id = ? AND account_id = ?", locationID, accountID).
		First(&loc).Error; err != nil {

		httperr.NotFound(c, "location_not_found", "Unidade não encontrada.")
		return
	}

	tz := timezone.Location(loc.Timezone)

	from, err := time.ParseInLocation("2006-01-02", c.Query("from"), tz)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inicial inválida.")
		return
	}
	to, err := time.ParseInLocation("2006-01-02", c.Query("to"), tz)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data final inválida.")
		return
	}
	end := to.Add(24 * time.Hour)

	base := h.db.Model(&models.Appointment{}).
		Where("location_id = ? AND start_time >= ? AND start_time < ?", loc.ID, from, end)

	var counts []statusCount
	if err := base.Session(&gorm.Session{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error; err != nil {

		httperr.Internal(c, "failed_to_summarize", "Erro ao montar o resumo.")
		return
	}

	var revenue float64
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", "completed").
		Select("COALESCE(SUM(total_value - discount), 0)").
		Scan(&revenue).Error; err != nil {

		httperr.Internal(c, "failed_to_summarize", "Erro ao montar o resumo.")
		return
	}

	byStatus := gin.H{}
	var total int64
	for _, sc := range counts {
		byStatus[sc.Status] = sc.Count
		total += sc.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"location_id": loc.ID,
		"from":        from.Format("2006-01-02"),
		"to":          to.Format("2006-01-02"),
		"total":       total,
		"by_status":   byStatus,
		"revenue":     revenue,
	})
}
