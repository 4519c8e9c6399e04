package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/agendaflow/salon-scheduler/internal/domain/booking"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/models"
	"github.com/agendaflow/salon-scheduler/internal/schedule"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Location / Agent
// --------------------------------------------------

func (r *BookingGormRepository) GetLocationByID(
	ctx context.Context,
	accountID uint,
	id uint,
) (*models.Location, error) {

	var loc models.Location
	if err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *BookingGormRepository) GetLocationBySlug(
	ctx context.Context,
	slug string,
) (*models.Location, error) {

	var loc models.Location
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND status = 'active'", slug).
		First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *BookingGormRepository) GetAgent(
	ctx context.Context,
	accountID uint,
	agentID uint,
) (*models.Agent, error) {

	var agent models.Agent
	if err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", agentID, accountID).
		First(&agent).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) ListServices(
	ctx context.Context,
	accountID uint,
	ids []uint,
) ([]models.Service, error) {

	if len(ids) == 0 {
		return nil, nil
	}

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND id IN ?", accountID, ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *BookingGormRepository) ListExtras(
	ctx context.Context,
	accountID uint,
	ids []uint,
) ([]models.ServiceExtra, error) {

	if len(ids) == 0 {
		return nil, nil
	}

	var extras []models.ServiceExtra
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND id IN ?", accountID, ids).
		Find(&extras).Error; err != nil {
		return nil, err
	}
	return extras, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) GetClientByID(
	ctx context.Context,
	accountID uint,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	accountID uint,
	name string,
	phone string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND phone = ?", accountID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		AccountID: accountID,
		Name:      name,
		Phone:     phone,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Schedule snapshot
// --------------------------------------------------

// WeekFor lê as linhas persistidas (possivelmente incompletas) e completa
// com MergeWithDefault: dias ausentes viram fechados.
func (r *BookingGormRepository) WeekFor(
	ctx context.Context,
	ownerType string,
	ownerID uint,
) (schedule.Week, error) {

	var days []models.ScheduleDay
	if err := r.db.WithContext(ctx).
		Preload("Periods").
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}

	partial := make([]schedule.DaySchedule, 0, len(days))
	for _, d := range days {
		day := schedule.DaySchedule{Weekday: d.Weekday, Open: d.Open}
		for _, p := range d.Periods {
			day.Periods = append(day.Periods, schedule.TimePeriod{Start: p.StartTime, End: p.EndTime})
		}
		partial = append(partial, day)
	}

	return schedule.MergeWithDefault(partial), nil
}

func (r *BookingGormRepository) ListExceptions(
	ctx context.Context,
	locationID uint,
	date time.Time,
) ([]schedule.Exception, error) {

	var rows []models.CalendarException
	if err := r.db.WithContext(ctx).
		Where("location_id = ? AND date_start <= ? AND date_end >= ?",
			locationID, endOfDay(date), startOfDay(date)).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]schedule.Exception, 0, len(rows))
	for _, e := range rows {
		exc := schedule.Exception{
			ID:        e.ID,
			DateStart: e.DateStart,
			DateEnd:   e.DateEnd,
			Kind:      e.Kind,
		}
		if e.TimeStart != nil {
			exc.TimeStart = *e.TimeStart
		}
		if e.TimeEnd != nil {
			exc.TimeEnd = *e.TimeEnd
		}
		out = append(out, exc)
	}
	return out, nil
}

func (r *BookingGormRepository) ListDayAppointments(
	ctx context.Context,
	agentID uint,
	dayStart time.Time,
	dayEnd time.Time,
	excludeID uint,
) ([]schedule.Booking, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"agent_id = ? AND status IN ('pending', 'approved') AND start_time >= ? AND start_time < ?",
			agentID, dayStart, dayEnd,
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var aps []models.Appointment
	if err := q.Order("start_time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}

	out := make([]schedule.Booking, 0, len(aps))
	for _, ap := range aps {
		out = append(out, schedule.Booking{
			ID:    ap.ID,
			Start: ap.StartTime.In(dayStart.Location()).Format("15:04"),
			End:   ap.EndTime.In(dayStart.Location()).Format("15:04"),
		})
	}
	return out, nil
}

// ListBlocks retorna bloqueios da data mais os recorrentes (date IS NULL).
// O endpoint de origem pode devolver vazio; chamadores toleram isso.
func (r *BookingGormRepository) ListBlocks(
	ctx context.Context,
	agentID uint,
	date time.Time,
) ([]schedule.Booking, error) {

	var blocks []models.UnavailableBlock
	if err := r.db.WithContext(ctx).
		Where(
			"agent_id = ? AND (date IS NULL OR (date >= ? AND date < ?))",
			agentID, startOfDay(date), endOfDay(date),
		).
		Find(&blocks).Error; err != nil {
		return nil, err
	}

	out := make([]schedule.Booking, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, schedule.Booking{ID: b.ID, Start: b.StartTime, End: b.EndTime})
	}
	return out, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *BookingGormRepository) CreateAppointmentIfFree(
	ctx context.Context,
	ap *models.Appointment,
	serviceIDs []uint,
	extraIDs []uint,
) error {
	return r.writeIfFree(ctx, ap, serviceIDs, extraIDs, false)
}

func (r *BookingGormRepository) UpdateAppointmentIfFree(
	ctx context.Context,
	ap *models.Appointment,
	serviceIDs []uint,
	extraIDs []uint,
) error {
	return r.writeIfFree(ctx, ap, serviceIDs, extraIDs, true)
}

// writeIfFree fecha a corrida entre a escolha do horário e o envio: o
// conflito é checado de novo dentro da transação, com lock, imediatamente
// antes de gravar.
func (r *BookingGormRepository) writeIfFree(
	ctx context.Context,
	ap *models.Appointment,
	serviceIDs []uint,
	extraIDs []uint,
	update bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		q := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"agent_id = ? AND status IN ('pending', 'approved') AND start_time < ? AND end_time > ?",
				ap.AgentID, ap.EndTime, ap.StartTime,
			)
		if update {
			q = q.Where("id <> ?", ap.ID)
		}

		var count int64
		if err := q.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("slot_unavailable")
		}

		if update {
			if err := tx.Save(ap).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Create(ap).Error; err != nil {
				return err
			}
		}

		if err := r.replaceItems(tx, ap, serviceIDs, extraIDs); err != nil {
			return err
		}

		return nil
	})
}

func (r *BookingGormRepository) replaceItems(
	tx *gorm.DB,
	ap *models.Appointment,
	serviceIDs []uint,
	extraIDs []uint,
) error {

	var services []models.Service
	if len(serviceIDs) > 0 {
		if err := tx.Where("id IN ?", serviceIDs).Find(&services).Error; err != nil {
			return err
		}
	}
	if err := tx.Model(ap).Association("Services").Replace(services); err != nil {
		return err
	}

	var extras []models.ServiceExtra
	if len(extraIDs) > 0 {
		if err := tx.Where("id IN ?", extraIDs).Find(&extras).Error; err != nil {
			return err
		}
	}
	if err := tx.Model(ap).Association("Extras").Replace(extras); err != nil {
		return err
	}

	return nil
}

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	accountID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Preload("Extras").
		Where("id = ? AND account_id = ?", appointmentID, accountID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *BookingGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	locationID uint,
	agentID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Preload("Extras").
		Where("start_time >= ? AND start_time < ?", start, end)

	if locationID != 0 {
		q = q.Where("location_id = ?", locationID)
	}
	if agentID != 0 {
		q = q.Where("agent_id = ?", agentID)
	}

	var aps []models.Appointment
	if err := q.Order("start_time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).Add(24 * time.Hour)
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
