package booking

import (
	"context"
	"time"

	"github.com/agendaflow/salon-scheduler/internal/models"
	"github.com/agendaflow/salon-scheduler/internal/schedule"
)

type Repository interface {
	// -------- Location / Agent --------
	GetLocationByID(
		ctx context.Context,
		accountID uint,
		id uint,
	) (*models.Location, error)

	GetLocationBySlug(
		ctx context.Context,
		slug string,
	) (*models.Location, error)

	GetAgent(
		ctx context.Context,
		accountID uint,
		agentID uint,
	) (*models.Agent, error)

	// -------- Catalog --------
	ListServices(
		ctx context.Context,
		accountID uint,
		ids []uint,
	) ([]models.Service, error)

	ListExtras(
		ctx context.Context,
		accountID uint,
		ids []uint,
	) ([]models.ServiceExtra, error)

	// -------- Client --------
	GetClientByID(
		ctx context.Context,
		accountID uint,
		id uint,
	) (*models.Client, error)

	GetOrCreateClient(
		ctx context.Context,
		accountID uint,
		name string,
		phone string,
	) (*models.Client, error)

	// -------- Schedule snapshot --------
	WeekFor(
		ctx context.Context,
		ownerType string,
		ownerID uint,
	) (schedule.Week, error)

	ListExceptions(
		ctx context.Context,
		locationID uint,
		date time.Time,
	) ([]schedule.Exception, error)

	ListDayAppointments(
		ctx context.Context,
		agentID uint,
		dayStart time.Time,
		dayEnd time.Time,
		excludeID uint,
	) ([]schedule.Booking, error)

	ListBlocks(
		ctx context.Context,
		agentID uint,
		date time.Time,
	) ([]schedule.Booking, error)

	// -------- Appointment --------
	CreateAppointmentIfFree(
		ctx context.Context,
		ap *models.Appointment,
		serviceIDs []uint,
		extraIDs []uint,
	) error

	UpdateAppointmentIfFree(
		ctx context.Context,
		ap *models.Appointment,
		serviceIDs []uint,
		extraIDs []uint,
	) error

	GetAppointment(
		ctx context.Context,
		accountID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		locationID uint,
		agentID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
