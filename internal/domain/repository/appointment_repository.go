package repository

import (
	"time"

	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentFilter narrows appointment listings. Zero values mean
// "no filter" for that field.
type AppointmentFilter struct {
	Status entity.AppointmentStatus
	From   time.Time
	To     time.Time
}

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindActiveByPatientDoctorTime finds a non-cancelled appointment for
	// the (patient, doctor, minute-truncated timestamp) triple.
	FindActiveByPatientDoctorTime(db *gorm.DB, patientID, doctorID uuid.UUID, startsAt time.Time) (*entity.Appointment, error)
	// FindForUser returns appointments where the user is either the
	// patient or the doctor.
	FindForUser(db *gorm.DB, userID uuid.UUID, filter *AppointmentFilter) ([]entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	CountAll(db *gorm.DB) (int64, error)
	CountByStatus(db *gorm.DB, status entity.AppointmentStatus) (int64, error)
}
