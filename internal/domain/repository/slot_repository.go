package repository

import (
	"time"

	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlotRepository interface {
	Create(db *gorm.DB, slot *entity.Slot) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Slot, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, includeBooked bool) ([]entity.Slot, error)
	// FindByDoctorAndTime looks up a slot by its minute-truncated timestamp.
	FindByDoctorAndTime(db *gorm.DB, doctorID uuid.UUID, slotTime time.Time) (*entity.Slot, error)
	// ReplaceForDoctor deletes the doctor's unbooked slots and inserts the
	// merged slot list produced by availability regeneration. Booked rows
	// are never touched.
	ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, merged []entity.Slot) error
	// MarkBooked flips is_booked to true only if it was still false at
	// write time. Returns affected rows: 0 means another booking won the
	// race and the caller must report the slot as unavailable.
	MarkBooked(db *gorm.DB, id uuid.UUID) (int64, error)
	// Release flips is_booked back to false. Best-effort: 0 affected rows
	// is not an error for callers freeing a slot on cancellation.
	Release(db *gorm.DB, id uuid.UUID) (int64, error)
	ReleaseByDoctorAndTime(db *gorm.DB, doctorID uuid.UUID, slotTime time.Time) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
