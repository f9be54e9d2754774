package repository

import (
	"errors"
	"time"

	"clinic-booking-api/internal/domain/entity"
	domainRepo "clinic-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type slotRepository struct{}

func NewSlotRepository() domainRepo.SlotRepository {
	return &slotRepository{}
}

func (r *slotRepository) Create(db *gorm.DB, slot *entity.Slot) error {
	return db.Create(slot).Error
}

func (r *slotRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, includeBooked bool) ([]entity.Slot, error) {
	query := db.Where("doctor_id = ?", doctorID)
	if !includeBooked {
		query = query.Where("is_booked = ?", false)
	}

	var slots []entity.Slot
	err := query.Order("slot_time ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) FindByDoctorAndTime(db *gorm.DB, doctorID uuid.UUID, slotTime time.Time) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.Where("doctor_id = ? AND slot_time = ?", doctorID, entity.TruncateToMinute(slotTime)).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

// ReplaceForDoctor deletes the doctor's unbooked slots and inserts the
// regenerated ones. The merged list already contains the preserved booked
// rows, so those are skipped on insert to avoid duplicate keys.
func (r *slotRepository) ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, merged []entity.Slot) error {
	if err := db.Where("doctor_id = ? AND is_booked = ?", doctorID, false).Delete(&entity.Slot{}).Error; err != nil {
		return err
	}

	fresh := make([]entity.Slot, 0, len(merged))
	for _, slot := range merged {
		if slot.IsBooked {
			continue
		}
		fresh = append(fresh, slot)
	}
	if len(fresh) == 0 {
		return nil
	}
	return db.Create(&fresh).Error
}

// MarkBooked is the optimistic no-double-booking check: the conditional
// update succeeds only if the slot was still unbooked at write time.
func (r *slotRepository) MarkBooked(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Slot{}).
		Where("id = ? AND is_booked = ?", id, false).
		Update("is_booked", true)
	return result.RowsAffected, result.Error
}

func (r *slotRepository) Release(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Slot{}).
		Where("id = ? AND is_booked = ?", id, true).
		Update("is_booked", false)
	return result.RowsAffected, result.Error
}

func (r *slotRepository) ReleaseByDoctorAndTime(db *gorm.DB, doctorID uuid.UUID, slotTime time.Time) (int64, error) {
	result := db.Model(&entity.Slot{}).
		Where("doctor_id = ? AND slot_time = ? AND is_booked = ?", doctorID, entity.TruncateToMinute(slotTime), true).
		Update("is_booked", false)
	return result.RowsAffected, result.Error
}

func (r *slotRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Slot{})
	return result.RowsAffected, result.Error
}
