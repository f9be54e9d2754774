package repository

import (
	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityRuleRepository interface {
	// ReplaceForDoctor swaps out the doctor's declared rule set wholesale.
	ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, rules []entity.AvailabilityRule) error
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityRule, error)
}
