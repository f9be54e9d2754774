package repository

import (
	"clinic-booking-api/internal/domain/entity"
	domainRepo "clinic-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityRuleRepository struct{}

func NewAvailabilityRuleRepository() domainRepo.AvailabilityRuleRepository {
	return &availabilityRuleRepository{}
}

func (r *availabilityRuleRepository) ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, rules []entity.AvailabilityRule) error {
	if err := db.Where("doctor_id = ?", doctorID).Delete(&entity.AvailabilityRule{}).Error; err != nil {
		return err
	}
	if len(rules) == 0 {
		return nil
	}
	return db.Create(&rules).Error
}

func (r *availabilityRuleRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityRule, error) {
	var rules []entity.AvailabilityRule
	err := db.Where("doctor_id = ?", doctorID).Order("position ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}
