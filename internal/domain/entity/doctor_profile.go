package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization  string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	ExperienceYears int             `gorm:"not null;default:0" json:"experience_years"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	Biography       string          `gorm:"type:text" json:"biography,omitempty"`

	// Relationships
	User              User               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AvailabilityRules []AvailabilityRule `gorm:"foreignKey:DoctorID" json:"availability_rules,omitempty"`
	Slots             []Slot             `gorm:"foreignKey:DoctorID" json:"slots,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
