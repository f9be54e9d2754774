package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityRule is a doctor's recurring weekly availability pattern.
// Concrete bookable slots are generated from these rules over a horizon;
// the rule itself carries no booking state.
type AvailabilityRule struct {
	ID                  int          `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID            uuid.UUID    `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DayOfWeek           time.Weekday `gorm:"not null" json:"day_of_week"` // 0=Sunday .. 6=Saturday
	StartTime           string       `gorm:"type:time;not null" json:"start_time"` // Format: HH:MM
	EndTime             string       `gorm:"type:time;not null" json:"end_time"`   // Format: HH:MM
	SlotDurationMinutes int          `gorm:"not null" json:"slot_duration_minutes"`
	Position            int          `gorm:"not null;default:0" json:"position"` // declaration order within a submission
	CreatedAt           time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (AvailabilityRule) TableName() string {
	return "availability_rules"
}
