package entity

import (
	"time"

	"github.com/google/uuid"
)

// Slot is a single bookable time instant belonging to one doctor.
// SlotTime is a UTC instant truncated to minute precision; (DoctorID,
// SlotTime) is unique per doctor. The UUID gives bookings a stable
// reference that survives timestamp comparison quirks.
type Slot struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_slots_doctor_time" json:"doctor_id"`
	SlotTime  time.Time `gorm:"not null;uniqueIndex:idx_slots_doctor_time" json:"slot_time"`
	IsBooked  bool      `gorm:"not null;default:false;index" json:"is_booked"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Slot) TableName() string {
	return "slots"
}

// TruncateToMinute normalizes a timestamp to UTC minute precision.
// All slot comparisons in the system go through this so that client
// clock-precision drift (seconds, milliseconds) never misses a slot.
func TruncateToMinute(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}
