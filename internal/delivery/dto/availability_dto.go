package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type AvailabilityRuleRequest struct {
	DayOfWeek           int    `json:"day_of_week" validate:"min=0,max=6"` // 0=Sunday .. 6=Saturday
	StartTime           string `json:"start_time" validate:"required"`     // Format: HH:MM
	EndTime             string `json:"end_time" validate:"required"`       // Format: HH:MM
	SlotDurationMinutes int    `json:"slot_duration_minutes" validate:"required,min=1"`
}

type SetAvailabilityRequest struct {
	Rules []AvailabilityRuleRequest `json:"rules" validate:"required,dive"`
}

type AddSlotRequest struct {
	SlotTime string `json:"slot_time" validate:"required"` // RFC 3339
}

type RemoveSlotRequest struct {
	SlotTime string `json:"slot_time" validate:"required"` // RFC 3339
}

// Response DTOs

type SlotResponse struct {
	ID       uuid.UUID `json:"id"`
	DoctorID uuid.UUID `json:"doctor_id"`
	SlotTime time.Time `json:"slot_time"`
	IsBooked bool      `json:"is_booked"`
}

type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// SlotsByDayResponse groups a doctor's slot times by UTC calendar date.
// Keys are YYYY-MM-DD, values are ordered HH:MM strings.
type SlotsByDayResponse struct {
	Days map[string][]string `json:"days"`
}
