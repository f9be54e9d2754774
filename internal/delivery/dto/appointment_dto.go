package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	StartsAt string    `json:"starts_at" validate:"required"` // RFC 3339
	Reason   string    `json:"reason" validate:"required,min=3"`
}

type UpdateAppointmentRequest struct {
	Reason string `json:"reason" validate:"omitempty,min=3"`
	Notes  string `json:"notes" validate:"omitempty"`
	Status string `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          uuid.UUID        `json:"id"`
	PatientID   uuid.UUID        `json:"patient_id"`
	DoctorID    uuid.UUID        `json:"doctor_id"`
	SlotID      *uuid.UUID       `json:"slot_id,omitempty"`
	StartsAt    time.Time        `json:"starts_at"`
	Reason      string           `json:"reason"`
	Notes       string           `json:"notes,omitempty"`
	Status      string           `json:"status"`
	CancelledAt *time.Time       `json:"cancelled_at,omitempty"`
	Doctor      *DoctorResponse  `json:"doctor,omitempty"`
	Patient     *PatientResponse `json:"patient,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
