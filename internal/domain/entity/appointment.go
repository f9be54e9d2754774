package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// ValidStatus reports whether s is one of the known appointment statuses.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// statusTransitions is the single source of truth for the appointment
// state machine. Terminal states (completed, cancelled) allow nothing;
// re-cancelling an already cancelled appointment is handled as an
// idempotent no-op by the usecase, not here.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
	AppointmentStatusCompleted: {},
	AppointmentStatusCancelled: {},
}

// CanTransitionTo reports whether the status change from s to target is
// allowed by the state machine.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s is a final state
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// Appointment represents a patient's booking of one doctor slot
type Appointment struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	SlotID      *uuid.UUID        `gorm:"type:uuid;index" json:"slot_id,omitempty"`
	StartsAt    time.Time         `gorm:"not null;index" json:"starts_at"`
	Reason      string            `gorm:"type:text;not null" json:"reason"`
	Notes       string            `gorm:"type:text" json:"notes,omitempty"`
	Status      AppointmentStatus `gorm:"type:appointment_status;not null;default:'pending';index" json:"status"`
	CancelledAt *time.Time        `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// InvolvesUser reports whether userID is the appointment's patient or doctor.
func (a *Appointment) InvolvesUser(userID uuid.UUID) bool {
	return a.PatientID == userID || a.DoctorID == userID
}

// Cancel marks the appointment cancelled and stamps the cancellation time
func (a *Appointment) Cancel(now time.Time) {
	a.Status = AppointmentStatusCancelled
	a.CancelledAt = &now
}
