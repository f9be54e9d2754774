package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DoctorResponse struct {
	ID              uuid.UUID       `json:"id"`
	Email           string          `json:"email,omitempty"`
	FullName        string          `json:"full_name,omitempty"`
	LicenseNumber   string          `json:"license_number"`
	Specialization  string          `json:"specialization"`
	ExperienceYears int             `json:"experience_years"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	Biography       string          `json:"biography,omitempty"`
	IsActive        *bool           `json:"is_active,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
