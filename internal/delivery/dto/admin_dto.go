package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminStatsResponse struct {
	TotalUsers            int64                  `json:"total_users"`
	TotalDoctors          int64                  `json:"total_doctors"`
	TotalPatients         int64                  `json:"total_patients"`
	TotalAppointments     int64                  `json:"total_appointments"`
	PendingAppointments   int64                  `json:"pending_appointments"`
	CompletedAppointments int64                  `json:"completed_appointments"`
	CancelledAppointments int64                  `json:"cancelled_appointments"`
	RecentNotifications   []NotificationResponse `json:"recent_notifications"`
}

type AuditLogResponse struct {
	ID        int64                  `json:"id"`
	UserID    *uuid.UUID             `json:"user_id,omitempty"`
	Action    string                 `json:"action"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type AuditLogListResponse struct {
	AuditLogs []AuditLogResponse `json:"audit_logs"`
	Total     int                `json:"total"`
}
