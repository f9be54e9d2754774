package repository

import (
	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *entity.Notification) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Notification, error)
	// MarkRead flips is_read for a notification owned by userID.
	MarkRead(db *gorm.DB, id, userID uuid.UUID) (int64, error)
	FindRecent(db *gorm.DB, limit int) ([]entity.Notification, error)
}
