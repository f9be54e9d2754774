package service

import (
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NotificationService writes in-app notifications. All writes are
// best-effort: a failed notification never fails the booking or
// cancellation that produced it.
type NotificationService interface {
	Notify(db *gorm.DB, userID uuid.UUID, title, text string)
}

type notificationService struct {
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(log *logrus.Logger, notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{
		log:              log,
		notificationRepo: notificationRepo,
	}
}

func (s *notificationService) Notify(db *gorm.DB, userID uuid.UUID, title, text string) {
	notification := &entity.Notification{
		UserID: userID,
		Title:  title,
		Text:   text,
	}

	if err := s.notificationRepo.Create(db, notification); err != nil {
		s.log.Warnf("Failed to create notification for user %s: %+v", userID, err)
	}
}
