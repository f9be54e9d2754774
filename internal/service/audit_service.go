package service

import (
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	Log(tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, metadata entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// Log records an audit trail row on the caller's transaction so the entry
// commits or rolls back together with the action it describes.
func (s *auditService) Log(tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, metadata entity.JSON) error {
	if metadata == nil {
		metadata = entity.JSON{}
	}
	metadata["entity"] = entityName
	metadata["entity_id"] = entityID

	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
