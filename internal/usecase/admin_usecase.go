package usecase

import (
	"context"

	"clinic-booking-api/internal/converter"
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"
	"clinic-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const recentNotificationLimit = 10

type AdminUsecase interface {
	GetStats(ctx context.Context) (*dto.AdminStatsResponse, error)
	ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	ListPatients(ctx context.Context) (*dto.PatientListResponse, error)
	ListAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	ListAuditLogs(ctx context.Context, limit, offset int) (*dto.AuditLogListResponse, error)
	DeleteUser(ctx context.Context, adminID, userID uuid.UUID) error
	DeleteAppointment(ctx context.Context, adminID, appointmentID uuid.UUID) error
}

type adminUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	appointmentRepo    repository.AppointmentRepository
	slotRepo           repository.SlotRepository
	notificationRepo   repository.NotificationRepository
	auditLogRepo       repository.AuditLogRepository
	auditService       service.AuditService
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	slotRepo repository.SlotRepository,
	notificationRepo repository.NotificationRepository,
	auditLogRepo repository.AuditLogRepository,
	auditService service.AuditService,
) AdminUsecase {
	return &adminUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		appointmentRepo:    appointmentRepo,
		slotRepo:           slotRepo,
		notificationRepo:   notificationRepo,
		auditLogRepo:       auditLogRepo,
		auditService:       auditService,
	}
}

func (u *adminUsecase) GetStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	db := u.db.WithContext(ctx)

	totalUsers, err := u.userRepo.CountAll(db)
	if err != nil {
		u.log.Warnf("Failed to count users: %+v", err)
		return nil, err
	}
	totalDoctors, err := u.userRepo.CountByRoleID(db, entity.RoleIDDoctor)
	if err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}
	totalPatients, err := u.userRepo.CountByRoleID(db, entity.RoleIDPatient)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}
	totalAppointments, err := u.appointmentRepo.CountAll(db)
	if err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, err
	}
	pending, err := u.appointmentRepo.CountByStatus(db, entity.AppointmentStatusPending)
	if err != nil {
		return nil, err
	}
	completed, err := u.appointmentRepo.CountByStatus(db, entity.AppointmentStatusCompleted)
	if err != nil {
		return nil, err
	}
	cancelled, err := u.appointmentRepo.CountByStatus(db, entity.AppointmentStatusCancelled)
	if err != nil {
		return nil, err
	}

	recent, err := u.notificationRepo.FindRecent(db, recentNotificationLimit)
	if err != nil {
		u.log.Warnf("Failed to load recent notifications: %+v", err)
		return nil, err
	}

	return &dto.AdminStatsResponse{
		TotalUsers:            totalUsers,
		TotalDoctors:          totalDoctors,
		TotalPatients:         totalPatients,
		TotalAppointments:     totalAppointments,
		PendingAppointments:   pending,
		CompletedAppointments: completed,
		CancelledAppointments: cancelled,
		RecentNotifications:   converter.NotificationsToResponses(recent),
	}, nil
}

func (u *adminUsecase) ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorProfileRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}
	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *adminUsecase) ListPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientProfileRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}
	return &dto.PatientListResponse{
		Patients: converter.PatientProfilesToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *adminUsecase) ListAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *adminUsecase) ListAuditLogs(ctx context.Context, limit, offset int) (*dto.AuditLogListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	logs, err := u.auditLogRepo.FindAll(u.db.WithContext(ctx), limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, err
	}
	return &dto.AuditLogListResponse{
		AuditLogs: converter.AuditLogsToResponses(logs),
		Total:     len(logs),
	}, nil
}

func (u *adminUsecase) DeleteUser(ctx context.Context, adminID, userID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.userRepo.Delete(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to delete user %s: %+v", userID, err)
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	u.auditService.Log(tx, &adminID, entity.AuditActionUserDelete, "users", userID.String(), nil)

	return tx.Commit().Error
}

// DeleteAppointment removes the row entirely. The slot is freed first so
// the doctor's calendar opens back up.
func (u *adminUsecase) DeleteAppointment(ctx context.Context, adminID, appointmentID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if appointment.SlotID != nil && !appointment.Status.IsTerminal() {
		if _, err := u.slotRepo.Release(tx, *appointment.SlotID); err != nil {
			u.log.Warnf("Failed to release slot %s: %+v", *appointment.SlotID, err)
			return err
		}
	}

	if _, err := u.appointmentRepo.Delete(tx, appointmentID); err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", appointmentID, err)
		return err
	}

	u.auditService.Log(tx, &adminID, entity.AuditActionAppointmentCancel, "appointments", appointmentID.String(), entity.JSON{
		"deleted": true,
	})

	return tx.Commit().Error
}
