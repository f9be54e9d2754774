package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-booking-api/internal/converter"
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"
	"clinic-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotUnavailable     = errors.New("selected slot is not available")
	ErrDuplicateBooking    = errors.New("you already have an appointment at this time")
	ErrNotParticipant      = errors.New("appointment does not involve you")
	ErrAppointmentTerminal = errors.New("appointment is in a terminal state")
	ErrInvalidStatusChange = errors.New("invalid status transition")
	ErrInvalidStartTime    = errors.New("invalid appointment time, use RFC 3339")
	ErrInvalidStatusFilter = errors.New("invalid status filter")
	ErrInvalidDateFilter   = errors.New("invalid date filter, use RFC 3339 or YYYY-MM-DD")
)

type AppointmentUsecase interface {
	BookAppointment(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context, userID uuid.UUID, status, from, to string) (*dto.AppointmentListResponse, error)
	UpdateAppointment(ctx context.Context, actorID, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, actorID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	doctorProfileRepo   repository.DoctorProfileRepository
	slotRepo            repository.SlotRepository
	appointmentRepo     repository.AppointmentRepository
	locker              service.DoctorLocker
	auditService        service.AuditService
	notificationService service.NotificationService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorProfileRepo repository.DoctorProfileRepository,
	slotRepo repository.SlotRepository,
	appointmentRepo repository.AppointmentRepository,
	locker service.DoctorLocker,
	auditService service.AuditService,
	notificationService service.NotificationService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                  db,
		log:                 log,
		doctorProfileRepo:   doctorProfileRepo,
		slotRepo:            slotRepo,
		appointmentRepo:     appointmentRepo,
		locker:              locker,
		auditService:        auditService,
		notificationService: notificationService,
	}
}

// BookAppointment books one slot for a patient.
//
// Preconditions are checked in order: doctor exists, slot exists and is
// free at the minute-truncated timestamp, no non-cancelled appointment
// already exists for the same (patient, doctor, time). Slot booking and
// appointment creation happen in one transaction, with the slot update
// conditional on is_booked still being false. When two requests race for
// the same slot, exactly one commit wins and the other sees the slot as
// unavailable.
func (u *appointmentUsecase) BookAppointment(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, ErrInvalidStartTime
	}
	startsAt = entity.TruncateToMinute(startsAt)

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	slot, err := u.slotRepo.FindByDoctorAndTime(tx, req.DoctorID, startsAt)
	if err != nil {
		u.log.Warnf("Failed to find slot for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if slot == nil || slot.IsBooked {
		return nil, ErrSlotUnavailable
	}

	existing, err := u.appointmentRepo.FindActiveByPatientDoctorTime(tx, patientID, req.DoctorID, startsAt)
	if err != nil {
		u.log.Warnf("Failed to check existing appointment: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateBooking
	}

	// Conditional write: loses to a concurrent booking that committed
	// between our read and this update.
	affected, err := u.slotRepo.MarkBooked(tx, slot.ID)
	if err != nil {
		u.log.Warnf("Failed to book slot %s: %+v", slot.ID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrSlotUnavailable
	}

	appointment := &entity.Appointment{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		SlotID:    &slot.ID,
		StartsAt:  startsAt,
		Reason:    req.Reason,
		Status:    entity.AppointmentStatusPending,
	}
	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.Log(tx, &patientID, entity.AuditActionAppointmentBook, "appointments", appointment.ID.String(), entity.JSON{
		"doctor_id": req.DoctorID.String(),
		"starts_at": startsAt,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit booking: %+v", err)
		return nil, err
	}

	when := startsAt.Format("2006-01-02 15:04")
	u.notificationService.Notify(u.db.WithContext(ctx), req.DoctorID, "New Appointment",
		fmt.Sprintf("You have a new appointment on %s", when))
	u.notificationService.Notify(u.db.WithContext(ctx), patientID, "Appointment Booked",
		fmt.Sprintf("Your appointment with Dr. %s is on %s", doctor.User.FullName, when))

	u.log.Infof("Appointment booked: id=%s, doctor=%s, patient=%s, starts_at=%s",
		appointment.ID, req.DoctorID, patientID, when)

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

// GetMyAppointments lists appointments where the caller is the patient or
// the doctor, with optional status and date range filters.
func (u *appointmentUsecase) GetMyAppointments(ctx context.Context, userID uuid.UUID, status, from, to string) (*dto.AppointmentListResponse, error) {
	filter := &repository.AppointmentFilter{}

	if status != "" {
		s := entity.AppointmentStatus(status)
		if !entity.ValidStatus(s) {
			return nil, ErrInvalidStatusFilter
		}
		filter.Status = s
	}
	if from != "" {
		t, err := parseTimeParam(from)
		if err != nil {
			return nil, ErrInvalidDateFilter
		}
		filter.From = t
	}
	if to != "" {
		t, err := parseTimeParam(to)
		if err != nil {
			return nil, ErrInvalidDateFilter
		}
		filter.To = t
	}

	appointments, err := u.appointmentRepo.FindForUser(u.db.WithContext(ctx), userID, filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// UpdateAppointment applies field updates from either party. Status changes
// go through the state-machine table; terminal appointments reject every
// update so a closed appointment cannot be reopened. A status change to
// cancelled takes the full cancellation path including slot release.
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, actorID, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.InvolvesUser(actorID) {
		return nil, ErrNotParticipant
	}
	if appointment.Status.IsTerminal() {
		return nil, ErrAppointmentTerminal
	}

	if req.Reason != "" {
		appointment.Reason = req.Reason
	}
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	if req.Status != "" {
		target := entity.AppointmentStatus(req.Status)
		if target != appointment.Status {
			if !appointment.Status.CanTransitionTo(target) {
				return nil, ErrInvalidStatusChange
			}
			if target == entity.AppointmentStatusCancelled {
				return u.cancelAndRelease(ctx, actorID, appointment)
			}
			appointment.Status = target
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	u.auditService.Log(tx, &actorID, entity.AuditActionAppointmentUpdate, "appointments", appointment.ID.String(), entity.JSON{
		"status": string(appointment.Status),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit appointment update: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// CancelAppointment cancels an appointment for either party and frees the
// doctor's slot. Cancelling an already cancelled appointment is an
// idempotent no-op that returns the existing record; a completed
// appointment cannot be cancelled.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, actorID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.InvolvesUser(actorID) {
		return nil, ErrNotParticipant
	}
	if appointment.IsCancelled() {
		return converter.AppointmentToResponse(appointment), nil
	}
	if appointment.Status == entity.AppointmentStatusCompleted {
		return nil, ErrAppointmentTerminal
	}

	return u.cancelAndRelease(ctx, actorID, appointment)
}

// cancelAndRelease marks the appointment cancelled and frees its slot.
// It runs under the per-doctor lock so the slot write cannot interleave
// with an availability regeneration. Slot release is best-effort: the
// cancellation stands even if the slot no longer exists.
func (u *appointmentUsecase) cancelAndRelease(ctx context.Context, actorID uuid.UUID, appointment *entity.Appointment) (*dto.AppointmentResponse, error) {
	err := u.locker.WithDoctorLock(ctx, appointment.DoctorID, func(lockCtx context.Context) error {
		tx := u.db.WithContext(lockCtx).Begin()
		defer tx.Rollback()

		appointment.Cancel(time.Now().UTC())
		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			u.log.Warnf("Failed to cancel appointment %s: %+v", appointment.ID, err)
			return err
		}

		var released int64
		if appointment.SlotID != nil {
			n, err := u.slotRepo.Release(tx, *appointment.SlotID)
			if err != nil {
				u.log.Warnf("Failed to release slot %s: %+v", *appointment.SlotID, err)
				return err
			}
			released = n
		}
		if released == 0 {
			// Fallback by timestamp for appointments without a slot
			// reference; a missing slot is fine.
			if _, err := u.slotRepo.ReleaseByDoctorAndTime(tx, appointment.DoctorID, appointment.StartsAt); err != nil {
				u.log.Warnf("Failed to release slot by time for doctor %s: %+v", appointment.DoctorID, err)
				return err
			}
		}

		u.auditService.Log(tx, &actorID, entity.AuditActionAppointmentCancel, "appointments", appointment.ID.String(), entity.JSON{
			"doctor_id": appointment.DoctorID.String(),
			"starts_at": appointment.StartsAt,
		})

		return tx.Commit().Error
	})
	if err != nil {
		return nil, err
	}

	when := appointment.StartsAt.Format("2006-01-02 15:04")
	u.notificationService.Notify(u.db.WithContext(ctx), appointment.DoctorID, "Appointment Cancelled",
		fmt.Sprintf("The appointment on %s was cancelled", when))
	u.notificationService.Notify(u.db.WithContext(ctx), appointment.PatientID, "Appointment Cancelled",
		fmt.Sprintf("Your appointment on %s was cancelled", when))

	u.log.Infof("Appointment cancelled: id=%s, doctor=%s", appointment.ID, appointment.DoctorID)

	return converter.AppointmentToResponse(appointment), nil
}

// parseTimeParam accepts RFC 3339 or a bare date.
func parseTimeParam(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
