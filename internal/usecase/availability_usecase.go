package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-booking-api/internal/converter"
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"
	"clinic-booking-api/internal/scheduling"
	"clinic-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrSlotExists      = errors.New("slot already exists")
	ErrSlotNotFound    = errors.New("slot not found")
	ErrSlotBooked      = errors.New("slot is booked")
	ErrInvalidSlotTime = errors.New("invalid slot time, use RFC 3339")
)

type DoctorAvailabilityUsecase interface {
	SetAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.SetAvailabilityRequest) (*dto.SlotListResponse, error)
	AddSlot(ctx context.Context, doctorID uuid.UUID, req *dto.AddSlotRequest) (*dto.SlotResponse, error)
	RemoveSlot(ctx context.Context, doctorID uuid.UUID, req *dto.RemoveSlotRequest) error
	ListSlots(ctx context.Context, doctorID uuid.UUID, includeBooked bool) (*dto.SlotListResponse, error)
	ListSlotsByDay(ctx context.Context, doctorID uuid.UUID) (*dto.SlotsByDayResponse, error)
}

type doctorAvailabilityUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	doctorProfileRepo repository.DoctorProfileRepository
	ruleRepo          repository.AvailabilityRuleRepository
	slotRepo          repository.SlotRepository
	locker            service.DoctorLocker
	auditService      service.AuditService
	horizonDays       int
}

func NewDoctorAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorProfileRepo repository.DoctorProfileRepository,
	ruleRepo repository.AvailabilityRuleRepository,
	slotRepo repository.SlotRepository,
	locker service.DoctorLocker,
	auditService service.AuditService,
	horizonDays int,
) DoctorAvailabilityUsecase {
	return &doctorAvailabilityUsecase{
		db:                db,
		log:               log,
		doctorProfileRepo: doctorProfileRepo,
		ruleRepo:          ruleRepo,
		slotRepo:          slotRepo,
		locker:            locker,
		auditService:      auditService,
		horizonDays:       horizonDays,
	}
}

// SetAvailability replaces the doctor's recurring rules, regenerates slots
// over the horizon and merges them with the current slot list. Booked slots
// always survive the merge, so redeclaring availability never cancels an
// existing appointment. The whole swap runs under the per-doctor lock so a
// concurrent cancellation cannot interleave with the slot rewrite.
func (u *doctorAvailabilityUsecase) SetAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.SetAvailabilityRequest) (*dto.SlotListResponse, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	rules := make([]entity.AvailabilityRule, len(req.Rules))
	for i, r := range req.Rules {
		rules[i] = entity.AvailabilityRule{
			DoctorID:            doctorID,
			DayOfWeek:           time.Weekday(r.DayOfWeek),
			StartTime:           r.StartTime,
			EndTime:             r.EndTime,
			SlotDurationMinutes: r.SlotDurationMinutes,
			Position:            i,
		}
	}

	if err := scheduling.ValidateRules(rules); err != nil {
		return nil, err
	}

	var merged []entity.Slot

	err = u.locker.WithDoctorLock(ctx, doctorID, func(lockCtx context.Context) error {
		tx := u.db.WithContext(lockCtx).Begin()
		defer tx.Rollback()

		if err := u.ruleRepo.ReplaceForDoctor(tx, doctorID, rules); err != nil {
			u.log.Warnf("Failed to replace rules for doctor %s: %+v", doctorID, err)
			return err
		}

		existing, err := u.slotRepo.FindByDoctorID(tx, doctorID, true)
		if err != nil {
			u.log.Warnf("Failed to load slots for doctor %s: %+v", doctorID, err)
			return err
		}

		generated := scheduling.GenerateSlots(rules, u.horizonDays, time.Now().UTC())
		merged = scheduling.MergeSlots(doctorID, existing, generated)

		if err := u.slotRepo.ReplaceForDoctor(tx, doctorID, merged); err != nil {
			u.log.Warnf("Failed to replace slots for doctor %s: %+v", doctorID, err)
			return err
		}

		u.auditService.Log(tx, &doctorID, entity.AuditActionAvailabilityUpdate, "doctor_profiles", doctorID.String(), entity.JSON{
			"rule_count": len(rules),
			"slot_count": len(merged),
		})

		return tx.Commit().Error
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Availability updated: doctor=%s, rules=%d, slots=%d", doctorID, len(rules), len(merged))

	return &dto.SlotListResponse{
		Slots: converter.SlotsToResponses(merged),
		Total: len(merged),
	}, nil
}

// AddSlot appends a single ad hoc slot outside the recurring rules.
func (u *doctorAvailabilityUsecase) AddSlot(ctx context.Context, doctorID uuid.UUID, req *dto.AddSlotRequest) (*dto.SlotResponse, error) {
	slotTime, err := time.Parse(time.RFC3339, req.SlotTime)
	if err != nil {
		return nil, ErrInvalidSlotTime
	}
	slotTime = entity.TruncateToMinute(slotTime)

	var created *entity.Slot

	err = u.locker.WithDoctorLock(ctx, doctorID, func(lockCtx context.Context) error {
		tx := u.db.WithContext(lockCtx).Begin()
		defer tx.Rollback()

		existing, err := u.slotRepo.FindByDoctorAndTime(tx, doctorID, slotTime)
		if err != nil {
			u.log.Warnf("Failed to check slot for doctor %s: %+v", doctorID, err)
			return err
		}
		if existing != nil {
			return ErrSlotExists
		}

		slot := &entity.Slot{
			ID:       uuid.New(),
			DoctorID: doctorID,
			SlotTime: slotTime,
		}
		if err := u.slotRepo.Create(tx, slot); err != nil {
			if isDuplicateKeyError(err, "idx_slots_doctor_time") {
				return ErrSlotExists
			}
			u.log.Warnf("Failed to create slot for doctor %s: %+v", doctorID, err)
			return err
		}

		u.auditService.Log(tx, &doctorID, entity.AuditActionSlotAdd, "slots", slot.ID.String(), entity.JSON{
			"slot_time": slotTime,
		})

		created = slot
		return tx.Commit().Error
	})
	if err != nil {
		return nil, err
	}

	return converter.SlotToResponse(created), nil
}

// RemoveSlot deletes an unbooked slot. A booked slot cannot be removed;
// the appointment has to be cancelled first.
func (u *doctorAvailabilityUsecase) RemoveSlot(ctx context.Context, doctorID uuid.UUID, req *dto.RemoveSlotRequest) error {
	slotTime, err := time.Parse(time.RFC3339, req.SlotTime)
	if err != nil {
		return ErrInvalidSlotTime
	}
	slotTime = entity.TruncateToMinute(slotTime)

	return u.locker.WithDoctorLock(ctx, doctorID, func(lockCtx context.Context) error {
		tx := u.db.WithContext(lockCtx).Begin()
		defer tx.Rollback()

		slot, err := u.slotRepo.FindByDoctorAndTime(tx, doctorID, slotTime)
		if err != nil {
			u.log.Warnf("Failed to find slot for doctor %s: %+v", doctorID, err)
			return err
		}
		if slot == nil {
			return ErrSlotNotFound
		}
		if slot.IsBooked {
			return ErrSlotBooked
		}

		if _, err := u.slotRepo.Delete(tx, slot.ID); err != nil {
			u.log.Warnf("Failed to delete slot %s: %+v", slot.ID, err)
			return err
		}

		u.auditService.Log(tx, &doctorID, entity.AuditActionSlotRemove, "slots", slot.ID.String(), entity.JSON{
			"slot_time": slotTime,
		})

		return tx.Commit().Error
	})
}

func (u *doctorAvailabilityUsecase) ListSlots(ctx context.Context, doctorID uuid.UUID, includeBooked bool) (*dto.SlotListResponse, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	slots, err := u.slotRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID, includeBooked)
	if err != nil {
		u.log.Warnf("Failed to list slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.SlotListResponse{
		Slots: converter.SlotsToResponses(slots),
		Total: len(slots),
	}, nil
}

// ListSlotsByDay returns the doctor's open slots bucketed by UTC calendar
// date, for calendar views.
func (u *doctorAvailabilityUsecase) ListSlotsByDay(ctx context.Context, doctorID uuid.UUID) (*dto.SlotsByDayResponse, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	slots, err := u.slotRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID, false)
	if err != nil {
		u.log.Warnf("Failed to list slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.SlotsByDayResponse{
		Days: converter.SlotsToDayGrouping(slots),
	}, nil
}
