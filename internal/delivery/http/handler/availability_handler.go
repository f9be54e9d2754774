package handler

import (
	"encoding/json"
	"net/http"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/delivery/http/middleware"
	"clinic-booking-api/internal/scheduling"
	"clinic-booking-api/internal/service"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"
	"clinic-booking-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.DoctorAvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.DoctorAvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// SetAvailability replaces the calling doctor's recurring rules and
// regenerates the slot calendar.
func (h *AvailabilityHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SetAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slots, err := h.availabilityUsecase.SetAvailability(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case scheduling.ErrRuleTimeFormat, scheduling.ErrRuleTimeOrder, scheduling.ErrRuleSlotDuration:
			response.BadRequest(w, err.Error())
		case service.ErrDoctorLockBusy:
			response.Conflict(w, "Schedule is being modified, try again")
		default:
			response.InternalServerError(w, "Failed to update availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability updated successfully", slots)
}

func (h *AvailabilityHandler) AddSlot(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.AddSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.availabilityUsecase.AddSlot(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidSlotTime:
			response.BadRequest(w, err.Error())
		case usecase.ErrSlotExists:
			response.Conflict(w, "Slot already exists at this time")
		case service.ErrDoctorLockBusy:
			response.Conflict(w, "Schedule is being modified, try again")
		default:
			response.InternalServerError(w, "Failed to add slot")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Slot added successfully", slot)
}

func (h *AvailabilityHandler) RemoveSlot(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.RemoveSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.availabilityUsecase.RemoveSlot(r.Context(), doctorID, &req); err != nil {
		switch err {
		case usecase.ErrInvalidSlotTime:
			response.BadRequest(w, err.Error())
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		case usecase.ErrSlotBooked:
			response.Conflict(w, "Slot is booked, cancel the appointment first")
		case service.ErrDoctorLockBusy:
			response.Conflict(w, "Schedule is being modified, try again")
		default:
			response.InternalServerError(w, "Failed to remove slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot removed successfully", nil)
}

// ListSlots is the public slot listing for one doctor. Booked slots are
// hidden unless include_booked=true.
func (h *AvailabilityHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	includeBooked := r.URL.Query().Get("include_booked") == "true"

	slots, err := h.availabilityUsecase.ListSlots(r.Context(), doctorID, includeBooked)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to list slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

func (h *AvailabilityHandler) ListSlotsByDay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	days, err := h.availabilityUsecase.ListSlotsByDay(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to list slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", days)
}
