package converter

import (
	"sort"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
)

// SlotToResponse converts a Slot entity to SlotResponse DTO
func SlotToResponse(slot *entity.Slot) *dto.SlotResponse {
	if slot == nil {
		return nil
	}

	return &dto.SlotResponse{
		ID:       slot.ID,
		DoctorID: slot.DoctorID,
		SlotTime: slot.SlotTime,
		IsBooked: slot.IsBooked,
	}
}

// SlotsToResponses converts a slice of Slot entities to SlotResponse DTOs
func SlotsToResponses(slots []entity.Slot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i := range slots {
		responses[i] = *SlotToResponse(&slots[i])
	}
	return responses
}

// SlotsToDayGrouping buckets slot times by their UTC calendar date for
// calendar views. Keys are YYYY-MM-DD, values are HH:MM strings in
// ascending order.
func SlotsToDayGrouping(slots []entity.Slot) map[string][]string {
	days := make(map[string][]string)
	for _, slot := range slots {
		ts := slot.SlotTime.UTC()
		day := ts.Format("2006-01-02")
		days[day] = append(days[day], ts.Format("15:04"))
	}
	for day := range days {
		sort.Strings(days[day])
	}
	return days
}
