package scheduling

import (
	"sort"
	"time"

	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
)

// MergeSlots combines a doctor's current slot list with freshly generated
// slot timestamps when availability is redeclared.
//
// Every currently booked slot is preserved verbatim, whether or not the new
// rules regenerate its timestamp: redeclaring availability never cancels a
// confirmed booking. All other existing slots are discarded. Generated
// timestamps are deduplicated by minute-truncated time, and a generated
// timestamp colliding with a preserved booked slot loses to it.
//
// The result is sorted chronologically.
func MergeSlots(doctorID uuid.UUID, existing []entity.Slot, generated []time.Time) []entity.Slot {
	merged := make([]entity.Slot, 0, len(generated))
	seen := make(map[time.Time]struct{}, len(generated))

	for _, slot := range existing {
		if !slot.IsBooked {
			continue
		}
		key := entity.TruncateToMinute(slot.SlotTime)
		merged = append(merged, slot)
		seen[key] = struct{}{}
	}

	for _, ts := range generated {
		key := entity.TruncateToMinute(ts)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, entity.Slot{
			ID:       uuid.New(),
			DoctorID: doctorID,
			SlotTime: key,
		})
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].SlotTime.Before(merged[j].SlotTime)
	})

	return merged
}
