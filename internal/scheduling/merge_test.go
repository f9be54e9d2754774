package scheduling

import (
	"testing"
	"time"

	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSlots(t *testing.T) {
	doctorID := uuid.New()
	at := func(h int) time.Time { return monday.Add(time.Duration(h) * time.Hour) }

	t.Run("booked slots survive even when not regenerated", func(t *testing.T) {
		booked := entity.Slot{ID: uuid.New(), DoctorID: doctorID, SlotTime: at(9), IsBooked: true}

		merged := MergeSlots(doctorID, []entity.Slot{booked}, []time.Time{at(14)})

		require.Len(t, merged, 2)
		assert.Equal(t, booked.ID, merged[0].ID)
		assert.True(t, merged[0].IsBooked)
		assert.Equal(t, at(14), merged[1].SlotTime)
	})

	t.Run("booked slot wins a timestamp collision", func(t *testing.T) {
		booked := entity.Slot{ID: uuid.New(), DoctorID: doctorID, SlotTime: at(9), IsBooked: true}

		merged := MergeSlots(doctorID, []entity.Slot{booked}, []time.Time{at(9)})

		require.Len(t, merged, 1)
		assert.Equal(t, booked.ID, merged[0].ID)
		assert.True(t, merged[0].IsBooked)
	})

	t.Run("unbooked existing slots are discarded", func(t *testing.T) {
		open := entity.Slot{ID: uuid.New(), DoctorID: doctorID, SlotTime: at(9), IsBooked: false}

		merged := MergeSlots(doctorID, []entity.Slot{open}, []time.Time{at(9)})

		require.Len(t, merged, 1)
		// Regenerated at the same time, but as a fresh slot.
		assert.NotEqual(t, open.ID, merged[0].ID)
		assert.False(t, merged[0].IsBooked)
	})

	t.Run("duplicate generated timestamps are collapsed", func(t *testing.T) {
		merged := MergeSlots(doctorID, nil, []time.Time{at(9), at(9), at(10)})

		require.Len(t, merged, 2)
		assert.Equal(t, at(9), merged[0].SlotTime)
		assert.Equal(t, at(10), merged[1].SlotTime)
	})

	t.Run("generated times are minute-truncated", func(t *testing.T) {
		merged := MergeSlots(doctorID, nil, []time.Time{at(9).Add(42 * time.Second)})

		require.Len(t, merged, 1)
		assert.Equal(t, at(9), merged[0].SlotTime)
	})

	t.Run("result is sorted chronologically", func(t *testing.T) {
		booked := entity.Slot{ID: uuid.New(), DoctorID: doctorID, SlotTime: at(16), IsBooked: true}

		merged := MergeSlots(doctorID, []entity.Slot{booked}, []time.Time{at(14), at(8)})

		require.Len(t, merged, 3)
		assert.Equal(t, at(8), merged[0].SlotTime)
		assert.Equal(t, at(14), merged[1].SlotTime)
		assert.Equal(t, at(16), merged[2].SlotTime)
	})

	t.Run("new slots get stable IDs and the doctor", func(t *testing.T) {
		merged := MergeSlots(doctorID, nil, []time.Time{at(9)})

		require.Len(t, merged, 1)
		assert.NotEqual(t, uuid.Nil, merged[0].ID)
		assert.Equal(t, doctorID, merged[0].DoctorID)
	})
}
