package scheduling

import (
	"testing"
	"time"

	"clinic-booking-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 is a Monday, which keeps weekday math readable.
var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func rule(day time.Weekday, start, end string, duration int) entity.AvailabilityRule {
	return entity.AvailabilityRule{
		DayOfWeek:           day,
		StartTime:           start,
		EndTime:             end,
		SlotDurationMinutes: duration,
	}
}

func TestValidateRules(t *testing.T) {
	t.Run("valid rules pass", func(t *testing.T) {
		err := ValidateRules([]entity.AvailabilityRule{
			rule(time.Monday, "09:00", "12:00", 30),
			rule(time.Friday, "14:00", "17:00", 20),
		})
		assert.NoError(t, err)
	})

	t.Run("bad time format", func(t *testing.T) {
		err := ValidateRules([]entity.AvailabilityRule{rule(time.Monday, "9am", "12:00", 30)})
		assert.ErrorIs(t, err, ErrRuleTimeFormat)
	})

	t.Run("start not before end", func(t *testing.T) {
		err := ValidateRules([]entity.AvailabilityRule{rule(time.Monday, "12:00", "09:00", 30)})
		assert.ErrorIs(t, err, ErrRuleTimeOrder)

		err = ValidateRules([]entity.AvailabilityRule{rule(time.Monday, "09:00", "09:00", 30)})
		assert.ErrorIs(t, err, ErrRuleTimeOrder)
	})

	t.Run("non-positive duration", func(t *testing.T) {
		err := ValidateRules([]entity.AvailabilityRule{rule(time.Monday, "09:00", "12:00", 0)})
		assert.ErrorIs(t, err, ErrRuleSlotDuration)
	})
}

func TestGenerateSlots(t *testing.T) {
	t.Run("one hour window with 30 minute slots", func(t *testing.T) {
		slots := GenerateSlots([]entity.AvailabilityRule{
			rule(time.Monday, "09:00", "10:00", 30),
		}, 1, monday)

		require.Len(t, slots, 2)
		assert.Equal(t, monday.Add(9*time.Hour), slots[0])
		assert.Equal(t, monday.Add(9*time.Hour+30*time.Minute), slots[1])
	})

	t.Run("trailing partial interval is dropped", func(t *testing.T) {
		slots := GenerateSlots([]entity.AvailabilityRule{
			rule(time.Monday, "09:00", "10:00", 45),
		}, 1, monday)

		require.Len(t, slots, 1)
		assert.Equal(t, monday.Add(9*time.Hour), slots[0])
	})

	t.Run("slot count scales with horizon", func(t *testing.T) {
		r := rule(time.Monday, "09:00", "12:00", 30)

		// 14 days from a Monday covers exactly two Mondays.
		slots := GenerateSlots([]entity.AvailabilityRule{r}, 14, monday)
		assert.Len(t, slots, 2*6)
	})

	t.Run("empty rules yield nothing", func(t *testing.T) {
		assert.Empty(t, GenerateSlots(nil, 30, monday))
	})

	t.Run("non-positive horizon yields nothing", func(t *testing.T) {
		r := rule(time.Monday, "09:00", "12:00", 30)
		assert.Empty(t, GenerateSlots([]entity.AvailabilityRule{r}, 0, monday))
		assert.Empty(t, GenerateSlots([]entity.AvailabilityRule{r}, -5, monday))
	})

	t.Run("overlapping rules keep duplicate timestamps", func(t *testing.T) {
		slots := GenerateSlots([]entity.AvailabilityRule{
			rule(time.Monday, "09:00", "10:00", 30),
			rule(time.Monday, "09:00", "10:00", 30),
		}, 1, monday)

		require.Len(t, slots, 4)
		assert.Equal(t, slots[0], slots[2])
		assert.Equal(t, slots[1], slots[3])
	})

	t.Run("ordering is day-major then rule order then time", func(t *testing.T) {
		slots := GenerateSlots([]entity.AvailabilityRule{
			rule(time.Tuesday, "08:00", "09:00", 60),
			rule(time.Monday, "14:00", "15:00", 60),
			rule(time.Monday, "09:00", "10:00", 60),
		}, 2, monday)

		require.Len(t, slots, 3)
		// Monday rules come out in declaration order, Tuesday last.
		assert.Equal(t, monday.Add(14*time.Hour), slots[0])
		assert.Equal(t, monday.Add(9*time.Hour), slots[1])
		assert.Equal(t, monday.AddDate(0, 0, 1).Add(8*time.Hour), slots[2])
	})

	t.Run("mid-day from still covers the whole first day", func(t *testing.T) {
		from := monday.Add(15 * time.Hour)
		slots := GenerateSlots([]entity.AvailabilityRule{
			rule(time.Monday, "09:00", "10:00", 30),
		}, 1, from)

		// Generation anchors at midnight of the from day.
		require.Len(t, slots, 2)
		assert.Equal(t, monday.Add(9*time.Hour), slots[0])
	})
}
