package converter

import (
	"testing"
	"time"

	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotsToDayGrouping(t *testing.T) {
	day1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	slots := []entity.Slot{
		{ID: uuid.New(), SlotTime: day1.Add(14 * time.Hour)},
		{ID: uuid.New(), SlotTime: day1.Add(9 * time.Hour)},
		{ID: uuid.New(), SlotTime: day2.Add(10*time.Hour + 30*time.Minute)},
	}

	days := SlotsToDayGrouping(slots)

	require.Len(t, days, 2)
	assert.Equal(t, []string{"09:00", "14:00"}, days["2024-01-01"])
	assert.Equal(t, []string{"10:30"}, days["2024-01-02"])
}

func TestSlotsToDayGroupingNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	slots := []entity.Slot{
		// 02:00 on Jan 2 in UTC+7 is 19:00 on Jan 1 in UTC.
		{ID: uuid.New(), SlotTime: time.Date(2024, 1, 2, 2, 0, 0, 0, loc)},
	}

	days := SlotsToDayGrouping(slots)

	require.Len(t, days, 1)
	assert.Equal(t, []string{"19:00"}, days["2024-01-01"])
}

func TestSlotsToDayGroupingEmpty(t *testing.T) {
	assert.Empty(t, SlotsToDayGrouping(nil))
}
