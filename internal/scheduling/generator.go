package scheduling

import (
	"errors"
	"time"

	"clinic-booking-api/internal/domain/entity"
)

var (
	ErrRuleTimeFormat   = errors.New("invalid rule time format, use HH:MM")
	ErrRuleTimeOrder    = errors.New("rule start time must be before end time")
	ErrRuleSlotDuration = errors.New("slot duration must be a positive number of minutes")
)

// clockMinutes parses "HH:MM" into minutes from midnight.
func clockMinutes(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrRuleTimeFormat
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidateRules checks every rule's time window and slot duration.
// Rules must be validated before being persisted or expanded.
func ValidateRules(rules []entity.AvailabilityRule) error {
	for _, rule := range rules {
		start, err := clockMinutes(rule.StartTime)
		if err != nil {
			return err
		}
		end, err := clockMinutes(rule.EndTime)
		if err != nil {
			return err
		}
		if start >= end {
			return ErrRuleTimeOrder
		}
		if rule.SlotDurationMinutes <= 0 {
			return ErrRuleSlotDuration
		}
	}
	return nil
}

// GenerateSlots expands recurring weekly availability rules into concrete
// slot timestamps over [from, from+horizonDays), in UTC at minute precision.
//
// Ordering is day-major, then rule declaration order, then time ascending
// within a rule. A slot is emitted only while start+duration still fits
// inside the rule window; a trailing partial interval is dropped. Duplicate
// timestamps produced by overlapping rules are NOT deduplicated here;
// merging into the doctor's slot list handles that.
//
// Deterministic given from; callers pass time.Now().UTC() in production and
// a fixed instant in tests.
func GenerateSlots(rules []entity.AvailabilityRule, horizonDays int, from time.Time) []time.Time {
	if len(rules) == 0 || horizonDays <= 0 {
		return nil
	}

	from = from.UTC()
	dayStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)

	var out []time.Time
	for d := 0; d < horizonDays; d++ {
		day := dayStart.AddDate(0, 0, d)
		for _, rule := range rules {
			if rule.DayOfWeek != day.Weekday() {
				continue
			}
			start, err := clockMinutes(rule.StartTime)
			if err != nil {
				continue
			}
			end, err := clockMinutes(rule.EndTime)
			if err != nil || rule.SlotDurationMinutes <= 0 {
				continue
			}
			step := rule.SlotDurationMinutes
			for cur := start; cur+step <= end; cur += step {
				out = append(out, day.Add(time.Duration(cur)*time.Minute))
			}
		}
	}
	return out
}
