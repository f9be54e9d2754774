package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusTransitions(t *testing.T) {
	cases := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusPending, AppointmentStatusCompleted, false},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusCompleted, AppointmentStatusPending, false},
		{AppointmentStatusCancelled, AppointmentStatusPending, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestAppointmentStatusIsTerminal(t *testing.T) {
	assert.False(t, AppointmentStatusPending.IsTerminal())
	assert.False(t, AppointmentStatusConfirmed.IsTerminal())
	assert.True(t, AppointmentStatusCompleted.IsTerminal())
	assert.True(t, AppointmentStatusCancelled.IsTerminal())
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(AppointmentStatusPending))
	assert.True(t, ValidStatus(AppointmentStatusCancelled))
	assert.False(t, ValidStatus(AppointmentStatus("rescheduled")))
	assert.False(t, ValidStatus(AppointmentStatus("")))
}

func TestAppointmentInvolvesUser(t *testing.T) {
	patient := uuid.New()
	doctor := uuid.New()
	a := &Appointment{PatientID: patient, DoctorID: doctor}

	assert.True(t, a.InvolvesUser(patient))
	assert.True(t, a.InvolvesUser(doctor))
	assert.False(t, a.InvolvesUser(uuid.New()))
}

func TestAppointmentCancel(t *testing.T) {
	a := &Appointment{Status: AppointmentStatusPending}
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	a.Cancel(now)

	assert.Equal(t, AppointmentStatusCancelled, a.Status)
	assert.True(t, a.IsCancelled())
	assert.NotNil(t, a.CancelledAt)
	assert.Equal(t, now, *a.CancelledAt)
}

func TestTruncateToMinute(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	in := time.Date(2024, 6, 1, 16, 30, 42, 999, loc)

	got := TruncateToMinute(in)

	assert.Equal(t, time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}
