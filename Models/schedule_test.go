package Models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDoseDates(t *testing.T) {
	firstDose := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("single dose", func(t *testing.T) {
		vaccine := Vaccine{DosesRequired: 1}
		dates := ComputeDoseDates(vaccine, firstDose)
		require.Len(t, dates, 1)
		assert.Equal(t, "2026-09-01T10:00:00", dates[0])
	})

	t.Run("intervals accumulate", func(t *testing.T) {
		vaccine := Vaccine{DosesRequired: 3, DoseIntervals: []int{28, 150}}
		dates := ComputeDoseDates(vaccine, firstDose)
		require.Len(t, dates, 3)
		assert.Equal(t, "2026-09-01T10:00:00", dates[0])
		assert.Equal(t, "2026-09-29T10:00:00", dates[1])
		assert.Equal(t, "2027-02-26T10:00:00", dates[2])
	})
}

func TestParseDoseDateRoundTrip(t *testing.T) {
	parsed, err := ParseDoseDate("2026-09-29T10:00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 29, 10, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDoseDate("29/09/2026")
	assert.Error(t, err)
}

func TestScheduleIsTerminal(t *testing.T) {
	assert.False(t, (&VaccinationSchedule{Status: ScheduleStatusPending}).IsTerminal())
	assert.False(t, (&VaccinationSchedule{Status: ScheduleStatusConfirmed}).IsTerminal())
	assert.True(t, (&VaccinationSchedule{Status: ScheduleStatusCompleted}).IsTerminal())
	assert.True(t, (&VaccinationSchedule{Status: ScheduleStatusCancelled}).IsTerminal())
}
