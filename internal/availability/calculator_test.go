package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/heritage-booking/internal/domain"
)

func fortA() *domain.Site {
	return &domain.Site{
		ID:        "site-1",
		Name:      "Fort A",
		TimeSlots: []domain.TimeSlot{{Time: "10:00", Capacity: 2}},
	}
}

func booking(date, tm string) *domain.Booking {
	return &domain.Booking{SiteID: "site-1", SiteName: "Fort A", VisitorName: "v", Date: date, Time: tm}
}

func TestCompute_FullMonthAfterTwoBookings(t *testing.T) {
	start, end, err := MonthRange(2024, 6)
	require.NoError(t, err)

	bookings := []*domain.Booking{
		booking("2024-06-01", "10:00"),
		booking("2024-06-01", "10:00"),
	}

	result := Compute(fortA(), bookings, start, end)

	require.Len(t, result, 30)

	day := result["2024-06-01"]
	assert.Equal(t, domain.SlotAvailability{Capacity: 2, Booked: 2, Remaining: 0}, day.TimeSlots["10:00"])
	assert.True(t, day.FullyBooked)

	for date, d := range result {
		if date == "2024-06-01" {
			continue
		}
		assert.False(t, d.FullyBooked, date)
		assert.Equal(t, domain.SlotAvailability{Capacity: 2, Booked: 0, Remaining: 2}, d.TimeSlots["10:00"], date)
	}
}

func TestCompute_LeapFebruary(t *testing.T) {
	start, end, err := MonthRange(2024, 2)
	require.NoError(t, err)

	result := Compute(fortA(), nil, start, end)

	assert.Len(t, result, 29)
	assert.Contains(t, result, "2024-02-29")
	assert.NotContains(t, result, "2024-03-01")
}

func TestCompute_NonLeapFebruary(t *testing.T) {
	start, end, err := MonthRange(2023, 2)
	require.NoError(t, err)

	result := Compute(fortA(), nil, start, end)

	assert.Len(t, result, 28)
	assert.Contains(t, result, "2023-02-28")
	assert.NotContains(t, result, "2023-02-29")
}

func TestCompute_Idempotent(t *testing.T) {
	start, end, _ := MonthRange(2024, 6)
	bookings := []*domain.Booking{booking("2024-06-03", "10:00")}

	first := Compute(fortA(), bookings, start, end)
	second := Compute(fortA(), bookings, start, end)

	assert.Equal(t, first, second)
}

func TestCompute_NoActiveSlotsIsFullyBooked(t *testing.T) {
	site := &domain.Site{
		Name: "Empty Fort",
		TimeSlots: []domain.TimeSlot{
			{Time: "", Capacity: 5},
			{Time: "09:00", Capacity: 0},
		},
	}
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	result := Compute(site, nil, day, day)

	require.Len(t, result, 1)
	assert.True(t, result["2024-06-01"].FullyBooked)
	assert.Empty(t, result["2024-06-01"].TimeSlots)
}

func TestCompute_InactiveSlotsExcludedFromOutput(t *testing.T) {
	site := &domain.Site{
		Name: "Fort B",
		TimeSlots: []domain.TimeSlot{
			{Time: "09:00", Capacity: 0},
			{Time: "11:00", Capacity: 1},
		},
	}
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	result := Compute(site, nil, day, day)

	slots := result["2024-06-01"].TimeSlots
	assert.NotContains(t, slots, "09:00")
	assert.Contains(t, slots, "11:00")
	assert.False(t, result["2024-06-01"].FullyBooked)
}

func TestCompute_DuplicateSlotTimesAreSummed(t *testing.T) {
	site := &domain.Site{
		Name: "Legacy Fort",
		TimeSlots: []domain.TimeSlot{
			{Time: "10:00", Capacity: 2},
			{Time: "10:00", Capacity: 3},
		},
	}
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	result := Compute(site, []*domain.Booking{booking("2024-06-01", "10:00")}, day, day)

	assert.Equal(t, domain.SlotAvailability{Capacity: 5, Booked: 1, Remaining: 4}, result["2024-06-01"].TimeSlots["10:00"])
}

func TestCompute_PartiallyFullDayIsNotFullyBooked(t *testing.T) {
	site := &domain.Site{
		Name: "Fort C",
		TimeSlots: []domain.TimeSlot{
			{Time: "10:00", Capacity: 1},
			{Time: "12:00", Capacity: 1},
		},
	}
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	result := Compute(site, []*domain.Booking{booking("2024-06-01", "10:00")}, day, day)

	assert.False(t, result["2024-06-01"].FullyBooked)
	assert.True(t, result["2024-06-01"].TimeSlots["10:00"].IsFull())
}

func TestCompute_OverbookedRemainingIsNegative(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	bookings := []*domain.Booking{
		booking("2024-06-01", "10:00"),
		booking("2024-06-01", "10:00"),
		booking("2024-06-01", "10:00"),
	}

	result := Compute(fortA(), bookings, day, day)

	assert.Equal(t, -1, result["2024-06-01"].TimeSlots["10:00"].Remaining)
	assert.True(t, result["2024-06-01"].FullyBooked)
}

func TestCompute_IgnoresTimeOfDayAndZone(t *testing.T) {
	loc := time.FixedZone("UTC+14", 14*3600)
	start := time.Date(2024, 6, 1, 23, 30, 0, 0, loc)
	end := time.Date(2024, 6, 2, 0, 15, 0, 0, loc)

	result := Compute(fortA(), nil, start, end)

	assert.Len(t, result, 2)
	assert.Contains(t, result, "2024-06-01")
	assert.Contains(t, result, "2024-06-02")
}

func TestCompute_StartAfterEnd(t *testing.T) {
	start := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, Compute(fortA(), nil, start, end))
}
