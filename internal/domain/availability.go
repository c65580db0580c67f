package domain

// SlotAvailability загрузка одного слота за день
type SlotAvailability struct {
	Capacity  int
	Booked    int
	Remaining int // Capacity - Booked
}

// IsFull returns true if the slot has no remaining capacity
func (s SlotAvailability) IsFull() bool {
	return s.Remaining <= 0
}

// AvailabilityDay производное представление загрузки площадки за день, не сохраняется
type AvailabilityDay struct {
	Date        string
	TimeSlots   map[string]SlotAvailability
	FullyBooked bool
}
