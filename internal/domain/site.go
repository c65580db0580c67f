package domain

import "time"

// TimeSlot временной слот площадки: время начала ("HH:MM") и вместимость
type TimeSlot struct {
	Time     string
	Capacity int
}

// IsActive returns true if the slot takes part in availability calculation
// Слоты с пустым временем или неположительной вместимостью неактивны
func (s TimeSlot) IsActive() bool {
	return s.Time != "" && s.Capacity > 0
}

// Site represents a heritage site open for visits
type Site struct {
	ID          string
	Name        string
	Description string
	ImageURL    *string
	TimeSlots   []TimeSlot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveSlots возвращает активные слоты в порядке первого появления.
// Слоты с одинаковым временем (наследие старых данных) сливаются в один,
// их вместимости суммируются
func (s *Site) ActiveSlots() []TimeSlot {
	result := make([]TimeSlot, 0, len(s.TimeSlots))
	index := make(map[string]int, len(s.TimeSlots))

	for _, slot := range s.TimeSlots {
		if !slot.IsActive() {
			continue
		}
		if i, ok := index[slot.Time]; ok {
			result[i].Capacity += slot.Capacity
			continue
		}
		index[slot.Time] = len(result)
		result = append(result, slot)
	}

	return result
}

// FindSlot ищет слот по времени. Слот считается найденным по факту существования,
// даже с нулевой вместимостью (такой слот всегда заполнен)
func (s *Site) FindSlot(t string) (TimeSlot, bool) {
	found := false
	result := TimeSlot{Time: t}

	for _, slot := range s.TimeSlots {
		if slot.Time != t {
			continue
		}
		found = true
		if slot.Capacity > 0 {
			result.Capacity += slot.Capacity
		}
	}

	return result, found
}

// DuplicateSlotTimes возвращает времена, которые встречаются в слотах больше одного раза
func (s *Site) DuplicateSlotTimes() []string {
	seen := make(map[string]int, len(s.TimeSlots))
	duplicates := make([]string, 0)

	for _, slot := range s.TimeSlots {
		seen[slot.Time]++
		if seen[slot.Time] == 2 {
			duplicates = append(duplicates, slot.Time)
		}
	}

	return duplicates
}
