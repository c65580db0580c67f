package site

import (
	"encoding/json"

	"github.com/m04kA/heritage-booking/internal/domain"
)

// timeSlotRow представление слота в колонке time_slots (JSONB)
type timeSlotRow struct {
	Time     string `json:"time"`
	Capacity int    `json:"capacity"`
}

func encodeSlots(slots []domain.TimeSlot) ([]byte, error) {
	rows := make([]timeSlotRow, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, timeSlotRow{Time: s.Time, Capacity: s.Capacity})
	}
	return json.Marshal(rows)
}

func decodeSlots(raw []byte) ([]domain.TimeSlot, error) {
	if len(raw) == 0 {
		return []domain.TimeSlot{}, nil
	}

	var rows []timeSlotRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}

	slots := make([]domain.TimeSlot, 0, len(rows))
	for _, r := range rows {
		slots = append(slots, domain.TimeSlot{Time: r.Time, Capacity: r.Capacity})
	}
	return slots, nil
}
