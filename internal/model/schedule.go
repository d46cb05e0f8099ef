package model

type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
)

// Schedule is one slot assignment in the weekly grid. The product guarantees
// at most one schedule per (clinic_id, day_of_week, time_slot); this layer
// passes the data through without enforcing it.
type Schedule struct {
	ID            int          `json:"id"`
	ClinicID      int          `json:"clinic_id"`
	UserID        int          `json:"user_id"`
	WeekStartDate string       `json:"week_start_date"`
	DayOfWeek     int          `json:"day_of_week"` // 0-6, Sunday first, as upstream emits it
	TimeSlot      TimeSlot     `json:"time_slot"`
	Notes         *string      `json:"notes,omitempty"`
	User          *StaffMember `json:"user,omitempty"`
	Clinic        *Clinic      `json:"clinic,omitempty"`
}
