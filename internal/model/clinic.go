package model

// ClinicCategory classifies a clinic record upstream. Only a fixed set of
// category ids represents physical consultation rooms; the rest are
// administrative records.
type ClinicCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Clinic struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Capacity   int             `json:"capacity"`
	IsActive   bool            `json:"is_active"`
	CategoryID int             `json:"category_id,omitempty"`
	Category   *ClinicCategory `json:"category,omitempty"`
	Staff      []StaffMember   `json:"staff,omitempty"`
}
