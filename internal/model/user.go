package model

type DoctorProfile struct {
	Specialty string `json:"specialty"`
	Phone     string `json:"phone,omitempty"`
}

type StaffMember struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	EmployeeID    string         `json:"employee_id"`
	Role          string         `json:"role"`
	IsActive      bool           `json:"is_active"`
	CreatedAt     string         `json:"created_at,omitempty"`
	DoctorProfile *DoctorProfile `json:"doctor_profile,omitempty"`
}

// TokenInfo is the upstream's answer to a bearer token verification.
type TokenInfo struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Abilities []string `json:"abilities"`
	IsValid   bool     `json:"is_valid"`
}
