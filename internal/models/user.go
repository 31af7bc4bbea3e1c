package models

import "time"

// User roles
const (
	RoleVolunteer = "volunteer"
	RoleMentor    = "mentor"
	RoleSecretary = "secretary"
)

// User represents a portal account (volunteer, mentor or secretary)
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	RollNumber   string    `json:"roll_number,omitempty"`
	Wing         string    `json:"wing,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// MentorAssignment links a mentor to one of their volunteers
type MentorAssignment struct {
	MentorID    string    `json:"mentor_id"`
	VolunteerID string    `json:"volunteer_id"`
	AssignedAt  time.Time `json:"assigned_at"`
}

// RosterEntry is a volunteer row in the mentor/secretary roster view,
// carrying the aggregate derived from the attendance ledger
type RosterEntry struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	RollNumber     string  `json:"roll_number,omitempty"`
	Wing           string  `json:"wing,omitempty"`
	TotalHours     float64 `json:"total_hours"`
	EventsAttended int     `json:"events_attended"`
}

// LoginRequest is the request body for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the JWT and the authenticated user
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
