package entities

import "time"

// Feedback captures user reports about a listed hospital (stale opening
// hours, a wrong phone number) and general product feedback.
type Feedback struct {
	ID           string    `json:"id" db:"id"`
	Rating       int       `json:"rating" db:"rating"`
	Message      string    `json:"message" db:"message"`
	Email        string    `json:"email" db:"email"`
	HospitalID   string    `json:"hospital_id" db:"hospital_id"`
	HospitalName string    `json:"hospital_name" db:"hospital_name"`
	UserAgent    string    `json:"user_agent" db:"user_agent"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
