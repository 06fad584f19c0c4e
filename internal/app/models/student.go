package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID             int64     `json:"id" db:"id" example:"1"`                          // Unique identifier for the student record
	FirstName      string    `json:"firstName" db:"first_name" example:"John"`        // Student's first name
	LastName       string    `json:"lastName" db:"last_name" example:"Doe"`           // Student's last name
	Email          string    `json:"email" db:"email" example:"john.doe@example.com"` // Unique email address
	DateOfBirth    time.Time `json:"dateOfBirth" db:"date_of_birth"`                  // Date of birth
	EnrollmentDate time.Time `json:"enrollmentDate" db:"enrollment_date"`             // Date of enrollment
	IsDeleted      bool      `json:"isDeleted" db:"is_deleted" example:"false"`       // Soft-delete flag

	// Relations (populated when needed)
	Applications []StudentApplication `json:"applications,omitempty"` // Applications owned by this student
}
