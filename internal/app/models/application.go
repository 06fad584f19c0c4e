package models

import "time"

// StudentApplication defines an application record owned by a student
type StudentApplication struct {
	ID              int64     `json:"id" db:"id" example:"1"`                                     // Unique identifier for the application
	StudentID       int64     `json:"studentId" db:"student_id" example:"1"`                      // Owning student
	ApplicationName string    `json:"applicationName" db:"application_name" example:"Internship"` // Application type
	SubmissionDate  time.Time `json:"submissionDate" db:"submission_date"`                        // Date the application was submitted
}
