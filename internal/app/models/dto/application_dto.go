package dto

import (
	"time"

	"github.com/deniz/studentdesk/internal/app/models"
)

// ApplicationRequest is the payload for attaching an application to a student
type ApplicationRequest struct {
	ApplicationName string `json:"applicationName" binding:"required" example:"Internship"`
	SubmissionDate  string `json:"submissionDate" binding:"required,datetime=2006-01-02" example:"2024-03-15"`
}

// ToModel converts a validated request into a StudentApplication model
func (r *ApplicationRequest) ToModel(studentID int64) *models.StudentApplication {
	submitted, _ := time.Parse(time.DateOnly, r.SubmissionDate)

	return &models.StudentApplication{
		StudentID:       studentID,
		ApplicationName: r.ApplicationName,
		SubmissionDate:  submitted,
	}
}

// ApplicationResponse represents an application record in API responses
type ApplicationResponse struct {
	ID              int64  `json:"id" example:"1"`
	StudentID       int64  `json:"studentId" example:"1"`
	ApplicationName string `json:"applicationName" example:"Internship"`
	SubmissionDate  string `json:"submissionDate" example:"2024-03-15"`
}

// FromApplication converts a models.StudentApplication to an ApplicationResponse
func FromApplication(application *models.StudentApplication) ApplicationResponse {
	if application == nil {
		return ApplicationResponse{}
	}

	return ApplicationResponse{
		ID:              application.ID,
		StudentID:       application.StudentID,
		ApplicationName: application.ApplicationName,
		SubmissionDate:  application.SubmissionDate.Format(time.DateOnly),
	}
}

// FromApplications converts a slice of applications to response form
func FromApplications(applications []models.StudentApplication) []ApplicationResponse {
	responses := make([]ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, FromApplication(&applications[i]))
	}
	return responses
}
