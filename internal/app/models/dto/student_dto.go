package dto

import (
	"time"

	"github.com/deniz/studentdesk/internal/app/models"
)

// StudentRequest is the payload for creating or updating a student.
// Dates travel as "YYYY-MM-DD" strings and are validated at the binding layer.
type StudentRequest struct {
	FirstName      string `json:"firstName" binding:"required,max=50" example:"John"`
	LastName       string `json:"lastName" binding:"required,max=50" example:"Doe"`
	Email          string `json:"email" binding:"required,email" example:"john.doe@example.com"`
	DateOfBirth    string `json:"dateOfBirth" binding:"required,datetime=2006-01-02,beforetoday" example:"2000-01-01"`
	EnrollmentDate string `json:"enrollmentDate" binding:"required,datetime=2006-01-02,notfuture" example:"2023-09-01"`
}

// ToModel converts a validated request into a Student model.
// Date parsing cannot fail here, the datetime binding tag already checked it.
func (r *StudentRequest) ToModel() *models.Student {
	dob, _ := time.Parse(time.DateOnly, r.DateOfBirth)
	enrolled, _ := time.Parse(time.DateOnly, r.EnrollmentDate)

	return &models.Student{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		DateOfBirth:    dob,
		EnrollmentDate: enrolled,
	}
}

// StudentResponse represents a student record in API responses
type StudentResponse struct {
	ID             int64  `json:"id" example:"1"`
	FirstName      string `json:"firstName" example:"John"`
	LastName       string `json:"lastName" example:"Doe"`
	Email          string `json:"email" example:"john.doe@example.com"`
	DateOfBirth    string `json:"dateOfBirth" example:"2000-01-01"`
	EnrollmentDate string `json:"enrollmentDate" example:"2023-09-01"`
}

// FromStudent converts a models.Student to a StudentResponse
func FromStudent(student *models.Student) StudentResponse {
	if student == nil {
		return StudentResponse{}
	}

	return StudentResponse{
		ID:             student.ID,
		FirstName:      student.FirstName,
		LastName:       student.LastName,
		Email:          student.Email,
		DateOfBirth:    student.DateOfBirth.Format(time.DateOnly),
		EnrollmentDate: student.EnrollmentDate.Format(time.DateOnly),
	}
}

// FromStudents converts a slice of students to response form
func FromStudents(students []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for i := range students {
		responses = append(responses, FromStudent(&students[i]))
	}
	return responses
}

// StudentSearchQuery carries the list endpoint query parameters
type StudentSearchQuery struct {
	Search        string `form:"search"`
	SortBy        string `form:"sortBy,default=id"`
	SortDirection string `form:"sortDirection,default=asc"`
	Page          int    `form:"page,default=1"`
	PageSize      int    `form:"pageSize,default=10"`
}

// PaginatedStudentsResponse is the paginated listing payload
type PaginatedStudentsResponse struct {
	Data         []StudentResponse `json:"data"`
	TotalRecords int64             `json:"totalRecords" example:"42"`
	Page         int               `json:"page" example:"1"`
	PageSize     int               `json:"pageSize" example:"10"`
}
