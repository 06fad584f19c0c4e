package services

import (
	"context"

	"github.com/deniz/studentdesk/internal/app/models"
)

// ApplicationService handles applications scoped to a student
type ApplicationService interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.StudentApplication, error)
	Add(ctx context.Context, studentID int64, application *models.StudentApplication) (bool, error)
}

// applicationStore is the persistence contract the service needs.
// *repositories.ApplicationRepository satisfies it.
type applicationStore interface {
	Create(ctx context.Context, application *models.StudentApplication) error
	GetByStudentID(ctx context.Context, studentID int64) ([]models.StudentApplication, error)
}

// studentLookup is the slice of the student store used for existence checks
type studentLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// applicationServiceImpl implements the ApplicationService interface
type applicationServiceImpl struct {
	applications applicationStore
	students     studentLookup
}

// NewApplicationService creates a new application service instance
func NewApplicationService(applications applicationStore, students studentLookup) ApplicationService {
	return &applicationServiceImpl{
		applications: applications,
		students:     students,
	}
}

// ListByStudent returns all applications for the given student ID, regardless
// of the student's soft-delete state. An unknown student ID yields an empty
// slice, not an error; this listing deliberately performs no existence check.
func (s *applicationServiceImpl) ListByStudent(ctx context.Context, studentID int64) ([]models.StudentApplication, error) {
	return s.applications.GetByStudentID(ctx, studentID)
}

// Add attaches an application to a student.
// Returns false, without an error, when the student does not exist or is
// deactivated. No application may ever be created for a deactivated student.
func (s *applicationServiceImpl) Add(ctx context.Context, studentID int64, application *models.StudentApplication) (bool, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return false, err
	}
	if student == nil || student.IsDeleted {
		return false, nil
	}

	application.StudentID = studentID
	if err := s.applications.Create(ctx, application); err != nil {
		return false, err
	}

	return true, nil
}
