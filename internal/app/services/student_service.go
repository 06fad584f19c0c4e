package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/deniz/studentdesk/internal/app/models"
	"github.com/deniz/studentdesk/internal/pkg/apperrors"
	"github.com/deniz/studentdesk/internal/pkg/helpers"
	"github.com/deniz/studentdesk/internal/pkg/tabular"
)

// SearchParams carries the filtered listing parameters.
// Page numbers are 1-based.
type SearchParams struct {
	Search        string
	SortBy        string
	SortDirection string
	Page          int
	PageSize      int
}

// SearchResult is a page of students plus the total match count
type SearchResult struct {
	Students     []models.Student
	TotalRecords int64
	Page         int
	PageSize     int
}

// StudentService handles student lifecycle, search, import and export operations
type StudentService interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Update(ctx context.Context, id int64, student *models.Student) (bool, error)
	Deactivate(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, params SearchParams) (*SearchResult, error)
	BulkImport(ctx context.Context, data []byte, fileName string) (bool, error)
	GenerateReport(ctx context.Context) ([]byte, error)
}

// studentStore is the persistence contract the service needs.
// *repositories.StudentRepository satisfies it.
type studentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) (bool, error)
	Deactivate(ctx context.Context, id int64) (bool, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	Search(ctx context.Context, search, sortBy, sortDirection string, page, pageSize int) ([]models.Student, int64, error)
	GetActive(ctx context.Context) ([]models.Student, error)
	BulkCreate(ctx context.Context, students []models.Student) error
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	students studentStore
	logger   zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(students studentStore, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		students: students,
		logger:   logger,
	}
}

// Create inserts a new, active student.
// Field-level validation happens at the transport boundary; the service only
// re-checks the email uniqueness invariant against current store state. The
// pre-check keeps the common case friendly, the unique index catches races.
func (s *studentServiceImpl) Create(ctx context.Context, student *models.Student) error {
	exists, err := s.students.EmailExists(ctx, student.Email, 0)
	if err != nil {
		return fmt.Errorf("error checking email uniqueness: %w", err)
	}
	if exists {
		return apperrors.ErrEmailAlreadyExists
	}

	student.IsDeleted = false
	if err := s.students.Create(ctx, student); err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a student by ID, deactivated ones included.
// Returns (nil, nil) when the student does not exist.
func (s *studentServiceImpl) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.students.GetByID(ctx, id)
}

// Update overwrites the mutable fields of an existing student.
// Returns false when the ID does not exist. The soft-delete flag and the ID
// itself are never altered. Email uniqueness is re-checked excluding the
// student's own row.
func (s *studentServiceImpl) Update(ctx context.Context, id int64, student *models.Student) (bool, error) {
	existing, err := s.students.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	if student.Email != existing.Email {
		exists, err := s.students.EmailExists(ctx, student.Email, id)
		if err != nil {
			return false, fmt.Errorf("error checking email uniqueness: %w", err)
		}
		if exists {
			return false, apperrors.ErrEmailAlreadyExists
		}
	}

	student.ID = id
	return s.students.Update(ctx, student)
}

// Deactivate soft-deletes a student.
// Returns false when the student does not exist or is already deactivated.
func (s *studentServiceImpl) Deactivate(ctx context.Context, id int64) (bool, error) {
	return s.students.Deactivate(ctx, id)
}

// Search returns a filtered, sorted, paginated view over active students
func (s *studentServiceImpl) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	if err := helpers.ValidatePaging(params.Page, params.PageSize); err != nil {
		return nil, err
	}

	students, total, err := s.students.Search(ctx, params.Search, params.SortBy, params.SortDirection, params.Page, params.PageSize)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Students:     students,
		TotalRecords: total,
		Page:         params.Page,
		PageSize:     params.PageSize,
	}, nil
}

// BulkImport decodes an uploaded tabular file and inserts every decoded row
// as a new active student in a single all-or-nothing batch.
// Returns (false, nil) when the file decodes to zero rows.
// Imported rows intentionally skip the per-field validation of the single
// record path, matching the single-record/bulk asymmetry of the API contract.
func (s *studentServiceImpl) BulkImport(ctx context.Context, data []byte, fileName string) (bool, error) {
	if len(data) == 0 {
		return false, apperrors.ErrEmptyFile
	}

	rows, err := tabular.DecodeStudents(data, fileName)
	if err != nil {
		return false, err
	}

	if len(rows) == 0 {
		s.logger.Info().Str("file", fileName).Msg("Bulk import decoded zero rows, nothing inserted")
		return false, nil
	}

	students := make([]models.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, models.Student{
			FirstName:      row.FirstName,
			LastName:       row.LastName,
			Email:          row.Email,
			DateOfBirth:    row.DateOfBirth,
			EnrollmentDate: row.EnrollmentDate,
		})
	}

	if err := s.students.BulkCreate(ctx, students); err != nil {
		return false, err
	}

	s.logger.Info().Str("file", fileName).Int("count", len(students)).Msg("Bulk import completed")
	return true, nil
}

// GenerateReport serializes all active students as delimited text.
// Returns (nil, nil) when there are zero active students.
func (s *studentServiceImpl) GenerateReport(ctx context.Context) ([]byte, error) {
	students, err := s.students.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	if len(students) == 0 {
		return nil, nil
	}

	rows := make([]tabular.ReportRow, 0, len(students))
	for _, student := range students {
		rows = append(rows, tabular.ReportRow{
			ID:             student.ID,
			FirstName:      student.FirstName,
			LastName:       student.LastName,
			Email:          student.Email,
			DateOfBirth:    student.DateOfBirth,
			EnrollmentDate: student.EnrollmentDate,
		})
	}

	report, err := tabular.WriteReport(rows)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Int("count", len(rows)).Msg("Student report generated")
	return report, nil
}
