package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deniz/studentdesk/internal/app/models"
	"github.com/deniz/studentdesk/internal/pkg/apperrors"
	"github.com/deniz/studentdesk/internal/pkg/dberrors"
)

// applicationStudentFKConstraint is the foreign key from applications to students
const applicationStudentFKConstraint = "applications_student_id_fkey"

// ApplicationRepository handles database operations for student applications
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
	}
}

// Create inserts a new application and assigns its ID
func (r *ApplicationRepository) Create(ctx context.Context, application *models.StudentApplication) error {
	query := `
		INSERT INTO applications (student_id, application_name, submission_date)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		application.StudentID,
		application.ApplicationName,
		application.SubmissionDate,
	).Scan(&application.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, applicationStudentFKConstraint) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error creating application: %w", err)
	}

	return nil
}

// GetByStudentID retrieves all applications for the given student ID.
// An unknown student ID yields an empty slice, not an error.
func (r *ApplicationRepository) GetByStudentID(ctx context.Context, studentID int64) ([]models.StudentApplication, error) {
	query := `
		SELECT id, student_id, application_name, submission_date
		FROM applications
		WHERE student_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving applications: %w", err)
	}
	defer rows.Close()

	applications := make([]models.StudentApplication, 0)
	for rows.Next() {
		var application models.StudentApplication
		if err := rows.Scan(
			&application.ID,
			&application.StudentID,
			&application.ApplicationName,
			&application.SubmissionDate,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		applications = append(applications, application)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return applications, nil
}
