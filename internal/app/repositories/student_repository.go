package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deniz/studentdesk/internal/app/models"
	"github.com/deniz/studentdesk/internal/db"
	"github.com/deniz/studentdesk/internal/pkg/apperrors"
	"github.com/deniz/studentdesk/internal/pkg/dberrors"
	"github.com/deniz/studentdesk/internal/pkg/helpers"
)

// studentEmailConstraint is the unique index on LOWER(students.email).
// It covers active and deactivated rows alike.
const studentEmailConstraint = "students_email_key"

// studentColumns are the scanned columns of the students table
var studentColumns = []string{"id", "first_name", "last_name", "email", "date_of_birth", "enrollment_date", "is_deleted"}

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create inserts a new student and assigns its ID
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (first_name, last_name, email, date_of_birth, enrollment_date, is_deleted)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.FirstName,
		student.LastName,
		student.Email,
		student.DateOfBirth,
		student.EnrollmentDate,
	).Scan(&student.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err, studentEmailConstraint) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID regardless of its soft-delete state.
// Returns (nil, nil) when no row exists.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, first_name, last_name, email, date_of_birth, enrollment_date, is_deleted
		FROM students
		WHERE id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.FirstName,
		&student.LastName,
		&student.Email,
		&student.DateOfBirth,
		&student.EnrollmentDate,
		&student.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// Update overwrites the mutable fields of a student in place.
// The id and is_deleted columns are never touched here.
// Returns false when no row with the given ID exists.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) (bool, error) {
	query := `
		UPDATE students
		SET first_name = $1, last_name = $2, email = $3, date_of_birth = $4, enrollment_date = $5
		WHERE id = $6
	`

	tag, err := r.db.Exec(ctx, query,
		student.FirstName,
		student.LastName,
		student.Email,
		student.DateOfBirth,
		student.EnrollmentDate,
		student.ID,
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err, studentEmailConstraint) {
			return false, apperrors.ErrEmailAlreadyExists
		}
		return false, fmt.Errorf("error updating student: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Deactivate marks a student as soft-deleted.
// Returns false when the student does not exist or is already deactivated.
func (r *StudentRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE students
		SET is_deleted = TRUE
		WHERE id = $1 AND is_deleted = FALSE
	`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("error deactivating student: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// EmailExists reports whether another student already uses the given email.
// The comparison is case-insensitive, matching the unique index.
// Pass excludeID = 0 when there is no own row to exclude.
func (r *StudentRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM students WHERE LOWER(email) = LOWER($1) AND id <> $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// Search retrieves active students matching the search text, sorted and
// paginated, together with the total matching row count before pagination.
// The total is computed on the unpaginated filter, so a page past the last
// row still reports the real match count alongside an empty result.
func (r *StudentRepository) Search(ctx context.Context, search, sortBy, sortDirection string, page, pageSize int) ([]models.Student, int64, error) {
	countSQL, countArgs, dataSQL, dataArgs, err := buildSearchQueries(search, sortBy, sortDirection, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	rows, err := r.db.Query(ctx, dataSQL, dataArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var student models.Student
		err := rows.Scan(
			&student.ID,
			&student.FirstName,
			&student.LastName,
			&student.Email,
			&student.DateOfBirth,
			&student.EnrollmentDate,
			&student.IsDeleted,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error reading rows: %w", err)
	}

	return students, total, nil
}

// buildSearchQueries composes the count and data queries of a student search.
// Both share the same filter; only the data query carries ordering and
// pagination.
func buildSearchQueries(search, sortBy, sortDirection string, page, pageSize int) (countSQL string, countArgs []interface{}, dataSQL string, dataArgs []interface{}, err error) {
	base := squirrel.Select().
		From("students").
		Where("is_deleted = FALSE").
		PlaceholderFormat(squirrel.Dollar)

	if strings.TrimSpace(search) != "" {
		pattern := "%" + escapeLikePattern(search) + "%"
		base = base.Where(
			squirrel.Or{
				squirrel.ILike{"first_name": pattern},
				squirrel.ILike{"last_name": pattern},
				squirrel.ILike{"email": pattern},
			},
		)
	}

	countSQL, countArgs, err = base.Column("COUNT(*)").ToSql()
	if err != nil {
		return "", nil, "", nil, err
	}

	dataSQL, dataArgs, err = base.Columns(studentColumns...).
		OrderBy(orderClause(sortBy, sortDirection)).
		Limit(uint64(pageSize)).
		Offset(helpers.CalculateOffset(page, pageSize)).
		ToSql()
	if err != nil {
		return "", nil, "", nil, err
	}

	return countSQL, countArgs, dataSQL, dataArgs, nil
}

// escapeLikePattern escapes the LIKE metacharacters in caller-supplied search
// text so they match literally inside the ILIKE pattern.
func escapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GetActive retrieves all active students ordered by ID
func (r *StudentRepository) GetActive(ctx context.Context) ([]models.Student, error) {
	query := `
		SELECT id, first_name, last_name, email, date_of_birth, enrollment_date, is_deleted
		FROM students
		WHERE is_deleted = FALSE
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving active students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.FirstName,
			&student.LastName,
			&student.Email,
			&student.DateOfBirth,
			&student.EnrollmentDate,
			&student.IsDeleted,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// BulkCreate inserts the given students in a single transaction.
// Insertion is all-or-nothing: any failure rolls back the whole batch.
func (r *StudentRepository) BulkCreate(ctx context.Context, students []models.Student) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"students"},
			[]string{"first_name", "last_name", "email", "date_of_birth", "enrollment_date", "is_deleted"},
			pgx.CopyFromSlice(len(students), func(i int) ([]interface{}, error) {
				s := students[i]
				return []interface{}{s.FirstName, s.LastName, s.Email, s.DateOfBirth, s.EnrollmentDate, false}, nil
			}),
		)
		return err
	})
	if err != nil {
		if dberrors.IsUniqueViolation(err, studentEmailConstraint) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error bulk inserting students: %w", err)
	}

	return nil
}

// orderClause maps the caller-supplied sort field and direction to an ORDER BY
// clause. Only the whitelisted fields honor the direction; everything else,
// including the default "id", orders by id ascending.
func orderClause(sortBy, sortDirection string) string {
	direction := "ASC"
	if sortDirection == "desc" {
		direction = "DESC"
	}

	switch strings.ToLower(sortBy) {
	case "firstname":
		return "first_name " + direction
	case "lastname":
		return "last_name " + direction
	case "enrollmentdate":
		return "enrollment_date " + direction
	default:
		return "id ASC"
	}
}
