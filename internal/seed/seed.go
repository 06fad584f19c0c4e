package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/deniz/studentdesk/internal/app/models"
	appRepos "github.com/deniz/studentdesk/internal/app/repositories"
)

// CreateSampleData inserts a handful of demo students when the students table
// is empty. Intended for development environments only.
func CreateSampleData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	var count int64
	if err := dbPool.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count students: %w", err)
	}
	if count > 0 {
		lgr.Debug().Int64("students", count).Msg("Students table not empty, skipping sample data")
		return nil
	}

	lgr.Info().Msg("Creating sample student data...")
	studentRepo := appRepos.NewStudentRepository(dbPool)

	samples := []appModels.Student{
		{
			FirstName:      "John",
			LastName:       "Doe",
			Email:          "john.doe@example.com",
			DateOfBirth:    date(2000, time.January, 15),
			EnrollmentDate: date(2023, time.September, 1),
		},
		{
			FirstName:      "Jane",
			LastName:       "Smith",
			Email:          "jane.smith@example.com",
			DateOfBirth:    date(1999, time.May, 30),
			EnrollmentDate: date(2022, time.September, 1),
		},
		{
			FirstName:      "Ali",
			LastName:       "Yilmaz",
			Email:          "ali.yilmaz@example.com",
			DateOfBirth:    date(2001, time.November, 8),
			EnrollmentDate: date(2024, time.February, 5),
		},
	}

	for i := range samples {
		if err := studentRepo.Create(ctx, &samples[i]); err != nil {
			return fmt.Errorf("failed to create sample student %s: %w", samples[i].Email, err)
		}
	}

	lgr.Info().Int("count", len(samples)).Msg("Sample students created")
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
