package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

// ReportRow is one line of the student report
type ReportRow struct {
	ID             int64
	FirstName      string
	LastName       string
	Email          string
	DateOfBirth    time.Time
	EnrollmentDate time.Time
}

// reportHeader is the header row of the exported report
var reportHeader = []string{"Id", "FirstName", "LastName", "Email", "DateOfBirth", "EnrollmentDate"}

// WriteReport serializes report rows as delimited text with a header row.
// Dates are formatted with the invariant YYYY-MM-DD layout.
func WriteReport(rows []ReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(reportHeader); err != nil {
		return nil, fmt.Errorf("failed to write report header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.ID, 10),
			row.FirstName,
			row.LastName,
			row.Email,
			row.DateOfBirth.Format(time.DateOnly),
			row.EnrollmentDate.Format(time.DateOnly),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write report row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush report: %w", err)
	}

	return buf.Bytes(), nil
}
