package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/deniz/studentdesk/internal/pkg/apperrors"
)

// Canonical header names for CSV imports, matched case-insensitively
const (
	headerFirstName      = "firstname"
	headerLastName       = "lastname"
	headerEmail          = "email"
	headerDateOfBirth    = "dateofbirth"
	headerEnrollmentDate = "enrollmentdate"
)

// csvDecoder decodes delimited text with a header row naming the student fields
type csvDecoder struct{}

// columnMap maps canonical field names to column indexes in the header row
type columnMap map[string]int

func (d *csvDecoder) Decode(data []byte) ([]StudentRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewParseError(fmt.Sprintf("failed to read CSV header: %v", err))
	}

	columns, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var rows []StudentRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, apperrors.NewParseError(fmt.Sprintf("failed to read CSV line %d: %v", line, err))
		}

		row, err := recordToRow(record, columns, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// mapHeader resolves the five required field names to column indexes.
// Header names are matched after lowercasing and stripping spaces and underscores.
func mapHeader(header []string) (columnMap, error) {
	columns := make(columnMap, len(header))
	for i, name := range header {
		columns[normalizeHeader(name)] = i
	}

	required := []string{headerFirstName, headerLastName, headerEmail, headerDateOfBirth, headerEnrollmentDate}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, apperrors.NewParseError(fmt.Sprintf("CSV header is missing required column %q", name))
		}
	}

	return columns, nil
}

func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, "_", "")
	return strings.TrimPrefix(name, "\uFEFF")
}

func recordToRow(record []string, columns columnMap, line int) (StudentRow, error) {
	field := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	dob, err := parseDate(field(headerDateOfBirth))
	if err != nil {
		return StudentRow{}, apperrors.NewParseError(fmt.Sprintf("line %d: invalid date of birth: %v", line, err))
	}

	enrolled, err := parseDate(field(headerEnrollmentDate))
	if err != nil {
		return StudentRow{}, apperrors.NewParseError(fmt.Sprintf("line %d: invalid enrollment date: %v", line, err))
	}

	return StudentRow{
		FirstName:      field(headerFirstName),
		LastName:       field(headerLastName),
		Email:          field(headerEmail),
		DateOfBirth:    dob,
		EnrollmentDate: enrolled,
	}, nil
}
