package tabular

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/deniz/studentdesk/internal/pkg/apperrors"
)

// xlsxColumnCount is the number of fixed columns read from a spreadsheet row:
// FirstName, LastName, Email, DateOfBirth, EnrollmentDate.
const xlsxColumnCount = 5

// xlsxDecoder decodes the first sheet of a workbook, skipping the header row
// and reading five fixed columns positionally.
type xlsxDecoder struct{}

func (d *xlsxDecoder) Decode(data []byte) ([]StudentRow, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewParseError(fmt.Sprintf("failed to open workbook: %v", err))
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	cells, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParseError(fmt.Sprintf("failed to read sheet %q: %v", sheets[0], err))
	}

	var rows []StudentRow
	for i, record := range cells {
		// Row 0 is the header
		if i == 0 {
			continue
		}
		if isEmptyRecord(record) {
			continue
		}
		if len(record) < xlsxColumnCount {
			return nil, apperrors.NewParseError(fmt.Sprintf("row %d: expected %d columns, got %d", i+1, xlsxColumnCount, len(record)))
		}

		dob, err := parseDate(record[3])
		if err != nil {
			return nil, apperrors.NewParseError(fmt.Sprintf("row %d: invalid date of birth: %v", i+1, err))
		}

		enrolled, err := parseDate(record[4])
		if err != nil {
			return nil, apperrors.NewParseError(fmt.Sprintf("row %d: invalid enrollment date: %v", i+1, err))
		}

		rows = append(rows, StudentRow{
			FirstName:      record[0],
			LastName:       record[1],
			Email:          record[2],
			DateOfBirth:    dob,
			EnrollmentDate: enrolled,
		})
	}

	return rows, nil
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}
	return true
}
