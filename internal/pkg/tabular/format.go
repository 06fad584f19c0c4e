// Package tabular decodes uploaded student files into canonical rows and
// serializes student reports. Supported formats are a closed set; callers
// resolve a Format from the file name before touching the payload.
package tabular

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/deniz/studentdesk/internal/pkg/apperrors"
)

// Format identifies a supported tabular file format
type Format int

const (
	// FormatUnknown is the zero value, never valid for decoding
	FormatUnknown Format = iota
	// FormatCSV is delimited text with a header row naming the student fields
	FormatCSV
	// FormatXLSX is a spreadsheet with five fixed columns after the header row
	FormatXLSX
)

// String returns the format name
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// StudentRow is the canonical record shape every import format normalizes into
type StudentRow struct {
	FirstName      string
	LastName       string
	Email          string
	DateOfBirth    time.Time
	EnrollmentDate time.Time
}

// Decoder decodes a file payload into canonical student rows
type Decoder interface {
	Decode(data []byte) ([]StudentRow, error)
}

// DetectFormat resolves the file extension to a Format.
// Anything outside the supported set is rejected at this boundary.
func DetectFormat(fileName string) (Format, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: only CSV or Excel files are supported", apperrors.ErrUnsupportedFormat)
	}
}

// NewDecoder returns the decoder for a resolved format
func NewDecoder(format Format) (Decoder, error) {
	switch format {
	case FormatCSV:
		return &csvDecoder{}, nil
	case FormatXLSX:
		return &xlsxDecoder{}, nil
	default:
		return nil, fmt.Errorf("%w: no decoder for format %q", apperrors.ErrUnsupportedFormat, format)
	}
}

// DecodeStudents resolves the format from the file name and decodes the payload
func DecodeStudents(data []byte, fileName string) ([]StudentRow, error) {
	format, err := DetectFormat(fileName)
	if err != nil {
		return nil, err
	}

	decoder, err := NewDecoder(format)
	if err != nil {
		return nil, err
	}

	return decoder.Decode(data)
}

// dateLayouts are tried in order when parsing date cells.
// The exporter always writes the first one.
var dateLayouts = []string{
	time.DateOnly,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// parseDate parses a date cell using the locale-invariant layout list
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date value %q", value)
}
