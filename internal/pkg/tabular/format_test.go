package tabular

import (
	"errors"
	"testing"
	"time"

	"github.com/deniz/studentdesk/internal/pkg/apperrors"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     Format
		wantErr  bool
	}{
		{name: "csv extension", fileName: "students.csv", want: FormatCSV},
		{name: "xlsx extension", fileName: "students.xlsx", want: FormatXLSX},
		{name: "uppercase extension", fileName: "STUDENTS.CSV", want: FormatCSV},
		{name: "mixed case xlsx", fileName: "roster.Xlsx", want: FormatXLSX},
		{name: "nested path", fileName: "uploads/2024/batch.csv", want: FormatCSV},
		{name: "legacy xls", fileName: "students.xls", wantErr: true},
		{name: "pdf", fileName: "students.pdf", wantErr: true},
		{name: "no extension", fileName: "students", wantErr: true},
		{name: "empty name", fileName: "", wantErr: true},
		{name: "trailing dot", fileName: "students.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.fileName)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DetectFormat(%q) expected error, got format %v", tt.fileName, got)
				}
				if !errors.Is(err, apperrors.ErrUnsupportedFormat) {
					t.Errorf("DetectFormat(%q) error = %v, want ErrUnsupportedFormat", tt.fileName, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectFormat(%q) unexpected error: %v", tt.fileName, err)
			}
			if got != tt.want {
				t.Errorf("DetectFormat(%q) = %v, want %v", tt.fileName, got, tt.want)
			}
		})
	}
}

func TestNewDecoderRejectsUnknownFormat(t *testing.T) {
	if _, err := NewDecoder(FormatUnknown); !errors.Is(err, apperrors.ErrUnsupportedFormat) {
		t.Errorf("NewDecoder(FormatUnknown) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "date only",
			input: "2000-01-15",
			want:  time.Date(2000, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "date with time",
			input: "2000-01-15 00:00:00",
			want:  time.Date(2000, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "surrounding whitespace",
			input: "  2000-01-15  ",
			want:  time.Date(2000, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "us style slashes",
			input: "01/15/2000",
			want:  time.Date(2000, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
		{name: "garbage", input: "not-a-date", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "day first ambiguity rejected", input: "15/01/2000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseDate(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDate(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
