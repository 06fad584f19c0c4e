package repositories

import (
	"reflect"
	"strings"
	"testing"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name          string
		sortBy        string
		sortDirection string
		want          string
	}{
		{name: "first name asc", sortBy: "firstname", sortDirection: "asc", want: "first_name ASC"},
		{name: "first name desc", sortBy: "firstname", sortDirection: "desc", want: "first_name DESC"},
		{name: "last name desc", sortBy: "lastname", sortDirection: "desc", want: "last_name DESC"},
		{name: "enrollment date desc", sortBy: "enrollmentdate", sortDirection: "desc", want: "enrollment_date DESC"},
		{name: "field name case insensitive", sortBy: "FirstName", sortDirection: "desc", want: "first_name DESC"},
		{name: "default id ignores direction", sortBy: "id", sortDirection: "desc", want: "id ASC"},
		{name: "unknown field falls back to id", sortBy: "email", sortDirection: "desc", want: "id ASC"},
		{name: "empty field falls back to id", sortBy: "", sortDirection: "desc", want: "id ASC"},
		{name: "misspelled desc behaves as asc", sortBy: "firstname", sortDirection: "descending", want: "first_name ASC"},
		{name: "uppercase desc behaves as asc", sortBy: "firstname", sortDirection: "DESC", want: "first_name ASC"},
		{name: "missing direction behaves as asc", sortBy: "lastname", sortDirection: "", want: "last_name ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := orderClause(tt.sortBy, tt.sortDirection); got != tt.want {
				t.Errorf("orderClause(%q, %q) = %q, want %q", tt.sortBy, tt.sortDirection, got, tt.want)
			}
		})
	}
}

func TestBuildSearchQueries(t *testing.T) {
	countSQL, countArgs, dataSQL, dataArgs, err := buildSearchQueries("ada", "firstname", "desc", 3, 10)
	if err != nil {
		t.Fatalf("buildSearchQueries returned error: %v", err)
	}

	// The count runs on the unpaginated filter: a page past the last row must
	// still report the real match total.
	for _, clause := range []string{"LIMIT", "OFFSET", "ORDER BY"} {
		if strings.Contains(countSQL, clause) {
			t.Errorf("count query contains %s: %s", clause, countSQL)
		}
	}
	if !strings.Contains(countSQL, "COUNT(*)") {
		t.Errorf("count query does not count: %s", countSQL)
	}

	for _, clause := range []string{"LIMIT 10", "OFFSET 20", "ORDER BY first_name DESC"} {
		if !strings.Contains(dataSQL, clause) {
			t.Errorf("data query is missing %q: %s", clause, dataSQL)
		}
	}

	// Both queries filter identically
	if !reflect.DeepEqual(countArgs, dataArgs) {
		t.Errorf("count args %v differ from data args %v", countArgs, dataArgs)
	}
	want := []interface{}{"%ada%", "%ada%", "%ada%"}
	if !reflect.DeepEqual(dataArgs, want) {
		t.Errorf("search args = %v, want %v", dataArgs, want)
	}

	for _, sql := range []string{countSQL, dataSQL} {
		if !strings.Contains(sql, "is_deleted = FALSE") {
			t.Errorf("query does not exclude deactivated students: %s", sql)
		}
	}
}

func TestBuildSearchQueriesWithoutSearchText(t *testing.T) {
	countSQL, countArgs, _, dataArgs, err := buildSearchQueries("   ", "id", "asc", 1, 10)
	if err != nil {
		t.Fatalf("buildSearchQueries returned error: %v", err)
	}
	if strings.Contains(countSQL, "ILIKE") {
		t.Errorf("blank search text produced a filter: %s", countSQL)
	}
	if len(countArgs) != 0 || len(dataArgs) != 0 {
		t.Errorf("blank search text produced args: %v, %v", countArgs, dataArgs)
	}
}

func TestEscapeLikePattern(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text", input: "ada", want: "ada"},
		{name: "percent matches literally", input: "100%", want: `100\%`},
		{name: "underscore matches literally", input: "a_b", want: `a\_b`},
		{name: "backslash first", input: `a\%`, want: `a\\\%`},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeLikePattern(tt.input); got != tt.want {
				t.Errorf("escapeLikePattern(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildSearchQueriesEscapesPattern(t *testing.T) {
	_, countArgs, _, _, err := buildSearchQueries("100%", "id", "asc", 1, 10)
	if err != nil {
		t.Fatalf("buildSearchQueries returned error: %v", err)
	}
	want := []interface{}{`%100\%%`, `%100\%%`, `%100\%%`}
	if !reflect.DeepEqual(countArgs, want) {
		t.Errorf("search args = %v, want %v", countArgs, want)
	}
}
