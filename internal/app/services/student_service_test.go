package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/deniz/studentdesk/internal/app/models"
	"github.com/deniz/studentdesk/internal/pkg/apperrors"
)

// fakeStudentStore is an in-memory studentStore used to exercise the service
// without a database.
type fakeStudentStore struct {
	students map[int64]*models.Student
	nextID   int64

	searchResult []models.Student
	searchTotal  int64
	lastSearch   struct {
		search, sortBy, sortDirection string
		page, pageSize                int
	}

	createErr     error
	bulkCreateErr error
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]*models.Student), nextID: 1}
}

func (f *fakeStudentStore) Create(_ context.Context, student *models.Student) error {
	if f.createErr != nil {
		return f.createErr
	}
	student.ID = f.nextID
	f.nextID++
	copied := *student
	f.students[copied.ID] = &copied
	return nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, nil
	}
	copied := *student
	return &copied, nil
}

func (f *fakeStudentStore) Update(_ context.Context, student *models.Student) (bool, error) {
	existing, ok := f.students[student.ID]
	if !ok {
		return false, nil
	}
	existing.FirstName = student.FirstName
	existing.LastName = student.LastName
	existing.Email = student.Email
	existing.DateOfBirth = student.DateOfBirth
	existing.EnrollmentDate = student.EnrollmentDate
	return true, nil
}

func (f *fakeStudentStore) Deactivate(_ context.Context, id int64) (bool, error) {
	student, ok := f.students[id]
	if !ok || student.IsDeleted {
		return false, nil
	}
	student.IsDeleted = true
	return true, nil
}

func (f *fakeStudentStore) EmailExists(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, student := range f.students {
		if student.ID != excludeID && strings.EqualFold(student.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStudentStore) Search(_ context.Context, search, sortBy, sortDirection string, page, pageSize int) ([]models.Student, int64, error) {
	f.lastSearch.search = search
	f.lastSearch.sortBy = sortBy
	f.lastSearch.sortDirection = sortDirection
	f.lastSearch.page = page
	f.lastSearch.pageSize = pageSize
	return f.searchResult, f.searchTotal, nil
}

func (f *fakeStudentStore) GetActive(_ context.Context) ([]models.Student, error) {
	active := make([]models.Student, 0)
	for id := int64(1); id < f.nextID; id++ {
		if student, ok := f.students[id]; ok && !student.IsDeleted {
			active = append(active, *student)
		}
	}
	return active, nil
}

func (f *fakeStudentStore) BulkCreate(_ context.Context, students []models.Student) error {
	if f.bulkCreateErr != nil {
		return f.bulkCreateErr
	}
	for i := range students {
		students[i].ID = f.nextID
		f.nextID++
		copied := students[i]
		f.students[copied.ID] = &copied
	}
	return nil
}

func newTestStudentService(store *fakeStudentStore) StudentService {
	return NewStudentService(store, zerolog.Nop())
}

func sampleStudent(email string) *models.Student {
	return &models.Student{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          email,
		DateOfBirth:    time.Date(2000, 3, 14, 0, 0, 0, 0, time.UTC),
		EnrollmentDate: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestStudentServiceCreateAndGet(t *testing.T) {
	store := newFakeStudentStore()
	service := newTestStudentService(store)
	ctx := context.Background()

	student := sampleStudent("ada@example.com")
	student.IsDeleted = true // service must force the new record active

	if err := service.Create(ctx, student); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if student.ID == 0 {
		t.Fatal("Create did not assign an ID")
	}

	got, err := service.GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID returned nil for an existing student")
	}
	if got.Email != "ada@example.com" {
		t.Errorf("got email %q, want %q", got.Email, "ada@example.com")
	}
	if got.IsDeleted {
		t.Error("newly created student is marked deleted")
	}
}

func TestStudentServiceCreateDuplicateEmail(t *testing.T) {
	store := newFakeStudentStore()
	service := newTestStudentService(store)
	ctx := context.Background()

	if err := service.Create(ctx, sampleStudent("ada@example.com")); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	err := service.Create(ctx, sampleStudent("ada@example.com"))
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("second Create error = %v, want ErrEmailAlreadyExists", err)
	}
}

// Email uniqueness ignores case, matching the LOWER(email) unique index
func TestStudentServiceCreateDuplicateEmailDifferentCase(t *testing.T) {
	store := newFakeStudentStore()
	service := newTestStudentService(store)
	ctx := context.Background()

	if err := service.Create(ctx, sampleStudent("ada@example.com")); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	err := service.Create(ctx, sampleStudent("Ada@Example.COM"))
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("case-variant Create error = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestStudentServiceGetByIDMissing(t *testing.T) {
	service := newTestStudentService(newFakeStudentStore())

	got, err := service.GetByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got != nil {
		t.Fatalf("GetByID for missing student = %+v, want nil", got)
	}
}

func TestStudentServiceUpdate(t *testing.T) {
	store := newFakeStudentStore()
	service := newTestStudentService(store)
	ctx := context.Background()

	student := sampleStudent("ada@example.com")
	if err := service.Create(ctx, student); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	update := sampleStudent("countess@example.com")
	update.FirstName = "Augusta"

	ok, err := service.Update(ctx, student.ID, update)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !ok {
		t.Fatal("Update returned false for an existing student")
	}

	got, _ := service.GetByID(ctx, student.ID)
	if got.FirstName != "Augusta" || got.Email != "countess@example.com" {
		t.Errorf("update not applied, got %+v", got)
	}
}

func TestStudentServiceUpdateMissing(t *testing.T) {
	service := newTestStudentService(newFakeStudentStore())

	ok, err := service.Update(context.Background(), 99, sampleStudent("ada@example.com"))
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if ok {
		t.Fatal("Update returned true for a missing student")
	}
}

func TestStudentServiceUpdateEmailConflict(t *testing.T) {
	store := newFakeStudentStore()
	service := newTestStudentService(store)
	ctx := context.Background()

	first := sampleStudent("ada@example.com")
	second := sampleStudent("grace@example.com")
	if err := service.Create(ctx, first); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := service.Create(ctx, second); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	update := sampleStudent("ada@example.com")
	_, err := service.Update(ctx, second.ID, update)
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("Update error = %v, want ErrEmailAlreadyExists", err)
	}

	// conflict detection ignores case
	update = sampleStudent("ADA@example.com")
	_, err = service.Update(ctx, second.ID, update)
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("case-variant Update error = %v, want ErrEmailAlreadyExists", err)
	}

	// keeping your own email is never a conflict
	keep := sampleStudent("grace@example.com")
	ok, err := service.Update(ctx, second.ID, keep)
	if err != nil || !ok {
		t.Fatalf("Update with unchanged email = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestStudentServiceDeactivate(t *testing.T) {
	store := newFakeStudentStore()
	service := newTestStudentService(store)
	ctx := context.Background()

	student := sampleStudent("ada@example.com")
	if err := service.Create(ctx, student); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	ok, err := service.Deactivate(ctx, student.ID)
	if err != nil || !ok {
		t.Fatalf("Deactivate = (%v, %v), want (true, nil)", ok, err)
	}

	// second deactivation is a negative result, not an error
	ok, err = service.Deactivate(ctx, student.ID)
	if err != nil {
		t.Fatalf("repeat Deactivate returned error: %v", err)
	}
	if ok {
		t.Fatal("repeat Deactivate returned true")
	}

	// the record itself survives the soft delete
	got, _ := service.GetByID(ctx, student.ID)
	if got == nil || !got.IsDeleted {
		t.Fatalf("deactivated student = %+v, want retrievable with IsDeleted set", got)
	}
}

func TestStudentServiceDeactivateMissing(t *testing.T) {
	service := newTestStudentService(newFakeStudentStore())

	ok, err := service.Deactivate(context.Background(), 7)
	if err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}
	if ok {
		t.Fatal("Deactivate returned true for a missing student")
	}
}

func TestStudentServiceSearch(t *testing.T) {
	store := newFakeStudentStore()
	store.searchResult = []models.Student{*sampleStudent("ada@example.com")}
	store.searchTotal = 25
	service := newTestStudentService(store)

	result, err := service.Search(context.Background(), SearchParams{
		Search:        "ada",
		SortBy:        "lastname",
		SortDirection: "desc",
		Page:          2,
		PageSize:      10,
	})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if result.TotalRecords != 25 {
		t.Errorf("TotalRecords = %d, want 25", result.TotalRecords)
	}
	if result.Page != 2 || result.PageSize != 10 {
		t.Errorf("page metadata = (%d, %d), want (2, 10)", result.Page, result.PageSize)
	}
	if len(result.Students) != 1 {
		t.Fatalf("got %d students, want 1", len(result.Students))
	}
	if store.lastSearch.search != "ada" || store.lastSearch.sortBy != "lastname" || store.lastSearch.sortDirection != "desc" {
		t.Errorf("store received search args %+v", store.lastSearch)
	}
}

func TestStudentServiceSearchInvalidPaging(t *testing.T) {
	service := newTestStudentService(newFakeStudentStore())

	tests := []struct {
		name     string
		page     int
		pageSize int
	}{
		{name: "zero page", page: 0, pageSize: 10},
		{name: "negative page", page: -1, pageSize: 10},
		{name: "zero page size", page: 1, pageSize: 0},
		{name: "page size over limit", page: 1, pageSize: 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Search(context.Background(), SearchParams{Page: tt.page, PageSize: tt.pageSize})
			if !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("Search error = %v, want ErrValidationFailed", err)
			}
		})
	}
}

func TestStudentServiceBulkImport(t *testing.T) {
	store := newFakeStudentStore()
	service := newTestStudentService(store)
	ctx := context.Background()

	csvData := []byte("FirstName,LastName,Email,DateOfBirth,EnrollmentDate\n" +
		"Ada,Lovelace,ada@example.com,2000-03-14,2023-09-01\n" +
		"Grace,Hopper,grace@example.com,1999-12-09,2023-09-01\n")

	imported, err := service.BulkImport(ctx, csvData, "students.csv")
	if err != nil {
		t.Fatalf("BulkImport returned error: %v", err)
	}
	if !imported {
		t.Fatal("BulkImport returned false for a file with rows")
	}
	if len(store.students) != 2 {
		t.Fatalf("store holds %d students, want 2", len(store.students))
	}
	for _, student := range store.students {
		if student.IsDeleted {
			t.Errorf("imported student %q is marked deleted", student.Email)
		}
	}
}

func TestStudentServiceBulkImportZeroRows(t *testing.T) {
	store := newFakeStudentStore()
	service := newTestStudentService(store)

	headerOnly := []byte("FirstName,LastName,Email,DateOfBirth,EnrollmentDate\n")
	imported, err := service.BulkImport(context.Background(), headerOnly, "students.csv")
	if err != nil {
		t.Fatalf("BulkImport returned error: %v", err)
	}
	if imported {
		t.Fatal("BulkImport returned true for a header-only file")
	}
	if len(store.students) != 0 {
		t.Fatalf("store holds %d students, want 0", len(store.students))
	}
}

func TestStudentServiceBulkImportErrors(t *testing.T) {
	service := newTestStudentService(newFakeStudentStore())
	ctx := context.Background()

	if _, err := service.BulkImport(ctx, nil, "students.csv"); !errors.Is(err, apperrors.ErrEmptyFile) {
		t.Errorf("empty payload error = %v, want ErrEmptyFile", err)
	}

	if _, err := service.BulkImport(ctx, []byte("a,b\n"), "students.pdf"); !errors.Is(err, apperrors.ErrUnsupportedFormat) {
		t.Errorf("unsupported extension error = %v, want ErrUnsupportedFormat", err)
	}

	broken := []byte("FirstName,LastName,Email,DateOfBirth,EnrollmentDate\nAda,Lovelace,ada@example.com,not-a-date,2023-09-01\n")
	if _, err := service.BulkImport(ctx, broken, "students.csv"); !errors.Is(err, apperrors.ErrRowParse) {
		t.Errorf("malformed row error = %v, want ErrRowParse", err)
	}
}

func TestStudentServiceBulkImportStoreFailure(t *testing.T) {
	store := newFakeStudentStore()
	store.bulkCreateErr = apperrors.ErrEmailAlreadyExists
	service := newTestStudentService(store)

	csvData := []byte("FirstName,LastName,Email,DateOfBirth,EnrollmentDate\nAda,Lovelace,ada@example.com,2000-03-14,2023-09-01\n")
	imported, err := service.BulkImport(context.Background(), csvData, "students.csv")
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("BulkImport error = %v, want ErrEmailAlreadyExists", err)
	}
	if imported {
		t.Fatal("BulkImport returned true alongside an error")
	}
}

func TestStudentServiceGenerateReport(t *testing.T) {
	store := newFakeStudentStore()
	service := newTestStudentService(store)
	ctx := context.Background()

	active := sampleStudent("ada@example.com")
	if err := service.Create(ctx, active); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	gone := sampleStudent("grace@example.com")
	if err := service.Create(ctx, gone); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := service.Deactivate(ctx, gone.ID); err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}

	report, err := service.GenerateReport(ctx)
	if err != nil {
		t.Fatalf("GenerateReport returned error: %v", err)
	}
	if report == nil {
		t.Fatal("GenerateReport returned nil with active students present")
	}

	content := string(report)
	if !strings.Contains(content, "ada@example.com") {
		t.Error("report is missing the active student")
	}
	if strings.Contains(content, "grace@example.com") {
		t.Error("report includes a deactivated student")
	}
	if !strings.HasPrefix(content, "Id,FirstName,LastName,Email,DateOfBirth,EnrollmentDate") {
		t.Errorf("report header = %q", strings.SplitN(content, "\n", 2)[0])
	}
}

func TestStudentServiceGenerateReportNoActiveStudents(t *testing.T) {
	store := newFakeStudentStore()
	service := newTestStudentService(store)
	ctx := context.Background()

	student := sampleStudent("ada@example.com")
	if err := service.Create(ctx, student); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := service.Deactivate(ctx, student.ID); err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}

	report, err := service.GenerateReport(ctx)
	if err != nil {
		t.Fatalf("GenerateReport returned error: %v", err)
	}
	if report != nil {
		t.Fatalf("report = %q, want nil when no students are active", report)
	}
}
