package services

import (
	"context"
	"testing"
	"time"

	"github.com/deniz/studentdesk/internal/app/models"
)

type fakeApplicationStore struct {
	applications map[int64][]models.StudentApplication
	nextID       int64
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{applications: make(map[int64][]models.StudentApplication), nextID: 1}
}

func (f *fakeApplicationStore) Create(_ context.Context, application *models.StudentApplication) error {
	application.ID = f.nextID
	f.nextID++
	f.applications[application.StudentID] = append(f.applications[application.StudentID], *application)
	return nil
}

func (f *fakeApplicationStore) GetByStudentID(_ context.Context, studentID int64) ([]models.StudentApplication, error) {
	list := make([]models.StudentApplication, 0)
	list = append(list, f.applications[studentID]...)
	return list, nil
}

func sampleApplication(name string) *models.StudentApplication {
	return &models.StudentApplication{
		ApplicationName: name,
		SubmissionDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestApplicationServiceAddAndList(t *testing.T) {
	students := newFakeStudentStore()
	applications := newFakeApplicationStore()
	service := NewApplicationService(applications, students)
	ctx := context.Background()

	student := sampleStudent("ada@example.com")
	if err := students.Create(ctx, student); err != nil {
		t.Fatalf("seeding student failed: %v", err)
	}

	added, err := service.Add(ctx, student.ID, sampleApplication("Analytical Engine Society"))
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if !added {
		t.Fatal("Add returned false for an active student")
	}

	list, err := service.ListByStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("ListByStudent returned error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d applications, want 1", len(list))
	}
	if list[0].ApplicationName != "Analytical Engine Society" {
		t.Errorf("application name = %q", list[0].ApplicationName)
	}
	if list[0].StudentID != student.ID {
		t.Errorf("application student ID = %d, want %d", list[0].StudentID, student.ID)
	}
}

func TestApplicationServiceAddMissingStudent(t *testing.T) {
	service := NewApplicationService(newFakeApplicationStore(), newFakeStudentStore())

	added, err := service.Add(context.Background(), 42, sampleApplication("Chess Club"))
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if added {
		t.Fatal("Add returned true for a missing student")
	}
}

func TestApplicationServiceAddDeactivatedStudent(t *testing.T) {
	students := newFakeStudentStore()
	applications := newFakeApplicationStore()
	service := NewApplicationService(applications, students)
	ctx := context.Background()

	student := sampleStudent("ada@example.com")
	if err := students.Create(ctx, student); err != nil {
		t.Fatalf("seeding student failed: %v", err)
	}
	if _, err := students.Deactivate(ctx, student.ID); err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}

	added, err := service.Add(ctx, student.ID, sampleApplication("Chess Club"))
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if added {
		t.Fatal("Add returned true for a deactivated student")
	}
	if len(applications.applications[student.ID]) != 0 {
		t.Fatal("application was stored for a deactivated student")
	}
}

func TestApplicationServiceListUnknownStudent(t *testing.T) {
	service := NewApplicationService(newFakeApplicationStore(), newFakeStudentStore())

	list, err := service.ListByStudent(context.Background(), 99)
	if err != nil {
		t.Fatalf("ListByStudent returned error: %v", err)
	}
	if list == nil {
		t.Fatal("ListByStudent returned nil, want empty slice")
	}
	if len(list) != 0 {
		t.Fatalf("got %d applications for unknown student, want 0", len(list))
	}
}

// Listing survives the student's soft delete; history stays visible.
func TestApplicationServiceListAfterDeactivation(t *testing.T) {
	students := newFakeStudentStore()
	applications := newFakeApplicationStore()
	service := NewApplicationService(applications, students)
	ctx := context.Background()

	student := sampleStudent("ada@example.com")
	if err := students.Create(ctx, student); err != nil {
		t.Fatalf("seeding student failed: %v", err)
	}
	if _, err := service.Add(ctx, student.ID, sampleApplication("Chess Club")); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if _, err := students.Deactivate(ctx, student.ID); err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}

	list, err := service.ListByStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("ListByStudent returned error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d applications after deactivation, want 1", len(list))
	}
}
