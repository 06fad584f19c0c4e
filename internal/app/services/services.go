package services

// Services defined in this package:
// - StudentService: lifecycle, search, bulk import and report export for students
// - ApplicationService: applications attached to a student
