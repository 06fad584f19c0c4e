package controllers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deniz/studentdesk/internal/app/models/dto"
	"github.com/deniz/studentdesk/internal/app/services"
	"github.com/deniz/studentdesk/internal/middleware"
)

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
	maxUploadSize  int64
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, maxUploadSize int64) *StudentController {
	return &StudentController{
		studentService: studentService,
		maxUploadSize:  maxUploadSize,
	}
}

// GetStudents lists active students with search, sort and pagination
// @Summary List students
// @Description Returns a filtered, sorted, paginated view over active students
// @Tags students
// @Accept json
// @Produce json
// @Param search query string false "Free-text filter over first name, last name and email"
// @Param sortBy query string false "Sort field: firstname, lastname or enrollmentdate" default(id)
// @Param sortDirection query string false "Sort direction: asc or desc" default(asc)
// @Param page query int false "1-based page number" default(1)
// @Param pageSize query int false "Rows per page" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedStudentsResponse} "Students retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid paging parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) GetStudents(ctx *gin.Context) {
	var query dto.StudentSearchQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.studentService.Search(ctx, services.SearchParams{
		Search:        query.Search,
		SortBy:        query.SortBy,
		SortDirection: query.SortDirection,
		Page:          query.Page,
		PageSize:      query.PageSize,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedStudentsResponse{
			Data:         dto.FromStudents(result.Students),
			TotalRecords: result.TotalRecords,
			Page:         result.Page,
			PageSize:     result.PageSize,
		},
		Timestamp: time.Now(),
	})
}

// GetStudentByID retrieves a single student by ID
// @Summary Get student by ID
// @Description Retrieves a student by ID, deactivated students included
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if student == nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found")))
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromStudent(student),
		Timestamp: time.Now(),
	})
}

// CreateStudent creates a new student
// @Summary Create a new student
// @Description Creates a new active student with the provided information
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.StudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var request dto.StudentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student := request.ToModel()
	if err := c.studentService.Create(ctx, student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromStudent(student),
		Timestamp: time.Now(),
	})
}

// UpdateStudent overwrites the mutable fields of an existing student
// @Summary Update student
// @Description Overwrites the mutable fields of an existing student in place
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param request body dto.StudentRequest true "Student information"
// @Success 200 {object} dto.SuccessResponse "Student updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var request dto.StudentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	updated, err := c.studentService.Update(ctx, id, request.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !updated {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found")))
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Student updated successfully"})
}

// DeactivateStudent soft-deletes a student
// @Summary Deactivate student
// @Description Marks a student as deleted without removing the record
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.SuccessResponse "Student deactivated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found or already deactivated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [delete]
func (c *StudentController) DeactivateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	deactivated, err := c.studentService.Deactivate(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !deactivated {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found")))
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Student account deactivated successfully"})
}

// BulkUpload imports students from an uploaded CSV or XLSX file
// @Summary Bulk upload students
// @Description Imports students from a CSV or Excel file in a single all-or-nothing batch
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Success 200 {object} dto.SuccessResponse "Students uploaded successfully"
// @Failure 400 {object} dto.ErrorResponse "Unsupported format, malformed rows or empty file"
// @Failure 409 {object} dto.ErrorResponse "Duplicate email in batch"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/upload [post]
func (c *StudentController) BulkUpload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Please upload a valid CSV or Excel file")))
		return
	}

	if fileHeader.Size > c.maxUploadSize {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Uploaded file is too large")
		errorDetail = errorDetail.WithDetails(gin.H{"maxBytes": c.maxUploadSize})
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Failed to read uploaded file")))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Failed to read uploaded file")))
		return
	}

	imported, err := c.studentService.BulkImport(ctx, data, fileHeader.Filename)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !imported {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "No students were added")))
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Students uploaded successfully"})
}

// DownloadReport exports all active students as a CSV report
// @Summary Download student report
// @Description Serializes all active students into a delimited-text report
// @Tags students
// @Produce text/csv
// @Success 200 {string} string "CSV report"
// @Failure 404 {object} dto.ErrorResponse "No student records available"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/report/download [get]
func (c *StudentController) DownloadReport(ctx *gin.Context) {
	report, err := c.studentService.GenerateReport(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if report == nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "No student records available for download")))
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="StudentReport.csv"`)
	ctx.Data(http.StatusOK, "text/csv", report)
}

// parseIDParam parses the :id path parameter, writing a 400 response on failure
func parseIDParam(ctx *gin.Context) (int64, bool) {
	idStr := ctx.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")
		errorDetail = errorDetail.WithDetails("Student ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
