package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deniz/studentdesk/internal/app/models/dto"
	"github.com/deniz/studentdesk/internal/app/services"
	"github.com/deniz/studentdesk/internal/middleware"
)

// ApplicationController handles application-related operations
type ApplicationController struct {
	applicationService services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
	}
}

// GetStudentApplications lists all applications of a student
// @Summary List student applications
// @Description Returns all applications for the given student ID, empty when the student has none or does not exist
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse} "Applications retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/applications [get]
func (c *ApplicationController) GetStudentApplications(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	applications, err := c.applicationService.ListByStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromApplications(applications),
		Timestamp: time.Now(),
	})
}

// AddStudentApplication attaches a new application to a student
// @Summary Add student application
// @Description Creates an application for an existing, active student
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param request body dto.ApplicationRequest true "Application information"
// @Success 201 {object} dto.SuccessResponse "Application added successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found or deactivated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/applications [post]
func (c *ApplicationController) AddStudentApplication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var request dto.ApplicationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid application data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	added, err := c.applicationService.Add(ctx, id, request.ToModel(id))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !added {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found or deactivated")))
		return
	}

	ctx.JSON(http.StatusCreated, dto.SuccessResponse{Message: "Application added successfully"})
}
