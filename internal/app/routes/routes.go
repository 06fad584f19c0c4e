package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/deniz/studentdesk/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	applicationController *controllers.ApplicationController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	students := v1.Group("/students")
	{
		students.GET("", studentController.GetStudents)
		students.POST("", studentController.CreateStudent)
		students.POST("/upload", studentController.BulkUpload)
		students.GET("/report/download", studentController.DownloadReport)
		students.GET("/:id", studentController.GetStudentByID)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeactivateStudent)
		students.GET("/:id/applications", applicationController.GetStudentApplications)
		students.POST("/:id/applications", applicationController.AddStudentApplication)
	}
}
