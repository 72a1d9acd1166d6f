package catalog

import (
	"net/http"

	"courseware-app/database"
	"courseware-app/internal/domain/courses"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Read-only catalog for anonymous visitors. Each path segment resolves
// top-down by its own slug lookup; a miss at any level is a 404.

func notFoundOr(c *gin.Context, err error, what string) {
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load " + what})
}

// GET /catalog/courses
func ListCourses(c *gin.Context) {
	var list []courses.Course
	if err := database.DB.Order("id ASC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load courses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": list})
}

// GET /catalog/courses/:course_slug
func GetCourse(c *gin.Context) {
	var course courses.Course
	if err := database.DB.First(&course, "slug = ?", c.Param("course_slug")).Error; err != nil {
		notFoundOr(c, err, "Course")
		return
	}

	var processes []courses.Process
	database.DB.Where("course_id = ?", course.ID).Order("id ASC").Find(&processes)

	c.JSON(http.StatusOK, gin.H{"course": course, "processes": processes})
}

// GET /catalog/courses/:course_slug/:process_slug
func GetProcess(c *gin.Context) {
	var process courses.Process
	if err := database.DB.First(&process, "slug = ?", c.Param("process_slug")).Error; err != nil {
		notFoundOr(c, err, "Process")
		return
	}

	var actions []courses.Action
	database.DB.Where("process_id = ?", process.ID).Order("id ASC").Find(&actions)

	c.JSON(http.StatusOK, gin.H{"process": process, "actions": actions})
}

// GET /catalog/courses/:course_slug/:process_slug/:action_slug
func GetAction(c *gin.Context) {
	var action courses.Action
	if err := database.DB.First(&action, "slug = ?", c.Param("action_slug")).Error; err != nil {
		notFoundOr(c, err, "Action")
		return
	}

	var steps []courses.Step
	var photos []courses.ActionPhoto
	var videos []courses.ActionVideo
	database.DB.Where("action_id = ?", action.ID).Order("id ASC").Find(&steps)
	database.DB.Where("action_id = ?", action.ID).Order("id ASC").Find(&photos)
	database.DB.Where("action_id = ?", action.ID).Order("id ASC").Find(&videos)

	c.JSON(http.StatusOK, gin.H{
		"action": action,
		"steps":  steps,
		"photos": photos,
		"videos": videos,
	})
}

// GET /catalog/courses/:course_slug/:process_slug/:action_slug/:step_slug
func GetStep(c *gin.Context) {
	var step courses.Step
	if err := database.DB.First(&step, "slug = ?", c.Param("step_slug")).Error; err != nil {
		notFoundOr(c, err, "Step")
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": step})
}
