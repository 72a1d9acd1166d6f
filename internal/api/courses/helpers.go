package courses

import (
	"net/http"

	"courseware-app/internal/domain/courses"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func mustAccountID(c *gin.Context) (uint, bool) {
	accountID := c.GetUint("account_id")
	if accountID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return accountID, true
}

// Ownership is enforced once, at course resolution: a slug the requester
// does not own reads as not found, never as forbidden. Everything below a
// course is only reachable through its owned course.

func findOwnedCourse(tx *gorm.DB, accountID uint, slug string) (courses.Course, error) {
	var course courses.Course
	err := tx.First(&course, "slug = ? AND owner_id = ?", slug, accountID).Error
	return course, err
}

func findProcess(tx *gorm.DB, courseID uint, slug string) (courses.Process, error) {
	var process courses.Process
	err := tx.First(&process, "slug = ? AND course_id = ?", slug, courseID).Error
	return process, err
}

func findAction(tx *gorm.DB, processID uint, slug string) (courses.Action, error) {
	var action courses.Action
	err := tx.First(&action, "slug = ? AND process_id = ?", slug, processID).Error
	return action, err
}

func findStep(tx *gorm.DB, actionID uint, slug string) (courses.Step, error) {
	var step courses.Step
	err := tx.First(&step, "slug = ? AND action_id = ?", slug, actionID).Error
	return step, err
}

// notFoundOr maps a missing-row error to 404 and anything else to 500.
func notFoundOr(c *gin.Context, err error, what string) {
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load " + what})
}

func validationFailed(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
}
