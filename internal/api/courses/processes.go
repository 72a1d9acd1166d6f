package courses

import (
	"net/http"

	"courseware-app/database"
	"courseware-app/internal/domain/courses"
	"courseware-app/internal/infra/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ------------------------------
// POST /courses/:course_slug/processes
// ------------------------------
func CreateProcess(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}

	course, err := findOwnedCourse(database.DB, accountID, c.Param("course_slug"))
	if err != nil {
		notFoundOr(c, err, "Course")
		return
	}

	var form ProcessForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if fields := form.Validate(); len(fields) > 0 {
		validationFailed(c, fields)
		return
	}

	cover, err := optionalUpload(c, "cover", storage.ProcessCovers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store cover"})
		return
	}

	process := courses.Process{
		CourseID:    course.ID,
		Title:       form.Title,
		Description: form.Description,
		Cover:       cover,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		slug, err := courses.UniqueSlug(tx, &courses.Process{}, form.Title)
		if err != nil {
			return err
		}
		process.Slug = slug
		return tx.Create(&process).Error
	})
	if err != nil {
		if cover != nil {
			storage.Remove(*cover)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create process", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"process": process})
}

// ------------------------------
// GET /courses/:course_slug/processes/:process_slug
// ------------------------------
func GetProcess(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}

	course, err := findOwnedCourse(database.DB, accountID, c.Param("course_slug"))
	if err != nil {
		notFoundOr(c, err, "Course")
		return
	}
	process, err := findProcess(database.DB, course.ID, c.Param("process_slug"))
	if err != nil {
		notFoundOr(c, err, "Process")
		return
	}

	var actions []courses.Action
	if err := database.DB.Where("process_id = ?", process.ID).Order("id ASC").Find(&actions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load actions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"process": process, "actions": actions})
}

// ------------------------------
// PUT /courses/:course_slug/processes/:process_slug
// ------------------------------
func UpdateProcess(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}

	course, err := findOwnedCourse(database.DB, accountID, c.Param("course_slug"))
	if err != nil {
		notFoundOr(c, err, "Course")
		return
	}
	process, err := findProcess(database.DB, course.ID, c.Param("process_slug"))
	if err != nil {
		notFoundOr(c, err, "Process")
		return
	}

	var form ProcessForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if fields := form.Validate(); len(fields) > 0 {
		validationFailed(c, fields)
		return
	}

	process.Title = form.Title
	process.Description = form.Description

	if cover, err := optionalUpload(c, "cover", storage.ProcessCovers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store cover"})
		return
	} else if cover != nil {
		if process.Cover != nil {
			storage.Remove(*process.Cover)
		}
		process.Cover = cover
	}

	if err := database.DB.Save(&process).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update process"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"process": process})
}

// ------------------------------
// DELETE /courses/:course_slug/processes/:process_slug
// ------------------------------
func DeleteProcess(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}

	course, err := findOwnedCourse(database.DB, accountID, c.Param("course_slug"))
	if err != nil {
		notFoundOr(c, err, "Course")
		return
	}
	process, err := findProcess(database.DB, course.ID, c.Param("process_slug"))
	if err != nil {
		notFoundOr(c, err, "Process")
		return
	}

	var removed []string
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		paths, err := courses.DeleteProcess(tx, &process)
		removed = paths
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete process"})
		return
	}
	storage.Remove(removed...)

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
