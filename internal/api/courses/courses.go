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
// GET /courses
// ------------------------------
func ListCourses(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}

	var list []courses.Course
	err := database.DB.
		Where("owner_id = ?", accountID).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load courses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": list})
}

// ------------------------------
// POST /courses
// ------------------------------
func CreateCourse(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}

	var form CourseForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if fields := form.Validate(); len(fields) > 0 {
		validationFailed(c, fields)
		return
	}

	cover, err := optionalUpload(c, "cover", storage.CourseCovers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store cover"})
		return
	}

	owner := accountID
	course := courses.Course{
		Title:       form.Title,
		Description: form.Description,
		Cover:       cover,
		OwnerID:     &owner,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		slug, err := courses.UniqueSlug(tx, &courses.Course{}, form.Title)
		if err != nil {
			return err
		}
		course.Slug = slug
		return tx.Create(&course).Error
	})
	if err != nil {
		if cover != nil {
			storage.Remove(*cover)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"course": course})
}

// ------------------------------
// GET /courses/:course_slug
// ------------------------------
func GetCourse(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}

	course, err := findOwnedCourse(database.DB, accountID, c.Param("course_slug"))
	if err != nil {
		notFoundOr(c, err, "Course")
		return
	}

	var processes []courses.Process
	if err := database.DB.Where("course_id = ?", course.ID).Order("id ASC").Find(&processes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load processes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"course": course, "processes": processes})
}

// ------------------------------
// PUT /courses/:course_slug
// ------------------------------
func UpdateCourse(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}

	course, err := findOwnedCourse(database.DB, accountID, c.Param("course_slug"))
	if err != nil {
		notFoundOr(c, err, "Course")
		return
	}

	var form CourseForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if fields := form.Validate(); len(fields) > 0 {
		validationFailed(c, fields)
		return
	}

	// mutable fields only; the slug keeps its original address
	course.Title = form.Title
	course.Description = form.Description

	if cover, err := optionalUpload(c, "cover", storage.CourseCovers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store cover"})
		return
	} else if cover != nil {
		if course.Cover != nil {
			storage.Remove(*course.Cover)
		}
		course.Cover = cover
	}

	if err := database.DB.Save(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update course"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"course": course})
}

// ------------------------------
// DELETE /courses/:course_slug
// ------------------------------
func DeleteCourse(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}

	course, err := findOwnedCourse(database.DB, accountID, c.Param("course_slug"))
	if err != nil {
		notFoundOr(c, err, "Course")
		return
	}

	var removed []string
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		paths, err := courses.DeleteCourse(tx, &course)
		removed = paths
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete course"})
		return
	}
	storage.Remove(removed...)

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
