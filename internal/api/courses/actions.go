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
// GET /courses/:course_slug/processes/:process_slug/action_creation
// ------------------------------
// Live sibling-title lists for the creation forms: process titles for the
// action form's parent choice, action titles for the step form's parent
// choice. Computed at render time from current records.
func ActionChoices(c *gin.Context) {
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

	var processTitles []string
	if err := database.DB.Model(&courses.Process{}).
		Where("course_id = ?", course.ID).
		Order("id ASC").
		Pluck("title", &processTitles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load choices"})
		return
	}

	var actionTitles []string
	if err := database.DB.Model(&courses.Action{}).
		Where("process_id = ?", process.ID).
		Order("id ASC").
		Pluck("title", &actionTitles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load choices"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"process_choices": processTitles,
		"action_choices":  actionTitles,
	})
}

// ------------------------------
// POST /courses/:course_slug/processes/:process_slug/actions
// ------------------------------
// Combined creation: the action, its first step, any photos and an optional
// video go in as one transaction. A failure anywhere rolls back every row
// and removes the files already written.
func CreateAction(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}

	course, err := findOwnedCourse(database.DB, accountID, c.Param("course_slug"))
	if err != nil {
		notFoundOr(c, err, "Course")
		return
	}
	if _, err := findProcess(database.DB, course.ID, c.Param("process_slug")); err != nil {
		notFoundOr(c, err, "Process")
		return
	}

	var form ActionForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields := form.Validate()

	// The choice field names the parent by title. A title that no longer
	// matches a process of this course is a validation error, not a lookup
	// crash.
	var parent courses.Process
	if fields["process"] == "" {
		err := database.DB.First(&parent, "course_id = ? AND title = ?", course.ID, form.Process).Error
		if err == gorm.ErrRecordNotFound {
			fields["process"] = "'" + form.Process + "' is not a process of this course"
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load process"})
			return
		}
	}
	if len(fields) > 0 {
		validationFailed(c, fields)
		return
	}

	// Files land on disk before the transaction; a rollback sweeps them up.
	var saved []string
	cover, err := optionalUpload(c, "cover", storage.ActionCovers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store cover"})
		return
	}
	if cover != nil {
		saved = append(saved, *cover)
	}

	var photoPaths []string
	for _, fh := range photoUploads(c) {
		rel, err := storage.SaveUpload(storage.ActionPhotos, fh)
		if err != nil {
			storage.Remove(saved...)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photo"})
			return
		}
		photoPaths = append(photoPaths, rel)
		saved = append(saved, rel)
	}

	videoPath, err := optionalUpload(c, "video", storage.ActionVideos)
	if err != nil {
		storage.Remove(saved...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store video"})
		return
	}
	if videoPath != nil {
		saved = append(saved, *videoPath)
	}

	var action courses.Action
	var step courses.Step

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		slug, err := courses.UniqueSlug(tx, &courses.Action{}, form.Title)
		if err != nil {
			return err
		}
		action = courses.Action{
			ProcessID: parent.ID,
			Title:     form.Title,
			MainText:  form.MainText,
			Cover:     cover,
			Slug:      slug,
		}
		if err := tx.Create(&action).Error; err != nil {
			return err
		}

		stepSlug, err := courses.UniqueSlug(tx, &courses.Step{}, form.StepTitle)
		if err != nil {
			return err
		}
		step = courses.Step{
			ActionID:        action.ID,
			StepTitle:       form.StepTitle,
			KeyMoment:       form.KeyMoment,
			KeyMomentReason: form.KeyMomentReason,
			Slug:            stepSlug,
		}
		if err := tx.Create(&step).Error; err != nil {
			return err
		}

		for _, rel := range photoPaths {
			photo := courses.ActionPhoto{ActionID: action.ID, Photo: rel}
			if err := tx.Create(&photo).Error; err != nil {
				return err
			}
		}
		if videoPath != nil {
			video := courses.ActionVideo{ActionID: action.ID, Video: *videoPath}
			if err := tx.Create(&video).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		storage.Remove(saved...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create action", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"action": action, "step": step})
}

// ------------------------------
// GET .../actions/:action_slug
// ------------------------------
func GetAction(c *gin.Context) {
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
	action, err := findAction(database.DB, process.ID, c.Param("action_slug"))
	if err != nil {
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

// ------------------------------
// PUT .../actions/:action_slug
// ------------------------------
// Editing may also attach more photos and a video, like the original form.
func UpdateAction(c *gin.Context) {
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
	action, err := findAction(database.DB, process.ID, c.Param("action_slug"))
	if err != nil {
		notFoundOr(c, err, "Action")
		return
	}

	var form ActionUpdateForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields := form.Validate()

	// Optional re-parenting within the same course via the choice field.
	parentID := action.ProcessID
	if form.Process != "" && len(fields) == 0 {
		var parent courses.Process
		err := database.DB.First(&parent, "course_id = ? AND title = ?", course.ID, form.Process).Error
		if err == gorm.ErrRecordNotFound {
			fields["process"] = "'" + form.Process + "' is not a process of this course"
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load process"})
			return
		} else {
			parentID = parent.ID
		}
	}
	if len(fields) > 0 {
		validationFailed(c, fields)
		return
	}

	var saved []string
	cover, err := optionalUpload(c, "cover", storage.ActionCovers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store cover"})
		return
	}
	if cover != nil {
		saved = append(saved, *cover)
	}

	var photoPaths []string
	for _, fh := range photoUploads(c) {
		rel, err := storage.SaveUpload(storage.ActionPhotos, fh)
		if err != nil {
			storage.Remove(saved...)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photo"})
			return
		}
		photoPaths = append(photoPaths, rel)
		saved = append(saved, rel)
	}

	videoPath, err := optionalUpload(c, "video", storage.ActionVideos)
	if err != nil {
		storage.Remove(saved...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store video"})
		return
	}
	if videoPath != nil {
		saved = append(saved, *videoPath)
	}

	oldCover := action.Cover
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		action.ProcessID = parentID
		action.Title = form.Title
		action.MainText = form.MainText
		if cover != nil {
			action.Cover = cover
		}
		if err := tx.Save(&action).Error; err != nil {
			return err
		}

		for _, rel := range photoPaths {
			photo := courses.ActionPhoto{ActionID: action.ID, Photo: rel}
			if err := tx.Create(&photo).Error; err != nil {
				return err
			}
		}
		if videoPath != nil {
			video := courses.ActionVideo{ActionID: action.ID, Video: *videoPath}
			if err := tx.Create(&video).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		storage.Remove(saved...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update action"})
		return
	}
	if cover != nil && oldCover != nil {
		storage.Remove(*oldCover)
	}

	c.JSON(http.StatusOK, gin.H{"action": action})
}

// ------------------------------
// DELETE .../actions/:action_slug
// ------------------------------
func DeleteAction(c *gin.Context) {
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
	action, err := findAction(database.DB, process.ID, c.Param("action_slug"))
	if err != nil {
		notFoundOr(c, err, "Action")
		return
	}

	var removed []string
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		paths, err := courses.DeleteAction(tx, &action)
		removed = paths
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete action"})
		return
	}
	storage.Remove(removed...)

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
