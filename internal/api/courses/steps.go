package courses

import (
	"net/http"

	"courseware-app/database"
	"courseware-app/internal/domain/courses"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// resolveStepPath walks course -> process -> action with the uniform
// ownership check at the course level.
func resolveStepPath(c *gin.Context, accountID uint) (courses.Action, bool) {
	course, err := findOwnedCourse(database.DB, accountID, c.Param("course_slug"))
	if err != nil {
		notFoundOr(c, err, "Course")
		return courses.Action{}, false
	}
	process, err := findProcess(database.DB, course.ID, c.Param("process_slug"))
	if err != nil {
		notFoundOr(c, err, "Process")
		return courses.Action{}, false
	}
	action, err := findAction(database.DB, process.ID, c.Param("action_slug"))
	if err != nil {
		notFoundOr(c, err, "Action")
		return courses.Action{}, false
	}
	return action, true
}

// ------------------------------
// POST .../actions/:action_slug/steps
// ------------------------------
func CreateStep(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}
	action, ok := resolveStepPath(c, accountID)
	if !ok {
		return
	}

	var form StepForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields := form.Validate()

	// Optional "action" choice re-selects the parent by title among the
	// process's actions; a stale title is a field error.
	parent := action
	if form.Action != "" {
		var chosen courses.Action
		err := database.DB.First(&chosen, "process_id = ? AND title = ?", action.ProcessID, form.Action).Error
		if err == gorm.ErrRecordNotFound {
			fields["action"] = "'" + form.Action + "' is not an action of this process"
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load action"})
			return
		} else {
			parent = chosen
		}
	}
	if len(fields) > 0 {
		validationFailed(c, fields)
		return
	}

	var step courses.Step
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		slug, err := courses.UniqueSlug(tx, &courses.Step{}, form.StepTitle)
		if err != nil {
			return err
		}
		step = courses.Step{
			ActionID:        parent.ID,
			StepTitle:       form.StepTitle,
			KeyMoment:       form.KeyMoment,
			KeyMomentReason: form.KeyMomentReason,
			Slug:            slug,
		}
		return tx.Create(&step).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create step", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"step": step})
}

// ------------------------------
// GET .../steps/:step_slug
// ------------------------------
func GetStep(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}
	action, ok := resolveStepPath(c, accountID)
	if !ok {
		return
	}

	step, err := findStep(database.DB, action.ID, c.Param("step_slug"))
	if err != nil {
		notFoundOr(c, err, "Step")
		return
	}

	c.JSON(http.StatusOK, gin.H{"step": step})
}

// ------------------------------
// PUT .../steps/:step_slug
// ------------------------------
func UpdateStep(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}
	action, ok := resolveStepPath(c, accountID)
	if !ok {
		return
	}

	step, err := findStep(database.DB, action.ID, c.Param("step_slug"))
	if err != nil {
		notFoundOr(c, err, "Step")
		return
	}

	var form StepForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if fields := form.Validate(); len(fields) > 0 {
		validationFailed(c, fields)
		return
	}

	step.StepTitle = form.StepTitle
	step.KeyMoment = form.KeyMoment
	step.KeyMomentReason = form.KeyMomentReason

	if err := database.DB.Save(&step).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update step"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"step": step})
}

// ------------------------------
// DELETE .../steps/:step_slug
// ------------------------------
func DeleteStep(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}
	action, ok := resolveStepPath(c, accountID)
	if !ok {
		return
	}

	step, err := findStep(database.DB, action.ID, c.Param("step_slug"))
	if err != nil {
		notFoundOr(c, err, "Step")
		return
	}

	if err := courses.DeleteStep(database.DB, &step); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete step"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
