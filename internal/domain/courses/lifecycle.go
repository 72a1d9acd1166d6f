package courses

import (
	"gorm.io/gorm"
)

// Hard deletes with explicit cascade. The rows are removed level by level
// inside the caller's transaction instead of leaning on database-level ON
// DELETE rules, so the behavior is identical across drivers and the stored
// file paths of every removed row come back for best-effort cleanup.

// DeleteStep removes a single step row.
func DeleteStep(tx *gorm.DB, s *Step) error {
	return tx.Delete(&Step{}, "id = ?", s.ID).Error
}

// DeleteAction removes an action with its steps, photos and video rows.
// Returns the stored media paths of the deleted rows.
func DeleteAction(tx *gorm.DB, a *Action) ([]string, error) {
	var paths []string

	var photos []ActionPhoto
	if err := tx.Find(&photos, "action_id = ?", a.ID).Error; err != nil {
		return nil, err
	}
	for _, p := range photos {
		paths = append(paths, p.Photo)
	}

	var videos []ActionVideo
	if err := tx.Find(&videos, "action_id = ?", a.ID).Error; err != nil {
		return nil, err
	}
	for _, v := range videos {
		paths = append(paths, v.Video)
	}

	if err := tx.Delete(&Step{}, "action_id = ?", a.ID).Error; err != nil {
		return nil, err
	}
	if err := tx.Delete(&ActionPhoto{}, "action_id = ?", a.ID).Error; err != nil {
		return nil, err
	}
	if err := tx.Delete(&ActionVideo{}, "action_id = ?", a.ID).Error; err != nil {
		return nil, err
	}
	if err := tx.Delete(&Action{}, "id = ?", a.ID).Error; err != nil {
		return nil, err
	}

	if a.Cover != nil {
		paths = append(paths, *a.Cover)
	}
	return paths, nil
}

// DeleteProcess removes a process and every action beneath it.
func DeleteProcess(tx *gorm.DB, p *Process) ([]string, error) {
	var paths []string

	var actions []Action
	if err := tx.Find(&actions, "process_id = ?", p.ID).Error; err != nil {
		return nil, err
	}
	for i := range actions {
		removed, err := DeleteAction(tx, &actions[i])
		if err != nil {
			return nil, err
		}
		paths = append(paths, removed...)
	}

	if err := tx.Delete(&Process{}, "id = ?", p.ID).Error; err != nil {
		return nil, err
	}

	if p.Cover != nil {
		paths = append(paths, *p.Cover)
	}
	return paths, nil
}

// DeleteCourse removes a course and all descendant processes, actions,
// steps and media rows.
func DeleteCourse(tx *gorm.DB, c *Course) ([]string, error) {
	var paths []string

	var processes []Process
	if err := tx.Find(&processes, "course_id = ?", c.ID).Error; err != nil {
		return nil, err
	}
	for i := range processes {
		removed, err := DeleteProcess(tx, &processes[i])
		if err != nil {
			return nil, err
		}
		paths = append(paths, removed...)
	}

	if err := tx.Delete(&Course{}, "id = ?", c.ID).Error; err != nil {
		return nil, err
	}

	if c.Cover != nil {
		paths = append(paths, *c.Cover)
	}
	return paths, nil
}
