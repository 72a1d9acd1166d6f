package courses

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

/*
	Slug helpers
	------------
	- Responsible ONLY for:
	  • normalizing titles into URL-safe slugs
	  • picking a slug that is unique within one entity type
	- Slugs are assigned once at creation and never regenerated on rename,
	  so renaming an entity does not change its address.
*/

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// Slugify normalizes a free-text title into a URL-safe slug.
// Example: "My First Course!" -> "my-first-course"
func Slugify(title string) string {
	base := strings.ToLower(strings.TrimSpace(title))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "untitled"
	}
	return base
}

// UniqueSlug resolves a title to a slug that no row of the given model uses
// yet. Collisions get an incrementing numeric suffix: "test", "test-2",
// "test-3", ... Uniqueness is global per entity type, not scoped to parent.
//
// IMPORTANT: pass db in, do NOT import courseware-app/database here (avoids
// import cycle).
func UniqueSlug(db *gorm.DB, model interface{}, title string) (string, error) {
	base := Slugify(title)
	slug := base

	for n := 2; ; n++ {
		var count int64
		if err := db.Model(model).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
