package courses

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// Multipart form routes can't use the JSON sanitize middleware, so bound
// string fields go through the same bluemonday policy here.
var sanitizer = bluemonday.StrictPolicy()

func clean(s string) string {
	return strings.TrimSpace(sanitizer.Sanitize(s))
}

func requireMax(fields map[string]string, name, value string, max int) {
	if value == "" {
		fields[name] = "This field is required"
		return
	}
	if utf8.RuneCountInString(value) > max {
		fields[name] = fmt.Sprintf("Must be %d characters or fewer", max)
	}
}

// ---------- course / process

type CourseForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

func (f *CourseForm) Validate() map[string]string {
	f.Title = clean(f.Title)
	f.Description = clean(f.Description)

	fields := map[string]string{}
	requireMax(fields, "title", f.Title, 100)
	requireMax(fields, "description", f.Description, 250)
	return fields
}

type ProcessForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

func (f *ProcessForm) Validate() map[string]string {
	f.Title = clean(f.Title)
	f.Description = clean(f.Description)

	fields := map[string]string{}
	requireMax(fields, "title", f.Title, 100)
	requireMax(fields, "description", f.Description, 250)
	return fields
}

// ---------- action

// ActionForm is the combined creation form: the action itself plus its
// first step, submitted together. "process" is a choice field naming the
// parent process by title; it is validated against the course's current
// processes at submission time, not trusted as an opaque label.
type ActionForm struct {
	Process         string `form:"process"`
	Title           string `form:"title"`
	MainText        string `form:"main_text"`
	StepTitle       string `form:"step_title"`
	KeyMoment       string `form:"key_moment"`
	KeyMomentReason string `form:"key_moment_reason"`
}

func (f *ActionForm) Validate() map[string]string {
	f.Process = clean(f.Process)
	f.Title = clean(f.Title)
	f.MainText = clean(f.MainText)
	f.StepTitle = clean(f.StepTitle)
	f.KeyMoment = clean(f.KeyMoment)
	f.KeyMomentReason = clean(f.KeyMomentReason)

	fields := map[string]string{}
	requireMax(fields, "process", f.Process, 100)
	requireMax(fields, "title", f.Title, 100)
	requireMax(fields, "main_text", f.MainText, 5000)
	requireMax(fields, "step_title", f.StepTitle, 100)
	requireMax(fields, "key_moment", f.KeyMoment, 250)
	requireMax(fields, "key_moment_reason", f.KeyMomentReason, 5000)
	return fields
}

type ActionUpdateForm struct {
	Process  string `form:"process"`
	Title    string `form:"title"`
	MainText string `form:"main_text"`
}

func (f *ActionUpdateForm) Validate() map[string]string {
	f.Process = clean(f.Process)
	f.Title = clean(f.Title)
	f.MainText = clean(f.MainText)

	fields := map[string]string{}
	requireMax(fields, "title", f.Title, 100)
	requireMax(fields, "main_text", f.MainText, 5000)
	return fields
}

// ---------- step

// StepForm's "action" choice is optional: when present it re-selects the
// parent action by title within the same process, otherwise the action from
// the URL path is used.
type StepForm struct {
	Action          string `form:"action"`
	StepTitle       string `form:"step_title"`
	KeyMoment       string `form:"key_moment"`
	KeyMomentReason string `form:"key_moment_reason"`
}

func (f *StepForm) Validate() map[string]string {
	f.Action = clean(f.Action)
	f.StepTitle = clean(f.StepTitle)
	f.KeyMoment = clean(f.KeyMoment)
	f.KeyMomentReason = clean(f.KeyMomentReason)

	fields := map[string]string{}
	requireMax(fields, "step_title", f.StepTitle, 100)
	requireMax(fields, "key_moment", f.KeyMoment, 250)
	requireMax(fields, "key_moment_reason", f.KeyMomentReason, 5000)
	return fields
}
