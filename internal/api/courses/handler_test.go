package courses_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"courseware-app/config"
	"courseware-app/database"
	routes "courseware-app/internal/app/http"
	"courseware-app/internal/domain/accounts"
	"courseware-app/internal/domain/courses"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.JWT_SECRET = "test-secret"
	config.MEDIA_ROOT = t.TempDir()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&accounts.Account{},
		&courses.Course{}, &courses.Process{}, &courses.Action{}, &courses.Step{},
		&courses.ActionPhoto{}, &courses.ActionVideo{},
	))
	database.DB = db

	r := gin.New()
	routes.RegisterRoutes(r)
	return r
}

func registerAccount(t *testing.T, r *gin.Engine, email, username string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"username": username,
		"password": "password1",
	})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func doForm(r *gin.Engine, method, path, token string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createCourse(t *testing.T, r *gin.Engine, token, title string) map[string]any {
	t.Helper()
	w := doForm(r, http.MethodPost, "/courses", token, url.Values{
		"title":       {title},
		"description": {"test descr"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["course"].(map[string]any)
}

func createProcess(t *testing.T, r *gin.Engine, token, courseSlug, title string) map[string]any {
	t.Helper()
	w := doForm(r, http.MethodPost, "/courses/"+courseSlug+"/processes", token, url.Values{
		"title":       {title},
		"description": {"test descr"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["process"].(map[string]any)
}

func TestCreateCourseAssignsSlugAndSuffix(t *testing.T) {
	r := setupServer(t)
	token := registerAccount(t, r, "u@example.com", "u")

	first := createCourse(t, r, token, "test")
	assert.Equal(t, "test", first["title"])
	assert.Equal(t, "test", first["slug"])

	second := createCourse(t, r, token, "test")
	assert.Equal(t, "test-2", second["slug"])

	third := createCourse(t, r, token, "test")
	assert.Equal(t, "test-3", third["slug"])
}

func TestCreateCourseMissingFieldWritesNothing(t *testing.T) {
	r := setupServer(t)
	token := registerAccount(t, r, "u@example.com", "u")

	w := doForm(r, http.MethodPost, "/courses", token, url.Values{
		"title": {"test"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode(t, w)
	fields := resp["fields"].(map[string]any)
	assert.Contains(t, fields, "description")

	var n int64
	database.DB.Model(&courses.Course{}).Count(&n)
	assert.EqualValues(t, 0, n)
}

func TestCourseListingIsOwnerScoped(t *testing.T) {
	r := setupServer(t)
	tokenA := registerAccount(t, r, "a@example.com", "a")
	tokenB := registerAccount(t, r, "b@example.com", "b")

	createCourse(t, r, tokenA, "course of a")

	w := doForm(r, http.MethodGet, "/courses", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)["courses"].([]any)
	assert.Empty(t, list)

	// foreign slug reads as not found, never as the owner's data
	w = doForm(r, http.MethodGet, "/courses/course-of-a", tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doForm(r, http.MethodGet, "/courses/course-of-a", tokenA, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateCourseKeepsSlug(t *testing.T) {
	r := setupServer(t)
	token := registerAccount(t, r, "u@example.com", "u")

	createCourse(t, r, token, "test")

	w := doForm(r, http.MethodPut, "/courses/test", token, url.Values{
		"title":       {"renamed completely"},
		"description": {"new descr"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	course := decode(t, w)["course"].(map[string]any)
	assert.Equal(t, "renamed completely", course["title"])
	assert.Equal(t, "test", course["slug"])
}

func actionForm(processTitle string) url.Values {
	return url.Values{
		"process":           {processTitle},
		"title":             {"test-action"},
		"main_text":         {"main text"},
		"step_title":        {"test step"},
		"key_moment":        {"the key moment"},
		"key_moment_reason": {"because it matters"},
	}
}

func TestCreateActionWithFirstStep(t *testing.T) {
	r := setupServer(t)
	token := registerAccount(t, r, "u@example.com", "u")

	createCourse(t, r, token, "test")
	createProcess(t, r, token, "test", "test proc")

	w := doForm(r, http.MethodPost, "/courses/test/processes/test-proc/actions", token, actionForm("test proc"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode(t, w)
	action := resp["action"].(map[string]any)
	step := resp["step"].(map[string]any)
	assert.Equal(t, "test-action", action["slug"])
	assert.Equal(t, "test-step", step["slug"])

	var n int64
	database.DB.Model(&courses.Step{}).Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestCreateActionStaleProcessChoice(t *testing.T) {
	r := setupServer(t)
	token := registerAccount(t, r, "u@example.com", "u")

	createCourse(t, r, token, "test")
	createProcess(t, r, token, "test", "test proc")

	w := doForm(r, http.MethodPost, "/courses/test/processes/test-proc/actions", token, actionForm("gone proc"))
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	fields := decode(t, w)["fields"].(map[string]any)
	assert.Contains(t, fields, "process")

	var n int64
	database.DB.Model(&courses.Action{}).Count(&n)
	assert.EqualValues(t, 0, n)
}

func TestActionChoicesReflectCurrentSiblings(t *testing.T) {
	r := setupServer(t)
	token := registerAccount(t, r, "u@example.com", "u")

	createCourse(t, r, token, "test")
	createProcess(t, r, token, "test", "test proc")
	createProcess(t, r, token, "test", "second proc")

	w := doForm(r, http.MethodGet, "/courses/test/processes/test-proc/action_creation", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode(t, w)
	choices := resp["process_choices"].([]any)
	assert.ElementsMatch(t, []any{"test proc", "second proc"}, choices)
}

func TestDeleteProcessCascades(t *testing.T) {
	r := setupServer(t)
	token := registerAccount(t, r, "u@example.com", "u")

	createCourse(t, r, token, "test")
	createProcess(t, r, token, "test", "test proc")

	w := doForm(r, http.MethodPost, "/courses/test/processes/test-proc/actions", token, actionForm("test proc"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doForm(r, http.MethodDelete, "/courses/test/processes/test-proc", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var n int64
	database.DB.Model(&courses.Action{}).Count(&n)
	assert.EqualValues(t, 0, n)
	database.DB.Model(&courses.Step{}).Count(&n)
	assert.EqualValues(t, 0, n)

	// course survives with an empty process list
	w = doForm(r, http.MethodGet, "/courses/test", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	processes := decode(t, w)["processes"].([]any)
	assert.Empty(t, processes)
}

func TestDeleteCourseCascadesEverything(t *testing.T) {
	r := setupServer(t)
	token := registerAccount(t, r, "u@example.com", "u")

	createCourse(t, r, token, "test")
	createProcess(t, r, token, "test", "test proc")
	w := doForm(r, http.MethodPost, "/courses/test/processes/test-proc/actions", token, actionForm("test proc"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doForm(r, http.MethodDelete, "/courses/test", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, model := range []interface{}{
		&courses.Course{}, &courses.Process{}, &courses.Action{}, &courses.Step{},
		&courses.ActionPhoto{}, &courses.ActionVideo{},
	} {
		var n int64
		database.DB.Model(model).Count(&n)
		assert.EqualValues(t, 0, n, "%T should be empty", model)
	}
}

func TestCreateActionWithPhotoUpload(t *testing.T) {
	r := setupServer(t)
	token := registerAccount(t, r, "u@example.com", "u")

	createCourse(t, r, token, "test")
	createProcess(t, r, token, "test", "test proc")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, vals := range actionForm("test proc") {
		require.NoError(t, mw.WriteField(key, vals[0]))
	}
	fw, err := mw.CreateFormFile("photos", "shot.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/courses/test/processes/test-proc/actions", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var photos []courses.ActionPhoto
	require.NoError(t, database.DB.Find(&photos).Error)
	require.Len(t, photos, 1)
	assert.True(t, strings.HasPrefix(photos[0].Photo, filepath.Join("courses", "actions", "photos")))

	// the backing file really landed under MEDIA_ROOT
	data, err := os.ReadFile(filepath.Join(config.MEDIA_ROOT, photos[0].Photo))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestStepCrud(t *testing.T) {
	r := setupServer(t)
	token := registerAccount(t, r, "u@example.com", "u")

	createCourse(t, r, token, "test")
	createProcess(t, r, token, "test", "test proc")
	w := doForm(r, http.MethodPost, "/courses/test/processes/test-proc/actions", token, actionForm("test proc"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	base := "/courses/test/processes/test-proc/actions/test-action"

	w = doForm(r, http.MethodPost, base+"/steps", token, url.Values{
		"step_title":        {"second step"},
		"key_moment":        {"km"},
		"key_moment_reason": {"kmr"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	step := decode(t, w)["step"].(map[string]any)
	assert.Equal(t, "second-step", step["slug"])

	w = doForm(r, http.MethodPut, base+"/steps/second-step", token, url.Values{
		"step_title":        {"edited step"},
		"key_moment":        {"km2"},
		"key_moment_reason": {"kmr2"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	step = decode(t, w)["step"].(map[string]any)
	assert.Equal(t, "edited step", step["step_title"])
	assert.Equal(t, "second-step", step["slug"], "slug never regenerates on rename")

	w = doForm(r, http.MethodDelete, base+"/steps/second-step", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doForm(r, http.MethodGet, base+"/steps/second-step", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownSlugIs404(t *testing.T) {
	r := setupServer(t)
	token := registerAccount(t, r, "u@example.com", "u")

	for _, path := range []string{
		"/courses/nope",
		"/courses/nope/processes/nada",
		"/courses/nope/processes/nada/actions/zip",
		"/courses/nope/processes/nada/actions/zip/steps/zilch",
	} {
		w := doForm(r, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestAnonRequestIsRejected(t *testing.T) {
	r := setupServer(t)
	w := doForm(r, http.MethodGet, "/courses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
