package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
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

func postJSON(r *gin.Engine, path, token string, payload map[string]string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r *gin.Engine, email, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	return postJSON(r, "/register", "", map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	})
}

func TestRegisterAndLogin(t *testing.T) {
	r := setupServer(t)

	w := register(t, r, "u@example.com", "u", "password1")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = postJSON(r, "/login", "", map[string]string{
		"email":    "u@example.com",
		"password": "password1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestRegisterDuplicateEmailAndUsername(t *testing.T) {
	r := setupServer(t)

	w := register(t, r, "u@example.com", "u", "password1")
	require.Equal(t, http.StatusCreated, w.Code)

	w = register(t, r, "u@example.com", "u", "password1")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "email")
	assert.Contains(t, resp.Fields, "username")

	var n int64
	database.DB.Model(&accounts.Account{}).Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestRegisterWeakPassword(t *testing.T) {
	r := setupServer(t)

	w := register(t, r, "u@example.com", "u", "short")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "password")
}

func TestLoginFailureIsGeneric(t *testing.T) {
	r := setupServer(t)

	w := register(t, r, "u@example.com", "u", "password1")
	require.Equal(t, http.StatusCreated, w.Code)

	wrongPassword := postJSON(r, "/login", "", map[string]string{
		"email":    "u@example.com",
		"password": "password2",
	})
	unknownEmail := postJSON(r, "/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "password1",
	})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// the two failure modes are indistinguishable to the caller
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestChangePassword(t *testing.T) {
	r := setupServer(t)

	w := register(t, r, "u@example.com", "u", "password1")
	require.Equal(t, http.StatusCreated, w.Code)
	var reg struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

	w = postJSON(r, "/change-password", reg.Token, map[string]string{
		"old_password": "password1",
		"new_password": "password2new",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = postJSON(r, "/login", "", map[string]string{
		"email":    "u@example.com",
		"password": "password2new",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/login", "", map[string]string{
		"email":    "u@example.com",
		"password": "password1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
