package routes

import (
	accountsapi "courseware-app/internal/api/accounts"
	authapi "courseware-app/internal/api/auth"
	catalogapi "courseware-app/internal/api/catalog"
	coursesapi "courseware-app/internal/api/courses"
	"courseware-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Anonymous read-only catalog
	r.GET("/catalog/courses", catalogapi.ListCourses)
	r.GET("/catalog/courses/:course_slug", catalogapi.GetCourse)
	r.GET("/catalog/courses/:course_slug/:process_slug", catalogapi.GetProcess)
	r.GET("/catalog/courses/:course_slug/:process_slug/:action_slug", catalogapi.GetAction)
	r.GET("/catalog/courses/:course_slug/:process_slug/:action_slug/:step_slug", catalogapi.GetStep)

	// ✅ Apply input sanitization to public JSON routes only
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", accountsapi.GetCurrentAccount)
	auth.PUT("/me", accountsapi.UpdateProfile)
	auth.POST("/logout", authapi.Logout)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/courses", coursesapi.ListCourses)
	auth.POST("/courses", coursesapi.CreateCourse)
	auth.GET("/courses/:course_slug", coursesapi.GetCourse)
	auth.PUT("/courses/:course_slug", coursesapi.UpdateCourse)
	auth.DELETE("/courses/:course_slug", coursesapi.DeleteCourse)

	auth.POST("/courses/:course_slug/processes", coursesapi.CreateProcess)
	auth.GET("/courses/:course_slug/processes/:process_slug", coursesapi.GetProcess)
	auth.PUT("/courses/:course_slug/processes/:process_slug", coursesapi.UpdateProcess)
	auth.DELETE("/courses/:course_slug/processes/:process_slug", coursesapi.DeleteProcess)

	auth.GET("/courses/:course_slug/processes/:process_slug/action_creation", coursesapi.ActionChoices)
	auth.POST("/courses/:course_slug/processes/:process_slug/actions", coursesapi.CreateAction)
	auth.GET("/courses/:course_slug/processes/:process_slug/actions/:action_slug", coursesapi.GetAction)
	auth.PUT("/courses/:course_slug/processes/:process_slug/actions/:action_slug", coursesapi.UpdateAction)
	auth.DELETE("/courses/:course_slug/processes/:process_slug/actions/:action_slug", coursesapi.DeleteAction)

	auth.POST("/courses/:course_slug/processes/:process_slug/actions/:action_slug/steps", coursesapi.CreateStep)
	auth.GET("/courses/:course_slug/processes/:process_slug/actions/:action_slug/steps/:step_slug", coursesapi.GetStep)
	auth.PUT("/courses/:course_slug/processes/:process_slug/actions/:action_slug/steps/:step_slug", coursesapi.UpdateStep)
	auth.DELETE("/courses/:course_slug/processes/:process_slug/actions/:action_slug/steps/:step_slug", coursesapi.DeleteStep)
}
