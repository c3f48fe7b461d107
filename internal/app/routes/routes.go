package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mustso/portal/internal/app/controllers"
	"github.com/mustso/portal/internal/middleware"
	"github.com/mustso/portal/internal/pkg/filestorage"
)

// SetupRouter configures all gateway routes under /api. Paths keep the
// trailing slash the REST API uses.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	announcementController *controllers.AnnouncementController,
	leaderController *controllers.LeaderController,
	collegeController *controllers.CollegeController,
	authMiddleware *middleware.AuthMiddleware,
	storage filestorage.FileStorage,
	mediaPrefix string,
) {
	api := router.Group("/api")

	// --- Auth and the current user ---
	auth := api.Group("/auth")
	{
		auth.POST("/register/", authController.Register)
		auth.POST("/login/", authController.Login)
		auth.POST("/password-reset/", authController.RequestPasswordReset)

		authenticated := auth.Group("")
		authenticated.Use(authMiddleware.JWTAuth())
		{
			authenticated.POST("/logout/", authController.Logout)
			authenticated.GET("/profile/", authController.GetProfile)
			authenticated.PATCH("/profile/", authController.UpdateProfile)
			authenticated.PUT("/profile/", authController.UpdateProfile)
			authenticated.POST("/change-password/", authController.ChangePassword)

			authenticated.GET("/activities/", userController.GetActivities)
			authenticated.POST("/activities/", userController.AddActivity)
			authenticated.GET("/notifications/", userController.GetNotifications)
			authenticated.POST("/notifications/:id/read/", userController.MarkNotificationRead)
			authenticated.GET("/stats/", userController.GetStats)
		}
	}

	// --- Announcements ---
	announcements := api.Group("/announcements")
	{
		announcements.GET("/", announcementController.GetAnnouncements)
		announcements.GET("/categories/", announcementController.GetCategories)
		announcements.GET("/hashtags/", announcementController.GetHashtags)
		announcements.GET("/stats/", announcementController.GetStats)
		announcements.GET("/:id/", announcementController.GetAnnouncement)
		announcements.GET("/:id/comments/", announcementController.GetComments)

		members := announcements.Group("")
		members.Use(authMiddleware.JWTAuth())
		{
			members.POST("/:id/comments/", announcementController.AddComment)
			members.POST("/:id/like/", announcementController.ToggleLike)
		}

		admins := announcements.Group("")
		admins.Use(authMiddleware.JWTAuth(), authMiddleware.AdminRequired())
		{
			admins.POST("/", announcementController.CreateAnnouncement)
			admins.PATCH("/:id/", announcementController.UpdateAnnouncement)
			admins.PUT("/:id/", announcementController.UpdateAnnouncement)
			admins.DELETE("/:id/", announcementController.DeleteAnnouncement)
			admins.POST("/:id/pin/", announcementController.TogglePin)
		}
	}

	// --- Leaders ---
	leaders := api.Group("/leaders")
	{
		leaders.GET("/", leaderController.GetLeaders)
		leaders.GET("/stats/", leaderController.GetStats)
		leaders.GET("/:id/", leaderController.GetLeader)

		admins := leaders.Group("")
		admins.Use(authMiddleware.JWTAuth(), authMiddleware.AdminRequired())
		{
			admins.POST("/", leaderController.CreateLeader)
			admins.PATCH("/:id/", leaderController.UpdateLeader)
			admins.PUT("/:id/", leaderController.UpdateLeader)
			admins.DELETE("/:id/", leaderController.DeleteLeader)
		}
	}

	// --- Colleges and departments ---
	colleges := api.Group("/colleges")
	{
		colleges.GET("/", collegeController.GetColleges)
		colleges.GET("/departments/", collegeController.GetAllDepartments)
		colleges.GET("/stats/", collegeController.GetStats)
		colleges.GET("/:id/", collegeController.GetCollege)
		colleges.GET("/:id/departments/", collegeController.GetDepartments)

		admins := colleges.Group("")
		admins.Use(authMiddleware.JWTAuth(), authMiddleware.AdminRequired())
		{
			admins.POST("/", collegeController.CreateCollege)
			admins.PATCH("/:id/", collegeController.UpdateCollege)
			admins.PUT("/:id/", collegeController.UpdateCollege)
			admins.DELETE("/:id/", collegeController.DeleteCollege)
		}
	}

	api.GET("/health/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Uploaded media
	router.Static(mediaPrefix, storage.Root())
}
