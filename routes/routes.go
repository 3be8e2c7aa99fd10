package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"guildroster/handlers"
	"guildroster/middleware"
)

// RegisterTeamRoutes registers team CRUD and recruiting endpoints.
func RegisterTeamRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/teams")
	{
		api.GET("", hb.Team.ListTeamsHandler)
		api.POST("", hb.Team.CreateTeamHandler)
		api.GET("/:teamId", hb.Team.GetTeamHandler)
		api.PUT("/:teamId", hb.Team.UpdateTeamHandler)
		api.POST("/:teamId/clear-members", hb.Team.ClearTeamMembersHandler)
		api.GET("/:teamId/recruit-text", hb.Team.RecruitTextHandler)

		// Deleting a team is destructive and admin-gated.
		api.DELETE("/:teamId", middleware.JWTAuthAdminMiddleware(), hb.Team.DeleteTeamHandler)
	}
}

// RegisterScheduleRoutes registers the week-pair view and its mutations.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.GET("/:teamId", hb.Schedule.GetWeekPairHandler)
		api.PUT("/:teamId/:weekKey/slots", hb.Schedule.UpdateProposedSlotsHandler)
		api.POST("/:teamId/:weekKey/availability", hb.Schedule.SubmitAvailabilityHandler)
		api.PUT("/:teamId/:weekKey/final", hb.Schedule.SetFinalTimeHandler)
	}
}

// RegisterRosterRoutes registers roster CRUD and the weekly poll.
func RegisterRosterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/roster")
	{
		api.GET("", hb.Roster.ListMembersHandler)
		api.PUT("", hb.Roster.UpsertMemberHandler)
		api.GET("/available/:weekKey/:day", hb.Roster.AvailableMembersHandler)
		api.GET("/:name", hb.Roster.GetMemberHandler)
		api.POST("/:name/poll/:weekKey", hb.Roster.SubmitWeeklyPollHandler)

		api.DELETE("/:name", middleware.JWTAuthAdminMiddleware(), hb.Roster.DeleteMemberHandler)
	}
}

// RegisterExportRoutes registers the CSV downloads.
func RegisterExportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/export")
	{
		api.GET("/roster", hb.Export.ExportRosterHandler)
		api.GET("/teams/:teamId/:weekKey", hb.Export.ExportTeamWeekHandler)
	}
}

// RegisterAuthRoutes registers admin login and logout.
func RegisterAuthRoutes(r *gin.Engine) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", handlers.AdminLoginHandler)
		api.POST("/logout", handlers.AdminLogoutHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm GuildRoster"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterTeamRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterRosterRoutes(r, hb)
	RegisterExportRoutes(r, hb)
	RegisterAuthRoutes(r)
	RegisterHealthRoute(r)
}
