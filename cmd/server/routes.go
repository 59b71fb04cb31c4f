package main

import (
	"github.com/gin-gonic/gin"
	"github.com/pferate/puppy-website/internal/handlers"
	"github.com/pferate/puppy-website/internal/metrics"
	"github.com/pferate/puppy-website/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func setupRoutes(r *gin.Engine, a *app) {
	authHandler := handlers.NewAuthHandler(a.auth, nil)
	notificationHandler := handlers.NewNotificationHandler(a.notifications)
	groupHandler := handlers.NewGroupHandler(a.groups)
	catalogHandler := handlers.NewCatalogHandler(a.catalog)
	ventureHandler := handlers.NewVentureHandler(a.ventures)

	requireAdmin := middleware.RequireAdministrator(a.groups)

	r.Use(metrics.Middleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "PuPPy API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	api.Use(middleware.LoadPrincipal(a.identity, a.auth))
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/reset/request", authHandler.RequestPasswordReset)
			auth.POST("/reset", authHandler.ResetPassword)
		}

		// Auth routes (protected)
		account := api.Group("/auth")
		account.Use(middleware.RequireAuth())
		{
			account.GET("/me", authHandler.GetCurrentUser)
			account.POST("/confirm/request", authHandler.RequestConfirmation)
			account.POST("/confirm", authHandler.Confirm)
			account.POST("/change-email/request", authHandler.RequestEmailChange)
			account.POST("/change-email", authHandler.ChangeEmail)
			account.POST("/token", authHandler.IssueToken)
		}

		// User routes
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("", authHandler.ListUsers)
			users.POST("/:id/approve", requireAdmin, authHandler.ApproveUser)
		}

		me := api.Group("/me")
		me.Use(middleware.RequireAuth())
		{
			me.GET("/skills", catalogHandler.ListMySkills)
			me.POST("/skills", catalogHandler.AddMySkill)
		}

		// Notification routes (protected)
		notifications := api.Group("/notifications")
		notifications.Use(middleware.RequireAuth())
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.POST("", notificationHandler.SendMessage)
			notifications.GET("/unread", notificationHandler.UnreadCount)
			notifications.POST("/broadcast", requireAdmin, notificationHandler.Broadcast)
			notifications.GET("/:id", notificationHandler.GetNotification)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
		}

		// Group routes
		groups := api.Group("/groups")
		{
			groups.GET("", groupHandler.ListGroups)
			groups.GET("/admins", groupHandler.ListAdmins)
			groups.POST("", requireAdmin, groupHandler.CreateGroup)
			groups.POST("/:name/members", requireAdmin, groupHandler.AddMember)
			groups.DELETE("/:name/members/:user_id", requireAdmin, groupHandler.RemoveMember)
		}

		// Catalog routes
		categories := api.Group("/categories")
		{
			categories.GET("", catalogHandler.ListCategories)
			categories.GET("/:id", catalogHandler.GetCategory)
			categories.POST("", requireAdmin, catalogHandler.CreateCategory)
			categories.PUT("/:id/parent", requireAdmin, catalogHandler.SetParent)
		}

		skills := api.Group("/skills")
		{
			skills.GET("", catalogHandler.ListSkills)
			skills.POST("", requireAdmin, catalogHandler.CreateSkill)
		}

		// Venture routes (protected)
		ventures := api.Group("/ventures")
		ventures.Use(middleware.RequireAuth())
		{
			ventures.POST("", ventureHandler.CreateVenture)
			ventures.GET("/:id", ventureHandler.GetVenture)
			ventures.POST("/:id/approve", requireAdmin, ventureHandler.ApproveVenture)
			ventures.POST("/:id/skills", ventureHandler.ContributeSkill)
			ventures.POST("/:id/resources", ventureHandler.ContributeResource)
		}

		companies := api.Group("/companies")
		companies.Use(middleware.RequireAuth())
		{
			companies.POST("", ventureHandler.CreateCompany)
			companies.GET("/:id", ventureHandler.GetCompany)
			companies.POST("/:id/approve", requireAdmin, ventureHandler.ApproveCompany)
			companies.POST("/:id/resources", ventureHandler.AddCompanyResource)
		}

		resources := api.Group("/resources")
		resources.Use(middleware.RequireAuth())
		{
			resources.POST("", ventureHandler.CreateResource)
			resources.POST("/:id/approve", requireAdmin, ventureHandler.ApproveResource)
		}
	}
}
