package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/reviewdesk/form-review-api/internal/authz"
	"github.com/reviewdesk/form-review-api/internal/config"
	"github.com/reviewdesk/form-review-api/internal/constants"
	"github.com/reviewdesk/form-review-api/internal/database"
	"github.com/reviewdesk/form-review-api/internal/handlers"
	"github.com/reviewdesk/form-review-api/internal/middleware"
	"github.com/reviewdesk/form-review-api/internal/repository"
	"github.com/reviewdesk/form-review-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.ContextKeySessionCookie, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	formRepo := repository.NewFormRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Initialize authorization guard and services
	guard := authz.NewGuard(orgRepo)
	authService := services.NewAuthService(userRepo)
	orgService := services.NewOrganizationService(orgRepo, guard)
	templateService := services.NewTemplateService(templateRepo)
	formService := services.NewFormService(formRepo, templateRepo, guard)
	reviewService := services.NewReviewService(reviewRepo, formRepo, orgRepo, guard)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, orgService)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	formHandler := handlers.NewFormHandler(formService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Form Review API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.PUT("/active-organization", middleware.RequireAuth(), authHandler.SetActiveOrganization)
		}

		// Organization routes (protected)
		orgs := api.Group("/organizations")
		orgs.Use(middleware.RequireAuth())
		{
			orgs.POST("", orgHandler.CreateOrganization)
			orgs.GET("", orgHandler.ListOrganizations)
			orgs.GET("/:id", orgHandler.GetOrganization)
			orgs.PATCH("/:id", orgHandler.UpdateOrganization)
			orgs.GET("/:id/members", orgHandler.ListMembers)
			orgs.POST("/:id/invitations", orgHandler.InviteMember)
			orgs.GET("/:id/invitations", orgHandler.ListInvitations)
		}

		// Form template routes (protected)
		templates := api.Group("/templates")
		templates.Use(middleware.RequireAuth())
		{
			templates.GET("", templateHandler.ListTemplates)
			templates.POST("", templateHandler.CreateTemplate)
			templates.GET("/:id", templateHandler.GetTemplate)
			templates.PATCH("/:id", templateHandler.UpdateTemplate)
			templates.DELETE("/:id", templateHandler.DeleteTemplate)
		}

		// Form routes (protected)
		forms := api.Group("/forms")
		forms.Use(middleware.RequireAuth())
		{
			forms.GET("", formHandler.ListForms)
			forms.POST("", formHandler.CreateForm)
			forms.GET("/:id", formHandler.GetForm)
			forms.PATCH("/:id", formHandler.UpdateForm)
			forms.DELETE("/:id", formHandler.DeleteForm)
			forms.GET("/:id/history", formHandler.ListFormHistory)
			forms.GET("/:id/review-flows", reviewHandler.ListFormReviewFlows)
		}

		// Review flow routes (protected)
		reviewFlows := api.Group("/review-flows")
		reviewFlows.Use(middleware.RequireAuth())
		{
			reviewFlows.POST("", reviewHandler.CreateReviewFlow)
			reviewFlows.GET("", reviewHandler.ListReviewFlows)
			reviewFlows.GET("/:id", reviewHandler.GetReviewFlow)
			reviewFlows.PATCH("/:id", reviewHandler.UpdateReviewFlow)
			reviewFlows.POST("/:id/comments", reviewHandler.AddComment)
			reviewFlows.GET("/:id/comments", reviewHandler.ListComments)
		}

		// Comment routes (protected)
		comments := api.Group("/comments")
		comments.Use(middleware.RequireAuth())
		{
			comments.DELETE("/:id", reviewHandler.DeleteComment)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
