package server

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/alumnihub/alumni-backend/internal/handler"
	"github.com/alumnihub/alumni-backend/internal/middleware"
	"github.com/alumnihub/alumni-backend/internal/repository"
	"github.com/alumnihub/alumni-backend/internal/service"
	"github.com/alumnihub/alumni-backend/pkg/mailer"
	"github.com/alumnihub/alumni-backend/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	contentRepo := repository.NewContentRepository(db)
	contactRepo := repository.NewContactRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	fileStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	// Approval emails are best-effort; the workflow runs without a relay.
	mail, err := mailer.NewSMTPMailer()
	if err != nil {
		log.Printf("SMTP mailer not configured, approval emails disabled: %v", err)
		mail = nil
	}

	meiliHost := os.Getenv("MEILISEARCH_HOST")
	if meiliHost == "" {
		meiliHost = "http://localhost:7700"
	}
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}

	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(os.Getenv("MEILI_MASTER_KEY")))
	searchSvc := service.NewSearchService(meiliClient)

	notificationSvc := service.NewNotificationService(notificationRepo, redisClient)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, redisClient)

	authSvc := service.NewAuthService(userRepo, notificationSvc)
	authHandler := handler.NewAuthHandler(authSvc)

	membershipSvc := service.NewMembershipService(appRepo, userRepo, fileStorage, mail, searchSvc, notificationSvc)
	membershipHandler := handler.NewMembershipHandler(membershipSvc)

	profileSvc := service.NewProfileService(userRepo, fileStorage, searchSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)

	contentSvc := service.NewContentService(contentRepo, fileStorage, searchSvc)
	contentHandler := handler.NewContentHandler(contentSvc)

	contactSvc := service.NewContactService(contactRepo, redisClient)
	contactHandler := handler.NewContactHandler(contactSvc)

	searchHandler := handler.NewSearchHandler(searchSvc)

	router := gin.New()

	setupCORS(router)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	roleResolver := service.NewRoleResolver(userRepo)
	authMiddleware := middleware.NewAuthMiddleware(roleResolver)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	api.GET("/news", contentHandler.ListNews)
	api.GET("/news/:slug", contentHandler.GetNewsBySlug)
	api.GET("/events", contentHandler.ListEvents)
	api.GET("/gallery", contentHandler.ListGalleryPhotos)
	api.POST("/contact", contactHandler.SubmitMessage)
	api.POST("/newsletter/subscribe", contactHandler.Subscribe)

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.POST("/members/approve", membershipHandler.Approve)
			adminGroup.POST("/members/reject", membershipHandler.Reject)
			adminGroup.GET("/members/pending", membershipHandler.ListPending)

			adminGroup.POST("/news", contentHandler.CreateNews)
			adminGroup.PUT("/news/:id", contentHandler.UpdateNews)
			adminGroup.DELETE("/news/:id", contentHandler.DeleteNews)
			adminGroup.POST("/events", contentHandler.CreateEvent)
			adminGroup.DELETE("/events/:id", contentHandler.DeleteEvent)
			adminGroup.POST("/gallery", contentHandler.UploadGalleryPhoto)
			adminGroup.DELETE("/gallery/:id", contentHandler.DeleteGalleryPhoto)

			adminGroup.GET("/contact-messages", contactHandler.ListMessages)
		}

		// Profile routes
		protected.GET("/profile/me", profileHandler.GetCurrentProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)
		protected.POST("/profile/documents", profileHandler.UploadDocument)

		// Member directory
		protected.GET("/members/search", searchHandler.SearchMembers)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine) {
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
