package api

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/campushub/campushub-BE/internal/db"
	"github.com/campushub/campushub-BE/internal/notification"
	"github.com/campushub/campushub-BE/internal/token"
	"github.com/campushub/campushub-BE/internal/util"
	"github.com/campushub/campushub-BE/internal/worker"
	"github.com/campushub/campushub-BE/internal/ws"
)

type Server struct {
	router          *gin.Engine
	dbStore         db.Store
	notifier        *notification.Service
	hub             *ws.Hub
	tokenMaker      token.Maker
	taskDistributor worker.TaskDistributor
	config          *util.Config
}

// NewServer creates a new HTTP server and set up routing.
func NewServer(store db.Store, notifier *notification.Service, hub *ws.Hub, taskDistributor worker.TaskDistributor, config *util.Config) (*Server, error) {
	// Create a new JWT token maker
	tokenMaker, err := token.NewJWTMaker(config.TokenSecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create token maker: %w", err)
	}
	log.Info().Msg("Token maker created successfully ✅")

	server := &Server{
		dbStore:         store,
		notifier:        notifier,
		hub:             hub,
		tokenMaker:      tokenMaker,
		taskDistributor: taskDistributor,
		config:          config,
	}

	server.setupRouter()
	return server, nil
}

// setupRouter configures the HTTP server routes.
func (server *Server) setupRouter() *gin.Engine {
	gin.ForceConsoleColor()
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     server.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	v1 := router.Group("/v1")

	// Live session attach authenticates with a query token because browser
	// WebSocket clients cannot set an Authorization header.
	v1.GET("/ws", server.serveWebSocket)

	meGroup := v1.Group("/users/me")
	meGroup.Use(authMiddleware(server.tokenMaker))
	{
		meGroup.GET("/notifications", server.listMyNotifications)
		meGroup.GET("/notifications/unread-count", server.getUnreadNotificationCount)
		meGroup.PATCH("/notifications/:id/read", server.markNotificationRead)
	}

	adminGroup := v1.Group("/admin")
	adminGroup.Use(authMiddleware(server.tokenMaker), requiredAdminRole())
	{
		adminGroup.POST("/notifications", server.sendNotifications)
		adminGroup.POST("/announcements", server.createAnnouncement)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	server.router = router
	return router
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	return server.router.Run(address)
}
