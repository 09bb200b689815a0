package server

import (
	"context"
	"net/http"
	"time"

	"quincho/internal/auth"
	"quincho/internal/config"
	"quincho/internal/notifier"
	"quincho/internal/reservation"
	"quincho/internal/room"
	"quincho/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, notifierService *notifier.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	roomRepo := room.NewRepository(db)
	reservationRepo := reservation.NewRepository(db)
	userRepo := user.NewRepository(db)

	reservationSvc := reservation.NewService(reservationRepo, roomRepo, reservation.NewEngine(), notifierService)
	roomSvc := room.NewService(roomRepo, reservationRepo)
	userSvc := user.NewService(userRepo, reservationSvc, notifierService, cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AdminEmail)

	userHandler := user.NewHandler(userSvc)
	roomHandler := room.NewHandler(roomSvc)
	reservationHandler := reservation.NewHandler(reservationSvc)
	notifierHandler := notifier.NewHandler(notifierService)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.PUT("/me", userHandler.UpdateMe)
		protected.GET("/rooms", roomHandler.List)
		protected.GET("/slots", reservationHandler.ListSlots)
		protected.GET("/reservations", reservationHandler.ListPublic)
		protected.GET("/reservations/mine", reservationHandler.ListMine)
		protected.POST("/reservations", reservationHandler.Create)
		protected.POST("/reservations/:reservationID/cancel", reservationHandler.Cancel)
	}

	adminMiddleware := auth.RequireRole(auth.RoleAdmin)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("/reservations", reservationHandler.ListAdmin)
		admin.POST("/rooms", roomHandler.Create)
		admin.PUT("/rooms/:roomID", roomHandler.Update)
		admin.DELETE("/rooms/:roomID", roomHandler.Delete)
		admin.GET("/users", userHandler.ListAdmin)
		admin.PUT("/users/:userID", userHandler.UpdateAdmin)
		admin.DELETE("/users/:userID", userHandler.DeleteAdmin)
		admin.GET("/notifications", notifierHandler.GetStatus)
		admin.PUT("/notifications", notifierHandler.Toggle)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
