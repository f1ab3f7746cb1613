package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"clientbook/internal/config"
	"clientbook/internal/handler"
	"clientbook/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

// Server represents the HTTP server
type Server struct {
	cfg       *config.Config
	router    *gin.Engine
	http      *http.Server
	backends  *Backends
	services  *Services
	limiter   *middleware.RateLimiter
	scheduler *cron.Cron
}

// New connects the configured backends and creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	backends, err := OpenBackends(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open backends: %w", err)
	}
	srv, err := NewWithBackends(cfg, backends)
	if err != nil {
		backends.Close(context.Background())
		return nil, err
	}
	return srv, nil
}

// NewWithBackends creates a server over already opened backends.
func NewWithBackends(cfg *config.Config, backends *Backends) (*Server, error) {
	services, err := InitServices(cfg, backends)
	if err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}
	handlers := InitHandlers(cfg, services)
	limiter := middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)

	s := &Server{
		cfg:      cfg,
		backends: backends,
		services: services,
		limiter:  limiter,
	}
	s.router = setupRouter(cfg, handlers, services, limiter)
	s.http = &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Services exposes the wired services to the admin CLI.
func (s *Server) Services() *Services {
	return s.services
}

// Run starts the reminder scheduler and serves until Shutdown.
func (s *Server) Run() error {
	if err := s.startReminders(); err != nil {
		return err
	}
	log.Printf("[server] clientbook listening on %s (store=%s, mail=%s)", s.cfg.Server.Address(), s.cfg.Store.Backend, s.cfg.Mail.Backend)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for a running reminder sweep and
// closes the backends.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.scheduler != nil {
		select {
		case <-s.scheduler.Stop().Done():
		case <-ctx.Done():
		}
	}
	s.limiter.Stop()
	if cerr := s.backends.Close(ctx); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Close releases the backends without serving.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.limiter.Stop()
	return s.backends.Close(ctx)
}

func (s *Server) startReminders() error {
	if !s.cfg.Reminder.Enabled {
		return nil
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(s.cfg.Reminder.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := s.services.Reminders.Run(ctx); err != nil {
			log.Printf("[reminder] sweep failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.cfg.Reminder.Schedule, err)
	}
	c.Start()
	s.scheduler = c
	log.Printf("[reminder] scheduler started (%s)", s.cfg.Reminder.Schedule)
	return nil
}

func setupRouter(cfg *config.Config, h *Handlers, s *Services, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.Use(middleware.RequestID())
	r.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))

	r.GET("/health", handler.Health)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(limiter))
	api.GET("/timezones", handler.Timezones)
	api.GET("/interests", handler.Interests)

	// Everything else requires a bearer token
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(s.Tokens))

	protected.POST("/session", h.Settings.Session)
	protected.POST("/register", h.Settings.Register)
	protected.GET("/settings", h.Settings.Get)
	protected.PUT("/settings", h.Settings.Save)

	clients := protected.Group("/clients")
	{
		clients.GET("", h.Clients.List)
		clients.POST("", h.Clients.Create)
		clients.GET("/:id", h.Clients.Get)
		clients.PUT("/:id", h.Clients.Update)
		clients.DELETE("/:id", h.Clients.Delete)
		clients.GET("/:id/notes", h.Clients.ListNotes)
		clients.POST("/:id/notes", h.Clients.AddNote)
		clients.DELETE("/:id/notes/:noteId", h.Clients.DeleteNote)
		clients.POST("/:id/contact", h.Clients.Contact)
	}

	team := protected.Group("/team")
	{
		team.GET("", h.Team.Current)
		team.GET("/lookup", h.Team.Lookup)
		team.POST("/members", h.Team.Invite)
		team.DELETE("/members/:uid", h.Team.Remove)
	}

	protected.POST("/feedback", h.Feedback.Submit)
	protected.GET("/feedback", h.Feedback.List)

	protected.GET("/calendar", h.Insight.Calendar)
	protected.GET("/analytics", h.Insight.Analytics)
	protected.GET("/dashboard", h.Insight.Dashboard)

	return r
}

// corsConfig allows credentials for the listed origins. No origins means any
// origin, without credentials.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
