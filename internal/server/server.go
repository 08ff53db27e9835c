// Package server exposes the service over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/julianstephens/habitboard/internal/constants"
	"github.com/julianstephens/habitboard/internal/logger"
	"github.com/julianstephens/habitboard/internal/service"
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	Port        string
	CORSOrigins string
}

type Server struct {
	app  *fiber.App
	svc  *service.Service
	port string
}

func New(svc *service.Service, opts Options) *Server {
	if opts.Port == "" {
		opts.Port = constants.DefaultServerPort
	}
	if opts.CORSOrigins == "" {
		opts.CORSOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:               constants.AppName,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})
	app.Use(RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, " + usernameHeader,
		AllowMethods: "GET,POST,PATCH,OPTIONS",
	}))

	s := &Server{app: app, svc: svc, port: opts.Port}
	s.routes()
	return s
}

func (s *Server) routes() {
	h := &handlers{svc: s.svc}

	s.app.Get("/healthz", h.health)

	api := s.app.Group("/", identify(s.svc))
	api.Get("/users/me", h.me)
	api.Post("/friends/add/:code", h.addFriend)
	api.Get("/friends", h.listFriends)
	api.Get("/leaderboard", h.leaderboard)
	api.Get("/habits", h.listHabits)
	api.Post("/habits", h.createHabit)
	api.Patch("/habits/:id", h.updateHabit)
	api.Get("/logs/:month", h.listLogs)
	api.Post("/toggle", h.toggle)
	api.Get("/dashboard/:year/:month", h.dashboard)
}

// App returns the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Listen(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", s.port)
		errCh <- s.app.Listen(":" + s.port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
