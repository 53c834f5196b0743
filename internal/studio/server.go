package studio

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	fsession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"

	"github.com/Rana718/synthgen/internal/config"
	"github.com/Rana718/synthgen/internal/generator"
	"github.com/Rana718/synthgen/internal/studio/common"
)

const (
	sessionCookie = "synthgen_session"
	sessionLocal  = "session"
)

type Server struct {
	app     *fiber.App
	service *Service
	cookies *fsession.Store
	cfg     *config.Config
	port    int
	log     zerolog.Logger
}

func NewServer(cfg *config.Config, gen *generator.Generator, log zerolog.Logger) *Server {
	server := &Server{
		service: NewService(cfg, gen, log),
		cookies: fsession.New(fsession.Config{
			Expiration:     cfg.Studio.SessionIdle,
			KeyLookup:      "cookie:" + sessionCookie,
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
		}),
		cfg:  cfg,
		port: cfg.Studio.Port,
		log:  log,
	}

	server.app = common.NewApp(TemplatesFS, server.handleError)
	server.setupRoutes()
	return server
}

// App exposes the underlying Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupRoutes() {
	s.app.Use(s.requestLogger)
	common.SetupStaticFS(s.app, StaticFS)

	s.app.Use(s.withSession)

	// UI
	s.app.Get("/", s.handleIndex)
	s.app.Post("/settings", s.handleSettings)
	s.app.Post("/generate", s.handleGenerate)
	s.app.Get("/download", s.handleDownload)

	// API
	api := s.app.Group("/api")
	api.Get("/kinds", s.handleKinds)
	api.Post("/generate", s.handleAPIGenerate)
	api.Get("/table", s.handleAPITable)
	api.Get("/recipe", s.handleRecipe)
}

// Start serves until the listener fails or ctx is cancelled.
func (s *Server) Start(ctx context.Context, openBrowser bool) error {
	go s.sweepSessions(ctx)
	go func() {
		<-ctx.Done()
		s.app.Shutdown()
	}()

	return common.StartServer(s.app, &s.port, "Synthetic Data Studio", openBrowser)
}

func (s *Server) sweepSessions(ctx context.Context) {
	interval := s.cfg.Studio.SessionIdle / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.service.Sweep()
		}
	}
}

func (s *Server) withSession(c *fiber.Ctx) error {
	cs, err := s.cookies.Get(c)
	if err != nil {
		return err
	}
	id := cs.ID()
	if err := cs.Save(); err != nil {
		return err
	}

	c.Locals(sessionLocal, s.service.Session(id))
	return c.Next()
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}

	s.log.Debug().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Msg("request")
	return err
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		status = fe.Code
	case isClientError(err):
		status = fiber.StatusBadRequest
	default:
		s.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return common.JSONError(c, status, err.Error())
}
