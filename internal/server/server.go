// Package server exposes the analyzer over HTTP.
package server

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/analyzer"
	"github.com/spigell/resume-matcher/internal/logger"
)

const (
	Version = "1.0.0"

	DefaultAddress        = "127.0.0.1:8000"
	DefaultMaxUploadBytes = 7_000_000

	requestIDKey    = "request_id"
	shutdownTimeout = 5 * time.Second
	// Multipart framing adds a little on top of the upload itself; the
	// handler enforces the exact limit.
	bodyLimitSlack = 1 << 20
)

type Config struct {
	Address        string        `mapstructure:"address" validate:"required,hostname_port"`
	AllowOrigins   string        `mapstructure:"allow_origins"`
	MaxUploadBytes int           `mapstructure:"max_upload_bytes" validate:"gte=0"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
}

func DefaultConfig() Config {
	return Config{
		Address:        DefaultAddress,
		AllowOrigins:   "http://localhost:5173,http://127.0.0.1:5173",
		MaxUploadBytes: DefaultMaxUploadBytes,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
	}
}

type Server struct {
	app      *fiber.App
	cfg      Config
	analyzer *analyzer.Service
	validate *validator.Validate
	logger   *zap.Logger
}

// New builds the fiber app with middleware and routes registered.
func New(cfg Config, svc *analyzer.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if svc == nil {
		svc = analyzer.New(analyzer.WithLogger(log))
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	s := &Server{
		cfg:      cfg,
		analyzer: svc,
		validate: newValidator(),
		logger:   log,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "resume-matcher",
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		BodyLimit:             cfg.MaxUploadBytes + bodyLimitSlack,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	s.app.Use(recover.New())
	s.app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	s.app.Use(s.accessLog)
	if cfg.AllowOrigins != "" {
		s.app.Use("/api", cors.New(cors.Config{
			AllowOrigins: cfg.AllowOrigins,
			AllowMethods: "GET,POST,OPTIONS",
			AllowHeaders: "Origin, Content-Type, Accept",
		}))
	}

	api := s.app.Group("/api")
	api.Get("/health", s.health)
	api.Post("/analyze", s.analyzeUpload)
	api.Post("/analyze/text", s.analyzeText)
	api.Post("/compare", s.compare)
	api.Get("/roles", s.listRoles)
	api.Post("/roles/:slug/analyze", s.analyzeRole)
	api.Get("/market", s.marketInsights)

	return s
}

// App exposes the underlying fiber app, mostly for app.Test.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Listen(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("address", s.cfg.Address))
		errCh <- s.app.Listen(s.cfg.Address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down http server")
		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return err
		}
		return <-errCh
	}
}

func (s *Server) accessLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}

	s.requestLogger(c).Info("request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)),
	)
	return err
}

func (s *Server) requestLogger(c *fiber.Ctx) *zap.Logger {
	id, _ := c.Locals(requestIDKey).(string)
	return logger.WithFields(s.logger, logger.StringFields(logger.StringField{Key: logger.FieldRequestID, Value: id})...)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"detail": err.Error()})
}

func detail(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(fiber.Map{"detail": msg})
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
