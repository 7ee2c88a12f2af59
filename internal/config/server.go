package config

import (
	"TravelLedger/database/migration"
	"TravelLedger/database/postgres"
	"TravelLedger/database/sqlite"
	authHandler "TravelLedger/internal/api/auth/handler"
	authRepository "TravelLedger/internal/api/auth/repository"
	authService "TravelLedger/internal/api/auth/service"
	budgetHandler "TravelLedger/internal/api/budget/handler"
	budgetRepository "TravelLedger/internal/api/budget/repository"
	budgetService "TravelLedger/internal/api/budget/service"
	cardHandler "TravelLedger/internal/api/card/handler"
	cardRepository "TravelLedger/internal/api/card/repository"
	cardService "TravelLedger/internal/api/card/service"
	expenseHandler "TravelLedger/internal/api/expense/handler"
	expenseRepository "TravelLedger/internal/api/expense/repository"
	expenseService "TravelLedger/internal/api/expense/service"
	participantHandler "TravelLedger/internal/api/participant/handler"
	participantRepository "TravelLedger/internal/api/participant/repository"
	participantService "TravelLedger/internal/api/participant/service"
	tripHandler "TravelLedger/internal/api/trip/handler"
	tripRepository "TravelLedger/internal/api/trip/repository"
	tripService "TravelLedger/internal/api/trip/service"
	"TravelLedger/internal/middleware"
	"TravelLedger/pkg/amqp"
	"TravelLedger/pkg/bcrypt"
	"TravelLedger/pkg/redis"
	"TravelLedger/pkg/smtp"
	"TravelLedger/pkg/utils"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	env         *Env
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	bcryptUtils bcrypt.IBcrypt
	handlers    []handler
	redisServer redis.IRedis
	smtpMailer  smtp.ItfSmtp
	publisher   amqp.IPublisher
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.env == nil {
		return nil, fmt.Errorf("env is required")
	}
	if server.publisher == nil {
		server.publisher, _ = amqp.New(amqp.Config{}, server.log)
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithEnv(env *Env) ServerOption {
	return func(s *Server) error {
		s.env = env
		return nil
	}
}

// WithMigrations applies pending schema migrations for the configured driver.
// It must come after WithDatabase, which creates the sqlite file.
func WithMigrations() ServerOption {
	return func(s *Server) error {
		if s.db == nil {
			return fmt.Errorf("database must be connected before migrations")
		}

		driver, dsn := s.env.DBDriver, s.env.Postgres.DSN()
		if driver == DriverSQLite {
			dsn = sqlite.DSN(s.env.SQLiteDBPath)
		}

		if err := migration.Up(driver, dsn); err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to run migrations: %v", err)
			}
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		if s.env == nil {
			return fmt.Errorf("env must be set before the database")
		}

		var db *sqlx.DB
		var err error
		switch s.env.DBDriver {
		case DriverSQLite:
			db, err = sqlite.New(s.env.SQLiteDBPath)
		default:
			db, err = postgres.New(s.env.Postgres)
		}
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithPublisher(publisher amqp.IPublisher) ServerOption {
	return func(s *Server) error {
		s.publisher = publisher
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Auth Domain
	authRepo := authRepository.New(s.db, s.log)
	authServices := authService.New(s.log, authRepo, s.bcryptUtils, s.utils, s.env.AccessTokenTTL)
	authHandlers := authHandler.New(s.log, authServices, s.validator, s.middleware)

	// Trips
	tripRepo := tripRepository.New(s.db, s.log)
	tripServices := tripService.New(s.log, tripRepo, s.utils)
	tripHandlers := tripHandler.New(s.log, tripServices, s.validator, s.middleware)

	// Participants and invitations
	participantRepo := participantRepository.New(s.db, s.log)
	participantServices := participantService.New(s.log, participantRepo, s.redisServer, s.smtpMailer, s.utils, s.env.InvitationTTL)
	participantHandlers := participantHandler.New(s.log, participantServices, s.validator, s.middleware)

	// Budgets
	budgetRepo := budgetRepository.New(s.db, s.log)
	budgetServices := budgetService.NewBudgetService(s.log, budgetRepo, s.utils)
	budgetHandlers := budgetHandler.New(s.log, s.validator, s.middleware, budgetServices)

	// Expenses
	expenseRepo := expenseRepository.New(s.db, s.log)
	expenseServices := expenseService.New(s.log, expenseRepo, s.publisher, s.utils)
	expenseHandlers := expenseHandler.New(s.log, expenseServices, s.validator, s.middleware)

	// Cards
	cardRepo := cardRepository.New(s.db, s.log)
	cardServices := cardService.New(s.log, cardRepo, s.utils)
	cardHandlers := cardHandler.New(s.log, cardServices, s.validator, s.middleware)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, authHandlers, tripHandlers, participantHandlers, budgetHandlers, expenseHandlers, cardHandlers)
}

// Mount applies the global middleware and every registered handler under
// /api/v1. Run calls it; tests call it directly and drive the app with
// fiber's Test.
func (s *Server) Mount() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())
	s.engine.Use(s.middleware.NewMetricsMiddleware())
	s.engine.Use(s.middleware.NewRateLimiter)
	s.engine.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) Run() error {
	s.Mount()

	if err := s.engine.Listen(fmt.Sprintf(":%s", s.env.Port)); err != nil {
		return err
	}

	return nil
}

// Shutdown stops the listener and releases the database and broker.
func (s *Server) Shutdown() error {
	err := s.engine.Shutdown()
	if s.publisher != nil {
		if cerr := s.publisher.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if s.db != nil {
		if cerr := s.db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
