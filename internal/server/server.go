// Package server exposes the intake questionnaire over HTTP: the schema for
// clients to render, and a brief endpoint accepting a finished answer set.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-intake/internal/config"
	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/wizard"
)

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func successResponse(message string, data any) response {
	return response{Success: true, Message: message, Data: data}
}

func errorResponse(message string, data any) response {
	return response{Success: false, Message: message, Data: data}
}

type Server struct {
	app     *fiber.App
	cfg     *config.Config
	schema  *model.Questionnaire
	gateway wizard.Gateway
	log     *zap.Logger
}

func New(cfg *config.Config, schema *model.Questionnaire, gateway wizard.Gateway, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024,
	})

	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CorsAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	s := &Server{
		app:     app,
		cfg:     cfg,
		schema:  schema,
		gateway: gateway,
		log:     logger,
	}
	s.registerRoutes()
	return s
}

// App exposes the underlying fiber app, mainly so tests can drive it with
// app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.log.Info("server listening", zap.String("port", s.cfg.App.Port))
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) registerRoutes() {
	api := s.app.Group("/api")
	api.Get("/questionnaire", s.handleQuestionnaire)
	api.Post("/brief", s.handleBrief)
}

// handleQuestionnaire serves the schema so a client can render the slides.
func (s *Server) handleQuestionnaire(ctx *fiber.Ctx) error {
	return ctx.JSON(successResponse("Questionnaire retrieved", s.schema))
}

// handleBrief accepts a complete answer set and forwards it to the
// submission gateway. Incomplete briefs come back 422 with per-field
// messages; a gateway failure is a 502 so the client can offer a retry.
func (s *Server) handleBrief(ctx *fiber.Ctx) error {
	var answers map[string]model.Value
	if err := ctx.BodyParser(&answers); err != nil {
		return ctx.Status(fiber.StatusBadRequest).
			JSON(errorResponse("Malformed request body", nil))
	}

	for id, value := range answers {
		field, ok := s.schema.ByID(id)
		if !ok {
			return ctx.Status(fiber.StatusBadRequest).
				JSON(errorResponse("Unknown field: "+id, nil))
		}
		if !value.Matches(field.Kind) {
			return ctx.Status(fiber.StatusBadRequest).
				JSON(errorResponse("Answer kind does not match field: "+id, nil))
		}
	}

	if missing := wizard.MissingFields(s.schema, answers); len(missing) > 0 {
		return ctx.Status(fiber.StatusUnprocessableEntity).
			JSON(errorResponse("Brief is incomplete", missing))
	}

	submissionID := uuid.NewString()
	submitCtx := wizard.WithSubmissionID(ctx.Context(), submissionID)
	if err := s.gateway.Submit(submitCtx, answers); err != nil {
		s.log.Error("brief submission failed",
			zap.String("submission_id", submissionID), zap.Error(err))
		return ctx.Status(fiber.StatusBadGateway).
			JSON(errorResponse("Submission failed, please try again", nil))
	}

	s.log.Info("brief accepted",
		zap.String("submission_id", submissionID), zap.Int("answers", len(answers)))
	return ctx.JSON(successResponse("Brief submitted", fiber.Map{
		"submission_id": submissionID,
	}))
}
