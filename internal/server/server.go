package server

import (
	"context"
	"errors"

	"github.com/connectorhq/fivetran-universal-connector/internal/controllers"
	"github.com/connectorhq/fivetran-universal-connector/internal/domain"
	"github.com/connectorhq/fivetran-universal-connector/internal/middlewares"
	"github.com/connectorhq/fivetran-universal-connector/internal/version"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/rs/zerolog/log"
)

type HTTPServerDependencies struct {
	IdentityVerifier      domain.IdentityVerifier
	GroupController       *controllers.GroupController
	ConnectorController   *controllers.ConnectorController
	CertificateController *controllers.CertificateController
}

func NewHTTPServer(ctx context.Context, deps HTTPServerDependencies) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName:      version.ServiceName,
		ErrorHandler: HandleError,
	})

	// Add basic middleware
	router.Use(middlewares.RequestIDMiddleware())
	router.Use(cors.New())
	router.Use(logger.New())

	// Health check endpoint (no authentication required)
	router.Get("/check", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"service": version.ServiceName,
		})
	})

	router.Get("/version", func(c fiber.Ctx) error {
		return c.JSON(version.Get())
	})

	certificates := router.Group("/certificates")

	certificates.Get("/", deps.CertificateController.ListCertificates)
	certificates.Post("/upload_private", deps.CertificateController.UploadClientCertificate)
	certificates.Post("/upload_ca", deps.CertificateController.UploadCACertificate)

	if deps.IdentityVerifier == nil {
		log.Fatal().Msg("Identity verifier is nil, please set up the server with an identity verifier")
	}

	fivetranRoutes := router.Group("/fivetran")
	fivetranRoutes.Use(middlewares.BearerAuthMiddleware(deps.IdentityVerifier))

	fivetranRoutes.Get("/groups", deps.GroupController.ListGroups)
	fivetranRoutes.Post("/groups", deps.GroupController.CreateGroup)
	fivetranRoutes.Get("/groups/:groupID", deps.GroupController.GetGroup)

	fivetranRoutes.Post("/connectors", deps.ConnectorController.CreateConnector)
	fivetranRoutes.Get("/connectors", deps.ConnectorController.ListConnectors)
	fivetranRoutes.Get("/connectors/:connectorID", deps.ConnectorController.GetConnector)
	fivetranRoutes.Patch("/connectors/:connectorID", deps.ConnectorController.UpdateConnector)
	fivetranRoutes.Delete("/connectors/:connectorID", deps.ConnectorController.DeleteConnector)

	fivetranRoutes.Post("/connectors/:connectorID/pause", deps.ConnectorController.PauseConnector)
	fivetranRoutes.Post("/connectors/:connectorID/resume", deps.ConnectorController.ResumeConnector)
	fivetranRoutes.Post("/connectors/:connectorID/test", deps.ConnectorController.RunSetupTests)
	fivetranRoutes.Post("/connectors/:connectorID/sync", deps.ConnectorController.SyncConnector)
	fivetranRoutes.Post("/connectors/:connectorID/resync", deps.ConnectorController.ResyncConnector)
	fivetranRoutes.Get("/connectors/:connectorID/state", deps.ConnectorController.GetConnectorState)

	fivetranRoutes.Get("/connectors/:connectorID/schemas", deps.ConnectorController.GetSchemas)
	fivetranRoutes.Patch("/connectors/:connectorID/schemas", deps.ConnectorController.UpdateSchemas)

	return router
}

// HandleError is the single translation point from service errors to HTTP
// responses. Callers only ever see the error kind and its safe message; the
// underlying detail is logged and never leaves the process.
func HandleError(c fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"ok": false,
			"error": fiber.Map{
				"code":    kindForStatus(fiberErr.Code),
				"message": fiberErr.Message,
			},
		})
	}

	kind := domain.ErrorKindInternal
	message := "internal server error"
	if serviceErr, ok := domain.AsError(err); ok {
		kind = serviceErr.Kind
		message = serviceErr.Message
	}

	status := statusForKind(kind)

	logEvent := log.Warn()
	if status >= fiber.StatusInternalServerError {
		logEvent = log.Error()
	}

	logEvent.
		Err(err).
		Str("path", c.Path()).
		Str("method", c.Method()).
		Str("kind", string(kind)).
		Str("request_id", middlewares.RequestIDFrom(c)).
		Msg("Request failed")

	return c.Status(status).JSON(fiber.Map{
		"ok": false,
		"error": fiber.Map{
			"code":    string(kind),
			"message": message,
		},
	})
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrorKindAuth:
		return fiber.StatusUnauthorized
	case domain.ErrorKindValidation:
		return fiber.StatusBadRequest
	case domain.ErrorKindNotFound:
		return fiber.StatusNotFound
	case domain.ErrorKindUpstream:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// kindForStatus classifies errors raised by the framework itself, such as
// route misses, which never carry a service error kind.
func kindForStatus(status int) string {
	switch {
	case status == fiber.StatusNotFound:
		return string(domain.ErrorKindNotFound)
	case status == fiber.StatusUnauthorized:
		return string(domain.ErrorKindAuth)
	case status < fiber.StatusInternalServerError:
		return string(domain.ErrorKindValidation)
	default:
		return string(domain.ErrorKindInternal)
	}
}
