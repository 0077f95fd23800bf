package controllers

import (
	"github.com/connectorhq/fivetran-universal-connector/internal/domain"
	"github.com/connectorhq/fivetran-universal-connector/internal/middlewares"
	"github.com/connectorhq/fivetran-universal-connector/pkg/clients/fivetran"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// ConnectorController handles connector resource requests and operational
// actions proxied to the upstream platform.
type ConnectorController struct {
	connectorManager domain.ConnectorManager
}

type ConnectorControllerDependencies struct {
	ConnectorManager domain.ConnectorManager
}

func NewConnectorController(deps ConnectorControllerDependencies) *ConnectorController {
	return &ConnectorController{
		connectorManager: deps.ConnectorManager,
	}
}

type createConnectorRequest struct {
	Service           string         `json:"service"`
	Schema            string         `json:"schema"`
	SyncFrequency     int            `json:"sync_frequency"`
	DailySyncTime     string         `json:"daily_sync_time"`
	NetworkingMethod  string         `json:"networking_method"`
	TrustFingerprints bool           `json:"trust_fingerprints"`
	PauseAfterTrial   *bool          `json:"pause_after_trial"`
	Config            map[string]any `json:"config"`
}

type updateConnectorRequest struct {
	Paused            *bool          `json:"paused"`
	PauseAfterTrial   *bool          `json:"pause_after_trial"`
	SyncFrequency     *int           `json:"sync_frequency"`
	DailySyncTime     string         `json:"daily_sync_time"`
	ScheduleType      string         `json:"schedule_type"`
	RunSetupTests     *bool          `json:"run_setup_tests"`
	TrustCertificates *bool          `json:"trust_certificates"`
	TrustFingerprints *bool          `json:"trust_fingerprints"`
	Config            map[string]any `json:"config"`
}

// CreateConnector creates a connector in the configured destination group.
func (c *ConnectorController) CreateConnector(ctx fiber.Ctx) error {
	var req createConnectorRequest

	if err := ctx.Bind().Body(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	connector, err := c.connectorManager.CreateConnector(ctx.RequestCtx(), domain.CreateConnectorParams{
		Service:           req.Service,
		Schema:            req.Schema,
		SyncFrequency:     req.SyncFrequency,
		DailySyncTime:     req.DailySyncTime,
		NetworkingMethod:  req.NetworkingMethod,
		TrustFingerprints: req.TrustFingerprints,
		PauseAfterTrial:   req.PauseAfterTrial,
		Config:            req.Config,
	})
	if err != nil {
		return err
	}

	identity, _ := middlewares.IdentityFrom(ctx)

	log.Info().
		Str("connector_id", connector.ID).
		Str("service", connector.Service).
		Str("username", identity.Username).
		Msg("Connector created")

	return ctx.JSON(fiber.Map{
		"ok":     true,
		"result": connector,
	})
}

// ListConnectors lists connectors in a group, defaulting to the configured
// destination group.
func (c *ConnectorController) ListConnectors(ctx fiber.Ctx) error {
	limit, err := queryLimit(ctx)
	if err != nil {
		return err
	}

	connectors, err := c.connectorManager.ListConnectors(ctx.RequestCtx(), domain.ListConnectorsParams{
		GroupID: ctx.Query("group_id"),
		Limit:   limit,
		Cursor:  ctx.Query("cursor"),
	})
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"ok":     true,
		"result": connectors,
	})
}

// GetConnector returns a single connector by id.
func (c *ConnectorController) GetConnector(ctx fiber.Ctx) error {
	connector, err := c.connectorManager.GetConnector(ctx.RequestCtx(), ctx.Params("connectorID"))
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"ok":     true,
		"result": connector,
	})
}

// UpdateConnector applies a partial update to a connector.
func (c *ConnectorController) UpdateConnector(ctx fiber.Ctx) error {
	var req updateConnectorRequest

	if err := ctx.Bind().Body(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	connector, err := c.connectorManager.UpdateConnector(ctx.RequestCtx(), ctx.Params("connectorID"), domain.UpdateConnectorParams{
		Paused:            req.Paused,
		PauseAfterTrial:   req.PauseAfterTrial,
		SyncFrequency:     req.SyncFrequency,
		DailySyncTime:     req.DailySyncTime,
		ScheduleType:      req.ScheduleType,
		RunSetupTests:     req.RunSetupTests,
		TrustCertificates: req.TrustCertificates,
		TrustFingerprints: req.TrustFingerprints,
		Config:            req.Config,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"ok":     true,
		"result": connector,
	})
}

// DeleteConnector removes a connector upstream.
func (c *ConnectorController) DeleteConnector(ctx fiber.Ctx) error {
	connectorID := ctx.Params("connectorID")

	message, err := c.connectorManager.DeleteConnector(ctx.RequestCtx(), connectorID)
	if err != nil {
		return err
	}

	identity, _ := middlewares.IdentityFrom(ctx)

	log.Info().
		Str("connector_id", connectorID).
		Str("username", identity.Username).
		Msg("Connector deleted")

	return ctx.JSON(fiber.Map{
		"ok":     true,
		"result": message,
	})
}

// PauseConnector pauses a connector's sync schedule.
func (c *ConnectorController) PauseConnector(ctx fiber.Ctx) error {
	return c.setPaused(ctx, true)
}

// ResumeConnector resumes a paused connector.
func (c *ConnectorController) ResumeConnector(ctx fiber.Ctx) error {
	return c.setPaused(ctx, false)
}

func (c *ConnectorController) setPaused(ctx fiber.Ctx, paused bool) error {
	connector, err := c.connectorManager.SetConnectorPaused(ctx.RequestCtx(), ctx.Params("connectorID"), paused)
	if err != nil {
		return err
	}

	log.Info().
		Str("connector_id", connector.ID).
		Bool("paused", paused).
		Msg("Connector pause state changed")

	return ctx.JSON(fiber.Map{
		"ok":     true,
		"result": connector,
	})
}

// RunSetupTests reruns the upstream setup tests for a connector.
func (c *ConnectorController) RunSetupTests(ctx fiber.Ctx) error {
	connector, err := c.connectorManager.RunSetupTests(ctx.RequestCtx(), ctx.Params("connectorID"))
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"ok":     true,
		"result": connector,
	})
}

// SyncConnector triggers an immediate sync.
func (c *ConnectorController) SyncConnector(ctx fiber.Ctx) error {
	message, err := c.connectorManager.ForceSync(ctx.RequestCtx(), ctx.Params("connectorID"))
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"ok":     true,
		"result": message,
	})
}

// ResyncConnector triggers a full historical resync.
func (c *ConnectorController) ResyncConnector(ctx fiber.Ctx) error {
	message, err := c.connectorManager.Resync(ctx.RequestCtx(), ctx.Params("connectorID"))
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"ok":     true,
		"result": message,
	})
}

// GetConnectorState returns the operational status subset of a connector.
func (c *ConnectorController) GetConnectorState(ctx fiber.Ctx) error {
	state, err := c.connectorManager.GetConnectorState(ctx.RequestCtx(), ctx.Params("connectorID"))
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"ok":     true,
		"result": state,
	})
}

// GetSchemas returns the table-selection schema configuration.
func (c *ConnectorController) GetSchemas(ctx fiber.Ctx) error {
	schemas, err := c.connectorManager.GetSchemas(ctx.RequestCtx(), ctx.Params("connectorID"))
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"ok":     true,
		"result": schemas,
	})
}

// UpdateSchemas applies table-selection changes to a connector.
func (c *ConnectorController) UpdateSchemas(ctx fiber.Ctx) error {
	var req fivetran.SchemaConfig

	if err := ctx.Bind().Body(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	schemas, err := c.connectorManager.UpdateSchemas(ctx.RequestCtx(), ctx.Params("connectorID"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"ok":     true,
		"result": schemas,
	})
}
