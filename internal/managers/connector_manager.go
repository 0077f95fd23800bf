package managers

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/connectorhq/fivetran-universal-connector/internal/domain"
	"github.com/connectorhq/fivetran-universal-connector/pkg/clients/fivetran"
)

// logBasedUpdateMethod is the update method forced onto every created
// connector; callers cannot override it.
const logBasedUpdateMethod = "BINLOG"

type connectorManager struct {
	clients domain.UpstreamClientFactory
	groupID string
}

type ConnectorManagerDependencies struct {
	Clients domain.UpstreamClientFactory
	GroupID string // destination group for created connectors
}

// NewConnectorManager creates a manager proxying connector operations upstream
func NewConnectorManager(deps ConnectorManagerDependencies) domain.ConnectorManager {
	return &connectorManager{
		clients: deps.Clients,
		groupID: deps.GroupID,
	}
}

func (m *connectorManager) CreateConnector(ctx context.Context, params domain.CreateConnectorParams) (*fivetran.Connector, error) {
	if params.Service == "" {
		return nil, domain.NewValidationError("service is required")
	}
	if params.Schema == "" {
		return nil, domain.NewValidationError("schema is required")
	}
	if m.groupID == "" {
		return nil, domain.NewConfigError("destination group is not configured")
	}

	client, err := m.clients.NewClient()
	if err != nil {
		return nil, err
	}

	req := &fivetran.CreateConnectorRequest{
		Service:           params.Service,
		GroupID:           m.groupID,
		TrustCertificates: true,
		TrustFingerprints: params.TrustFingerprints,
		RunSetupTests:     true,
		Paused:            true,
		PauseAfterTrial:   params.PauseAfterTrial,
		SyncFrequency:     params.SyncFrequency,
		DailySyncTime:     params.DailySyncTime,
		Config:            buildConnectorConfig(params),
	}

	connector, err := client.CreateConnector(ctx, req)
	if err != nil {
		return nil, translateUpstreamError("connector", err)
	}

	log.Info().
		Str("connector_id", connector.ID).
		Str("service", params.Service).
		Str("schema", params.Schema).
		Msg("created connector")

	return connector, nil
}

// buildConnectorConfig merges the caller-supplied config, flattens a
// custom_config sub-mapping into the top level, then applies the forced
// keys. Forced keys win over anything the caller supplied.
func buildConnectorConfig(params domain.CreateConnectorParams) map[string]any {
	config := make(map[string]any, len(params.Config)+3)

	for key, value := range params.Config {
		config[key] = value
	}

	if custom, ok := config["custom_config"].(map[string]any); ok {
		delete(config, "custom_config")
		for key, value := range custom {
			config[key] = value
		}
	}

	if params.NetworkingMethod != "" {
		config["networking_method"] = params.NetworkingMethod
	}

	config["schema_prefix"] = params.Schema
	config["update_method"] = logBasedUpdateMethod

	return config
}

func (m *connectorManager) ListConnectors(ctx context.Context, params domain.ListConnectorsParams) (*fivetran.ConnectorList, error) {
	groupID := params.GroupID
	if groupID == "" {
		groupID = m.groupID
	}
	if groupID == "" {
		return nil, domain.NewConfigError("destination group is not configured")
	}

	client, err := m.clients.NewClient()
	if err != nil {
		return nil, err
	}

	list, err := client.ListGroupConnectors(ctx, groupID, &fivetran.ListParams{Limit: params.Limit, Cursor: params.Cursor})
	if err != nil {
		return nil, translateUpstreamError("group", err)
	}

	return list, nil
}

func (m *connectorManager) GetConnector(ctx context.Context, connectorID string) (*fivetran.Connector, error) {
	client, err := m.clients.NewClient()
	if err != nil {
		return nil, err
	}

	connector, err := client.GetConnector(ctx, connectorID)
	if err != nil {
		return nil, translateUpstreamError("connector", err)
	}

	return connector, nil
}

func (m *connectorManager) UpdateConnector(ctx context.Context, connectorID string, params domain.UpdateConnectorParams) (*fivetran.Connector, error) {
	client, err := m.clients.NewClient()
	if err != nil {
		return nil, err
	}

	req := &fivetran.UpdateConnectorRequest{
		Paused:            params.Paused,
		PauseAfterTrial:   params.PauseAfterTrial,
		SyncFrequency:     params.SyncFrequency,
		DailySyncTime:     params.DailySyncTime,
		ScheduleType:      params.ScheduleType,
		RunSetupTests:     params.RunSetupTests,
		TrustCertificates: params.TrustCertificates,
		TrustFingerprints: params.TrustFingerprints,
		Config:            params.Config,
	}

	connector, err := client.UpdateConnector(ctx, connectorID, req)
	if err != nil {
		return nil, translateUpstreamError("connector", err)
	}

	return connector, nil
}

func (m *connectorManager) DeleteConnector(ctx context.Context, connectorID string) (string, error) {
	client, err := m.clients.NewClient()
	if err != nil {
		return "", err
	}

	message, err := client.DeleteConnector(ctx, connectorID)
	if err != nil {
		return "", translateUpstreamError("connector", err)
	}

	log.Info().
		Str("connector_id", connectorID).
		Msg("deleted connector")

	return message, nil
}

func (m *connectorManager) SetConnectorPaused(ctx context.Context, connectorID string, paused bool) (*fivetran.Connector, error) {
	client, err := m.clients.NewClient()
	if err != nil {
		return nil, err
	}

	connector, err := client.UpdateConnector(ctx, connectorID, &fivetran.UpdateConnectorRequest{Paused: &paused})
	if err != nil {
		return nil, translateUpstreamError("connector", err)
	}

	return connector, nil
}

func (m *connectorManager) RunSetupTests(ctx context.Context, connectorID string) (*fivetran.Connector, error) {
	client, err := m.clients.NewClient()
	if err != nil {
		return nil, err
	}

	connector, err := client.RunSetupTests(ctx, connectorID, &fivetran.RunSetupTestsRequest{
		TrustCertificates: true,
		TrustFingerprints: true,
	})
	if err != nil {
		return nil, translateUpstreamError("connector", err)
	}

	return connector, nil
}

func (m *connectorManager) ForceSync(ctx context.Context, connectorID string) (string, error) {
	client, err := m.clients.NewClient()
	if err != nil {
		return "", err
	}

	message, err := client.SyncConnector(ctx, connectorID, true)
	if err != nil {
		return "", translateUpstreamError("connector", err)
	}

	return message, nil
}

func (m *connectorManager) Resync(ctx context.Context, connectorID string) (string, error) {
	client, err := m.clients.NewClient()
	if err != nil {
		return "", err
	}

	message, err := client.ResyncConnector(ctx, connectorID)
	if err != nil {
		return "", translateUpstreamError("connector", err)
	}

	return message, nil
}

func (m *connectorManager) GetConnectorState(ctx context.Context, connectorID string) (domain.ConnectorState, error) {
	connector, err := m.GetConnector(ctx, connectorID)
	if err != nil {
		return domain.ConnectorState{}, err
	}

	return domain.ConnectorState{
		ID:          connector.ID,
		Paused:      connector.Paused,
		Status:      connector.Status,
		SucceededAt: connector.SucceededAt,
		FailedAt:    connector.FailedAt,
	}, nil
}

func (m *connectorManager) GetSchemas(ctx context.Context, connectorID string) (*fivetran.SchemaConfig, error) {
	client, err := m.clients.NewClient()
	if err != nil {
		return nil, err
	}

	schemas, err := client.GetConnectorSchemas(ctx, connectorID)
	if err != nil {
		return nil, translateUpstreamError("connector schema config", err)
	}

	return schemas, nil
}

func (m *connectorManager) UpdateSchemas(ctx context.Context, connectorID string, config *fivetran.SchemaConfig) (*fivetran.SchemaConfig, error) {
	if config == nil || (config.SchemaChangeHandling == "" && len(config.Schemas) == 0) {
		return nil, domain.NewValidationError("schema update request is empty")
	}

	client, err := m.clients.NewClient()
	if err != nil {
		return nil, err
	}

	schemas, err := client.UpdateConnectorSchemas(ctx, connectorID, config)
	if err != nil {
		return nil, translateUpstreamError("connector schema config", err)
	}

	return schemas, nil
}
