package domain

import (
	"context"
	"time"

	"github.com/connectorhq/fivetran-universal-connector/pkg/clients/fivetran"
)

type CreateConnectorParams struct {
	Service           string
	Schema            string
	SyncFrequency     int            // Optional - minutes between syncs
	DailySyncTime     string         // Optional - only meaningful with daily frequency
	NetworkingMethod  string         // Optional
	TrustFingerprints bool           // Optional
	PauseAfterTrial   *bool          // Optional
	Config            map[string]any // Optional - merged into the outgoing connector config
}

type UpdateConnectorParams struct {
	Paused            *bool
	PauseAfterTrial   *bool
	SyncFrequency     *int
	DailySyncTime     string
	ScheduleType      string
	RunSetupTests     *bool
	TrustCertificates *bool
	TrustFingerprints *bool
	Config            map[string]any
}

type ListConnectorsParams struct {
	GroupID string // Optional - defaults to the configured destination group
	Limit   int    // Optional
	Cursor  string // Optional
}

// ConnectorState is the operational status subset of a connector
type ConnectorState struct {
	ID          string                    `json:"id"`
	Paused      bool                      `json:"paused"`
	Status      *fivetran.ConnectorStatus `json:"status,omitempty"`
	SucceededAt *time.Time                `json:"succeeded_at"`
	FailedAt    *time.Time                `json:"failed_at"`
}

// ConnectorManager proxies connector operations to the upstream platform.
// Creation applies fixed policy regardless of caller input: connectors land
// in the configured destination group, start paused, run setup tests, trust
// certificates, and sync via the log-based update method; the request's
// schema name always becomes the config schema_prefix.
type ConnectorManager interface {
	CreateConnector(ctx context.Context, params CreateConnectorParams) (*fivetran.Connector, error)
	ListConnectors(ctx context.Context, params ListConnectorsParams) (*fivetran.ConnectorList, error)
	GetConnector(ctx context.Context, connectorID string) (*fivetran.Connector, error)
	UpdateConnector(ctx context.Context, connectorID string, params UpdateConnectorParams) (*fivetran.Connector, error)
	DeleteConnector(ctx context.Context, connectorID string) (string, error)

	SetConnectorPaused(ctx context.Context, connectorID string, paused bool) (*fivetran.Connector, error)
	RunSetupTests(ctx context.Context, connectorID string) (*fivetran.Connector, error)
	ForceSync(ctx context.Context, connectorID string) (string, error)
	Resync(ctx context.Context, connectorID string) (string, error)
	GetConnectorState(ctx context.Context, connectorID string) (ConnectorState, error)

	GetSchemas(ctx context.Context, connectorID string) (*fivetran.SchemaConfig, error)
	UpdateSchemas(ctx context.Context, connectorID string, config *fivetran.SchemaConfig) (*fivetran.SchemaConfig, error)
}
